// Package client implements the client side of the banking protocol: a
// request/reply invoker with retry-on-timeout and either invocation
// semantics, and a monitor receiver that listens for CALLBACK_UPDATE
// datagrams pushed by the server.
//
// Call performs, for each attempt up to the configured retry limit:
//  1. Encode and send the request, tagging it with a fresh request ID on
//     the very first attempt and reusing that same ID on every retry so
//     the server's dedup cache (when at-most-once is requested) can
//     recognise the retransmission.
//  2. Read datagrams until one decodes as a reply with a matching request
//     ID and opcode, or the per-attempt timeout elapses. Any other
//     datagram arriving on the same socket — a stale reply from an earlier
//     call, or a monitor callback — is discarded without consuming the
//     attempt.
//  3. If the timeout elapses with no matching reply, retry up to the
//     configured limit; once exhausted, return ErrCommunication.
package client
