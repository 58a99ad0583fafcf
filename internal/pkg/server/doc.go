// Package server implements the UDP server side of the banking protocol.
//
// The server runs a single receive loop that, for every datagram:
//  1. Prunes expired dedup cache entries and monitor registrations.
//  2. Receives one datagram.
//  3. Draws against the configured request-loss probability and silently
//     discards the datagram if it "loses" the draw.
//  4. Decodes the datagram, discarding it silently if it is not a
//     well-formed request for the protocol version in use.
//  5. If the request carries the at-most-once flag and a cached reply
//     already exists for its (client, requestId) pair, replays the cached
//     bytes verbatim instead of reprocessing the request.
//  6. Otherwise dispatches the request to the bank, building a reply.
//  7. Caches the encoded reply if the request was at-most-once.
//  8. Draws against the configured reply-loss probability and silently
//     discards the reply if it "loses" the draw.
//  9. Sends the reply.
//  10. Fans out a CALLBACK_UPDATE datagram to every active monitor after
//      any operation that mutated the ledger.
//
// A monitor fan-out failure or a malformed datagram never stops the loop;
// only a fatal error reading from the socket does.
package server
