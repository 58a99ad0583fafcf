// Package wire implements the banking RPC binary protocol: a fixed 24-byte,
// big-endian header followed by an opcode- and message-type-dependent body.
//
// The package is a pure codec. It does no I/O and holds no state; it only
// knows how to turn a Message into bytes and back. Transport (UDP sockets,
// retries, loss simulation) lives in the client and server packages.
//
// Header layout (24 bytes, all integers big-endian):
//
//	magic     uint32  fixed tag, 0x42414E4B
//	version   uint8   protocol version, currently 1
//	msgType   uint8   Request=1, Reply=2, Callback=3
//	opCode    uint16  see OpCode constants
//	flags     uint16  bit 0 = AT_MOST_ONCE, rest reserved
//	status    uint16  result code, see Status constants
//	requestId uint64  client-chosen nonce; 0 on Callback messages
//	bodyLen   uint32  length of the body that follows
package wire
