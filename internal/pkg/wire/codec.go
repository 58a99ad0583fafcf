package wire

import "encoding/binary"

// Encode serialises m into a single datagram: the 24-byte header followed
// by m.Body. It never fails — callers are responsible for keeping Body
// within the limits the body encoders already enforce.
func Encode(m *Message) []byte {
	buf := make([]byte, HeaderSize+len(m.Body))
	binary.BigEndian.PutUint32(buf[0:4], Magic)
	buf[4] = m.Version
	buf[5] = byte(m.MsgType)
	binary.BigEndian.PutUint16(buf[6:8], uint16(m.OpCode))
	binary.BigEndian.PutUint16(buf[8:10], uint16(m.Flags))
	binary.BigEndian.PutUint16(buf[10:12], uint16(m.Status))
	binary.BigEndian.PutUint64(buf[12:20], m.RequestID)
	binary.BigEndian.PutUint32(buf[20:24], uint32(len(m.Body)))
	copy(buf[HeaderSize:], m.Body)
	return buf
}

// Decode parses a datagram into a Message. It returns an error if the
// buffer is shorter than the header, the magic tag does not match, or
// bodyLen does not match the number of bytes remaining. Any of these mean
// the datagram did not come from a protocol peer; the caller should drop
// it silently rather than treat it as a retryable failure.
func Decode(b []byte) (*Message, error) {
	if len(b) < HeaderSize {
		return nil, ErrShortHeader
	}
	if binary.BigEndian.Uint32(b[0:4]) != Magic {
		return nil, ErrBadMagic
	}
	bodyLen := binary.BigEndian.Uint32(b[20:24])
	rest := b[HeaderSize:]
	if int(bodyLen) != len(rest) {
		return nil, ErrBodyLenMismatch
	}
	body := make([]byte, len(rest))
	copy(body, rest)
	return &Message{
		Version:   b[4],
		MsgType:   MsgType(b[5]),
		OpCode:    OpCode(binary.BigEndian.Uint16(b[6:8])),
		Flags:     Flags(binary.BigEndian.Uint16(b[8:10])),
		Status:    Status(binary.BigEndian.Uint16(b[10:12])),
		RequestID: binary.BigEndian.Uint64(b[12:20]),
		Body:      body,
	}, nil
}
