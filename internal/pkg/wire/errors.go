package wire

import "errors"

// ErrShortHeader is returned when a buffer is too short to contain a header.
var ErrShortHeader = errors.New("wire: buffer shorter than header")

// ErrBadMagic is returned when the magic tag does not match.
var ErrBadMagic = errors.New("wire: bad magic")

// ErrBodyLenMismatch is returned when bodyLen does not match the bytes
// remaining in the buffer.
var ErrBodyLenMismatch = errors.New("wire: bodyLen does not match remaining buffer")

// ErrShortBody is returned by a body Reader when the underlying buffer runs
// out before a requested field can be read.
var ErrShortBody = errors.New("wire: body shorter than expected field")

// ErrStringTooLong is the panic value of Writer.String when it is asked to
// encode a string longer than 65535 bytes.
var ErrStringTooLong = errors.New("wire: string exceeds maximum length")

// ErrPasswordEmpty is the panic value of Writer.Password16 when it is asked
// to encode a zero-length password. A zero-length password is a protocol error at the
// boundary, not a codec error — callers validate length before encoding.
var ErrPasswordEmpty = errors.New("wire: password must not be empty")

// ErrPasswordTooLong is the panic value of Writer.Password16 when it is
// asked to encode a password longer than 16 bytes.
var ErrPasswordTooLong = errors.New("wire: password exceeds 16 bytes")
