package wire

import (
	"encoding/binary"
	"math"
)

// Writer accumulates a message body by appending fields in wire order.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated body.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// String appends a 2-byte length prefix followed by the UTF-8 bytes of s.
// It panics if s exceeds the 65535-byte wire limit, since that can only
// happen if a caller builds a request with a pathological string — callers
// that accept untrusted input must check length themselves beforehand.
func (w *Writer) String(s string) *Writer {
	b := []byte(s)
	if len(b) > math.MaxUint16 {
		panic(ErrStringTooLong)
	}
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(b)))
	w.buf = append(w.buf, lenBuf[:]...)
	w.buf = append(w.buf, b...)
	return w
}

// Password16 appends a fixed 16-byte field: the UTF-8 bytes of s, padded
// with trailing zero bytes. It panics if s is empty or longer than 16
// bytes; OPEN-boundary length validation (1..16) belongs to the bank
// package, which must reject bad passwords with ERR_PASSWORD_FORMAT before
// ever reaching the codec.
func (w *Writer) Password16(s string) *Writer {
	b := []byte(s)
	if len(b) == 0 {
		panic(ErrPasswordEmpty)
	}
	if len(b) > 16 {
		panic(ErrPasswordTooLong)
	}
	var field [16]byte
	copy(field[:], b)
	w.buf = append(w.buf, field[:]...)
	return w
}

// U16 appends a big-endian uint16.
func (w *Writer) U16(v uint16) *Writer {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}

// U32 appends a big-endian uint32.
func (w *Writer) U32(v uint32) *Writer {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}

// I32 appends a big-endian int32.
func (w *Writer) I32(v int32) *Writer {
	return w.U32(uint32(v))
}

// U64 appends a big-endian uint64.
func (w *Writer) U64(v uint64) *Writer {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}

// Double appends the big-endian IEEE-754 bit pattern of v.
func (w *Writer) Double(v float64) *Writer {
	return w.U64(math.Float64bits(v))
}

// Reader consumes a message body field by field in wire order.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader over b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, ErrShortBody
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// String decodes a 2-byte length prefix followed by that many UTF-8 bytes.
func (r *Reader) String() (string, error) {
	lenBytes, err := r.take(2)
	if err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint16(lenBytes)
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Password16 decodes a fixed 16-byte field, trimming trailing zero bytes.
func (r *Reader) Password16() (string, error) {
	b, err := r.take(16)
	if err != nil {
		return "", err
	}
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end]), nil
}

// U16 decodes a big-endian uint16.
func (r *Reader) U16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// U32 decodes a big-endian uint32.
func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// I32 decodes a big-endian int32.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// U64 decodes a big-endian uint64.
func (r *Reader) U64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Double decodes a big-endian IEEE-754 double.
func (r *Reader) Double() (float64, error) {
	v, err := r.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}
