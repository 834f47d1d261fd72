// Package wire provides the bounds-checked byte cursor used to decode
// fixed-width request fields.
package wire

import (
	"encoding/binary"
	"errors"
)

var (
	ErrShortRead     = errors.New("wire: read past end of request")
	ErrTrailingBytes = errors.New("wire: unparsed trailing bytes")
)

// Cursor reads fixed-width big-endian fields sequentially from a request body.
type Cursor struct {
	buf []byte
	off int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining reports how many bytes are left unread.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// ReadBytes returns the next n bytes as a copy.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrShortRead
	}
	out := make([]byte, n)
	copy(out, c.buf[c.off:c.off+n])
	c.off += n
	return out, nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	if c.Remaining() < 1 {
		return 0, ErrShortRead
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	if c.Remaining() < 4 {
		return 0, ErrShortRead
	}
	v := binary.BigEndian.Uint32(c.buf[c.off : c.off+4])
	c.off += 4
	return v, nil
}

// AssertEmpty fails unless every byte of the request was consumed.
func (c *Cursor) AssertEmpty() error {
	if c.Remaining() != 0 {
		return ErrTrailingBytes
	}
	return nil
}
