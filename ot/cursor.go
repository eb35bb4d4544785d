package ot

import (
	"encoding/binary"
	"fmt"
)

// Cursor is a single-pass reader and writer over the bytes of one table.
// All integer operations are big-endian, as every multi-byte value in an
// OpenType font is.
//
// Reading consumes bytes from the front of the buffer. Writing (the Put… methods)
// appends to the end of the buffer. A cursor is usually used for either of both:
// codecs receive a cursor created by NewCursor for decoding, and a cursor created
// by NewWriter for encoding.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor for reading b. The cursor does not copy b, but
// will never modify it.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// NewWriter creates an empty cursor for writing, with capacity for at least
// sizeHint bytes.
func NewWriter(sizeHint int) *Cursor {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Cursor{buf: make([]byte, 0, sizeHint)}
}

// Pos returns the read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len is the total number of bytes in the buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Bytes returns the complete buffer, including bytes already read.
// For a writer this is the encoded output.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// view returns the next n bytes as a sub-slice of the buffer and advances
// the read position.
func (c *Cursor) view(n int) ([]byte, error) {
	if n < 0 || n > len(c.buf)-c.pos {
		return nil, fmt.Errorf("need %d bytes at position %d, have %d: %w",
			n, c.pos, len(c.buf)-c.pos, ErrOutOfBounds)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// --- Reading ---------------------------------------------------------------

// Uint8 reads one byte.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.view(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a big-endian uint16.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.view(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint32 reads a big-endian uint32.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.view(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Int8 reads one byte as a signed value.
func (c *Cursor) Int8() (int8, error) {
	n, err := c.Uint8()
	return int8(n), err
}

// Int16 reads a big-endian int16.
func (c *Cursor) Int16() (int16, error) {
	n, err := c.Uint16()
	return int16(n), err
}

// Int32 reads a big-endian int32.
func (c *Cursor) Int32() (int32, error) {
	n, err := c.Uint32()
	return int32(n), err
}

// Block returns a copy of the next n bytes.
func (c *Cursor) Block(n int) ([]byte, error) {
	b, err := c.view(n)
	if err != nil {
		return nil, err
	}
	block := make([]byte, n)
	copy(block, b)
	return block, nil
}

// Skip advances the read position by n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.view(n)
	return err
}

// Sub returns a new cursor for reading the n bytes at offset, counted from the
// start of the buffer, not from the read position. The read position of c is
// not changed.
func (c *Cursor) Sub(offset, n int) (*Cursor, error) {
	if offset < 0 || n < 0 || offset > len(c.buf) || n > len(c.buf)-offset {
		return nil, fmt.Errorf("range [%d:+%d] exceeds buffer of size %d: %w",
			offset, n, len(c.buf), ErrOutOfBounds)
	}
	return &Cursor{buf: c.buf[offset : offset+n]}, nil
}

// --- Writing ---------------------------------------------------------------

// PutUint8 appends one byte.
func (c *Cursor) PutUint8(n uint8) {
	c.buf = append(c.buf, n)
}

// PutUint16 appends a big-endian uint16.
func (c *Cursor) PutUint16(n uint16) {
	c.buf = binary.BigEndian.AppendUint16(c.buf, n)
}

// PutUint32 appends a big-endian uint32.
func (c *Cursor) PutUint32(n uint32) {
	c.buf = binary.BigEndian.AppendUint32(c.buf, n)
}

// PutInt8 appends a signed byte.
func (c *Cursor) PutInt8(n int8) {
	c.PutUint8(uint8(n))
}

// PutInt16 appends a big-endian int16.
func (c *Cursor) PutInt16(n int16) {
	c.PutUint16(uint16(n))
}

// PutInt32 appends a big-endian int32.
func (c *Cursor) PutInt32(n int32) {
	c.PutUint32(uint32(n))
}

// PutBlock appends b verbatim.
func (c *Cursor) PutBlock(b []byte) {
	c.buf = append(c.buf, b...)
}

// PutZeros appends n zero bytes, used for padding.
func (c *Cursor) PutZeros(n int) {
	for ; n > 0; n-- {
		c.buf = append(c.buf, 0)
	}
}
