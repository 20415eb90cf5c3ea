package serial

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrBufferExhausted is returned when a field is wider than the bytes left
// in the buffer.
var ErrBufferExhausted = errors.New("serial: buffer exhausted")

// ErrMalformedData is returned when decoded bytes do not form a legal value
// for a typed field, such as an unknown enumeration tag.
var ErrMalformedData = errors.New("serial: malformed data")

// Buffer is a bounded big-endian cursor over a caller-owned byte slice.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer creates a Buffer over data with the position at 0. The capacity
// of the cursor is len(data).
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// require checks that n bytes are available at the current position.
func (b *Buffer) require(n int, op string) error {
	if n < 0 || n > len(b.data)-b.pos {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d, have %d",
			ErrBufferExhausted, op, n, b.pos, len(b.data)-b.pos)
	}
	return nil
}

// PutUint8 writes a single byte and advances the position by 1.
func (b *Buffer) PutUint8(v uint8) error {
	if err := b.require(1, "put uint8"); err != nil {
		return err
	}
	b.data[b.pos] = v
	b.pos++
	return nil
}

// PutUint16 writes a big-endian uint16 and advances the position by 2.
func (b *Buffer) PutUint16(v uint16) error {
	if err := b.require(2, "put uint16"); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b.data[b.pos:], v)
	b.pos += 2
	return nil
}

// PutUint32 writes a big-endian uint32 and advances the position by 4.
func (b *Buffer) PutUint32(v uint32) error {
	if err := b.require(4, "put uint32"); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b.data[b.pos:], v)
	b.pos += 4
	return nil
}

// PutUint64 writes a big-endian uint64 and advances the position by 8.
func (b *Buffer) PutUint64(v uint64) error {
	if err := b.require(8, "put uint64"); err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b.data[b.pos:], v)
	b.pos += 8
	return nil
}

// PutBytes copies p into the buffer and advances the position by len(p).
// Nothing is written if p does not fit.
func (b *Buffer) PutBytes(p []byte) error {
	if err := b.require(len(p), "put bytes"); err != nil {
		return err
	}
	b.pos += copy(b.data[b.pos:], p)
	return nil
}

// GetUint8 reads a single byte and advances the position by 1.
func (b *Buffer) GetUint8() (uint8, error) {
	if err := b.require(1, "get uint8"); err != nil {
		return 0, err
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

// GetUint16 reads a big-endian uint16 and advances the position by 2.
func (b *Buffer) GetUint16() (uint16, error) {
	if err := b.require(2, "get uint16"); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(b.data[b.pos:])
	b.pos += 2
	return v, nil
}

// GetUint32 reads a big-endian uint32 and advances the position by 4.
func (b *Buffer) GetUint32() (uint32, error) {
	if err := b.require(4, "get uint32"); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(b.data[b.pos:])
	b.pos += 4
	return v, nil
}

// GetUint64 reads a big-endian uint64 and advances the position by 8.
func (b *Buffer) GetUint64() (uint64, error) {
	if err := b.require(8, "get uint64"); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(b.data[b.pos:])
	b.pos += 8
	return v, nil
}

// GetBytes reads n bytes and advances the position. The returned slice is a
// copy and does not alias the buffer.
func (b *Buffer) GetBytes(n int) ([]byte, error) {
	if err := b.require(n, "get bytes"); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.data[b.pos:b.pos+n])
	b.pos += n
	return out, nil
}

// Position returns the current offset into the buffer.
func (b *Buffer) Position() int {
	return b.pos
}

// Remaining returns the number of bytes between the position and the end of
// the buffer.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.pos
}

// Capacity returns the fixed size of the underlying slice.
func (b *Buffer) Capacity() int {
	return len(b.data)
}

// Bytes returns the prefix of the underlying slice up to the position, i.e.
// what has been written (or read) so far. It aliases the caller's slice.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.pos]
}

// Reset moves the position back to 0 without clearing the contents.
func (b *Buffer) Reset() {
	b.pos = 0
}
