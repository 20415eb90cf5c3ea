package filepacket

import (
	"fmt"

	"github.com/marmos91/filepacket/pkg/serial"
)

// MaxPathLength is the longest path a PathName can carry. The length prefix
// is a single byte.
const MaxPathLength = 255

// PathName is a length-prefixed file path as carried in START packets.
type PathName struct {
	value string
}

// NewPathName validates and wraps a path.
func NewPathName(path string) (PathName, error) {
	if len(path) > MaxPathLength {
		return PathName{}, fmt.Errorf("%w: %d bytes (max %d)", ErrPathTooLong, len(path), MaxPathLength)
	}
	return PathName{value: path}, nil
}

// MustPathName is like NewPathName but panics on error.
func MustPathName(path string) PathName {
	p, err := NewPathName(path)
	if err != nil {
		panic(err)
	}
	return p
}

func (p PathName) String() string {
	return p.value
}

// Len returns the path length in bytes.
func (p PathName) Len() int {
	return len(p.value)
}

// EncodedSize returns the length prefix plus the path bytes.
func (p PathName) EncodedSize() int {
	return 1 + len(p.value)
}

func (p PathName) encode(buf *serial.Buffer) error {
	if err := buf.PutUint8(uint8(len(p.value))); err != nil {
		return err
	}
	return buf.PutBytes([]byte(p.value))
}

func getPathName(buf *serial.Buffer) (PathName, error) {
	n, err := buf.GetUint8()
	if err != nil {
		return PathName{}, err
	}
	raw, err := buf.GetBytes(int(n))
	if err != nil {
		return PathName{}, err
	}
	return PathName{value: string(raw)}, nil
}
