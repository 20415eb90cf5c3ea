// Package cfdp holds value types shared with the file delivery layer.
//
// The file packet codec carries a Checksum inside END packets but never
// computes or verifies it. Computation belongs to the file delivery layer;
// here the value is opaque and is transported verbatim.
package cfdp

import "fmt"

// ChecksumSize is the encoded width of a Checksum in bytes.
const ChecksumSize = 4

// Checksum is an opaque 32-bit file checksum.
type Checksum struct {
	value uint32
}

// NewChecksum wraps a raw checksum value.
func NewChecksum(value uint32) Checksum {
	return Checksum{value: value}
}

// Value returns the raw checksum value.
func (c Checksum) Value() uint32 {
	return c.value
}

// Equal reports whether two checksums carry the same value.
func (c Checksum) Equal(other Checksum) bool {
	return c.value == other.value
}

// String returns the checksum as 0x-prefixed upper-case hex.
func (c Checksum) String() string {
	return fmt.Sprintf("0x%08X", c.value)
}
