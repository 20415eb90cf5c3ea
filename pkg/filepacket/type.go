package filepacket

import (
	"fmt"
	"strings"

	"github.com/marmos91/filepacket/pkg/serial"
)

// Type is the packet type tag carried in every header.
type Type uint8

const (
	TypeStart  Type = 0
	TypeData   Type = 1
	TypeEnd    Type = 2
	TypeCancel Type = 3

	// TypeNone is reported by headers that have not been initialized.
	// It is never legal on the wire.
	TypeNone Type = 0xFF
)

// Types lists the catalog in wire order.
var Types = []Type{TypeStart, TypeData, TypeEnd, TypeCancel}

// String returns the protocol name of the type.
func (t Type) String() string {
	switch t {
	case TypeStart:
		return "START"
	case TypeData:
		return "DATA"
	case TypeEnd:
		return "END"
	case TypeCancel:
		return "CANCEL"
	case TypeNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
	}
}

// IsValid reports whether t belongs to the packet catalog.
func (t Type) IsValid() bool {
	return t <= TypeCancel
}

// ParseType parses a case-insensitive type name such as "end".
func ParseType(s string) (Type, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range Types {
		if t.String() == name {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown packet type %q (valid: start, data, end, cancel)", s)
}

// getType reads a type tag and rejects values outside the catalog.
func getType(buf *serial.Buffer) (Type, error) {
	raw, err := buf.GetUint8()
	if err != nil {
		return TypeNone, err
	}
	t := Type(raw)
	if !t.IsValid() {
		return TypeNone, fmt.Errorf("%w: unknown packet type 0x%02X at offset %d",
			serial.ErrMalformedData, raw, buf.Position()-1)
	}
	return t, nil
}
