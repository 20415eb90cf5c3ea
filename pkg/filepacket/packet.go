package filepacket

import (
	"fmt"

	"github.com/marmos91/filepacket/pkg/serial"
)

// Packet is implemented by every variant of the catalog: *StartPacket,
// *DataPacket, *EndPacket and *CancelPacket. The set is closed; types
// outside this package cannot implement it.
type Packet interface {
	// Header returns a copy of the embedded header.
	Header() Header

	// Type returns the variant's tag, independent of the header state.
	Type() Type

	// EncodedSize returns the exact number of bytes Encode writes.
	EncodedSize() int

	// Encode writes the header and payload. It panics if the header does not
	// carry the variant's tag.
	Encode(buf *serial.Buffer) error

	// Decode reads the payload that follows an already decoded header. It
	// panics if the bound header does not carry the variant's tag.
	Decode(buf *serial.Buffer) error

	sealed()
}

var (
	_ Packet = (*StartPacket)(nil)
	_ Packet = (*DataPacket)(nil)
	_ Packet = (*EndPacket)(nil)
	_ Packet = (*CancelPacket)(nil)
)

// Bind returns the empty variant for a decoded header, ready for Decode.
// It panics if h is uninitialized.
func Bind(h Header) Packet {
	switch h.Type() {
	case TypeStart:
		return NewStartPacketFromHeader(h)
	case TypeData:
		return NewDataPacketFromHeader(h)
	case TypeEnd:
		return NewEndPacketFromHeader(h)
	case TypeCancel:
		return NewCancelPacketFromHeader(h)
	default:
		panic(fmt.Sprintf("filepacket: no variant for %s header", h.Type()))
	}
}

// Decode reads a header from buf, binds it to the matching variant and
// decodes the payload. Bytes after the packet are left in buf.
func Decode(buf *serial.Buffer) (Packet, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	p := Bind(h)
	if err := p.Decode(buf); err != nil {
		return nil, err
	}
	return p, nil
}

// Marshal encodes p into a newly allocated slice of exactly EncodedSize bytes.
func Marshal(p Packet) ([]byte, error) {
	data := make([]byte, p.EncodedSize())
	if err := p.Encode(serial.NewBuffer(data)); err != nil {
		return nil, err
	}
	return data, nil
}

// MarshalTo encodes p into the front of dst and returns the number of bytes
// written. dst may be larger than needed. On error nothing in dst may be
// transmitted and the returned count is 0.
func MarshalTo(dst []byte, p Packet) (int, error) {
	buf := serial.NewBuffer(dst)
	if err := p.Encode(buf); err != nil {
		return 0, err
	}
	return buf.Position(), nil
}

// Unmarshal decodes one packet from the front of data. Trailing bytes are
// ignored.
func Unmarshal(data []byte) (Packet, error) {
	return Decode(serial.NewBuffer(data))
}

// UnmarshalStrict decodes one packet and fails with ErrTrailingData if data
// holds anything after it.
func UnmarshalStrict(data []byte) (Packet, error) {
	buf := serial.NewBuffer(data)
	p, err := Decode(buf)
	if err != nil {
		return nil, err
	}
	if err := checkTrailing(buf, p); err != nil {
		return nil, err
	}
	return p, nil
}

// checkTrailing reports ErrTrailingData when buf still holds bytes after p.
func checkTrailing(buf *serial.Buffer, p Packet) error {
	if n := buf.Remaining(); n != 0 {
		return fmt.Errorf("%w: %d bytes after %s packet", ErrTrailingData, n, p.Type())
	}
	return nil
}
