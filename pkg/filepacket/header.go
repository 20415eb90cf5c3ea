package filepacket

import (
	"fmt"

	"github.com/marmos91/filepacket/pkg/serial"
)

// HeaderSize is the encoded size of a Header: a 1-byte type tag followed by
// a 4-byte sequence index.
const HeaderSize = 1 + 4

// Header is the preamble shared by every packet.
//
// The zero value is uninitialized. A header gets its type exactly once,
// either through Initialize on the sending side or through DecodeHeader on
// the receiving side.
type Header struct {
	typ           Type
	sequenceIndex uint32
	initialized   bool
}

// Initialize stamps the header with its type and sequence index.
//
// It panics if the header was already initialized or if t is not part of
// the catalog.
func (h *Header) Initialize(t Type, sequenceIndex uint32) {
	if h.initialized {
		panic(fmt.Sprintf("filepacket: header already initialized as %s", h.typ))
	}
	if !t.IsValid() {
		panic(fmt.Sprintf("filepacket: cannot initialize header with type %s", t))
	}
	h.typ = t
	h.sequenceIndex = sequenceIndex
	h.initialized = true
}

// Initialized reports whether the header has a type.
func (h Header) Initialized() bool {
	return h.initialized
}

// Type returns the packet type, or TypeNone for an uninitialized header.
func (h Header) Type() Type {
	if !h.initialized {
		return TypeNone
	}
	return h.typ
}

// SequenceIndex returns the sequence index.
func (h Header) SequenceIndex() uint32 {
	return h.sequenceIndex
}

// EncodedSize returns the number of bytes Encode writes.
func (h Header) EncodedSize() int {
	return HeaderSize
}

// Encode writes the type tag followed by the sequence index.
// The first cursor failure is returned unchanged.
func (h Header) Encode(buf *serial.Buffer) error {
	if !h.initialized {
		panic("filepacket: encode of uninitialized header")
	}
	if err := buf.PutUint8(uint8(h.typ)); err != nil {
		return err
	}
	return buf.PutUint32(h.sequenceIndex)
}

// DecodeHeader reads a header from buf.
//
// An unknown type tag fails with serial.ErrMalformedData. This is the only
// place where the type is checked against the wire; variants trust the
// header they are handed.
func DecodeHeader(buf *serial.Buffer) (Header, error) {
	t, err := getType(buf)
	if err != nil {
		return Header{}, err
	}
	seq, err := buf.GetUint32()
	if err != nil {
		return Header{}, err
	}
	return Header{typ: t, sequenceIndex: seq, initialized: true}, nil
}

// String returns "TYPE#seq".
func (h Header) String() string {
	return fmt.Sprintf("%s#%d", h.Type(), h.sequenceIndex)
}

// mustBe panics unless the header carries type want.
func (h Header) mustBe(want Type, op string) {
	if got := h.Type(); got != want {
		panic(fmt.Sprintf("filepacket: %s of %s packet with %s header", op, want, got))
	}
}
