package filepacket

import (
	"github.com/marmos91/filepacket/pkg/serial"
)

// CancelPacket aborts a transfer. It has no payload.
type CancelPacket struct {
	header Header
}

// NewCancelPacket returns an initialized CANCEL packet.
func NewCancelPacket(sequenceIndex uint32) *CancelPacket {
	p := &CancelPacket{}
	p.Initialize(sequenceIndex)
	return p
}

// NewCancelPacketFromHeader binds a decoded CANCEL header.
// It panics if h is not a CANCEL header.
func NewCancelPacketFromHeader(h Header) *CancelPacket {
	h.mustBe(TypeCancel, "bind")
	return &CancelPacket{header: h}
}

func (p *CancelPacket) Initialize(sequenceIndex uint32) {
	p.header.Initialize(TypeCancel, sequenceIndex)
}

func (p *CancelPacket) Header() Header { return p.header }

func (p *CancelPacket) Type() Type { return TypeCancel }

func (p *CancelPacket) EncodedSize() int {
	return p.header.EncodedSize()
}

func (p *CancelPacket) Encode(buf *serial.Buffer) error {
	p.header.mustBe(TypeCancel, "encode")
	return p.header.Encode(buf)
}

// Decode only checks the bound header; CANCEL has nothing after it.
func (p *CancelPacket) Decode(buf *serial.Buffer) error {
	p.header.mustBe(TypeCancel, "decode")
	return nil
}

func (p *CancelPacket) sealed() {}
