package filepacket

import (
	"github.com/marmos91/filepacket/pkg/cfdp"
	"github.com/marmos91/filepacket/pkg/serial"
)

// EndPacket terminates a transfer and carries the file checksum.
type EndPacket struct {
	header        Header
	checksumValue uint32
}

// NewEndPacket returns an initialized END packet.
func NewEndPacket(sequenceIndex uint32, checksum cfdp.Checksum) *EndPacket {
	p := &EndPacket{}
	p.Initialize(sequenceIndex, checksum)
	return p
}

// NewEndPacketFromHeader binds an already decoded END header to an empty
// packet, ready for Decode. It panics if h is not an END header.
func NewEndPacketFromHeader(h Header) *EndPacket {
	h.mustBe(TypeEnd, "bind")
	return &EndPacket{header: h}
}

// Initialize stamps the header with TypeEnd and stores the checksum.
// It panics if the packet was already initialized.
func (p *EndPacket) Initialize(sequenceIndex uint32, checksum cfdp.Checksum) {
	p.header.Initialize(TypeEnd, sequenceIndex)
	p.SetChecksum(checksum)
}

func (p *EndPacket) Header() Header { return p.header }

func (p *EndPacket) Type() Type { return TypeEnd }

// EncodedSize returns the header size plus the checksum width.
func (p *EndPacket) EncodedSize() int {
	return p.header.EncodedSize() + cfdp.ChecksumSize
}

// Encode writes the header and then the checksum. On failure buf holds a
// partial packet and must be discarded.
func (p *EndPacket) Encode(buf *serial.Buffer) error {
	p.header.mustBe(TypeEnd, "encode")
	if err := p.header.Encode(buf); err != nil {
		return err
	}
	return buf.PutUint32(p.checksumValue)
}

// Decode reads the checksum. The header must already have been decoded and
// bound with NewEndPacketFromHeader.
func (p *EndPacket) Decode(buf *serial.Buffer) error {
	p.header.mustBe(TypeEnd, "decode")
	v, err := buf.GetUint32()
	if err != nil {
		return err
	}
	p.checksumValue = v
	return nil
}

// Checksum returns the transported checksum.
func (p *EndPacket) Checksum() cfdp.Checksum {
	return cfdp.NewChecksum(p.checksumValue)
}

// SetChecksum replaces the transported checksum. The value is not checked.
func (p *EndPacket) SetChecksum(checksum cfdp.Checksum) {
	p.checksumValue = checksum.Value()
}

func (p *EndPacket) sealed() {}
