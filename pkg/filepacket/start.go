package filepacket

import (
	"github.com/marmos91/filepacket/pkg/serial"
)

// StartPacket opens a transfer. It announces the file size and the source
// and destination paths.
type StartPacket struct {
	header          Header
	fileSize        uint32
	sourcePath      PathName
	destinationPath PathName
}

// NewStartPacket returns an initialized START packet.
func NewStartPacket(sequenceIndex, fileSize uint32, source, destination PathName) *StartPacket {
	p := &StartPacket{}
	p.Initialize(sequenceIndex, fileSize, source, destination)
	return p
}

// NewStartPacketFromHeader binds a decoded START header to an empty packet.
// It panics if h is not a START header.
func NewStartPacketFromHeader(h Header) *StartPacket {
	h.mustBe(TypeStart, "bind")
	return &StartPacket{header: h}
}

// Initialize stamps the header with TypeStart and stores the payload.
func (p *StartPacket) Initialize(sequenceIndex, fileSize uint32, source, destination PathName) {
	p.header.Initialize(TypeStart, sequenceIndex)
	p.fileSize = fileSize
	p.sourcePath = source
	p.destinationPath = destination
}

func (p *StartPacket) Header() Header { return p.header }

func (p *StartPacket) Type() Type { return TypeStart }

func (p *StartPacket) FileSize() uint32 { return p.fileSize }

func (p *StartPacket) SourcePath() PathName { return p.sourcePath }

func (p *StartPacket) DestinationPath() PathName { return p.destinationPath }

// EncodedSize returns header + file size + both length-prefixed paths.
func (p *StartPacket) EncodedSize() int {
	return p.header.EncodedSize() + 4 + p.sourcePath.EncodedSize() + p.destinationPath.EncodedSize()
}

// Encode writes header, file size, source path and destination path.
func (p *StartPacket) Encode(buf *serial.Buffer) error {
	p.header.mustBe(TypeStart, "encode")
	if err := p.header.Encode(buf); err != nil {
		return err
	}
	if err := buf.PutUint32(p.fileSize); err != nil {
		return err
	}
	if err := p.sourcePath.encode(buf); err != nil {
		return err
	}
	return p.destinationPath.encode(buf)
}

// Decode reads the START payload following an already decoded header.
func (p *StartPacket) Decode(buf *serial.Buffer) error {
	p.header.mustBe(TypeStart, "decode")
	size, err := buf.GetUint32()
	if err != nil {
		return err
	}
	src, err := getPathName(buf)
	if err != nil {
		return err
	}
	dst, err := getPathName(buf)
	if err != nil {
		return err
	}
	p.fileSize = size
	p.sourcePath = src
	p.destinationPath = dst
	return nil
}

func (p *StartPacket) sealed() {}
