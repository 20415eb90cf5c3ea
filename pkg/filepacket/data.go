package filepacket

import (
	"fmt"

	"github.com/marmos91/filepacket/pkg/serial"
)

// MaxDataSize is the largest chunk a DATA packet can carry; the size field
// is 16 bits wide.
const MaxDataSize = 1<<16 - 1

// dataFixedSize covers the byte offset and the size field.
const dataFixedSize = 4 + 2

// DataPacket carries one chunk of file content at a byte offset.
type DataPacket struct {
	header     Header
	byteOffset uint32
	data       []byte
}

// NewDataPacket returns an initialized DATA packet holding a copy of data.
// It panics if data is longer than MaxDataSize.
func NewDataPacket(sequenceIndex, byteOffset uint32, data []byte) *DataPacket {
	p := &DataPacket{}
	p.Initialize(sequenceIndex, byteOffset, data)
	return p
}

// NewDataPacketFromHeader binds a decoded DATA header to an empty packet.
// It panics if h is not a DATA header.
func NewDataPacketFromHeader(h Header) *DataPacket {
	h.mustBe(TypeData, "bind")
	return &DataPacket{header: h}
}

// Initialize stamps the header with TypeData and copies the chunk.
func (p *DataPacket) Initialize(sequenceIndex, byteOffset uint32, data []byte) {
	if len(data) > MaxDataSize {
		panic(fmt.Sprintf("filepacket: data chunk of %d bytes exceeds %d", len(data), MaxDataSize))
	}
	p.header.Initialize(TypeData, sequenceIndex)
	p.byteOffset = byteOffset
	p.data = append([]byte(nil), data...)
}

func (p *DataPacket) Header() Header { return p.header }

func (p *DataPacket) Type() Type { return TypeData }

// ByteOffset returns the file offset of the first byte of the chunk.
func (p *DataPacket) ByteOffset() uint32 { return p.byteOffset }

// DataSize returns the chunk length as carried on the wire.
func (p *DataPacket) DataSize() uint16 { return uint16(len(p.data)) }

// Data returns a copy of the chunk.
func (p *DataPacket) Data() []byte {
	return append([]byte(nil), p.data...)
}

// EncodedSize returns header + offset + size field + chunk.
func (p *DataPacket) EncodedSize() int {
	return p.header.EncodedSize() + dataFixedSize + len(p.data)
}

// Encode writes header, byte offset, chunk size and chunk.
func (p *DataPacket) Encode(buf *serial.Buffer) error {
	p.header.mustBe(TypeData, "encode")
	if err := p.header.Encode(buf); err != nil {
		return err
	}
	if err := buf.PutUint32(p.byteOffset); err != nil {
		return err
	}
	if err := buf.PutUint16(uint16(len(p.data))); err != nil {
		return err
	}
	return buf.PutBytes(p.data)
}

// Decode reads the DATA payload following an already decoded header.
func (p *DataPacket) Decode(buf *serial.Buffer) error {
	p.header.mustBe(TypeData, "decode")
	offset, err := buf.GetUint32()
	if err != nil {
		return err
	}
	size, err := buf.GetUint16()
	if err != nil {
		return err
	}
	data, err := buf.GetBytes(int(size))
	if err != nil {
		return err
	}
	p.byteOffset = offset
	p.data = data
	return nil
}

func (p *DataPacket) sealed() {}
