package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/marmos91/filepacket/pkg/filepacket"
)

// packetView is the printable form of a decoded packet. Variant fields are
// omitted when they do not apply.
type packetView struct {
	Type            string  `json:"type" yaml:"type" cbor:"type"`
	SequenceIndex   uint32  `json:"sequence_index" yaml:"sequence_index" cbor:"sequence_index"`
	Size            int     `json:"size" yaml:"size" cbor:"size"`
	FileSize        *uint32 `json:"file_size,omitempty" yaml:"file_size,omitempty" cbor:"file_size,omitempty"`
	SourcePath      *string `json:"source_path,omitempty" yaml:"source_path,omitempty" cbor:"source_path,omitempty"`
	DestinationPath *string `json:"destination_path,omitempty" yaml:"destination_path,omitempty" cbor:"destination_path,omitempty"`
	ByteOffset      *uint32 `json:"byte_offset,omitempty" yaml:"byte_offset,omitempty" cbor:"byte_offset,omitempty"`
	DataSize        *uint16 `json:"data_size,omitempty" yaml:"data_size,omitempty" cbor:"data_size,omitempty"`
	Data            *string `json:"data,omitempty" yaml:"data,omitempty" cbor:"data,omitempty"`
	Checksum        *string `json:"checksum,omitempty" yaml:"checksum,omitempty" cbor:"checksum,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func newPacketView(p filepacket.Packet) packetView {
	v := packetView{
		Type:          p.Type().String(),
		SequenceIndex: p.Header().SequenceIndex(),
		Size:          p.EncodedSize(),
	}

	switch p := p.(type) {
	case *filepacket.StartPacket:
		v.FileSize = ptr(p.FileSize())
		v.SourcePath = ptr(p.SourcePath().String())
		v.DestinationPath = ptr(p.DestinationPath().String())
	case *filepacket.DataPacket:
		v.ByteOffset = ptr(p.ByteOffset())
		v.DataSize = ptr(p.DataSize())
		v.Data = ptr(hex.EncodeToString(p.Data()))
	case *filepacket.EndPacket:
		v.Checksum = ptr(p.Checksum().String())
	case *filepacket.CancelPacket:
	}
	return v
}

func (v packetView) Headers() []string { return []string{"Field", "Value"} }

func (v packetView) Rows() [][]string {
	rows := [][]string{
		{"type", v.Type},
		{"sequence_index", strconv.FormatUint(uint64(v.SequenceIndex), 10)},
		{"size", strconv.Itoa(v.Size)},
	}
	if v.FileSize != nil {
		rows = append(rows,
			[]string{"file_size", strconv.FormatUint(uint64(*v.FileSize), 10)},
			[]string{"source_path", *v.SourcePath},
			[]string{"destination_path", *v.DestinationPath})
	}
	if v.ByteOffset != nil {
		rows = append(rows,
			[]string{"byte_offset", strconv.FormatUint(uint64(*v.ByteOffset), 10)},
			[]string{"data_size", strconv.FormatUint(uint64(*v.DataSize), 10)},
			[]string{"data", *v.Data})
	}
	if v.Checksum != nil {
		rows = append(rows, []string{"checksum", *v.Checksum})
	}
	return rows
}

// encodedView is the printable result of an encode.
type encodedView struct {
	Type          string `json:"type" yaml:"type" cbor:"type"`
	SequenceIndex uint32 `json:"sequence_index" yaml:"sequence_index" cbor:"sequence_index"`
	Size          int    `json:"size" yaml:"size" cbor:"size"`
	Hex           string `json:"hex" yaml:"hex" cbor:"hex"`
}

// parseHex accepts hex with optional 0x prefix and embedded whitespace.
func parseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}
