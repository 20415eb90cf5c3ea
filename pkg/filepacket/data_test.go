package filepacket

import (
	"bytes"
	"testing"

	"github.com/marmos91/filepacket/pkg/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataPacketEncode(t *testing.T) {
	p := NewDataPacket(2, 4096, []byte{0xAA, 0xBB, 0xCC})
	require.Equal(t, HeaderSize+6+3, p.EncodedSize())
	assert.Equal(t, uint16(3), p.DataSize())

	data, err := Marshal(p)
	require.NoError(t, err)

	expected := []byte{
		0x01, 0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x10, 0x00,
		0x00, 0x03,
		0xAA, 0xBB, 0xCC,
	}
	assert.Equal(t, expected, data)
}

func TestDataPacketRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"Small", []byte("hello")},
		{"Max", bytes.Repeat([]byte{0x5A}, MaxDataSize)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := Marshal(NewDataPacket(11, 0x10000, tc.data))
			require.NoError(t, err)

			got, err := UnmarshalStrict(data)
			require.NoError(t, err)

			p := got.(*DataPacket)
			assert.Equal(t, uint32(11), p.Header().SequenceIndex())
			assert.Equal(t, uint32(0x10000), p.ByteOffset())
			assert.Equal(t, len(tc.data), int(p.DataSize()))
			assert.True(t, bytes.Equal(tc.data, p.Data()))
		})
	}
}

func TestDataPacketCopiesChunk(t *testing.T) {
	chunk := []byte{1, 2, 3}
	p := NewDataPacket(0, 0, chunk)

	chunk[0] = 0xFF
	assert.Equal(t, byte(1), p.Data()[0])

	out := p.Data()
	out[1] = 0xFF
	assert.Equal(t, byte(2), p.Data()[1])
}

func TestDataPacketOversizePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewDataPacket(0, 0, make([]byte, MaxDataSize+1))
	})
}

func TestDataPacketDeclaredSizeExceedsInput(t *testing.T) {
	data := []byte{
		0x01, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x08,
		0x01, 0x02,
	}
	_, err := Unmarshal(data)
	assert.ErrorIs(t, err, serial.ErrBufferExhausted)
}

func TestDataPacketContract(t *testing.T) {
	var h Header
	h.Initialize(TypeCancel, 0)
	assert.Panics(t, func() { NewDataPacketFromHeader(h) })

	p := NewDataPacket(0, 0, nil)
	assert.Panics(t, func() { p.Initialize(1, 0, nil) })
}
