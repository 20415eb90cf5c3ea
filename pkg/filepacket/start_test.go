package filepacket

import (
	"strings"
	"testing"

	"github.com/marmos91/filepacket/pkg/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathName(t *testing.T) {
	t.Run("MaxLengthAccepted", func(t *testing.T) {
		p, err := NewPathName(strings.Repeat("a", MaxPathLength))
		require.NoError(t, err)
		assert.Equal(t, MaxPathLength, p.Len())
		assert.Equal(t, MaxPathLength+1, p.EncodedSize())
	})

	t.Run("TooLongRejected", func(t *testing.T) {
		_, err := NewPathName(strings.Repeat("a", MaxPathLength+1))
		assert.ErrorIs(t, err, ErrPathTooLong)
		assert.Panics(t, func() { MustPathName(strings.Repeat("a", 300)) })
	})

	t.Run("Empty", func(t *testing.T) {
		p := MustPathName("")
		assert.Equal(t, 1, p.EncodedSize())
		assert.Equal(t, "", p.String())
	})
}

func TestStartPacketEncode(t *testing.T) {
	p := NewStartPacket(1, 1024, MustPathName("a.txt"), MustPathName("/b"))
	require.Equal(t, HeaderSize+4+6+3, p.EncodedSize())

	data, err := Marshal(p)
	require.NoError(t, err)

	expected := []byte{
		0x00, 0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x04, 0x00,
		0x05, 'a', '.', 't', 'x', 't',
		0x02, '/', 'b',
	}
	assert.Equal(t, expected, data)
}

func TestStartPacketRoundTrip(t *testing.T) {
	src := MustPathName("/var/spool/outbound/image.bin")
	dst := MustPathName(strings.Repeat("d", MaxPathLength))
	orig := NewStartPacket(3, 0xFFFFFFFF, src, dst)

	data, err := Marshal(orig)
	require.NoError(t, err)

	got, err := UnmarshalStrict(data)
	require.NoError(t, err)

	p, ok := got.(*StartPacket)
	require.True(t, ok)
	assert.Equal(t, uint32(3), p.Header().SequenceIndex())
	assert.Equal(t, uint32(0xFFFFFFFF), p.FileSize())
	assert.Equal(t, src, p.SourcePath())
	assert.Equal(t, dst, p.DestinationPath())
	assert.Equal(t, orig.EncodedSize(), p.EncodedSize())
}

func TestStartPacketTruncated(t *testing.T) {
	data, err := Marshal(NewStartPacket(1, 10, MustPathName("src"), MustPathName("dst")))
	require.NoError(t, err)

	// Every strict prefix must fail cleanly.
	for n := HeaderSize; n < len(data); n++ {
		buf := serial.NewBuffer(data[:n])
		h, err := DecodeHeader(buf)
		require.NoError(t, err)

		p := NewStartPacketFromHeader(h)
		assert.ErrorIs(t, p.Decode(buf), serial.ErrBufferExhausted, "prefix %d", n)
		assert.Equal(t, "", p.SourcePath().String())
	}
}

func TestStartPacketShortBuffer(t *testing.T) {
	p := NewStartPacket(1, 10, MustPathName("src"), MustPathName("dst"))
	_, err := MarshalTo(make([]byte, p.EncodedSize()-1), p)
	assert.ErrorIs(t, err, serial.ErrBufferExhausted)
}

func TestStartPacketContract(t *testing.T) {
	var h Header
	h.Initialize(TypeEnd, 1)
	assert.Panics(t, func() { NewStartPacketFromHeader(h) })

	var zero StartPacket
	assert.Panics(t, func() { _ = zero.Encode(serial.NewBuffer(make([]byte, 64))) })
}
