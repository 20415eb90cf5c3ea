package filepacket

import (
	"testing"

	"github.com/marmos91/filepacket/pkg/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Header State
// ============================================================================

func TestHeaderZeroValue(t *testing.T) {
	var h Header
	assert.False(t, h.Initialized())
	assert.Equal(t, TypeNone, h.Type())
	assert.Equal(t, uint32(0), h.SequenceIndex())
	assert.Equal(t, HeaderSize, h.EncodedSize())
	assert.Equal(t, "NONE#0", h.String())
}

func TestHeaderInitialize(t *testing.T) {
	t.Run("SetsTypeAndSequence", func(t *testing.T) {
		var h Header
		h.Initialize(TypeData, 7)

		assert.True(t, h.Initialized())
		assert.Equal(t, TypeData, h.Type())
		assert.Equal(t, uint32(7), h.SequenceIndex())
		assert.Equal(t, "DATA#7", h.String())
	})

	t.Run("StartTagZeroIsInitialized", func(t *testing.T) {
		var h Header
		h.Initialize(TypeStart, 0)
		assert.Equal(t, TypeStart, h.Type())
	})

	t.Run("PanicsOnSecondInitialize", func(t *testing.T) {
		var h Header
		h.Initialize(TypeEnd, 1)
		assert.Panics(t, func() { h.Initialize(TypeEnd, 2) })
		assert.Equal(t, uint32(1), h.SequenceIndex())
	})

	t.Run("PanicsOnTypeOutsideCatalog", func(t *testing.T) {
		var h Header
		assert.Panics(t, func() { h.Initialize(TypeNone, 1) })
		assert.Panics(t, func() { h.Initialize(Type(4), 1) })
		assert.False(t, h.Initialized())
	})
}

// ============================================================================
// Header Wire Format
// ============================================================================

func TestHeaderEncode(t *testing.T) {
	t.Run("TagThenBigEndianSequence", func(t *testing.T) {
		var h Header
		h.Initialize(TypeCancel, 0x01020304)

		data := make([]byte, HeaderSize)
		require.NoError(t, h.Encode(serial.NewBuffer(data)))
		assert.Equal(t, []byte{0x03, 0x01, 0x02, 0x03, 0x04}, data)
	})

	t.Run("ShortBufferFails", func(t *testing.T) {
		var h Header
		h.Initialize(TypeStart, 1)

		err := h.Encode(serial.NewBuffer(make([]byte, HeaderSize-1)))
		assert.ErrorIs(t, err, serial.ErrBufferExhausted)
	})

	t.Run("PanicsWhenUninitialized", func(t *testing.T) {
		var h Header
		assert.Panics(t, func() {
			_ = h.Encode(serial.NewBuffer(make([]byte, HeaderSize)))
		})
	})
}

func TestDecodeHeader(t *testing.T) {
	t.Run("ValidTags", func(t *testing.T) {
		for _, typ := range Types {
			t.Run(typ.String(), func(t *testing.T) {
				buf := serial.NewBuffer([]byte{uint8(typ), 0, 0, 0x01, 0x00})
				h, err := DecodeHeader(buf)
				require.NoError(t, err)
				assert.Equal(t, typ, h.Type())
				assert.Equal(t, uint32(256), h.SequenceIndex())
				assert.Equal(t, HeaderSize, buf.Position())
			})
		}
	})

	t.Run("UnknownTagIsMalformed", func(t *testing.T) {
		for _, tag := range []byte{0x04, 0x7F, 0xFF} {
			_, err := DecodeHeader(serial.NewBuffer([]byte{tag, 0, 0, 0, 1}))
			assert.ErrorIs(t, err, serial.ErrMalformedData, "tag 0x%02X", tag)
		}
	})

	t.Run("TruncatedSequence", func(t *testing.T) {
		_, err := DecodeHeader(serial.NewBuffer([]byte{0x02, 0, 0}))
		assert.ErrorIs(t, err, serial.ErrBufferExhausted)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		_, err := DecodeHeader(serial.NewBuffer(nil))
		assert.ErrorIs(t, err, serial.ErrBufferExhausted)
	})
}

// ============================================================================
// Type
// ============================================================================

func TestTypeString(t *testing.T) {
	assert.Equal(t, "START", TypeStart.String())
	assert.Equal(t, "DATA", TypeData.String())
	assert.Equal(t, "END", TypeEnd.String())
	assert.Equal(t, "CANCEL", TypeCancel.String())
	assert.Equal(t, "NONE", TypeNone.String())
	assert.Equal(t, "UNKNOWN(0x10)", Type(0x10).String())
}

func TestParseType(t *testing.T) {
	for _, typ := range Types {
		got, err := ParseType(" " + typ.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	got, err := ParseType("end")
	require.NoError(t, err)
	assert.Equal(t, TypeEnd, got)

	_, err = ParseType("none")
	assert.Error(t, err)
	_, err = ParseType("ack")
	assert.Error(t, err)
}
