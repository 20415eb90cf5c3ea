package filepacket

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/marmos91/filepacket/internal/logger"
	"github.com/marmos91/filepacket/pkg/cfdp"
	"github.com/marmos91/filepacket/pkg/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedOp struct {
	op   string
	typ  Type
	size int
	err  error
}

type recordingMetrics struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (m *recordingMetrics) RecordEncode(t Type, size int, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, recordedOp{"encode", t, size, err})
}

func (m *recordingMetrics) RecordDecode(t Type, size int, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, recordedOp{"decode", t, size, err})
}

func TestCodecRoundTrip(t *testing.T) {
	m := &recordingMetrics{}
	c := NewCodec(CodecConfig{}, m)

	data, err := c.Marshal(NewEndPacket(42, cfdp.NewChecksum(0xDEADBEEF)))
	require.NoError(t, err)

	p, err := c.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, TypeEnd, p.Type())

	require.Len(t, m.ops, 2)
	assert.Equal(t, recordedOp{"encode", TypeEnd, 9, nil}, m.ops[0])
	assert.Equal(t, recordedOp{"decode", TypeEnd, 9, nil}, m.ops[1])
}

func TestCodecMaxPacketSize(t *testing.T) {
	m := &recordingMetrics{}
	c := NewCodec(CodecConfig{MaxPacketSize: 8}, m)

	t.Run("EncodeRejected", func(t *testing.T) {
		_, err := c.Marshal(NewEndPacket(1, cfdp.NewChecksum(1)))
		assert.ErrorIs(t, err, ErrPacketTooLarge)

		n, err := c.MarshalTo(make([]byte, 64), NewDataPacket(1, 0, []byte("abcd")))
		assert.ErrorIs(t, err, ErrPacketTooLarge)
		assert.Equal(t, 0, n)
	})

	t.Run("DecodeRejected", func(t *testing.T) {
		_, err := c.Unmarshal(make([]byte, 9))
		assert.ErrorIs(t, err, ErrPacketTooLarge)
	})

	t.Run("SmallPacketsPass", func(t *testing.T) {
		data, err := c.Marshal(NewCancelPacket(1))
		require.NoError(t, err)
		_, err = c.Unmarshal(data)
		require.NoError(t, err)
	})

	last := m.ops[len(m.ops)-3]
	assert.Equal(t, "decode", last.op)
	assert.Equal(t, TypeNone, last.typ)
	assert.ErrorIs(t, last.err, ErrPacketTooLarge)
}

func TestCodecStrictDecode(t *testing.T) {
	data, err := Marshal(NewCancelPacket(7))
	require.NoError(t, err)
	data = append(data, 0xFF)

	_, err = NewCodec(CodecConfig{}, nil).Unmarshal(data)
	assert.NoError(t, err)

	_, err = NewCodec(CodecConfig{StrictDecode: true}, nil).Unmarshal(data)
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestCodecDecodeIgnoresTrailingBytesInSize(t *testing.T) {
	data, err := Marshal(NewEndPacket(42, cfdp.NewChecksum(0xDEADBEEF)))
	require.NoError(t, err)
	data = append(data, make([]byte, 100)...)

	t.Run("Lenient", func(t *testing.T) {
		m := &recordingMetrics{}
		_, err := NewCodec(CodecConfig{}, m).Unmarshal(data)
		require.NoError(t, err)

		require.Len(t, m.ops, 1)
		assert.Equal(t, recordedOp{"decode", TypeEnd, 9, nil}, m.ops[0])
	})

	t.Run("StrictKeepsPacketType", func(t *testing.T) {
		m := &recordingMetrics{}
		_, err := NewCodec(CodecConfig{StrictDecode: true}, m).Unmarshal(data)
		require.ErrorIs(t, err, ErrTrailingData)
		assert.Contains(t, err.Error(), "100 bytes after END packet")

		require.Len(t, m.ops, 1)
		assert.Equal(t, TypeEnd, m.ops[0].typ)
		assert.Equal(t, 9, m.ops[0].size)
		assert.Equal(t, "trailing_data", ErrorKind(m.ops[0].err))
	})

	t.Run("FailedDecodeRecordsInputLength", func(t *testing.T) {
		m := &recordingMetrics{}
		_, err := NewCodec(CodecConfig{}, m).Unmarshal(data[:7])
		require.ErrorIs(t, err, serial.ErrBufferExhausted)

		require.Len(t, m.ops, 1)
		assert.Equal(t, TypeNone, m.ops[0].typ)
		assert.Equal(t, 7, m.ops[0].size)
	})
}

func TestCodecPropagatesCodecErrors(t *testing.T) {
	m := &recordingMetrics{}
	c := NewCodec(CodecConfig{}, m)

	_, err := c.Unmarshal([]byte{0x42})
	assert.ErrorIs(t, err, serial.ErrMalformedData)

	n, err := c.MarshalTo(make([]byte, 4), NewCancelPacket(1))
	assert.ErrorIs(t, err, serial.ErrBufferExhausted)
	assert.Equal(t, 0, n)

	require.Len(t, m.ops, 2)
	assert.Equal(t, "malformed_data", ErrorKind(m.ops[0].err))
	assert.Equal(t, TypeCancel, m.ops[1].typ)
}

func TestCodecConcurrentUse(t *testing.T) {
	m := &recordingMetrics{}
	c := NewCodec(CodecConfig{StrictDecode: true}, m)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seq uint32) {
			defer wg.Done()
			data, err := c.Marshal(NewDataPacket(seq, seq*10, []byte{byte(seq)}))
			assert.NoError(t, err)
			p, err := c.Unmarshal(data)
			assert.NoError(t, err)
			assert.Equal(t, seq, p.Header().SequenceIndex())
		}(uint32(i))
	}
	wg.Wait()

	assert.Len(t, m.ops, 16)
	assert.Equal(t, CodecConfig{StrictDecode: true}, c.Config())
}

func TestCodecDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "DEBUG", "text", false)
	t.Cleanup(func() { logger.InitWithWriter(os.Stderr, "INFO", "text", false) })

	c := NewCodec(CodecConfig{}, nil)
	data, err := c.Marshal(NewEndPacket(42, cfdp.NewChecksum(0xDEADBEEF)))
	require.NoError(t, err)
	_, err = c.Unmarshal(data[:7])
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "packet encoded")
	assert.Contains(t, out, "packet_type=END")
	assert.Contains(t, out, "checksum=0xDEADBEEF")
	assert.Contains(t, out, "packet decode failed")
	assert.Contains(t, out, "error_kind=buffer_exhausted")
	assert.Contains(t, out, "bytes=020000002adead")
}

func TestCodecDecodeFailureSilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "INFO", "text", false)
	t.Cleanup(func() { logger.InitWithWriter(os.Stderr, "INFO", "text", false) })

	_, err := NewCodec(CodecConfig{}, nil).Unmarshal([]byte{0x02, 0x00})
	require.Error(t, err)
	assert.Empty(t, buf.String())
}
