package prometheus

import (
	"testing"
	"time"

	"github.com/marmos91/filepacket/pkg/cfdp"
	"github.com/marmos91/filepacket/pkg/filepacket"
	"github.com/marmos91/filepacket/pkg/metrics"
	"github.com/marmos91/filepacket/pkg/serial"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enableMetrics(t *testing.T) {
	t.Helper()
	metrics.ResetRegistry()
	metrics.InitRegistry(false)
	t.Cleanup(metrics.ResetRegistry)
}

func TestNewCodecMetricsDisabled(t *testing.T) {
	metrics.ResetRegistry()
	assert.Nil(t, NewCodecMetrics())
	assert.Nil(t, metrics.NewCodecMetrics())
}

func TestConstructorRegisteredAtInit(t *testing.T) {
	enableMetrics(t)
	m := metrics.NewCodecMetrics()
	require.NotNil(t, m)
	_, ok := m.(*codecMetrics)
	assert.True(t, ok)
}

func TestCodecMetricsRecordsOperations(t *testing.T) {
	enableMetrics(t)
	m := NewCodecMetrics().(*codecMetrics)

	codec := filepacket.NewCodec(filepacket.CodecConfig{}, m)

	data, err := codec.Marshal(filepacket.NewEndPacket(42, cfdp.NewChecksum(0xDEADBEEF)))
	require.NoError(t, err)
	_, err = codec.Unmarshal(data)
	require.NoError(t, err)
	_, err = codec.Unmarshal([]byte{0x07})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("encode", "END", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("decode", "END", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("decode", "NONE", "malformed_data")))

	assert.Equal(t, 9.0, testutil.ToFloat64(m.bytes.WithLabelValues("encode")))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.bytes.WithLabelValues("decode")))
}

func TestCodecMetricsExcludeTrailingBytes(t *testing.T) {
	enableMetrics(t)
	m := NewCodecMetrics().(*codecMetrics)

	data, err := filepacket.Marshal(filepacket.NewEndPacket(42, cfdp.NewChecksum(0xDEADBEEF)))
	require.NoError(t, err)
	data = append(data, make([]byte, 100)...)

	_, err = filepacket.NewCodec(filepacket.CodecConfig{}, m).Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, 9.0, testutil.ToFloat64(m.bytes.WithLabelValues("decode")))
	assert.Equal(t, 9.0, histogramSum(t, "fpkt_codec_packet_size_bytes"))
}

func histogramSum(t *testing.T, name string) float64 {
	t.Helper()
	families, err := metrics.GetRegistry().Gather()
	require.NoError(t, err)

	var sum float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			sum += metric.GetHistogram().GetSampleSum()
		}
	}
	return sum
}

func TestCodecMetricsSkipsSizeOnError(t *testing.T) {
	enableMetrics(t)
	m := NewCodecMetrics().(*codecMetrics)

	m.RecordEncode(filepacket.TypeData, 100, time.Microsecond, serial.ErrBufferExhausted)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("encode", "DATA", "buffer_exhausted")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.packetSize))
	assert.Equal(t, 0, testutil.CollectAndCount(m.bytes))
}

func TestCodecMetricsGathered(t *testing.T) {
	enableMetrics(t)
	m := NewCodecMetrics()
	m.RecordDecode(filepacket.TypeCancel, 5, time.Microsecond, nil)

	families, err := metrics.GetRegistry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "fpkt_codec_operations_total")
	assert.Contains(t, names, "fpkt_codec_bytes_total")
}
