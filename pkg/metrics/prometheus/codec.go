// Package prometheus provides the Prometheus implementations of the metrics
// interfaces declared by the codec. Importing it for side effects registers
// the constructors with pkg/metrics.
package prometheus

import (
	"time"

	"github.com/marmos91/filepacket/pkg/filepacket"
	"github.com/marmos91/filepacket/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func init() {
	metrics.RegisterCodecMetricsConstructor(NewCodecMetrics)
}

// codecMetrics is the Prometheus implementation of filepacket.Metrics.
type codecMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	packetSize *prometheus.HistogramVec
	bytes      *prometheus.CounterVec
}

// NewCodecMetrics creates a new Prometheus-backed filepacket.Metrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewCodecMetrics() filepacket.Metrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &codecMetrics{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fpkt_codec_operations_total",
				Help: "Total number of codec operations by operation, packet type and outcome",
			},
			[]string{"operation", "packet_type", "outcome"}, // outcome: see filepacket.ErrorKind
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "fpkt_codec_duration_microseconds",
				Help: "Duration of codec operations in microseconds",
				Buckets: []float64{
					0.5, // header-only packets
					1,
					5,
					10,
					50,
					100,
					500, // full 64KB DATA chunks
					1000,
				},
			},
			[]string{"operation", "packet_type"},
		),
		packetSize: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "fpkt_codec_packet_size_bytes",
				Help: "Distribution of encoded packet sizes",
				Buckets: []float64{
					5,     // CANCEL
					9,     // END
					64,    // START with short paths
					512,   // small DATA chunks
					4096,  // 4KB
					16384, // 16KB
					65546, // largest DATA packet
				},
			},
			[]string{"operation", "packet_type"},
		),
		bytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fpkt_codec_bytes_total",
				Help: "Total bytes successfully encoded or decoded",
			},
			[]string{"operation"},
		),
	}
}

func (m *codecMetrics) RecordEncode(t filepacket.Type, size int, duration time.Duration, err error) {
	m.observe("encode", t, size, duration, err)
}

func (m *codecMetrics) RecordDecode(t filepacket.Type, size int, duration time.Duration, err error) {
	m.observe("decode", t, size, duration, err)
}

func (m *codecMetrics) observe(op string, t filepacket.Type, size int, duration time.Duration, err error) {
	typ := t.String()
	m.operations.WithLabelValues(op, typ, filepacket.ErrorKind(err)).Inc()
	m.duration.WithLabelValues(op, typ).Observe(float64(duration.Nanoseconds()) / 1e3)

	if err != nil {
		return
	}
	m.packetSize.WithLabelValues(op, typ).Observe(float64(size))
	m.bytes.WithLabelValues(op).Add(float64(size))
}
