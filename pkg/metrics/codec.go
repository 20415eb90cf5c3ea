package metrics

import "github.com/marmos91/filepacket/pkg/filepacket"

// NewCodecMetrics creates a Prometheus-backed filepacket.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called) or if no
// implementation has been registered. A nil result can be handed straight
// to filepacket.NewCodec, which then skips collection.
//
// Example usage:
//
//	metrics.InitRegistry(false)
//	codec := filepacket.NewCodec(cfg, metrics.NewCodecMetrics())
//
// Call it once per registry; collectors are registered on creation.
func NewCodecMetrics() filepacket.Metrics {
	if !IsEnabled() || newPrometheusCodecMetrics == nil {
		return nil
	}
	return newPrometheusCodecMetrics()
}

// newPrometheusCodecMetrics is set by pkg/metrics/prometheus.
var newPrometheusCodecMetrics func() filepacket.Metrics

// RegisterCodecMetricsConstructor registers the Prometheus codec metrics
// constructor. Called by pkg/metrics/prometheus during package initialization.
func RegisterCodecMetricsConstructor(constructor func() filepacket.Metrics) {
	newPrometheusCodecMetrics = constructor
}
