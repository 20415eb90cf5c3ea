// Package metrics wires optional Prometheus instrumentation into the codec.
//
// Metrics are disabled until InitRegistry is called. While disabled, every
// constructor returns nil and the codec skips collection entirely.
//
// The Prometheus implementations live in pkg/metrics/prometheus and register
// themselves here at init time, so this package never imports the
// implementation and the consumer interfaces stay free of Prometheus types.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registryMu sync.RWMutex
	registry   *prometheus.Registry
)

// InitRegistry enables metrics and returns the registry collectors are
// registered with. Calling it again returns the existing registry.
//
// When withRuntime is true the Go runtime and process collectors are
// registered as well.
func InitRegistry(withRuntime bool) *prometheus.Registry {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registry != nil {
		return registry
	}

	registry = prometheus.NewRegistry()
	if withRuntime {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry != nil
}

// GetRegistry returns the active registry, or nil when metrics are disabled.
func GetRegistry() *prometheus.Registry {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry
}

// ResetRegistry disables metrics and drops the registry. Collectors created
// before the reset keep working but are no longer gathered.
func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = nil
}
