package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "netconf"

// Registry holds the client's metrics on a private Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	capabilities prometheus.Gauge
	lastRun      prometheus.Gauge
}

// NewRegistry creates a registry with every metric registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client_config",
		Name:      "operations_total",
		Help:      "Configuration load and store steps by section and result",
	}, []string{"op", "section", "result"})

	r.capabilities = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "capabilities",
		Help:      "Number of capabilities the client advertises",
	})

	r.lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last CLI run",
	})

	r.registry.MustRegister(r.operations, r.capabilities, r.lastRun)
	return r
}

// RecordOperation counts one load or store step.
func (r *Registry) RecordOperation(op, section, result string) {
	r.operations.WithLabelValues(op, section, result).Inc()
}

// SetCapabilities sets the advertised capability count.
func (r *Registry) SetCapabilities(n int) {
	r.capabilities.Set(float64(n))
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile stamps the run time and writes all metrics to path in the
// Prometheus text format. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string, now time.Time) error {
	r.lastRun.Set(float64(now.Unix()))
	return prometheus.WriteToTextfile(path, r.registry)
}
