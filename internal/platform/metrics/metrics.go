package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roster"

// Registry owns the process collectors and satisfies the distribution
// module's metrics port.
type Registry struct {
	registry *prometheus.Registry

	assignments    *prometheus.CounterVec
	skips          prometheus.Counter
	importNames    *prometheus.CounterVec
	importDuration prometheus.Histogram
	orphans        prometheus.Counter
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_total",
			Help:      "Single client assignments by outcome.",
		}, []string{"outcome"}),
		skips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rotation_skips_total",
			Help:      "Executives skipped in the rotation.",
		}),
		importNames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_names_total",
			Help:      "Names seen by bulk imports by result.",
		}, []string{"result"}),
		importDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Bulk import latency.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
		orphans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_orphans_total",
			Help:      "Clients seen without a resolvable executive.",
		}),
	}
	r.registry.MustRegister(
		r.assignments,
		r.skips,
		r.importNames,
		r.importDuration,
		r.orphans,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) ObserveAssignment(outcome string) {
	r.assignments.WithLabelValues(outcome).Inc()
}

func (r *Registry) ObserveSkip() {
	r.skips.Inc()
}

func (r *Registry) ObserveImport(created int, rejected int, elapsed time.Duration) {
	r.importNames.WithLabelValues("created").Add(float64(created))
	r.importNames.WithLabelValues("rejected").Add(float64(rejected))
	r.importDuration.Observe(elapsed.Seconds())
}

func (r *Registry) ObserveOrphans(count int) {
	r.orphans.Add(float64(count))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
