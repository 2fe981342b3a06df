package importer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes used as the status label.
const (
	statusOK      = "ok"
	statusError   = "error"
	statusSkipped = "skipped"
)

// Metrics holds the import collectors.
type Metrics struct {
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
	merged   prometheus.Counter
}

// NewMetrics creates the import collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semonto",
			Subsystem: "import",
			Name:      "fetch_total",
			Help:      "Imported ontologies fetched, by status.",
		}, []string{"status"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "semonto",
			Subsystem: "import",
			Name:      "fetch_duration_seconds",
			Help:      "Time to fetch and build one imported ontology.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
		merged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "semonto",
			Subsystem: "import",
			Name:      "merged_terms_total",
			Help:      "Terms merged from imported ontologies.",
		}),
	}
}
