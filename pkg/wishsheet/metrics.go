package wishsheet

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Load outcomes recorded on wishsheet_sheet_loads_total.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Metrics holds the loader collectors.
type Metrics struct {
	Loads    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the loader collectors and registers them on reg.
// Collectors already registered on reg are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wishsheet",
			Name:      "sheet_loads_total",
			Help:      "Sheet loads by outcome.",
		}, []string{"sheet", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wishsheet",
			Name:      "sheet_load_seconds",
			Help:      "Time spent fetching and decoding a sheet.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"sheet"}),
	}
	if reg == nil {
		return m
	}
	m.Loads = register(reg, m.Loads)
	m.Duration = register(reg, m.Duration)
	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

func (m *Metrics) observe(sheet, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Loads.WithLabelValues(sheet, outcome).Inc()
	m.Duration.WithLabelValues(sheet).Observe(seconds)
}
