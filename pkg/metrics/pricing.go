package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records catalog enrichment and combo ranking work.
type PricingMetrics struct {
	duration *prometheus.HistogramVec
	products prometheus.Counter
	combos   *prometheus.CounterVec
}

func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_operation_duration_seconds",
		Help:    "Duration of pricing operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	products := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_products_enriched_total",
		Help: "Products run through price enrichment.",
	})
	combos := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_combos_ranked_total",
		Help: "Combos produced by the ranking engine, by kind.",
	}, []string{"kind"})
	reg.MustRegister(duration, products, combos)
	return &PricingMetrics{duration: duration, products: products, combos: combos}
}

func (m *PricingMetrics) ObserveDuration(operation string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(d.Seconds())
}

func (m *PricingMetrics) AddEnriched(n int) {
	if m == nil || m.products == nil || n <= 0 {
		return
	}
	m.products.Add(float64(n))
}

func (m *PricingMetrics) AddCombos(kind string, n int) {
	if m == nil || m.combos == nil || n <= 0 {
		return
	}
	m.combos.WithLabelValues(normalizeLabel(kind)).Add(float64(n))
}
