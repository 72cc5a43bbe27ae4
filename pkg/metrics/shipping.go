package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShippingMetrics records shipping quote outcomes.
type ShippingMetrics struct {
	quoteDuration *prometheus.HistogramVec
	quoteWeight   prometheus.Histogram
	zeroCost      *prometheus.CounterVec
	snapshotCache *prometheus.CounterVec
}

// NewShippingMetrics registers the shipping metrics on the provided registerer.
func NewShippingMetrics(reg prometheus.Registerer) *ShippingMetrics {
	if reg == nil {
		return &ShippingMetrics{}
	}
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shipping_quote_duration_seconds",
		Help:    "Duration of shipping quotes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	quoteWeight := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shipping_quote_weight_kg",
		Help:    "Total cart weight of shipping quotes in kilograms.",
		Buckets: []float64{0.25, 0.5, 1, 2, 3, 5, 10, 20},
	})
	zeroCost := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_quote_zero_cost_total",
		Help: "Quotes that resolved to zero cost, by reason.",
	}, []string{"reason"})
	snapshotCache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_snapshot_cache_total",
		Help: "Shipping configuration snapshot cache lookups.",
	}, []string{"result"})
	reg.MustRegister(quoteDuration, quoteWeight, zeroCost, snapshotCache)
	return &ShippingMetrics{
		quoteDuration: quoteDuration,
		quoteWeight:   quoteWeight,
		zeroCost:      zeroCost,
		snapshotCache: snapshotCache,
	}
}

// ObserveQuote records one quote. Failed quotes carry no weight.
func (m *ShippingMetrics) ObserveQuote(duration time.Duration, weightKG float64, err error) {
	if m == nil || m.quoteDuration == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.quoteDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if err == nil {
		m.quoteWeight.Observe(weightKG)
	}
}

// IncZeroCost counts a quote that charged nothing.
func (m *ShippingMetrics) IncZeroCost(reason string) {
	if m == nil || m.zeroCost == nil {
		return
	}
	m.zeroCost.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncSnapshotCache counts a snapshot cache hit, miss or error.
func (m *ShippingMetrics) IncSnapshotCache(result string) {
	if m == nil || m.snapshotCache == nil {
		return
	}
	m.snapshotCache.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
