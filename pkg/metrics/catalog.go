package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// CatalogMetrics counts catalog write operations by outcome.
type CatalogMetrics struct {
	writes *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bakery",
		Name:      "catalog_writes_total",
		Help:      "Catalog write operations partitioned by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(writes)
	return &CatalogMetrics{writes: writes}
}

// ObserveWrite increments the write counter for operation with outcome.
func (c *CatalogMetrics) ObserveWrite(operation, outcome string) {
	if c == nil || c.writes == nil {
		return
	}
	c.writes.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
