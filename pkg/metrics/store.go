package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records state-store activity: applied mutations, hydration
// outcomes and persistence failures. All methods are nil-safe so callers can
// run without a registry.
type StoreMetrics struct {
	mutations    *prometheus.CounterVec
	hydrations   *prometheus.CounterVec
	saveFailures *prometheus.CounterVec
}

// NewStoreMetrics registers the state-store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_store_mutations_total",
		Help: "Reducer mutations applied, by domain and action.",
	}, []string{"domain", "action"})
	hydrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_store_hydrations_total",
		Help: "Hydration attempts, by domain and outcome.",
	}, []string{"domain", "outcome"})
	saveFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_store_save_failures_total",
		Help: "Write-through persistence failures, by domain.",
	}, []string{"domain"})
	reg.MustRegister(mutations, hydrations, saveFailures)
	return &StoreMetrics{
		mutations:    mutations,
		hydrations:   hydrations,
		saveFailures: saveFailures,
	}
}

// Hydration outcomes.
const (
	HydrationLoaded   = "loaded"
	HydrationEmpty    = "empty"
	HydrationFallback = "fallback"
)

// IncMutation counts one applied reducer action.
func (m *StoreMetrics) IncMutation(domain, action string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(domain, action).Inc()
}

// IncHydration counts one hydration attempt with its outcome.
func (m *StoreMetrics) IncHydration(domain, outcome string) {
	if m == nil || m.hydrations == nil {
		return
	}
	m.hydrations.WithLabelValues(domain, outcome).Inc()
}

// IncSaveFailure counts one failed write-through.
func (m *StoreMetrics) IncSaveFailure(domain string) {
	if m == nil || m.saveFailures == nil {
		return
	}
	m.saveFailures.WithLabelValues(domain).Inc()
}
