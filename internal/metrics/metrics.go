// Package metrics holds the Prometheus instruments of the control plane.
//
// Every method is safe to call on a nil *Metrics, so components take an
// optional *Metrics and never check for it themselves.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Allocation outcomes, used as the "result" label of PoolAllocations.
const (
	AllocOK        = "ok"
	AllocExhausted = "exhausted"
	AllocInvalid   = "invalid"
)

// Metrics holds all Prometheus metrics of the control plane.
type Metrics struct {
	// Pool metrics
	PoolSlotsInUse  prometheus.Gauge
	PoolAllocations *prometheus.CounterVec
	PoolReleases    prometheus.Counter

	// Priority engine metrics
	PriorityAssignments *prometheus.CounterVec
	PriorityDuration    *prometheus.HistogramVec

	// Registry metrics
	RegistryGlobalMax prometheus.Gauge
}

// New creates a Metrics instance with every metric registered on registry.
func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		PoolSlotsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dagbpf_pool_slots_in_use",
				Help: "Number of DAG task slots currently allocated",
			},
		),
		PoolAllocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dagbpf_pool_allocations_total",
				Help: "Total number of DAG task allocation attempts by result",
			},
			[]string{"result"},
		),
		PoolReleases: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dagbpf_pool_releases_total",
				Help: "Total number of DAG task slots handed back to the pool",
			},
		),

		PriorityAssignments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dagbpf_priority_assignments_total",
				Help: "Total number of priority assignment runs by algorithm",
			},
			[]string{"algorithm"},
		),
		PriorityDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dagbpf_priority_duration_seconds",
				Help:    "Duration of a single priority assignment run in seconds",
				Buckets: []float64{1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2},
			},
			[]string{"algorithm"},
		),

		RegistryGlobalMax: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dagbpf_registry_global_max_priority",
				Help: "Highest priority reported by any unit at the last query, -1 when all units are idle",
			},
		),
	}
}

// RecordAlloc counts one allocation attempt and tracks the slots in use.
func (m *Metrics) RecordAlloc(result string, inUse int) {
	if m == nil {
		return
	}
	m.PoolAllocations.WithLabelValues(result).Inc()
	m.PoolSlotsInUse.Set(float64(inUse))
}

// RecordRelease counts one release and tracks the slots in use.
func (m *Metrics) RecordRelease(inUse int) {
	if m == nil {
		return
	}
	m.PoolReleases.Inc()
	m.PoolSlotsInUse.Set(float64(inUse))
}

// RecordAssignment counts one priority run of the given algorithm.
func (m *Metrics) RecordAssignment(algorithm string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.PriorityAssignments.WithLabelValues(algorithm).Inc()
	m.PriorityDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

// RecordGlobalMax publishes the result of the last registry query.
func (m *Metrics) RecordGlobalMax(priority int64) {
	if m == nil {
		return
	}
	m.RegistryGlobalMax.Set(float64(priority))
}
