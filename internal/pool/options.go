package pool

import (
	"log/slog"

	"github.com/ruth561/DAG-BPF/internal/dag"
	"github.com/ruth561/DAG-BPF/internal/metrics"
)

// Option configures a Pool.
type Option func(*Pool)

// WithLimits sets the capacity of every task in the pool. The default is
// dag.DefaultLimits.
func WithLimits(l dag.Limits) Option {
	return func(p *Pool) { p.limits = l }
}

// WithMetrics records allocation, release and priority metrics into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pool) { p.metrics = m }
}

// WithDebugChecks makes every mutating operation re-validate the task it
// touched and panic when the task is no longer well-formed.
func WithDebugChecks(enabled bool) Option {
	return func(p *Pool) { p.debug = enabled }
}

// WithLogger sets the logger for pool events. Pools log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) { p.logger = l }
}
