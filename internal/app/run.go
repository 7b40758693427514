package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ruth561/DAG-BPF/internal/config"
	"github.com/ruth561/DAG-BPF/internal/ctxlog"
	"github.com/ruth561/DAG-BPF/internal/graph"
	"github.com/ruth561/DAG-BPF/internal/pool"
	"github.com/ruth561/DAG-BPF/internal/scheduler"
	"github.com/ruth561/DAG-BPF/internal/sysinfo"
	"golang.org/x/sync/errgroup"
)

// session is everything prepared from the configuration: the pool with every
// DAG task submitted, and the settings in effect.
type session struct {
	settings  config.Settings
	algorithm scheduler.Algorithm
	pool      *pool.Pool
	specs     []*graph.Spec
	handles   []pool.Handle
}

func (s *session) release() {
	for _, h := range s.handles {
		s.pool.Release(h)
	}
	s.handles = nil
}

// Run loads the configuration, assigns priorities to every DAG task, prints
// each task and publishes the source priorities to the per-unit registry.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
		defer func() { _ = a.closeHealthcheckServer(context.WithoutCancel(ctx)) }()
	}

	s, err := a.prepare(ctx)
	if err != nil {
		return err
	}
	defer s.release()

	if len(s.handles) == 0 {
		a.logger.Warn("No DAG tasks found in configuration, nothing to assign.")
		return nil
	}

	a.logger.Info("🚀 Assigning priorities...", "algorithm", s.algorithm, "tasks", len(s.handles))
	if err := a.assign(ctx, s); err != nil {
		return fmt.Errorf("priority assignment failed: %w", err)
	}

	for _, h := range s.handles {
		if err := s.pool.Dump(h, a.outW); err != nil {
			return fmt.Errorf("failed to write task %d: %w", h.ID(), err)
		}
	}

	if err := a.publish(ctx, s); err != nil {
		return err
	}

	a.logger.Info("🏁 Priority assignment finished.")
	return nil
}

// Check loads the configuration and validates every DAG task without
// assigning priorities.
func (a *App) Check(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	s, err := a.prepare(ctx)
	if err != nil {
		return err
	}
	defer s.release()

	for i, h := range s.handles {
		spec := s.specs[i]
		fmt.Fprintf(a.outW, "dag task %d: %d nodes, %d edges, relative_deadline=%d period=%d\n",
			h.ID(), len(spec.Nodes), len(spec.Edges), spec.RelativeDeadline, spec.Period)
	}
	a.logger.Info("✅ Configuration is valid.", "tasks", len(s.handles))
	return nil
}

// prepare loads the model, splits it into DAG tasks and submits them into a
// new pool.
func (a *App) prepare(ctx context.Context) (*session, error) {
	logger := ctxlog.FromContext(ctx)

	model, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.", "reactors", len(model.Reactors))

	settings := a.effectiveSettings(model.Settings)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	alg, err := scheduler.ParseAlgorithm(settings.Algorithm)
	if err != nil {
		return nil, err
	}

	b := graph.NewBuilder()
	for _, r := range model.Reactors {
		if err := b.Register(r); err != nil {
			return nil, err
		}
	}
	g := b.Build()
	specs, err := g.DAGTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to split reactors into dag tasks: %w", err)
	}
	logger.Debug("Reactor graph split into DAG tasks.", "reactors", g.Len(), "tasks", len(specs))

	p := pool.New(settings.PoolCapacity,
		pool.WithMetrics(a.metrics),
		pool.WithDebugChecks(a.config.DebugChecks),
		pool.WithLogger(logger),
	)
	s := &session{settings: settings, algorithm: alg, pool: p, specs: specs}
	for _, spec := range specs {
		h, err := graph.Submit(p, spec)
		if err != nil {
			s.release()
			return nil, err
		}
		s.handles = append(s.handles, h)
	}

	if err := p.Validate(); err != nil {
		s.release()
		return nil, fmt.Errorf("dag task pool is not well-formed: %w", err)
	}
	logger.Debug("All DAG tasks submitted and validated.", "in_use", p.InUse(), "capacity", p.Cap())
	return s, nil
}

// effectiveSettings layers command line overrides over file settings over
// the defaults.
func (a *App) effectiveSettings(fromFiles config.Settings) config.Settings {
	s := fromFiles.WithDefaults()
	if a.config.PoolCapacity > 0 {
		s.PoolCapacity = a.config.PoolCapacity
	}
	if a.config.Units > 0 {
		s.Units = a.config.Units
	}
	if a.config.Algorithm != "" {
		s.Algorithm = a.config.Algorithm
	}
	return s
}

// assign runs the algorithm on every task concurrently. Each goroutine owns
// exactly one handle, so no task is touched by two goroutines.
func (a *App) assign(ctx context.Context, s *session) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, h := range s.handles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if err := s.pool.Assign(h, s.algorithm, a.config.Now); err != nil {
				return fmt.Errorf("task %d: %w", h.ID(), err)
			}
			ctxlog.FromContext(ctx).Debug("Priorities assigned.", "task", h.ID(), "elapsed", time.Since(start))
			return nil
		})
	}
	return g.Wait()
}

// publish reports every task's source into the per-unit registry, task i on
// unit i mod units, and prints which unit ends up with the highest priority.
//
// The reported value is the task's absolute deadline minus the source
// priority. For both algorithms that is non-negative and grows with urgency.
func (a *App) publish(ctx context.Context, s *session) error {
	logger := ctxlog.FromContext(ctx)
	reg := sysinfo.New(s.settings.Units)

	for i, h := range s.handles {
		task, err := s.pool.Task(h)
		if err != nil {
			return err
		}
		src, err := task.Node(0)
		if err != nil {
			return err
		}
		urgency := task.Deadline() - src.Prio
		unit := i % reg.Units()
		if err := reg.Update(unit, int32(src.TID), urgency); err != nil {
			return err
		}
		logger.Debug("Reported source priority.", "unit", unit, "tid", src.TID, "priority", urgency)
	}

	best, err := reg.GlobalMax()
	if errors.Is(err, sysinfo.ErrNotFound) {
		a.metrics.RecordGlobalMax(sysinfo.Idle)
		fmt.Fprintln(a.outW, "global max: all units idle")
		return nil
	}
	if err != nil {
		return err
	}
	a.metrics.RecordGlobalMax(best.Priority)
	fmt.Fprintf(a.outW, "global max: unit=%d tid=%d priority=%d\n", best.Unit, best.JobID, best.Priority)
	logger.Info("📈 Highest priority unit determined.", slog.Int("unit", best.Unit), slog.Int64("priority", best.Priority))
	return nil
}
