package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/ruth561/DAG-BPF/internal/config"
	"github.com/ruth561/DAG-BPF/internal/dag"
	"github.com/ruth561/DAG-BPF/internal/schema"
)

// translateFile converts one decoded file into a partial model.
func (l *Loader) translateFile(f *schema.File, evalCtx *hcl.EvalContext) (*config.Model, error) {
	m := &config.Model{}
	if f.Settings != nil {
		m.Settings = translateSettings(f.Settings)
	}
	for _, r := range f.Reactors {
		reactor, err := translateReactor(r, evalCtx)
		if err != nil {
			return nil, err
		}
		m.Reactors = append(m.Reactors, reactor)
	}
	return m, nil
}

func translateSettings(s *schema.Settings) config.Settings {
	var out config.Settings
	if s.PoolCapacity != nil {
		out.PoolCapacity = *s.PoolCapacity
	}
	if s.Units != nil {
		out.Units = *s.Units
	}
	if s.Algorithm != nil {
		out.Algorithm = *s.Algorithm
	}
	return out
}

// translateReactor converts the HCL-specific reactor schema into the agnostic
// model. Missing period and relative_deadline become -1.
func translateReactor(r *schema.Reactor, evalCtx *hcl.EvalContext) (*config.Reactor, error) {
	out := &config.Reactor{
		Name:             r.Name,
		TID:              dag.TID(r.TID),
		Period:           -1,
		RelativeDeadline: -1,
		Subscribes:       r.Subscribes,
		Publishes:        r.Publishes,
	}

	weight, ok, err := evalInt64(r.Weight, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("reactor %q: failed to evaluate weight: %w", r.Name, err)
	}
	if !ok {
		return nil, fmt.Errorf("reactor %q: weight must not be null", r.Name)
	}
	out.Weight = weight

	if v, ok, err := evalInt64(r.Period, evalCtx); err != nil {
		return nil, fmt.Errorf("reactor %q: failed to evaluate period: %w", r.Name, err)
	} else if ok {
		out.Period = v
	}

	if v, ok, err := evalInt64(r.RelativeDeadline, evalCtx); err != nil {
		return nil, fmt.Errorf("reactor %q: failed to evaluate relative_deadline: %w", r.Name, err)
	} else if ok {
		out.RelativeDeadline = v
	}

	return out, nil
}
