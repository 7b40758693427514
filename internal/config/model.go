package config

import (
	"errors"
	"fmt"

	"github.com/ruth561/DAG-BPF/internal/dag"
)

// Model is the unified, format-agnostic representation of the entire
// application configuration: process settings and every reactor.
type Model struct {
	Settings Settings
	Reactors []*Reactor
}

// Settings are the tunables that may be given in configuration files. Zero
// values mean "not set" and are filled from DefaultSettings.
type Settings struct {
	// PoolCapacity is the number of DAG task slots.
	PoolCapacity int
	// Units is the number of processing units tracked by the registry.
	Units int
	// Algorithm is the name of the priority heuristic, see scheduler.ParseAlgorithm.
	Algorithm string
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() Settings {
	return Settings{
		PoolCapacity: 10,
		Units:        4,
		Algorithm:    "helt",
	}
}

// WithDefaults returns s with every unset field taken from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.PoolCapacity == 0 {
		s.PoolCapacity = d.PoolCapacity
	}
	if s.Units == 0 {
		s.Units = d.Units
	}
	if s.Algorithm == "" {
		s.Algorithm = d.Algorithm
	}
	return s
}

// Validate reports settings that no pool or registry can be built from. It
// is meant to run after WithDefaults.
func (s Settings) Validate() error {
	var errs []error
	if s.PoolCapacity <= 0 {
		errs = append(errs, fmt.Errorf("pool_capacity must be positive, got %d", s.PoolCapacity))
	}
	if s.Units <= 0 {
		errs = append(errs, fmt.Errorf("units must be positive, got %d", s.Units))
	}
	return errors.Join(errs...)
}

// Reactor is one job of the system. Jobs are connected by topics: a reactor
// that publishes a topic precedes every reactor that subscribes to it.
//
// All times are in nanoseconds. A non-positive Period marks an event-driven
// reactor; a non-positive RelativeDeadline means the reactor does not
// constrain the deadline of its DAG task.
type Reactor struct {
	Name             string
	TID              dag.TID
	Weight           int64
	Period           int64
	RelativeDeadline int64
	Subscribes       []string
	Publishes        []string
}

// TimerDriven reports whether the reactor is released by a timer rather than
// by incoming messages.
func (r *Reactor) TimerDriven() bool { return r.Period > 0 }

func (r *Reactor) String() string {
	return fmt.Sprintf("reactor %q (tid %d)", r.Name, r.TID)
}

// Merge appends the reactors of other to m. Settings set in other override
// those of m field by field.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.Settings.PoolCapacity != 0 {
		m.Settings.PoolCapacity = other.Settings.PoolCapacity
	}
	if other.Settings.Units != 0 {
		m.Settings.Units = other.Settings.Units
	}
	if other.Settings.Algorithm != "" {
		m.Settings.Algorithm = other.Settings.Algorithm
	}
	m.Reactors = append(m.Reactors, other.Reactors...)
}
