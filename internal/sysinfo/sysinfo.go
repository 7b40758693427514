// Package sysinfo keeps one entry per processing unit recording which job is
// running there and at what priority, and answers which unit currently runs
// the highest-priority job.
//
// Updates arrive from every unit concurrently. A single mutex guards the
// table and is held only for a scan of at most Units() entries. No method
// allocates, so the registry may be called from scheduling hot paths.
//
// Priorities are compared as plain integers: a larger value wins. Callers
// that feed values where smaller means more urgent (HLBS latest start times,
// for example) must invert them before calling Update.
package sysinfo

import (
	"errors"
	"sync"
)

// Idle is the job id and priority of a unit that runs nothing.
const Idle = -1

var (
	// ErrOutOfRange is returned for a unit outside [0, Units()).
	ErrOutOfRange = errors.New("unit out of range")
	// ErrNotFound is returned by GlobalMax when no unit has a non-negative
	// priority.
	ErrNotFound = errors.New("no unit is running a job")
)

// Entry is the state of one unit.
type Entry struct {
	Unit     int
	JobID    int32
	Priority int64
}

type slot struct {
	jobID    int32
	priority int64
}

// Registry is the per-unit priority table.
type Registry struct {
	mu    sync.Mutex
	slots []slot
}

// New creates a registry for units processing units, all idle. It panics if
// units is not positive.
func New(units int) *Registry {
	if units <= 0 {
		panic("sysinfo: number of units must be positive")
	}
	r := &Registry{slots: make([]slot, units)}
	for i := range r.slots {
		r.slots[i] = slot{jobID: Idle, priority: Idle}
	}
	return r
}

// Units returns the number of units in the table.
func (r *Registry) Units() int { return len(r.slots) }

// Update records that unit now runs jobID at priority. The previous entry of
// the unit is overwritten unconditionally.
func (r *Registry) Update(unit int, jobID int32, priority int64) error {
	if unit < 0 || unit >= len(r.slots) {
		return ErrOutOfRange
	}
	r.mu.Lock()
	r.slots[unit] = slot{jobID: jobID, priority: priority}
	r.mu.Unlock()
	return nil
}

// Clear marks unit as idle.
func (r *Registry) Clear(unit int) error {
	return r.Update(unit, Idle, Idle)
}

// GlobalMax returns the unit with the strictly greatest non-negative
// priority. When several units share it, the lowest unit wins.
func (r *Registry) GlobalMax() (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	best := Entry{Unit: -1, JobID: Idle, Priority: Idle}
	for i, s := range r.slots {
		if s.priority > best.Priority {
			best = Entry{Unit: i, JobID: s.jobID, Priority: s.priority}
		}
	}
	if best.Unit < 0 {
		return Entry{}, ErrNotFound
	}
	return best, nil
}

// Snapshot appends a consistent copy of every unit's entry to dst and returns
// the extended slice. Passing a slice with enough capacity avoids allocation.
func (r *Registry) Snapshot(dst []Entry) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.slots {
		dst = append(dst, Entry{Unit: i, JobID: s.jobID, Priority: s.priority})
	}
	return dst
}
