package pool

import (
	"errors"
	"fmt"
)

// Validate checks the pool's bookkeeping and every allocated task, returning
// all problems joined with errors.Join, or nil.
func (p *Pool) Validate() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error

	counted := 0
	for i := range p.slots {
		s := &p.slots[i]
		if s.gen == 0 {
			errs = append(errs, fmt.Errorf("slot %d: generation is zero", i))
		}
		if s.task.ID() != i {
			errs = append(errs, fmt.Errorf("slot %d: holds task id %d", i, s.task.ID()))
		}
		if !s.inUse {
			continue
		}
		counted++
		if err := s.task.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("slot %d: %w", i, err))
		}
	}
	if counted != p.inUse {
		errs = append(errs, fmt.Errorf("%d slots in use but counter says %d", counted, p.inUse))
	}

	if len(p.free)+p.inUse != len(p.slots) {
		errs = append(errs, fmt.Errorf("%d free + %d in use != capacity %d", len(p.free), p.inUse, len(p.slots)))
	}
	seen := make([]bool, len(p.slots))
	for _, idx := range p.free {
		if idx < 0 || idx >= len(p.slots) {
			errs = append(errs, fmt.Errorf("free list holds invalid slot %d", idx))
			continue
		}
		if seen[idx] {
			errs = append(errs, fmt.Errorf("free list holds slot %d twice", idx))
		}
		seen[idx] = true
		if p.slots[idx].inUse {
			errs = append(errs, fmt.Errorf("free list holds allocated slot %d", idx))
		}
	}

	return errors.Join(errs...)
}

// AssertWellFormed panics with the result of Validate if it is not nil.
func (p *Pool) AssertWellFormed() {
	if err := p.Validate(); err != nil {
		panic(err)
	}
}
