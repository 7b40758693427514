package pool

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ruth561/DAG-BPF/internal/dag"
	"github.com/ruth561/DAG-BPF/internal/metrics"
)

// Handle refers to an allocated task. The zero Handle is never valid.
type Handle struct {
	index int
	gen   uint32
}

// ID returns the id of the task behind the handle, which is its slot index.
func (h Handle) ID() int { return h.index }

func (h Handle) String() string {
	return fmt.Sprintf("task#%d/gen%d", h.index, h.gen)
}

type slot struct {
	task  *dag.Task
	gen   uint32
	inUse bool
}

// Pool is a fixed-capacity arena of dag.Task objects.
type Pool struct {
	mu    sync.Mutex
	slots []slot
	// free is a stack of unused slot indices; the next Alloc takes the top.
	free  []int
	inUse int

	limits  dag.Limits
	metrics *metrics.Metrics
	debug   bool
	logger  *slog.Logger
}

// New creates a pool with capacity task slots. It panics if capacity is not
// positive.
func New(capacity int, opts ...Option) *Pool {
	if capacity <= 0 {
		panic(fmt.Sprintf("pool: invalid capacity %d", capacity))
	}

	p := &Pool{
		limits: dag.DefaultLimits,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.slots = make([]slot, capacity)
	p.free = make([]int, 0, capacity)
	for i := range p.slots {
		p.slots[i] = slot{task: dag.NewTask(i, p.limits), gen: 1}
	}
	// Pushed in reverse so that slot 0 is handed out first.
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// Cap returns the number of slots.
func (p *Pool) Cap() int { return len(p.slots) }

// InUse returns the number of allocated slots.
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse
}

// Limits returns the per-task limits every slot was created with.
func (p *Pool) Limits() dag.Limits { return p.limits }

// Alloc takes a free slot and initializes its task with a source node.
//
// When the task cannot be initialized (non-positive relative deadline or
// negative source weight) the slot is returned to the pool and the dag error
// is passed through.
func (p *Pool) Alloc(srcTID dag.TID, srcWeight, relativeDeadline, period int64) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) == 0 {
		p.metrics.RecordAlloc(metrics.AllocExhausted, p.inUse)
		p.logger.Warn("DAG task pool exhausted.", "capacity", len(p.slots), "src_tid", srcTID)
		return Handle{}, fmt.Errorf("%w: all %d slots in use", ErrPoolExhausted, len(p.slots))
	}

	idx := p.free[len(p.free)-1]
	s := &p.slots[idx]
	if err := s.task.Init(srcTID, srcWeight, relativeDeadline, period); err != nil {
		p.metrics.RecordAlloc(metrics.AllocInvalid, p.inUse)
		return Handle{}, err
	}

	p.free = p.free[:len(p.free)-1]
	s.inUse = true
	p.inUse++
	p.metrics.RecordAlloc(metrics.AllocOK, p.inUse)

	h := Handle{index: idx, gen: s.gen}
	p.logger.Debug("Allocated DAG task.", "handle", h, "src_tid", srcTID,
		"relative_deadline", relativeDeadline, "period", period)
	return h, nil
}

// Release hands the slot behind h back to the pool. It panics if h is not
// currently allocated, including when it has already been released.
func (p *Pool) Release(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.lookupLocked(h)
	if !ok {
		panic(fmt.Sprintf("pool: release of unowned handle %v", h))
	}

	s.task.Reset()
	s.inUse = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	p.free = append(p.free, h.index)
	p.inUse--
	p.metrics.RecordRelease(p.inUse)
	p.logger.Debug("Released DAG task.", "handle", h)
}

// Task returns the task behind h. The caller owns it until Release.
func (p *Pool) Task(h Handle) (*dag.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.lookupLocked(h)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	return s.task, nil
}

func (p *Pool) lookupLocked(h Handle) (*slot, bool) {
	if h.index < 0 || h.index >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[h.index]
	if !s.inUse || s.gen != h.gen {
		return nil, false
	}
	return s, true
}

// assert panics when debug checks are on and t is no longer well-formed.
func (p *Pool) assert(t *dag.Task) {
	if !p.debug {
		return
	}
	if err := t.Validate(); err != nil {
		panic(err)
	}
}
