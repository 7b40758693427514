package pool

import (
	"io"
	"time"

	"github.com/ruth561/DAG-BPF/internal/dag"
	"github.com/ruth561/DAG-BPF/internal/scheduler"
)

// AddNode adds a node to the task behind h. See dag.Task.AddNode.
func (p *Pool) AddNode(h Handle, tid dag.TID, weight int64) (int, error) {
	t, err := p.Task(h)
	if err != nil {
		return -1, err
	}
	idx, err := t.AddNode(tid, weight)
	if err == nil {
		p.assert(t)
	}
	return idx, err
}

// AddEdge adds an edge to the task behind h. See dag.Task.AddEdge.
func (p *Pool) AddEdge(h Handle, fromTID, toTID dag.TID) (int, error) {
	t, err := p.Task(h)
	if err != nil {
		return -1, err
	}
	idx, err := t.AddEdge(fromTID, toTID)
	if err == nil {
		p.assert(t)
	}
	return idx, err
}

func (p *Pool) NodeWeight(h Handle, idx int) (int64, error) {
	t, err := p.Task(h)
	if err != nil {
		return 0, err
	}
	return t.NodeWeight(idx)
}

func (p *Pool) SetNodeWeight(h Handle, idx int, weight int64) error {
	t, err := p.Task(h)
	if err != nil {
		return err
	}
	if err := t.SetNodeWeight(idx, weight); err != nil {
		return err
	}
	p.assert(t)
	return nil
}

func (p *Pool) NodePriority(h Handle, idx int) (int64, error) {
	t, err := p.Task(h)
	if err != nil {
		return 0, err
	}
	return t.NodePriority(idx)
}

// Assign runs the given algorithm on the task behind h.
func (p *Pool) Assign(h Handle, alg scheduler.Algorithm, now int64) error {
	t, err := p.Task(h)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := scheduler.Assign(t, alg, now); err != nil {
		return err
	}
	p.metrics.RecordAssignment(alg.String(), time.Since(start))
	p.assert(t)
	return nil
}

// ComputeHELT is shorthand for Assign(h, scheduler.HELT, now).
func (p *Pool) ComputeHELT(h Handle, now int64) error {
	return p.Assign(h, scheduler.HELT, now)
}

// ComputeHLBS is shorthand for Assign(h, scheduler.HLBS, now).
func (p *Pool) ComputeHLBS(h Handle, now int64) error {
	return p.Assign(h, scheduler.HLBS, now)
}

// Dump writes a diagnostic snapshot of the task behind h to w.
func (p *Pool) Dump(h Handle, w io.Writer) error {
	t, err := p.Task(h)
	if err != nil {
		return err
	}
	return t.Dump(w)
}
