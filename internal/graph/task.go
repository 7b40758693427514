package graph

import (
	"fmt"
	"math"

	"github.com/ruth561/DAG-BPF/internal/dag"
	"github.com/ruth561/DAG-BPF/internal/pool"
)

// Node is one member of a task spec.
type Node struct {
	TID    dag.TID
	Weight int64
	Name   string
}

// Edge is a precedence constraint between two members of a task spec.
type Edge struct {
	From dag.TID
	To   dag.TID
}

// Spec describes one DAG task. Nodes[0] is the source and Nodes is in a
// topological order, so replaying it through dag.Task never violates the
// index-order rule.
type Spec struct {
	ID               int
	Nodes            []Node
	Edges            []Edge
	RelativeDeadline int64
	Period           int64
}

// DAGTasks splits the graph into DAG tasks, one per reactor that is not
// reachable from an earlier one in topological order.
func (g *Graph) DAGTasks() ([]*Spec, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	var specs []*Spec
	covered := make([]bool, len(g.reactors))
	member := make([]bool, len(g.reactors))
	for _, src := range order {
		if covered[src] {
			continue
		}

		for i := range member {
			member[i] = false
		}
		for _, v := range g.Reachable(src) {
			member[v] = true
			covered[v] = true
		}

		spec := &Spec{ID: len(specs), RelativeDeadline: math.MaxInt64}
		for _, u := range order {
			if !member[u] {
				continue
			}
			r := g.reactors[u]
			spec.Nodes = append(spec.Nodes, Node{TID: r.TID, Weight: r.Weight, Name: r.Name})
			if r.Period > spec.Period {
				spec.Period = r.Period
			}
			if r.RelativeDeadline > 0 && r.RelativeDeadline < spec.RelativeDeadline {
				spec.RelativeDeadline = r.RelativeDeadline
			}
			for _, v := range g.succ[u] {
				spec.Edges = append(spec.Edges, Edge{From: r.TID, To: g.reactors[v].TID})
			}
		}

		if spec.RelativeDeadline == math.MaxInt64 {
			return nil, fmt.Errorf("%w: task rooted at %v", ErrNoDeadline, g.reactors[src])
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Submit replays spec into a freshly allocated task of p. On failure the
// slot is released again and the returned error names the offending element.
func Submit(p *pool.Pool, spec *Spec) (pool.Handle, error) {
	if len(spec.Nodes) == 0 {
		return pool.Handle{}, fmt.Errorf("dag task spec %d has no nodes", spec.ID)
	}

	src := spec.Nodes[0]
	h, err := p.Alloc(src.TID, src.Weight, spec.RelativeDeadline, spec.Period)
	if err != nil {
		return pool.Handle{}, fmt.Errorf("failed to allocate dag task for spec %d: %w", spec.ID, err)
	}

	for _, n := range spec.Nodes[1:] {
		if _, err := p.AddNode(h, n.TID, n.Weight); err != nil {
			p.Release(h)
			return pool.Handle{}, fmt.Errorf("failed to add node %q to spec %d: %w", n.Name, spec.ID, err)
		}
	}
	for _, e := range spec.Edges {
		if _, err := p.AddEdge(h, e.From, e.To); err != nil {
			p.Release(h)
			return pool.Handle{}, fmt.Errorf("failed to add edge %d->%d to spec %d: %w", e.From, e.To, spec.ID, err)
		}
	}
	return h, nil
}
