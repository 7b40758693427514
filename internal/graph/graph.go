package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ruth561/DAG-BPF/internal/config"
	"github.com/ruth561/DAG-BPF/internal/dag"
)

var (
	// ErrDuplicateReactor is returned when two reactors share a TID.
	ErrDuplicateReactor = errors.New("duplicate reactor tid")
	// ErrCycle is returned when the precedence graph is not acyclic.
	ErrCycle = errors.New("reactor graph contains a cycle")
	// ErrNoDeadline is returned for a task none of whose reactors has a
	// positive relative deadline.
	ErrNoDeadline = errors.New("dag task has no positive relative deadline")
)

// Builder collects reactors and their topics.
type Builder struct {
	reactors map[dag.TID]*config.Reactor
	pubs     map[string][]dag.TID
	subs     map[string][]dag.TID
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		reactors: make(map[dag.TID]*config.Reactor),
		pubs:     make(map[string][]dag.TID),
		subs:     make(map[string][]dag.TID),
	}
}

// Register adds a reactor. TIDs must be unique.
func (b *Builder) Register(r *config.Reactor) error {
	if prev, ok := b.reactors[r.TID]; ok {
		return fmt.Errorf("%w: %v and %v", ErrDuplicateReactor, prev, r)
	}
	b.reactors[r.TID] = r
	for _, topic := range r.Publishes {
		b.pubs[topic] = append(b.pubs[topic], r.TID)
	}
	for _, topic := range r.Subscribes {
		b.subs[topic] = append(b.subs[topic], r.TID)
	}
	return nil
}

// Build connects every publisher of a topic to every subscriber of it.
// Topics with only one side are ignored. Reactors connected by several topics
// get a single edge.
func (b *Builder) Build() *Graph {
	g := &Graph{
		index: make(map[dag.TID]int, len(b.reactors)),
	}
	for _, r := range b.reactors {
		g.reactors = append(g.reactors, r)
	}
	slices.SortFunc(g.reactors, func(a, b *config.Reactor) int { return int(a.TID) - int(b.TID) })
	for i, r := range g.reactors {
		g.index[r.TID] = i
	}

	g.succ = make([][]int, len(g.reactors))
	for topic, pubs := range b.pubs {
		for _, pub := range pubs {
			from := g.index[pub]
			for _, sub := range b.subs[topic] {
				g.succ[from] = append(g.succ[from], g.index[sub])
			}
		}
	}
	for i := range g.succ {
		slices.Sort(g.succ[i])
		g.succ[i] = slices.Compact(g.succ[i])
	}
	return g
}

// Graph is the precedence graph over all reactors. Reactor i is the i-th
// lowest TID.
type Graph struct {
	reactors []*config.Reactor
	index    map[dag.TID]int
	succ     [][]int
}

// Len returns the number of reactors.
func (g *Graph) Len() int { return len(g.reactors) }

// Reactor returns reactor i.
func (g *Graph) Reactor(i int) *config.Reactor { return g.reactors[i] }

// Successors returns the reactors that directly follow reactor i, ascending.
func (g *Graph) Successors(i int) []int { return g.succ[i] }

// Reachable returns src and every reactor reachable from it, ascending.
func (g *Graph) Reachable(src int) []int {
	visited := make([]bool, len(g.reactors))
	visited[src] = true
	stack := []int{src}
	out := []int{src}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range g.succ[u] {
			if visited[v] {
				continue
			}
			visited[v] = true
			out = append(out, v)
			stack = append(stack, v)
		}
	}
	slices.Sort(out)
	return out
}

// TopologicalOrder returns every reactor index such that each edge points
// forward. Among reactors that are ready at the same time the lowest index
// comes first.
func (g *Graph) TopologicalOrder() ([]int, error) {
	indeg := make([]int, len(g.reactors))
	for _, succ := range g.succ {
		for _, v := range succ {
			indeg[v]++
		}
	}

	var ready []int
	for i, d := range indeg {
		if d == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, len(g.reactors))
	for len(ready) > 0 {
		// ready is kept sorted, so the lowest index is at the front.
		u := ready[0]
		ready = ready[1:]
		order = append(order, u)
		for _, v := range g.succ[u] {
			indeg[v]--
			if indeg[v] == 0 {
				pos, _ := slices.BinarySearch(ready, v)
				ready = slices.Insert(ready, pos, v)
			}
		}
	}

	if len(order) != len(g.reactors) {
		var stuck []dag.TID
		for i, d := range indeg {
			if d > 0 {
				stuck = append(stuck, g.reactors[i].TID)
			}
		}
		return nil, fmt.Errorf("%w: involving tids %v", ErrCycle, stuck)
	}
	return order, nil
}
