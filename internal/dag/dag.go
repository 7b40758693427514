package dag

import "fmt"

// NewTask creates an empty task with the given id. Every slice the task will
// ever need is allocated here, so the builder operations never allocate.
func NewTask(id int, limits Limits) *Task {
	if limits.MaxNodes <= 0 || limits.MaxDegree <= 0 || limits.MaxEdges <= 0 {
		panic(fmt.Sprintf("dag: invalid limits %+v", limits))
	}

	nodes := make([]Node, limits.MaxNodes)
	for i := range nodes {
		nodes[i].ins = make([]int, 0, limits.MaxDegree)
		nodes[i].outs = make([]int, 0, limits.MaxDegree)
	}

	return &Task{
		id:               id,
		limits:           limits,
		nodes:            nodes[:0],
		edges:            make([]Edge, 0, limits.MaxEdges),
		relativeDeadline: -1,
		period:           -1,
		order:            make([]int, 0, limits.MaxNodes),
	}
}

// Reset drops every node and edge. The task keeps its id and its storage.
func (t *Task) Reset() {
	t.nodes = t.nodes[:0]
	t.edges = t.edges[:0]
	t.relativeDeadline = -1
	t.period = -1
	t.deadline = 0
	t.initialized = false
}

// Init resets the task and inserts the source node at index 0.
//
// relativeDeadline is checked here rather than at priority time, so a task
// that could never be scheduled is rejected before any node is added.
func (t *Task) Init(srcTID TID, srcWeight, relativeDeadline, period int64) error {
	if relativeDeadline <= 0 {
		return t.opError("init", ErrInvalidDeadline, "relative_deadline=%d", relativeDeadline)
	}
	if srcWeight < 0 {
		return t.opError("init", ErrNegativeWeight, "tid=%d weight=%d", srcTID, srcWeight)
	}

	t.Reset()
	t.relativeDeadline = relativeDeadline
	t.period = period
	t.appendNode(srcTID, srcWeight)
	t.initialized = true
	return nil
}

// AddNode appends a node with no edges and returns its index.
func (t *Task) AddNode(tid TID, weight int64) (int, error) {
	if len(t.nodes) >= t.limits.MaxNodes {
		return -1, t.opError("add_node", ErrCapacityExceeded, "tid=%d (max %d nodes)", tid, t.limits.MaxNodes)
	}
	if _, ok := t.IndexOf(tid); ok {
		return -1, t.opError("add_node", ErrDuplicateNode, "tid=%d", tid)
	}
	if weight < 0 {
		return -1, t.opError("add_node", ErrNegativeWeight, "tid=%d weight=%d", tid, weight)
	}
	return t.appendNode(tid, weight), nil
}

func (t *Task) appendNode(tid TID, weight int64) int {
	idx := len(t.nodes)
	t.nodes = t.nodes[:idx+1]
	n := &t.nodes[idx]
	n.TID = tid
	n.Weight = weight
	n.Prio = Unset
	n.ins = n.ins[:0]
	n.outs = n.outs[:0]
	return idx
}

// AddEdge records that fromTID must complete before toTID starts and returns
// the new edge's index.
//
// Edges are only accepted from a lower node index to a higher one. Callers
// therefore have to add nodes in a topological order of the final graph; in
// return the graph is acyclic by construction and index order is always a
// valid topological order, so no cycle detection is ever needed.
func (t *Task) AddEdge(fromTID, toTID TID) (int, error) {
	from, ok := t.IndexOf(fromTID)
	if !ok {
		return -1, t.opError("add_edge", ErrUnknownNode, "%d->%d: tid %d", fromTID, toTID, fromTID)
	}
	to, ok := t.IndexOf(toTID)
	if !ok {
		return -1, t.opError("add_edge", ErrUnknownNode, "%d->%d: tid %d", fromTID, toTID, toTID)
	}
	if len(t.edges) >= t.limits.MaxEdges {
		return -1, t.opError("add_edge", ErrEdgeCapacityExceeded, "%d->%d (max %d edges)", fromTID, toTID, t.limits.MaxEdges)
	}
	for _, e := range t.edges {
		if e.From == from && e.To == to {
			return -1, t.opError("add_edge", ErrDuplicateEdge, "%d->%d", fromTID, toTID)
		}
	}
	if from == to {
		return -1, t.opError("add_edge", ErrSelfLoop, "%d->%d", fromTID, toTID)
	}
	if from > to {
		return -1, t.opError("add_edge", ErrTopologicalViolation, "%d->%d (index %d > %d)", fromTID, toTID, from, to)
	}
	if len(t.nodes[from].outs) >= t.limits.MaxDegree {
		return -1, t.opError("add_edge", ErrDegreeExceeded, "%d->%d: tid %d has %d successors", fromTID, toTID, fromTID, t.limits.MaxDegree)
	}
	if len(t.nodes[to].ins) >= t.limits.MaxDegree {
		return -1, t.opError("add_edge", ErrDegreeExceeded, "%d->%d: tid %d has %d predecessors", fromTID, toTID, toTID, t.limits.MaxDegree)
	}

	idx := len(t.edges)
	t.edges = append(t.edges, Edge{From: from, To: to})
	t.nodes[from].outs = append(t.nodes[from].outs, to)
	t.nodes[to].ins = append(t.nodes[to].ins, from)
	return idx, nil
}

// IndexOf returns the index of the node with the given tid.
func (t *Task) IndexOf(tid TID) (int, bool) {
	for i := range t.nodes {
		if t.nodes[i].TID == tid {
			return i, true
		}
	}
	return -1, false
}

// ID returns the task id stamped by the pool.
func (t *Task) ID() int { return t.id }

// Limits returns the capacity the task was created with.
func (t *Task) Limits() Limits { return t.limits }

// NumNodes returns the number of nodes, including the source.
func (t *Task) NumNodes() int { return len(t.nodes) }

// NumEdges returns the number of edges.
func (t *Task) NumEdges() int { return len(t.edges) }

// RelativeDeadline returns the deadline relative to the task's release.
func (t *Task) RelativeDeadline() int64 { return t.relativeDeadline }

// Period returns the task's period as given at init.
func (t *Task) Period() int64 { return t.period }

// Deadline returns the absolute deadline computed by the last priority
// assignment, or zero if none has run.
func (t *Task) Deadline() int64 { return t.deadline }

// Node returns a copy of node i. The copy shares its edge lists with the task
// and must not be modified.
func (t *Task) Node(i int) (Node, error) {
	if err := t.checkIndex("node", i); err != nil {
		return Node{}, err
	}
	return t.nodes[i], nil
}

// Edge returns edge i.
func (t *Task) Edge(i int) (Edge, error) {
	if i < 0 || i >= len(t.edges) {
		return Edge{}, t.opError("edge", ErrIndexOutOfRange, "index=%d", i)
	}
	return t.edges[i], nil
}

// Ins returns the predecessor indices of node i, or nil if i is out of range.
// The slice must not be modified.
func (t *Task) Ins(i int) []int {
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	return t.nodes[i].ins
}

// Outs returns the successor indices of node i, or nil if i is out of range.
// The slice must not be modified.
func (t *Task) Outs(i int) []int {
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	return t.nodes[i].outs
}

// NodeWeight returns the weight of node i.
func (t *Task) NodeWeight(i int) (int64, error) {
	if err := t.checkIndex("node_weight", i); err != nil {
		return 0, err
	}
	return t.nodes[i].Weight, nil
}

// SetNodeWeight overwrites the weight of node i. Priorities are not
// recomputed.
func (t *Task) SetNodeWeight(i int, weight int64) error {
	if err := t.checkIndex("set_node_weight", i); err != nil {
		return err
	}
	if weight < 0 {
		return t.opError("set_node_weight", ErrNegativeWeight, "index=%d weight=%d", i, weight)
	}
	t.nodes[i].Weight = weight
	return nil
}

// NodePriority returns the priority last assigned to node i.
func (t *Task) NodePriority(i int) (int64, error) {
	if err := t.checkIndex("node_priority", i); err != nil {
		return 0, err
	}
	return t.nodes[i].Prio, nil
}

func (t *Task) checkIndex(op string, i int) error {
	if i < 0 || i >= len(t.nodes) {
		return t.opError(op, ErrIndexOutOfRange, "index=%d (%d nodes)", i, len(t.nodes))
	}
	return nil
}
