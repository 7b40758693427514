package dag

import (
	"fmt"
	"strings"
)

// Violation describes one broken structural invariant.
type Violation struct {
	// Where names the offending element, e.g. "node[3].ins" or "edge[7]".
	Where string
	// Msg says what is wrong with it.
	Msg string
}

func (v Violation) String() string {
	return v.Where + ": " + v.Msg
}

// ValidationError lists every invariant a task violates.
type ValidationError struct {
	TaskID     int
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dag task %d is not well-formed (%d violations)", e.TaskID, len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}

// WellFormed reports whether Validate finds nothing wrong.
func (t *Task) WellFormed() bool {
	return t.Validate() == nil
}

// Validate re-checks every structural invariant of the task from scratch and
// returns a *ValidationError listing all violations, or nil.
//
// It is an expensive consistency check meant for tests and debug builds. It
// never trusts the incremental bookkeeping of the builder: tid uniqueness is
// established by counting, and adjacency lists are checked against the edge
// table.
func (t *Task) Validate() error {
	var vs []Violation
	add := func(where, format string, args ...any) {
		vs = append(vs, Violation{Where: where, Msg: fmt.Sprintf(format, args...)})
	}

	nrNodes, nrEdges := len(t.nodes), len(t.edges)

	if t.id < 0 {
		add("task", "negative id %d", t.id)
	}
	if nrNodes > t.limits.MaxNodes {
		add("task", "nr_nodes=%d exceeds max %d", nrNodes, t.limits.MaxNodes)
	}
	if nrEdges > t.limits.MaxEdges {
		add("task", "nr_edges=%d exceeds max %d", nrEdges, t.limits.MaxEdges)
	}
	if t.initialized {
		if t.relativeDeadline <= 0 {
			add("task", "relative_deadline=%d is not positive", t.relativeDeadline)
		}
		if nrNodes == 0 {
			add("task", "initialized task has no source node")
		}
	}

	totalOuts, totalIns := 0, 0
	for i := 0; i < nrNodes; i++ {
		n := &t.nodes[i]

		count := 0
		for j := 0; j < nrNodes; j++ {
			if t.nodes[j].TID == n.TID {
				count++
			}
		}
		if count != 1 {
			add(fmt.Sprintf("node[%d]", i), "tid %d appears %d times", n.TID, count)
		}
		if n.Weight < 0 {
			add(fmt.Sprintf("node[%d]", i), "negative weight %d", n.Weight)
		}

		checkAdjacency(fmt.Sprintf("node[%d].outs", i), n.outs, nrNodes, t.limits.MaxDegree, add)
		checkAdjacency(fmt.Sprintf("node[%d].ins", i), n.ins, nrNodes, t.limits.MaxDegree, add)
		totalOuts += len(n.outs)
		totalIns += len(n.ins)
	}

	for i, e := range t.edges {
		where := fmt.Sprintf("edge[%d]", i)
		if e.From < 0 || e.From >= nrNodes || e.To < 0 || e.To >= nrNodes {
			add(where, "%d --> %d references a node outside [0, %d)", e.From, e.To, nrNodes)
			continue
		}
		if e.From == e.To {
			add(where, "self loop on node %d", e.From)
		} else if e.From > e.To {
			add(where, "%d --> %d violates topological order", e.From, e.To)
		}
		for j := 0; j < i; j++ {
			if t.edges[j] == e {
				add(where, "duplicates edge[%d] (%d --> %d)", j, e.From, e.To)
				break
			}
		}
		if countOf(t.nodes[e.From].outs, e.To) != 1 {
			add(where, "%d --> %d is not recorded exactly once in node[%d].outs", e.From, e.To, e.From)
		}
		if countOf(t.nodes[e.To].ins, e.From) != 1 {
			add(where, "%d --> %d is not recorded exactly once in node[%d].ins", e.From, e.To, e.To)
		}
	}

	if totalOuts != nrEdges {
		add("task", "%d outgoing adjacency entries for %d edges", totalOuts, nrEdges)
	}
	if totalIns != nrEdges {
		add("task", "%d incoming adjacency entries for %d edges", totalIns, nrEdges)
	}

	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{TaskID: t.id, Violations: vs}
}

func checkAdjacency(where string, list []int, nrNodes, maxDegree int, add func(string, string, ...any)) {
	if len(list) > maxDegree {
		add(where, "degree %d exceeds max %d", len(list), maxDegree)
	}
	for k, v := range list {
		if v < 0 || v >= nrNodes {
			add(where, "entry %d is %d, outside [0, %d)", k, v, nrNodes)
		}
		for m := 0; m < k; m++ {
			if list[m] == v {
				add(where, "entry %d duplicates entry %d (%d)", k, m, v)
				break
			}
		}
	}
}

func countOf(list []int, v int) int {
	n := 0
	for _, x := range list {
		if x == v {
			n++
		}
	}
	return n
}
