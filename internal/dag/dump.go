package dag

import (
	"fmt"
	"io"
)

// Dump writes a human-readable snapshot of the task to w. The layout is meant
// for eyes and logs, not for parsing.
func (t *Task) Dump(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("dag task %d: relative_deadline=%d period=%d deadline=%d\n",
		t.id, t.relativeDeadline, t.period, t.deadline)

	ew.printf("  nr_nodes: %d\n", len(t.nodes))
	for i, n := range t.nodes {
		ew.printf("  node[%d]: tid=%d, weight=%d, prio=%d\n", i, n.TID, n.Weight, n.Prio)
	}

	ew.printf("  nr_edges: %d\n", len(t.edges))
	for i, e := range t.edges {
		ew.printf("  edge[%d]: %d --> %d\n", i, e.From, e.To)
	}

	for i, n := range t.nodes {
		for _, out := range n.outs {
			ew.printf("  outs: %d --> %d\n", i, out)
		}
	}
	for i, n := range t.nodes {
		for _, in := range n.ins {
			ew.printf("  ins: %d --> %d\n", i, in)
		}
	}
	return ew.err
}

// errWriter remembers the first write error and skips everything after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
