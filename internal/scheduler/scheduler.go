package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ruth561/DAG-BPF/internal/dag"
)

// ErrUnknownAlgorithm is returned for algorithm names and values that are not
// defined below.
var ErrUnknownAlgorithm = errors.New("unknown priority algorithm")

// Algorithm names a priority assignment heuristic.
type Algorithm int

const (
	// HELT ranks nodes by the longest remaining path to a sink and spreads
	// the ranks below the task's absolute deadline.
	HELT Algorithm = iota + 1
	// HLBS gives every node its latest start time. Lower values are more
	// urgent.
	HLBS
)

// String returns the lower-case name used in configuration files and flags.
func (a Algorithm) String() string {
	switch a {
	case HELT:
		return "helt"
	case HLBS:
		return "hlbs"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm accepts the names produced by String, case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "helt":
		return HELT, nil
	case "hlbs":
		return HLBS, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// Assign runs alg on t at time now, overwriting every node's priority.
func Assign(t *dag.Task, alg Algorithm, now int64) error {
	switch alg {
	case HELT:
		t.ComputeHELT(now)
	case HLBS:
		t.ComputeHLBS(now)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownAlgorithm, alg)
	}
	return nil
}
