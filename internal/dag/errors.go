package dag

import (
	"errors"
	"fmt"
)

// Builder and accessor failures. Every error returned by a Task wraps exactly
// one of these, so callers can branch with errors.Is.
var (
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrEdgeCapacityExceeded = fmt.Errorf("edge table full: %w", ErrCapacityExceeded)
	ErrDegreeExceeded       = fmt.Errorf("node degree limit reached: %w", ErrCapacityExceeded)
	ErrDuplicateNode        = errors.New("duplicate node")
	ErrDuplicateEdge        = errors.New("duplicate edge")
	ErrUnknownNode          = errors.New("unknown node")
	ErrSelfLoop             = errors.New("self loop")
	ErrTopologicalViolation = errors.New("edge violates topological order")
	ErrInvalidDeadline      = errors.New("relative deadline must be positive")
	ErrNegativeWeight       = errors.New("weight must not be negative")
	ErrIndexOutOfRange      = errors.New("node index out of range")
)

// OpError records which operation failed on which task, and why.
type OpError struct {
	Op     string
	TaskID int
	Detail string
	Err    error
}

func (e *OpError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("dag task %d: %s: %v", e.TaskID, e.Op, e.Err)
	}
	return fmt.Sprintf("dag task %d: %s %s: %v", e.TaskID, e.Op, e.Detail, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func (t *Task) opError(op string, err error, format string, args ...any) error {
	return &OpError{
		Op:     op,
		TaskID: t.id,
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
