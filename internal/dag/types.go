package dag

// TID identifies the thread (job) behind a node. It is meaningful outside the
// task and unique within it, unlike the node's array index.
type TID int32

// Unset is the priority every node carries before an algorithm has run.
const Unset int64 = -1

// Limits bounds the size of a single task. All storage is sized from these
// values once, when the task is created.
type Limits struct {
	MaxNodes  int
	MaxDegree int
	MaxEdges  int
}

// DefaultLimits are the per-task capacities used when none are configured.
var DefaultLimits = Limits{
	MaxNodes:  20,
	MaxDegree: 20,
	MaxEdges:  1000,
}

// Node is a single sub-job of a DAG task.
type Node struct {
	// TID is the externally meaningful id of the job.
	TID TID
	// Weight is the execution cost of the job.
	Weight int64
	// Prio is written by the priority algorithms. It is Unset until then.
	Prio int64

	// ins holds the indices of predecessor nodes, in edge insertion order.
	ins []int
	// outs holds the indices of successor nodes, in edge insertion order.
	outs []int
}

// Edge states that node From must complete before node To starts.
type Edge struct {
	From int
	To   int
}

// Task is a DAG task: a precedence-constrained set of nodes with a single
// source at index 0.
//
// A Task is not safe for concurrent use. Whoever holds it (usually through a
// pool handle) owns it exclusively until it is handed back.
type Task struct {
	id     int
	limits Limits

	nodes []Node
	edges []Edge

	relativeDeadline int64
	period           int64
	deadline         int64
	initialized      bool

	// order is scratch space for the rank sort in ComputeHELT.
	order []int
}
