package dag

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newInitialized returns a task with the given limits whose source is tid 1000.
func newInitialized(t *testing.T, limits Limits) *Task {
	t.Helper()
	task := NewTask(0, limits)
	require.NoError(t, task.Init(1000, 1, 10, 10))
	return task
}

type nodeState struct {
	TID    TID
	Weight int64
	Prio   int64
}

// snapshot captures everything a failed operation must leave untouched.
type snapshot struct {
	Nodes []nodeState
	Ins   [][]int
	Outs  [][]int
	Edges []Edge
}

func takeSnapshot(task *Task) snapshot {
	var s snapshot
	for i := 0; i < task.NumNodes(); i++ {
		n, _ := task.Node(i)
		s.Nodes = append(s.Nodes, nodeState{TID: n.TID, Weight: n.Weight, Prio: n.Prio})
		s.Ins = append(s.Ins, append([]int(nil), task.Ins(i)...))
		s.Outs = append(s.Outs, append([]int(nil), task.Outs(i)...))
	}
	for i := 0; i < task.NumEdges(); i++ {
		e, _ := task.Edge(i)
		s.Edges = append(s.Edges, e)
	}
	return s
}

func TestNewTask(t *testing.T) {
	task := NewTask(3, DefaultLimits)
	require.NotNil(t, task)
	assert.Equal(t, 3, task.ID())
	assert.Zero(t, task.NumNodes())
	assert.Zero(t, task.NumEdges())
	assert.Equal(t, DefaultLimits, task.Limits())

	assert.Panics(t, func() { NewTask(0, Limits{}) })
}

func TestInit(t *testing.T) {
	t.Run("source node is index 0", func(t *testing.T) {
		task := NewTask(0, DefaultLimits)
		require.NoError(t, task.Init(42, 7, 100, 200))

		require.Equal(t, 1, task.NumNodes())
		src, err := task.Node(0)
		require.NoError(t, err)
		assert.Equal(t, TID(42), src.TID)
		assert.Equal(t, int64(7), src.Weight)
		assert.Equal(t, Unset, src.Prio)
		assert.Equal(t, int64(100), task.RelativeDeadline())
		assert.Equal(t, int64(200), task.Period())
	})

	t.Run("re-init drops previous contents", func(t *testing.T) {
		task := newInitialized(t, DefaultLimits)
		_, err := task.AddNode(1001, 1)
		require.NoError(t, err)
		_, err = task.AddEdge(1000, 1001)
		require.NoError(t, err)

		require.NoError(t, task.Init(5, 1, 1, 1))
		assert.Equal(t, 1, task.NumNodes())
		assert.Zero(t, task.NumEdges())
		assert.Empty(t, task.Outs(0))
	})

	t.Run("non-positive relative deadline is rejected", func(t *testing.T) {
		task := NewTask(0, DefaultLimits)
		for _, rd := range []int64{0, -1} {
			err := task.Init(1, 1, rd, 10)
			assert.ErrorIs(t, err, ErrInvalidDeadline)
		}
		assert.Zero(t, task.NumNodes())
	})

	t.Run("negative source weight is rejected", func(t *testing.T) {
		task := NewTask(0, DefaultLimits)
		assert.ErrorIs(t, task.Init(1, -1, 10, 10), ErrNegativeWeight)
	})
}

func TestAddNode(t *testing.T) {
	t.Run("indices are dense and in call order", func(t *testing.T) {
		task := newInitialized(t, DefaultLimits)
		for i := 1; i < DefaultLimits.MaxNodes; i++ {
			idx, err := task.AddNode(TID(1000+i), int64(i))
			require.NoError(t, err)
			assert.Equal(t, i, idx)
			assert.Equal(t, i+1, task.NumNodes())
		}
		for i := 0; i < task.NumNodes(); i++ {
			got, ok := task.IndexOf(TID(1000 + i))
			require.True(t, ok)
			assert.Equal(t, i, got)
		}
	})

	t.Run("full table", func(t *testing.T) {
		task := newInitialized(t, Limits{MaxNodes: 2, MaxDegree: 2, MaxEdges: 2})
		_, err := task.AddNode(1001, 1)
		require.NoError(t, err)

		before := takeSnapshot(task)
		_, err = task.AddNode(1002, 1)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Empty(t, cmp.Diff(before, takeSnapshot(task)))
	})

	t.Run("duplicate tid", func(t *testing.T) {
		task := newInitialized(t, DefaultLimits)
		before := takeSnapshot(task)
		_, err := task.AddNode(1000, 5)
		assert.ErrorIs(t, err, ErrDuplicateNode)
		assert.Empty(t, cmp.Diff(before, takeSnapshot(task)))
	})

	t.Run("negative weight", func(t *testing.T) {
		task := newInitialized(t, DefaultLimits)
		_, err := task.AddNode(1001, -3)
		assert.ErrorIs(t, err, ErrNegativeWeight)
		assert.Equal(t, 1, task.NumNodes())
	})
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		task := newInitialized(t, DefaultLimits)
		_, err := task.AddNode(1001, 1)
		require.NoError(t, err)
		_, err = task.AddNode(1002, 1)
		require.NoError(t, err)

		idx, err := task.AddEdge(1000, 1002)
		require.NoError(t, err)
		assert.Equal(t, 0, idx)
		idx, err = task.AddEdge(1001, 1002)
		require.NoError(t, err)
		assert.Equal(t, 1, idx)

		assert.Equal(t, []int{2}, task.Outs(0))
		assert.Equal(t, []int{2}, task.Outs(1))
		assert.Equal(t, []int{0, 1}, task.Ins(2))
		e, err := task.Edge(1)
		require.NoError(t, err)
		assert.Equal(t, Edge{From: 1, To: 2}, e)
	})

	t.Run("error cases leave the task unmodified", func(t *testing.T) {
		task := newInitialized(t, DefaultLimits)
		_, err := task.AddNode(1001, 1)
		require.NoError(t, err)
		_, err = task.AddEdge(1000, 1001)
		require.NoError(t, err)

		cases := []struct {
			name     string
			from, to TID
			want     error
		}{
			{"unknown source", 999, 1001, ErrUnknownNode},
			{"unknown target", 1000, 999, ErrUnknownNode},
			{"duplicate", 1000, 1001, ErrDuplicateEdge},
			{"self loop", 1001, 1001, ErrSelfLoop},
			{"backwards", 1001, 1000, ErrTopologicalViolation},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				before := takeSnapshot(task)
				idx, err := task.AddEdge(tc.from, tc.to)
				assert.Equal(t, -1, idx)
				assert.ErrorIs(t, err, tc.want)
				assert.Empty(t, cmp.Diff(before, takeSnapshot(task)))
			})
		}
	})

	t.Run("edge table full", func(t *testing.T) {
		task := newInitialized(t, Limits{MaxNodes: 4, MaxDegree: 4, MaxEdges: 1})
		_, err := task.AddNode(1001, 1)
		require.NoError(t, err)
		_, err = task.AddNode(1002, 1)
		require.NoError(t, err)
		_, err = task.AddEdge(1000, 1001)
		require.NoError(t, err)

		_, err = task.AddEdge(1000, 1002)
		assert.ErrorIs(t, err, ErrEdgeCapacityExceeded)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.ErrorContains(t, err, "edge table full: capacity exceeded")
		assert.NotContains(t, err.Error(), "node capacity")
		assert.Equal(t, 1, task.NumEdges())
	})

	t.Run("degree limit", func(t *testing.T) {
		task := newInitialized(t, Limits{MaxNodes: 4, MaxDegree: 1, MaxEdges: 10})
		_, err := task.AddNode(1001, 1)
		require.NoError(t, err)
		_, err = task.AddNode(1002, 1)
		require.NoError(t, err)
		_, err = task.AddEdge(1000, 1001)
		require.NoError(t, err)

		_, err = task.AddEdge(1000, 1002)
		assert.ErrorIs(t, err, ErrDegreeExceeded)

		_, err = task.AddEdge(1001, 1002)
		require.NoError(t, err)
		_, err = task.AddNode(1003, 1)
		require.NoError(t, err)
		_, err = task.AddEdge(1000, 1003)
		assert.ErrorIs(t, err, ErrDegreeExceeded)
		assert.True(t, task.WellFormed())
	})

	t.Run("error carries the operation", func(t *testing.T) {
		task := newInitialized(t, DefaultLimits)
		_, err := task.AddEdge(1000, 1000)

		var opErr *OpError
		require.True(t, errors.As(err, &opErr))
		assert.Equal(t, "add_edge", opErr.Op)
		assert.Equal(t, 0, opErr.TaskID)
		assert.ErrorContains(t, err, "self loop")
	})
}

func TestWeightAndPriorityAccessors(t *testing.T) {
	task := newInitialized(t, DefaultLimits)
	_, err := task.AddNode(1001, 4)
	require.NoError(t, err)

	w, err := task.NodeWeight(1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), w)

	require.NoError(t, task.SetNodeWeight(1, 9))
	w, err = task.NodeWeight(1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), w)

	assert.ErrorIs(t, task.SetNodeWeight(1, -1), ErrNegativeWeight)

	p, err := task.NodePriority(1)
	require.NoError(t, err)
	assert.Equal(t, Unset, p)

	for _, idx := range []int{-1, 2} {
		_, err = task.NodeWeight(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = task.NodePriority(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.ErrorIs(t, task.SetNodeWeight(idx, 1), ErrIndexOutOfRange)
	}
	_, err = task.Edge(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	for _, idx := range []int{-1, 2, 100} {
		assert.NotPanics(t, func() {
			assert.Nil(t, task.Ins(idx))
			assert.Nil(t, task.Outs(idx))
		})
	}
}

func TestBuilderDoesNotAllocate(t *testing.T) {
	task := NewTask(0, DefaultLimits)
	allocs := testing.AllocsPerRun(10, func() {
		_ = task.Init(1000, 1, 10, 10)
		for i := 1; i < 5; i++ {
			_, _ = task.AddNode(TID(1000+i), 1)
			_, _ = task.AddEdge(TID(1000+i-1), TID(1000+i))
		}
		task.ComputeHELT(0)
		task.ComputeHLBS(0)
	})
	assert.Zero(t, allocs)
}
