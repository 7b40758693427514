// Package graph turns a set of reactors connected by publish/subscribe topics
// into DAG tasks that the pool can hold.
//
// # From Reactors to Tasks
//
// A reactor that publishes a topic precedes every reactor subscribing to it.
// Build collects these precedence edges into a Graph over all reactors. The
// Graph is then split with DAGTasks:
//
//  1. The whole graph is sorted topologically; a cycle anywhere is an error.
//  2. Walking that order, every reactor not yet covered starts a new task
//     made of everything reachable from it.
//  3. The task's nodes are listed in the global topological order, which is
//     exactly the insertion order dag.Task.AddEdge requires.
//
// A reactor reachable from two sources ends up in both tasks. The timing of a
// task is derived from its members: the period is the largest period and the
// relative deadline is the smallest positive one.
//
// # Determinism
//
// Reactors are indexed by ascending TID and ties in the topological sort are
// broken towards the lowest TID, so the same configuration always yields the
// same tasks in the same order.
package graph
