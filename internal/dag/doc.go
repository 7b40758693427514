// Package dag is the object model of a DAG task: a set of sub-jobs (nodes)
// with execution costs and must-complete-before edges, plus the structural
// validator and the two priority heuristics (HELT and HLBS) that run on it.
//
// # Index Order Is Topological Order
//
// Node indices are assigned densely in insertion order, and the source node
// created by Init is always index 0. AddEdge only accepts an edge whose source
// index is lower than its target index. This single O(1) rule replaces cycle
// detection entirely:
//
//   - the graph can never contain a cycle, and
//   - ascending index order is always a valid topological order, which is what
//     lets the priority algorithms run as a single reverse pass.
//
// The price is that callers must add nodes in a topological order of the
// final graph. An edge that would point "backwards" is rejected with
// ErrTopologicalViolation even if the resulting graph would be acyclic. The
// graph package produces node orders that satisfy the rule.
//
// # Memory
//
// NewTask sizes every slice up front from Limits. Successful builder
// operations and both priority algorithms never allocate, so a Task can be
// reused through a pool on latency-sensitive paths. Validate is the exception;
// it is a debugging aid.
package dag
