// Package scheduler selects and runs the priority assignment algorithm for a
// DAG task. The algorithms themselves live on dag.Task; this package gives
// them a name that can travel through configuration and flags.
package scheduler
