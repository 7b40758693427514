// Package pool provides a fixed-capacity arena of reusable DAG task objects.
//
// # Purpose
//
// Every DAG task the control plane knows about lives in one of the pool's
// slots. All slots and all of their per-task storage are created once in New,
// so allocating a task on a hot path never touches the heap.
//
// # Handles
//
// Alloc hands out a Handle made of the slot index and the slot's generation.
// Releasing a slot bumps its generation, so a handle kept after Release is
// detected as stale instead of silently aliasing the next task placed in the
// same slot:
//
//   - **Release** of a handle that is not currently owned is a programming
//     error and panics.
//   - **Every other operation** returns ErrStaleHandle for such a handle.
//
// # Concurrency Model
//
// Alloc, Release and handle lookups are serialized by a single mutex. The
// contents of a task are not locked: whoever holds the handle owns the task
// exclusively and may drive the builder and the priority algorithms without
// further synchronization. Distinct handles may be used from distinct
// goroutines at the same time.
//
// Validate inspects every allocated task and must therefore only run while no
// owner is mutating its task.
package pool
