package pool

import "errors"

var (
	// ErrPoolExhausted is returned by Alloc when every slot is in use.
	ErrPoolExhausted = errors.New("dag task pool exhausted")
	// ErrStaleHandle is returned when a handle does not refer to a task that
	// is currently allocated.
	ErrStaleHandle = errors.New("stale or invalid dag task handle")
)
