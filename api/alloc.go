// Package api defines the interface between memory pools and the data
// structures that allocate from them.
package api

import "unsafe"

// Mallocer interface for custom memory management.
type Mallocer interface {
	// Alloc allocate a chunk of `n` bytes from the pool's arena.
	// Returns nil when no free block can satisfy the request.
	Alloc(n int64) unsafe.Pointer

	// Resize grow or shrink the chunk at `ptr` to `n` bytes, moving
	// it to a new address if it cannot be resized in place. A nil
	// `ptr` behaves as Alloc(n), a zero `n` behaves as Free(ptr).
	// Returns the chunk's address, nil on failure.
	Resize(ptr unsafe.Pointer, n int64) unsafe.Pointer

	// Free chunk back to the pool. Freeing nil, an address the pool
	// does not track, or an already free chunk is a no-op.
	Free(ptr unsafe.Pointer)

	// Release the arena and all pool resources.
	Release()

	// Info of memory accounting for this pool.
	Info() (capacity, allocated, overhead int64)

	// Utilization is the ratio of allocated bytes to capacity.
	Utilization() float64
}
