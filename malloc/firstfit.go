// First-fit allocation over the pool ledger: linear scan in ascending
// offset order, split on larger fit, coalesce on free.

package malloc

import "unsafe"

import "github.com/bnclabs/gomempool/lib"

// Alloc implement api.Mallocer{} interface. Returns the address of a
// chunk of exactly `n` bytes inside the arena, nil when no free block
// is large enough.
//
// Alloc(0) returns the address of the first free block without
// consuming it, nil when the arena is fully allocated.
func (pool *Pool) Alloc(n int64) unsafe.Pointer {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	return pool.doalloc(n)
}

// callers own pool.mu.
func (pool *Pool) doalloc(n int64) unsafe.Pointer {
	if pool.base == nil {
		panicerr("pool released")
	} else if n < 0 {
		panicerr("negative allocation size %v", n)
	}
	pool.nallocs++

	if n == 0 {
		for blk := pool.head; blk != nil; blk = blk.next {
			if blk.free {
				return pool.address(blk.offset)
			}
		}
		return nil
	}

	for blk := pool.head; blk != nil; blk = blk.next {
		if blk.free == false || blk.size < n {
			continue
		}
		if blk.size > n {
			pool.splitblock(blk, n)
		}
		blk.free = false
		pool.allocated += n
		return pool.address(blk.offset)
	}
	debugf("pool: no free block of %v bytes", n)
	return nil
}

// Free implement api.Mallocer{} interface. Freeing nil, an address the
// ledger does not track, or an already free block is a no-op; the
// untracked-address case is diagnosed through the log channel.
func (pool *Pool) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	pool.mu.Lock()
	defer pool.mu.Unlock()
	pool.dofree(ptr)
}

// callers own pool.mu.
func (pool *Pool) dofree(ptr unsafe.Pointer) {
	if pool.base == nil {
		panicerr("pool released")
	}
	pool.nfrees++

	offset, inside := pool.offsetof(ptr)
	if inside == false {
		errorf("pool: free of address %p outside the arena", ptr)
		return
	}
	prev, curr := pool.findblock(offset)
	if curr == nil {
		errorf("pool: free of untracked offset %v", offset)
		return
	} else if curr.free { // double free is idempotent
		return
	}
	curr.free = true
	pool.allocated -= curr.size
	if curr.next != nil && curr.next.free {
		pool.mergenext(curr)
	}
	if prev != nil && prev.free {
		pool.mergenext(prev)
	}
}

// Resize implement api.Mallocer{} interface. Grows or shrinks the
// chunk at `ptr` to `n` bytes.
//
// The chunk is resized in place when its block is already large
// enough, or when merging with a free successor makes it large
// enough. Otherwise the chunk is relocated: a fresh chunk of `n`
// bytes is allocated, min(old, new) bytes are copied over and the old
// chunk is freed. The relocation path drops the pool lock before the
// nested Alloc and Free, so no atomicity is guaranteed to third
// parties across a relocating resize; the caller's own chunk is still
// handled correctly.
func (pool *Pool) Resize(ptr unsafe.Pointer, n int64) unsafe.Pointer {
	if ptr == nil {
		return pool.Alloc(n)
	} else if n == 0 {
		pool.Free(ptr)
		return nil
	}

	pool.mu.Lock()
	if pool.base == nil {
		pool.mu.Unlock()
		panicerr("pool released")
	} else if n < 0 {
		pool.mu.Unlock()
		panicerr("negative allocation size %v", n)
	}
	pool.nresizes++

	offset, inside := pool.offsetof(ptr)
	if inside == false {
		pool.mu.Unlock()
		errorf("pool: resize of address %p outside the arena", ptr)
		return nil
	}
	_, curr := pool.findblock(offset)
	if curr == nil || curr.free {
		pool.mu.Unlock()
		errorf("pool: resize of untracked offset %v", offset)
		return nil
	}

	if curr.size >= n { // shrink in place
		if curr.size > n {
			pool.allocated -= curr.size - n
			pool.splitblock(curr, n)
			if rem := curr.next; rem.next != nil && rem.next.free {
				pool.mergenext(rem)
			}
		}
		pool.mu.Unlock()
		return ptr
	}

	if next := curr.next; next != nil && next.free && curr.size+next.size >= n {
		// grow into the free successor, trim the leftover.
		pool.allocated += n - curr.size
		pool.mergenext(curr)
		if curr.size > n {
			pool.splitblock(curr, n)
		}
		pool.mu.Unlock()
		return ptr
	}

	// relocate. The nested Alloc and Free take the pool lock on their
	// own; the copy touches only this caller's chunks, not the ledger.
	oldsize := curr.size
	pool.mu.Unlock()

	newptr := pool.Alloc(n)
	if newptr == nil {
		debugf("pool: relocating resize to %v bytes failed", n)
		return nil
	}
	ln := oldsize
	if n < ln {
		ln = n
	}
	lib.Memcpy(newptr, ptr, int(ln))
	pool.Free(ptr)
	return newptr
}

//---- local functions

// address of the arena byte at offset. Callers own pool.mu.
func (pool *Pool) address(offset int64) unsafe.Pointer {
	return unsafe.Pointer(&pool.base[offset])
}

// offsetof maps an arena address back to its ledger offset, false when
// the address does not fall inside the arena. Callers own pool.mu.
func (pool *Pool) offsetof(ptr unsafe.Pointer) (int64, bool) {
	base := uintptr(unsafe.Pointer(&pool.base[0]))
	if uintptr(ptr) < base {
		return 0, false
	}
	diff := uintptr(ptr) - base
	if diff >= uintptr(pool.capacity) {
		return 0, false
	}
	return int64(diff), true
}
