package malloc

import "sync"
import "unsafe"

import s "github.com/bnclabs/gosettings"
import "github.com/dustin/go-humanize"

// Pool is a fixed-capacity arena of memory with a first-fit allocator
// over it. Pools are safe for concurrent use, a single pool-wide lock
// serializes every operation that touches the arena or its ledger.
type Pool struct {
	mu   sync.Mutex
	base []byte // the arena
	head *block // the ledger, ascending offset order

	// statistics
	allocated int64
	nblocks   int64
	nallocs   int64
	nfrees    int64
	nresizes  int64
	nlookups  int64

	// configuration
	capacity  int64
	allocator string
}

// NewPool create a memory pool over an arena of `capacity` bytes. A
// zero capacity falls back to the "capacity" setting. Panics for a
// negative or out-of-bounds capacity, or an unknown allocator
// algorithm. If the host cannot reserve the arena the runtime aborts
// the process, no pool operation is meaningful without a backing
// arena.
func NewPool(capacity int64, setts s.Settings) *Pool {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	if capacity == 0 {
		capacity = setts.Int64("capacity")
	}
	pool := &Pool{
		capacity:  capacity,
		allocator: setts.String("allocator"),
	}
	if pool.capacity <= 0 {
		panicerr("invalid pool capacity %v", pool.capacity)
	} else if pool.capacity > Maxpoolsize {
		panicerr("pool cannot exceed %v bytes (%v)", Maxpoolsize, pool.capacity)
	}
	switch pool.allocator {
	case "firstfit":
	default:
		panicerr("unknown allocator %q", pool.allocator)
	}
	pool.base = make([]byte, pool.capacity)
	pool.head = &block{offset: 0, size: pool.capacity, free: true}
	pool.nblocks = 1
	infof("pool: new arena of %v", humanize.Bytes(uint64(pool.capacity)))
	return pool
}

// Release the arena and discard the ledger. The pool cannot be used
// after release, subsequent operations panic.
func (pool *Pool) Release() {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.base == nil {
		panicerr("pool released")
	}
	infof("pool: releasing arena of %v, %v still allocated",
		humanize.Bytes(uint64(pool.capacity)),
		humanize.Bytes(uint64(pool.allocated)))
	pool.base, pool.head = nil, nil
	pool.allocated, pool.nblocks = 0, 0
}

//---- statistics and maintenance

// Info implement api.Mallocer{} interface.
func (pool *Pool) Info() (capacity, allocated, overhead int64) {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	self := int64(unsafe.Sizeof(*pool))
	overhead = self + pool.nblocks*int64(unsafe.Sizeof(block{}))
	return pool.capacity, pool.allocated, overhead
}

// Utilization implement api.Mallocer{} interface.
func (pool *Pool) Utilization() float64 {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	return float64(pool.allocated) / float64(pool.capacity)
}

// Stats return a map of data-structure statistics and operation
// counts for this pool.
func (pool *Pool) Stats() map[string]interface{} {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	nfree, freebytes := int64(0), int64(0)
	for blk := pool.head; blk != nil; blk = blk.next {
		if blk.free {
			nfree++
			freebytes += blk.size
		}
	}
	return map[string]interface{}{
		"capacity":  pool.capacity,
		"allocated": pool.allocated,
		"available": pool.capacity - pool.allocated,
		"nblocks":   pool.nblocks,
		"nfree":     nfree,
		"freebytes": freebytes,
		"nallocs":   pool.nallocs,
		"nfrees":    pool.nfrees,
		"nresizes":  pool.nresizes,
		"nlookups":  pool.nlookups,
	}
}

// Validate walk the ledger and panic if any of its invariants is
// violated:
//   - descriptors, in chain order, exactly partition [0, capacity)
//     with no gaps and no overlaps.
//   - no two adjacent descriptors are both free.
//   - every descriptor's size is > 0.
//   - accounted allocation matches the ledger's used bytes.
func (pool *Pool) Validate() {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.base == nil {
		panicerr("pool released")
	}
	offset, allocated, nblocks := int64(0), int64(0), int64(0)
	prevfree := false
	for blk := pool.head; blk != nil; blk = blk.next {
		if blk.offset != offset {
			panicerr("ledger gap: block at %v, expected %v", blk.offset, offset)
		} else if blk.size <= 0 {
			panicerr("ledger block at %v has size %v", blk.offset, blk.size)
		} else if blk.free && prevfree {
			panicerr("adjacent free blocks at %v", blk.offset)
		}
		if blk.free == false {
			allocated += blk.size
		}
		prevfree = blk.free
		offset += blk.size
		nblocks++
	}
	if offset != pool.capacity {
		panicerr("ledger ends at %v, capacity is %v", offset, pool.capacity)
	} else if allocated != pool.allocated {
		panicerr("accounted %v allocated, ledger says %v", pool.allocated, allocated)
	} else if nblocks != pool.nblocks {
		panicerr("accounted %v blocks, ledger says %v", pool.nblocks, nblocks)
	}
}

// Log pool accounting at info level.
func (pool *Pool) Log() {
	capacity, allocated, overhead := pool.Info()
	infof("pool: capacity %v, allocated %v, overhead %v",
		humanize.Bytes(uint64(capacity)),
		humanize.Bytes(uint64(allocated)),
		humanize.Bytes(uint64(overhead)))
}
