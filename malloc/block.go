// Ledger maintenance. Functions and methods are not thread safe,
// callers own the pool lock.

package malloc

// block is a ledger descriptor for one contiguous range of the arena.
// Blocks are chained in ascending offset order and, read in order,
// exactly partition [0, capacity). A block's lifetime ends when it is
// merged into a neighbour or when the pool is released.
type block struct {
	offset int64  // byte position within the arena
	size   int64  // always > 0
	free   bool   // true when range is available for allocation
	next   *block // successor in ascending offset order
}

// findblock locate the block starting at offset, along with its
// predecessor. Returns nil when no block starts there.
func (pool *Pool) findblock(offset int64) (prev, curr *block) {
	pool.nlookups++
	for curr = pool.head; curr != nil; curr = curr.next {
		if curr.offset == offset {
			return prev, curr
		}
		prev = curr
	}
	return nil, nil
}

// splitblock carve the leading `size` bytes out of a larger block and
// chain a new free block covering the remainder.
func (pool *Pool) splitblock(blk *block, size int64) {
	rem := &block{
		offset: blk.offset + size,
		size:   blk.size - size,
		free:   true,
		next:   blk.next,
	}
	blk.size, blk.next = size, rem
	pool.nblocks++
}

// mergenext absorb blk's successor into blk, dropping the successor
// from the chain.
func (pool *Pool) mergenext(blk *block) {
	next := blk.next
	blk.size += next.size
	blk.next = next.next
	pool.nblocks--
}
