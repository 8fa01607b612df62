// Package malloc supplies custom memory management for in-memory data
// structures, with a limited scope:
//
//   - A Pool is one contiguous arena of memory, reserved when the pool
//     is created and given back to the runtime only when the pool is
//     Released. There is no arena growth and no compaction.
//   - Blocks are tracked by a ledger of descriptors ordered by arena
//     offset; read in order the descriptors exactly partition the
//     arena, and no two adjacent descriptors are ever both free.
//   - Allocation is first-fit in ascending offset order. A larger free
//     block is split to the exact request size; freeing a block merges
//     it with free neighbours on both sides.
//   - All operations on a pool are serialized by a single pool-wide
//     lock. The only exception is a Resize that has to relocate the
//     chunk: the nested Alloc and Free each take the lock on their
//     own, so other callers can interleave between them.
//   - There is no pointer re-write and no alignment guarantee beyond
//     byte addressing.
//
// Alloc(0) is a documented quirk carried over from the reference
// behaviour: it returns the address of the first free block without
// marking it used, so repeated zero-size calls can return the same
// address until a real allocation claims that block.
package malloc
