// Package list implements a singly linked list whose nodes are
// allocated from a fixed-capacity memory pool instead of the go heap.
// Nodes live inside the pool's arena for as long as they are linked;
// deleting a node or destroying the list returns their memory to the
// pool. All operations on a list are serialized by a single list-wide
// lock, distinct from the pool's own lock.
package list
