package list

import "unsafe"

// nodesize bytes are carved out of the pool arena for every node.
const nodesize = int64(unsafe.Sizeof(Node{}))

// Node is a single element of a List. Nodes are arena resident, their
// address stays stable until the node is deleted or the list is
// destroyed.
type Node struct {
	data uint16
	next *Node
}

// Data return the node's payload.
func (nd *Node) Data() uint16 {
	return nd.data
}

// Next return the node's successor, nil at the tail.
func (nd *Node) Next() *Node {
	return nd.next
}
