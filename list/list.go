package list

import "fmt"
import "io"
import "sync"
import "unsafe"

import "github.com/bnclabs/gomempool/api"
import "github.com/bnclabs/gomempool/malloc"
import s "github.com/bnclabs/gosettings"

// List is a singly linked list of uint16 payloads backed by its own
// memory pool.
type List struct {
	mu   sync.Mutex
	head *Node
	pool api.Mallocer
}

// NewList create an empty list backed by a memory pool of `capacity`
// bytes. Settings for the pool are picked from the "pool." section.
func NewList(capacity int64, setts s.Settings) *List {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	poolsetts := setts.Section("pool.").Trim("pool.")
	return &List{pool: malloc.NewPool(capacity, poolsetts)}
}

// Insert append a new node at the tail of the list.
func (l *List) Insert(data uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	nd := l.newnode(data)
	if nd == nil {
		errorf("list: insert %v: %v", data, api.ErrorOutofMemory)
		return api.ErrorOutofMemory
	}
	if l.head == nil {
		l.head = nd
		return nil
	}
	cur := l.head
	for cur.next != nil {
		cur = cur.next
	}
	cur.next = nd
	return nil
}

// InsertAfter insert a new node right after `prev`.
func (l *List) InsertAfter(prev *Node, data uint16) error {
	if prev == nil {
		errorf("list: insertafter: nil node")
		return api.ErrorInvalidPointer
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	nd := l.newnode(data)
	if nd == nil {
		errorf("list: insertafter %v: %v", data, api.ErrorOutofMemory)
		return api.ErrorOutofMemory
	}
	nd.next = prev.next
	prev.next = nd
	return nil
}

// InsertBefore insert a new node right before `next`, walking the
// list to find its predecessor.
func (l *List) InsertBefore(next *Node, data uint16) error {
	if next == nil {
		errorf("list: insertbefore: nil node")
		return api.ErrorInvalidPointer
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.head == next {
		nd := l.newnode(data)
		if nd == nil {
			errorf("list: insertbefore %v: %v", data, api.ErrorOutofMemory)
			return api.ErrorOutofMemory
		}
		nd.next = l.head
		l.head = nd
		return nil
	}
	cur := l.head
	for cur != nil && cur.next != next {
		cur = cur.next
	}
	if cur == nil {
		errorf("list: insertbefore: node not linked")
		return api.ErrorNotFound
	}
	nd := l.newnode(data)
	if nd == nil {
		errorf("list: insertbefore %v: %v", data, api.ErrorOutofMemory)
		return api.ErrorOutofMemory
	}
	nd.next = cur.next
	cur.next = nd
	return nil
}

// Delete unlink the first node matching `data` and return its memory
// to the pool.
func (l *List) Delete(data uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.head == nil {
		debugf("list: delete %v: empty list", data)
		return api.ErrorEmptyList
	}
	var prev *Node
	cur := l.head
	for cur != nil && cur.data != data {
		prev, cur = cur, cur.next
	}
	if cur == nil {
		debugf("list: delete %v: not found", data)
		return api.ErrorNotFound
	}
	if prev == nil { // deleting the head
		l.head = cur.next
	} else {
		prev.next = cur.next
	}
	l.pool.Free(unsafe.Pointer(cur))
	return nil
}

// Search return the first node matching `data`, nil if no node
// matches.
func (l *List) Search(data uint16) *Node {
	l.mu.Lock()
	defer l.mu.Unlock()

	for cur := l.head; cur != nil; cur = cur.next {
		if cur.data == data {
			return cur
		}
	}
	return nil
}

// Count return the number of nodes in the list.
func (l *List) Count() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := int64(0)
	for cur := l.head; cur != nil; cur = cur.next {
		count++
	}
	return count
}

// Display write the whole list to `w` as "[a, b, c]".
func (l *List) Display(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.render(w, nil, nil)
}

// DisplayRange write nodes from `start` through `end`, both
// inclusive, to `w`. A nil start begins at the head, a nil end stops
// at the tail.
func (l *List) DisplayRange(w io.Writer, start, end *Node) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.head == nil {
		fmt.Fprint(w, "[]")
		return
	}
	l.render(w, start, end)
}

// Destroy free every node and release the backing pool. The list
// cannot be used after destroy.
func (l *List) Destroy() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.head
	for cur != nil {
		next := cur.next
		l.pool.Free(unsafe.Pointer(cur))
		cur = next
	}
	l.head = nil
	l.pool.Release()
}

//---- local functions

// callers own list.mu.
func (l *List) newnode(data uint16) *Node {
	ptr := l.pool.Alloc(nodesize)
	if ptr == nil {
		return nil
	}
	nd := (*Node)(ptr)
	nd.data, nd.next = data, nil
	return nd
}

// callers own list.mu.
func (l *List) render(w io.Writer, start, end *Node) {
	fmt.Fprint(w, "[")
	cur := start
	if cur == nil {
		cur = l.head
	}
	first := true
	for cur != nil {
		if first == false {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprintf(w, "%d", cur.data)
		if cur == end {
			break
		}
		cur = cur.next
		first = false
	}
	fmt.Fprint(w, "]")
}
