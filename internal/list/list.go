package list

import (
	"iter"

	"github.com/cockroachdb/errors"
)

// node is one link of the ring. The sentinel node carries no value and
// closes the ring so that the end position needs no special casing.
type node[T any] struct {
	next     *node[T]
	prev     *node[T]
	value    T
	sentinel bool
}

// List is a doubly-linked list closed by a sentinel node.
//
// Insertion and removal at any position are O(1) and never move other
// nodes, so an Iterator stays valid until the node it refers to is erased.
// The zero value is an empty list ready to use.
//
// List is not safe for concurrent use.
type List[T any] struct {
	root *node[T] // sentinel; heap allocated so that Take can hand it over
	len  int
}

// New returns an empty list.
func New[T any]() *List[T] {
	l := &List[T]{}
	l.lazyInit()
	return l
}

func (l *List[T]) lazyInit() {
	if l.root == nil {
		root := &node[T]{sentinel: true}
		root.next = root
		root.prev = root
		l.root = root
	}
}

// Len returns the number of values in the list.
func (l *List[T]) Len() int { return l.len }

// IsEmpty reports whether the list holds no values.
func (l *List[T]) IsEmpty() bool { return l.len == 0 }

// Begin returns an iterator to the first value, or End for an empty list.
func (l *List[T]) Begin() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{n: l.root.next}
}

// End returns the past-the-last position.
func (l *List[T]) End() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{n: l.root}
}

// Front returns the first value. It panics on an empty list.
func (l *List[T]) Front() T {
	if l.len == 0 {
		panic(errors.AssertionFailedf("list: Front called on an empty list"))
	}
	return l.root.next.value
}

// Back returns the last value. It panics on an empty list.
func (l *List[T]) Back() T {
	if l.len == 0 {
		panic(errors.AssertionFailedf("list: Back called on an empty list"))
	}
	return l.root.prev.value
}

// PushFront inserts v at the front of the list.
func (l *List[T]) PushFront(v T) Iterator[T] {
	return l.Insert(l.Begin(), v)
}

// PushBack inserts v at the back of the list.
func (l *List[T]) PushBack(v T) Iterator[T] {
	return l.Insert(l.End(), v)
}

// PopFront removes the first value. It panics on an empty list.
func (l *List[T]) PopFront() {
	if l.len == 0 {
		panic(errors.AssertionFailedf("list: PopFront called on an empty list"))
	}
	l.Erase(l.Begin())
}

// PopBack removes the last value. It panics on an empty list.
func (l *List[T]) PopBack() {
	if l.len == 0 {
		panic(errors.AssertionFailedf("list: PopBack called on an empty list"))
	}
	l.Erase(l.End().Prev())
}

// Insert places v immediately before pos and returns an iterator to it.
// Inserting before End appends.
func (l *List[T]) Insert(pos Iterator[T], v T) Iterator[T] {
	l.lazyInit()
	at := pos.mustNode()
	if at.next == nil {
		panic(errors.AssertionFailedf("list: Insert called with an erased position"))
	}
	n := &node[T]{value: v, next: at, prev: at.prev}
	at.prev.next = n
	at.prev = n
	l.len++
	return Iterator[T]{n: n}
}

// Erase unlinks the value at pos and returns an iterator to the position
// that followed it. Erasing End panics.
func (l *List[T]) Erase(pos Iterator[T]) Iterator[T] {
	n := pos.mustNode()
	if n.sentinel {
		panic(errors.AssertionFailedf("list: Erase called with the end position"))
	}
	if n.next == nil {
		panic(errors.AssertionFailedf("list: Erase called with an erased position"))
	}
	next := n.next
	n.prev.next = n.next
	n.next.prev = n.prev
	// drop the links so a stale iterator cannot walk back into the list
	n.next = nil
	n.prev = nil
	var zero T
	n.value = zero
	l.len--
	return Iterator[T]{n: next}
}

// Clear removes every value from the list.
func (l *List[T]) Clear() {
	if l.root == nil {
		return
	}
	n := l.root.next
	for n != l.root {
		next := n.next
		n.next = nil
		n.prev = nil
		n = next
	}
	l.root.next = l.root
	l.root.prev = l.root
	l.len = 0
}

// Clone returns a copy of the list holding the same values in the same
// order. Values are copied by assignment; use CloneFunc when T refers to
// data that must not be shared.
func (l *List[T]) Clone() *List[T] {
	return l.CloneFunc(func(v T) T { return v })
}

// CloneFunc returns a copy of the list whose values are produced by fn,
// applied front to back.
func (l *List[T]) CloneFunc(fn func(T) T) *List[T] {
	out := New[T]()
	for v := range l.All() {
		out.PushBack(fn(v))
	}
	return out
}

// Take moves every node into a new list and leaves l empty. Iterators into
// l keep referring to the same values, now owned by the returned list.
func (l *List[T]) Take() *List[T] {
	l.lazyInit()
	moved := &List[T]{root: l.root, len: l.len}
	l.root = nil
	l.len = 0
	l.lazyInit()
	return moved
}

// Swap exchanges the contents of l and other.
func (l *List[T]) Swap(other *List[T]) {
	l.root, other.root = other.root, l.root
	l.len, other.len = other.len, l.len
}

// All yields the values front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := l.Begin(); !it.IsEnd(); it = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Backward yields the values back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := l.End().Prev(); !it.IsEnd(); it = it.Prev() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
