package list

import "github.com/cockroachdb/errors"

// Iterator is a position in a List: either a node holding a value or the
// list's end position. Iterators are comparable with ==; two iterators are
// equal when they refer to the same position.
//
// The zero Iterator refers to no list at all and must not be used.
type Iterator[T any] struct {
	n *node[T]
}

func (it Iterator[T]) mustNode() *node[T] {
	if it.n == nil {
		panic(errors.AssertionFailedf("list: use of a zero iterator"))
	}
	return it.n
}

func (it Iterator[T]) mustValue() *node[T] {
	n := it.mustNode()
	if n.sentinel {
		panic(errors.AssertionFailedf("list: dereference of the end position"))
	}
	if n.next == nil {
		panic(errors.AssertionFailedf("list: dereference of an erased position"))
	}
	return n
}

// IsEnd reports whether it is the end position of its list.
func (it Iterator[T]) IsEnd() bool {
	return it.mustNode().sentinel
}

// Next returns the following position. The position after the last value
// is End; advancing End wraps around to the first value.
func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{n: it.mustNode().next}
}

// Prev returns the preceding position. End().Prev() is the last value.
func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{n: it.mustNode().prev}
}

// Value returns the value at it. It panics at End.
func (it Iterator[T]) Value() T {
	return it.mustValue().value
}

// Ptr returns a pointer to the value stored at it, for in-place mutation.
// It panics at End.
func (it Iterator[T]) Ptr() *T {
	return &it.mustValue().value
}

// Set replaces the value stored at it. It panics at End.
func (it Iterator[T]) Set(v T) {
	it.mustValue().value = v
}
