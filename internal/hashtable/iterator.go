package hashtable

import "github.com/dreamware/tabula/internal/list"

// Iterator is a forward cursor over the entries of a Table. Iterators are
// comparable with ==. An iterator stays valid until its entry is erased or
// the table is rehashed, cleared, or moved with Take.
type Iterator[K comparable, V any] struct {
	it list.Iterator[*entry[K, V]]
}

// IsEnd reports whether it is the past-the-last position.
func (it Iterator[K, V]) IsEnd() bool { return it.it.IsEnd() }

// Next returns the following position in iteration order.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{it: it.it.Next()}
}

// Key returns the entry's key. It panics at End.
func (it Iterator[K, V]) Key() K { return it.it.Value().key }

// Value returns the entry's value. It panics at End.
func (it Iterator[K, V]) Value() V { return it.it.Value().value }

// ValuePtr returns a pointer to the entry's value for in-place mutation.
func (it Iterator[K, V]) ValuePtr() *V { return &it.it.Value().value }

// SetValue replaces the entry's value. Keys are immutable.
func (it Iterator[K, V]) SetValue(v V) { it.it.Value().value = v }
