// Package hashtable implements a separate-chaining hash table whose entries
// live in one shared doubly-linked list. See doc.go for the full design.
package hashtable

import (
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/dreamware/tabula/internal/list"
)

const (
	// DefaultCapacity is the bucket count of a new table and the seed of
	// the capacity growth sequence.
	DefaultCapacity = 5

	// MaxLoadFactor bounds count/capacity after every insertion.
	MaxLoadFactor = 0.75

	// MaxCapacity is the largest bucket count. Growth saturates here.
	MaxCapacity = 1 << 30
)

// ErrKeyNotFound is returned by At when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// entry is one stored association. hash is computed once on insertion and
// decides the entry's bucket for its whole lifetime, including rehashes.
type entry[K comparable, V any] struct {
	key   K
	value V
	hash  uint64
}

// Pair is a key/value association used to seed a table.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Table is a hash table mapping keys of type K to values of type V.
//
// Every entry is held in a single list; the entries of one bucket form a
// contiguous run inside it, and buckets[i] is an iterator to the first
// entry of bucket i's run (the list's End when the bucket is empty).
//
// Architecture:
//
//	buckets:  [0]──┐   [1]=end   [2]──┐
//	               ▼                  ▼
//	elements: (k7,h%5=0) (k2,h%5=0) (k4,h%5=2) (k9,h%5=2) (k1,h%5=2)
//	          └──── run of 0 ────┘ └─────────── run of 2 ─────────┘
//
// Performance Characteristics:
//   - Find/Insert/Delete: O(1) average, bounded by the run length
//   - Erase by iterator: O(1)
//   - Rehash/Clone: O(n)
//
// Table is not safe for concurrent use.
type Table[K comparable, V any] struct {
	hash     HashFunc[K]
	elements *list.List[*entry[K, V]]
	buckets  []list.Iterator[*entry[K, V]]
	count    int
	capacity int
}

// Option configures a new Table.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity pre-sizes the table so that at least n buckets exist.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// New creates an empty table that hashes keys with hash.
//
// Example:
//
//	ids := hashtable.New[uint64, string](hashtable.HashInteger[uint64])
//	ids.Insert(1, "first")
func New[K comparable, V any](hash HashFunc[K], opts ...Option) *Table[K, V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	t := newTable[K, V](hash, DefaultCapacity)
	if o.capacity > DefaultCapacity {
		t.Rehash(o.capacity)
	}
	return t
}

// NewString creates an empty table keyed by strings.
func NewString[V any](opts ...Option) *Table[string, V] {
	return New[string, V](HashString, opts...)
}

// NewInteger creates an empty table keyed by an integer type.
func NewInteger[K integer, V any](opts ...Option) *Table[K, V] {
	return New[K, V](HashInteger[K], opts...)
}

// FromPairs creates a table sized for pairs and inserts them in order.
// As with Insert, a repeated key keeps its first value.
func FromPairs[K comparable, V any](hash HashFunc[K], pairs ...Pair[K, V]) *Table[K, V] {
	t := newTable[K, V](hash, int(float64(len(pairs))/MaxLoadFactor)+1)
	for _, p := range pairs {
		t.Insert(p.Key, p.Value)
	}
	return t
}

func newTable[K comparable, V any](hash HashFunc[K], capacity int) *Table[K, V] {
	t := &Table[K, V]{
		hash:     hash,
		elements: list.New[*entry[K, V]](),
		capacity: capacity,
	}
	t.buckets = t.emptyBuckets(t.elements, capacity)
	return t
}

func (t *Table[K, V]) emptyBuckets(l *list.List[*entry[K, V]], n int) []list.Iterator[*entry[K, V]] {
	buckets := make([]list.Iterator[*entry[K, V]], n)
	end := l.End()
	for i := range buckets {
		buckets[i] = end
	}
	return buckets
}

func (t *Table[K, V]) bucketOf(hash uint64) int {
	return int(hash % uint64(t.capacity))
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int { return t.count }

// IsEmpty reports whether the table holds no entries.
func (t *Table[K, V]) IsEmpty() bool { return t.count == 0 }

// BucketCount returns the current capacity.
func (t *Table[K, V]) BucketCount() int { return t.capacity }

// LoadFactor returns count/capacity.
func (t *Table[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(t.capacity)
}

// Find returns an iterator to the entry for key, or End if there is none.
func (t *Table[K, V]) Find(key K) Iterator[K, V] {
	return t.find(key, t.hash(key))
}

func (t *Table[K, V]) find(key K, hash uint64) Iterator[K, V] {
	index := t.bucketOf(hash)
	it := t.buckets[index]
	for !it.IsEnd() {
		e := it.Value()
		if t.bucketOf(e.hash) != index {
			break
		}
		if e.key == key {
			return Iterator[K, V]{it: it}
		}
		it = it.Next()
	}
	return t.End()
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	return !t.Find(key).IsEnd()
}

// Get returns the value stored for key and whether it was present.
func (t *Table[K, V]) Get(key K) (V, bool) {
	it := t.Find(key)
	if it.IsEnd() {
		var zero V
		return zero, false
	}
	return it.Value(), true
}

// At returns the value stored for key, or ErrKeyNotFound. It never inserts.
func (t *Table[K, V]) At(key K) (V, error) {
	v, ok := t.Get(key)
	if !ok {
		return v, ErrKeyNotFound
	}
	return v, nil
}

// Insert adds key with value unless key is already present. It returns an
// iterator to the entry for key and whether a new entry was created; an
// existing entry keeps its value.
//
// A new entry becomes the head of its bucket's run, so entries of one
// bucket are ordered most recently inserted first. If the insertion would
// push the load factor above MaxLoadFactor the table is rehashed first.
func (t *Table[K, V]) Insert(key K, value V) (Iterator[K, V], bool) {
	return t.insert(key, value, t.hash(key))
}

func (t *Table[K, V]) insert(key K, value V, hash uint64) (Iterator[K, V], bool) {
	if it := t.find(key, hash); !it.IsEnd() {
		return it, false
	}
	if float64(t.capacity) < float64(t.count+1)/MaxLoadFactor {
		t.Rehash(nextCapacity(t.capacity))
	}
	// capacity may have changed above
	index := t.bucketOf(hash)
	e := &entry[K, V]{key: key, value: value, hash: hash}
	t.buckets[index] = link(t.elements, t.buckets[index], e)
	t.count++
	return Iterator[K, V]{it: t.buckets[index]}, true
}

// link places e at the head of the run anchored at anchor and returns the
// new anchor. An empty bucket starts a new run at the front of l.
func link[K comparable, V any](l *list.List[*entry[K, V]], anchor list.Iterator[*entry[K, V]], e *entry[K, V]) list.Iterator[*entry[K, V]] {
	if anchor.IsEnd() {
		return l.PushFront(e)
	}
	return l.Insert(anchor, e)
}

// Ref returns a pointer to the value stored for key, inserting the zero
// value first if key is absent. The pointer is valid until the entry is
// erased; rehashing does not move values.
func (t *Table[K, V]) Ref(key K) *V {
	var zero V
	it, _ := t.Insert(key, zero)
	return it.ValuePtr()
}

// Erase removes the entry at pos and returns an iterator to the entry that
// followed it. pos must refer to an entry of t.
func (t *Table[K, V]) Erase(pos Iterator[K, V]) Iterator[K, V] {
	target := pos.it.Value()
	index := t.bucketOf(target.hash)
	isAnchor := pos.it == t.elements.Begin() || t.bucketOf(pos.it.Prev().Value().hash) != index

	next := t.elements.Erase(pos.it)
	t.count--
	if isAnchor {
		if !next.IsEnd() && t.bucketOf(next.Value().hash) == index {
			t.buckets[index] = next
		} else {
			t.buckets[index] = t.elements.End()
		}
	}
	return Iterator[K, V]{it: next}
}

// Delete removes the entry for key and reports whether one existed.
func (t *Table[K, V]) Delete(key K) bool {
	it := t.Find(key)
	if it.IsEnd() {
		return false
	}
	t.Erase(it)
	return true
}

// Rehash rebuilds the table with the smallest capacity of the growth
// sequence that is at least minimumCount and keeps the load factor within
// MaxLoadFactor. It does nothing when that capacity is the current one.
//
// Entries are relocated in their current iteration order, each becoming the
// head of its new bucket's run. All iterators into t are invalidated.
func (t *Table[K, V]) Rehash(minimumCount int) {
	minimumCount = min(minimumCount, MaxCapacity)
	newCapacity := DefaultCapacity
	for newCapacity < MaxCapacity &&
		(newCapacity < minimumCount || float64(newCapacity) < float64(t.count)/MaxLoadFactor) {
		newCapacity = nextCapacity(newCapacity)
	}
	if newCapacity == t.capacity {
		return
	}

	elements := list.New[*entry[K, V]]()
	buckets := t.emptyBuckets(elements, newCapacity)
	for it := t.elements.Begin(); !it.IsEnd(); it = t.elements.Erase(it) {
		e := it.Value()
		index := int(e.hash % uint64(newCapacity))
		buckets[index] = link(elements, buckets[index], e)
	}

	t.elements = elements
	t.buckets = buckets
	t.capacity = newCapacity
}

// nextCapacity returns the step after current in the growth sequence
// 5, 11, 23, 47, 95, ...: with d the smallest exponent such that
// 2^d >= current, the next capacity is 2^(d+1) - 2^(d-1) - 1.
// Steps past MaxCapacity saturate at MaxCapacity.
func nextCapacity(current int) int {
	if current > MaxCapacity/2 {
		return MaxCapacity
	}
	d := 0
	for current > 1<<d {
		d++
	}
	d++
	pow := 1 << d
	next := pow - (pow-pow/2)/2 - 1
	if next <= current {
		next = current + 1
	}
	return next
}

// Clear removes every entry. The capacity is unchanged.
func (t *Table[K, V]) Clear() {
	t.elements.Clear()
	end := t.elements.End()
	for i := range t.buckets {
		t.buckets[i] = end
	}
	t.count = 0
}

// Clone returns an independent copy of t with the same capacity. Every
// entry is reinserted under its cached hash, so the copy's structure is
// derived afresh rather than copied. Values are copied by assignment.
func (t *Table[K, V]) Clone() *Table[K, V] {
	return t.CloneFunc(func(v V) V { return v })
}

// CloneFunc is like Clone but copies each value with fn.
func (t *Table[K, V]) CloneFunc(fn func(V) V) *Table[K, V] {
	out := newTable[K, V](t.hash, t.capacity)
	for e := range t.elements.All() {
		out.insert(e.key, fn(e.value), e.hash)
	}
	return out
}

// Take moves the contents of t into a new table and leaves t empty with
// DefaultCapacity. Iterators into t refer to entries of the returned table.
func (t *Table[K, V]) Take() *Table[K, V] {
	moved := &Table[K, V]{
		hash:     t.hash,
		elements: t.elements,
		buckets:  t.buckets,
		count:    t.count,
		capacity: t.capacity,
	}
	t.elements = list.New[*entry[K, V]]()
	t.buckets = t.emptyBuckets(t.elements, DefaultCapacity)
	t.count = 0
	t.capacity = DefaultCapacity
	return moved
}

// Swap exchanges the contents of t and other.
func (t *Table[K, V]) Swap(other *Table[K, V]) {
	*t, *other = *other, *t
}

// Begin returns an iterator to the first entry in iteration order.
func (t *Table[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{it: t.elements.Begin()}
}

// End returns the past-the-last position.
func (t *Table[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{it: t.elements.End()}
}

// All yields every key/value pair in iteration order. Entries of one
// bucket are adjacent; no other order is promised.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range t.elements.All() {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys yields every key in iteration order.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for e := range t.elements.All() {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Values yields every value in iteration order.
func (t *Table[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := range t.elements.All() {
			if !yield(e.value) {
				return
			}
		}
	}
}
