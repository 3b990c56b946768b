// Package hashtable provides the chained hash table used for table names
// and primary-key indexes.
//
// # Overview
//
// Table is the associative container behind every lookup in tabula: the
// registry of named tables and the primary-key index of each table are both
// instances of it. It is a separate-chaining hash table with a twist: the
// chains are not separate slices or linked lists per bucket but contiguous
// runs inside one shared list.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────┐
//	│                     Table[K, V]                     │
//	├─────────────────────────────────────────────────────┤
//	│  buckets []list.Iterator   (one anchor per bucket)  │
//	│      │         │                                    │
//	│      ▼         ▼                                    │
//	│  elements *list.List[*entry]                        │
//	│    [e e e][e][e e] ... ◄── runs, one per bucket     │
//	│                                                     │
//	│  count, capacity                                    │
//	└─────────────────────────────────────────────────────┘
//
// An entry holds its key, its value and the key's hash, computed once on
// insertion. The bucket of an entry is hash % capacity; it is recomputed
// from the cached hash whenever capacity changes, never from the key.
//
// # Invariants
//
//   - Bucket contiguity: all entries of one bucket are adjacent in the list.
//   - Anchor correctness: buckets[i] is the list's End iff bucket i is empty,
//     otherwise it is the first entry of bucket i's run.
//   - Load factor: after every insertion count/capacity <= MaxLoadFactor.
//   - Key uniqueness: Insert never overwrites; a second Insert of the same
//     key returns the existing entry and false.
//
// # Insertion
//
// A new entry always becomes the head of its bucket's run. If the bucket
// was empty a fresh run is started at the front of the list; otherwise the
// entry is linked just before the current anchor and becomes the anchor.
// Within one bucket entries are therefore ordered newest first.
//
// Before inserting, the table grows if count+1 would exceed the load factor.
//
// # Erasure
//
// Erasing by iterator is O(1). The erased entry was its bucket's anchor if
// it was the first element of the list or its predecessor belongs to a
// different bucket. An anchor hands its role to the next entry when that
// entry is in the same bucket; otherwise the bucket becomes empty.
//
// # Growth
//
// Capacities follow a fixed sequence seeded at DefaultCapacity:
//
//	5 → 11 → 23 → 47 → 95 → 191 → 383 → ...
//
// Given the current capacity c, let d be the smallest exponent with
// 2^d >= c; the next capacity is 2^(d+1) - 2^(d-1) - 1. The sequence stops
// at MaxCapacity; a table that full keeps growing its runs instead.
//
// Rehash(n) picks the smallest capacity in the sequence that is at least n
// and keeps count/capacity within MaxLoadFactor, so it can also shrink a
// table. The rebuild walks the old list front to back and relinks each entry
// as the head of its new bucket's run. Entries (and therefore pointers
// returned by Ref and ValuePtr) are reused; list nodes and bucket anchors are
// rebuilt, so every outstanding Iterator is invalidated.
//
// # Usage Examples
//
//	tables := hashtable.NewString[*table.Table]()
//	tables.Insert("users", users)
//
//	if t, ok := tables.Get("users"); ok {
//	    fmt.Println(t.Len())
//	}
//
//	// map-style access: insert the zero value if absent
//	*counts.Ref("select")++
//
//	for name, t := range tables.All() {
//	    fmt.Println(name, t.Len())
//	}
//
// # Error Handling
//
// Expected misses are reported in-band: Find returns End, Get and Delete
// return false. At returns ErrKeyNotFound. Using an End or stale iterator is
// a programming error and panics.
//
// # Concurrency
//
// None. Tables are owned by a single goroutine; callers that share one must
// serialize access themselves.
package hashtable
