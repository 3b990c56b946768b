// Package list implements a generic doubly-linked list closed by a sentinel
// node.
//
// The list is the ordered substrate of the hash table in package hashtable
// (one list holds every entry, grouped into per-bucket runs) and of each
// table's row storage in package table (one list holds every row, and the
// primary-key index stores iterators into it).
//
// Positions are exposed as Iterator values rather than node pointers:
//
//	l := list.New[string]()
//	it := l.PushBack("b")
//	l.Insert(it, "a")          // a b
//	for v := range l.All() {   // front to back
//	    fmt.Println(v)
//	}
//	l.Erase(it)                // a
//
// Insert and Erase are O(1) and never relocate other nodes, so iterators
// stay valid until their own node is erased. Misuse such as dereferencing
// End or calling Front on an empty list is a programming error and panics
// with an assertion failure.
package list
