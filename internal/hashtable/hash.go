package hashtable

import (
	"hash/fnv"

	"golang.org/x/exp/constraints"
)

// HashFunc maps a key to a hash value. It must be deterministic: equal keys
// must always produce equal hashes.
type HashFunc[K any] func(K) uint64

type integer interface {
	constraints.Integer
}

// HashString hashes s with 64-bit FNV-1a.
func HashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// HashInteger hashes an integer to itself, so consecutive keys fall into
// consecutive buckets.
func HashInteger[K integer](k K) uint64 {
	return uint64(k)
}
