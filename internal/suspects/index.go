// Package suspects maps clue texts to the suspect each clue implicates.
//
// The Index is a fixed size hash table with separate chaining. New entries are prepended to their chain and lookups
// return the first key match from the head, so re-inserting a clue shadows the older entry without removing it.
package suspects

import (
	"github.com/zyedidia/generic/mapset"
	"slices"
)

// DefaultBuckets is a small prime that keeps chains short for the handful of clues in a case.
const DefaultBuckets = 31

const hashSeed = 5381

// Hash is the djb2 string hash: seed 5381, then h*33 + b for every byte, wrapping at 64 bits.
func Hash(s string) uint64 {
	h := uint64(hashSeed)
	for i := range len(s) {
		h = h<<5 + h + uint64(s[i])
	}
	return h
}

type entry struct {
	clue    string
	suspect string
	next    *entry
}

type Index struct {
	buckets []*entry
	entries int
}

// NewIndex creates an empty index with the given number of buckets; non-positive sizes use DefaultBuckets.
func NewIndex(buckets int) *Index {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	return &Index{buckets: make([]*entry, buckets)}
}

// BucketOf returns the bucket clue hashes to.
func (ix *Index) BucketOf(clue string) int {
	return int(Hash(clue) % uint64(len(ix.buckets)))
}

// Insert prepends the pair to its bucket's chain. No duplicate check is made.
func (ix *Index) Insert(clue, suspect string) {
	b := ix.BucketOf(clue)
	ix.buckets[b] = &entry{clue: clue, suspect: suspect, next: ix.buckets[b]}
	ix.entries++
}

// Lookup returns the suspect of the most recently inserted entry for clue. Keys are compared byte for byte.
func (ix *Index) Lookup(clue string) (string, bool) {
	for e := ix.buckets[ix.BucketOf(clue)]; e != nil; e = e.next {
		if e.clue == clue {
			return e.suspect, true
		}
	}
	return "", false
}

// Len returns the number of stored entries, shadowed ones included.
func (ix *Index) Len() int {
	return ix.entries
}

// Buckets returns the fixed table size.
func (ix *Index) Buckets() int {
	return len(ix.buckets)
}

// ChainLen returns the number of entries chained in bucket b. Buckets outside [0, Buckets()) hold nothing.
func (ix *Index) ChainLen(b int) int {
	if b < 0 || b >= len(ix.buckets) {
		return 0
	}
	n := 0
	for e := ix.buckets[b]; e != nil; e = e.next {
		n++
	}
	return n
}

// Suspects returns the distinct suspects a lookup can still return, sorted.
func (ix *Index) Suspects() []string {
	seen := mapset.New[string]()
	for _, head := range ix.buckets {
		for e := head; e != nil; e = e.next {
			if s, _ := ix.Lookup(e.clue); s == e.suspect {
				seen.Put(e.suspect)
			}
		}
	}
	names := make([]string, 0, seen.Size())
	seen.Each(func(name string) {
		names = append(names, name)
	})
	slices.Sort(names)
	return names
}

// Release unlinks every chain. The index is empty afterwards but keeps its size.
func (ix *Index) Release() {
	for b, head := range ix.buckets {
		for e := head; e != nil; {
			next := e.next
			e.next = nil
			e = next
		}
		ix.buckets[b] = nil
	}
	ix.entries = 0
}
