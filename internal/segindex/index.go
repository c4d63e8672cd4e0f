// Package segindex provides a fast-path lookup bucketing subscriptions by
// the first static-literal segment of their compiled pattern.
//
// It is adapted from the wildcard prefix store used elsewhere in this
// codebase's ancestry to index HTTP routes and pub/sub topics by a literal
// prefix. Unlike that general-purpose store, segindex never decides
// match/no-match on its own — every bucket (including the catch-all one for
// patterns that do not start with a static segment) must still be tested by
// the caller's own matcher. The index exists purely to narrow the candidate
// set scanned per publish; it is a cache over the registry, never a second
// source of truth.
package segindex

import "sync"

// Index buckets items of type T by a literal key, keeping a catch-all
// bucket for items that have no literal key (patterns beginning with a
// param or wildcard segment, and the root pattern).
type Index[T any] struct {
	mu       sync.RWMutex
	byLiteral map[string][]T
	catchAll  []T
}

// New creates an empty Index.
func New[T any]() *Index[T] {
	return &Index[T]{byLiteral: make(map[string][]T)}
}

// Add inserts an item under the given literal key, or into the catch-all
// bucket when hasLiteral is false.
func (idx *Index[T]) Add(literal string, hasLiteral bool, item T) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !hasLiteral {
		idx.catchAll = append(idx.catchAll, item)
		return
	}
	idx.byLiteral[literal] = append(idx.byLiteral[literal], item)
}

// Remove deletes the first occurrence of item (compared with eq) from
// whichever bucket it was inserted under. The caller supplies the same
// (literal, hasLiteral) pair it used for Add.
func (idx *Index[T]) Remove(literal string, hasLiteral bool, eq func(T) bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !hasLiteral {
		idx.catchAll = removeFirst(idx.catchAll, eq)
		return
	}
	bucket, ok := idx.byLiteral[literal]
	if !ok {
		return
	}
	bucket = removeFirst(bucket, eq)
	if len(bucket) == 0 {
		delete(idx.byLiteral, literal)
		return
	}
	idx.byLiteral[literal] = bucket
}

func removeFirst[T any](items []T, eq func(T) bool) []T {
	for i, item := range items {
		if eq(item) {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}

// Candidates returns every item that might match a topic whose first
// segment is firstSegment: the literal bucket for that segment (if any)
// plus the catch-all bucket. The returned slice is a fresh copy, safe to
// range over without holding the index's lock.
func (idx *Index[T]) Candidates(firstSegment string) []T {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]T, 0, len(idx.byLiteral[firstSegment])+len(idx.catchAll))
	out = append(out, idx.byLiteral[firstSegment]...)
	out = append(out, idx.catchAll...)
	return out
}

// Len returns the total number of indexed items.
func (idx *Index[T]) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	n := len(idx.catchAll)
	for _, bucket := range idx.byLiteral {
		n += len(bucket)
	}
	return n
}
