// Package cache defines the bounded in-process stores used to memoize codec
// results.
package cache

// Interface is a bounded key/value store. Implementations evict on their own
// and are safe for concurrent use.
type Interface[V any] interface {
	Get(key uint64) (V, bool)
	Add(key uint64, val V)
	Len() int
}
