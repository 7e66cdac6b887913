// Package tokencache implements the size-bounded token/trivia interning
// cache the lexer consults before allocating a new leaf node (spec.md
// §4.E, §9).
package tokencache

import "hash/fnv"

// MaxCachedWidth is the longest lexeme the cache will intern. Lexemes
// longer than this are always allocated fresh — identifiers and
// literals past this length are rare enough that sharing them isn't
// worth the hash-table slot.
const MaxCachedWidth = 42

// defaultCapacity is the number of slots in a freshly constructed
// Cache. Must be a power of two so the probe sequence can mask instead
// of mod.
const defaultCapacity = 2048

// entry is one occupied or empty cache slot.
type entry[T any] struct {
	occupied bool
	hash     uint64
	text     string
	kind     uint16
	value    T
}

// Cache is a fixed-size, open-addressed interning table keyed by
// (FNV-1a hash of text, length, kind). It is generic so the lexer can
// run one instance for tokens and a second for trivia runs, sharing
// the probing/eviction logic (spec.md §4.E).
//
// Cache is not safe for concurrent use; callers needing concurrent
// lexing should construct one Cache per goroutine.
type Cache[T any] struct {
	slots []entry[T]
	mask  uint64
}

// New constructs a Cache with room for capacity entries, rounded up to
// the next power of two. capacity <= 0 selects defaultCapacity.
func New[T any](capacity int) *Cache[T] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Cache[T]{
		slots: make([]entry[T], size),
		mask:  uint64(size - 1),
	}
}

// Hash returns the FNV-1a hash of text, the first component of a cache
// key.
func Hash(text string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return h.Sum64()
}

// Lookup returns the cached value for (text, kind) and true, or the
// zero value and false on a miss. Lexemes longer than MaxCachedWidth
// always miss.
func (c *Cache[T]) Lookup(text string, kind uint16) (T, bool) {
	var zero T
	if len(text) > MaxCachedWidth {
		return zero, false
	}
	h := Hash(text)
	i := h & c.mask
	for probe := uint64(0); probe < uint64(len(c.slots)); probe++ {
		slot := &c.slots[(i+probe)&c.mask]
		if !slot.occupied {
			return zero, false
		}
		if slot.hash == h && slot.kind == kind && slot.text == text {
			return slot.value, true
		}
	}
	return zero, false
}

// Add inserts (text, kind) -> value into the cache, evicting an
// existing occupant via linear probing if every candidate slot on the
// probe chain is already taken by an unrelated entry (last-write-wins,
// spec.md §4.E: bounded size over perfect retention). Lexemes longer
// than MaxCachedWidth are silently not cached.
func (c *Cache[T]) Add(text string, kind uint16, value T) {
	if len(text) > MaxCachedWidth {
		return
	}
	h := Hash(text)
	i := h & c.mask
	for probe := uint64(0); probe < uint64(len(c.slots)); probe++ {
		slot := &c.slots[(i+probe)&c.mask]
		if !slot.occupied || (slot.hash == h && slot.kind == kind && slot.text == text) {
			*slot = entry[T]{occupied: true, hash: h, text: text, kind: kind, value: value}
			return
		}
	}
	// Every slot on the full probe chain was occupied by something
	// else: evict the first one (simple linear-probe eviction).
	slot := &c.slots[i]
	*slot = entry[T]{occupied: true, hash: h, text: text, kind: kind, value: value}
}

// Len reports how many slots are currently occupied. Intended for
// tests and diagnostics, not the hot lexer path.
func (c *Cache[T]) Len() int {
	n := 0
	for _, s := range c.slots {
		if s.occupied {
			n++
		}
	}
	return n
}

// Cap reports the total number of slots.
func (c *Cache[T]) Cap() int {
	return len(c.slots)
}
