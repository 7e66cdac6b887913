// Package annotation implements SyntaxAnnotation: immutable, identity-
// bearing metadata that can be attached to a green node (spec.md §3, §9).
package annotation

import "sync/atomic"

// counter is the process-wide monotonic id source. Monotonic within one
// process is the only guarantee spec.md §5 requires — gaps across
// processes are fine.
var counter atomic.Int64

// Annotation is immutable user-attached metadata. Identity is by id:
// two annotations are Equal iff their ids match, regardless of Kind/Data.
type Annotation struct {
	id   int64
	kind string
	data string
}

// New allocates a fresh Annotation with the next process-wide id.
func New(kind, data string) *Annotation {
	return &Annotation{id: counter.Add(1), kind: kind, data: data}
}

// Restore reconstructs an Annotation with a specific id, as
// deserialization must (spec.md §3: "deserialization restores the
// stored id"). It never touches the shared counter.
func Restore(id int64, kind, data string) *Annotation {
	return &Annotation{id: id, kind: kind, data: data}
}

// ID returns the annotation's stable identity.
func (a *Annotation) ID() int64 {
	if a == nil {
		return 0
	}
	return a.id
}

// Kind returns the annotation's kind tag, if any.
func (a *Annotation) Kind() string {
	if a == nil {
		return ""
	}
	return a.kind
}

// Data returns the annotation's opaque payload, if any.
func (a *Annotation) Data() string {
	if a == nil {
		return ""
	}
	return a.data
}

// Equal reports whether a and b share the same identity.
func (a *Annotation) Equal(b *Annotation) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.id == b.id
}

// Elastic is the predefined annotation marking trivia whose whitespace
// may be reformatted by downstream formatters. It is reused by
// reference — never copy it, compare with Equal or pointer identity.
var Elastic = New("Elastic", "")
