package rewrite

import (
	"fmt"
	"sort"
)

// ValidationError describes a structurally invalid TextChange.
type ValidationError struct {
	Change  TextChange
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid change [%d:%d]: %s", e.Change.Span.Start, e.Change.Span.End(), e.Message)
}

// ConflictError describes two TextChanges whose spans overlap.
type ConflictError struct {
	First, Second TextChange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping changes: [%d:%d] and [%d:%d]",
		e.First.Span.Start, e.First.Span.End(), e.Second.Span.Start, e.Second.Span.End())
}

// ValidateChanges checks that every change's span fits within a source
// of the given length in UTF-16 code units.
func ValidateChanges(changes []TextChange, sourceLength int) error {
	for _, c := range changes {
		if c.Span.Start < 0 {
			return &ValidationError{Change: c, Message: "start offset is negative"}
		}
		if c.Span.Length < 0 {
			return &ValidationError{Change: c, Message: "span has negative length"}
		}
		if c.Span.End() > sourceLength {
			return &ValidationError{
				Change:  c,
				Message: fmt.Sprintf("end offset %d exceeds source length %d", c.Span.End(), sourceLength),
			}
		}
	}
	return nil
}

// SortChanges sorts changes by span start, then by span end, producing
// a deterministic application order.
func SortChanges(changes []TextChange) {
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Span.Start != changes[j].Span.Start {
			return changes[i].Span.Start < changes[j].Span.Start
		}
		return changes[i].Span.End() < changes[j].Span.End()
	})
}

// DetectConflicts reports the first pair of overlapping changes in a
// slice already sorted by SortChanges.
func DetectConflicts(changes []TextChange) error {
	for i := 1; i < len(changes); i++ {
		prev, cur := changes[i-1], changes[i]
		if cur.Span.Start < prev.Span.End() {
			return &ConflictError{First: prev, Second: cur}
		}
	}
	return nil
}

// PrepareChanges validates, sorts, and conflict-checks changes, ready
// for ApplyChanges.
func PrepareChanges(changes []TextChange, sourceLength int) ([]TextChange, error) {
	if len(changes) == 0 {
		return changes, nil
	}
	if err := ValidateChanges(changes, sourceLength); err != nil {
		return nil, err
	}
	out := make([]TextChange, len(changes))
	copy(out, changes)
	SortChanges(out)
	if err := DetectConflicts(out); err != nil {
		return nil, err
	}
	return out, nil
}
