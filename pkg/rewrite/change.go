// Package rewrite implements batch text editing over SourceText and
// structural list editing over green trees, the two mutation surfaces
// spec.md §4.A/§4.D call for despite the tree itself being immutable:
// every "edit" here produces a new value rather than mutating in place.
package rewrite

import "github.com/loretta-lang/loretta/pkg/text"

// TextChange is a single replacement of the UTF-16 code units in Span
// with NewText (spec.md §4.A "SourceText.WithChanges").
type TextChange struct {
	Span    text.TextSpan
	NewText string
}

// ChangeBuilder accumulates TextChanges for one ApplyChanges call.
type ChangeBuilder struct {
	Changes []TextChange
}

// NewChangeBuilder returns an empty ChangeBuilder.
func NewChangeBuilder() *ChangeBuilder {
	return &ChangeBuilder{}
}

// Replace records a change that replaces span with newText.
func (b *ChangeBuilder) Replace(span text.TextSpan, newText string) {
	b.Changes = append(b.Changes, TextChange{Span: span, NewText: newText})
}

// Insert records a change that inserts newText at offset, without
// replacing anything.
func (b *ChangeBuilder) Insert(offset int, newText string) {
	b.Replace(text.NewTextSpan(offset, 0), newText)
}

// Delete records a change that removes span's contents.
func (b *ChangeBuilder) Delete(span text.TextSpan) {
	b.Replace(span, "")
}
