package rewrite

import (
	"unicode/utf16"

	"github.com/loretta-lang/loretta/pkg/text"
)

// ApplyChanges validates, sorts, conflict-checks, then applies changes
// to src, returning the resulting SourceText (spec.md §4.A
// "SourceText.WithChanges"). src itself is never mutated.
func ApplyChanges(src *text.SourceText, changes []TextChange) (*text.SourceText, error) {
	if len(changes) == 0 {
		return src, nil
	}
	prepared, err := PrepareChanges(changes, src.Length())
	if err != nil {
		return nil, err
	}

	units := src.Units()
	out := make([]uint16, 0, len(units))
	cursor := 0
	for _, c := range prepared {
		out = append(out, units[cursor:c.Span.Start]...)
		out = append(out, utf16.Encode([]rune(c.NewText))...)
		cursor = c.Span.End()
	}
	out = append(out, units[cursor:]...)

	return text.NewFromUnits(out), nil
}
