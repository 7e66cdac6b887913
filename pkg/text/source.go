package text

import "unicode/utf16"

// SourceText is an immutable sequence of UTF-16 code units with an
// attached LineIndex (spec.md §3). It is the unit of work for the
// lexer and parser: a TextWindow never allocates, and LineIndex
// lookups are O(log n).
type SourceText struct {
	units []uint16
	lines *LineIndex
}

// New builds a SourceText from a Go string, encoding it to UTF-16.
func New(s string) *SourceText {
	return &SourceText{
		units: utf16.Encode([]rune(s)),
		lines: NewLineIndex(utf16.Encode([]rune(s))),
	}
}

// NewFromUnits builds a SourceText directly from UTF-16 code units,
// useful when re-wrapping a slice already produced elsewhere (e.g. by
// rewrite.ApplyChanges).
func NewFromUnits(units []uint16) *SourceText {
	cp := make([]uint16, len(units))
	copy(cp, units)
	return &SourceText{units: cp, lines: NewLineIndex(cp)}
}

// Length returns the number of UTF-16 code units.
func (t *SourceText) Length() int {
	return len(t.units)
}

// At returns the code unit at i.
func (t *SourceText) At(i int) (uint16, error) {
	if i < 0 || i >= len(t.units) {
		return 0, &RangeError{Op: "At", Message: "offset out of range"}
	}
	return t.units[i], nil
}

// Units returns the underlying code-unit slice. Callers must not mutate
// it — SourceText is immutable.
func (t *SourceText) Units() []uint16 {
	return t.units
}

// Slice decodes [span.Start, span.End()) back to a Go string.
func (t *SourceText) Slice(span TextSpan) (string, error) {
	if span.Start < 0 || span.End() > len(t.units) || span.Length < 0 {
		return "", &RangeError{Op: "Slice", Message: "span out of range"}
	}
	return string(utf16.Decode(t.units[span.Start:span.End()])), nil
}

// String decodes the entire text back to a Go string.
func (t *SourceText) String() string {
	return string(utf16.Decode(t.units))
}

// LineIndex exposes the underlying LineIndex.
func (t *SourceText) LineIndex() *LineIndex {
	return t.lines
}

// Lines returns every TextLine in the text, in order.
func (t *SourceText) Lines() []TextLine {
	out := make([]TextLine, t.lines.LineCount())
	for i := range out {
		out[i], _ = t.Line(i)
	}
	return out
}

// Line returns the 0-based line numbered `line`.
func (t *SourceText) Line(line int) (TextLine, error) {
	start, err := t.lines.LineStart(line)
	if err != nil {
		return TextLine{}, err
	}
	end, err := t.lines.LineEnd(line)
	if err != nil {
		return TextLine{}, err
	}
	endWithBreak, err := t.lines.LineEndIncludingBreak(line)
	if err != nil {
		return TextLine{}, err
	}
	return TextLine{
		text:               t,
		lineNumber:         line,
		span:               NewTextSpanFromBounds(start, end),
		spanIncludingBreak: NewTextSpanFromBounds(start, endWithBreak),
	}, nil
}

// LineNumber returns the 0-based line number containing offset.
func (t *SourceText) LineNumber(offset int) (int, error) {
	return t.lines.LineNumber(offset)
}

// UTF16Len returns the number of UTF-16 code units a Go string decodes
// to. Widths in the green tree are measured in these units so that they
// stay consistent with SourceText's own indexing.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
