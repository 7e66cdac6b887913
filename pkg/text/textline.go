package text

// TextLine is a view over one line of a SourceText: its content span,
// and the span including whatever line-break terminates it.
type TextLine struct {
	text               *SourceText
	lineNumber         int
	span               TextSpan
	spanIncludingBreak TextSpan
}

// LineNumber returns the 0-based line number.
func (l TextLine) LineNumber() int {
	return l.lineNumber
}

// Span returns the line's content span, excluding its terminator.
func (l TextLine) Span() TextSpan {
	return l.span
}

// SpanIncludingLineBreak returns the line's span including its
// terminator (equal to Span for the final, unterminated line).
func (l TextLine) SpanIncludingLineBreak() TextSpan {
	return l.spanIncludingBreak
}

// Start returns the offset of the first unit of the line.
func (l TextLine) Start() int {
	return l.span.Start
}

// End returns the offset just past the line's content.
func (l TextLine) End() int {
	return l.span.End()
}

// EndIncludingLineBreak returns the offset just past the line's
// terminator.
func (l TextLine) EndIncludingLineBreak() int {
	return l.spanIncludingBreak.End()
}

// Text returns the line's content, excluding its terminator.
func (l TextLine) Text() string {
	s, _ := l.text.Slice(l.span)
	return s
}

// TextLineFromSpan validates that span begins at a line start and ends
// at a line end (with or without the terminator), returning the
// corresponding TextLine. Either way the returned TextLine describes
// the whole line: Span without the terminator, SpanIncludingLineBreak
// with it.
//
// Per spec.md §4.A, a span that does not land on line boundaries raises
// a *RangeError* with an explicit message.
func TextLineFromSpan(t *SourceText, span TextSpan) (TextLine, error) {
	startLine, err := t.LineNumber(span.Start)
	if err != nil {
		return TextLine{}, err
	}
	candidate, err := t.Line(startLine)
	if err != nil {
		return TextLine{}, err
	}
	if candidate.Start() != span.Start {
		return TextLine{}, &RangeError{Op: "TextLineFromSpan", Message: "span does not include start of line"}
	}
	if span.End() == candidate.End() || span.End() == candidate.EndIncludingLineBreak() {
		return candidate, nil
	}
	return TextLine{}, &RangeError{Op: "TextLineFromSpan", Message: "span does not include end of line"}
}
