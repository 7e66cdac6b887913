package lexer

import "github.com/loretta-lang/loretta/pkg/text"

// eof is returned by Peek past the end of the source, chosen outside
// the UTF-16 code-unit range so it never collides with real input.
const eof rune = -1

// TextWindow is the lexer's cursor over a SourceText: a current offset
// plus a remembered lexeme-start offset, so a token's raw text can be
// sliced out once scanning finishes (spec.md §4.B).
type TextWindow struct {
	source     *text.SourceText
	offset     int
	lexemeStart int
}

// NewTextWindow constructs a TextWindow positioned at the start of src.
func NewTextWindow(src *text.SourceText) *TextWindow {
	return &TextWindow{source: src}
}

// Offset is the window's current position.
func (w *TextWindow) Offset() int { return w.offset }

// AtEnd reports whether the window has consumed the entire source.
func (w *TextWindow) AtEnd() bool { return w.offset >= w.source.Length() }

// Peek returns the code unit at the window's current offset plus
// lookahead, without consuming it. Peek(0) is the next unit to be
// consumed. Returns eof past the end of input.
func (w *TextWindow) Peek(lookahead int) rune {
	i := w.offset + lookahead
	if i < 0 || i >= w.source.Length() {
		return eof
	}
	u, _ := w.source.At(i)
	return rune(u)
}

// Advance consumes n code units.
func (w *TextWindow) Advance(n int) {
	w.offset += n
	if w.offset > w.source.Length() {
		w.offset = w.source.Length()
	}
}

// StartLexeme marks the current offset as the start of the token or
// trivia piece now being scanned.
func (w *TextWindow) StartLexeme() {
	w.lexemeStart = w.offset
}

// LexemeStartPosition is the offset StartLexeme last recorded.
func (w *TextWindow) LexemeStartPosition() int { return w.lexemeStart }

// LexemeWidth is the number of code units consumed since StartLexeme.
func (w *TextWindow) LexemeWidth() int { return w.offset - w.lexemeStart }

// Reset rewinds the window to offset, used when a speculative scan
// (e.g. a quick-scan attempt) needs to fall back to the slow path.
func (w *TextWindow) Reset(offset int) { w.offset = offset }

// LexemeText returns the source text consumed since StartLexeme.
func (w *TextWindow) LexemeText() string {
	s, _ := w.source.Slice(text.NewTextSpan(w.lexemeStart, w.offset-w.lexemeStart))
	return s
}

// Source exposes the underlying SourceText, e.g. for diagnostics that
// need line/column information.
func (w *TextWindow) Source() *text.SourceText { return w.source }
