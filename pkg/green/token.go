package green

import (
	"github.com/loretta-lang/loretta/pkg/annotation"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/loretta-lang/loretta/pkg/text"
)

// Trivia is a leaf carrying whitespace, comment, or shebang text that
// attaches to a Token's leading or trailing side (spec.md §4.D).
type Trivia struct {
	kind        syntaxkind.SyntaxKind
	literal     string
	diagnostics []diagnostic.Diagnostic
	annotations []*annotation.Annotation
}

// NewTrivia builds a Trivia leaf of the given kind and literal text.
func NewTrivia(kind syntaxkind.SyntaxKind, literal string) *Trivia {
	return &Trivia{kind: kind, literal: literal}
}

func (t *Trivia) Kind() syntaxkind.SyntaxKind { return t.kind }
func (t *Trivia) Text() string                { return t.literal }
func (t *Trivia) Width() int                  { return text.UTF16Len(t.literal) }
func (t *Trivia) FullWidth() int              { return t.Width() }
func (t *Trivia) SlotCount() int              { return 0 }
func (t *Trivia) Slot(i int) Node             { panic("green.Trivia: no slots") }
func (t *Trivia) IsToken() bool               { return false }
func (t *Trivia) IsTrivia() bool              { return true }
func (t *Trivia) IsList() bool                { return false }
func (t *Trivia) IsMissing() bool             { return false }

func (t *Trivia) Diagnostics() []diagnostic.Diagnostic { return t.diagnostics }
func (t *Trivia) Annotations() []*annotation.Annotation { return t.annotations }

func (t *Trivia) WithDiagnostics(diags []diagnostic.Diagnostic) Node {
	cp := *t
	cp.diagnostics = diags
	return &cp
}

func (t *Trivia) WithAnnotations(anns []*annotation.Annotation) Node {
	cp := *t
	cp.annotations = anns
	return &cp
}

// TriviaList bundles the trivia attached to one side of a Token. A nil
// *TriviaList is the zero-width empty list.
type TriviaList struct {
	items []*Trivia
}

// NewTriviaList builds a TriviaList from items. An empty or nil items
// slice yields nil, so callers can treat "no trivia" uniformly as nil.
func NewTriviaList(items []*Trivia) *TriviaList {
	if len(items) == 0 {
		return nil
	}
	return &TriviaList{items: append([]*Trivia(nil), items...)}
}

func (l *TriviaList) Count() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

func (l *TriviaList) Get(i int) *Trivia {
	if l == nil {
		return nil
	}
	return l.items[i]
}

func (l *TriviaList) FullWidth() int {
	if l == nil {
		return 0
	}
	w := 0
	for _, it := range l.items {
		w += it.FullWidth()
	}
	return w
}

// Token is a leaf node carrying either fixed operator/keyword text or a
// variable lexeme (identifier, numeric literal, string literal), plus
// its leading and trailing trivia (spec.md §4.D, §4.F).
type Token struct {
	kind        syntaxkind.SyntaxKind
	text        string
	value       any
	leading     *TriviaList
	trailing    *TriviaList
	isMissing   bool
	diagnostics []diagnostic.Diagnostic
	annotations []*annotation.Annotation
}

// NewToken builds a Token with the given lexeme text and parsed value
// (nil for tokens with no interesting value, e.g. punctuation).
func NewToken(kind syntaxkind.SyntaxKind, lexeme string, value any, leading, trailing *TriviaList) *Token {
	return &Token{kind: kind, text: lexeme, value: value, leading: leading, trailing: trailing}
}

// NewMissingToken builds a zero-width placeholder standing in for a
// token the parser expected but did not find (spec.md §7).
func NewMissingToken(kind syntaxkind.SyntaxKind) *Token {
	return &Token{kind: kind, isMissing: true}
}

func (t *Token) Kind() syntaxkind.SyntaxKind { return t.kind }

// Text returns the token's own lexeme, excluding trivia. For a fixed-
// text kind (operators, keywords) with an empty lexeme this falls back
// to the kind's declared text from the metadata table.
func (t *Token) Text() string {
	if t.text != "" || t.isMissing {
		return t.text
	}
	if s, ok := syntaxkind.TokenText(t.kind); ok {
		return s
	}
	return ""
}

func (t *Token) Value() any                { return t.value }
func (t *Token) LeadingTrivia() *TriviaList  { return t.leading }
func (t *Token) TrailingTrivia() *TriviaList { return t.trailing }

func (t *Token) Width() int { return text.UTF16Len(t.Text()) }
func (t *Token) FullWidth() int {
	return t.leading.FullWidth() + t.Width() + t.trailing.FullWidth()
}
func (t *Token) SlotCount() int   { return 0 }
func (t *Token) Slot(i int) Node  { panic("green.Token: no slots") }
func (t *Token) IsToken() bool    { return true }
func (t *Token) IsTrivia() bool   { return false }
func (t *Token) IsList() bool     { return false }
func (t *Token) IsMissing() bool  { return t.isMissing }

func (t *Token) Diagnostics() []diagnostic.Diagnostic { return t.diagnostics }
func (t *Token) Annotations() []*annotation.Annotation { return t.annotations }

func (t *Token) WithDiagnostics(diags []diagnostic.Diagnostic) Node {
	cp := *t
	cp.diagnostics = diags
	return &cp
}

func (t *Token) WithAnnotations(anns []*annotation.Annotation) Node {
	cp := *t
	cp.annotations = anns
	return &cp
}

// WithLeadingTrivia returns a copy of t with its leading trivia
// replaced (spec.md §4.D "WithLeadingTrivia/WithTrailingTrivia").
func (t *Token) WithLeadingTrivia(leading *TriviaList) *Token {
	cp := *t
	cp.leading = leading
	return &cp
}

// WithTrailingTrivia returns a copy of t with its trailing trivia
// replaced.
func (t *Token) WithTrailingTrivia(trailing *TriviaList) *Token {
	cp := *t
	cp.trailing = trailing
	return &cp
}
