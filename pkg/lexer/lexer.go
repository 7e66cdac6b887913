// Package lexer turns SourceText into a stream of green Tokens,
// attaching leading and trailing trivia as it goes (spec.md §4.B,
// §4.F). It tries a quick-scan DFA fast path on every token and falls
// back to a hand-written scanner for anything the DFA bails out on
// (strings, comments, multi-character operators, numbers).
package lexer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/loretta-lang/loretta/internal/logging"
	"github.com/loretta-lang/loretta/internal/tokencache"
	"github.com/loretta-lang/loretta/pkg/dialect"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/green"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/loretta-lang/loretta/pkg/text"
)

// Lexer scans one SourceText into a token stream on demand via
// NextToken; it does not materialize the whole token list up front.
type Lexer struct {
	window      *TextWindow
	dialect     dialect.Options
	keywords    *tokencache.Cache[syntaxkind.SyntaxKind]
	diagnostics []diagnostic.Diagnostic
	atStart     bool
	logger      *log.Logger
}

// New constructs a Lexer over src under the given dialect options.
func New(src *text.SourceText, opts dialect.Options) *Lexer {
	return &Lexer{
		window:   NewTextWindow(src),
		dialect:  opts,
		keywords: tokencache.New[syntaxkind.SyntaxKind](512),
		atStart:  true,
		logger:   logging.Default(),
	}
}

// SetLogger replaces the lexer's logger, used by pkg/parser to thread
// the logger from its Parse context down into the lexer it drives.
func (l *Lexer) SetLogger(logger *log.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Diagnostics returns every diagnostic raised since construction.
func (l *Lexer) Diagnostics() []diagnostic.Diagnostic { return l.diagnostics }

func (l *Lexer) addDiagnostic(id string, severity diagnostic.Severity, message string, span text.TextSpan) {
	l.diagnostics = append(l.diagnostics, diagnostic.New(id, severity, message, span))
	l.logger.Warn(message, logging.FieldDiagnosticID, id, logging.FieldSeverity, severity.String(), logging.FieldSpan, span.String())
}

// NextToken scans and returns the next token, including its leading
// and trailing trivia. Calling NextToken again after an
// KindEndOfFileToken keeps returning KindEndOfFileToken tokens.
func (l *Lexer) NextToken() *green.Token {
	wasStart := l.atStart
	l.atStart = false

	leading := l.scanTriviaList(true, wasStart)
	kind, lexeme, value := l.scanTokenBody()
	trailing := l.scanTriviaList(false, false)

	return green.NewToken(kind, lexeme, value, leading, trailing)
}

// scanTriviaList accumulates a run of trivia. Leading trivia runs until
// real token content; trailing trivia stops as soon as one end-of-line
// piece has been consumed, so everything after a token's own line
// becomes the next token's leading trivia (the conventional Roslyn
// split, which keeps "what trivia belongs to this line" unambiguous).
func (l *Lexer) scanTriviaList(leading, allowShebang bool) *green.TriviaList {
	var items []*green.Trivia
	for {
		t := l.scanOneTrivia(allowShebang && len(items) == 0)
		if t == nil {
			break
		}
		items = append(items, t)
		if !leading && t.Kind() == syntaxkind.KindEndOfLineTrivia {
			break
		}
	}
	return green.NewTriviaList(items)
}

func (l *Lexer) scanOneTrivia(allowShebang bool) *green.Trivia {
	w := l.window
	r := w.Peek(0)
	switch {
	case r == ' ' || r == '\t':
		w.StartLexeme()
		for r := w.Peek(0); r == ' ' || r == '\t'; r = w.Peek(0) {
			w.Advance(1)
		}
		return green.NewTrivia(syntaxkind.KindWhitespaceTrivia, w.LexemeText())
	case r == '\r':
		w.StartLexeme()
		w.Advance(1)
		if w.Peek(0) == '\n' {
			w.Advance(1)
		}
		return green.NewTrivia(syntaxkind.KindEndOfLineTrivia, w.LexemeText())
	case r == '\n':
		w.StartLexeme()
		w.Advance(1)
		return green.NewTrivia(syntaxkind.KindEndOfLineTrivia, w.LexemeText())
	case r == '#' && allowShebang && w.Peek(1) == '!':
		w.StartLexeme()
		for {
			r := w.Peek(0)
			if r == eof || r == '\r' || r == '\n' {
				break
			}
			w.Advance(1)
		}
		return green.NewTrivia(syntaxkind.KindShebangTrivia, w.LexemeText())
	case r == '-' && w.Peek(1) == '-':
		return l.scanComment()
	default:
		return nil
	}
}

func (l *Lexer) scanComment() *green.Trivia {
	w := l.window
	w.StartLexeme()
	w.Advance(2) // "--"
	if w.Peek(0) == '[' {
		if level, ok := longBracketLevel(w, 0); ok {
			if l.scanLongBracketBody(level) {
				return green.NewTrivia(syntaxkind.KindMultiLineCommentTrivia, w.LexemeText())
			}
			start := w.LexemeStartPosition()
			l.addDiagnostic(diagnostic.IDUnterminatedComment, diagnostic.Error,
				"unterminated long comment", text.NewTextSpan(start, w.Offset()-start))
			return green.NewTrivia(syntaxkind.KindMultiLineCommentTrivia, w.LexemeText())
		}
	}
	for {
		r := w.Peek(0)
		if r == eof || r == '\r' || r == '\n' {
			break
		}
		w.Advance(1)
	}
	return green.NewTrivia(syntaxkind.KindSingleLineCommentTrivia, w.LexemeText())
}

// longBracketLevel checks whether the window (at lookahead) sits at the
// opening of a Lua long bracket `[`, `=`*, `[` and returns the number of
// `=` signs if so, consuming the opener. lookahead lets callers peek
// before committing (unused here but kept for symmetry with how the
// slow string scanner reuses this helper).
func longBracketLevel(w *TextWindow, lookahead int) (int, bool) {
	if w.Peek(lookahead) != '[' {
		return 0, false
	}
	level := 0
	for w.Peek(lookahead+1+level) == '=' {
		level++
	}
	if w.Peek(lookahead+1+level) != '[' {
		return 0, false
	}
	w.Advance(lookahead + 2 + level)
	return level, true
}

// scanLongBracketBody consumes up to and including the matching closing
// bracket `]`, `=`*, `]`. Returns false if EOF was hit first.
func (l *Lexer) scanLongBracketBody(level int) bool {
	w := l.window
	// A long bracket's content may begin with a single newline that is
	// not part of the content (Lua reference behavior); skip it.
	if w.Peek(0) == '\r' {
		w.Advance(1)
		if w.Peek(0) == '\n' {
			w.Advance(1)
		}
	} else if w.Peek(0) == '\n' {
		w.Advance(1)
	}
	for {
		r := w.Peek(0)
		if r == eof {
			return false
		}
		if r == ']' {
			closeLevel := 0
			for w.Peek(1+closeLevel) == '=' {
				closeLevel++
			}
			if closeLevel == level && w.Peek(1+closeLevel) == ']' {
				w.Advance(2 + closeLevel)
				return true
			}
		}
		w.Advance(1)
	}
}

// scanTokenBody scans the next non-trivia token and returns its kind,
// raw lexeme text, and parsed value (non-nil only for numeric and
// string literals).
func (l *Lexer) scanTokenBody() (syntaxkind.SyntaxKind, string, any) {
	w := l.window
	w.StartLexeme()

	if quick := runQuickScan(w); quick.ok && quick.state == stateDone {
		w.Reset(w.LexemeStartPosition())
		if kind, lexeme, value, handled := l.classifyQuickScan(quick.width); handled {
			return kind, lexeme, value
		}
		w.Reset(w.LexemeStartPosition())
	}

	l.logger.Debug("quick-scan fallback", logging.FieldOffset, w.LexemeStartPosition())
	return l.scanTokenSlow()
}

// classifyQuickScan turns a successful DFA run into a token when the
// run's first character unambiguously determines the token kind
// (identifiers and integer-only numbers). Anything else — dots,
// compound-operator starts, single punctuation that might actually be
// the start of a longer operator — returns handled=false so the slow
// scanner makes the call, since some quick-scan-recognized character
// classes still need operator-table lookups or number-suffix handling.
func (l *Lexer) classifyQuickScan(width int) (syntaxkind.SyntaxKind, string, any, bool) {
	w := l.window
	r := w.Peek(0)
	class := classify(r)
	switch class {
	case classLetterOrUnderscore:
		w.Advance(width)
		lexeme := w.LexemeText()
		if kind, ok := l.lookupKeyword(lexeme); ok {
			return kind, lexeme, nil, true
		}
		return syntaxkind.KindIdentifierToken, lexeme, nil, true
	case classDigit:
		// Only committed by the DFA when the whole run was plain
		// digits with nothing following that could start a fraction,
		// exponent, or hex prefix.
		next := w.Peek(width)
		if next == '.' || next == 'e' || next == 'E' || next == 'x' || next == 'X' {
			return 0, "", nil, false
		}
		w.Advance(width)
		lexeme := w.LexemeText()
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return syntaxkind.KindNumericLiteralToken, lexeme, lexeme, true
		}
		return syntaxkind.KindNumericLiteralToken, lexeme, n, true
	case classSingleCharPunct:
		w.Advance(width)
		lexeme := w.LexemeText()
		if kind, ok := syntaxkind.LookupOperator(lexeme); ok {
			return kind, lexeme, nil, true
		}
		return syntaxkind.KindBadToken, lexeme, nil, true
	default:
		return 0, "", nil, false
	}
}

func (l *Lexer) lookupKeyword(text string) (syntaxkind.SyntaxKind, bool) {
	if kind, ok := l.keywords.Lookup(text, 0); ok {
		return l.gateKeyword(kind)
	}
	kind, ok := syntaxkind.LookupKeyword(text)
	if !ok {
		return 0, false
	}
	l.keywords.Add(text, 0, kind)
	return l.gateKeyword(kind)
}

// gateKeyword enforces dialect feature flags on keywords whose
// availability is version-dependent: `continue` only lexes as a
// keyword under GLua/FiveM, `goto` only under dialects with
// goto/label support (spec.md §5). Everywhere else it still lexes as
// an identifier so the parser can produce a clean diagnostic instead
// of a lexical one.
func (l *Lexer) gateKeyword(kind syntaxkind.SyntaxKind) (syntaxkind.SyntaxKind, bool) {
	switch kind {
	case syntaxkind.KindContinueKeyword:
		if !l.dialect.Continue {
			return 0, false
		}
	case syntaxkind.KindGotoKeyword:
		if !l.dialect.GotoAndLabels {
			return 0, false
		}
	}
	return kind, true
}

func (l *Lexer) scanTokenSlow() (syntaxkind.SyntaxKind, string, any) {
	w := l.window
	r := w.Peek(0)

	switch {
	case r == eof:
		return syntaxkind.KindEndOfFileToken, "", nil
	case r == '_' || isLetter(r):
		return l.scanIdentifierOrKeyword()
	case isDigit(r):
		return l.scanNumber()
	case r == '.' && isDigit(w.Peek(1)):
		return l.scanNumber()
	case r == '"' || r == '\'':
		return l.scanQuotedString()
	case r == '[':
		if level, ok := longBracketLevel(w, 0); ok {
			start := w.LexemeStartPosition()
			if l.scanLongBracketBody(level) {
				return syntaxkind.KindStringLiteralToken, w.LexemeText(), longBracketContent(w.LexemeText(), level)
			}
			l.addDiagnostic(diagnostic.IDUnterminatedString, diagnostic.Error,
				"unterminated long string", text.NewTextSpan(start, w.Offset()-start))
			return syntaxkind.KindStringLiteralToken, w.LexemeText(), nil
		}
		w.Advance(1)
		return syntaxkind.KindOpenBracketToken, w.LexemeText(), nil
	default:
		return l.scanOperator()
	}
}

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) scanIdentifierOrKeyword() (syntaxkind.SyntaxKind, string, any) {
	w := l.window
	for {
		r := w.Peek(0)
		if r == '_' || isLetter(r) || isDigit(r) {
			w.Advance(1)
			continue
		}
		break
	}
	lexeme := w.LexemeText()
	if kind, ok := l.lookupKeyword(lexeme); ok {
		return kind, lexeme, nil
	}
	return syntaxkind.KindIdentifierToken, lexeme, nil
}

func (l *Lexer) scanNumber() (syntaxkind.SyntaxKind, string, any) {
	w := l.window
	isHex := false
	if w.Peek(0) == '0' && (w.Peek(1) == 'x' || w.Peek(1) == 'X') {
		isHex = true
		w.Advance(2)
		for isHexDigit(w.Peek(0)) {
			w.Advance(1)
		}
		if w.Peek(0) == '.' {
			w.Advance(1)
			for isHexDigit(w.Peek(0)) {
				w.Advance(1)
			}
		}
		if w.Peek(0) == 'p' || w.Peek(0) == 'P' {
			w.Advance(1)
			if w.Peek(0) == '+' || w.Peek(0) == '-' {
				w.Advance(1)
			}
			for isDigit(w.Peek(0)) {
				w.Advance(1)
			}
		}
	} else {
		for isDigit(w.Peek(0)) {
			w.Advance(1)
		}
		if w.Peek(0) == '.' {
			w.Advance(1)
			for isDigit(w.Peek(0)) {
				w.Advance(1)
			}
		}
		if w.Peek(0) == 'e' || w.Peek(0) == 'E' {
			w.Advance(1)
			if w.Peek(0) == '+' || w.Peek(0) == '-' {
				w.Advance(1)
			}
			for isDigit(w.Peek(0)) {
				w.Advance(1)
			}
		}
	}
	lexeme := w.LexemeText()
	value, err := parseNumericLiteral(lexeme, isHex)
	if err != nil {
		start := w.LexemeStartPosition()
		l.addDiagnostic(diagnostic.IDMalformedNumber, diagnostic.Error,
			"malformed number literal: "+lexeme, text.NewTextSpan(start, w.Offset()-start))
		return syntaxkind.KindNumericLiteralToken, lexeme, nil
	}
	return syntaxkind.KindNumericLiteralToken, lexeme, value
}

func parseNumericLiteral(lexeme string, isHex bool) (any, error) {
	hasFraction := strings.ContainsAny(lexeme, ".")
	hasExponent := false
	if isHex {
		hasExponent = strings.ContainsAny(lexeme, "pP")
	} else {
		hasExponent = strings.ContainsAny(lexeme, "eE")
	}
	if !hasFraction && !hasExponent {
		if isHex {
			n, err := strconv.ParseUint(lexeme[2:], 16, 64)
			return int64(n), err
		}
		n, err := strconv.ParseInt(lexeme, 10, 64)
		return n, err
	}
	if isHex {
		return strconv.ParseFloat(lexeme, 64)
	}
	return strconv.ParseFloat(lexeme, 64)
}

func (l *Lexer) scanQuotedString() (syntaxkind.SyntaxKind, string, any) {
	w := l.window
	quote := w.Peek(0)
	w.Advance(1)
	var value strings.Builder
	for {
		r := w.Peek(0)
		switch {
		case r == eof || r == '\r' || r == '\n':
			start := w.LexemeStartPosition()
			l.addDiagnostic(diagnostic.IDUnterminatedString, diagnostic.Error,
				"unterminated string literal", text.NewTextSpan(start, w.Offset()-start))
			return syntaxkind.KindStringLiteralToken, w.LexemeText(), value.String()
		case r == quote:
			w.Advance(1)
			return syntaxkind.KindStringLiteralToken, w.LexemeText(), value.String()
		case r == '\\':
			w.Advance(1)
			l.scanEscape(&value)
		default:
			value.WriteRune(r)
			w.Advance(1)
		}
	}
}

func (l *Lexer) scanEscape(out *strings.Builder) {
	w := l.window
	r := w.Peek(0)
	switch r {
	case 'n':
		out.WriteByte('\n')
		w.Advance(1)
	case 't':
		out.WriteByte('\t')
		w.Advance(1)
	case 'r':
		out.WriteByte('\r')
		w.Advance(1)
	case 'a':
		out.WriteByte('\a')
		w.Advance(1)
	case 'b':
		out.WriteByte('\b')
		w.Advance(1)
	case 'f':
		out.WriteByte('\f')
		w.Advance(1)
	case 'v':
		out.WriteByte('\v')
		w.Advance(1)
	case '\\', '"', '\'':
		out.WriteRune(r)
		w.Advance(1)
	case '\n':
		out.WriteByte('\n')
		w.Advance(1)
	case 'x':
		w.Advance(1)
		start := w.Offset()
		for i := 0; i < 2 && isHexDigit(w.Peek(0)); i++ {
			w.Advance(1)
		}
		hex, _ := w.Source().Slice(text.NewTextSpan(start, w.Offset()-start))
		if n, err := strconv.ParseUint(hex, 16, 8); err == nil {
			out.WriteByte(byte(n))
		} else {
			start := w.LexemeStartPosition()
			l.addDiagnostic(diagnostic.IDInvalidEscape, diagnostic.Error,
				"invalid \\x escape", text.NewTextSpan(start, w.Offset()-start))
		}
	case 'z':
		w.Advance(1)
		for w.Peek(0) == ' ' || w.Peek(0) == '\t' || w.Peek(0) == '\n' || w.Peek(0) == '\r' {
			w.Advance(1)
		}
	default:
		if isDigit(r) {
			start := w.Offset()
			for i := 0; i < 3 && isDigit(w.Peek(0)); i++ {
				w.Advance(1)
			}
			dec, _ := w.Source().Slice(text.NewTextSpan(start, w.Offset()-start))
			if n, err := strconv.ParseUint(dec, 10, 8); err == nil {
				out.WriteByte(byte(n))
			}
			return
		}
		start := w.LexemeStartPosition()
		l.addDiagnostic(diagnostic.IDInvalidEscape, diagnostic.Error,
			"invalid escape sequence", text.NewTextSpan(start, w.Offset()-start+1))
		out.WriteRune(r)
		w.Advance(1)
	}
}

// longBracketContent strips the opening `[`, `=`*, `[` and matching
// closer from a long-bracket string's raw text, returning just the
// content Lua's runtime would see as the string's value.
func longBracketContent(raw string, level int) string {
	openLen := 2 + level
	if len(raw) < 2*openLen {
		return ""
	}
	body := raw[openLen : len(raw)-openLen]
	body = strings.TrimPrefix(body, "\r\n")
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\r")
	return body
}

// operators tried longest-match-first. Three and two character
// operators must be listed before any prefix that is itself a valid
// shorter operator.
var multiCharOperators = []string{
	"...", "..", "::",
	"==", "~=", "<=", ">=", "//", "<<", ">>",
}

func (l *Lexer) scanOperator() (syntaxkind.SyntaxKind, string, any) {
	w := l.window
	for _, op := range multiCharOperators {
		if w.matches(op) {
			w.Advance(len(op))
			lexeme := w.LexemeText()
			if kind, ok := syntaxkind.LookupOperator(lexeme); ok {
				return kind, lexeme, nil
			}
		}
	}
	r := w.Peek(0)
	if r == eof {
		return syntaxkind.KindEndOfFileToken, "", nil
	}
	w.Advance(1)
	lexeme := w.LexemeText()
	if kind, ok := syntaxkind.LookupOperator(lexeme); ok {
		return kind, lexeme, nil
	}
	start := w.LexemeStartPosition()
	l.addDiagnostic(diagnostic.IDBadCharacter, diagnostic.Error,
		"unexpected character", text.NewTextSpan(start, w.Offset()-start))
	return syntaxkind.KindBadToken, lexeme, nil
}

// matches reports whether the upcoming code units equal s, without
// consuming anything.
func (w *TextWindow) matches(s string) bool {
	for i, r := range []rune(s) {
		if w.Peek(i) != r {
			return false
		}
	}
	return true
}
