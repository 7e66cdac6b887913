package lexer_test

import (
	"testing"

	"github.com/loretta-lang/loretta/pkg/dialect"
	"github.com/loretta-lang/loretta/pkg/lexer"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/loretta-lang/loretta/pkg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(t *testing.T, src string, opts dialect.Options) []*tokenInfo {
	t.Helper()
	l := lexer.New(text.New(src), opts)
	var out []*tokenInfo
	for {
		tok := l.NextToken()
		out = append(out, &tokenInfo{kind: tok.Kind(), text: tok.Text(), value: tok.Value()})
		if tok.Kind() == syntaxkind.KindEndOfFileToken {
			break
		}
	}
	return out
}

type tokenInfo struct {
	kind  syntaxkind.SyntaxKind
	text  string
	value any
}

func kinds(infos []*tokenInfo) []syntaxkind.SyntaxKind {
	out := make([]syntaxkind.SyntaxKind, len(infos))
	for i, info := range infos {
		out[i] = info.kind
	}
	return out
}

func TestLexIdentifiersAndKeywords(t *testing.T) {
	got := tokens(t, "local x = 1", dialect.Default())
	assert.Equal(t, []syntaxkind.SyntaxKind{
		syntaxkind.KindLocalKeyword,
		syntaxkind.KindIdentifierToken,
		syntaxkind.KindEqualsToken,
		syntaxkind.KindNumericLiteralToken,
		syntaxkind.KindEndOfFileToken,
	}, kinds(got))
}

func TestLexOperatorsLongestMatchFirst(t *testing.T) {
	got := tokens(t, "a...b..c", dialect.Default())
	assert.Equal(t, []syntaxkind.SyntaxKind{
		syntaxkind.KindIdentifierToken,
		syntaxkind.KindDotDotDotToken,
		syntaxkind.KindIdentifierToken,
		syntaxkind.KindDotDotToken,
		syntaxkind.KindIdentifierToken,
		syntaxkind.KindEndOfFileToken,
	}, kinds(got))
}

func TestLexStringLiteralWithEscapes(t *testing.T) {
	got := tokens(t, `"a\nb"`, dialect.Default())
	require.Len(t, got, 2)
	assert.Equal(t, syntaxkind.KindStringLiteralToken, got[0].kind)
	assert.Equal(t, "a\nb", got[0].value)
}

func TestLexLongBracketString(t *testing.T) {
	got := tokens(t, "[==[hello]==]", dialect.Default())
	require.Len(t, got, 2)
	assert.Equal(t, syntaxkind.KindStringLiteralToken, got[0].kind)
	assert.Equal(t, "hello", got[0].value)
}

func TestLexLongComment(t *testing.T) {
	l := lexer.New(text.New("--[[ comment ]] x"), dialect.Default())
	tok := l.NextToken()
	assert.Equal(t, syntaxkind.KindIdentifierToken, tok.Kind())
	require.NotNil(t, tok.LeadingTrivia())
	assert.Equal(t, syntaxkind.KindMultiLineCommentTrivia, tok.LeadingTrivia().Get(0).Kind())
}

func TestLexNumbers(t *testing.T) {
	cases := map[string]any{
		"42":    int64(42),
		"0x2A":  int64(42),
		"3.14":  3.14,
		"1e10":  1e10,
	}
	for src, want := range cases {
		got := tokens(t, src, dialect.Default())
		require.Len(t, got, 2)
		assert.Equal(t, syntaxkind.KindNumericLiteralToken, got[0].kind)
		assert.Equal(t, want, got[0].value)
	}
}

func TestContinueIsIdentifierUnderLua54(t *testing.T) {
	got := tokens(t, "continue", dialect.ForVersion(dialect.Lua54))
	assert.Equal(t, syntaxkind.KindIdentifierToken, got[0].kind)
}

func TestContinueIsKeywordUnderGLua(t *testing.T) {
	got := tokens(t, "continue", dialect.ForVersion(dialect.GLua))
	assert.Equal(t, syntaxkind.KindContinueKeyword, got[0].kind)
}

func TestGotoIsIdentifierUnderLua51(t *testing.T) {
	got := tokens(t, "goto", dialect.ForVersion(dialect.Lua51))
	assert.Equal(t, syntaxkind.KindIdentifierToken, got[0].kind)
}

func TestTrailingTriviaStopsAtLineBreak(t *testing.T) {
	l := lexer.New(text.New("x -- c\ny"), dialect.Default())
	first := l.NextToken()
	require.Equal(t, 3, first.TrailingTrivia().Count())
	assert.Equal(t, syntaxkind.KindWhitespaceTrivia, first.TrailingTrivia().Get(0).Kind())
	assert.Equal(t, syntaxkind.KindSingleLineCommentTrivia, first.TrailingTrivia().Get(1).Kind())
	assert.Equal(t, syntaxkind.KindEndOfLineTrivia, first.TrailingTrivia().Get(2).Kind())

	second := l.NextToken()
	assert.Equal(t, syntaxkind.KindIdentifierToken, second.Kind())
	assert.Nil(t, second.LeadingTrivia())
}

func TestUnterminatedStringProducesDiagnostic(t *testing.T) {
	l := lexer.New(text.New(`"oops`), dialect.Default())
	_ = l.NextToken()
	require.NotEmpty(t, l.Diagnostics())
}

func TestShebangOnlyAtStartOfFile(t *testing.T) {
	l := lexer.New(text.New("#!/usr/bin/env lua\nlocal x"), dialect.Default())
	tok := l.NextToken()
	require.NotNil(t, tok.LeadingTrivia())
	assert.Equal(t, syntaxkind.KindShebangTrivia, tok.LeadingTrivia().Get(0).Kind())
}

func TestBadCharacterProducesBadTokenAndDiagnostic(t *testing.T) {
	l := lexer.New(text.New("@"), dialect.Default())
	tok := l.NextToken()
	assert.Equal(t, syntaxkind.KindBadToken, tok.Kind())
	require.NotEmpty(t, l.Diagnostics())
}
