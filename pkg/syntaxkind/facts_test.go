package syntaxkind_test

import (
	"testing"

	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenText(t *testing.T) {
	cases := []struct {
		kind syntaxkind.SyntaxKind
		want string
	}{
		{syntaxkind.KindPlusToken, "+"},
		{syntaxkind.KindDotDotToken, ".."},
		{syntaxkind.KindDotDotDotToken, "..."},
		{syntaxkind.KindAndKeyword, "and"},
		{syntaxkind.KindContinueKeyword, "continue"},
		{syntaxkind.KindDoubleColonToken, "::"},
	}
	for _, c := range cases {
		got, ok := syntaxkind.TokenText(c.kind)
		require.True(t, ok, "expected %s to have fixed text", c.kind)
		assert.Equal(t, c.want, got)
	}
}

func TestLookupKeyword(t *testing.T) {
	k, ok := syntaxkind.LookupKeyword("while")
	require.True(t, ok)
	assert.Equal(t, syntaxkind.KindWhileKeyword, k)

	_, ok = syntaxkind.LookupKeyword("notakeyword")
	assert.False(t, ok)

	k, ok = syntaxkind.LookupKeyword("continue")
	require.True(t, ok)
	assert.Equal(t, syntaxkind.KindContinueKeyword, k)
}

func TestLookupOperator(t *testing.T) {
	k, ok := syntaxkind.LookupOperator("..")
	require.True(t, ok)
	assert.Equal(t, syntaxkind.KindDotDotToken, k)

	k, ok = syntaxkind.LookupOperator("~=")
	require.True(t, ok)
	assert.Equal(t, syntaxkind.KindTildeEqualsToken, k)
}

func TestPrecedenceTable(t *testing.T) {
	assert.Equal(t, 14, syntaxkind.BinaryPrecedence(syntaxkind.KindCaretToken))
	assert.True(t, syntaxkind.IsRightAssociative(syntaxkind.KindCaretToken))

	assert.Equal(t, 9, syntaxkind.BinaryPrecedence(syntaxkind.KindDotDotToken))
	assert.True(t, syntaxkind.IsRightAssociative(syntaxkind.KindDotDotToken))

	assert.Equal(t, 11, syntaxkind.BinaryPrecedence(syntaxkind.KindStarToken))
	assert.Less(t, syntaxkind.BinaryPrecedence(syntaxkind.KindPlusToken), syntaxkind.BinaryPrecedence(syntaxkind.KindStarToken))
	assert.Less(t, syntaxkind.BinaryPrecedence(syntaxkind.KindOrKeyword), syntaxkind.BinaryPrecedence(syntaxkind.KindAndKeyword))

	assert.Equal(t, 12, syntaxkind.UnaryPrecedence(syntaxkind.KindNotKeyword))
	assert.Equal(t, 12, syntaxkind.UnaryPrecedence(syntaxkind.KindHashToken))
	assert.Equal(t, 0, syntaxkind.UnaryPrecedence(syntaxkind.KindStarToken))
}

func TestCategories(t *testing.T) {
	cats := syntaxkind.Categories(syntaxkind.KindAndKeyword)
	assert.Contains(t, cats, syntaxkind.CategoryKeyword)
	assert.Contains(t, cats, syntaxkind.CategoryBinaryOperator)

	kinds := syntaxkind.KindsInCategory(syntaxkind.CategoryDialectExtension)
	assert.Contains(t, kinds, syntaxkind.KindContinueKeyword)
}

func TestProperty(t *testing.T) {
	v, ok := syntaxkind.Property(syntaxkind.KindGotoKeyword, syntaxkind.PropertyMinVersion)
	require.True(t, ok)
	assert.Equal(t, "5.2", v)

	v, ok = syntaxkind.Property(syntaxkind.KindContinueKeyword, syntaxkind.PropertyRequiresGLua)
	require.True(t, ok)
	assert.Equal(t, true, v)

	_, ok = syntaxkind.Property(syntaxkind.KindPlusToken, syntaxkind.PropertyMinVersion)
	assert.False(t, ok)
}

func TestIsTriviaAndIsKeyword(t *testing.T) {
	assert.True(t, syntaxkind.IsTrivia(syntaxkind.KindWhitespaceTrivia))
	assert.False(t, syntaxkind.IsTrivia(syntaxkind.KindPlusToken))
	assert.True(t, syntaxkind.IsKeyword(syntaxkind.KindWhileKeyword))
	assert.False(t, syntaxkind.IsKeyword(syntaxkind.KindIdentifierToken))
}

func TestString(t *testing.T) {
	assert.Equal(t, "PlusToken", syntaxkind.KindPlusToken.String())
	assert.Equal(t, "ContinueKeyword", syntaxkind.KindContinueKeyword.String())
}

// TestValidateReportsNoErrorsOnWellFormedTable is the LOSK00xx
// self-check spec.md §4.C calls for: the shipped table must be
// internally consistent.
func TestValidateReportsNoErrorsOnWellFormedTable(t *testing.T) {
	diags := syntaxkind.Validate()
	for _, d := range diags {
		assert.NotEqual(t, diagnostic.Error, d.Severity, "unexpected error diagnostic: %s", d.String())
	}
}
