package green_test

import (
	"bytes"
	"testing"

	"github.com/loretta-lang/loretta/pkg/annotation"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/green"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/loretta-lang/loretta/pkg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plusToken() *green.Token {
	leading := green.NewTriviaList([]*green.Trivia{green.NewTrivia(syntaxkind.KindWhitespaceTrivia, " ")})
	return green.NewToken(syntaxkind.KindPlusToken, "+", nil, leading, nil)
}

func TestTokenWidths(t *testing.T) {
	tok := plusToken()
	assert.Equal(t, 1, tok.Width())
	assert.Equal(t, 2, tok.FullWidth()) // 1 leading space + "+"
}

func TestMissingTokenIsZeroWidth(t *testing.T) {
	tok := green.NewMissingToken(syntaxkind.KindEndKeyword)
	assert.True(t, tok.IsMissing())
	assert.Equal(t, 0, tok.FullWidth())
}

func TestTokenFallsBackToFixedText(t *testing.T) {
	tok := green.NewToken(syntaxkind.KindAndKeyword, "", nil, nil, nil)
	assert.Equal(t, "and", tok.Text())
	assert.Equal(t, 3, tok.Width())
}

func TestListSpecializationByArity(t *testing.T) {
	a := green.NewToken(syntaxkind.KindIdentifierToken, "a", nil, nil, nil)
	b := green.NewToken(syntaxkind.KindIdentifierToken, "b", nil, nil, nil)
	c := green.NewToken(syntaxkind.KindIdentifierToken, "c", nil, nil, nil)
	d := green.NewToken(syntaxkind.KindIdentifierToken, "d", nil, nil, nil)

	require.Nil(t, green.NewList(nil))

	l1 := green.NewList([]green.Node{a})
	assert.Equal(t, 1, l1.SlotCount())

	l2 := green.NewList([]green.Node{a, b})
	assert.Equal(t, 2, l2.SlotCount())

	l3 := green.NewList([]green.Node{a, b, c})
	assert.Equal(t, 3, l3.SlotCount())

	l4 := green.NewList([]green.Node{a, b, c, d})
	assert.Equal(t, 4, l4.SlotCount())
	assert.Equal(t, 4, l4.FullWidth())
}

func TestSeparatedList(t *testing.T) {
	a := green.MustNewNode(syntaxkind.KindIdentifierName, green.NewToken(syntaxkind.KindIdentifierToken, "a", nil, nil, nil))
	comma := green.NewToken(syntaxkind.KindCommaToken, ",", nil, nil, nil)
	b := green.MustNewNode(syntaxkind.KindIdentifierName, green.NewToken(syntaxkind.KindIdentifierToken, "b", nil, nil, nil))

	l := green.NewList([]green.Node{a, comma, b})
	assert.True(t, green.IsSeparatedList(l))
	assert.Equal(t, []green.Node{a, b}, green.SeparatedListElements(l))
	assert.Equal(t, []green.Node{comma}, green.SeparatedListSeparators(l))

	notSeparated := green.NewList([]green.Node{a, b})
	assert.False(t, green.IsSeparatedList(notSeparated))
}

func TestNewNodeValidatesShape(t *testing.T) {
	_, err := green.NewNode(syntaxkind.KindBreakStatement, plusToken(), plusToken())
	require.Error(t, err)

	n, err := green.NewNode(syntaxkind.KindBreakStatement, plusToken())
	require.NoError(t, err)
	assert.Equal(t, 1, n.SlotCount())
}

func TestOptionalSlotIsNilNotError(t *testing.T) {
	n, err := green.NewNode(syntaxkind.KindElseClause, plusToken(), nil)
	require.NoError(t, err)
	assert.Nil(t, n.Slot(1))
	assert.Equal(t, 2, n.FullWidth())
}

func TestWithDiagnosticsAndAnnotationsPreserveWidth(t *testing.T) {
	tok := plusToken()
	withDiag := tok.WithDiagnostics(nil)
	assert.Equal(t, tok.FullWidth(), withDiag.FullWidth())
}

func TestRoundTripSerialization(t *testing.T) {
	a := green.NewToken(syntaxkind.KindIdentifierToken, "a", nil, nil, nil)
	b := green.NewMissingToken(syntaxkind.KindEndKeyword)
	node := green.MustNewNode(syntaxkind.KindBreakStatement, a)
	list := green.NewList([]green.Node{node, b})

	var buf bytes.Buffer
	n, err := green.WriteTo(&buf, list)
	require.NoError(t, err)
	assert.Greater(t, n, int64(0))

	got, err := green.ReadFrom(&buf)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, list.SlotCount(), got.SlotCount())
	assert.Equal(t, list.FullWidth(), got.FullWidth())

	gotNode := got.Slot(0)
	assert.Equal(t, syntaxkind.KindBreakStatement, gotNode.Kind())
	gotMissing := got.Slot(1)
	assert.True(t, gotMissing.IsMissing())
}

func TestRoundTripNilNode(t *testing.T) {
	var buf bytes.Buffer
	_, err := green.WriteTo(&buf, nil)
	require.NoError(t, err)
	got, err := green.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestRoundTripAnnotationSurvivesSerialize is the S6 scenario: an
// annotation attached to a token equals itself after a serialize/
// deserialize round trip, because the wire format restores the
// original id via annotation.Restore rather than minting a new one.
func TestRoundTripAnnotationSurvivesSerialize(t *testing.T) {
	ann := annotation.New("kind", "data")
	tok := green.NewToken(syntaxkind.KindIdentifierToken, "x", nil, nil, nil)
	tok = tok.WithAnnotations([]*annotation.Annotation{ann}).(*green.Token)

	var buf bytes.Buffer
	_, err := green.WriteTo(&buf, tok)
	require.NoError(t, err)

	got, err := green.ReadFrom(&buf)
	require.NoError(t, err)
	require.Len(t, got.Annotations(), 1)
	assert.True(t, ann.Equal(got.Annotations()[0]))
	assert.Equal(t, ann.ID(), got.Annotations()[0].ID())
}

func TestRoundTripDiagnosticSurvivesSerialize(t *testing.T) {
	d := diagnostic.New(diagnostic.IDMalformedNumber, diagnostic.Error, "bad number", text.NewTextSpan(3, 2))
	tok := green.NewToken(syntaxkind.KindNumericLiteralToken, "1x", nil, nil, nil)
	tok = tok.WithDiagnostics([]diagnostic.Diagnostic{d}).(*green.Token)

	var buf bytes.Buffer
	_, err := green.WriteTo(&buf, tok)
	require.NoError(t, err)

	got, err := green.ReadFrom(&buf)
	require.NoError(t, err)
	require.Len(t, got.Diagnostics(), 1)
	assert.Equal(t, d, got.Diagnostics()[0])
}

func TestRoundTripTokenValue(t *testing.T) {
	tok := green.NewToken(syntaxkind.KindNumericLiteralToken, "42", int64(42), nil, nil)

	var buf bytes.Buffer
	_, err := green.WriteTo(&buf, tok)
	require.NoError(t, err)

	got, err := green.ReadFrom(&buf)
	require.NoError(t, err)
	gotTok, ok := got.(*green.Token)
	require.True(t, ok)
	assert.Equal(t, int64(42), gotTok.Value())
}
