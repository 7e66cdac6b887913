package rewrite_test

import (
	"testing"

	"github.com/loretta-lang/loretta/pkg/green"
	"github.com/loretta-lang/loretta/pkg/rewrite"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/loretta-lang/loretta/pkg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyChangesSingleReplace(t *testing.T) {
	src := text.New("local x = 1")
	b := rewrite.NewChangeBuilder()
	b.Replace(text.NewTextSpan(6, 1), "y")

	out, err := rewrite.ApplyChanges(src, b.Changes)
	require.NoError(t, err)
	assert.Equal(t, "local y = 1", out.String())
}

func TestApplyChangesInsertAndDelete(t *testing.T) {
	src := text.New("local x = 1")
	b := rewrite.NewChangeBuilder()
	b.Insert(0, "--comment\n")
	b.Delete(text.NewTextSpan(8, 2)) // "= "

	out, err := rewrite.ApplyChanges(src, b.Changes)
	require.NoError(t, err)
	assert.Equal(t, "--comment\nlocal x 1", out.String())
}

func TestApplyChangesRejectsOverlap(t *testing.T) {
	src := text.New("abcdef")
	changes := []rewrite.TextChange{
		{Span: text.NewTextSpan(0, 3), NewText: "x"},
		{Span: text.NewTextSpan(2, 2), NewText: "y"},
	}
	_, err := rewrite.ApplyChanges(src, changes)
	require.Error(t, err)
	var conflict *rewrite.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestApplyChangesRejectsOutOfRange(t *testing.T) {
	src := text.New("abc")
	changes := []rewrite.TextChange{{Span: text.NewTextSpan(1, 10), NewText: "x"}}
	_, err := rewrite.ApplyChanges(src, changes)
	require.Error(t, err)
}

func ident(s string) *green.Token {
	return green.NewToken(syntaxkind.KindIdentifierToken, s, nil, nil, nil)
}

func TestListAddInsertRemoveReplace(t *testing.T) {
	a, b, c := ident("a"), ident("b"), ident("c")
	list := green.NewList([]green.Node{a, b})

	added := rewrite.Add(list, c)
	assert.Equal(t, 3, added.SlotCount())

	inserted := rewrite.Insert(list, 1, c)
	require.Equal(t, 3, inserted.SlotCount())
	assert.Same(t, c, inserted.Slot(1).(*green.Token))

	removed := rewrite.RemoveAt(list, 0)
	require.Equal(t, 1, removed.SlotCount())
	assert.Same(t, b, removed.Slot(0).(*green.Token))

	replaced := rewrite.Replace(list, 0, c)
	require.Equal(t, 2, replaced.SlotCount())
	assert.Same(t, c, replaced.Slot(0).(*green.Token))
}

func TestListRemoveNotFoundIsNoop(t *testing.T) {
	a, b := ident("a"), ident("b")
	list := green.NewList([]green.Node{a, b})
	other := ident("z")
	assert.Equal(t, list, rewrite.Remove(list, other))
}
