package render_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loretta-lang/loretta/internal/render"
	"github.com/loretta-lang/loretta/pkg/dialect"
	"github.com/loretta-lang/loretta/pkg/parser"
	"github.com/loretta-lang/loretta/pkg/red"
	"github.com/loretta-lang/loretta/pkg/text"
)

func TestDumpTreeShowsKindsAndTokenText(t *testing.T) {
	p := parser.New(text.New("return 1"), dialect.Default())
	tree, err := p.Parse(context.Background())
	require.NoError(t, err)

	root := red.NewRoot(tree.Root)
	out := render.NewStyles(false).DumpTree(root)

	assert.Contains(t, out, "Chunk")
	assert.Contains(t, out, "ReturnStatement")
	assert.Contains(t, out, "NumericLiteralExpression")
	assert.Contains(t, out, `"1"`)
}

func TestDumpTreeMarksMissingTokens(t *testing.T) {
	p := parser.New(text.New("if a then return 1"), dialect.Default())
	tree, err := p.Parse(context.Background())
	require.NoError(t, err)

	root := red.NewRoot(tree.Root)
	out := render.NewStyles(false).DumpTree(root)
	assert.Contains(t, out, "<missing>")
}
