package parser_test

import (
	"context"
	"testing"

	"github.com/loretta-lang/loretta/pkg/dialect"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/green"
	"github.com/loretta-lang/loretta/pkg/parser"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/loretta-lang/loretta/pkg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string, opts dialect.Options) *parser.Tree {
	t.Helper()
	p := parser.New(text.New(src), opts)
	tree, err := p.Parse(context.Background())
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

// chunkStatements returns the statement nodes under a parsed Chunk,
// unwrapping the StatementList tagged-list wrapper.
func chunkStatements(t *testing.T, chunk green.Node) []green.Node {
	t.Helper()
	require.Equal(t, syntaxkind.KindChunk, chunk.Kind())
	list := chunk.Slot(0)
	require.Equal(t, syntaxkind.KindStatementList, list.Kind())
	inner := list.Slot(0)
	var out []green.Node
	for i := 0; i < inner.SlotCount(); i++ {
		if s := inner.Slot(i); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func singleStatement(t *testing.T, src string, opts dialect.Options) green.Node {
	t.Helper()
	tree := parse(t, src, opts)
	stmts := chunkStatements(t, tree.Root)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func TestParsePrecedenceMultiplicativeBindsTighter(t *testing.T) {
	stmt := singleStatement(t, "return 1 + 2 * 3", dialect.Default())
	require.Equal(t, syntaxkind.KindReturnStatement, stmt.Kind())
	exprList := stmt.Slot(1)
	require.Equal(t, syntaxkind.KindExpressionList, exprList.Kind())
	expr := exprList.Slot(0).Slot(0)

	require.Equal(t, syntaxkind.KindBinaryExpression, expr.Kind())
	assert.Equal(t, syntaxkind.KindPlusToken, expr.Slot(1).Kind())
	assert.Equal(t, syntaxkind.KindNumericLiteralExpression, expr.Slot(0).Kind())

	right := expr.Slot(2)
	require.Equal(t, syntaxkind.KindBinaryExpression, right.Kind())
	assert.Equal(t, syntaxkind.KindStarToken, right.Slot(1).Kind())
}

func TestParsePrecedenceRightAssociativePower(t *testing.T) {
	stmt := singleStatement(t, "return 2 ^ 3 ^ 2", dialect.Default())
	exprList := stmt.Slot(1)
	expr := exprList.Slot(0).Slot(0)

	require.Equal(t, syntaxkind.KindBinaryExpression, expr.Kind())
	assert.Equal(t, syntaxkind.KindCaretToken, expr.Slot(1).Kind())
	assert.Equal(t, syntaxkind.KindNumericLiteralExpression, expr.Slot(0).Kind())

	right := expr.Slot(2)
	require.Equal(t, syntaxkind.KindBinaryExpression, right.Kind())
	assert.Equal(t, syntaxkind.KindCaretToken, right.Slot(1).Kind())
}

func TestParseIfElseIfElse(t *testing.T) {
	stmt := singleStatement(t, `
if a then
  return 1
elseif b then
  return 2
else
  return 3
end`, dialect.Default())
	require.Equal(t, syntaxkind.KindIfStatement, stmt.Kind())
	tail := stmt.Slot(3)
	require.Equal(t, 2, tail.SlotCount())
	assert.Equal(t, syntaxkind.KindElseIfClause, tail.Slot(0).Kind())
	assert.Equal(t, syntaxkind.KindElseClause, tail.Slot(1).Kind())
}

func TestParseWhileStatement(t *testing.T) {
	stmt := singleStatement(t, "while true do break end", dialect.Default())
	require.Equal(t, syntaxkind.KindWhileStatement, stmt.Kind())
	assert.Equal(t, syntaxkind.KindTrueLiteralExpression, stmt.Slot(1).Kind())
}

func TestParseRepeatStatement(t *testing.T) {
	stmt := singleStatement(t, "repeat x = x + 1 until x > 10", dialect.Default())
	require.Equal(t, syntaxkind.KindRepeatUntilStatement, stmt.Kind())
}

func TestParseNumericForStatement(t *testing.T) {
	stmt := singleStatement(t, "for i = 1, 10, 2 do end", dialect.Default())
	require.Equal(t, syntaxkind.KindNumericForStatement, stmt.Kind())
	assert.NotNil(t, stmt.Slot(6)) // step clause present
}

func TestParseNumericForStatementNoStep(t *testing.T) {
	stmt := singleStatement(t, "for i = 1, 10 do end", dialect.Default())
	require.Equal(t, syntaxkind.KindNumericForStatement, stmt.Kind())
	assert.Nil(t, stmt.Slot(6))
}

func TestParseGenericForStatement(t *testing.T) {
	stmt := singleStatement(t, "for k, v in pairs(t) do end", dialect.Default())
	require.Equal(t, syntaxkind.KindGenericForStatement, stmt.Kind())
	names := stmt.Slot(1)
	require.Equal(t, syntaxkind.KindVariableList, names.Kind())
}

func TestParseDoStatement(t *testing.T) {
	stmt := singleStatement(t, "do local x = 1 end", dialect.Default())
	require.Equal(t, syntaxkind.KindDoStatement, stmt.Kind())
}

func TestParseLocalVariableDeclaration(t *testing.T) {
	stmt := singleStatement(t, "local a, b = 1, 2", dialect.Default())
	require.Equal(t, syntaxkind.KindLocalVariableDeclarationStatement, stmt.Kind())
	names := stmt.Slot(1)
	require.Equal(t, syntaxkind.KindLocalVariableList, names.Kind())
	assert.Equal(t, 3, names.Slot(0).SlotCount()) // a, comma, b
}

func TestParseLocalFunctionDeclaration(t *testing.T) {
	stmt := singleStatement(t, "local function f(a, b) return a end", dialect.Default())
	require.Equal(t, syntaxkind.KindLocalFunctionDeclarationStatement, stmt.Kind())
}

func TestParseFunctionDeclarationWithMethodSugar(t *testing.T) {
	stmt := singleStatement(t, "function t:m(a) return a end", dialect.Default())
	require.Equal(t, syntaxkind.KindFunctionDeclarationStatement, stmt.Kind())
	name := stmt.Slot(1)
	require.Equal(t, syntaxkind.KindFunctionName, name.Kind())
	chain := name.Slot(0)
	require.Equal(t, syntaxkind.KindMemberAccessExpression, chain.Kind())
	assert.Equal(t, syntaxkind.KindColonToken, chain.Slot(1).Kind())

	body := stmt.Slot(2)
	params := body.Slot(0).Slot(1)
	require.Equal(t, 3, params.SlotCount()) // self, comma, a
	self := params.Slot(0)
	assert.Equal(t, "self", self.Slot(0).(*green.Token).Text())
}

func TestParseAssignmentStatement(t *testing.T) {
	stmt := singleStatement(t, "x, y = y, x", dialect.Default())
	require.Equal(t, syntaxkind.KindAssignmentStatement, stmt.Kind())
}

func TestParseExpressionStatementMustBeCall(t *testing.T) {
	stmt := singleStatement(t, "f(1, 2)", dialect.Default())
	require.Equal(t, syntaxkind.KindExpressionStatement, stmt.Kind())
	call := stmt.Slot(0)
	assert.Equal(t, syntaxkind.KindFunctionCallExpression, call.Kind())
	assert.Empty(t, call.Diagnostics())
}

func TestParseExpressionStatementRejectsNonCall(t *testing.T) {
	stmt := singleStatement(t, "1 + 1", dialect.Default())
	require.Equal(t, syntaxkind.KindExpressionStatement, stmt.Kind())
	inner := stmt.Slot(0)
	require.NotEmpty(t, inner.Diagnostics())
	assert.Equal(t, diagnostic.IDExpectedStatement, inner.Diagnostics()[0].ID)
}

func TestParseReturnStatementNoValues(t *testing.T) {
	stmt := singleStatement(t, "return", dialect.Default())
	require.Equal(t, syntaxkind.KindReturnStatement, stmt.Kind())
	assert.Nil(t, stmt.Slot(1))
}

func TestParseGotoAndLabel(t *testing.T) {
	tree := parse(t, "::top:: goto top", dialect.ForVersion(dialect.Lua54))
	stmts := chunkStatements(t, tree.Root)
	require.Len(t, stmts, 2)
	assert.Equal(t, syntaxkind.KindGotoLabelStatement, stmts[0].Kind())
	assert.Equal(t, syntaxkind.KindGotoStatement, stmts[1].Kind())
}

func TestParseTableConstructorAllFieldForms(t *testing.T) {
	stmt := singleStatement(t, `local t = { 1, name = "x", [k] = v, }`, dialect.Default())
	decl := stmt
	exprs := decl.Slot(3)
	table := exprs.Slot(0).Slot(0)
	require.Equal(t, syntaxkind.KindTableConstructorExpression, table.Kind())

	fields := table.Slot(1)
	assert.Equal(t, syntaxkind.KindUnkeyedTableField, fields.Slot(0).Kind())
	assert.Equal(t, syntaxkind.KindNamedTableField, fields.Slot(2).Kind())
	assert.Equal(t, syntaxkind.KindKeyedTableField, fields.Slot(4).Kind())
}

func TestParseCallFormsAndChaining(t *testing.T) {
	stmt := singleStatement(t, `a.b:c("s"){t}(1).d[2]()`, dialect.Default())
	require.Equal(t, syntaxkind.KindExpressionStatement, stmt.Kind())
	// outermost is the trailing `()` call
	assert.Equal(t, syntaxkind.KindFunctionCallExpression, stmt.Slot(0).Kind())
}

func TestParseMethodCallStringArgument(t *testing.T) {
	stmt := singleStatement(t, `obj:method "hello"`, dialect.Default())
	require.Equal(t, syntaxkind.KindExpressionStatement, stmt.Kind())
	call := stmt.Slot(0)
	require.Equal(t, syntaxkind.KindMethodCallExpression, call.Kind())
	assert.Equal(t, syntaxkind.KindStringLiteralExpression, call.Slot(3).Kind())
}

func TestParseAnonymousFunctionExpression(t *testing.T) {
	stmt := singleStatement(t, "local f = function(...) return ... end", dialect.Default())
	exprs := stmt.Slot(3)
	fn := exprs.Slot(0).Slot(0)
	require.Equal(t, syntaxkind.KindAnonymousFunctionExpression, fn.Kind())
}

func TestParseDialectGatesBitwiseOperators(t *testing.T) {
	opts := dialect.ForVersion(dialect.Lua51)
	stmt := singleStatement(t, "return a & b", opts)
	exprList := stmt.Slot(1)
	expr := exprList.Slot(0).Slot(0)
	op := expr.Slot(1)
	require.NotEmpty(t, op.Diagnostics())
	assert.Equal(t, diagnostic.IDFeatureNotInDialect, op.Diagnostics()[0].ID)
	assert.Equal(t, diagnostic.Warning, op.Diagnostics()[0].Severity)
}

func TestParseDialectGatesFloorDivision(t *testing.T) {
	opts := dialect.ForVersion(dialect.Lua51)
	stmt := singleStatement(t, "return a // b", opts)
	exprList := stmt.Slot(1)
	expr := exprList.Slot(0).Slot(0)
	op := expr.Slot(1)
	require.NotEmpty(t, op.Diagnostics())
	assert.Equal(t, diagnostic.IDFeatureNotInDialect, op.Diagnostics()[0].ID)
}

func TestParseDialectGatesAttributes(t *testing.T) {
	opts := dialect.ForVersion(dialect.Lua51)
	stmt := singleStatement(t, "local x <const> = 1", opts)
	names := stmt.Slot(1)
	localVar := names.Slot(0)
	attr := localVar.Slot(1)
	require.NotNil(t, attr)
	require.NotEmpty(t, attr.Diagnostics())
	assert.Equal(t, diagnostic.IDFeatureNotInDialect, attr.Diagnostics()[0].ID)
}

func TestParseDialectGatesGotoLabels(t *testing.T) {
	opts := dialect.ForVersion(dialect.Lua51)
	stmt := singleStatement(t, "::top::", opts)
	require.Equal(t, syntaxkind.KindGotoLabelStatement, stmt.Kind())
	open := stmt.Slot(0)
	require.NotEmpty(t, open.Diagnostics())
}

func TestParseMissingTokenRecoveryProducesDiagnostic(t *testing.T) {
	tree := parse(t, "if a then return 1", dialect.Default())
	require.NotEmpty(t, tree.Diagnostics)
	found := false
	for _, d := range tree.Diagnostics {
		if d.ID == diagnostic.IDExpectedToken {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseSkipRecoveryMakesProgress(t *testing.T) {
	tree := parse(t, "@@@ local x = 1", dialect.Default())
	stmts := chunkStatements(t, tree.Root)
	require.NotEmpty(t, stmts)
	last := stmts[len(stmts)-1]
	assert.Equal(t, syntaxkind.KindLocalVariableDeclarationStatement, last.Kind())
	require.NotEmpty(t, tree.Diagnostics)
}

func TestParseContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := parser.New(text.New("local x = 1"), dialect.Default())
	_, err := p.Parse(ctx)
	assert.Error(t, err)
}
