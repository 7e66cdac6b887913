// Package parser turns a lexer's token stream into a green syntax tree
// (spec.md §4.G). It is a hybrid recursive-descent and Pratt parser:
// statements are dispatched recursive-descent style on the current
// token's kind, expressions climb the binary-operator precedence table
// from pkg/syntaxkind. Diagnostics are never collected in a side list;
// they are attached directly to the missing, skipped, or offending
// green node they describe, exactly where spec.md §3/§7 says they
// belong, and resolved to absolute spans only once a caller builds a
// red tree over the result.
package parser

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/loretta-lang/loretta/internal/logging"
	"github.com/loretta-lang/loretta/pkg/dialect"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/green"
	"github.com/loretta-lang/loretta/pkg/lexer"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/loretta-lang/loretta/pkg/text"
)

// Tree is the result of a parse: a green root node plus every
// diagnostic of the parse. The lexer's diagnostics come first, with
// absolute source spans; they are not attached to any green node. The
// diagnostics attached to nodes of the tree follow, collected for
// convenience with node-relative (not yet red-tree-resolved) spans.
type Tree struct {
	Root        green.Node
	Diagnostics []diagnostic.Diagnostic
}

// Parser consumes a token stream produced by pkg/lexer and builds a
// green tree under the dialect it was constructed with.
type Parser struct {
	lex      *lexer.Lexer
	dialect  dialect.Options
	tokens   []*green.Token
	pending  []*green.Trivia // skipped-token trivia awaiting the next real token
	consumed int
	ctx      context.Context
	logger   *log.Logger
}

// New constructs a Parser over src under the given dialect options.
func New(src *text.SourceText, opts dialect.Options) *Parser {
	return &Parser{lex: lexer.New(src, opts), dialect: opts, logger: logging.Default()}
}

// Parse drives parse_compilation_unit to produce a Chunk. It checks ctx
// for cancellation before starting and between top-level statements, so
// a caller parsing on a worker goroutine can bail out of a pathological
// input without waiting for the whole file. The logger attached to ctx
// (via logging.WithLogger), if any, is threaded down into the lexer too.
func (p *Parser) Parse(ctx context.Context) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	p.ctx = ctx
	p.logger = logging.FromContext(ctx)
	p.lex.SetLogger(p.logger)

	chunk := p.parseChunk()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	diags := append([]diagnostic.Diagnostic(nil), p.lex.Diagnostics()...)
	diags = append(diags, collectDiagnostics(chunk)...)
	return &Tree{Root: chunk, Diagnostics: diags}, nil
}

// collectDiagnostics walks a green (sub)tree, gathering every
// diagnostic attached to a node or to one of a token's trivia pieces.
func collectDiagnostics(n green.Node) []diagnostic.Diagnostic {
	if n == nil {
		return nil
	}
	out := append([]diagnostic.Diagnostic(nil), n.Diagnostics()...)
	if tok, ok := n.(*green.Token); ok {
		out = append(out, triviaDiagnostics(tok.LeadingTrivia())...)
		out = append(out, triviaDiagnostics(tok.TrailingTrivia())...)
		return out
	}
	for i := 0; i < n.SlotCount(); i++ {
		out = append(out, collectDiagnostics(n.Slot(i))...)
	}
	return out
}

func triviaDiagnostics(l *green.TriviaList) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for i := 0; i < l.Count(); i++ {
		out = append(out, l.Get(i).Diagnostics()...)
	}
	return out
}

// --- token buffer ---

func (p *Parser) fill(n int) {
	for len(p.tokens) <= n {
		p.tokens = append(p.tokens, p.lex.NextToken())
	}
}

func (p *Parser) peek(n int) *green.Token {
	p.fill(n)
	return p.tokens[n]
}

func (p *Parser) current() *green.Token { return p.peek(0) }

// advance consumes and returns the current token. If skip-recovery has
// queued skipped-token trivia, it is spliced onto the token's leading
// trivia so the tree still accounts for every source byte.
func (p *Parser) advance() *green.Token {
	t := p.current()
	p.tokens = p.tokens[1:]
	p.consumed++
	if len(p.pending) > 0 {
		merged := append(append([]*green.Trivia(nil), p.pending...), triviaSlice(t.LeadingTrivia())...)
		t = t.WithLeadingTrivia(green.NewTriviaList(merged))
		p.pending = nil
	}
	return t
}

func triviaSlice(l *green.TriviaList) []*green.Trivia {
	out := make([]*green.Trivia, l.Count())
	for i := range out {
		out[i] = l.Get(i)
	}
	return out
}

func (p *Parser) at(kind syntaxkind.SyntaxKind) bool { return p.current().Kind() == kind }

// withDiagnostic attaches a single diagnostic to tok, relative to
// tok's own start, logs it as a recovered diagnostic, and returns the
// updated token.
func (p *Parser) withDiagnostic(tok *green.Token, id string, severity diagnostic.Severity, message string) *green.Token {
	d := diagnostic.New(id, severity, message, text.NewTextSpan(0, tok.Width()))
	p.logger.Warn(message, logging.FieldDiagnosticID, id, logging.FieldSeverity, severity.String(), logging.FieldKind, tok.Kind().String())
	return tok.WithDiagnostics(append(append([]diagnostic.Diagnostic(nil), tok.Diagnostics()...), d)).(*green.Token)
}

// expect consumes the current token if it matches kind, otherwise
// synthesizes a missing token carrying a diagnostic and leaves the
// unexpected token in the stream for whatever recovery runs next
// (spec.md §4.G "Error recovery").
func (p *Parser) expect(kind syntaxkind.SyntaxKind) *green.Token {
	if p.at(kind) {
		return p.advance()
	}
	message := fmt.Sprintf("expected %s, found %s", kind, p.current().Kind())
	missing := green.NewMissingToken(kind)
	return p.withDiagnostic(missing, diagnostic.IDExpectedToken, diagnostic.Error, message)
}

func (p *Parser) optional(kind syntaxkind.SyntaxKind) *green.Token {
	if p.at(kind) {
		return p.advance()
	}
	return nil
}

// gateOperator reports a diagnostic when tok's kind is an operator the
// grammar happily parses but that is not actually enabled for the
// parser's dialect (spec.md §5: the lexer only gates keywords, so
// bitwise/floor-division punctuation needs this check at the point of
// use instead).
func (p *Parser) gateOperator(tok *green.Token) *green.Token {
	var required bool
	switch tok.Kind() {
	case syntaxkind.KindSlashSlashToken:
		required = p.dialect.FloorDivision
	case syntaxkind.KindAmpersandToken, syntaxkind.KindPipeToken,
		syntaxkind.KindLessLessToken, syntaxkind.KindGreaterGreaterToken, syntaxkind.KindTildeToken:
		required = p.dialect.BitwiseOperators
	default:
		return tok
	}
	if required {
		return tok
	}
	return p.withDiagnostic(tok, diagnostic.IDFeatureNotInDialect, diagnostic.Warning,
		fmt.Sprintf("%s is not available in this dialect", tok.Kind()))
}

func isBlockTerminator(k syntaxkind.SyntaxKind) bool {
	switch k {
	case syntaxkind.KindEndKeyword, syntaxkind.KindElseKeyword, syntaxkind.KindElseIfKeyword,
		syntaxkind.KindUntilKeyword, syntaxkind.KindEndOfFileToken:
		return true
	default:
		return false
	}
}

func isStatementStarter(k syntaxkind.SyntaxKind) bool {
	switch k {
	case syntaxkind.KindIfKeyword, syntaxkind.KindWhileKeyword, syntaxkind.KindDoKeyword,
		syntaxkind.KindForKeyword, syntaxkind.KindRepeatKeyword, syntaxkind.KindFunctionKeyword,
		syntaxkind.KindLocalKeyword, syntaxkind.KindReturnKeyword, syntaxkind.KindBreakKeyword,
		syntaxkind.KindContinueKeyword, syntaxkind.KindGotoKeyword, syntaxkind.KindDoubleColonToken,
		syntaxkind.KindSemicolonToken, syntaxkind.KindIdentifierToken, syntaxkind.KindOpenParenToken:
		return true
	default:
		return false
	}
}

// --- compilation unit / statement list ---

func (p *Parser) parseChunk() green.Node {
	statements := p.parseStatementList()
	eof := p.expect(syntaxkind.KindEndOfFileToken)
	return green.MustNewNode(syntaxkind.KindChunk, statements, eof)
}

func taggedList(kind syntaxkind.SyntaxKind, children []green.Node) green.Node {
	return green.MustNewNode(kind, green.NewList(children))
}

// parseStatementList reads statements until a block terminator or a
// cancelled context. A statement that consumes nothing is recovered by
// skipping tokens, turned into skipped-token trivia carrying a
// diagnostic, until a statement-starter or block-terminator is found
// (spec.md §4.G "Error recovery").
func (p *Parser) parseStatementList() green.Node {
	var stmts []green.Node
	for !isBlockTerminator(p.current().Kind()) {
		if err := p.ctx.Err(); err != nil {
			break
		}
		before := p.consumed
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.consumed == before {
			p.skipToStatementBoundary()
		}
	}
	return taggedList(syntaxkind.KindStatementList, stmts)
}

// skipToStatementBoundary consumes the current token as skipped-token
// trivia (with a diagnostic) and keeps going until a statement-starter
// or block-terminator is reached, guaranteeing parseStatementList makes
// progress.
func (p *Parser) skipToStatementBoundary() {
	for {
		bad := p.current()
		message := fmt.Sprintf("unexpected token %s", bad.Kind())
		p.logger.Warn(message, logging.FieldDiagnosticID, diagnostic.IDUnexpectedToken, logging.FieldTokenText, bad.Text())
		skipped := green.NewTrivia(syntaxkind.KindSkippedTokenTrivia, bad.Text())
		skipped = skipped.WithDiagnostics([]diagnostic.Diagnostic{
			diagnostic.New(diagnostic.IDUnexpectedToken, diagnostic.Error, message, text.NewTextSpan(0, bad.Width())),
		}).(*green.Trivia)
		p.pending = append(p.pending, skipped)
		p.advance()
		if isStatementStarter(p.current().Kind()) || isBlockTerminator(p.current().Kind()) {
			return
		}
	}
}

func (p *Parser) parseStatement() green.Node {
	switch p.current().Kind() {
	case syntaxkind.KindSemicolonToken:
		return green.MustNewNode(syntaxkind.KindEmptyStatement, p.advance())
	case syntaxkind.KindIfKeyword:
		return p.parseIfStatement()
	case syntaxkind.KindWhileKeyword:
		return p.parseWhileStatement()
	case syntaxkind.KindDoKeyword:
		return p.parseDoStatement()
	case syntaxkind.KindForKeyword:
		return p.parseForStatement()
	case syntaxkind.KindRepeatKeyword:
		return p.parseRepeatStatement()
	case syntaxkind.KindFunctionKeyword:
		return p.parseFunctionDeclarationStatement()
	case syntaxkind.KindLocalKeyword:
		return p.parseLocalStatement()
	case syntaxkind.KindReturnKeyword:
		return p.parseReturnStatement()
	case syntaxkind.KindBreakKeyword:
		return green.MustNewNode(syntaxkind.KindBreakStatement, p.advance())
	case syntaxkind.KindContinueKeyword:
		return green.MustNewNode(syntaxkind.KindContinueStatement, p.advance())
	case syntaxkind.KindGotoKeyword:
		goKw := p.advance()
		name := p.expect(syntaxkind.KindIdentifierToken)
		return green.MustNewNode(syntaxkind.KindGotoStatement, goKw, name)
	case syntaxkind.KindDoubleColonToken:
		return p.parseGotoLabelStatement()
	default:
		return p.parseExpressionOrAssignmentStatement()
	}
}

func (p *Parser) parseGotoLabelStatement() green.Node {
	open := p.advance()
	if !p.dialect.GotoAndLabels {
		open = p.withDiagnostic(open, diagnostic.IDFeatureNotInDialect, diagnostic.Warning,
			"goto labels are not available in this dialect")
	}
	name := p.expect(syntaxkind.KindIdentifierToken)
	closeTok := p.expect(syntaxkind.KindDoubleColonToken)
	return green.MustNewNode(syntaxkind.KindGotoLabelStatement, open, name, closeTok)
}

func (p *Parser) parseBlock() green.Node { return p.parseStatementList() }

func (p *Parser) parseDoStatement() green.Node {
	doKw := p.advance()
	block := p.parseBlock()
	endKw := p.expect(syntaxkind.KindEndKeyword)
	return green.MustNewNode(syntaxkind.KindDoStatement, doKw, block, endKw)
}

func (p *Parser) parseWhileStatement() green.Node {
	whileKw := p.advance()
	cond := p.parseExpression(0)
	doKw := p.expect(syntaxkind.KindDoKeyword)
	block := p.parseBlock()
	endKw := p.expect(syntaxkind.KindEndKeyword)
	return green.MustNewNode(syntaxkind.KindWhileStatement, whileKw, cond, doKw, block, endKw)
}

func (p *Parser) parseRepeatStatement() green.Node {
	repeatKw := p.advance()
	block := p.parseBlock()
	untilKw := p.expect(syntaxkind.KindUntilKeyword)
	cond := p.parseExpression(0)
	return green.MustNewNode(syntaxkind.KindRepeatUntilStatement, repeatKw, block, untilKw, cond)
}

// parseThenClause bundles a `then` keyword with the block that follows
// it into a single slot, the same way parseDoClause bundles `do` with
// its block, so IfStatement/ElseIfClause/NumericForStatement/
// GenericForStatement each keep a flat, fixed-size shape regardless of
// which keyword introduces their trailing block.
func (p *Parser) parseThenClause() green.Node {
	thenKw := p.expect(syntaxkind.KindThenKeyword)
	block := p.parseBlock()
	return green.NewList([]green.Node{thenKw, block})
}

func (p *Parser) parseDoClause() green.Node {
	doKw := p.expect(syntaxkind.KindDoKeyword)
	block := p.parseBlock()
	return green.NewList([]green.Node{doKw, block})
}

func (p *Parser) parseIfStatement() green.Node {
	ifKw := p.advance()
	cond := p.parseExpression(0)
	thenClause := p.parseThenClause()

	var tail []green.Node
	for p.at(syntaxkind.KindElseIfKeyword) {
		elseifKw := p.advance()
		elseifCond := p.parseExpression(0)
		elseifThen := p.parseThenClause()
		tail = append(tail, green.MustNewNode(syntaxkind.KindElseIfClause, elseifKw, elseifCond, elseifThen))
	}
	if p.at(syntaxkind.KindElseKeyword) {
		elseKw := p.advance()
		elseBlock := p.parseBlock()
		tail = append(tail, green.MustNewNode(syntaxkind.KindElseClause, elseKw, elseBlock))
	}
	endKw := p.expect(syntaxkind.KindEndKeyword)
	return green.MustNewNode(syntaxkind.KindIfStatement, ifKw, cond, thenClause, green.NewList(tail), endKw)
}

func (p *Parser) parseForStatement() green.Node {
	forKw := p.advance()
	firstName := p.expect(syntaxkind.KindIdentifierToken)
	if p.at(syntaxkind.KindEqualsToken) {
		return p.parseNumericForStatement(forKw, firstName)
	}
	return p.parseGenericForStatement(forKw, firstName)
}

func (p *Parser) parseNumericForStatement(forKw, name *green.Token) green.Node {
	eqKw := p.expect(syntaxkind.KindEqualsToken)
	start := p.parseExpression(0)
	comma := p.expect(syntaxkind.KindCommaToken)
	stop := p.parseExpression(0)

	var step green.Node
	if p.at(syntaxkind.KindCommaToken) {
		comma2 := p.advance()
		stepExpr := p.parseExpression(0)
		step = green.NewList([]green.Node{comma2, stepExpr})
	}
	doBlock := p.parseDoClause()
	endKw := p.expect(syntaxkind.KindEndKeyword)
	return green.MustNewNode(syntaxkind.KindNumericForStatement,
		forKw, name, eqKw, start, comma, stop, step, doBlock, endKw)
}

func (p *Parser) parseGenericForStatement(forKw, firstName *green.Token) green.Node {
	names := []green.Node{firstName}
	for p.at(syntaxkind.KindCommaToken) {
		names = append(names, p.advance())
		names = append(names, p.expect(syntaxkind.KindIdentifierToken))
	}
	nameList := taggedList(syntaxkind.KindVariableList, names)
	inKw := p.expect(syntaxkind.KindInKeyword)
	exprs := p.parseExpressionList()
	doBlock := p.parseDoClause()
	endKw := p.expect(syntaxkind.KindEndKeyword)
	return green.MustNewNode(syntaxkind.KindGenericForStatement, forKw, nameList, inKw, exprs, doBlock, endKw)
}

func (p *Parser) parseReturnStatement() green.Node {
	returnKw := p.advance()
	var exprs green.Node
	if !isBlockTerminator(p.current().Kind()) && !p.at(syntaxkind.KindSemicolonToken) {
		exprs = p.parseExpressionList()
	}
	semi := p.optional(syntaxkind.KindSemicolonToken)
	return green.MustNewNode(syntaxkind.KindReturnStatement, returnKw, exprs, semi)
}

func (p *Parser) parseFunctionDeclarationStatement() green.Node {
	functionKw := p.advance()
	name, isMethod := p.parseFunctionName()
	body := p.parseFunctionBody(isMethod)
	return green.MustNewNode(syntaxkind.KindFunctionDeclarationStatement, functionKw, name, body)
}

// parseFunctionName reads a dotted/colon path (`a.b.c:d`), building a
// MemberAccessExpression chain. A trailing `:` segment reuses the same
// node shape with a colon in the operator slot rather than a dedicated
// kind, mirroring how the Lua reference grammar treats method-name
// sugar as just another field access (spec.md §4.G, §5).
func (p *Parser) parseFunctionName() (green.Node, bool) {
	first := p.expect(syntaxkind.KindIdentifierToken)
	var chain green.Node = green.MustNewNode(syntaxkind.KindIdentifierName, first)
	isMethod := false
	for p.at(syntaxkind.KindDotToken) || p.at(syntaxkind.KindColonToken) {
		op := p.advance()
		seg := p.expect(syntaxkind.KindIdentifierToken)
		chain = green.MustNewNode(syntaxkind.KindMemberAccessExpression, chain, op, seg)
		if op.Kind() == syntaxkind.KindColonToken {
			isMethod = true
			break
		}
	}
	return green.MustNewNode(syntaxkind.KindFunctionName, chain), isMethod
}

func (p *Parser) parseLocalStatement() green.Node {
	localKw := p.advance()
	if p.at(syntaxkind.KindFunctionKeyword) {
		functionKw := p.advance()
		name := p.expect(syntaxkind.KindIdentifierToken)
		body := p.parseFunctionBody(false)
		return green.MustNewNode(syntaxkind.KindLocalFunctionDeclarationStatement, localKw, functionKw, name, body)
	}

	vars := []green.Node{p.parseLocalVariable()}
	for p.at(syntaxkind.KindCommaToken) {
		vars = append(vars, p.advance())
		vars = append(vars, p.parseLocalVariable())
	}
	varList := taggedList(syntaxkind.KindLocalVariableList, vars)

	var eq, exprs green.Node
	if p.at(syntaxkind.KindEqualsToken) {
		eq = p.advance()
		exprs = p.parseExpressionList()
	}
	return green.MustNewNode(syntaxkind.KindLocalVariableDeclarationStatement, localKw, varList, eq, exprs)
}

func (p *Parser) parseLocalVariable() green.Node {
	name := p.expect(syntaxkind.KindIdentifierToken)
	var attr green.Node
	if p.at(syntaxkind.KindLessToken) &&
		p.peek(1).Kind() == syntaxkind.KindIdentifierToken && p.peek(2).Kind() == syntaxkind.KindGreaterToken {
		lt := p.advance()
		if !p.dialect.Attributes {
			lt = p.withDiagnostic(lt, diagnostic.IDFeatureNotInDialect, diagnostic.Warning,
				"variable attributes are not available in this dialect")
		}
		attrName := p.advance()
		gt := p.advance()
		attr = green.MustNewNode(syntaxkind.KindAttribute, lt, attrName, gt)
	}
	return green.MustNewNode(syntaxkind.KindLocalVariable, name, attr)
}

// parseExpressionOrAssignmentStatement disambiguates a statement that
// starts with a prefix expression: if it is followed by `=` or `,` it
// is an assignment target list, otherwise the prefix expression must
// already be a call and stands alone as an expression statement
// (spec.md §4.G).
func (p *Parser) parseExpressionOrAssignmentStatement() green.Node {
	first := p.parsePrefixExpression()
	if p.at(syntaxkind.KindEqualsToken) || p.at(syntaxkind.KindCommaToken) {
		targets := []green.Node{first}
		for p.at(syntaxkind.KindCommaToken) {
			targets = append(targets, p.advance())
			targets = append(targets, p.parsePrefixExpression())
		}
		targetList := taggedList(syntaxkind.KindVariableList, targets)
		eq := p.expect(syntaxkind.KindEqualsToken)
		exprs := p.parseExpressionList()
		return green.MustNewNode(syntaxkind.KindAssignmentStatement, targetList, eq, exprs)
	}
	if !isCallExpression(first) {
		first = p.attachNodeDiagnostic(first, diagnostic.IDExpectedStatement,
			"expression used as a statement must be a function or method call")
	}
	return green.MustNewNode(syntaxkind.KindExpressionStatement, first)
}

// attachNodeDiagnostic attaches a diagnostic to any green.Node (not
// just a Token), used where the offending construct is itself a
// multi-slot expression rather than a single token.
func (p *Parser) attachNodeDiagnostic(n green.Node, id string, message string) green.Node {
	d := diagnostic.New(id, diagnostic.Error, message, text.NewTextSpan(0, n.Width()))
	p.logger.Warn(message, logging.FieldDiagnosticID, id, logging.FieldKind, n.Kind().String())
	return n.WithDiagnostics(append(append([]diagnostic.Diagnostic(nil), n.Diagnostics()...), d))
}

func isCallExpression(n green.Node) bool {
	switch n.Kind() {
	case syntaxkind.KindFunctionCallExpression, syntaxkind.KindMethodCallExpression,
		syntaxkind.KindStringCallExpression, syntaxkind.KindTableCallExpression:
		return true
	default:
		return false
	}
}

func (p *Parser) parseExpressionList() green.Node {
	items := []green.Node{p.parseExpression(0)}
	for p.at(syntaxkind.KindCommaToken) {
		items = append(items, p.advance())
		items = append(items, p.parseExpression(0))
	}
	return taggedList(syntaxkind.KindExpressionList, items)
}
