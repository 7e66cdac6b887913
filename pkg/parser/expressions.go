package parser

import (
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/green"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
)

// parseExpression implements the Pratt climb described in spec.md
// §4.G: read a primary, then while the current token's binary
// precedence is at least minPrec, consume the operator and recurse
// with its right binding power. Right-associative operators (`..`,
// `^`) recurse with precedence instead of precedence + 1, so a chain
// of them nests to the right instead of the left.
func (p *Parser) parseExpression(minPrec int) green.Node {
	left := p.parseUnaryExpression()
	for {
		kind := p.current().Kind()
		prec := syntaxkind.BinaryPrecedence(kind)
		if prec == 0 || prec < minPrec {
			break
		}
		op := p.gateOperator(p.advance())
		nextMinPrec := prec + 1
		if syntaxkind.IsRightAssociative(kind) {
			nextMinPrec = prec
		}
		right := p.parseExpression(nextMinPrec)
		left = green.MustNewNode(syntaxkind.KindBinaryExpression, left, op, right)
	}
	return left
}

func (p *Parser) parseUnaryExpression() green.Node {
	kind := p.current().Kind()
	if prec := syntaxkind.UnaryPrecedence(kind); prec > 0 {
		op := p.gateOperator(p.advance())
		operand := p.parseExpression(prec)
		return green.MustNewNode(syntaxkind.KindUnaryExpression, op, operand)
	}
	return p.parsePrimaryExpression()
}

// parsePrimaryExpression handles literals, parenthesized expressions,
// table constructors, and anonymous functions, then threads the result
// through parseCallAndIndexChain for any trailing `.`, `[`, `:`, or
// call suffix.
func (p *Parser) parsePrimaryExpression() green.Node {
	switch p.current().Kind() {
	case syntaxkind.KindNilKeyword:
		return green.MustNewNode(syntaxkind.KindNilLiteralExpression, p.advance())
	case syntaxkind.KindTrueKeyword:
		return green.MustNewNode(syntaxkind.KindTrueLiteralExpression, p.advance())
	case syntaxkind.KindFalseKeyword:
		return green.MustNewNode(syntaxkind.KindFalseLiteralExpression, p.advance())
	case syntaxkind.KindNumericLiteralToken:
		num := p.gateNumber(p.advance())
		return green.MustNewNode(syntaxkind.KindNumericLiteralExpression, num)
	case syntaxkind.KindStringLiteralToken:
		return green.MustNewNode(syntaxkind.KindStringLiteralExpression, p.advance())
	case syntaxkind.KindDotDotDotToken:
		return green.MustNewNode(syntaxkind.KindVarArgExpression, p.advance())
	case syntaxkind.KindFunctionKeyword:
		functionKw := p.advance()
		body := p.parseFunctionBody(false)
		return green.MustNewNode(syntaxkind.KindAnonymousFunctionExpression, functionKw, body)
	case syntaxkind.KindOpenBraceToken:
		return p.parseCallAndIndexChain(p.parseTableConstructor())
	case syntaxkind.KindOpenParenToken, syntaxkind.KindIdentifierToken:
		return p.parsePrefixExpression()
	default:
		bad := p.withDiagnostic(p.current(), diagnostic.IDExpectedExpression, diagnostic.Error,
			"expected an expression, found "+p.current().Kind().String())
		missing := green.NewMissingToken(syntaxkind.KindIdentifierToken)
		missing = missing.WithDiagnostics(bad.Diagnostics()).(*green.Token)
		return green.MustNewNode(syntaxkind.KindIdentifierName, missing)
	}
}

// gateNumber flags a hexadecimal-float literal (`0x1p4`) when the
// dialect does not enable them: the lexer accepts the lexeme
// unconditionally (spec.md §5), so the `p`/`P` binary-exponent marker
// is only checked here, after first confirming a `0x`/`0X` prefix.
func (p *Parser) gateNumber(tok *green.Token) *green.Token {
	if p.dialect.HexFloats {
		return tok
	}
	lexeme := tok.Text()
	if len(lexeme) < 2 || lexeme[0] != '0' || (lexeme[1] != 'x' && lexeme[1] != 'X') {
		return tok
	}
	for i := 2; i < len(lexeme); i++ {
		if lexeme[i] == 'p' || lexeme[i] == 'P' {
			return p.withDiagnostic(tok, diagnostic.IDFeatureNotInDialect, diagnostic.Warning,
				"hexadecimal float literals are not available in this dialect")
		}
	}
	return tok
}

// parsePrefixExpression reads an identifier or parenthesized
// expression and threads it through the call/index chain. This is the
// entry point assignment-statement detection also uses, since Lua
// assignment targets and call-statement callees share the same
// "prefixexp" grammar production.
func (p *Parser) parsePrefixExpression() green.Node {
	var base green.Node
	switch p.current().Kind() {
	case syntaxkind.KindOpenParenToken:
		open := p.advance()
		inner := p.parseExpression(0)
		closeTok := p.expect(syntaxkind.KindCloseParenToken)
		base = green.MustNewNode(syntaxkind.KindParenthesizedExpression, open, inner, closeTok)
	default:
		name := p.expect(syntaxkind.KindIdentifierToken)
		base = green.MustNewNode(syntaxkind.KindIdentifierName, name)
	}
	return p.parseCallAndIndexChain(base)
}

// parseCallAndIndexChain threads base through zero or more of: `.name`,
// `[expr]`, `:name(...)`, and the three call-argument forms (spec.md
// §4.G "call/index chains").
func (p *Parser) parseCallAndIndexChain(base green.Node) green.Node {
	for {
		switch p.current().Kind() {
		case syntaxkind.KindDotToken:
			dot := p.advance()
			name := p.expect(syntaxkind.KindIdentifierToken)
			base = green.MustNewNode(syntaxkind.KindMemberAccessExpression, base, dot, name)
		case syntaxkind.KindOpenBracketToken:
			open := p.advance()
			index := p.parseExpression(0)
			closeTok := p.expect(syntaxkind.KindCloseBracketToken)
			base = green.MustNewNode(syntaxkind.KindElementAccessExpression, base, open, index, closeTok)
		case syntaxkind.KindColonToken:
			colon := p.advance()
			method := p.expect(syntaxkind.KindIdentifierToken)
			args := p.parseCallArguments()
			base = green.MustNewNode(syntaxkind.KindMethodCallExpression, base, colon, method, args)
		case syntaxkind.KindOpenParenToken, syntaxkind.KindOpenBraceToken, syntaxkind.KindStringLiteralToken:
			base = p.parseDirectCall(base)
		default:
			return base
		}
	}
}

// parseDirectCall handles the three direct call-argument forms: normal
// parenthesized arguments, a single string literal, or a single table
// constructor (spec.md §4.G "Function-call arguments accept a string
// literal or a table constructor as a single argument").
func (p *Parser) parseDirectCall(callee green.Node) green.Node {
	switch p.current().Kind() {
	case syntaxkind.KindStringLiteralToken:
		str := green.MustNewNode(syntaxkind.KindStringLiteralExpression, p.advance())
		return green.MustNewNode(syntaxkind.KindStringCallExpression, callee, str)
	case syntaxkind.KindOpenBraceToken:
		table := p.parseTableConstructor()
		return green.MustNewNode(syntaxkind.KindTableCallExpression, callee, table)
	default:
		args := p.parseCallArguments()
		return green.MustNewNode(syntaxkind.KindFunctionCallExpression, callee, args)
	}
}

// parseCallArguments reads one of the three call-argument forms and
// returns the raw Node for it: a 3-slot (open, argList?, close) list
// for parenthesized arguments, a StringLiteralExpression, or a
// TableConstructorExpression. Used directly by method calls, which can
// take any of the three forms after `:name`.
func (p *Parser) parseCallArguments() green.Node {
	switch p.current().Kind() {
	case syntaxkind.KindStringLiteralToken:
		return green.MustNewNode(syntaxkind.KindStringLiteralExpression, p.advance())
	case syntaxkind.KindOpenBraceToken:
		return p.parseTableConstructor()
	default:
		open := p.expect(syntaxkind.KindOpenParenToken)
		var args green.Node
		if !p.at(syntaxkind.KindCloseParenToken) {
			args = p.parseExpressionList()
		}
		closeTok := p.expect(syntaxkind.KindCloseParenToken)
		return green.NewList([]green.Node{open, args, closeTok})
	}
}

// parseTableConstructor reads `{` fields `}`, where each field is
// `[expr] = expr`, `name = expr`, or a bare positional expr, separated
// by `,` or `;` with an optional trailing separator (spec.md §4.G).
func (p *Parser) parseTableConstructor() green.Node {
	open := p.advance()
	var fields []green.Node
	for !p.at(syntaxkind.KindCloseBraceToken) && !p.at(syntaxkind.KindEndOfFileToken) {
		fields = append(fields, p.parseTableField())
		if p.at(syntaxkind.KindCommaToken) || p.at(syntaxkind.KindSemicolonToken) {
			fields = append(fields, p.advance())
			continue
		}
		break
	}
	closeTok := p.expect(syntaxkind.KindCloseBraceToken)
	return green.MustNewNode(syntaxkind.KindTableConstructorExpression, open, green.NewList(fields), closeTok)
}

func (p *Parser) parseTableField() green.Node {
	switch {
	case p.at(syntaxkind.KindOpenBracketToken):
		open := p.advance()
		key := p.parseExpression(0)
		closeTok := p.expect(syntaxkind.KindCloseBracketToken)
		eq := p.expect(syntaxkind.KindEqualsToken)
		value := p.parseExpression(0)
		return green.MustNewNode(syntaxkind.KindKeyedTableField, open, key, closeTok, eq, value)
	case p.at(syntaxkind.KindIdentifierToken) && p.peek(1).Kind() == syntaxkind.KindEqualsToken:
		name := p.advance()
		eq := p.advance()
		value := p.parseExpression(0)
		return green.MustNewNode(syntaxkind.KindNamedTableField, name, eq, value)
	default:
		value := p.parseExpression(0)
		return green.MustNewNode(syntaxkind.KindUnkeyedTableField, value)
	}
}

// parseFunctionBody reads `(params) block end`. isMethod prepends an
// implicit `self` parameter the way Lua desugars `function t:m(...)`
// into `function t.m(self, ...)`.
func (p *Parser) parseFunctionBody(isMethod bool) green.Node {
	open := p.expect(syntaxkind.KindOpenParenToken)
	var params []green.Node
	if isMethod {
		self := green.NewToken(syntaxkind.KindIdentifierToken, "self", nil, nil, nil)
		params = append(params, green.MustNewNode(syntaxkind.KindParameter, self))
	}
	for !p.at(syntaxkind.KindCloseParenToken) && !p.at(syntaxkind.KindEndOfFileToken) {
		if len(params) > 0 {
			params = append(params, p.expect(syntaxkind.KindCommaToken))
		}
		if p.at(syntaxkind.KindDotDotDotToken) {
			params = append(params, green.MustNewNode(syntaxkind.KindVarArgParameter, p.advance()))
			break
		}
		name := p.expect(syntaxkind.KindIdentifierToken)
		params = append(params, green.MustNewNode(syntaxkind.KindParameter, name))
	}
	closeTok := p.expect(syntaxkind.KindCloseParenToken)
	paramList := green.MustNewNode(syntaxkind.KindParameterList, open, green.NewList(params), closeTok)
	block := p.parseBlock()
	endKw := p.expect(syntaxkind.KindEndKeyword)
	return green.MustNewNode(syntaxkind.KindFunctionBody, paramList, block, endKw)
}
