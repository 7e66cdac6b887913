// Package syntaxkind is the closed enum of every node/token/trivia kind
// Loretta produces, plus the classification metadata that drives the
// lexer, parser, and green tree (spec.md §3, §4.C).
package syntaxkind

//go:generate stringer -type=SyntaxKind -trimprefix=Kind

// SyntaxKind classifies every green node Loretta can produce.
type SyntaxKind uint16

const (
	KindNone SyntaxKind = iota
	KindBadToken
	KindEndOfFileToken
	KindMissingToken

	// --- Literal & identifier tokens ---
	KindIdentifierToken
	KindNumericLiteralToken
	KindStringLiteralToken

	// --- Keyword tokens ---
	KindAndKeyword
	KindBreakKeyword
	KindDoKeyword
	KindElseKeyword
	KindElseIfKeyword
	KindEndKeyword
	KindFalseKeyword
	KindForKeyword
	KindFunctionKeyword
	KindGotoKeyword
	KindIfKeyword
	KindInKeyword
	KindLocalKeyword
	KindNilKeyword
	KindNotKeyword
	KindOrKeyword
	KindRepeatKeyword
	KindReturnKeyword
	KindThenKeyword
	KindTrueKeyword
	KindUntilKeyword
	KindWhileKeyword
	KindContinueKeyword // GLua / FiveM extension

	// --- Punctuation & operator tokens ---
	KindPlusToken
	KindMinusToken
	KindStarToken
	KindSlashToken
	KindSlashSlashToken // // floor division, 5.3+
	KindPercentToken
	KindCaretToken
	KindHashToken
	KindAmpersandToken   // & bitwise and, 5.3+
	KindTildeToken       // ~ bitwise xor / unary not, 5.3+
	KindPipeToken        // | bitwise or, 5.3+
	KindLessLessToken    // << 5.3+
	KindGreaterGreaterToken // >> 5.3+
	KindEqualsEqualsToken
	KindTildeEqualsToken
	KindLessEqualsToken
	KindGreaterEqualsToken
	KindLessToken
	KindGreaterToken
	KindEqualsToken
	KindOpenParenToken
	KindCloseParenToken
	KindOpenBraceToken
	KindCloseBraceToken
	KindOpenBracketToken
	KindCloseBracketToken
	KindDoubleColonToken // :: 5.2+ (goto labels)
	KindSemicolonToken
	KindColonToken
	KindCommaToken
	KindDotToken
	KindDotDotToken
	KindDotDotDotToken

	// --- Trivia kinds ---
	KindWhitespaceTrivia
	KindEndOfLineTrivia
	KindSingleLineCommentTrivia
	KindMultiLineCommentTrivia
	KindShebangTrivia
	KindSkippedTokenTrivia

	// --- List pseudo-kinds ---
	KindList

	// --- Compilation unit / statement nodes ---
	KindChunk
	KindStatementList
	KindLocalVariableDeclarationStatement
	KindLocalFunctionDeclarationStatement
	KindAssignmentStatement
	KindExpressionStatement
	KindIfStatement
	KindElseIfClause
	KindElseClause
	KindWhileStatement
	KindRepeatUntilStatement
	KindNumericForStatement
	KindGenericForStatement
	KindDoStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindGotoStatement
	KindGotoLabelStatement
	KindFunctionDeclarationStatement
	KindEmptyStatement

	// --- Expression nodes ---
	KindBinaryExpression
	KindUnaryExpression
	KindParenthesizedExpression
	KindNilLiteralExpression
	KindTrueLiteralExpression
	KindFalseLiteralExpression
	KindNumericLiteralExpression
	KindStringLiteralExpression
	KindVarArgExpression
	KindIdentifierName
	KindAnonymousFunctionExpression
	KindTableConstructorExpression
	KindKeyedTableField
	KindNamedTableField
	KindUnkeyedTableField
	KindFunctionCallExpression
	KindMethodCallExpression
	KindMemberAccessExpression
	KindElementAccessExpression
	KindStringCallExpression
	KindTableCallExpression

	// --- Auxiliary nodes ---
	KindParameterList
	KindParameter
	KindVarArgParameter
	KindFunctionBody
	KindFunctionName
	KindAttribute // <const> / <close>, 5.4+
	KindLocalVariable
	KindLocalVariableList
	KindExpressionList
	KindVariableList

	kindSentinelEnd
)

// SyntaxKindCategory is the approved set of extra-category names that
// SyntaxKind metadata may reference (spec.md §4.C, §6). Declaring a
// category outside this set produces the LOSK0006 warning.
type SyntaxKindCategory string

const (
	CategoryKeyword         SyntaxKindCategory = "Keyword"
	CategoryPunctuation     SyntaxKindCategory = "Punctuation"
	CategoryBinaryOperator  SyntaxKindCategory = "BinaryOperator"
	CategoryUnaryOperator   SyntaxKindCategory = "UnaryOperator"
	CategoryLiteral         SyntaxKindCategory = "Literal"
	CategoryTrivia          SyntaxKindCategory = "Trivia"
	CategoryStatement       SyntaxKindCategory = "Statement"
	CategoryExpression      SyntaxKindCategory = "Expression"
	CategoryDialectExtension SyntaxKindCategory = "DialectExtension"
)

// SyntaxKindProperty is the approved set of property keys SyntaxKind
// metadata may set (spec.md §4.C, §6).
type SyntaxKindProperty string

const (
	// PropertyMinVersion names the earliest Lua version (as a string,
	// e.g. "5.3") in which a token/operator is available in the
	// reference (non-GLua/FiveM) dialect family.
	PropertyMinVersion SyntaxKindProperty = "MinVersion"
	// PropertyRequiresGLua marks a kind only available under the GLua
	// or FiveM dialects (e.g. `continue`).
	PropertyRequiresGLua SyntaxKindProperty = "RequiresGLua"
)
