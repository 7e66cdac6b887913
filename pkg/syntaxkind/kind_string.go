package syntaxkind

import "strconv"

// String implements fmt.Stringer. Hand-maintained in the shape
// `stringer -type=SyntaxKind -trimprefix=Kind` would produce, since the
// XML/codegen pipeline that would normally run it is out of scope.
func (k SyntaxKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "SyntaxKind(" + strconv.Itoa(int(k)) + ")"
}

var kindNames = map[SyntaxKind]string{
	KindNone:            "None",
	KindBadToken:        "BadToken",
	KindEndOfFileToken:  "EndOfFileToken",
	KindMissingToken:    "MissingToken",

	KindIdentifierToken:     "IdentifierToken",
	KindNumericLiteralToken: "NumericLiteralToken",
	KindStringLiteralToken:  "StringLiteralToken",

	KindAndKeyword:      "AndKeyword",
	KindBreakKeyword:    "BreakKeyword",
	KindDoKeyword:       "DoKeyword",
	KindElseKeyword:     "ElseKeyword",
	KindElseIfKeyword:   "ElseIfKeyword",
	KindEndKeyword:      "EndKeyword",
	KindFalseKeyword:    "FalseKeyword",
	KindForKeyword:      "ForKeyword",
	KindFunctionKeyword: "FunctionKeyword",
	KindGotoKeyword:     "GotoKeyword",
	KindIfKeyword:       "IfKeyword",
	KindInKeyword:       "InKeyword",
	KindLocalKeyword:    "LocalKeyword",
	KindNilKeyword:      "NilKeyword",
	KindNotKeyword:      "NotKeyword",
	KindOrKeyword:       "OrKeyword",
	KindRepeatKeyword:   "RepeatKeyword",
	KindReturnKeyword:   "ReturnKeyword",
	KindThenKeyword:     "ThenKeyword",
	KindTrueKeyword:     "TrueKeyword",
	KindUntilKeyword:    "UntilKeyword",
	KindWhileKeyword:    "WhileKeyword",
	KindContinueKeyword: "ContinueKeyword",

	KindPlusToken:           "PlusToken",
	KindMinusToken:          "MinusToken",
	KindStarToken:           "StarToken",
	KindSlashToken:          "SlashToken",
	KindSlashSlashToken:     "SlashSlashToken",
	KindPercentToken:        "PercentToken",
	KindCaretToken:          "CaretToken",
	KindHashToken:           "HashToken",
	KindAmpersandToken:      "AmpersandToken",
	KindTildeToken:          "TildeToken",
	KindPipeToken:           "PipeToken",
	KindLessLessToken:       "LessLessToken",
	KindGreaterGreaterToken: "GreaterGreaterToken",
	KindEqualsEqualsToken:   "EqualsEqualsToken",
	KindTildeEqualsToken:    "TildeEqualsToken",
	KindLessEqualsToken:     "LessEqualsToken",
	KindGreaterEqualsToken:  "GreaterEqualsToken",
	KindLessToken:           "LessToken",
	KindGreaterToken:        "GreaterToken",
	KindEqualsToken:         "EqualsToken",
	KindOpenParenToken:      "OpenParenToken",
	KindCloseParenToken:     "CloseParenToken",
	KindOpenBraceToken:      "OpenBraceToken",
	KindCloseBraceToken:     "CloseBraceToken",
	KindOpenBracketToken:    "OpenBracketToken",
	KindCloseBracketToken:   "CloseBracketToken",
	KindDoubleColonToken:    "DoubleColonToken",
	KindSemicolonToken:      "SemicolonToken",
	KindColonToken:          "ColonToken",
	KindCommaToken:          "CommaToken",
	KindDotToken:            "DotToken",
	KindDotDotToken:         "DotDotToken",
	KindDotDotDotToken:      "DotDotDotToken",

	KindWhitespaceTrivia:        "WhitespaceTrivia",
	KindEndOfLineTrivia:         "EndOfLineTrivia",
	KindSingleLineCommentTrivia: "SingleLineCommentTrivia",
	KindMultiLineCommentTrivia:  "MultiLineCommentTrivia",
	KindShebangTrivia:           "ShebangTrivia",
	KindSkippedTokenTrivia:      "SkippedTokenTrivia",

	KindList: "List",

	KindChunk:                              "Chunk",
	KindStatementList:                      "StatementList",
	KindLocalVariableDeclarationStatement:  "LocalVariableDeclarationStatement",
	KindLocalFunctionDeclarationStatement:  "LocalFunctionDeclarationStatement",
	KindAssignmentStatement:                "AssignmentStatement",
	KindExpressionStatement:                "ExpressionStatement",
	KindIfStatement:                        "IfStatement",
	KindElseIfClause:                       "ElseIfClause",
	KindElseClause:                         "ElseClause",
	KindWhileStatement:                     "WhileStatement",
	KindRepeatUntilStatement:               "RepeatUntilStatement",
	KindNumericForStatement:                "NumericForStatement",
	KindGenericForStatement:                "GenericForStatement",
	KindDoStatement:                        "DoStatement",
	KindReturnStatement:                    "ReturnStatement",
	KindBreakStatement:                     "BreakStatement",
	KindContinueStatement:                  "ContinueStatement",
	KindGotoStatement:                      "GotoStatement",
	KindGotoLabelStatement:                 "GotoLabelStatement",
	KindFunctionDeclarationStatement:       "FunctionDeclarationStatement",
	KindEmptyStatement:                     "EmptyStatement",

	KindBinaryExpression:            "BinaryExpression",
	KindUnaryExpression:             "UnaryExpression",
	KindParenthesizedExpression:     "ParenthesizedExpression",
	KindNilLiteralExpression:        "NilLiteralExpression",
	KindTrueLiteralExpression:       "TrueLiteralExpression",
	KindFalseLiteralExpression:      "FalseLiteralExpression",
	KindNumericLiteralExpression:    "NumericLiteralExpression",
	KindStringLiteralExpression:     "StringLiteralExpression",
	KindVarArgExpression:            "VarArgExpression",
	KindIdentifierName:              "IdentifierName",
	KindAnonymousFunctionExpression: "AnonymousFunctionExpression",
	KindTableConstructorExpression:  "TableConstructorExpression",
	KindKeyedTableField:             "KeyedTableField",
	KindNamedTableField:             "NamedTableField",
	KindUnkeyedTableField:           "UnkeyedTableField",
	KindFunctionCallExpression:      "FunctionCallExpression",
	KindMethodCallExpression:        "MethodCallExpression",
	KindMemberAccessExpression:      "MemberAccessExpression",
	KindElementAccessExpression:     "ElementAccessExpression",
	KindStringCallExpression:        "StringCallExpression",
	KindTableCallExpression:         "TableCallExpression",

	KindParameterList:     "ParameterList",
	KindParameter:         "Parameter",
	KindVarArgParameter:   "VarArgParameter",
	KindFunctionBody:      "FunctionBody",
	KindFunctionName:      "FunctionName",
	KindAttribute:         "Attribute",
	KindLocalVariable:     "LocalVariable",
	KindLocalVariableList: "LocalVariableList",
	KindExpressionList:    "ExpressionList",
	KindVariableList:      "VariableList",
}
