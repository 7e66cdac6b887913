package syntaxkind

import (
	"sort"
	"sync"

	"github.com/loretta-lang/loretta/pkg/diagnostic"
)

// info is the static metadata attached to one SyntaxKind (spec.md §3).
type info struct {
	isTrivia         bool
	tokenText        string
	isKeyword        bool
	unaryPrecedence  int
	binaryPrecedence int
	rightAssociative bool
	categories       []SyntaxKindCategory
	properties       map[SyntaxKindProperty]any
}

// table is the hand-declared metadata for every kind that needs it.
// Kinds absent from the table get the zero info (not trivia, not a
// fixed-text token, no precedence, no categories).
var table = map[SyntaxKind]info{
	KindWhitespaceTrivia:        {isTrivia: true},
	KindEndOfLineTrivia:         {isTrivia: true},
	KindSingleLineCommentTrivia: {isTrivia: true},
	KindMultiLineCommentTrivia:  {isTrivia: true},
	KindShebangTrivia:           {isTrivia: true},
	KindSkippedTokenTrivia:      {isTrivia: true},

	KindAndKeyword:      {tokenText: "and", isKeyword: true, binaryPrecedence: 2, categories: []SyntaxKindCategory{CategoryKeyword, CategoryBinaryOperator}},
	KindBreakKeyword:    {tokenText: "break", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindDoKeyword:       {tokenText: "do", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindElseKeyword:     {tokenText: "else", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindElseIfKeyword:   {tokenText: "elseif", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindEndKeyword:      {tokenText: "end", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindFalseKeyword:    {tokenText: "false", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword, CategoryLiteral}},
	KindForKeyword:      {tokenText: "for", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindFunctionKeyword: {tokenText: "function", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindGotoKeyword: {
		tokenText: "goto", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword},
		properties: map[SyntaxKindProperty]any{PropertyMinVersion: "5.2"},
	},
	KindIfKeyword:     {tokenText: "if", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindInKeyword:     {tokenText: "in", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindLocalKeyword:  {tokenText: "local", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindNilKeyword:    {tokenText: "nil", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword, CategoryLiteral}},
	KindNotKeyword:    {tokenText: "not", isKeyword: true, unaryPrecedence: 12, categories: []SyntaxKindCategory{CategoryKeyword, CategoryUnaryOperator}},
	KindOrKeyword:     {tokenText: "or", isKeyword: true, binaryPrecedence: 1, categories: []SyntaxKindCategory{CategoryKeyword, CategoryBinaryOperator}},
	KindRepeatKeyword: {tokenText: "repeat", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindReturnKeyword: {tokenText: "return", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindThenKeyword:   {tokenText: "then", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindTrueKeyword:   {tokenText: "true", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword, CategoryLiteral}},
	KindUntilKeyword:  {tokenText: "until", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindWhileKeyword:  {tokenText: "while", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword}},
	KindContinueKeyword: {
		tokenText: "continue", isKeyword: true, categories: []SyntaxKindCategory{CategoryKeyword, CategoryDialectExtension},
		properties: map[SyntaxKindProperty]any{PropertyRequiresGLua: true},
	},

	KindPlusToken:  {tokenText: "+", binaryPrecedence: 10, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindMinusToken: {tokenText: "-", binaryPrecedence: 10, unaryPrecedence: 12, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator, CategoryUnaryOperator}},
	KindStarToken:  {tokenText: "*", binaryPrecedence: 11, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindSlashToken: {tokenText: "/", binaryPrecedence: 11, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindSlashSlashToken: {
		tokenText: "//", binaryPrecedence: 11, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator},
		properties: map[SyntaxKindProperty]any{PropertyMinVersion: "5.3"},
	},
	KindPercentToken: {tokenText: "%", binaryPrecedence: 11, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindCaretToken:   {tokenText: "^", binaryPrecedence: 14, rightAssociative: true, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindHashToken:    {tokenText: "#", unaryPrecedence: 12, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryUnaryOperator}},
	KindAmpersandToken: {
		tokenText: "&", binaryPrecedence: 6, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator},
		properties: map[SyntaxKindProperty]any{PropertyMinVersion: "5.3"},
	},
	KindTildeToken: {
		tokenText: "~", binaryPrecedence: 5, unaryPrecedence: 12, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator, CategoryUnaryOperator},
		properties: map[SyntaxKindProperty]any{PropertyMinVersion: "5.3"},
	},
	KindPipeToken: {
		tokenText: "|", binaryPrecedence: 4, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator},
		properties: map[SyntaxKindProperty]any{PropertyMinVersion: "5.3"},
	},
	KindLessLessToken: {
		tokenText: "<<", binaryPrecedence: 7, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator},
		properties: map[SyntaxKindProperty]any{PropertyMinVersion: "5.3"},
	},
	KindGreaterGreaterToken: {
		tokenText: ">>", binaryPrecedence: 7, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator},
		properties: map[SyntaxKindProperty]any{PropertyMinVersion: "5.3"},
	},
	KindEqualsEqualsToken:   {tokenText: "==", binaryPrecedence: 3, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindTildeEqualsToken:    {tokenText: "~=", binaryPrecedence: 3, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindLessEqualsToken:     {tokenText: "<=", binaryPrecedence: 3, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindGreaterEqualsToken:  {tokenText: ">=", binaryPrecedence: 3, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindLessToken:           {tokenText: "<", binaryPrecedence: 3, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindGreaterToken:        {tokenText: ">", binaryPrecedence: 3, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindEqualsToken:         {tokenText: "=", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindOpenParenToken:      {tokenText: "(", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindCloseParenToken:     {tokenText: ")", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindOpenBraceToken:      {tokenText: "{", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindCloseBraceToken:     {tokenText: "}", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindOpenBracketToken:    {tokenText: "[", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindCloseBracketToken:   {tokenText: "]", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindDoubleColonToken: {
		tokenText: "::", categories: []SyntaxKindCategory{CategoryPunctuation},
		properties: map[SyntaxKindProperty]any{PropertyMinVersion: "5.2"},
	},
	KindSemicolonToken:  {tokenText: ";", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindColonToken:      {tokenText: ":", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindCommaToken:      {tokenText: ",", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindDotToken:        {tokenText: ".", categories: []SyntaxKindCategory{CategoryPunctuation}},
	KindDotDotToken:     {tokenText: "..", binaryPrecedence: 9, rightAssociative: true, categories: []SyntaxKindCategory{CategoryPunctuation, CategoryBinaryOperator}},
	KindDotDotDotToken:  {tokenText: "...", categories: []SyntaxKindCategory{CategoryPunctuation}},

	KindEndOfFileToken: {tokenText: ""},
}

var (
	tokenTextByKind    map[SyntaxKind]string
	keywordKindByText  map[string]SyntaxKind
	precedenceByKind   map[SyntaxKind][2]int // [unary, binary]
	kindsByCategory    map[SyntaxKindCategory][]SyntaxKind
	categoriesByKind   map[SyntaxKind][]SyntaxKindCategory
	propertyByKindKey  map[SyntaxKind]map[SyntaxKindProperty]any
	initOnce           sync.Once
)

func ensureInit() {
	initOnce.Do(buildTables)
}

func buildTables() {
	tokenTextByKind = make(map[SyntaxKind]string)
	keywordKindByText = make(map[string]SyntaxKind)
	precedenceByKind = make(map[SyntaxKind][2]int)
	kindsByCategory = make(map[SyntaxKindCategory][]SyntaxKind)
	categoriesByKind = make(map[SyntaxKind][]SyntaxKindCategory)
	propertyByKindKey = make(map[SyntaxKind]map[SyntaxKindProperty]any)

	// Deterministic iteration order for reproducible category slices.
	kinds := make([]SyntaxKind, 0, len(table))
	for k := range table {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, k := range kinds {
		fact := table[k]
		if fact.tokenText != "" || (fact.isKeyword) || k == KindEndOfFileToken {
			tokenTextByKind[k] = fact.tokenText
		}
		if fact.isKeyword {
			keywordKindByText[fact.tokenText] = k
		}
		if fact.unaryPrecedence != 0 || fact.binaryPrecedence != 0 {
			precedenceByKind[k] = [2]int{fact.unaryPrecedence, fact.binaryPrecedence}
		}
		if len(fact.categories) > 0 {
			categoriesByKind[k] = append([]SyntaxKindCategory(nil), fact.categories...)
			for _, c := range fact.categories {
				kindsByCategory[c] = append(kindsByCategory[c], k)
			}
		}
		if len(fact.properties) > 0 {
			propertyByKindKey[k] = fact.properties
		}
	}
}

// IsTrivia reports whether k is a trivia kind.
func IsTrivia(k SyntaxKind) bool {
	return table[k].isTrivia
}

// IsToken reports whether k has fixed token text or is otherwise a
// leaf token kind (identifier/literal/EOF/bad/missing tokens all count).
func IsToken(k SyntaxKind) bool {
	switch k {
	case KindIdentifierToken, KindNumericLiteralToken, KindStringLiteralToken,
		KindEndOfFileToken, KindBadToken, KindMissingToken:
		return true
	}
	ensureInit()
	_, ok := tokenTextByKind[k]
	return ok
}

// IsKeyword reports whether k is a keyword kind.
func IsKeyword(k SyntaxKind) bool {
	return table[k].isKeyword
}

// TokenText returns the fixed text for k (operators, punctuation,
// keywords), and false if k has no fixed text.
func TokenText(k SyntaxKind) (string, bool) {
	ensureInit()
	s, ok := tokenTextByKind[k]
	return s, ok
}

// LookupKeyword returns the keyword kind for the given identifier text,
// used by the lexer/token-cache to classify identifiers.
func LookupKeyword(text string) (SyntaxKind, bool) {
	ensureInit()
	k, ok := keywordKindByText[text]
	return k, ok
}

// LookupOperator returns the kind whose fixed text matches s, scanning
// binary-operator kinds, then unary-operator kinds, then punctuation.
func LookupOperator(s string) (SyntaxKind, bool) {
	ensureInit()
	for _, k := range kindsByCategory[CategoryBinaryOperator] {
		if tokenTextByKind[k] == s {
			return k, true
		}
	}
	for _, k := range kindsByCategory[CategoryUnaryOperator] {
		if tokenTextByKind[k] == s {
			return k, true
		}
	}
	for _, k := range kindsByCategory[CategoryPunctuation] {
		if tokenTextByKind[k] == s {
			return k, true
		}
	}
	return KindNone, false
}

// UnaryPrecedence returns k's unary operator precedence, or 0 if k is
// not a unary operator.
func UnaryPrecedence(k SyntaxKind) int {
	ensureInit()
	return precedenceByKind[k][0]
}

// BinaryPrecedence returns k's binary operator precedence, or 0 if k is
// not a binary operator.
func BinaryPrecedence(k SyntaxKind) int {
	ensureInit()
	return precedenceByKind[k][1]
}

// IsRightAssociative reports whether k's binary operator is
// right-associative (only `..` and `^` in Lua).
func IsRightAssociative(k SyntaxKind) bool {
	return table[k].rightAssociative
}

// Categories returns the extra-categories declared for k.
func Categories(k SyntaxKind) []SyntaxKindCategory {
	ensureInit()
	return categoriesByKind[k]
}

// KindsInCategory returns every kind declared as a member of category.
func KindsInCategory(category SyntaxKindCategory) []SyntaxKind {
	ensureInit()
	return kindsByCategory[category]
}

// Property looks up the property value for (k, key).
func Property(k SyntaxKind, key SyntaxKindProperty) (any, bool) {
	ensureInit()
	props, ok := propertyByKindKey[k]
	if !ok {
		return nil, false
	}
	v, ok := props[key]
	return v, ok
}

// Validate re-derives the tables and reports metadata invariant
// violations as diagnostics (spec.md §4.C): a trivia kind may not also
// be a token, an operator kind must have non-empty non-whitespace text,
// and a keyword kind must have non-empty non-whitespace text. There is
// no XML-driven code generator in this repository (out of scope per
// spec.md §1) — Validate plays the generator's compile-time-check role
// as an ordinary function, callable from a test or from tooling that
// wants to check a modified table before shipping it.
func Validate() []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	for k, fact := range table {
		if fact.isTrivia && (fact.isKeyword || fact.tokenText != "") {
			diags = append(diags, diagnostic.Diagnostic{
				ID: diagnostic.IDTriviaIsAlsoToken, Severity: diagnostic.Error,
				Message: kindName(k) + ": trivia kind is also a token",
			})
		}
		isOperator := fact.unaryPrecedence != 0 || fact.binaryPrecedence != 0
		if isOperator && blankText(fact.tokenText) {
			diags = append(diags, diagnostic.Diagnostic{
				ID: diagnostic.IDOperatorNoText, Severity: diagnostic.Error,
				Message: kindName(k) + ": operator kind declared without text",
			})
		}
		if fact.isKeyword && blankText(fact.tokenText) {
			diags = append(diags, diagnostic.Diagnostic{
				ID: diagnostic.IDKeywordNoText, Severity: diagnostic.Error,
				Message: kindName(k) + ": keyword kind declared without text",
			})
		}
		for _, c := range fact.categories {
			if !approvedCategory(c) {
				diags = append(diags, diagnostic.Diagnostic{
					ID: diagnostic.IDCategoryNotApproved, Severity: diagnostic.Warning,
					Message: kindName(k) + ": category " + string(c) + " is not in the approved set",
				})
			}
		}
		for p := range fact.properties {
			if !approvedProperty(p) {
				diags = append(diags, diagnostic.Diagnostic{
					ID: diagnostic.IDPropertyNotApproved, Severity: diagnostic.Warning,
					Message: kindName(k) + ": property " + string(p) + " is not in the approved set",
				})
			}
		}
	}
	return diags
}

func blankText(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

func approvedCategory(c SyntaxKindCategory) bool {
	switch c {
	case CategoryKeyword, CategoryPunctuation, CategoryBinaryOperator, CategoryUnaryOperator,
		CategoryLiteral, CategoryTrivia, CategoryStatement, CategoryExpression, CategoryDialectExtension:
		return true
	default:
		return false
	}
}

func approvedProperty(p SyntaxKindProperty) bool {
	switch p {
	case PropertyMinVersion, PropertyRequiresGLua:
		return true
	default:
		return false
	}
}

func kindName(k SyntaxKind) string {
	if s, ok := TokenText(k); ok && s != "" {
		return s
	}
	return k.String()
}
