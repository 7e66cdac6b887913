package green

import (
	"github.com/loretta-lang/loretta/pkg/annotation"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
)

// NodeWithChildren is the general-purpose representation for every
// statement and expression kind. A fully code-generated tree would give
// each kind its own Go struct with named accessors (spec.md §9 design
// note); since that generator is out of scope here, one generic node
// carries the kind and an ordered, possibly-sparse slot list instead.
// Parsers build these through NewNode, which validates the shape
// invariants the generated classes would otherwise guarantee at
// compile time.
type NodeWithChildren struct {
	kind        syntaxkind.SyntaxKind
	children    []Node
	diagnostics []diagnostic.Diagnostic
	annotations []*annotation.Annotation
}

func (n *NodeWithChildren) Kind() syntaxkind.SyntaxKind { return n.kind }
func (n *NodeWithChildren) SlotCount() int              { return len(n.children) }
func (n *NodeWithChildren) Slot(i int) Node             { return n.children[i] }
func (n *NodeWithChildren) IsToken() bool               { return false }
func (n *NodeWithChildren) IsTrivia() bool              { return false }
func (n *NodeWithChildren) IsList() bool                { return false }
func (n *NodeWithChildren) IsMissing() bool             { return false }

func (n *NodeWithChildren) Width() int     { return n.FullWidth() }
func (n *NodeWithChildren) FullWidth() int {
	w := 0
	for _, c := range n.children {
		w += childWidth(c)
	}
	return w
}

func (n *NodeWithChildren) Diagnostics() []diagnostic.Diagnostic  { return n.diagnostics }
func (n *NodeWithChildren) Annotations() []*annotation.Annotation { return n.annotations }

func (n *NodeWithChildren) WithDiagnostics(d []diagnostic.Diagnostic) Node {
	cp := *n
	cp.diagnostics = d
	return &cp
}

func (n *NodeWithChildren) WithAnnotations(a []*annotation.Annotation) Node {
	cp := *n
	cp.annotations = a
	return &cp
}

// shape names the expected slot count for node kinds that have a fixed
// arity, used by NewNode as a cheap structural sanity check in place of
// the per-kind generated classes. Kinds absent from this table (lists,
// kinds whose arity legitimately varies) are not checked.
var shape = map[syntaxkind.SyntaxKind]int{
	syntaxkind.KindChunk:                              2, // statements, eof
	syntaxkind.KindLocalVariableDeclarationStatement:  4, // local, names, eq?, exprs?
	syntaxkind.KindLocalFunctionDeclarationStatement:  4, // local, function, name, body
	syntaxkind.KindAssignmentStatement:                3, // targets, eq, exprs
	syntaxkind.KindExpressionStatement:                1,
	syntaxkind.KindIfStatement:                        5, // if, cond, thenClause, elseifs/else, end
	syntaxkind.KindElseIfClause:                        3, // elseif, cond, thenClause
	syntaxkind.KindElseClause:                          2, // else, block
	syntaxkind.KindWhileStatement:                      5, // while, cond, do, block, end
	syntaxkind.KindRepeatUntilStatement:                4, // repeat, block, until, cond
	syntaxkind.KindNumericForStatement:                 9, // for, name, eq, start, comma, stop, step?, doBlock, end
	syntaxkind.KindGenericForStatement:                 6, // for, names, in, exprs, doBlock, end
	syntaxkind.KindDoStatement:                         3, // do, block, end
	syntaxkind.KindReturnStatement:                     3, // return, exprs?, semicolon?
	syntaxkind.KindBreakStatement:                      1,
	syntaxkind.KindContinueStatement:                   1,
	syntaxkind.KindGotoStatement:                       2, // goto, name
	syntaxkind.KindGotoLabelStatement:                  3, // ::, name, ::
	syntaxkind.KindFunctionDeclarationStatement:        3, // function, name, body
	syntaxkind.KindEmptyStatement:                      1,

	syntaxkind.KindBinaryExpression:            3,
	syntaxkind.KindUnaryExpression:             2,
	syntaxkind.KindParenthesizedExpression:     3,
	syntaxkind.KindNilLiteralExpression:        1,
	syntaxkind.KindTrueLiteralExpression:       1,
	syntaxkind.KindFalseLiteralExpression:      1,
	syntaxkind.KindNumericLiteralExpression:    1,
	syntaxkind.KindStringLiteralExpression:     1,
	syntaxkind.KindVarArgExpression:            1,
	syntaxkind.KindIdentifierName:              1,
	syntaxkind.KindAnonymousFunctionExpression: 2, // function, body
	syntaxkind.KindTableConstructorExpression:  3, // {, fields?, }
	syntaxkind.KindKeyedTableField:              5, // [, key, ], =, value
	syntaxkind.KindNamedTableField:               3, // name, =, value
	syntaxkind.KindUnkeyedTableField:             1,
	syntaxkind.KindFunctionCallExpression:        2, // callee, parenArgs
	syntaxkind.KindMethodCallExpression:          4, // callee, :, name, args
	syntaxkind.KindMemberAccessExpression:        3, // target, . or :, name
	syntaxkind.KindElementAccessExpression:       4, // target, [, index, ]
	syntaxkind.KindStringCallExpression:          2, // callee, stringLiteral
	syntaxkind.KindTableCallExpression:           2, // callee, tableConstructor

	syntaxkind.KindParameterList:      3, // (, params?, )
	syntaxkind.KindParameter:          1,
	syntaxkind.KindVarArgParameter:    1,
	syntaxkind.KindFunctionBody:       3, // parameterList, block, end
	syntaxkind.KindFunctionName:       1,
	syntaxkind.KindAttribute:          3, // <, name, >
	syntaxkind.KindLocalVariable:      2, // name, attribute?

	syntaxkind.KindStatementList:      1, // wraps a generic list of statements
	syntaxkind.KindExpressionList:     1,
	syntaxkind.KindVariableList:       1,
	syntaxkind.KindLocalVariableList:  1,
}

// ShapeError reports that NewNode was called with a child count that
// does not match the declared shape for kind.
type ShapeError struct {
	Kind     syntaxkind.SyntaxKind
	Want     int
	Got      int
}

func (e *ShapeError) Error() string {
	return "green: " + e.Kind.String() + " expects " + itoa(e.Want) + " slots, got " + itoa(e.Got)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// NewNode builds a NodeWithChildren of kind, validating child count
// against shape when kind declares one. Individual slots may be nil to
// represent an absent optional child (e.g. no `else` clause); nil does
// not count against the expected slot count, only the slice length
// does, mirroring how a generated class would still have that field
// present but null.
func NewNode(kind syntaxkind.SyntaxKind, children ...Node) (*NodeWithChildren, error) {
	if want, ok := shape[kind]; ok && want != len(children) {
		return nil, &ShapeError{Kind: kind, Want: want, Got: len(children)}
	}
	return &NodeWithChildren{kind: kind, children: append([]Node(nil), children...)}, nil
}

// MustNewNode is NewNode for callers (internal parser factories) that
// have already guaranteed the shape is correct and want a panic instead
// of a buried error check on what would otherwise be a programmer bug.
func MustNewNode(kind syntaxkind.SyntaxKind, children ...Node) *NodeWithChildren {
	n, err := NewNode(kind, children...)
	if err != nil {
		panic(err)
	}
	return n
}
