// Package red implements the lazily-materialized facade over a green
// tree: parent pointers and absolute text positions, computed on first
// access rather than carried by the immutable green layer (spec.md
// §4.H, §9).
package red

import (
	"weak"

	"github.com/loretta-lang/loretta/pkg/annotation"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/green"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/loretta-lang/loretta/pkg/text"
)

// Node is a red-tree wrapper around one green.Node: it knows its parent
// (nil at the root) and its absolute start position, and materializes
// its children lazily on demand.
type Node struct {
	green    green.Node
	parent   *Node
	position int

	cache    childCache
}

// childCache holds lazily-built child wrappers. Small child counts are
// cached directly; nodes and lists with manyChildrenThreshold or more
// slots cache through weak.Pointer so an
// unreferenced subtree can be collected and rebuilt later rather than
// pinning the whole red tree in memory (spec.md §4.H).
type childCache struct {
	direct []*Node // used when the green node has few slots
	weak   []weak.Pointer[Node]
}

// manyChildrenThreshold is the slot count at and above which child
// wrappers are cached via weak.Pointer instead of held directly.
const manyChildrenThreshold = 8

// NewRoot wraps a green tree with no parent, positioned at offset 0.
func NewRoot(g green.Node) *Node {
	if g == nil {
		return nil
	}
	return &Node{green: g, parent: nil, position: 0}
}

// Green returns the wrapped green node.
func (n *Node) Green() green.Node { return n.green }

// Kind is n's syntax kind.
func (n *Node) Kind() syntaxkind.SyntaxKind { return n.green.Kind() }

// Parent is n's red-tree parent, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Position is n's absolute start offset (UTF-16 code units) within the
// root SourceText, including leading trivia.
func (n *Node) Position() int { return n.position }

// FullWidth is the green node's full width (including trivia).
func (n *Node) FullWidth() int { return n.green.FullWidth() }

// Width is n's width excluding trivia: for a token, its text width;
// for a list or general node, its full width minus its first token's
// leading trivia and its last token's trailing trivia. Span below uses
// this as its length.
func (n *Node) Width() int {
	if n.green.IsToken() {
		return n.green.Width()
	}
	return n.green.FullWidth() - n.leadingWidth() - n.trailingWidth()
}

// leadingWidth is the width contributed by leading trivia at n's own
// level, used to compute Span from FullSpan. Only tokens carry trivia
// directly; a general node's leading width is its first token's
// leading trivia width.
func (n *Node) leadingWidth() int {
	if tok, ok := n.green.(*green.Token); ok {
		return tok.LeadingTrivia().FullWidth()
	}
	if first := green.FirstToken(n.green); first != nil {
		return first.LeadingTrivia().FullWidth()
	}
	return 0
}

func (n *Node) trailingWidth() int {
	if tok, ok := n.green.(*green.Token); ok {
		return tok.TrailingTrivia().FullWidth()
	}
	if last := green.LastToken(n.green); last != nil {
		return last.TrailingTrivia().FullWidth()
	}
	return 0
}

// FullSpan is n's span including leading and trailing trivia.
func (n *Node) FullSpan() text.TextSpan {
	return text.NewTextSpan(n.position, n.FullWidth())
}

// Span is n's span excluding leading and trailing trivia.
func (n *Node) Span() text.TextSpan {
	start := n.position + n.leadingWidth()
	return text.NewTextSpan(start, n.Width())
}

// IsToken, IsTrivia, IsList, IsMissing mirror the underlying green
// node's classification.
func (n *Node) IsToken() bool   { return n.green.IsToken() }
func (n *Node) IsList() bool    { return n.green.IsList() }
func (n *Node) IsMissing() bool { return n.green.IsMissing() }

// Diagnostics returns diagnostics attached to the underlying green
// node, with their Location resolved to this red node's absolute Span
// when they were recorded with LocationSource (spec.md §3: "diagnostics
// carry an unresolved span at the green level, resolved lazily against
// the red tree").
func (n *Node) Diagnostics() []diagnostic.Diagnostic {
	raw := n.green.Diagnostics()
	if len(raw) == 0 {
		return nil
	}
	out := make([]diagnostic.Diagnostic, len(raw))
	for i, d := range raw {
		if d.Location.Kind == diagnostic.LocationSource {
			d.Location.Span = text.NewTextSpan(n.position+d.Location.Span.Start, d.Location.Span.Length)
		}
		out[i] = d
	}
	return out
}

// Annotations returns annotations attached to the underlying green node.
func (n *Node) Annotations() []*annotation.Annotation { return n.green.Annotations() }

// SlotCount is the number of child slots (0 for tokens/trivia).
func (n *Node) SlotCount() int { return n.green.SlotCount() }

// ChildNode lazily materializes and returns the red wrapper for slot i
// (a token or a node alike), or nil if that slot is empty.
func (n *Node) ChildNode(i int) *Node {
	child := n.childOffsetAndNode(i)
	if child == nil {
		return nil
	}
	return child
}

// ChildNodesAndTokens lazily enumerates every non-nil slot as a red
// Node (works uniformly for tokens and general nodes).
func (n *Node) ChildNodesAndTokens() []*Node {
	count := n.SlotCount()
	out := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.childOffsetAndNode(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// childOffsetAndNode computes slot i's absolute position and returns
// its cached or freshly built red wrapper.
func (n *Node) childOffsetAndNode(i int) *Node {
	g := n.green.Slot(i)
	if g == nil {
		return nil
	}
	if cached := n.getCached(i); cached != nil {
		return cached
	}
	offset := n.position
	for j := 0; j < i; j++ {
		if s := n.green.Slot(j); s != nil {
			offset += s.FullWidth()
		}
	}
	child := &Node{green: g, parent: n, position: offset}
	n.setCached(i, child)
	return child
}

func (n *Node) getCached(i int) *Node {
	if n.SlotCount() >= manyChildrenThreshold {
		if n.cache.weak == nil {
			return nil
		}
		if i >= len(n.cache.weak) {
			return nil
		}
		return n.cache.weak[i].Value()
	}
	if n.cache.direct == nil {
		return nil
	}
	return n.cache.direct[i]
}

func (n *Node) setCached(i int, child *Node) {
	if n.SlotCount() >= manyChildrenThreshold {
		if n.cache.weak == nil {
			n.cache.weak = make([]weak.Pointer[Node], n.SlotCount())
		}
		n.cache.weak[i] = weak.Make(child)
		return
	}
	if n.cache.direct == nil {
		n.cache.direct = make([]*Node, n.SlotCount())
	}
	n.cache.direct[i] = child
}

// AncestorsAndSelf yields n and every ancestor up to the root, nearest
// first.
func (n *Node) AncestorsAndSelf() []*Node {
	var out []*Node
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// Descendants performs a pre-order walk of n's subtree, not including n
// itself.
func (n *Node) Descendants() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.ChildNodesAndTokens() {
			out = append(out, c)
			if !c.IsToken() {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// Root walks up to n's outermost ancestor.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}
