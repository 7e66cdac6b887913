// Package green implements Loretta's immutable, position-free syntax
// tree layer (spec.md §3, §4.D, §9). A green tree is built bottom-up,
// shares structurally identical subtrees (via internal/tokencache for
// leaves), and carries only widths — never absolute positions. The red
// tree (pkg/red) wraps a green tree lazily to add parent pointers and
// positions.
package green

import (
	"github.com/loretta-lang/loretta/pkg/annotation"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
)

// Node is the capability interface every green tree element implements:
// tokens, trivia, lists, and general (non-list) nodes.
type Node interface {
	// Kind is the node's syntax kind.
	Kind() syntaxkind.SyntaxKind
	// Width is the text width in UTF-16 code units. A token excludes its
	// leading and trailing trivia; lists and general nodes report the
	// same value as FullWidth.
	Width() int
	// FullWidth is Width plus leading and trailing trivia width.
	FullWidth() int
	// SlotCount is the number of child slots. Tokens and trivia report 0.
	SlotCount() int
	// Slot returns the child at index i, or nil if that slot is empty
	// (an optional child that was never present, e.g. a missing `else`
	// clause). Panics if i is out of [0, SlotCount).
	Slot(i int) Node
	// IsToken reports whether this node is a Token leaf.
	IsToken() bool
	// IsTrivia reports whether this node is a Trivia leaf.
	IsTrivia() bool
	// IsList reports whether this node is a list pseudo-node.
	IsList() bool
	// IsMissing reports whether this node stands in for a token or node
	// the parser expected but did not find (spec.md §7 edge cases).
	IsMissing() bool
	// Diagnostics returns diagnostics attached directly to this node.
	Diagnostics() []diagnostic.Diagnostic
	// Annotations returns annotations attached directly to this node.
	Annotations() []*annotation.Annotation
	// WithDiagnostics returns a structurally identical copy carrying
	// the given diagnostics in place of any existing ones.
	WithDiagnostics(diags []diagnostic.Diagnostic) Node
	// WithAnnotations returns a structurally identical copy carrying
	// the given annotations in place of any existing ones.
	WithAnnotations(anns []*annotation.Annotation) Node
}

// childWidth is a nil-safe helper: an empty optional slot contributes
// zero width.
func childWidth(n Node) int {
	if n == nil {
		return 0
	}
	return n.FullWidth()
}

// Children returns every non-nil slot of n, in order.
func Children(n Node) []Node {
	count := n.SlotCount()
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.Slot(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// FirstToken returns the first Token reachable by descending into the
// leftmost non-empty slot, or nil if n contains no token (an empty
// list, for instance).
func FirstToken(n Node) *Token {
	if n == nil {
		return nil
	}
	if t, ok := n.(*Token); ok {
		return t
	}
	for i := 0; i < n.SlotCount(); i++ {
		if c := n.Slot(i); c != nil {
			if t := FirstToken(c); t != nil {
				return t
			}
		}
	}
	return nil
}

// LastToken is the mirror of FirstToken, descending from the right.
func LastToken(n Node) *Token {
	if n == nil {
		return nil
	}
	if t, ok := n.(*Token); ok {
		return t
	}
	for i := n.SlotCount() - 1; i >= 0; i-- {
		if c := n.Slot(i); c != nil {
			if t := LastToken(c); t != nil {
				return t
			}
		}
	}
	return nil
}
