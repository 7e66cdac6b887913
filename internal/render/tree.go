package render

import (
	"fmt"
	"strings"

	"github.com/loretta-lang/loretta/pkg/red"
)

// DumpTree renders n's subtree as an indented outline: one line per
// node giving its kind and span, tokens additionally showing their own
// text. A missing node or token is marked so a reader can spot
// recovered syntax at a glance.
func (s *Styles) DumpTree(n *red.Node) string {
	var b strings.Builder
	s.dumpNode(&b, n, 0)
	return b.String()
}

func (s *Styles) dumpNode(b *strings.Builder, n *red.Node, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))

	kind := s.Kind.Render(n.Kind().String())
	span := s.Dim.Render(n.Span().String())
	b.WriteString(kind)
	b.WriteString(" ")
	b.WriteString(span)

	if n.IsMissing() {
		b.WriteString(" ")
		b.WriteString(s.Missing.Render("<missing>"))
	} else if n.IsToken() {
		b.WriteString(" ")
		b.WriteString(s.Token.Render(fmt.Sprintf("%q", tokenText(n))))
	}
	b.WriteString("\n")

	for _, child := range n.ChildNodesAndTokens() {
		s.dumpNode(b, child, depth+1)
	}
}

func tokenText(n *red.Node) string {
	if g, ok := n.Green().(interface{ Text() string }); ok {
		return g.Text()
	}
	return ""
}
