package green

import (
	"github.com/loretta-lang/loretta/pkg/annotation"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
)

// List specializations avoid a slice allocation for the overwhelmingly
// common small-arity case (spec.md §9: "specialize list storage for
// small counts"). list1/list2/list3 store their children inline;
// listMany falls back to a slice for everything larger. All four share
// KindList so callers can type-switch on arity without caring which
// representation backs a given list.

type listBase struct {
	diagnostics []diagnostic.Diagnostic
	annotations []*annotation.Annotation
}

func (listBase) Kind() syntaxkind.SyntaxKind { return syntaxkind.KindList }
func (listBase) IsToken() bool                { return false }
func (listBase) IsTrivia() bool               { return false }
func (listBase) IsList() bool                 { return true }
func (listBase) IsMissing() bool              { return false }

func (b listBase) Diagnostics() []diagnostic.Diagnostic  { return b.diagnostics }
func (b listBase) Annotations() []*annotation.Annotation { return b.annotations }

type list1 struct {
	listBase
	c0 Node
}

func (l *list1) SlotCount() int { return 1 }
func (l *list1) Slot(i int) Node {
	if i != 0 {
		panic("green: list1 slot out of range")
	}
	return l.c0
}
func (l *list1) Width() int     { return l.FullWidth() }
func (l *list1) FullWidth() int { return childWidth(l.c0) }
func (l *list1) WithDiagnostics(d []diagnostic.Diagnostic) Node {
	cp := *l
	cp.diagnostics = d
	return &cp
}
func (l *list1) WithAnnotations(a []*annotation.Annotation) Node {
	cp := *l
	cp.annotations = a
	return &cp
}

type list2 struct {
	listBase
	c0, c1 Node
}

func (l *list2) SlotCount() int { return 2 }
func (l *list2) Slot(i int) Node {
	switch i {
	case 0:
		return l.c0
	case 1:
		return l.c1
	default:
		panic("green: list2 slot out of range")
	}
}
func (l *list2) Width() int     { return l.FullWidth() }
func (l *list2) FullWidth() int { return childWidth(l.c0) + childWidth(l.c1) }
func (l *list2) WithDiagnostics(d []diagnostic.Diagnostic) Node {
	cp := *l
	cp.diagnostics = d
	return &cp
}
func (l *list2) WithAnnotations(a []*annotation.Annotation) Node {
	cp := *l
	cp.annotations = a
	return &cp
}

type list3 struct {
	listBase
	c0, c1, c2 Node
}

func (l *list3) SlotCount() int { return 3 }
func (l *list3) Slot(i int) Node {
	switch i {
	case 0:
		return l.c0
	case 1:
		return l.c1
	case 2:
		return l.c2
	default:
		panic("green: list3 slot out of range")
	}
}
func (l *list3) Width() int     { return l.FullWidth() }
func (l *list3) FullWidth() int { return childWidth(l.c0) + childWidth(l.c1) + childWidth(l.c2) }
func (l *list3) WithDiagnostics(d []diagnostic.Diagnostic) Node {
	cp := *l
	cp.diagnostics = d
	return &cp
}
func (l *list3) WithAnnotations(a []*annotation.Annotation) Node {
	cp := *l
	cp.annotations = a
	return &cp
}

// listMany backs lists of four or more children with a slice. Large
// listMany instances are the case spec.md §4.H calls out for
// weak-reference red-tree caching, since re-wrapping every element of
// a long statement list on every tree walk would be wasteful.
type listMany struct {
	listBase
	children []Node
}

func (l *listMany) SlotCount() int { return len(l.children) }
func (l *listMany) Slot(i int) Node {
	return l.children[i]
}
func (l *listMany) Width() int { return l.FullWidth() }
func (l *listMany) FullWidth() int {
	w := 0
	for _, c := range l.children {
		w += childWidth(c)
	}
	return w
}
func (l *listMany) WithDiagnostics(d []diagnostic.Diagnostic) Node {
	cp := *l
	cp.diagnostics = d
	return &cp
}
func (l *listMany) WithAnnotations(a []*annotation.Annotation) Node {
	cp := *l
	cp.annotations = a
	return &cp
}

// NewList builds the smallest list specialization that fits children.
// An empty slice returns nil, so an absent list and an empty list both
// present as "no slot" to callers that treat nil uniformly.
func NewList(children []Node) Node {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return &list1{c0: children[0]}
	case 2:
		return &list2{c0: children[0], c1: children[1]}
	case 3:
		return &list3{c0: children[0], c1: children[1], c2: children[2]}
	default:
		return &listMany{children: append([]Node(nil), children...)}
	}
}

// IsSeparatedList reports whether n looks like a Roslyn-style
// separated list: more than one slot, where every even slot is a
// non-token element and every odd slot is a token separator (commas,
// semicolons). Used by the parser/red layers to decide whether to
// expose element-only or element-and-separator views over a list
// (spec.md §4.D "separated-list heuristic").
func IsSeparatedList(n Node) bool {
	if n == nil || !n.IsList() {
		return false
	}
	count := n.SlotCount()
	if count <= 1 {
		return false
	}
	for i := 0; i < count; i++ {
		c := n.Slot(i)
		if c == nil {
			return false
		}
		isSeparatorSlot := i%2 == 1
		if c.IsToken() != isSeparatorSlot {
			return false
		}
	}
	return true
}

// SeparatedListElements returns the element (non-separator) slots of a
// separated list.
func SeparatedListElements(n Node) []Node {
	count := n.SlotCount()
	out := make([]Node, 0, (count+1)/2)
	for i := 0; i < count; i += 2 {
		out = append(out, n.Slot(i))
	}
	return out
}

// SeparatedListSeparators returns the separator (token) slots of a
// separated list.
func SeparatedListSeparators(n Node) []Node {
	count := n.SlotCount()
	out := make([]Node, 0, count/2)
	for i := 1; i < count; i += 2 {
		out = append(out, n.Slot(i))
	}
	return out
}
