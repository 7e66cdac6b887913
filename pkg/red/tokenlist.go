package red

// TokenList is a read-only, positionally-aware view over a list of
// sibling tokens (e.g. a parameter list's identifiers, or a separated
// list's elements when they all happen to be tokens). It wraps the
// list's red Node so every element is resolved lazily through the same
// child-materialization path as any other node (spec.md §4.H).
type TokenList struct {
	list *Node
}

// NewTokenList wraps list, which may be nil (an absent or empty list).
func NewTokenList(list *Node) TokenList {
	return TokenList{list: list}
}

// Count is the number of token slots in the list.
func (l TokenList) Count() int {
	if l.list == nil {
		return 0
	}
	return l.list.SlotCount()
}

// Get returns the token at index i as a red Node.
func (l TokenList) Get(i int) *Node {
	return l.list.ChildNode(i)
}

// First returns the first token, or nil if the list is empty.
func (l TokenList) First() *Node {
	if l.Count() == 0 {
		return nil
	}
	return l.Get(0)
}

// Last returns the last token, or nil if the list is empty.
func (l TokenList) Last() *Node {
	count := l.Count()
	if count == 0 {
		return nil
	}
	return l.Get(count - 1)
}

// Any reports whether the list has at least one element.
func (l TokenList) Any() bool { return l.Count() > 0 }

// IndexOf returns the index of the first token whose green text equals
// text, or -1 if none matches.
func (l TokenList) IndexOf(text string) int {
	for i := 0; i < l.Count(); i++ {
		if tok, ok := l.Get(i).Green().(interface{ Text() string }); ok && tok.Text() == text {
			return i
		}
	}
	return -1
}

// All materializes every element as a slice.
func (l TokenList) All() []*Node {
	count := l.Count()
	out := make([]*Node, count)
	for i := 0; i < count; i++ {
		out[i] = l.Get(i)
	}
	return out
}
