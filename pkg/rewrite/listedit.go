package rewrite

import "github.com/loretta-lang/loretta/pkg/green"

// The green tree is immutable, so every list mutator here takes a list
// (possibly nil, for an absent/empty list) and returns a brand new
// list node reflecting the edit; it never changes the input in place.
// This mirrors the teacher's TextEdit-accumulation style applied one
// level up, to child slots instead of source bytes.

func listSlice(list green.Node) []green.Node {
	if list == nil {
		return nil
	}
	return green.Children(list)
}

// Add appends child to the end of list.
func Add(list green.Node, child green.Node) green.Node {
	return green.NewList(append(listSlice(list), child))
}

// Insert places child at index i, shifting later elements right.
// Panics if i is out of [0, Count].
func Insert(list green.Node, i int, child green.Node) green.Node {
	return InsertRange(list, i, []green.Node{child})
}

// InsertRange places children starting at index i.
func InsertRange(list green.Node, i int, children []green.Node) green.Node {
	cur := listSlice(list)
	if i < 0 || i > len(cur) {
		panic("rewrite: Insert index out of range")
	}
	out := make([]green.Node, 0, len(cur)+len(children))
	out = append(out, cur[:i]...)
	out = append(out, children...)
	out = append(out, cur[i:]...)
	return green.NewList(out)
}

// RemoveAt removes the element at index i.
func RemoveAt(list green.Node, i int) green.Node {
	cur := listSlice(list)
	if i < 0 || i >= len(cur) {
		panic("rewrite: RemoveAt index out of range")
	}
	out := make([]green.Node, 0, len(cur)-1)
	out = append(out, cur[:i]...)
	out = append(out, cur[i+1:]...)
	return green.NewList(out)
}

// Remove removes the first element equal to child by pointer identity.
// Returns list unchanged if child is not found.
func Remove(list green.Node, child green.Node) green.Node {
	cur := listSlice(list)
	for i, c := range cur {
		if c == child {
			return RemoveAt(list, i)
		}
	}
	return list
}

// Replace substitutes the element at index i with child.
func Replace(list green.Node, i int, child green.Node) green.Node {
	return ReplaceRange(list, i, i+1, []green.Node{child})
}

// ReplaceRange substitutes the elements in [start, end) with children.
func ReplaceRange(list green.Node, start, end int, children []green.Node) green.Node {
	cur := listSlice(list)
	if start < 0 || end > len(cur) || start > end {
		panic("rewrite: ReplaceRange indices out of range")
	}
	out := make([]green.Node, 0, len(cur)-(end-start)+len(children))
	out = append(out, cur[:start]...)
	out = append(out, children...)
	out = append(out, cur[end:]...)
	return green.NewList(out)
}
