package text

import "sort"

const (
	lineSeparator      = 0x2028
	paragraphSeparator = 0x2029
)

// lineBreakLength returns the length, in UTF-16 code units, of the line
// break starting at units[i], or 0 if there is none.
func lineBreakLength(units []uint16, i int) int {
	switch units[i] {
	case '\r':
		if i+1 < len(units) && units[i+1] == '\n' {
			return 2
		}
		return 1
	case '\n', lineSeparator, paragraphSeparator:
		return 1
	default:
		return 0
	}
}

// LineIndex maps byte/char offsets to (line, column) pairs and back. It is
// built by a single pass over the code units, recognizing \n, \r, \r\n,
// and the Unicode line/paragraph separators (spec.md §4.A).
//
// Invariants: starts[0] == 0, starts[i] < starts[i+1], and breakLengths
// has one entry per line, the last of which is 0.
type LineIndex struct {
	starts       []int
	breakLengths []int // length of the line break ending this line (0 for the last line)
	length       int
}

// NewLineIndex builds a LineIndex over the given UTF-16 code units.
func NewLineIndex(units []uint16) *LineIndex {
	idx := &LineIndex{length: len(units)}
	idx.starts = append(idx.starts, 0)

	i := 0
	for i < len(units) {
		brk := lineBreakLength(units, i)
		if brk == 0 {
			i++
			continue
		}
		i += brk
		idx.breakLengths = append(idx.breakLengths, brk)
		idx.starts = append(idx.starts, i)
	}
	// Final, possibly-unterminated line.
	idx.breakLengths = append(idx.breakLengths, 0)

	return idx
}

// LineCount returns the number of lines (always >= 1).
func (idx *LineIndex) LineCount() int {
	return len(idx.starts)
}

// LineStart returns the start offset of the given 0-based line number.
func (idx *LineIndex) LineStart(line int) (int, error) {
	if line < 0 || line >= len(idx.starts) {
		return 0, &RangeError{Op: "LineStart", Message: "line number out of range"}
	}
	return idx.starts[line], nil
}

// LineBreakLength returns the length of the line break terminating the
// given 0-based line (0 if the line has no terminator, i.e. it is the
// last line).
func (idx *LineIndex) LineBreakLength(line int) (int, error) {
	if line < 0 || line >= len(idx.breakLengths) {
		return 0, &RangeError{Op: "LineBreakLength", Message: "line number out of range"}
	}
	return idx.breakLengths[line], nil
}

// LineEnd returns the offset just past the line's content, excluding its
// terminator.
func (idx *LineIndex) LineEnd(line int) (int, error) {
	_, err := idx.LineStart(line)
	if err != nil {
		return 0, err
	}
	end, err := idx.LineEndIncludingBreak(line)
	if err != nil {
		return 0, err
	}
	brk, _ := idx.LineBreakLength(line)
	return end - brk, nil
}

// LineEndIncludingBreak returns the offset just past the line's
// terminator (or just past the content, for the final unterminated line).
func (idx *LineIndex) LineEndIncludingBreak(line int) (int, error) {
	if line < 0 || line >= len(idx.starts) {
		return 0, &RangeError{Op: "LineEndIncludingBreak", Message: "line number out of range"}
	}
	if line == len(idx.starts)-1 {
		return idx.length, nil
	}
	return idx.starts[line+1], nil
}

// LineNumber returns the 0-based line number containing offset, found by
// binary search on the starts array.
func (idx *LineIndex) LineNumber(offset int) (int, error) {
	if offset < 0 || offset > idx.length {
		return 0, &RangeError{Op: "LineNumber", Message: "offset out of range"}
	}
	n := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > offset
	})
	return n - 1, nil
}

// LinePosition converts an absolute offset into a (line, character) pair.
func (idx *LineIndex) LinePosition(offset int) (LinePosition, error) {
	line, err := idx.LineNumber(offset)
	if err != nil {
		return LinePosition{}, err
	}
	return LinePosition{Line: line, Character: offset - idx.starts[line]}, nil
}

// Offset converts a (line, character) pair back into an absolute offset.
func (idx *LineIndex) Offset(pos LinePosition) (int, error) {
	if pos.Line < 0 || pos.Line >= len(idx.starts) {
		return 0, &RangeError{Op: "Offset", Message: "line number out of range"}
	}
	if pos.Character < 0 {
		return 0, &RangeError{Op: "Offset", Message: "character out of range"}
	}
	return idx.starts[pos.Line] + pos.Character, nil
}
