package green

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/loretta-lang/loretta/pkg/annotation"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/syntaxkind"
	"github.com/loretta-lang/loretta/pkg/text"
)

// Wire tags identify which concrete Node representation follows, per
// the binary layout spec.md §6 describes: a one-byte tag, the kind as
// a little-endian uint16, then a tag-specific payload. Lists don't
// need separate tags per arity on the wire — list1/list2/list3 exist
// only to avoid slice allocation in memory; on disk every list is
// written as tagList with an explicit count.
//
// Every record — token, trivia, list, or general node — shares the
// same header after its tag: kind:u16, flags:u8, dxCount:u8, dx*,
// axCount:u8, ax*, then a tag-specific payload; each count is written
// directly before its own items. flags carries the isMissing
// bit for tokens and is reserved (zero) elsewhere. Diagnostics and
// annotations round-trip so equality with the live annotation instance
// holds after deserialization (spec.md §3).
const (
	tagToken byte = iota + 1
	tagTrivia
	tagList
	tagNode
	tagNil
)

const flagMissing = 1 << 0

// value wire tags for a token's parsed literal value.
const (
	valueTagNil byte = iota
	valueTagInt64
	valueTagFloat64
	valueTagString
)

// WriteTo serializes n in Loretta's green-tree wire format and returns
// the number of bytes written. It is a package-level function taking
// the node as an argument, not an io.WriterTo method.
func WriteTo(w io.Writer, n Node) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeNode(cw, n); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func writeNode(w io.Writer, n Node) error {
	if n == nil {
		return writeByte(w, tagNil)
	}
	switch v := n.(type) {
	case *Token:
		return writeToken(w, v)
	case *Trivia:
		return writeTrivia(w, v)
	default:
		if n.IsList() {
			return writeList(w, n)
		}
		return writeGeneralNode(w, n)
	}
}

// writeHeader writes the fields shared by every non-nil record (token,
// trivia, list, general node): kind, flags, then the node's diagnostics
// and annotations.
func writeHeader(w io.Writer, kind syntaxkind.SyntaxKind, flags byte, n Node) error {
	if err := writeUint16(w, uint16(kind)); err != nil {
		return err
	}
	if err := writeByte(w, flags); err != nil {
		return err
	}
	if err := writeDiagnostics(w, n.Diagnostics()); err != nil {
		return err
	}
	return writeAnnotations(w, n.Annotations())
}

func writeToken(w io.Writer, t *Token) error {
	if err := writeByte(w, tagToken); err != nil {
		return err
	}
	var flags byte
	if t.isMissing {
		flags |= flagMissing
	}
	if err := writeHeader(w, t.kind, flags, t); err != nil {
		return err
	}
	if err := writeString(w, t.text); err != nil {
		return err
	}
	if err := writeValue(w, t.value); err != nil {
		return err
	}
	if err := writeTriviaList(w, t.leading); err != nil {
		return err
	}
	return writeTriviaList(w, t.trailing)
}

func writeTrivia(w io.Writer, t *Trivia) error {
	if err := writeByte(w, tagTrivia); err != nil {
		return err
	}
	if err := writeHeader(w, t.kind, 0, t); err != nil {
		return err
	}
	return writeString(w, t.literal)
}

func writeTriviaList(w io.Writer, l *TriviaList) error {
	count := l.Count()
	if err := writeUint32(w, uint32(count)); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := writeTrivia(w, l.Get(i)); err != nil {
			return err
		}
	}
	return nil
}

func writeList(w io.Writer, n Node) error {
	if err := writeByte(w, tagList); err != nil {
		return err
	}
	if err := writeHeader(w, syntaxkind.KindList, 0, n); err != nil {
		return err
	}
	count := n.SlotCount()
	if err := writeUint32(w, uint32(count)); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := writeNode(w, n.Slot(i)); err != nil {
			return err
		}
	}
	return nil
}

func writeGeneralNode(w io.Writer, n Node) error {
	if err := writeByte(w, tagNode); err != nil {
		return err
	}
	if err := writeHeader(w, n.Kind(), 0, n); err != nil {
		return err
	}
	count := n.SlotCount()
	if err := writeUint32(w, uint32(count)); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := writeNode(w, n.Slot(i)); err != nil {
			return err
		}
	}
	return nil
}

// ReadFrom deserializes one Node written by WriteTo.
func ReadFrom(r io.Reader) (Node, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, nil
	case tagToken:
		return readToken(r)
	case tagTrivia:
		return readTrivia(r)
	case tagList:
		return readList(r)
	case tagNode:
		return readGeneralNode(r)
	default:
		return nil, fmt.Errorf("green: unknown wire tag %d", tag)
	}
}

// readHeader reads the fields writeHeader wrote: kind, flags, then
// diagnostics and annotations. Annotations are restored with
// annotation.Restore so their id, and hence their identity, survives
// the round trip.
func readHeader(r io.Reader) (syntaxkind.SyntaxKind, byte, []diagnostic.Diagnostic, []*annotation.Annotation, error) {
	kind, err := readUint16(r)
	if err != nil {
		return 0, 0, nil, nil, err
	}
	flags, err := readByte(r)
	if err != nil {
		return 0, 0, nil, nil, err
	}
	dx, err := readDiagnostics(r)
	if err != nil {
		return 0, 0, nil, nil, err
	}
	ax, err := readAnnotations(r)
	if err != nil {
		return 0, 0, nil, nil, err
	}
	return syntaxkind.SyntaxKind(kind), flags, dx, ax, nil
}

func readToken(r io.Reader) (Node, error) {
	kind, flags, dx, ax, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	txt, err := readString(r)
	if err != nil {
		return nil, err
	}
	value, err := readValue(r)
	if err != nil {
		return nil, err
	}
	leading, err := readTriviaList(r)
	if err != nil {
		return nil, err
	}
	trailing, err := readTriviaList(r)
	if err != nil {
		return nil, err
	}
	return &Token{
		kind: kind, text: txt, value: value, isMissing: flags&flagMissing != 0,
		leading: leading, trailing: trailing,
		diagnostics: dx, annotations: ax,
	}, nil
}

func readTrivia(r io.Reader) (*Trivia, error) {
	kind, _, dx, ax, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	lit, err := readString(r)
	if err != nil {
		return nil, err
	}
	return &Trivia{kind: kind, literal: lit, diagnostics: dx, annotations: ax}, nil
}

func readTriviaList(r io.Reader) (*TriviaList, error) {
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	items := make([]*Trivia, 0, count)
	for i := uint32(0); i < count; i++ {
		t, err := readTrivia(r)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return &TriviaList{items: items}, nil
}

func readList(r io.Reader) (Node, error) {
	_, _, dx, ax, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	children := make([]Node, count)
	for i := uint32(0); i < count; i++ {
		child, err := ReadFrom(r)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	n := NewList(children)
	if n == nil {
		return nil, nil
	}
	if len(dx) > 0 {
		n = n.WithDiagnostics(dx)
	}
	if len(ax) > 0 {
		n = n.WithAnnotations(ax)
	}
	return n, nil
}

func readGeneralNode(r io.Reader) (Node, error) {
	kind, _, dx, ax, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	children := make([]Node, count)
	for i := uint32(0); i < count; i++ {
		child, err := ReadFrom(r)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return &NodeWithChildren{kind: kind, children: children, diagnostics: dx, annotations: ax}, nil
}

// --- diagnostics ---

func writeDiagnostics(w io.Writer, diags []diagnostic.Diagnostic) error {
	if err := writeByte(w, byte(len(diags))); err != nil {
		return err
	}
	for _, d := range diags {
		if err := writeDiagnostic(w, d); err != nil {
			return err
		}
	}
	return nil
}

func readDiagnostics(r io.Reader) ([]diagnostic.Diagnostic, error) {
	count, err := readByte(r)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]diagnostic.Diagnostic, 0, count)
	for i := byte(0); i < count; i++ {
		d, err := readDiagnostic(r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func writeDiagnostic(w io.Writer, d diagnostic.Diagnostic) error {
	if err := writeString(w, d.ID); err != nil {
		return err
	}
	if err := writeByte(w, byte(d.Severity)); err != nil {
		return err
	}
	if err := writeString(w, d.Message); err != nil {
		return err
	}
	if err := writeByte(w, byte(d.Location.Kind)); err != nil {
		return err
	}
	switch d.Location.Kind {
	case diagnostic.LocationSource:
		if err := writeSpan(w, d.Location.Span); err != nil {
			return err
		}
	case diagnostic.LocationExternal:
		if err := writeString(w, d.Location.Path); err != nil {
			return err
		}
		if err := writeSpan(w, d.Location.Span); err != nil {
			return err
		}
		if err := writeFileLinePositionSpan(w, d.Location.Line); err != nil {
			return err
		}
	}
	if err := writeUint32(w, uint32(len(d.CustomTags))); err != nil {
		return err
	}
	for _, tag := range d.CustomTags {
		if err := writeString(w, tag); err != nil {
			return err
		}
	}
	return nil
}

func readDiagnostic(r io.Reader) (diagnostic.Diagnostic, error) {
	var d diagnostic.Diagnostic
	id, err := readString(r)
	if err != nil {
		return d, err
	}
	sev, err := readByte(r)
	if err != nil {
		return d, err
	}
	msg, err := readString(r)
	if err != nil {
		return d, err
	}
	locKind, err := readByte(r)
	if err != nil {
		return d, err
	}
	d.ID = id
	d.Severity = diagnostic.Severity(sev)
	d.Message = msg
	d.Location.Kind = diagnostic.LocationKind(locKind)
	switch d.Location.Kind {
	case diagnostic.LocationSource:
		span, err := readSpan(r)
		if err != nil {
			return d, err
		}
		d.Location.Span = span
	case diagnostic.LocationExternal:
		path, err := readString(r)
		if err != nil {
			return d, err
		}
		span, err := readSpan(r)
		if err != nil {
			return d, err
		}
		line, err := readFileLinePositionSpan(r)
		if err != nil {
			return d, err
		}
		d.Location.Path = path
		d.Location.Span = span
		d.Location.Line = line
	}
	tagCount, err := readUint32(r)
	if err != nil {
		return d, err
	}
	if tagCount > 0 {
		tags := make([]string, 0, tagCount)
		for i := uint32(0); i < tagCount; i++ {
			tag, err := readString(r)
			if err != nil {
				return d, err
			}
			tags = append(tags, tag)
		}
		d.CustomTags = tags
	}
	return d, nil
}

func writeSpan(w io.Writer, s text.TextSpan) error {
	if err := writeUint32(w, uint32(s.Start)); err != nil {
		return err
	}
	return writeUint32(w, uint32(s.Length))
}

func readSpan(r io.Reader) (text.TextSpan, error) {
	start, err := readUint32(r)
	if err != nil {
		return text.TextSpan{}, err
	}
	length, err := readUint32(r)
	if err != nil {
		return text.TextSpan{}, err
	}
	return text.NewTextSpan(int(start), int(length)), nil
}

func writeLinePosition(w io.Writer, p text.LinePosition) error {
	if err := writeUint32(w, uint32(p.Line)); err != nil {
		return err
	}
	return writeUint32(w, uint32(p.Character))
}

func readLinePosition(r io.Reader) (text.LinePosition, error) {
	line, err := readUint32(r)
	if err != nil {
		return text.LinePosition{}, err
	}
	ch, err := readUint32(r)
	if err != nil {
		return text.LinePosition{}, err
	}
	return text.LinePosition{Line: int(line), Character: int(ch)}, nil
}

func writeFileLinePositionSpan(w io.Writer, f text.FileLinePositionSpan) error {
	if err := writeString(w, f.Path); err != nil {
		return err
	}
	if err := writeLinePosition(w, f.Start); err != nil {
		return err
	}
	return writeLinePosition(w, f.End)
}

func readFileLinePositionSpan(r io.Reader) (text.FileLinePositionSpan, error) {
	path, err := readString(r)
	if err != nil {
		return text.FileLinePositionSpan{}, err
	}
	start, err := readLinePosition(r)
	if err != nil {
		return text.FileLinePositionSpan{}, err
	}
	end, err := readLinePosition(r)
	if err != nil {
		return text.FileLinePositionSpan{}, err
	}
	return text.FileLinePositionSpan{Path: path, Start: start, End: end}, nil
}

// --- annotations ---

func writeAnnotations(w io.Writer, anns []*annotation.Annotation) error {
	if err := writeByte(w, byte(len(anns))); err != nil {
		return err
	}
	for _, a := range anns {
		if err := writeAnnotation(w, a); err != nil {
			return err
		}
	}
	return nil
}

func readAnnotations(r io.Reader) ([]*annotation.Annotation, error) {
	count, err := readByte(r)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]*annotation.Annotation, 0, count)
	for i := byte(0); i < count; i++ {
		a, err := readAnnotation(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// writeAnnotation writes an annotation's id verbatim so readAnnotation
// can restore it with annotation.Restore instead of allocating a fresh
// one, preserving identity across the round trip (spec.md §3).
func writeAnnotation(w io.Writer, a *annotation.Annotation) error {
	if err := writeUint64(w, uint64(a.ID())); err != nil {
		return err
	}
	if err := writeString(w, a.Kind()); err != nil {
		return err
	}
	return writeString(w, a.Data())
}

func readAnnotation(r io.Reader) (*annotation.Annotation, error) {
	id, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	kind, err := readString(r)
	if err != nil {
		return nil, err
	}
	data, err := readString(r)
	if err != nil {
		return nil, err
	}
	return annotation.Restore(int64(id), kind, data), nil
}

// --- token value ---

// writeValue serializes a token's parsed literal value: nil for tokens
// with no interesting value (punctuation, keywords), or the int64,
// float64, or string a numeric or string literal's value holds
// (pkg/lexer only ever produces those three).
func writeValue(w io.Writer, v any) error {
	switch val := v.(type) {
	case nil:
		return writeByte(w, valueTagNil)
	case int64:
		if err := writeByte(w, valueTagInt64); err != nil {
			return err
		}
		return writeUint64(w, uint64(val))
	case float64:
		if err := writeByte(w, valueTagFloat64); err != nil {
			return err
		}
		return writeUint64(w, math.Float64bits(val))
	case string:
		if err := writeByte(w, valueTagString); err != nil {
			return err
		}
		return writeString(w, val)
	default:
		return fmt.Errorf("green: cannot serialize token value of type %T", v)
	}
}

func readValue(r io.Reader) (any, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case valueTagNil:
		return nil, nil
	case valueTagInt64:
		bits, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		return int64(bits), nil
	case valueTagFloat64:
		bits, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(bits), nil
	case valueTagString:
		return readString(r)
	default:
		return nil, fmt.Errorf("green: unknown token value tag %d", tag)
	}
}

// --- low-level primitive helpers ---

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func writeUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeString(w io.Writer, s string) error {
	if err := writeUint32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
