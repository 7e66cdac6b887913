// Package diagnostic defines the Diagnostic value shape shared by the
// green and red tree layers (spec.md §3, §7).
package diagnostic

import (
	"fmt"

	"github.com/loretta-lang/loretta/pkg/text"
)

// Severity classifies how serious a Diagnostic is.
type Severity int

const (
	Hidden Severity = iota
	Info
	Warning
	Error
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// LocationKind distinguishes where a Diagnostic's Location points.
type LocationKind int

const (
	// LocationNone means the diagnostic has no attached position.
	LocationNone LocationKind = iota
	// LocationSource means the diagnostic is anchored to a span within
	// the tree it was produced against (resolved lazily against the red
	// tree, since green nodes carry no tree reference).
	LocationSource
	// LocationExternal means the diagnostic references a path outside
	// the current tree (e.g. an included/required file).
	LocationExternal
)

// Location is a tagged union over the three location kinds spec.md §3
// describes.
type Location struct {
	Kind LocationKind
	Span text.TextSpan               // valid when Kind == LocationSource
	Path string                      // valid when Kind == LocationExternal
	Line text.FileLinePositionSpan   // valid when Kind == LocationExternal
}

// NoneLocation returns a Location carrying no position.
func NoneLocation() Location {
	return Location{Kind: LocationNone}
}

// SourceLocation returns a Location anchored to span within the current
// tree.
func SourceLocation(span text.TextSpan) Location {
	return Location{Kind: LocationSource, Span: span}
}

// ExternalLocation returns a Location referencing a path outside the
// current tree.
func ExternalLocation(path string, span text.TextSpan, line text.FileLinePositionSpan) Location {
	return Location{Kind: LocationExternal, Path: path, Span: span, Line: line}
}

// Diagnostic is a single lexical, syntactic, or metadata-validation
// finding (spec.md §3, §6, §7).
type Diagnostic struct {
	ID         string
	Severity   Severity
	Message    string
	Location   Location
	CustomTags []string
}

// New builds a Diagnostic anchored to a source span.
func New(id string, severity Severity, message string, span text.TextSpan) Diagnostic {
	return Diagnostic{ID: id, Severity: severity, Message: message, Location: SourceLocation(span)}
}

// WithTags returns a copy of d carrying the given custom tags.
func (d Diagnostic) WithTags(tags ...string) Diagnostic {
	d.CustomTags = append([]string(nil), tags...)
	return d
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.ID, d.Severity, d.Message)
}
