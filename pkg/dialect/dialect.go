// Package dialect describes which Lua grammar and lexical features are
// active for a parse: the reference Lua versions 5.1 through 5.4, plus
// LuaJIT and the GLua/FiveM derivatives (spec.md §3, §5).
package dialect

import "github.com/loretta-lang/loretta/internal/logging"

// Version names a Lua language generation.
type Version string

const (
	Lua51   Version = "5.1"
	Lua52   Version = "5.2"
	Lua53   Version = "5.3"
	Lua54   Version = "5.4"
	LuaJIT  Version = "jit"
	GLua    Version = "glua"
	FiveM   Version = "fivem"
)

// IsValid reports whether v is a recognized dialect version.
func (v Version) IsValid() bool {
	switch v {
	case Lua51, Lua52, Lua53, Lua54, LuaJIT, GLua, FiveM:
		return true
	default:
		return false
	}
}

// Options is the resolved set of feature flags governing lexing and
// parsing for one dialect. Options is pure data: constructing it from a
// Version is the only place dialect-to-feature mapping happens, so the
// lexer/parser only ever branch on individual flags, never on Version
// itself (spec.md §5 "dialect-gated grammar differences").
type Options struct {
	// Version is the dialect this Options was derived from. Kept for
	// diagnostics and round-tripping, not consulted by the lexer/parser.
	Version Version `yaml:"version"`

	// GotoAndLabels enables `goto` and `::label::` (5.2+).
	GotoAndLabels bool `yaml:"goto_and_labels"`
	// BitwiseOperators enables `& | ~ << >>` as binary/unary operators (5.3+).
	BitwiseOperators bool `yaml:"bitwise_operators"`
	// FloorDivision enables the `//` operator (5.3+).
	FloorDivision bool `yaml:"floor_division"`
	// Attributes enables `<const>` / `<close>` local-variable attributes (5.4+).
	Attributes bool `yaml:"attributes"`
	// IntegerSubtype enables the integer/float numeric subtype distinction (5.3+).
	IntegerSubtype bool `yaml:"integer_subtype"`
	// Continue enables the `continue` statement keyword (GLua/FiveM).
	Continue bool `yaml:"continue"`
	// HexFloats enables hexadecimal floating-point literals (5.2+).
	HexFloats bool `yaml:"hex_floats"`
}

// ForVersion returns the Options a reference implementation of v would
// use, with every feature flag it is old enough to support turned on.
func ForVersion(v Version) Options {
	if !v.IsValid() {
		logging.Default().Warn("unrecognized dialect version, falling back to no feature flags", logging.FieldDialect, v)
	}
	o := Options{Version: v}
	switch v {
	case Lua51:
		// no goto/labels, no bitwise ops, no floor division, no attributes
	case Lua52:
		o.GotoAndLabels = true
		o.HexFloats = true
	case Lua53:
		o.GotoAndLabels = true
		o.HexFloats = true
		o.BitwiseOperators = true
		o.FloorDivision = true
		o.IntegerSubtype = true
	case Lua54:
		o.GotoAndLabels = true
		o.HexFloats = true
		o.BitwiseOperators = true
		o.FloorDivision = true
		o.IntegerSubtype = true
		o.Attributes = true
	case LuaJIT:
		// LuaJIT tracks the 5.1 grammar plus goto/labels (backported).
		o.GotoAndLabels = true
		o.HexFloats = true
	case GLua:
		o.GotoAndLabels = true
		o.HexFloats = true
		o.Continue = true
	case FiveM:
		o.GotoAndLabels = true
		o.HexFloats = true
		o.BitwiseOperators = true
		o.FloorDivision = true
		o.IntegerSubtype = true
		o.Continue = true
	}
	return o
}

// Default is the Options new callers get when they don't care about
// dialect selection: Lua 5.4, the newest reference grammar.
func Default() Options {
	return ForVersion(Lua54)
}

// Clone returns a deep copy of o. Options currently has no reference
// fields, so this is a value copy, but the method exists so callers
// don't need to know that.
func (o Options) Clone() Options {
	return o
}
