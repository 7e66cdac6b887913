// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldPaths  = "paths"
	FieldSource = "source"

	// Dialect fields.
	FieldDialect = "dialect"
	FieldFeature = "feature"

	// Lexer/parser fields.
	FieldKind         = "kind"
	FieldSpan         = "span"
	FieldOffset       = "offset"
	FieldLine         = "line"
	FieldColumn       = "column"
	FieldLexemeWidth  = "lexeme_width"
	FieldTokenText    = "token_text"
	FieldExpectedKind = "expected_kind"

	// Diagnostic fields.
	FieldDiagnosticID = "diagnostic_id"
	FieldSeverity     = "severity"
	FieldMessage      = "message"

	// Cache fields.
	FieldCacheHits   = "cache_hits"
	FieldCacheMisses = "cache_misses"
	FieldCacheSize   = "cache_size"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
