package render

import (
	"fmt"
	"strings"

	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/text"
)

// FormatDiagnostic formats one diagnostic against src for terminal
// output: `path:line:col  severity  message  (ID)` followed by a
// source-context line and caret when the diagnostic carries a
// LocationSource span. path may be empty for an in-memory buffer.
func (s *Styles) FormatDiagnostic(src *text.SourceText, path string, d diagnostic.Diagnostic) string {
	var b strings.Builder

	location := path
	if d.Location.Kind == diagnostic.LocationSource {
		if pos, err := src.LineIndex().LinePosition(d.Location.Span.Start); err == nil {
			location = fmt.Sprintf("%s:%d:%d", path, pos.Line+1, pos.Character+1)
		}
	}

	fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
		s.Location.Render(location),
		s.FormatSeverity(d.Severity),
		s.Message.Render(d.Message),
		s.DiagID.Render("("+d.ID+")"),
	)

	if d.Location.Kind == diagnostic.LocationSource {
		if line, col, ok := sourceLineAndColumn(src, d.Location.Span.Start); ok {
			b.WriteString(s.FormatSourceContext(line, col))
		}
	}
	return b.String()
}

// FormatSeverity returns a styled severity label.
func (s *Styles) FormatSeverity(sev diagnostic.Severity) string {
	switch sev {
	case diagnostic.Error:
		return s.Error.Render("error")
	case diagnostic.Warning:
		return s.Warning.Render("warning")
	case diagnostic.Info, diagnostic.Hidden:
		return s.Info.Render(sev.String())
	default:
		return sev.String()
	}
}

// FormatSourceContext renders line with a caret under the given
// 1-based column, truncating a line that would overflow the terminal
// width so the caret still lands under the right character.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "
	maxWidth := terminalWidth(120) - len(indent)
	line, column = truncateAroundColumn(line, column, maxWidth)

	var b strings.Builder
	b.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		b.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return b.String()
}

// truncateAroundColumn keeps a window of maxWidth runes around column
// when line is too long to fit, adjusting column to stay valid within
// the truncated window.
func truncateAroundColumn(line string, column, maxWidth int) (string, int) {
	runes := []rune(line)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return line, column
	}
	start := column - maxWidth/2
	if start < 0 {
		start = 0
	}
	if start+maxWidth > len(runes) {
		start = len(runes) - maxWidth
	}
	return string(runes[start : start+maxWidth]), column - start
}

func sourceLineAndColumn(src *text.SourceText, offset int) (string, int, bool) {
	lineNo, err := src.LineIndex().LineNumber(offset)
	if err != nil {
		return "", 0, false
	}
	tl, err := src.Line(lineNo)
	if err != nil {
		return "", 0, false
	}
	pos, err := src.LineIndex().LinePosition(offset)
	if err != nil {
		return "", 0, false
	}
	return tl.Text(), pos.Character + 1, true
}
