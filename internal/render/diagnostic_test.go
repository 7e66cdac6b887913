package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loretta-lang/loretta/internal/render"
	"github.com/loretta-lang/loretta/pkg/diagnostic"
	"github.com/loretta-lang/loretta/pkg/text"
)

func TestFormatDiagnosticBasic(t *testing.T) {
	styles := render.NewStyles(false)
	src := text.New("local x = 1\nreturn x +\n")

	d := diagnostic.New(diagnostic.IDExpectedExpression, diagnostic.Error,
		"expected an expression", text.NewTextSpan(22, 1))

	result := styles.FormatDiagnostic(src, "test.lua", d)

	assert.Contains(t, result, "test.lua:2:11")
	assert.Contains(t, result, "error")
	assert.Contains(t, result, "expected an expression")
	assert.Contains(t, result, "(LOPS0002)")
}

func TestFormatDiagnosticShowsSourceContextWithCaret(t *testing.T) {
	styles := render.NewStyles(false)
	src := text.New("return x +\n")

	d := diagnostic.New(diagnostic.IDExpectedExpression, diagnostic.Error,
		"expected an expression", text.NewTextSpan(10, 1))

	result := styles.FormatDiagnostic(src, "test.lua", d)
	assert.Contains(t, result, "return x +")
	assert.Contains(t, result, "^")
}

func TestFormatSourceContextTruncatesLongLines(t *testing.T) {
	styles := render.NewStyles(false)
	line := strings.Repeat("x", 500) + "HERE" + strings.Repeat("y", 500)
	result := styles.FormatSourceContext(line, 503)
	assert.Less(t, len(result), len(line))
	assert.Contains(t, result, "HERE")
	assert.Contains(t, result, "^")
}

func TestFormatSeverityLabels(t *testing.T) {
	styles := render.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(diagnostic.Error))
	assert.Equal(t, "warning", styles.FormatSeverity(diagnostic.Warning))
	assert.Equal(t, "info", styles.FormatSeverity(diagnostic.Info))
}
