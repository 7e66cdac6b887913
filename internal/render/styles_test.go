package render_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loretta-lang/loretta/internal/render"
)

func TestNewStylesColorEnabled(t *testing.T) {
	styles := render.NewStyles(true)
	require.NotNil(t, styles)
	assert.NotNil(t, styles.Bold)
	assert.NotNil(t, styles.Error)
	assert.NotNil(t, styles.Warning)
	assert.NotNil(t, styles.Info)
}

func TestNewStylesColorDisabled(t *testing.T) {
	styles := render.NewStyles(false)
	require.NotNil(t, styles)

	rendered := styles.Bold.Render("test")
	assert.Equal(t, "test", rendered)

	rendered = styles.Error.Render("test")
	assert.Equal(t, "test", rendered)
}

func TestIsColorEnabledAlwaysMode(t *testing.T) {
	assert.True(t, render.IsColorEnabled("always", &bytes.Buffer{}))
}

func TestIsColorEnabledNeverMode(t *testing.T) {
	assert.False(t, render.IsColorEnabled("never", os.Stdout))
}

func TestIsColorEnabledAutoModeNonTTY(t *testing.T) {
	assert.False(t, render.IsColorEnabled("auto", &bytes.Buffer{}))
}

func TestIsColorEnabledAutoModeRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, render.IsColorEnabled("auto", os.Stdout))
}
