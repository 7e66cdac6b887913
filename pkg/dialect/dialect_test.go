package dialect_test

import (
	"testing"

	"github.com/loretta-lang/loretta/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForVersionLua51HasNoModernFeatures(t *testing.T) {
	o := dialect.ForVersion(dialect.Lua51)
	assert.False(t, o.GotoAndLabels)
	assert.False(t, o.BitwiseOperators)
	assert.False(t, o.FloorDivision)
	assert.False(t, o.Attributes)
	assert.False(t, o.Continue)
}

func TestForVersionLua54HasAllReferenceFeatures(t *testing.T) {
	o := dialect.ForVersion(dialect.Lua54)
	assert.True(t, o.GotoAndLabels)
	assert.True(t, o.BitwiseOperators)
	assert.True(t, o.FloorDivision)
	assert.True(t, o.Attributes)
	assert.True(t, o.IntegerSubtype)
	assert.False(t, o.Continue)
}

func TestForVersionGLuaEnablesContinueNotAttributes(t *testing.T) {
	o := dialect.ForVersion(dialect.GLua)
	assert.True(t, o.Continue)
	assert.False(t, o.Attributes)
}

func TestDefaultIsLua54(t *testing.T) {
	assert.Equal(t, dialect.Lua54, dialect.Default().Version)
}

func TestVersionIsValid(t *testing.T) {
	assert.True(t, dialect.Lua53.IsValid())
	assert.True(t, dialect.FiveM.IsValid())
	assert.False(t, dialect.Version("6.0").IsValid())
}

func TestYAMLRoundTrip(t *testing.T) {
	o := dialect.ForVersion(dialect.Lua53)
	data, err := o.ToYAML()
	require.NoError(t, err)

	got, err := dialect.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, o, got)
}
