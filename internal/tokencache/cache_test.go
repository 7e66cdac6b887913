package tokencache_test

import (
	"testing"

	"github.com/loretta-lang/loretta/internal/tokencache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndLookup(t *testing.T) {
	c := tokencache.New[int](16)
	c.Add("while", 7, 42)

	v, ok := c.Lookup("while", 7)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = c.Lookup("while", 8) // different kind, same text
	assert.False(t, ok)

	_, ok = c.Lookup("nope", 7)
	assert.False(t, ok)
}

func TestLookupMissOnEmptyCache(t *testing.T) {
	c := tokencache.New[string](8)
	_, ok := c.Lookup("x", 0)
	assert.False(t, ok)
}

func TestTextLongerThanMaxCachedWidthNeverCached(t *testing.T) {
	c := tokencache.New[int](8)
	long := make([]byte, tokencache.MaxCachedWidth+1)
	for i := range long {
		long[i] = 'a'
	}
	c.Add(string(long), 1, 99)
	_, ok := c.Lookup(string(long), 1)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	c := tokencache.New[int](10)
	assert.Equal(t, 16, c.Cap())
}

func TestOverwriteSameKeyUpdatesValue(t *testing.T) {
	c := tokencache.New[int](8)
	c.Add("end", 3, 1)
	c.Add("end", 3, 2)
	v, ok := c.Lookup("end", 3)
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestEvictionUnderCollisionPressure(t *testing.T) {
	c := tokencache.New[int](4)
	for i := 0; i < 64; i++ {
		c.Add(string(rune('a'+i%26))+string(rune('A'+i%26)), uint16(i), i)
	}
	assert.LessOrEqual(t, c.Len(), c.Cap())
}
