package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptySetExcludesNothing(t *testing.T) {
	s, err := Compile(nil)
	require.NoError(t, err)
	assert.False(t, s.Excluded("any/file.txt"))
	assert.Equal(t, 0, s.Len())
}

func TestNilSetExcludesNothing(t *testing.T) {
	var s *Set
	assert.False(t, s.Excluded("any/file.txt"))
	assert.Equal(t, 0, s.Len())
}

func TestSuffixPattern(t *testing.T) {
	s, err := Compile([]string{`\.tmp$`})
	require.NoError(t, err)

	assert.True(t, s.Excluded("a/file.tmp"))
	assert.True(t, s.Excluded("file.tmp"))
	assert.False(t, s.Excluded("a/file.tmp.bak"))
	assert.False(t, s.Excluded("a/file.txt"))
}

func TestSearchAnywhereSemantics(t *testing.T) {
	// Unanchored patterns match any substring of the path.
	s, err := Compile([]string{"cache"})
	require.NoError(t, err)

	assert.True(t, s.Excluded("cache/data.bin"))
	assert.True(t, s.Excluded("a/b/cached.txt"))
	assert.False(t, s.Excluded("a/b/data.bin"))
}

func TestAnyPatternMatches(t *testing.T) {
	s, err := Compile([]string{`\.log$`, `^node_modules/`})
	require.NoError(t, err)

	assert.True(t, s.Excluded("app.log"))
	assert.True(t, s.Excluded("node_modules/pkg/index.js"))
	assert.False(t, s.Excluded("src/node_modules.md"))
	assert.Equal(t, 2, s.Len())
}

func TestMalformedPattern(t *testing.T) {
	_, err := Compile([]string{"valid", "[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[unclosed")
}
