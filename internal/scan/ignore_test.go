package scan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoredFullPathMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ba2")
	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	l := NewIgnoreList([]string{abs})
	assert.True(t, l.Ignored(path))
	assert.False(t, l.Ignored(filepath.Join(filepath.Dir(path), "b.ba2")))
}

func TestIgnoredRegexRule(t *testing.T) {
	l := NewIgnoreList([]string{"/abs/path/a.ba2", "{.*[dD]iamond.*}"})

	assert.True(t, l.Ignored("/mods/DC/DiamondCityMod - Main.ba2"))
	assert.True(t, l.Ignored("/other/place/diamond.ba2"))
	assert.False(t, l.Ignored("/mods/DC/PearlCityMod - Main.ba2"))
}

func TestIgnoredRegexMustCoverWholeName(t *testing.T) {
	l := NewIgnoreList([]string{"{[0-9]+}"})

	assert.True(t, l.Ignored("/mods/m/12345"))
	// Partial match is not enough for the regex rule, and "[0-9]+" is not a
	// substring of the name either.
	assert.False(t, l.Ignored("/mods/m/mod12345.ba2"))
}

func TestIgnoredSubstringRule(t *testing.T) {
	l := NewIgnoreList([]string{"Textures"})

	assert.True(t, l.Ignored("/mods/m/Mod - Textures.ba2"))
	assert.False(t, l.Ignored("/mods/m/Mod - Main.ba2"))
}

// A rule with invalid regex syntax between braces degrades to a plain
// substring check on the raw string, braces included.
func TestIgnoredMalformedRegexFallsThrough(t *testing.T) {
	l := NewIgnoreList([]string{"{[broken}"})

	assert.False(t, l.Ignored("/mods/m/Mod - Main.ba2"))
	assert.True(t, l.Ignored("/mods/m/weird{[broken}name.ba2"))
}

func TestIgnoredBracesOutOfOrder(t *testing.T) {
	// "}" before "{": the regex is built from text after the first "{".
	l := NewIgnoreList([]string{"}.*{Diamond.*}"})

	assert.True(t, l.Ignored("/mods/m/DiamondCity.ba2"))
}

func TestIgnoredEmptyList(t *testing.T) {
	l := NewIgnoreList(nil)
	assert.False(t, l.Ignored("/mods/m/Mod - Main.ba2"))
	assert.Zero(t, l.Len())
}
