package scan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sizedEntries builds n entries with sizes 1000, 1001, ... ascending.
func sizedEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{
			Name: fmt.Sprintf("Mod%04d - Main.ba2", i),
			Size: int64(1000 + i),
			Path: fmt.Sprintf("/mods/Mod%04d/Mod%04d - Main.ba2", i, i),
		}
	}
	return entries
}

func TestAutoThresholdBoundary(t *testing.T) {
	entries := sizedEntries(300)

	threshold, ok := AutoThreshold(entries, DefaultKeepLimit)
	require.True(t, ok)
	assert.Equal(t, entries[300-235].Size, threshold)

	selected := FilterAtOrBelow(entries, threshold)
	assert.Len(t, selected, 66)
	assert.Equal(t, entries[:66], selected)
}

func TestAutoThresholdUnavailable(t *testing.T) {
	_, ok := AutoThreshold(sizedEntries(200), DefaultKeepLimit)
	assert.False(t, ok)

	_, ok = AutoThreshold(sizedEntries(235), DefaultKeepLimit)
	assert.False(t, ok)

	_, ok = AutoThreshold(nil, DefaultKeepLimit)
	assert.False(t, ok)
}

func TestAutoThresholdDeterministic(t *testing.T) {
	entries := sizedEntries(240)

	a, okA := AutoThreshold(entries, DefaultKeepLimit)
	b, okB := AutoThreshold(entries, DefaultKeepLimit)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}

// Ties straddling the boundary are selected as-is, no tie-breaking.
func TestAutoThresholdBoundaryTies(t *testing.T) {
	entries := sizedEntries(240)
	boundary := 240 - 235
	// Flatten a run of sizes around the boundary while keeping the
	// inventory sorted.
	for i := boundary - 2; i <= boundary+2; i++ {
		entries[i].Size = entries[boundary+2].Size
	}

	threshold, ok := AutoThreshold(entries, 235)
	require.True(t, ok)
	assert.Equal(t, entries[boundary].Size, threshold)
	assert.Len(t, FilterAtOrBelow(entries, threshold), boundary+3)
}

func TestFilterAtOrBelow(t *testing.T) {
	entries := sizedEntries(10)

	assert.Len(t, FilterAtOrBelow(entries, 1004), 5)
	assert.Empty(t, FilterAtOrBelow(entries, 0))
	assert.Len(t, FilterAtOrBelow(entries, 999_999), 10)
}

func TestFilterAtOrBelowInvalidSentinel(t *testing.T) {
	assert.Empty(t, FilterAtOrBelow(sizedEntries(10), -1))
}
