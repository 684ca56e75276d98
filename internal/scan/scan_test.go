package scan

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unpackrr/unpackrr/internal/config"
)

// writeArchive drops a file with a valid BA2 header declaring fileCount
// entries, padded to size bytes.
func writeArchive(t *testing.T, path string, fileCount uint32, size int) {
	t.Helper()
	buf := make([]byte, 0, size)
	buf = append(buf, []byte("BTDX")...)
	buf = binary.LittleEndian.AppendUint32(buf, 1)
	buf = append(buf, []byte("GNRL")...)
	buf = binary.LittleEndian.AppendUint32(buf, fileCount)
	buf = binary.LittleEndian.AppendUint64(buf, 0)
	for len(buf) < size {
		buf = append(buf, 0)
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func TestScanRootDepthAndPostfixes(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, filepath.Join(root, "ModX", "ModX - Main.ba2"), 1, 100)
	writeArchive(t, filepath.Join(root, "ModY", "ModY - main.ba2"), 1, 100)
	writeArchive(t, filepath.Join(root, "ModY", "ModY - Textures.ba2"), 1, 100)
	// Loose file at root level is skipped.
	writeArchive(t, filepath.Join(root, "Loose - Main.ba2"), 1, 100)
	// Third-tier files are never loaded, so never scanned.
	writeArchive(t, filepath.Join(root, "ModX", "nested", "Deep - Main.ba2"), 1, 100)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ModX", "readme.txt"), []byte("hi"), 0o644))

	paths, err := ScanRoot(root, []string{"main.ba2"})
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	sort.Strings(names)
	assert.Equal(t, []string{"ModX - Main.ba2", "ModY - main.ba2"}, names)
}

func TestScanRootSubstringMatchNotAnchored(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, filepath.Join(root, "Mod", "ahelpermod.ba2"), 1, 100)

	paths, err := ScanRoot(root, []string{"mod.ba2"})
	require.NoError(t, err)
	require.Len(t, paths, 1)
}

func TestScanRootMissing(t *testing.T) {
	_, err := ScanRoot(filepath.Join(t.TempDir(), "nope"), []string{"main.ba2"})
	assert.Error(t, err)
}

func TestScanRootNotADirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "afile")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := ScanRoot(file, []string{"main.ba2"})
	assert.Error(t, err)
}

func TestScanRootEmpty(t *testing.T) {
	paths, err := ScanRoot(t.TempDir(), []string{"main.ba2"})
	require.NoError(t, err)
	assert.Empty(t, paths)
}

// Two subfolders with one matching and one non-matching archive each, one
// ignore rule hitting one of the matches.
func TestScanEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, filepath.Join(root, "ModA", "ModA - Main.ba2"), 10, 100)
	writeArchive(t, filepath.Join(root, "ModA", "ModA - Textures.ba2"), 10, 100)
	writeArchive(t, filepath.Join(root, "ModB", "ModB - Main.ba2"), 20, 200)
	writeArchive(t, filepath.Join(root, "ModB", "ModB - Textures.ba2"), 20, 200)

	settings := config.Settings{
		Postfixes: []string{"main.ba2"},
		Ignored:   []string{"ModA - Main"},
	}

	res, err := Scan(context.Background(), root, settings)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 1, res.Ignored)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "ModB - Main.ba2", res.Entries[0].Name)
	assert.Equal(t, "ModB", res.Entries[0].ModFolder)
	assert.Equal(t, int64(20), res.Entries[0].FileCount)
}

// Repeated scans over an unchanged tree yield identical inventories.
func TestScanIdempotent(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, filepath.Join(root, "ModA", "A - Main.ba2"), 1, 300)
	writeArchive(t, filepath.Join(root, "ModB", "B - Main.ba2"), 2, 100)
	writeArchive(t, filepath.Join(root, "ModC", "C - Main.ba2"), 3, 200)

	settings := config.Settings{Postfixes: []string{"main.ba2"}}

	first, err := Scan(context.Background(), root, settings)
	require.NoError(t, err)
	second, err := Scan(context.Background(), root, settings)
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
	require.Len(t, first.Entries, 3)
	assert.Equal(t, "B - Main.ba2", first.Entries[0].Name)
	assert.Equal(t, "C - Main.ba2", first.Entries[1].Name)
	assert.Equal(t, "A - Main.ba2", first.Entries[2].Name)
}
