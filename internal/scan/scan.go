// Package scan discovers BA2 archives in a mod folder, filters them against
// the user's ignore rules, and builds a size-sorted inventory used for
// threshold selection.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/unpackrr/unpackrr/internal/config"
)

// ScanRoot lists candidate archives under root. Only second-tier files are
// considered (root -> mod folder -> file), since the game never loads
// archives nested any deeper. A file qualifies when its lowercase name
// contains one of the lowercase postfixes as a substring.
//
// The returned paths are in filesystem enumeration order; callers must not
// rely on it.
func ScanRoot(root string, postfixes []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan root %s: %w", root, err)
	}

	lowered := make([]string, len(postfixes))
	for i, p := range postfixes {
		lowered[i] = strings.ToLower(p)
	}

	var paths []string
	for _, d := range entries {
		// Loose files at the root level are never loaded by the game.
		if !d.IsDir() {
			continue
		}
		modDir := filepath.Join(root, d.Name())
		files, err := os.ReadDir(modDir)
		if err != nil {
			// An unreadable mod folder skips only that folder.
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			name := strings.ToLower(f.Name())
			for _, p := range lowered {
				if strings.Contains(name, p) {
					paths = append(paths, filepath.Join(modDir, f.Name()))
					break
				}
			}
		}
	}
	return paths, nil
}

// Scan discovers, filters, and inventories archives under root in one pass.
func Scan(ctx context.Context, root string, settings config.Settings, opts ...Option) (Result, error) {
	paths, err := ScanRoot(root, settings.Postfixes)
	if err != nil {
		return Result{}, err
	}

	opts = append([]Option{WithBadFileTracking(settings.IgnoreBadFiles)}, opts...)
	b := NewBuilder(opts...)
	return b.Build(ctx, paths, NewIgnoreList(settings.Ignored))
}
