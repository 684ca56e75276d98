// Package unpack runs the batch operations that mutate the mod folder:
// extracting archives below the threshold and validating archives with the
// external tool.
//
// Batches are strictly sequential. Every archive gets a verdict; per-file
// failures are counted and reported, never propagated as batch errors. The
// filesystem for one archive is only touched after that archive's verdict
// is decided.
package unpack

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/unpackrr/unpackrr/internal/bsarch"
	"github.com/unpackrr/unpackrr/internal/config"
	"github.com/unpackrr/unpackrr/internal/scan"
)

// ItemResult is the verdict for a single archive in a batch.
type ItemResult struct {
	Entry scan.Entry
	Err   error
}

// Result aggregates a batch extraction pass.
type Result struct {
	Extracted int `json:"extracted"`
	Failed    int `json:"failed"`
	// BadFiles holds absolute paths of archives that failed extraction,
	// collected only when the ignore-bad-files policy is on.
	BadFiles []string `json:"bad_files,omitempty"`
}

// Option configures an Extractor or Checker.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

func newOptions(opts []Option) options {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Extractor unpacks archives one by one and then backs up or deletes each
// source, per the settings snapshot it was created with.
type Extractor struct {
	runner   *bsarch.Runner
	settings config.Settings
	log      *slog.Logger
}

// NewExtractor creates an Extractor. The settings are a read-only snapshot
// for the lifetime of every batch it runs.
func NewExtractor(runner *bsarch.Runner, settings config.Settings, opts ...Option) *Extractor {
	o := newOptions(opts)
	return &Extractor{runner: runner, settings: settings, log: o.log}
}

// Run processes entries in order, invoking onItem with each verdict as it
// is decided. The only batch-level error is a cancelled context, returned
// alongside the counts accumulated so far.
func (e *Extractor) Run(ctx context.Context, entries []scan.Entry, onItem func(ItemResult)) (Result, error) {
	var res Result
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		err := e.extractOne(ctx, entry)
		if err != nil {
			res.Failed++
			e.recordBad(&res, entry.Path)
			e.log.Warn("failed to extract archive", "path", entry.Path, "error", err)
		} else {
			res.Extracted++
		}
		if onItem != nil {
			onItem(ItemResult{Entry: entry, Err: err})
		}
	}
	return res, nil
}

func (e *Extractor) extractOne(ctx context.Context, entry scan.Entry) error {
	if err := e.runner.Extract(ctx, entry.Path, e.destinationFor(entry.Path)); err != nil {
		return err
	}
	// The source archive is only touched once extraction succeeded.
	if e.settings.AutoBackup {
		return e.backup(entry.Path)
	}
	if err := os.Remove(entry.Path); err != nil {
		return fmt.Errorf("failed to remove archive after extraction: %w", err)
	}
	return nil
}

// destinationFor resolves the extraction directory: an absolute override, a
// path relative to the archive's folder, or the archive's folder itself.
func (e *Extractor) destinationFor(path string) string {
	dir := filepath.Dir(path)
	override := e.settings.ExtractionPath
	switch {
	case override == "":
		return dir
	case filepath.IsAbs(override):
		return override
	default:
		return filepath.Join(dir, override)
	}
}

// backup moves the extracted archive into the backup directory, creating it
// if needed. The default is a "backup" folder next to the archive.
func (e *Extractor) backup(path string) error {
	dir := filepath.Dir(path)
	backupDir := e.settings.BackupPath
	switch {
	case backupDir == "":
		backupDir = filepath.Join(dir, "backup")
	case !filepath.IsAbs(backupDir):
		backupDir = filepath.Join(dir, backupDir)
	}

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", backupDir, err)
	}
	target := filepath.Join(backupDir, filepath.Base(path))
	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("failed to move archive to backup: %w", err)
	}
	return nil
}

func (e *Extractor) recordBad(res *Result, path string) {
	if !e.settings.IgnoreBadFiles {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	res.BadFiles = append(res.BadFiles, abs)
}
