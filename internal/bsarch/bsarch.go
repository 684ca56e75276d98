// Package bsarch drives the external BSArch executable for archive
// validation and extraction.
//
// BSArch does not report failures through its exit code, so the last
// non-empty line of its output is checked for an error marker instead. The
// exit code is never trusted.
package bsarch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrToolReported is returned when BSArch printed an error marker for an
// archive.
var ErrToolReported = errors.New("bsarch: tool reported an error")

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-invocation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// Runner invokes the BSArch executable synchronously, one archive at a
// time. Callers impose timeouts through the context.
type Runner struct {
	exe string
	log *slog.Logger
}

// New creates a Runner for the executable at exe.
func New(exe string, opts ...Option) *Runner {
	r := &Runner{exe: exe, log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List asks the tool to enumerate an archive without extracting it, as a
// quick validity probe.
func (r *Runner) List(ctx context.Context, path string) error {
	return r.run(ctx, path, path, "-list")
}

// Extract unpacks the archive at path into dest, creating dest if missing.
func (r *Runner) Extract(ctx context.Context, path, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("failed to create extraction directory %s: %w", dest, err)
	}
	return r.run(ctx, path, "unpack", path, dest)
}

// ExtractTemp unpacks the archive into a scratch directory that is removed
// again before returning. Used as a deep validity probe.
func (r *Runner) ExtractTemp(ctx context.Context, path string) error {
	dir, err := os.MkdirTemp("", "unpackrr-probe-")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)
	return r.run(ctx, path, "unpack", path, dir)
}

func (r *Runner) run(ctx context.Context, archive string, args ...string) error {
	cmd := exec.CommandContext(ctx, r.exe, args...)
	out, err := cmd.Output()
	if err != nil {
		// A non-zero exit alone means nothing; only a failure to run the
		// tool at all is reported as such.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("failed to run %s: %w", filepath.Base(r.exe), err)
		}
	}
	if lastLineHasError(out) {
		r.log.Warn("bsarch reported an error", "archive", archive)
		return fmt.Errorf("%w: %s", ErrToolReported, archive)
	}
	return nil
}

// lastLineHasError reports whether the last non-empty output line carries
// the case-insensitive "error:" marker.
func lastLineHasError(out []byte) bool {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return false
	}
	lines := strings.Split(trimmed, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	return strings.Contains(strings.ToLower(last), "error:")
}
