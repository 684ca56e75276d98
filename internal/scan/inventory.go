package scan

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/unpackrr/unpackrr/internal/ba2"
)

// Entry is one discovered archive file. Entries are immutable once built; a
// fresh inventory is produced on every scan.
type Entry struct {
	// Name is the base file name.
	Name string `json:"name"`
	// Size is the file size on disk at scan time.
	Size int64 `json:"size"`
	// FileCount is the number of logical files the archive declares.
	FileCount int64 `json:"file_count"`
	// ModFolder is the name of the immediate parent directory.
	ModFolder string `json:"mod_folder"`
	// Path is the full path, unique within one inventory.
	Path string `json:"path"`
}

// Result aggregates one scan pass. Entries are sorted ascending by size.
type Result struct {
	Succeeded int     `json:"succeeded"`
	Failed    int     `json:"failed"`
	Ignored   int     `json:"ignored"`
	Entries   []Entry `json:"entries"`
	// BadFiles holds the absolute paths of archives with unreadable
	// headers, collected only when bad-file tracking is on so the caller
	// can persist them as new ignore rules.
	BadFiles []string `json:"bad_files,omitempty"`
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// WithBadFileTracking records unreadable archives into Result.BadFiles.
func WithBadFileTracking(enabled bool) Option {
	return func(b *Builder) { b.trackBad = enabled }
}

// Builder turns discovered paths into a size-sorted inventory.
type Builder struct {
	log      *slog.Logger
	trackBad bool
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{log: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build gives every path a verdict: ignored, failed, or an inventory entry.
// Per-file problems never abort the batch; the only error returned is a
// cancelled context, alongside the counts accumulated so far. Entries come
// back sorted ascending by size, ties keeping discovery order.
func (b *Builder) Build(ctx context.Context, paths []string, ignore *IgnoreList) (Result, error) {
	var res Result
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if ignore.Ignored(p) {
			res.Ignored++
			b.log.Info("ignoring archive", "path", p)
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			res.Failed++
			b.recordBad(&res, p)
			b.log.Warn("failed to stat archive", "path", p, "error", err)
			continue
		}

		count, err := ba2.ReadFileCount(p)
		if err != nil {
			res.Failed++
			b.recordBad(&res, p)
			b.log.Warn("failed to parse archive header", "path", p, "error", err)
			continue
		}

		res.Succeeded++
		res.Entries = append(res.Entries, Entry{
			Name:      filepath.Base(p),
			Size:      info.Size(),
			FileCount: count,
			ModFolder: filepath.Base(filepath.Dir(p)),
			Path:      p,
		})
	}

	sort.SliceStable(res.Entries, func(i, j int) bool {
		return res.Entries[i].Size < res.Entries[j].Size
	})
	return res, nil
}

func (b *Builder) recordBad(res *Result, path string) {
	if !b.trackBad {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	res.BadFiles = append(res.BadFiles, abs)
}
