package unpack

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/unpackrr/unpackrr/internal/bsarch"
	"github.com/unpackrr/unpackrr/internal/scan"
)

// CheckResult aggregates a validation pass.
type CheckResult struct {
	OK     int `json:"ok"`
	Failed int `json:"failed"`
}

// Checker validates every BA2 archive under a mod folder with the external
// tool, either by listing contents (quick) or by a full extraction into a
// scratch directory (deep).
type Checker struct {
	runner *bsarch.Runner
	log    *slog.Logger
}

// NewChecker creates a Checker.
func NewChecker(runner *bsarch.Runner, opts ...Option) *Checker {
	o := newOptions(opts)
	return &Checker{runner: runner, log: o.log}
}

// Check scans root for all .ba2 files regardless of postfix configuration
// and probes each one. Issues are streamed through onIssue in discovery
// order with the absolute archive path.
func (c *Checker) Check(ctx context.Context, root string, deep bool, onIssue func(path string)) (CheckResult, error) {
	paths, err := scan.ScanRoot(root, []string{".ba2"})
	if err != nil {
		return CheckResult{}, err
	}

	var res CheckResult
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var probeErr error
		if deep {
			probeErr = c.runner.ExtractTemp(ctx, p)
		} else {
			probeErr = c.runner.List(ctx, p)
		}
		if probeErr != nil {
			res.Failed++
			c.log.Warn("archive failed validation", "path", p, "error", probeErr)
			if onIssue != nil {
				abs, aerr := filepath.Abs(p)
				if aerr != nil {
					abs = p
				}
				onIssue(abs)
			}
		} else {
			res.OK++
		}
	}
	return res, nil
}
