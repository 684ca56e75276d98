package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/unpackrr/unpackrr/internal/scan"
	"github.com/unpackrr/unpackrr/internal/sizefmt"
	"github.com/unpackrr/unpackrr/internal/unpack"
)

// handleScan handles the scan_archives tool.
func (s *Server) handleScan(ctx context.Context, req *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, ScanOutput, error) {
	if input.Root == "" {
		return nil, ScanOutput{}, fmt.Errorf("root is required")
	}

	res, err := scan.Scan(ctx, input.Root, s.settings)
	if err != nil {
		return nil, ScanOutput{}, err
	}

	return nil, ScanOutput{
		Entries:   res.Entries,
		Total:     len(res.Entries),
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		Ignored:   res.Ignored,
	}, nil
}

// handleThreshold handles the suggest_threshold tool.
func (s *Server) handleThreshold(ctx context.Context, req *mcp.CallToolRequest, input ThresholdInput) (*mcp.CallToolResult, ThresholdOutput, error) {
	if input.Root == "" {
		return nil, ThresholdOutput{}, fmt.Errorf("root is required")
	}
	keep := input.Keep
	if keep <= 0 {
		keep = scan.DefaultKeepLimit
	}

	res, err := scan.Scan(ctx, input.Root, s.settings)
	if err != nil {
		return nil, ThresholdOutput{}, err
	}

	output := ThresholdOutput{Total: len(res.Entries)}
	threshold, ok := scan.AutoThreshold(res.Entries, keep)
	if !ok {
		return nil, output, nil
	}

	output.Available = true
	output.ThresholdBytes = threshold
	output.ThresholdHuman = sizefmt.Format(threshold)
	output.Selected = len(scan.FilterAtOrBelow(res.Entries, threshold))
	return nil, output, nil
}

// handleCheck handles the check_archives tool.
func (s *Server) handleCheck(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, CheckOutput, error) {
	if input.Root == "" {
		return nil, CheckOutput{}, fmt.Errorf("root is required")
	}
	if s.runner == nil {
		return nil, CheckOutput{}, fmt.Errorf("BSArch executable is not configured")
	}

	output := CheckOutput{}
	checker := unpack.NewChecker(s.runner)
	res, err := checker.Check(ctx, input.Root, input.Deep, func(path string) {
		output.Issues = append(output.Issues, path)
	})
	if err != nil {
		return nil, CheckOutput{}, err
	}

	output.OK = res.OK
	output.Failed = res.Failed
	return nil, output, nil
}

// handleExtract handles the extract_archives tool.
func (s *Server) handleExtract(ctx context.Context, req *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
	if input.Root == "" {
		return nil, ExtractOutput{}, fmt.Errorf("root is required")
	}
	if s.runner == nil {
		return nil, ExtractOutput{}, fmt.Errorf("BSArch executable is not configured")
	}

	res, err := scan.Scan(ctx, input.Root, s.settings)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	var threshold int64
	if input.Threshold != "" {
		threshold = sizefmt.Parse(input.Threshold)
		if threshold == sizefmt.Invalid {
			return nil, ExtractOutput{}, fmt.Errorf("invalid threshold %q", input.Threshold)
		}
	} else {
		var ok bool
		threshold, ok = scan.AutoThreshold(res.Entries, scan.DefaultKeepLimit)
		if !ok {
			// Under the limit already; extracting nothing is a success.
			return nil, ExtractOutput{}, nil
		}
	}

	selected := scan.FilterAtOrBelow(res.Entries, threshold)
	extractor := unpack.NewExtractor(s.runner, s.settings)
	result, err := extractor.Run(ctx, selected, nil)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	return nil, ExtractOutput{
		Extracted: result.Extracted,
		Failed:    result.Failed,
		BadFiles:  result.BadFiles,
	}, nil
}
