package mcp

import "github.com/unpackrr/unpackrr/internal/scan"

// ScanInput represents input for the scan_archives tool.
type ScanInput struct {
	Root string `json:"root" jsonschema:"path to the mod folder to scan"`
}

// ScanOutput represents output from the scan_archives tool.
type ScanOutput struct {
	Entries   []scan.Entry `json:"entries"`
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Ignored   int          `json:"ignored"`
}

// ThresholdInput represents input for the suggest_threshold tool.
type ThresholdInput struct {
	Root string `json:"root" jsonschema:"path to the mod folder to scan"`
	Keep int    `json:"keep,omitempty" jsonschema:"number of archives to keep in place (default 235, the game's limit)"`
}

// ThresholdOutput represents output from the suggest_threshold tool.
type ThresholdOutput struct {
	Available      bool   `json:"available"`
	ThresholdBytes int64  `json:"threshold_bytes,omitempty"`
	ThresholdHuman string `json:"threshold_human,omitempty"`
	// Selected is how many archives fall at or below the threshold.
	Selected int `json:"selected,omitempty"`
	Total    int `json:"total"`
}

// CheckInput represents input for the check_archives tool.
type CheckInput struct {
	Root string `json:"root" jsonschema:"path to the mod folder to check"`
	Deep bool   `json:"deep,omitempty" jsonschema:"extract each archive into a scratch directory instead of just listing it"`
}

// CheckOutput represents output from the check_archives tool.
type CheckOutput struct {
	OK     int      `json:"ok"`
	Failed int      `json:"failed"`
	Issues []string `json:"issues,omitempty"`
}

// ExtractInput represents input for the extract_archives tool.
type ExtractInput struct {
	Root string `json:"root" jsonschema:"path to the mod folder to extract from"`
	// Threshold accepts a human size string like "1.5 MB"; empty means
	// automatic selection.
	Threshold string `json:"threshold,omitempty" jsonschema:"size threshold; archives at or below it are extracted (default: automatic)"`
}

// ExtractOutput represents output from the extract_archives tool.
type ExtractOutput struct {
	Extracted int      `json:"extracted"`
	Failed    int      `json:"failed"`
	BadFiles  []string `json:"bad_files,omitempty"`
}
