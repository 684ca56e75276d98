package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/unpackrr/unpackrr/internal/bsarch"
	"github.com/unpackrr/unpackrr/internal/scan"
	"github.com/unpackrr/unpackrr/internal/sizefmt"
	"github.com/unpackrr/unpackrr/internal/unpack"
)

var (
	extractSize   string
	extractKeep   int
	extractYes    bool
	extractDryRun bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [directory]",
	Short: "Extract archives at or below the size threshold",
	Long: `Scan the mod folder, select every archive at or below the size threshold,
and unpack each one with BSArch. Extracted archives are moved to a backup
folder, or deleted when auto-backup is off.

Without --size the threshold is computed automatically so that the number
of remaining archives stays under the game's limit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractSize, "size", "", "Manual size threshold, e.g. \"1.5 MB\" (default: automatic)")
	extractCmd.Flags().IntVar(&extractKeep, "keep", scan.DefaultKeepLimit, "Number of archives to keep in place when selecting automatically")
	extractCmd.Flags().BoolVarP(&extractYes, "yes", "y", false, "Skip the confirmation prompt")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "Show what would be extracted without touching anything")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	st, settings, err := loadStore()
	if err != nil {
		return err
	}
	root, err := resolveRoot(args, settings)
	if err != nil {
		return err
	}
	exe, err := bsarchPath(settings)
	if err != nil {
		return err
	}

	res, err := scan.Scan(cmd.Context(), root, settings)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	var threshold int64
	if extractSize != "" {
		threshold = sizefmt.Parse(extractSize)
		if threshold == sizefmt.Invalid {
			return fmt.Errorf("invalid size %q", extractSize)
		}
	} else {
		var ok bool
		threshold, ok = scan.AutoThreshold(res.Entries, extractKeep)
		if !ok {
			fmt.Printf("Found %d archives, already at or under the limit of %d; nothing to extract\n",
				len(res.Entries), extractKeep)
			return nil
		}
	}

	selected := scan.FilterAtOrBelow(res.Entries, threshold)
	if len(selected) == 0 {
		fmt.Printf("No archives at or below %s\n", sizefmt.Format(threshold))
		return nil
	}

	fmt.Printf("Threshold %s selects %d of %d archives\n",
		sizefmt.Format(threshold), len(selected), len(res.Entries))

	if extractDryRun {
		for _, e := range selected {
			fmt.Printf("  would extract %s (%s, %s)\n", e.Name, e.ModFolder, sizefmt.Format(e.Size))
		}
		return nil
	}

	if !extractYes && !confirm(fmt.Sprintf("Extract %d archives?", len(selected))) {
		fmt.Println("Aborted.")
		return nil
	}

	runner := bsarch.New(exe)
	extractor := unpack.NewExtractor(runner, settings)

	bar := progressbar.NewOptions(len(selected),
		progressbar.OptionSetDescription("extracting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	result, err := extractor.Run(cmd.Context(), selected, func(item unpack.ItemResult) {
		_ = bar.Add(1)
		if item.Err != nil {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("✗"), item.Entry.Name, item.Err)
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s %d extracted, %s %d failed\n",
		color.GreenString("✓"), result.Extracted,
		color.RedString("✗"), result.Failed)

	st.SetSavedDir(root)
	st.SetSavedThreshold(threshold)
	if settings.IgnoreBadFiles && len(result.BadFiles) > 0 {
		st.AddIgnored(result.BadFiles...)
	}
	return st.Save()
}

func confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
