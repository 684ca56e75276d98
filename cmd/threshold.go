package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unpackrr/unpackrr/internal/scan"
	"github.com/unpackrr/unpackrr/internal/sizefmt"
)

var (
	thresholdKeep int
	thresholdSize string
)

var thresholdCmd = &cobra.Command{
	Use:   "threshold [directory]",
	Short: "Suggest an extraction size threshold",
	Long: `Compute the size threshold such that extracting every archive at or
below it leaves the largest archives in place, keeping the active archive
count under the game's limit.

With --size, a manual threshold string like "1.5 MB" is evaluated instead
and the number of archives it would select is reported. Units are decimal
(1 KB = 1000 B).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThreshold,
}

func init() {
	thresholdCmd.Flags().IntVar(&thresholdKeep, "keep", scan.DefaultKeepLimit, "Number of archives to keep in place")
	thresholdCmd.Flags().StringVar(&thresholdSize, "size", "", "Evaluate a manual threshold instead of computing one")
	rootCmd.AddCommand(thresholdCmd)
}

func runThreshold(cmd *cobra.Command, args []string) error {
	_, settings, err := loadStore()
	if err != nil {
		return err
	}
	root, err := resolveRoot(args, settings)
	if err != nil {
		return err
	}

	res, err := scan.Scan(cmd.Context(), root, settings)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if thresholdSize != "" {
		threshold := sizefmt.Parse(thresholdSize)
		if threshold == sizefmt.Invalid {
			return fmt.Errorf("invalid size %q", thresholdSize)
		}
		selected := scan.FilterAtOrBelow(res.Entries, threshold)
		fmt.Printf("Threshold %s (%d bytes) selects %d of %d archives\n",
			sizefmt.Format(threshold), threshold, len(selected), len(res.Entries))
		return nil
	}

	threshold, ok := scan.AutoThreshold(res.Entries, thresholdKeep)
	if !ok {
		fmt.Printf("Found %d archives, already at or under the limit of %d; nothing to trim\n",
			len(res.Entries), thresholdKeep)
		return nil
	}

	selected := scan.FilterAtOrBelow(res.Entries, threshold)
	fmt.Printf("Suggested threshold: %s (%d bytes)\n", sizefmt.Format(threshold), threshold)
	fmt.Printf("Extracting the %d archives at or below it leaves %d in place\n",
		len(selected), len(res.Entries)-len(selected))
	return nil
}
