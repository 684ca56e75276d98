package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/unpackrr/unpackrr/internal/bsarch"
	"github.com/unpackrr/unpackrr/internal/unpack"
)

var checkDeep bool

var checkCmd = &cobra.Command{
	Use:   "check [directory]",
	Short: "Validate BA2 archives with BSArch",
	Long: `Probe every BA2 archive under the mod folder with BSArch and report the
ones that fail. The quick mode lists each archive's contents; --deep
actually extracts each archive into a scratch directory that is discarded
afterwards, which catches more subtle corruption but is much slower.

All .ba2 files are checked, regardless of the configured postfixes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkDeep, "deep", false, "Extract each archive into a scratch directory instead of listing it")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, settings, err := loadStore()
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

	checker := unpack.NewChecker(bsarch.New(exe))
	res, err := checker.Check(cmd.Context(), root, checkDeep, func(path string) {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("✗"), path)
	})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	fmt.Printf("%s %d ok, %s %d failed\n",
		color.GreenString("✓"), res.OK,
		color.RedString("✗"), res.Failed)
	return nil
}
