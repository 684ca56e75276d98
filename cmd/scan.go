package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/unpackrr/unpackrr/internal/scan"
	"github.com/unpackrr/unpackrr/internal/sizefmt"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Scan a mod folder and list the discovered BA2 archives",
	Long: `Scan the mod folder for BA2 archives matching the configured postfixes,
skipping archives on the ignore list, and print the inventory sorted by
size. Only second-tier files (directly inside each mod folder) are
considered, matching what the game actually loads.

The folder is remembered, so later commands can omit it. Archives whose
headers cannot be read are recorded as new ignore rules when the
ignore-bad-files setting is on.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the inventory as JSON")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	st, settings, err := loadStore()
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

	if scanJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printInventory(res)
	}

	// Remember the folder and any freshly discovered bad archives.
	st.SetSavedDir(root)
	if settings.IgnoreBadFiles && len(res.BadFiles) > 0 {
		st.AddIgnored(res.BadFiles...)
	}
	if err := st.Save(); err != nil {
		return err
	}
	return nil
}

func printInventory(res scan.Result) {
	if len(res.Entries) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMOD\tFILES\tSIZE")
		fmt.Fprintln(w, "----\t---\t-----\t----")
		for _, e := range res.Entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Name, e.ModFolder, e.FileCount, sizefmt.Format(e.Size))
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Printf("%s %d ok, %s %d failed, %d ignored\n",
		color.GreenString("✓"), res.Succeeded,
		color.RedString("✗"), res.Failed,
		res.Ignored)
}
