package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unpackrr/unpackrr/internal/config"
)

var (
	Version = "dev"

	cfgFile   string
	bsarchExe string
)

var rootCmd = &cobra.Command{
	Use:     "unpackrr",
	Short:   "BA2 archive inventory and extraction tool",
	Version: Version,
	Long: `unpackrr scans a mod folder for BA2 archives, ranks them by size, and
extracts the smallest ones so the number of active archives stays under the
game's limit. Listing and extraction are delegated to the BSArch tool.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: <user config dir>/unpackrr/unpackrr.yaml)")
	rootCmd.PersistentFlags().StringVar(&bsarchExe, "bsarch", "", "Path to the BSArch executable (or set UNPACKRR_BSARCH env var)")
}

// loadStore opens the config store and takes a settings snapshot for the
// current command.
func loadStore() (*config.Store, config.Settings, error) {
	st, err := config.NewStore(cfgFile)
	if err != nil {
		return nil, config.Settings{}, err
	}
	return st, st.Settings(), nil
}

// resolveRoot picks the mod folder to operate on: the positional argument
// if given, else the folder remembered from the last scan.
func resolveRoot(args []string, settings config.Settings) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if settings.SavedDir != "" {
		return settings.SavedDir, nil
	}
	return "", fmt.Errorf("no mod folder given and none remembered from a previous scan")
}

// bsarchPath locates the BSArch executable from the flag, environment, or
// config, in that order.
func bsarchPath(settings config.Settings) (string, error) {
	if bsarchExe != "" {
		return bsarchExe, nil
	}
	if env := os.Getenv("UNPACKRR_BSARCH"); env != "" {
		return env, nil
	}
	if settings.BSArchPath != "" {
		return settings.BSArchPath, nil
	}
	return "", fmt.Errorf("BSArch executable not configured. Use --bsarch, set UNPACKRR_BSARCH, or set advanced.bsarch_path in the config file")
}
