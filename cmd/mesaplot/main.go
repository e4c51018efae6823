package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mesaplot",
		Short: "Plot MESA stellar evolution output",
		Long: `mesaplot renders diagnostic plots from MESA history and profile files.

It detects the photometric system available in a history table (GAIA,
Johnson, 2MASS, SDSS, or a custom filter set), draws color-magnitude
diagrams, color-color planes, composition and core-mass evolution, and
compares whole grids of runs. Plots land in the plots directory as PNG
files, with optional animated GIF tracks.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("logs", "", "LOGS directory for single-run plots (default: auto-detect)")
	rootCmd.PersistentFlags().String("runs", "", "Directory of batch runs (default: auto-detect)")
	rootCmd.PersistentFlags().String("out", "", "Output directory for plots (default: from config)")
	rootCmd.PersistentFlags().String("config", ".", "Directory holding "+configFileHint)
	rootCmd.PersistentFlags().String("system", "", "Force a photometric system (gaia, johnson, 2mass, sdss)")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON where supported")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCMDCmd(),
		newColorColorCmd(),
		newCompositionCmd(),
		newCoreCmd(),
		newLightcurveCmd(),
		newPhysicsCmd(),
		newScanCmd(),
		newRunsCmd(),
		newExportCmd(),
		newMCPServerCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "mesaplot version %s\n", version)
			}
		},
	}
}
