package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/logging"
	"github.com/mesa-tools/mesaplot/internal/mcp"
	"github.com/mesa-tools/mesaplot/internal/runs"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Run a Model Context Protocol server exposing run discovery, summaries,
column listings and plotting as tools. Communicates over stdio; point an
MCP client at 'mesaplot mcp'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config")
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			runsDir, _ := cmd.Flags().GetString("runs")
			if runsDir == "" {
				runsDir, _ = runs.LocateRuns(configDir)
			}

			// The MCP transport owns stdout, so logs go to stderr only.
			logger := logging.NewLogger(e.cfg.Logging.Level, os.Stderr)

			srv, err := mcp.NewServer(&mcp.Config{
				Name:        "mesaplot",
				Version:     version,
				RunsDir:     runsDir,
				CatalogPath: e.cfg.Catalog.Path,
				PlotsDir:    e.cfg.Plots.Dir,
				Width:       e.cfg.Plots.Width,
				Height:      e.cfg.Plots.Height,
				Logger:      logger,
			})
			if err != nil {
				return fmt.Errorf("failed to start MCP server: %w", err)
			}

			return srv.Run(cmd.Context())
		},
	}
}
