package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/export"
	"github.com/mesa-tools/mesaplot/internal/mesa"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a MESA table to an Arrow IPC file",
		Long: `Export a history or profile table to Arrow IPC format. Without an
argument the single-run history is exported. Use --columns to subset.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			var d *mesa.Data
			if len(args) == 1 {
				d, err = mesa.Load(args[0])
				if err != nil {
					e.logger.Warn("failed to read table", "error", err)
					return nil
				}
			} else {
				var ok bool
				d, ok = e.singleRun(cmd)
				if !ok {
					return nil
				}
			}

			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				base := filepath.Base(d.Path)
				out = base[:len(base)-len(filepath.Ext(base))] + ".arrow"
			}
			columns, _ := cmd.Flags().GetStringSlice("columns")

			if err := export.WriteArrow(out, d, columns); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: <table>.arrow)")
	cmd.Flags().StringSlice("columns", nil, "Columns to export (default: all)")
	return cmd
}
