package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesa-tools/mesaplot/internal/catalog"
	"github.com/mesa-tools/mesaplot/internal/runs"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Summarize every batch run into the catalog",
		Long: `Discover the batch runs, summarize each one's final model and store
the summaries in the SQLite catalog for later listing and MCP queries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			loaded, ok := e.batch(cmd)
			if !ok {
				return nil
			}

			store, err := catalog.Open(e.cfg.Catalog.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			stored := 0
			for _, lr := range loaded {
				sum, err := runs.Summarize(lr)
				if err != nil {
					e.logger.Warn("skipping run", "run", lr.Name, "error", err)
					continue
				}
				if err := store.Put(cmd.Context(), sum); err != nil {
					return fmt.Errorf("failed to catalog %s: %w", lr.Name, err)
				}
				stored++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cataloged %d runs in %s\n", stored, e.cfg.Catalog.Path)
			return nil
		},
	}
}

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List cataloged runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			store, err := catalog.Open(e.cfg.Catalog.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			sums, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(sums)
			}

			if len(sums) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cataloged runs. Run 'mesaplot scan' first.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMASS\tZ\tSCHEME\tFOV\tSYSTEM\tAGE(YR)\tCORE\tMODELS")
			for _, s := range sums {
				fmt.Fprintf(w, "%s\t%.1f\t%.4f\t%s\t%.3f\t%s\t%.3e\t%.3f\t%d\n",
					s.Name, s.Mass, s.Metallicity, s.Scheme, s.Fov,
					s.System, s.AgeYears, s.CoreMass, s.Models)
			}
			return w.Flush()
		},
	}
}
