package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvandessel/spinsim/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded simulation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			limit, _ := cmd.Flags().GetInt("limit")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				if jsonOut {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
						"runs": []store.Run{}, "count": 0,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.List(context.Background(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"runs": runs, "count": len(runs),
				})
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded runs (%d):\n\n", len(runs))
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] %s (%d spins, offset %.1f Hz)\n",
					r.ID, r.CreatedAt.Format(time.RFC3339), r.SystemName, r.Spins, r.OffsetHz)
				fmt.Fprintf(cmd.OutOrStdout(), "   TE %.3fs, %d pulse samples, %d points -> %s (%s, %v)\n",
					r.EchoTime, r.PulseSamples, r.Points, r.OutputPath, r.OutputFormat, r.WallTime)
			}
			return nil
		},
	}

	cmd.Flags().String("db", ".spinsim/runs.db", "Run history database path")
	cmd.Flags().Int("limit", 20, "Maximum runs to show (0 = all)")

	return cmd
}
