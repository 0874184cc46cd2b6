package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/spinsim/internal/waveform"
)

func newGenPulseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genpulse",
		Short: "Generate a Gaussian editing-pulse waveform file",
		Long: `Write a Gaussian amplitude envelope in the raw float32 waveform
format the simulator consumes. The amplitude is an angular rate per
sample; with unit calibration, amp*samples*(180/π) degrees of total
rotation are applied at the envelope peak rate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, _ := cmd.Flags().GetInt("samples")
			amp, _ := cmd.Flags().GetFloat64("amp")
			truncate, _ := cmd.Flags().GetFloat64("truncate")
			outPath, _ := cmd.Flags().GetString("out")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if samples <= 0 {
				return fmt.Errorf("samples must be positive, got %d", samples)
			}
			if truncate <= 0 {
				return fmt.Errorf("truncate must be positive, got %v", truncate)
			}

			env := waveform.Gaussian(samples, amp, truncate)
			if err := waveform.Save(outPath, env); err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"status":  "written",
					"samples": samples,
					"path":    outPath,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d-sample Gaussian waveform to %s\n", samples, outPath)
			return nil
		},
	}

	cmd.Flags().Int("samples", 440, "Number of waveform samples")
	cmd.Flags().Float64("amp", 0.24, "Peak amplitude (rad per sample)")
	cmd.Flags().Float64("truncate", 2.5, "Truncation point in standard deviations")
	cmd.Flags().String("out", "", "Output waveform file (required)")
	cmd.MarkFlagRequired("out")

	return cmd
}
