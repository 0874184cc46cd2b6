package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/spinsim/internal/config"
	"github.com/nvandessel/spinsim/internal/sequence"
)

func newTimingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timing",
		Short: "Derive and validate the sequence intervals",
		Long: `Compute the free-precession intervals for the given echo time, t12
and editing-pulse length without running a simulation. Fails if the
editing pulse does not fit inside the echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			echoTime, _ := cmd.Flags().GetFloat64("echo-time")
			t12, _ := cmd.Flags().GetFloat64("t12")
			samples, _ := cmd.Flags().GetInt("samples")
			dwell, _ := cmd.Flags().GetFloat64("dwell")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if samples < 0 {
				return fmt.Errorf("samples must be non-negative, got %d", samples)
			}

			t, err := sequence.Derive(echoTime, t12, float64(samples)*dwell)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]float64{
					"t12_s":     t.T12,
					"t_2g1_s":   t.T2G1,
					"t_pulse_s": t.PulseDur,
					"t_g13_s":   t.TG13,
					"t_3g2_s":   t.T3G2,
					"t_g2r_s":   t.TG2R,
					"total_s":   t.Total(),
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "T_12    %.6f s\n", t.T12)
			fmt.Fprintf(cmd.OutOrStdout(), "T_2g1   %.6f s\n", t.T2G1)
			fmt.Fprintf(cmd.OutOrStdout(), "T_pulse %.6f s\n", t.PulseDur)
			fmt.Fprintf(cmd.OutOrStdout(), "T_g13   %.6f s\n", t.TG13)
			fmt.Fprintf(cmd.OutOrStdout(), "T_3g2   %.6f s\n", t.T3G2)
			fmt.Fprintf(cmd.OutOrStdout(), "T_g2r   %.6f s\n", t.TG2R)
			fmt.Fprintf(cmd.OutOrStdout(), "Total   %.6f s\n", t.Total())
			return nil
		},
	}

	cmd.Flags().Float64("echo-time", config.DefaultEchoTime, "Echo time TE in seconds")
	cmd.Flags().Float64("t12", config.DefaultT12, "90°-to-180° interval in seconds")
	cmd.Flags().Int("samples", 0, "Editing-waveform sample count")
	cmd.Flags().Float64("dwell", config.DefaultPulseDwell, "Waveform dwell in seconds")

	return cmd
}
