package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "spinsim",
		Short: "Spin-density-operator simulator for MEGA-PRESS spectroscopy",
		Long: `spinsim simulates the quantum evolution of a coupled nuclear-spin
system through a MEGA-PRESS edited pulse sequence and synthesizes the
detected free-induction decay.

It loads a spin-system description and a shaped editing waveform, drives
the density operator through the sequence, and writes the resulting
signal for downstream analysis tooling.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for tooling consumption)")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug, trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newInfoCmd(),
		newTimingCmd(),
		newGenPulseCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
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
				fmt.Fprintf(cmd.OutOrStdout(), "spinsim version %s\n", version)
			}
		},
	}
}
