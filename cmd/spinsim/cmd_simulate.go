package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvandessel/spinsim/internal/acquire"
	"github.com/nvandessel/spinsim/internal/config"
	"github.com/nvandessel/spinsim/internal/export"
	"github.com/nvandessel/spinsim/internal/logging"
	"github.com/nvandessel/spinsim/internal/sequence"
	"github.com/nvandessel/spinsim/internal/spinsys"
	"github.com/nvandessel/spinsim/internal/store"
	"github.com/nvandessel/spinsim/internal/waveform"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the MEGA-PRESS sequence and write the synthesized FID",
		Long: `Run the full simulation: load the spin system and editing waveform,
drive the density operator through the MEGA-PRESS sequence, synthesize
the FID, and write it out.

Example:
  spinsim simulate --system gaba.yaml --waveform gauss.rf --offset -15 --out fid.mat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			systemPath, _ := cmd.Flags().GetString("system")
			wavePath, _ := cmd.Flags().GetString("waveform")
			offset, _ := cmd.Flags().GetFloat64("offset")
			outPath, _ := cmd.Flags().GetString("out")
			varName, _ := cmd.Flags().GetString("var")
			format, _ := cmd.Flags().GetString("format")
			configPath, _ := cmd.Flags().GetString("config")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				cfg.Logging.Level = lvl
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			steps := logging.NewStepLogger(".spinsim", cfg.Logging.Level)
			defer steps.Close()

			sys, err := spinsys.Load(systemPath)
			if err != nil {
				return err
			}
			log.Info("loaded spin system", "system", sys.String())

			if offset != 0 {
				sys, err = sys.Shifted(offset)
				if err != nil {
					return err
				}
				log.Info("applied frequency offset", "offset_hz", offset)
			}

			wave, err := waveform.Load(wavePath)
			if err != nil {
				return err
			}
			log.Info("loaded editing waveform",
				"samples", len(wave),
				"duration_s", float64(len(wave))*cfg.Sequence.PulseDwell)

			params := sequence.Params{
				EchoTime:    cfg.Sequence.EchoTime,
				T12:         cfg.Sequence.T12,
				PulseDwell:  cfg.Sequence.PulseDwell,
				Calibration: cfg.Sequence.Calibration,
			}

			start := time.Now()
			res, err := sequence.Run(sys, wave, params, log, steps)
			if err != nil {
				return err
			}

			signal, err := acquire.Synthesize(res.Rho, res.H, res.Detect, cfg.Acquisition.Dwell, cfg.Acquisition.Points)
			if err != nil {
				return err
			}
			wall := time.Since(start)
			log.Info("simulation complete", "points", len(signal), "wall_time", wall)

			switch format {
			case "mat":
				err = export.WriteMAT(outPath, varName, signal)
			case "arrow":
				err = export.WriteArrow(outPath, cfg.Acquisition.Dwell, signal)
			case "csv":
				f, cerr := os.Create(outPath)
				if cerr != nil {
					return cerr
				}
				err = export.WriteCSV(f, cfg.Acquisition.Dwell, signal)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			default:
				return fmt.Errorf("unknown output format %q (valid: mat, arrow, csv)", format)
			}
			if err != nil {
				return err
			}

			if cfg.History.Enabled {
				recordRun(log, cfg, store.Run{
					CreatedAt:    start,
					SystemName:   sys.Name(),
					SystemPath:   systemPath,
					Spins:        sys.Count(),
					OffsetHz:     sys.OffsetHz(),
					EchoTime:     params.EchoTime,
					T12:          params.T12,
					PulseDwell:   params.PulseDwell,
					PulseSamples: len(wave),
					Calibration:  params.Calibration,
					AcqDwell:     cfg.Acquisition.Dwell,
					Points:       len(signal),
					OutputPath:   outPath,
					OutputFormat: format,
					WallTime:     wall,
				})
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"status":  "complete",
					"system":  sys.Name(),
					"spins":   sys.Count(),
					"points":  len(signal),
					"output":  outPath,
					"format":  format,
					"elapsed": wall.String(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Simulated %s (%d spins): %d points -> %s\n",
				sys.Name(), sys.Count(), len(signal), outPath)
			return nil
		},
	}

	cmd.Flags().String("system", "", "Spin-system description file (required)")
	cmd.Flags().String("waveform", "", "Editing-pulse waveform file (required)")
	cmd.Flags().Float64("offset", 0, "Uniform frequency offset in Hz")
	cmd.Flags().String("out", "", "Output file path (required)")
	cmd.Flags().String("var", config.DefaultVarName, "Variable name for the .mat output")
	cmd.Flags().String("format", "mat", "Output format (mat, arrow, csv)")
	cmd.Flags().String("config", "", "Configuration file path")
	cmd.MarkFlagRequired("system")
	cmd.MarkFlagRequired("waveform")
	cmd.MarkFlagRequired("out")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// recordRun appends the run to the history ledger. History is best-effort:
// a failure is logged and the simulation still succeeds.
func recordRun(log *slog.Logger, cfg *config.Config, r store.Run) {
	s, err := store.Open(cfg.History.Path)
	if err != nil {
		log.Warn("run history unavailable", "error", err)
		return
	}
	defer s.Close()
	if _, err := s.Record(context.Background(), r); err != nil {
		log.Warn("failed to record run", "error", err)
	}
}
