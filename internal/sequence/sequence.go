// Package sequence orchestrates the MEGA-PRESS experiment: a fixed chain of
// hard pulses, free-precession delays and two shaped editing pulses that
// drives the density operator from thermal equilibrium to the detection
// point. The sequence is the experiment; it is not data-driven.
package sequence

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/nvandessel/spinsim/internal/evolve"
	"github.com/nvandessel/spinsim/internal/linalg"
	"github.com/nvandessel/spinsim/internal/logging"
	"github.com/nvandessel/spinsim/internal/operator"
	"github.com/nvandessel/spinsim/internal/pulse"
	"github.com/nvandessel/spinsim/internal/spinsys"
)

// Params are the experiment constants the orchestrator needs. All values
// are validated before any operator is built.
type Params struct {
	// EchoTime is the full echo time TE in seconds.
	EchoTime float64
	// T12 is the 90°-to-180° interval in seconds.
	T12 float64
	// PulseDwell is the editing-waveform sample dwell in seconds.
	PulseDwell float64
	// Calibration scales waveform amplitude to flip angle per sample.
	Calibration float64
}

// Validate checks that the parameters are finite and positive where they
// must be.
func (p Params) Validate() error {
	check := func(name string, v float64, strictlyPositive bool) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("sequence: %s is not finite", name)
		}
		if strictlyPositive && v <= 0 {
			return fmt.Errorf("sequence: %s must be positive, got %v", name, v)
		}
		if !strictlyPositive && v < 0 {
			return fmt.Errorf("sequence: %s must be non-negative, got %v", name, v)
		}
		return nil
	}
	if err := check("echo time", p.EchoTime, true); err != nil {
		return err
	}
	if err := check("t12", p.T12, false); err != nil {
		return err
	}
	if err := check("pulse dwell", p.PulseDwell, true); err != nil {
		return err
	}
	if math.IsNaN(p.Calibration) || math.IsInf(p.Calibration, 0) {
		return fmt.Errorf("sequence: calibration is not finite")
	}
	return nil
}

// Result is the terminal state of the sequence, ready for acquisition.
type Result struct {
	// Rho is the density operator at the detection point.
	Rho linalg.Matrix
	// H is the static Hamiltonian used throughout, for the acquisition loop.
	H linalg.Matrix
	// Detect is the detection operator.
	Detect linalg.Matrix
	// Timing holds the derived intervals actually used.
	Timing Timing
}

// Run executes the MEGA-PRESS sequence for the given system and editing
// waveform and returns the terminal density operator. The same waveform
// and calibration drive both editing pulses. Failures identify the
// transition that produced them; nothing is recoverable mid-sequence.
func Run(sys spinsys.System, wave []float64, p Params, log *slog.Logger, steps *logging.StepLogger) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	timing, err := Derive(p.EchoTime, p.T12, float64(len(wave))*p.PulseDwell)
	if err != nil {
		return Result{}, err
	}
	log.Debug("derived sequence timing",
		"t12", timing.T12, "t_2g1", timing.T2G1, "t_g13", timing.TG13,
		"t_3g2", timing.T3G2, "t_g2r", timing.TG2R, "t_pulse", timing.PulseDur)

	rho, err := operator.Equilibrium(sys)
	if err != nil {
		return Result{}, fmt.Errorf("equilibrium: %w", err)
	}
	h, err := operator.Hamiltonian(sys)
	if err != nil {
		return Result{}, fmt.Errorf("hamiltonian: %w", err)
	}
	detect, err := operator.Detection(sys)
	if err != nil {
		return Result{}, fmt.Errorf("detection operator: %w", err)
	}

	elapsed := 0.0
	hardPulse := func(step string, angle float64) error {
		u, err := operator.Rotation(sys, angle, 90)
		if err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
		rho = evolve.Apply(u, rho)
		steps.Log(map[string]any{"step": step, "angle_deg": angle, "elapsed_s": elapsed})
		return nil
	}
	delay := func(step string, d float64) error {
		u, err := evolve.Propagator(h, d)
		if err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
		rho = evolve.Apply(u, rho)
		elapsed += d
		steps.Log(map[string]any{"step": step, "duration_s": d, "elapsed_s": elapsed})
		return nil
	}
	editPulse := func(step string) error {
		out, dur, err := pulse.Drive(sys, rho, h, wave, p.PulseDwell, p.Calibration, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
		rho = out
		elapsed += dur
		steps.Log(map[string]any{"step": step, "samples": len(wave), "duration_s": dur, "elapsed_s": elapsed})
		return nil
	}

	// The fixed transition chain. Excite and refocus pulses are on y;
	// the editing pulses are on x.
	for _, transition := range []func() error{
		func() error { return hardPulse("excite-90y", 90) },
		func() error { return delay("delay-t12", timing.T12) },
		func() error { return hardPulse("refocus-180y-1", 180) },
		func() error { return delay("delay-2g1", timing.T2G1) },
		func() error { return editPulse("edit-pulse-1") },
		func() error { return delay("delay-g13", timing.TG13) },
		func() error { return hardPulse("refocus-180y-2", 180) },
		func() error { return delay("delay-3g2", timing.T3G2) },
		func() error { return editPulse("edit-pulse-2") },
		func() error { return delay("delay-g2r", timing.TG2R) },
	} {
		if err := transition(); err != nil {
			return Result{}, fmt.Errorf("sequence: %w", err)
		}
	}

	log.Debug("sequence complete", "elapsed_s", elapsed)
	return Result{Rho: rho, H: h, Detect: detect, Timing: timing}, nil
}
