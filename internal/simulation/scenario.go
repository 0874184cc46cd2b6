// Package simulation provides an end-to-end harness for running full
// MEGA-PRESS experiments against real spin systems inside tests, plus the
// scenario fixtures the experiment tests share.
package simulation

import (
	"testing"

	"github.com/nvandessel/spinsim/internal/sequence"
	"github.com/nvandessel/spinsim/internal/spinsys"
)

// Scenario describes one full simulation: the spin system, the editing
// waveform, the sequence parameters, and the acquisition window.
type Scenario struct {
	Name     string
	System   spinsys.System
	Waveform []float64
	Params   sequence.Params
	AcqDwell float64
	Points   int
}

// DefaultParams returns the sequence constants of the reference
// experiment: TE=68 ms, t12=6 ms, 32 µs pulse dwell, unit calibration.
func DefaultParams() sequence.Params {
	return sequence.Params{
		EchoTime:    0.068,
		T12:         0.006,
		PulseDwell:  32e-6,
		Calibration: 1.0,
	}
}

// TwoSpinSystem builds the weakly coupled two-spin fixture used across the
// scenario tests: one chemical-shift pair and one coupling constant.
func TwoSpinSystem(t *testing.T) spinsys.System {
	t.Helper()
	sys, err := spinsys.New("pair",
		[]spinsys.Spin{
			{Label: "A", ShiftHz: 140},
			{Label: "B", ShiftHz: -35},
		},
		[]spinsys.Coupling{{A: 0, B: 1, JHz: 7.3}},
	)
	if err != nil {
		t.Fatalf("TwoSpinSystem: %v", err)
	}
	return sys
}

// ThreeSpinSystem builds a strongly coupled three-spin fixture resembling
// a GABA multiplet fragment.
func ThreeSpinSystem(t *testing.T) spinsys.System {
	t.Helper()
	sys, err := spinsys.New("triplet",
		[]spinsys.Spin{
			{Label: "H2", ShiftHz: 290},
			{Label: "H3", ShiftHz: 120},
			{Label: "H4", ShiftHz: 245},
		},
		[]spinsys.Coupling{
			{A: 0, B: 1, JHz: 7.3},
			{A: 1, B: 2, JHz: 7.3},
		},
	)
	if err != nil {
		t.Fatalf("ThreeSpinSystem: %v", err)
	}
	return sys
}
