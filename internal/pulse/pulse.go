// Package pulse drives shaped RF pulses. A continuously amplitude-modulated
// pulse is approximated as a piecewise-constant train: one hard rotation
// per waveform sample, each followed by free precession over the sample
// dwell. This is a first-order discretization; the rotate-then-evolve order
// within a step is part of the contract and must not be reordered.
package pulse

import (
	"fmt"
	"math"

	"github.com/nvandessel/spinsim/internal/evolve"
	"github.com/nvandessel/spinsim/internal/linalg"
	"github.com/nvandessel/spinsim/internal/operator"
	"github.com/nvandessel/spinsim/internal/spinsys"
)

// Drive applies a shaped pulse to rho and returns the resulting density
// operator together with the elapsed pulse time (len(samples) * dwell).
//
// Each sample's flip angle is sample * calibration * 180/π: the amplitude
// is treated as an angular rate in radians over one dwell, converted to
// degrees. The formula is the calibrated behavior of the original
// experiment and is preserved as-is.
//
// An empty waveform returns rho unchanged and zero elapsed time.
func Drive(sys spinsys.System, rho, h linalg.Matrix, samples []float64, dwell, calibration, phaseDeg float64) (linalg.Matrix, float64, error) {
	if len(samples) == 0 {
		return rho, 0, nil
	}
	if math.IsNaN(dwell) || math.IsInf(dwell, 0) || dwell <= 0 {
		return linalg.Matrix{}, 0, fmt.Errorf("pulse: dwell must be positive, got %v", dwell)
	}
	if math.IsNaN(calibration) || math.IsInf(calibration, 0) {
		return linalg.Matrix{}, 0, fmt.Errorf("pulse: calibration is not finite")
	}

	// The dwell propagator is constant across the train; compute it once.
	step, err := evolve.Propagator(h, dwell)
	if err != nil {
		return linalg.Matrix{}, 0, fmt.Errorf("pulse: %w", err)
	}

	for i, s := range samples {
		angle := s * calibration * 180 / math.Pi
		rot, err := operator.Rotation(sys, angle, phaseDeg)
		if err != nil {
			return linalg.Matrix{}, 0, fmt.Errorf("pulse: sample %d: %w", i, err)
		}
		rho = evolve.Apply(rot, rho)
		rho = evolve.Apply(step, rho)
	}
	return rho, float64(len(samples)) * dwell, nil
}
