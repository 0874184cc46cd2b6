// Package acquire synthesizes the detected time-domain signal (the FID)
// from the sequence's terminal density operator.
package acquire

import (
	"fmt"
	"math"

	"github.com/nvandessel/spinsim/internal/evolve"
	"github.com/nvandessel/spinsim/internal/linalg"
)

// Synthesize samples the expectation value of detect against rho for
// points acquisition steps of the given dwell. The order within a step is
// sample-then-evolve, so sample 0 is taken at the instant detection begins.
// The dwell propagator is constant across the loop and computed once.
func Synthesize(rho, h, detect linalg.Matrix, dwell float64, points int) ([]complex128, error) {
	if points < 0 {
		return nil, fmt.Errorf("acquire: negative sample count %d", points)
	}
	if points == 0 {
		return []complex128{}, nil
	}
	if math.IsNaN(dwell) || math.IsInf(dwell, 0) || dwell <= 0 {
		return nil, fmt.Errorf("acquire: dwell must be positive, got %v", dwell)
	}

	step, err := evolve.Propagator(h, dwell)
	if err != nil {
		return nil, fmt.Errorf("acquire: %w", err)
	}

	signal := make([]complex128, points)
	work := rho
	for i := 0; i < points; i++ {
		signal[i] = evolve.Expect(work, detect)
		work = evolve.Apply(step, work)
	}
	return signal, nil
}
