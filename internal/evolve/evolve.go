// Package evolve is the propagator engine: it turns the static Hamiltonian
// into unitary time-evolution operators and applies unitaries to density
// operators. Every state change in the simulator flows through Apply.
package evolve

import (
	"errors"
	"fmt"
	"math"

	"github.com/nvandessel/spinsim/internal/linalg"
)

// ErrInvalidArgument reports a negative or non-finite evolution duration.
var ErrInvalidArgument = errors.New("evolve: invalid argument")

// Propagator returns the unitary exp(-i*H*duration) for free precession
// under h over the given duration in seconds. A zero duration yields the
// identity. h must be in angular-frequency units.
func Propagator(h linalg.Matrix, duration float64) (linalg.Matrix, error) {
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		return linalg.Matrix{}, fmt.Errorf("%w: duration %v", ErrInvalidArgument, duration)
	}
	if duration == 0 {
		return linalg.Identity(h.N), nil
	}
	u, err := linalg.UnitaryExp(h, duration)
	if err != nil {
		return linalg.Matrix{}, fmt.Errorf("propagator for duration %v: %w", duration, err)
	}
	return u, nil
}

// Apply conjugates a density operator by a unitary: U ρ U†. It returns a
// new matrix and preserves Hermiticity and trace to working precision.
func Apply(u, rho linalg.Matrix) linalg.Matrix {
	return u.Mul(rho).Mul(u.Dagger())
}

// Expect returns the expectation value trace(ρ O).
func Expect(rho, o linalg.Matrix) complex128 {
	return rho.Mul(o).Trace()
}
