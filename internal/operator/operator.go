// Package operator builds the quantum-mechanical operators of a spin
// system: the static Hamiltonian, the equilibrium density operator, the
// detection operator, and RF pulse rotations. Everything lives in the
// standard product basis (spin 0 most significant), the same fixed basis
// linalg matrices use throughout the simulator.
package operator

import (
	"errors"
	"fmt"
	"math"

	"github.com/nvandessel/spinsim/internal/linalg"
	"github.com/nvandessel/spinsim/internal/spinsys"
)

// ErrInvalidDimension reports an operator request over an empty system.
var ErrInvalidDimension = errors.New("operator: system has no spins")

// ErrInvalidArgument reports a non-finite angle or phase.
var ErrInvalidArgument = errors.New("operator: invalid argument")

// Single-spin operators for a spin-1/2 nucleus, in units of ħ.
var (
	ix = linalg.Matrix{N: 2, Data: []complex128{0, 0.5, 0.5, 0}}
	iy = linalg.Matrix{N: 2, Data: []complex128{0, complex(0, -0.5), complex(0, 0.5), 0}}
	iz = linalg.Matrix{N: 2, Data: []complex128{0.5, 0, 0, -0.5}}
)

// embed places a single-spin operator op on spin k of an n-spin system:
// I ⊗ ... ⊗ op ⊗ ... ⊗ I.
func embed(op linalg.Matrix, k, n int) linalg.Matrix {
	out := linalg.Identity(1)
	for i := 0; i < n; i++ {
		if i == k {
			out = linalg.Kron(out, op)
		} else {
			out = linalg.Kron(out, linalg.Identity(2))
		}
	}
	return out
}

// total sums a single-spin operator over all spins (F-type operator).
func total(op linalg.Matrix, n int) linalg.Matrix {
	out := linalg.New(1 << n)
	for k := 0; k < n; k++ {
		out = out.Add(embed(op, k, n))
	}
	return out
}

// Equilibrium returns the thermal-equilibrium density operator in the
// high-temperature limit: the net longitudinal polarization Fz. The
// identity component is omitted; it is invisible to every expectation
// value the simulator takes.
func Equilibrium(sys spinsys.System) (linalg.Matrix, error) {
	if sys.Count() == 0 {
		return linalg.Matrix{}, ErrInvalidDimension
	}
	return total(iz, sys.Count()), nil
}

// Hamiltonian returns the isotropic static Hamiltonian in angular-frequency
// units (rad/s):
//
//	H = 2π [ Σ_k ν_k Iz_k + Σ_{j<k} J_jk (Ix_j Ix_k + Iy_j Iy_k + Iz_j Iz_k) ]
//
// where ν_k is the spin frequency including the system's global offset.
// The strong-coupling scalar product is kept in full; the systems of
// interest are strongly coupled at clinical field strengths.
func Hamiltonian(sys spinsys.System) (linalg.Matrix, error) {
	n := sys.Count()
	if n == 0 {
		return linalg.Matrix{}, ErrInvalidDimension
	}

	h := linalg.New(1 << n)
	for k := 0; k < n; k++ {
		h = h.Add(embed(iz, k, n).Scale(complex(2*math.Pi*sys.ShiftHz(k), 0)))
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			j := sys.J(a, b)
			if j == 0 {
				continue
			}
			dot := embed(ix, a, n).Mul(embed(ix, b, n)).
				Add(embed(iy, a, n).Mul(embed(iy, b, n))).
				Add(embed(iz, a, n).Mul(embed(iz, b, n)))
			h = h.Add(dot.Scale(complex(2*math.Pi*j, 0)))
		}
	}
	return h, nil
}

// Detection returns the total transverse lowering operator
// F⁻ = Σ_k (Ix_k - i Iy_k), the conventional magnetic-resonance observable
// at acquisition.
func Detection(sys spinsys.System) (linalg.Matrix, error) {
	n := sys.Count()
	if n == 0 {
		return linalg.Matrix{}, ErrInvalidDimension
	}
	return total(ix, n).Add(total(iy, n).Scale(complex(0, -1))), nil
}

// Rotation returns the unitary for a non-selective RF pulse of the given
// flip angle about the transverse axis selected by phase (0° = x, 90° = y).
// Because the pulse hits every spin identically, the operator factors into
// a Kronecker product of closed-form 2x2 rotations, which is exact and
// avoids a matrix exponential.
//
// A 360° rotation equals the identity up to the spinor global phase
// ((-1)^n); the phase cancels under conjugation, which is the only way the
// simulator applies a rotation.
func Rotation(sys spinsys.System, angleDeg, phaseDeg float64) (linalg.Matrix, error) {
	n := sys.Count()
	if n == 0 {
		return linalg.Matrix{}, ErrInvalidDimension
	}
	if !finite(angleDeg) || !finite(phaseDeg) {
		return linalg.Matrix{}, fmt.Errorf("%w: angle=%v phase=%v", ErrInvalidArgument, angleDeg, phaseDeg)
	}

	theta := angleDeg * math.Pi / 180
	phi := phaseDeg * math.Pi / 180
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)

	// exp(-iθ(Ix cosφ + Iy sinφ)) for one spin.
	u := linalg.Matrix{N: 2, Data: []complex128{
		complex(c, 0), complex(0, -s) * cexp(-phi),
		complex(0, -s) * cexp(phi), complex(c, 0),
	}}

	out := linalg.Identity(1)
	for i := 0; i < n; i++ {
		out = linalg.Kron(out, u)
	}
	return out, nil
}

func cexp(phi float64) complex128 {
	return complex(math.Cos(phi), math.Sin(phi))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
