package linalg

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrNoConvergence is returned when the Jacobi sweeps fail to drive the
// off-diagonal norm below tolerance. It indicates a malformed input rather
// than a recoverable condition and must be surfaced, not masked.
var ErrNoConvergence = errors.New("linalg: eigendecomposition did not converge")

const (
	maxJacobiSweeps = 60
	jacobiTol       = 1e-13
)

// EigHermitian diagonalizes a Hermitian matrix by cyclic complex Jacobi
// rotations. It returns the real eigenvalues and a unitary matrix whose
// columns are the corresponding eigenvectors, so a = v * diag(vals) * v†.
//
// The input is not modified. Eigenvalues are returned in basis order, not
// sorted; callers that only exponentiate the spectrum do not care.
func EigHermitian(a Matrix) ([]float64, Matrix, error) {
	n := a.N
	if n == 0 {
		return nil, Matrix{}, errors.New("linalg: empty matrix")
	}

	m := a.Clone()
	v := Identity(n)
	scale := m.MaxAbs()
	if scale == 0 {
		// Zero matrix: already diagonal.
		return make([]float64, n), v, nil
	}
	tol := jacobiTol * scale * float64(n)

	for sweep := 0; sweep < maxJacobiSweeps; sweep++ {
		if m.offDiagNorm() <= tol {
			vals := make([]float64, n)
			for i := 0; i < n; i++ {
				vals[i] = real(m.Data[i*n+i])
			}
			return vals, v, nil
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				rotate(m, v, p, q)
			}
		}
	}
	return nil, Matrix{}, ErrNoConvergence
}

// rotate zeroes m[p][q] with a unitary 2x2 Jacobi rotation, updating m in
// place as U† m U and accumulating v as v U.
func rotate(m, v Matrix, p, q int) {
	n := m.N
	g := m.Data[p*n+q]
	ag := cmplx.Abs(g)
	if ag == 0 {
		return
	}

	alpha := real(m.Data[p*n+p])
	beta := real(m.Data[q*n+q])

	// cot(2θ) = (α-β)/(2|g|); pick the smaller rotation angle.
	tau := (alpha - beta) / (2 * ag)
	var t float64
	if tau >= 0 {
		t = 1 / (tau + math.Sqrt(1+tau*tau))
	} else {
		t = -1 / (-tau + math.Sqrt(1+tau*tau))
	}
	c := 1 / math.Sqrt(1+t*t)
	s := t * c

	phase := g / complex(ag, 0) // e^{iφ}
	se := complex(s, 0) * phase
	seConj := complex(s, 0) * cmplx.Conj(phase)
	cc := complex(c, 0)

	// Column update: m ← m U, v ← v U.
	for i := 0; i < n; i++ {
		mip := m.Data[i*n+p]
		miq := m.Data[i*n+q]
		m.Data[i*n+p] = mip*cc + miq*seConj
		m.Data[i*n+q] = -mip*se + miq*cc

		vip := v.Data[i*n+p]
		viq := v.Data[i*n+q]
		v.Data[i*n+p] = vip*cc + viq*seConj
		v.Data[i*n+q] = -vip*se + viq*cc
	}

	// Row update: m ← U† m.
	for j := 0; j < n; j++ {
		mpj := m.Data[p*n+j]
		mqj := m.Data[q*n+j]
		m.Data[p*n+j] = cc*mpj + se*mqj
		m.Data[q*n+j] = -seConj*mpj + cc*mqj
	}
}

// UnitaryExp returns exp(-i * h * t) for Hermitian h, computed through the
// eigendecomposition: V diag(exp(-i λ t)) V†. The result is unitary to
// working precision for any real t.
func UnitaryExp(h Matrix, t float64) (Matrix, error) {
	vals, v, err := EigHermitian(h)
	if err != nil {
		return Matrix{}, err
	}
	n := h.N
	// w = V with column k scaled by exp(-i λ_k t).
	w := v.Clone()
	for k := 0; k < n; k++ {
		ph := cmplx.Exp(complex(0, -vals[k]*t))
		for i := 0; i < n; i++ {
			w.Data[i*n+k] *= ph
		}
	}
	return w.Mul(v.Dagger()), nil
}
