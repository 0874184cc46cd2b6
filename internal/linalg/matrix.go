// Package linalg provides the dense complex linear algebra underneath the
// spin simulator: square complex128 matrices in a fixed row-major layout,
// a Hermitian eigensolver, and the unitary exponential exp(-iHt).
//
// The representation is deliberately concrete: every operator in the
// simulator is a dense matrix over the standard product basis, so numeric
// results are reproducible across runs and platforms.
package linalg

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Matrix is a dense square complex matrix of side N, stored row-major.
// Methods never mutate their receiver unless documented otherwise; the
// simulator relies on operators being independent values.
type Matrix struct {
	N    int
	Data []complex128
}

// New returns a zero matrix of side n.
func New(n int) Matrix {
	return Matrix{N: n, Data: make([]complex128, n*n)}
}

// Identity returns the n-by-n identity.
func Identity(n int) Matrix {
	m := New(n)
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m
}

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) complex128 { return m.Data[i*m.N+j] }

// Set assigns the element at row i, column j.
func (m Matrix) Set(i, j int, v complex128) { m.Data[i*m.N+j] = v }

// Clone returns an independent copy.
func (m Matrix) Clone() Matrix {
	c := Matrix{N: m.N, Data: make([]complex128, len(m.Data))}
	copy(c.Data, m.Data)
	return c
}

// Add returns m + b.
func (m Matrix) Add(b Matrix) Matrix {
	if m.N != b.N {
		panic(fmt.Sprintf("linalg: dimension mismatch %d != %d", m.N, b.N))
	}
	out := New(m.N)
	for i := range m.Data {
		out.Data[i] = m.Data[i] + b.Data[i]
	}
	return out
}

// Scale returns s * m.
func (m Matrix) Scale(s complex128) Matrix {
	out := New(m.N)
	for i := range m.Data {
		out.Data[i] = s * m.Data[i]
	}
	return out
}

// Mul returns the matrix product m * b.
func (m Matrix) Mul(b Matrix) Matrix {
	if m.N != b.N {
		panic(fmt.Sprintf("linalg: dimension mismatch %d != %d", m.N, b.N))
	}
	n := m.N
	out := New(n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a := m.Data[i*n+k]
			if a == 0 {
				continue
			}
			row := b.Data[k*n:]
			dst := out.Data[i*n:]
			for j := 0; j < n; j++ {
				dst[j] += a * row[j]
			}
		}
	}
	return out
}

// Dagger returns the conjugate transpose m†.
func (m Matrix) Dagger() Matrix {
	n := m.N
	out := New(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Data[j*n+i] = cmplx.Conj(m.Data[i*n+j])
		}
	}
	return out
}

// Trace returns the sum of diagonal elements.
func (m Matrix) Trace() complex128 {
	var t complex128
	for i := 0; i < m.N; i++ {
		t += m.Data[i*m.N+i]
	}
	return t
}

// Kron returns the Kronecker product a ⊗ b.
func Kron(a, b Matrix) Matrix {
	n := a.N * b.N
	out := New(n)
	for ia := 0; ia < a.N; ia++ {
		for ja := 0; ja < a.N; ja++ {
			v := a.At(ia, ja)
			if v == 0 {
				continue
			}
			for ib := 0; ib < b.N; ib++ {
				for jb := 0; jb < b.N; jb++ {
					out.Set(ia*b.N+ib, ja*b.N+jb, v*b.At(ib, jb))
				}
			}
		}
	}
	return out
}

// EqualWithin reports whether every element of m and b differs by at most
// tol in absolute value.
func (m Matrix) EqualWithin(b Matrix, tol float64) bool {
	if m.N != b.N {
		return false
	}
	for i := range m.Data {
		if cmplx.Abs(m.Data[i]-b.Data[i]) > tol {
			return false
		}
	}
	return true
}

// IsHermitian reports whether m equals its conjugate transpose within tol.
func (m Matrix) IsHermitian(tol float64) bool {
	n := m.N
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if cmplx.Abs(m.Data[i*n+j]-cmplx.Conj(m.Data[j*n+i])) > tol {
				return false
			}
		}
	}
	return true
}

// IsUnitaryWithin reports whether m * m† is the identity within tol.
func (m Matrix) IsUnitaryWithin(tol float64) bool {
	return m.Mul(m.Dagger()).EqualWithin(Identity(m.N), tol)
}

// MaxAbs returns the largest element magnitude, used for tolerance scaling.
func (m Matrix) MaxAbs() float64 {
	var max float64
	for i := range m.Data {
		if a := cmplx.Abs(m.Data[i]); a > max {
			max = a
		}
	}
	return max
}

// offDiagNorm returns the Frobenius norm of the off-diagonal part.
func (m Matrix) offDiagNorm() float64 {
	n := m.N
	var s float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			a := cmplx.Abs(m.Data[i*n+j])
			s += a * a
		}
	}
	return math.Sqrt(s)
}
