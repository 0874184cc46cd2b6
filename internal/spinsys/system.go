// Package spinsys models the static description of a coupled nuclear spin
// system: per-spin chemical shifts, the scalar J-coupling matrix, and a
// global frequency offset. A System is an immutable value; off-resonance
// experiments are modeled by deriving a shifted copy, never by mutation.
package spinsys

import (
	"fmt"
	"math"
)

// Spin is one spin-1/2 nucleus in the system.
type Spin struct {
	// Label is a human-readable name, e.g. "H4a".
	Label string
	// ShiftHz is the chemical-shift offset in Hz relative to the carrier.
	ShiftHz float64
}

// Coupling is a scalar J coupling between two spins, by index.
type Coupling struct {
	A, B int
	JHz  float64
}

// System is an immutable coupled spin system. The coupling matrix is
// symmetric with a zero diagonal; the Hilbert-space dimension is 2^n.
type System struct {
	name     string
	spins    []Spin
	j        [][]float64
	offsetHz float64
}

// New builds a System from spins and pairwise couplings. It validates that
// there is at least one spin, that all values are finite, that coupling
// indices are in range, and that no spin couples to itself.
func New(name string, spins []Spin, couplings []Coupling) (System, error) {
	if len(spins) == 0 {
		return System{}, fmt.Errorf("spinsys: system %q has no spins", name)
	}
	for i, s := range spins {
		if !isFinite(s.ShiftHz) {
			return System{}, fmt.Errorf("spinsys: spin %d (%s): shift is not finite", i, s.Label)
		}
	}

	j := make([][]float64, len(spins))
	for i := range j {
		j[i] = make([]float64, len(spins))
	}
	for _, c := range couplings {
		if c.A < 0 || c.A >= len(spins) || c.B < 0 || c.B >= len(spins) {
			return System{}, fmt.Errorf("spinsys: coupling (%d,%d) out of range for %d spins", c.A, c.B, len(spins))
		}
		if c.A == c.B {
			return System{}, fmt.Errorf("spinsys: spin %d coupled to itself", c.A)
		}
		if !isFinite(c.JHz) {
			return System{}, fmt.Errorf("spinsys: coupling (%d,%d): J is not finite", c.A, c.B)
		}
		j[c.A][c.B] = c.JHz
		j[c.B][c.A] = c.JHz
	}

	own := make([]Spin, len(spins))
	copy(own, spins)
	return System{name: name, spins: own, j: j}, nil
}

// Name returns the system's name.
func (s System) Name() string { return s.name }

// Count returns the number of spins.
func (s System) Count() int { return len(s.spins) }

// Dim returns the Hilbert-space dimension, 2^Count.
func (s System) Dim() int { return 1 << len(s.spins) }

// Spin returns spin i.
func (s System) Spin(i int) Spin { return s.spins[i] }

// J returns the coupling constant between spins a and b in Hz.
func (s System) J(a, b int) float64 { return s.j[a][b] }

// OffsetHz returns the accumulated global frequency offset in Hz.
func (s System) OffsetHz() float64 { return s.offsetHz }

// ShiftHz returns the effective frequency of spin i, chemical shift plus
// global offset, in Hz.
func (s System) ShiftHz(i int) float64 { return s.spins[i].ShiftHz + s.offsetHz }

// Shifted returns a copy of the system with amountHz added uniformly to
// every spin frequency. The receiver is unchanged; this is the only way to
// model an off-resonance acquisition.
func (s System) Shifted(amountHz float64) (System, error) {
	if !isFinite(amountHz) {
		return System{}, fmt.Errorf("spinsys: offset shift is not finite")
	}
	out := s
	out.offsetHz = s.offsetHz + amountHz
	return out, nil
}

// String summarizes the system for logs and the info command.
func (s System) String() string {
	return fmt.Sprintf("%s: %d spins, dim %d, offset %.3f Hz", s.name, s.Count(), s.Dim(), s.offsetHz)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
