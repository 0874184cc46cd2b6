package linalg

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	id := Identity(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if got := id.At(i, j); got != want {
				t.Errorf("Identity(3)[%d][%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestMul(t *testing.T) {
	a := Matrix{N: 2, Data: []complex128{1, 2, 3, 4}}
	b := Matrix{N: 2, Data: []complex128{5, 6, 7, 8}}
	got := a.Mul(b)
	want := Matrix{N: 2, Data: []complex128{19, 22, 43, 50}}
	if !got.EqualWithin(want, 0) {
		t.Errorf("Mul = %v, want %v", got.Data, want.Data)
	}

	if !a.Mul(Identity(2)).EqualWithin(a, 0) {
		t.Error("a * I != a")
	}
	if !Identity(2).Mul(a).EqualWithin(a, 0) {
		t.Error("I * a != a")
	}
}

func TestDagger(t *testing.T) {
	a := Matrix{N: 2, Data: []complex128{
		complex(1, 2), complex(3, 4),
		complex(5, 6), complex(7, 8),
	}}
	got := a.Dagger()
	want := Matrix{N: 2, Data: []complex128{
		complex(1, -2), complex(5, -6),
		complex(3, -4), complex(7, -8),
	}}
	if !got.EqualWithin(want, 0) {
		t.Errorf("Dagger = %v, want %v", got.Data, want.Data)
	}
	if !a.Dagger().Dagger().EqualWithin(a, 0) {
		t.Error("double dagger is not the original")
	}
}

func TestTrace(t *testing.T) {
	a := Matrix{N: 2, Data: []complex128{complex(1, 1), 2, 3, complex(4, -5)}}
	if got := a.Trace(); got != complex(5, -4) {
		t.Errorf("Trace = %v, want (5-4i)", got)
	}
}

func TestKron(t *testing.T) {
	a := Matrix{N: 2, Data: []complex128{1, 0, 0, 2}}
	b := Matrix{N: 2, Data: []complex128{0, 1, 1, 0}}
	got := Kron(a, b)
	want := Matrix{N: 4, Data: []complex128{
		0, 1, 0, 0,
		1, 0, 0, 0,
		0, 0, 0, 2,
		0, 0, 2, 0,
	}}
	if !got.EqualWithin(want, 0) {
		t.Errorf("Kron = %v, want %v", got.Data, want.Data)
	}

	// Identity is the Kronecker unit.
	if !Kron(Identity(2), Identity(3)).EqualWithin(Identity(6), 0) {
		t.Error("I2 ⊗ I3 != I6")
	}
}

func TestHermitianAndUnitaryChecks(t *testing.T) {
	herm := Matrix{N: 2, Data: []complex128{
		1, complex(0, -1),
		complex(0, 1), 2,
	}}
	if !herm.IsHermitian(1e-15) {
		t.Error("Hermitian matrix not recognized")
	}

	notHerm := Matrix{N: 2, Data: []complex128{1, 2, 3, 4}}
	if notHerm.IsHermitian(1e-15) {
		t.Error("non-Hermitian matrix reported Hermitian")
	}

	// A rotation is unitary.
	c, s := math.Cos(0.3), math.Sin(0.3)
	rot := Matrix{N: 2, Data: []complex128{
		complex(c, 0), complex(-s, 0),
		complex(s, 0), complex(c, 0),
	}}
	if !rot.IsUnitaryWithin(1e-14) {
		t.Error("rotation not recognized as unitary")
	}
	if herm.IsUnitaryWithin(1e-14) {
		t.Error("non-unitary matrix reported unitary")
	}
}

func TestCloneIndependence(t *testing.T) {
	a := Identity(2)
	b := a.Clone()
	b.Set(0, 0, 42)
	if a.At(0, 0) != 1 {
		t.Error("Clone shares storage with the original")
	}
}
