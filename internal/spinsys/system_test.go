package spinsys

import (
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		spins     []Spin
		couplings []Coupling
		wantErr   bool
	}{
		{
			name:  "valid two spin",
			spins: []Spin{{Label: "A", ShiftHz: 10}, {Label: "B", ShiftHz: -5}},
			couplings: []Coupling{
				{A: 0, B: 1, JHz: 7},
			},
		},
		{
			name:  "valid uncoupled",
			spins: []Spin{{Label: "A", ShiftHz: 0}},
		},
		{
			name:    "no spins",
			spins:   nil,
			wantErr: true,
		},
		{
			name:    "non-finite shift",
			spins:   []Spin{{Label: "A", ShiftHz: math.NaN()}},
			wantErr: true,
		},
		{
			name:      "coupling out of range",
			spins:     []Spin{{Label: "A"}, {Label: "B"}},
			couplings: []Coupling{{A: 0, B: 2, JHz: 1}},
			wantErr:   true,
		},
		{
			name:      "self coupling",
			spins:     []Spin{{Label: "A"}, {Label: "B"}},
			couplings: []Coupling{{A: 1, B: 1, JHz: 1}},
			wantErr:   true,
		},
		{
			name:      "non-finite coupling",
			spins:     []Spin{{Label: "A"}, {Label: "B"}},
			couplings: []Coupling{{A: 0, B: 1, JHz: math.Inf(1)}},
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("test", tt.spins, tt.couplings)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCouplingSymmetry(t *testing.T) {
	sys, err := New("test",
		[]Spin{{Label: "A"}, {Label: "B"}, {Label: "C"}},
		[]Coupling{{A: 2, B: 0, JHz: 7.3}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sys.J(0, 2) != 7.3 || sys.J(2, 0) != 7.3 {
		t.Errorf("J(0,2)=%v J(2,0)=%v, want both 7.3", sys.J(0, 2), sys.J(2, 0))
	}
	for i := 0; i < sys.Count(); i++ {
		if sys.J(i, i) != 0 {
			t.Errorf("J(%d,%d) = %v, want 0", i, i, sys.J(i, i))
		}
	}
}

func TestDim(t *testing.T) {
	for spins, want := range map[int]int{1: 2, 2: 4, 3: 8} {
		ss := make([]Spin, spins)
		sys, err := New("test", ss, nil)
		if err != nil {
			t.Fatalf("New(%d spins): %v", spins, err)
		}
		if sys.Dim() != want {
			t.Errorf("Dim() with %d spins = %d, want %d", spins, sys.Dim(), want)
		}
	}
}

func TestShiftedIsPure(t *testing.T) {
	sys, err := New("test", []Spin{{Label: "A", ShiftHz: 100}, {Label: "B", ShiftHz: 50}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	shifted, err := sys.Shifted(-15)
	if err != nil {
		t.Fatalf("Shifted: %v", err)
	}

	// The original is untouched.
	if sys.ShiftHz(0) != 100 || sys.OffsetHz() != 0 {
		t.Errorf("original mutated: shift=%v offset=%v", sys.ShiftHz(0), sys.OffsetHz())
	}
	// Every spin moves uniformly.
	if shifted.ShiftHz(0) != 85 || shifted.ShiftHz(1) != 35 {
		t.Errorf("shifted = (%v, %v), want (85, 35)", shifted.ShiftHz(0), shifted.ShiftHz(1))
	}

	// Shifts accumulate.
	twice, err := shifted.Shifted(-15)
	if err != nil {
		t.Fatalf("Shifted: %v", err)
	}
	if twice.OffsetHz() != -30 {
		t.Errorf("accumulated offset = %v, want -30", twice.OffsetHz())
	}
}

func TestShiftedNonFinite(t *testing.T) {
	sys, err := New("test", []Spin{{Label: "A"}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := sys.Shifted(math.NaN()); err == nil {
		t.Error("Shifted(NaN) should fail")
	}
}
