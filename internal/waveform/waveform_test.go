package waveform

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulse.dat")
	in := []float64{0, 0.01, 0.12, 0.24, 0.12, 0.01, 0}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("Load returned %d samples, want %d", len(out), len(in))
	}
	for i := range in {
		// Values pass through float32 on disk.
		if math.Abs(out[i]-in[i]) > 1e-7 {
			t.Errorf("sample %d = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestLoadBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.dat")
	if err := os.WriteFile(path, []byte{1, 2, 3, 4, 5}, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should reject a size not divisible by 4")
	}
}

func TestLoadNonFinite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.dat")
	if err := Save(path, []float64{0.1, math.NaN(), 0.1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should reject non-finite samples")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.dat")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dat")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("empty file yielded %d samples", len(out))
	}
}

func TestGaussian(t *testing.T) {
	const n, amp = 440, 0.24
	w := Gaussian(n, amp, 2.5)
	if len(w) != n {
		t.Fatalf("len = %d, want %d", len(w), n)
	}

	// Peak at the center, symmetric, monotone toward the edges.
	peak := 0.0
	for _, v := range w {
		if v > peak {
			peak = v
		}
	}
	if math.Abs(peak-amp) > 1e-12 {
		t.Errorf("peak = %v, want %v", peak, amp)
	}
	for i := 0; i < n/2; i++ {
		if math.Abs(w[i]-w[n-1-i]) > 1e-12 {
			t.Errorf("asymmetric at %d: %v vs %v", i, w[i], w[n-1-i])
		}
		if i > 0 && w[i] < w[i-1] {
			t.Errorf("not monotone rising at %d", i)
		}
	}

	// Truncation level at the edges: exp(-truncate²/2).
	wantEdge := amp * math.Exp(-2.5*2.5/2)
	if math.Abs(w[0]-wantEdge) > 1e-12 {
		t.Errorf("edge = %v, want %v", w[0], wantEdge)
	}
}

func TestGaussianDegenerate(t *testing.T) {
	if Gaussian(0, 1, 2) != nil {
		t.Error("Gaussian(0) should be nil")
	}
	one := Gaussian(1, 0.5, 2)
	if len(one) != 1 || one[0] != 0.5 {
		t.Errorf("Gaussian(1) = %v, want [0.5]", one)
	}
}
