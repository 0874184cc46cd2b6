package sequence

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/spinsim/internal/logging"
	"github.com/nvandessel/spinsim/internal/spinsys"
)

func readSteps(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "steps.jsonl"))
	return string(data), err
}

func defaultParams() Params {
	return Params{
		EchoTime:    0.068,
		T12:         0.006,
		PulseDwell:  32e-6,
		Calibration: 1.0,
	}
}

func testSystem(t *testing.T) spinsys.System {
	t.Helper()
	sys, err := spinsys.New("test",
		[]spinsys.Spin{{Label: "A", ShiftHz: 140}, {Label: "B", ShiftHz: -35}},
		[]spinsys.Coupling{{A: 0, B: 1, JHz: 7.3}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sys
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr string
	}{
		{name: "valid", mutate: func(*Params) {}},
		{name: "zero t12 ok", mutate: func(p *Params) { p.T12 = 0 }},
		{name: "zero TE", mutate: func(p *Params) { p.EchoTime = 0 }, wantErr: "echo time"},
		{name: "negative TE", mutate: func(p *Params) { p.EchoTime = -1 }, wantErr: "echo time"},
		{name: "negative t12", mutate: func(p *Params) { p.T12 = -0.001 }, wantErr: "t12"},
		{name: "zero dwell", mutate: func(p *Params) { p.PulseDwell = 0 }, wantErr: "pulse dwell"},
		{name: "NaN calibration", mutate: func(p *Params) { p.Calibration = math.NaN() }, wantErr: "calibration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestRun(t *testing.T) {
	sys := testSystem(t)
	log := logging.NewLogger("info", io.Discard)
	wave := []float64{0.1, 0.24, 0.1}

	res, err := Run(sys, wave, defaultParams(), log, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Rho.N != sys.Dim() {
		t.Errorf("Rho dimension = %d, want %d", res.Rho.N, sys.Dim())
	}
	if !res.Rho.IsHermitian(1e-10) {
		t.Error("terminal state is not Hermitian")
	}
	if math.Abs(res.Timing.Total()-0.068) > 1e-12 {
		t.Errorf("timing total = %v, want 0.068", res.Timing.Total())
	}
	if res.H.N != sys.Dim() || res.Detect.N != sys.Dim() {
		t.Error("Result operators have the wrong dimension")
	}
}

func TestRunDeterministic(t *testing.T) {
	sys := testSystem(t)
	log := logging.NewLogger("info", io.Discard)
	wave := []float64{0.05, 0.2, 0.05}

	a, err := Run(sys, wave, defaultParams(), log, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(sys, wave, defaultParams(), log, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !a.Rho.EqualWithin(b.Rho, 0) {
		t.Error("repeated runs differ")
	}
}

func TestRunEditingPulseMatters(t *testing.T) {
	// Switching the editing pulse off (zero amplitude, same duration) must
	// change the terminal state for a coupled system.
	sys := testSystem(t)
	log := logging.NewLogger("info", io.Discard)

	on, err := Run(sys, []float64{0.24, 0.24, 0.24, 0.24}, defaultParams(), log, nil)
	if err != nil {
		t.Fatalf("Run(on): %v", err)
	}
	off, err := Run(sys, make([]float64, 4), defaultParams(), log, nil)
	if err != nil {
		t.Fatalf("Run(off): %v", err)
	}
	if on.Rho.EqualWithin(off.Rho, 1e-9) {
		t.Error("editing pulse has no effect on the terminal state")
	}
}

func TestRunInvalidParams(t *testing.T) {
	sys := testSystem(t)
	log := logging.NewLogger("info", io.Discard)
	p := defaultParams()
	p.PulseDwell = 0
	if _, err := Run(sys, []float64{0.1}, p, log, nil); err == nil {
		t.Error("Run should reject invalid params")
	}
}

func TestRunPulseTooLong(t *testing.T) {
	sys := testSystem(t)
	log := logging.NewLogger("info", io.Discard)
	// 2000 samples at 32 µs is 64 ms, far beyond the echo half.
	if _, err := Run(sys, make([]float64, 2000), defaultParams(), log, nil); err == nil {
		t.Error("Run should reject a pulse that does not fit in the echo")
	}
}

func TestRunStepTrace(t *testing.T) {
	sys := testSystem(t)
	log := logging.NewLogger("info", io.Discard)
	dir := t.TempDir()
	steps := logging.NewStepLogger(dir, "debug")
	if steps == nil {
		t.Fatal("NewStepLogger returned nil at debug level")
	}
	defer steps.Close()

	if _, err := Run(sys, []float64{0.1, 0.1}, defaultParams(), log, steps); err != nil {
		t.Fatalf("Run: %v", err)
	}
	steps.Close()

	data, err := readSteps(dir)
	if err != nil {
		t.Fatalf("reading steps.jsonl: %v", err)
	}
	for _, step := range []string{"excite-90y", "delay-t12", "edit-pulse-1", "edit-pulse-2", "delay-g2r"} {
		if !strings.Contains(data, step) {
			t.Errorf("step trace missing %q", step)
		}
	}
}
