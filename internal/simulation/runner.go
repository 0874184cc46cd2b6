package simulation

import (
	"io"
	"log/slog"
	"testing"

	"github.com/nvandessel/spinsim/internal/acquire"
	"github.com/nvandessel/spinsim/internal/logging"
	"github.com/nvandessel/spinsim/internal/sequence"
)

// Result holds everything a scenario test may want to inspect: the
// sequence's terminal state and the synthesized signal.
type Result struct {
	Sequence sequence.Result
	Signal   []complex128
}

// Runner executes full pipeline scenarios with a quiet logger and fails
// the test on any pipeline error, so scenario tests read as straight-line
// physics assertions.
type Runner struct {
	t   *testing.T
	log *slog.Logger
}

// NewRunner creates a simulation runner. Logs are swallowed; scenarios
// assert on numbers, not log lines.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t, log: logging.NewLogger("debug", io.Discard)}
}

// Run executes the scenario end to end: sequence, then acquisition.
func (r *Runner) Run(sc Scenario) Result {
	r.t.Helper()

	res, err := sequence.Run(sc.System, sc.Waveform, sc.Params, r.log, nil)
	if err != nil {
		r.t.Fatalf("scenario %s: sequence: %v", sc.Name, err)
	}

	signal, err := acquire.Synthesize(res.Rho, res.H, res.Detect, sc.AcqDwell, sc.Points)
	if err != nil {
		r.t.Fatalf("scenario %s: acquire: %v", sc.Name, err)
	}

	return Result{Sequence: res, Signal: signal}
}
