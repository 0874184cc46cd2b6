package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

func TestWriteArrow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fid.arrow")
	const dwell = 2e-4
	signal := []complex128{
		complex(0.5, 0),
		complex(0.25, -0.25),
		complex(0, 0.125),
	}
	if err := WriteArrow(path, dwell, signal); err != nil {
		t.Fatalf("WriteArrow: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		t.Fatalf("NewFileReader: %v", err)
	}
	defer r.Close()

	if !r.Schema().Equal(signalSchema) {
		t.Errorf("schema = %v, want %v", r.Schema(), signalSchema)
	}
	if r.NumRecords() != 1 {
		t.Fatalf("NumRecords = %d, want 1", r.NumRecords())
	}

	rec, err := r.Record(0)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if rec.NumRows() != int64(len(signal)) {
		t.Fatalf("NumRows = %d, want %d", rec.NumRows(), len(signal))
	}

	times := rec.Column(0).(*array.Float64)
	res := rec.Column(1).(*array.Float64)
	ims := rec.Column(2).(*array.Float64)
	for i, v := range signal {
		if times.Value(i) != float64(i)*dwell {
			t.Errorf("time[%d] = %v, want %v", i, times.Value(i), float64(i)*dwell)
		}
		if res.Value(i) != real(v) || ims.Value(i) != imag(v) {
			t.Errorf("sample %d = (%v, %v), want %v", i, res.Value(i), ims.Value(i), v)
		}
	}
}

func TestWriteArrowMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fid.arrow")
	if err := WriteArrow(path, 2e-4, []complex128{1}); err != nil {
		t.Fatalf("WriteArrow: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) < 6 || string(data[:6]) != "ARROW1" {
		t.Error("file does not start with the Arrow IPC magic")
	}
}
