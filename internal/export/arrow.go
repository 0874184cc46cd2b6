package export

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// signalSchema is the Arrow layout of a synthesized FID: acquisition time
// and the real and imaginary parts of each sample.
var signalSchema = arrow.NewSchema([]arrow.Field{
	{Name: "time_s", Type: arrow.PrimitiveTypes.Float64},
	{Name: "re", Type: arrow.PrimitiveTypes.Float64},
	{Name: "im", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// WriteArrow writes the signal as a single-record Arrow IPC file. Sample i
// is stamped at i*dwell seconds from the start of acquisition.
func WriteArrow(path string, dwell float64, signal []complex128) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	mem := memory.NewGoAllocator()
	b := array.NewRecordBuilder(mem, signalSchema)
	defer b.Release()

	times := make([]float64, len(signal))
	res := make([]float64, len(signal))
	ims := make([]float64, len(signal))
	for i, v := range signal {
		times[i] = float64(i) * dwell
		res[i] = real(v)
		ims[i] = imag(v)
	}
	b.Field(0).(*array.Float64Builder).AppendValues(times, nil)
	b.Field(1).(*array.Float64Builder).AppendValues(res, nil)
	b.Field(2).(*array.Float64Builder).AppendValues(ims, nil)

	rec := b.NewRecord()
	defer rec.Release()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(signalSchema), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
