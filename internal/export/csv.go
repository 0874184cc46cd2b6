package export

import (
	"fmt"
	"io"
)

// WriteCSV writes the signal as index,time_s,re,im rows with a header.
func WriteCSV(w io.Writer, dwell float64, signal []complex128) error {
	if _, err := fmt.Fprintln(w, "index,time_s,re,im"); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for i, v := range signal {
		if _, err := fmt.Fprintf(w, "%d,%g,%g,%g\n", i, float64(i)*dwell, real(v), imag(v)); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}
