// Package waveform reads and writes RF pulse envelopes. The on-disk format
// is the one the scanner tooling produces: raw IEEE-754 32-bit
// little-endian floats, no header, sample count = file size / 4.
package waveform

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Load reads an amplitude waveform from path. The returned slice is owned
// by the caller; the file is read once and never consulted again.
func Load(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading waveform: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("waveform %s: size %d is not a multiple of 4", path, len(data))
	}

	samples := make([]float64, len(data)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		v := float64(math.Float32frombits(bits))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("waveform %s: sample %d is not finite", path, i)
		}
		samples[i] = v
	}
	return samples, nil
}

// Save writes an amplitude waveform to path in the same raw float32 format.
func Save(path string, samples []float64) error {
	buf := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)))
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("writing waveform: %w", err)
	}
	return nil
}

// Gaussian returns an n-sample Gaussian envelope truncated at truncate
// times the standard deviation on each side and peaking at amp. This is
// the editing-pulse shape the original experiment used; the area under the
// envelope (times the dwell) sets the effective flip angle.
func Gaussian(n int, amp, truncate float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	mid := float64(n-1) / 2
	sigma := mid / truncate
	if sigma == 0 {
		out[0] = amp
		return out
	}
	for i := range out {
		x := (float64(i) - mid) / sigma
		out[i] = amp * math.Exp(-x*x/2)
	}
	return out
}
