// Package export writes the synthesized signal to interchange formats for
// downstream analysis tooling: a MATLAB Level-5 .mat file (the format the
// original analysis pipeline consumes), an Arrow IPC file for columnar
// tooling, and CSV for quick inspection.
package export

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// MAT-file constants for the minimal Level-5 subset written here: one
// complex double-precision column vector.
const (
	matVersion = 0x0100

	miINT8   = 1
	miINT32  = 5
	miUINT32 = 6
	miDOUBLE = 9
	miMATRIX = 14

	mxDoubleClass = 6
	complexFlag   = 0x0800
)

// WriteMAT writes signal as a complex column vector named varName to a
// MATLAB Level-5 .mat file at path.
func WriteMAT(path, varName string, signal []complex128) error {
	if varName == "" {
		return fmt.Errorf("export: variable name must not be empty")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	if err := writeMATHeader(f); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writeMATMatrix(f, varName, signal); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func writeMATHeader(f *os.File) error {
	header := make([]byte, 128)
	text := "MATLAB 5.0 MAT-file, created by spinsim"
	copy(header, text)
	for i := len(text); i < 116; i++ {
		header[i] = ' '
	}
	binary.LittleEndian.PutUint16(header[124:], matVersion)
	header[126] = 'I'
	header[127] = 'M'
	_, err := f.Write(header)
	return err
}

func writeMATMatrix(f *os.File, name string, signal []complex128) error {
	n := len(signal)
	namePadded := pad8(len(name))
	dataBytes := 8 * n

	// miMATRIX payload: array flags (16) + dimensions (16) + name tag and
	// padded name + real and imaginary parts, each with its own tag.
	total := 16 + 16 + (8 + namePadded) + (8 + dataBytes) + (8 + dataBytes)

	buf := make([]byte, 0, 8+total)
	buf = appendTag(buf, miMATRIX, total)

	// Array flags: double class, complex.
	buf = appendTag(buf, miUINT32, 8)
	buf = binary.LittleEndian.AppendUint32(buf, mxDoubleClass|complexFlag)
	buf = binary.LittleEndian.AppendUint32(buf, 0)

	// Dimensions: n x 1 column vector.
	buf = appendTag(buf, miINT32, 8)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(n))
	buf = binary.LittleEndian.AppendUint32(buf, 1)

	// Array name.
	buf = appendTag(buf, miINT8, len(name))
	buf = append(buf, name...)
	for i := len(name); i < namePadded; i++ {
		buf = append(buf, 0)
	}

	// Real part, then imaginary part.
	buf = appendTag(buf, miDOUBLE, dataBytes)
	for _, v := range signal {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(real(v)))
	}
	buf = appendTag(buf, miDOUBLE, dataBytes)
	for _, v := range signal {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(imag(v)))
	}

	_, err := f.Write(buf)
	return err
}

func appendTag(buf []byte, typ, size int) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(typ))
	return binary.LittleEndian.AppendUint32(buf, uint32(size))
}

func pad8(n int) int {
	if n%8 == 0 {
		return n
	}
	return n + 8 - n%8
}
