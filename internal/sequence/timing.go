package sequence

import (
	"fmt"
	"math"
)

// Timing holds the derived free-precession intervals of the MEGA-PRESS
// sequence, in seconds. The two editing pulses are centered within the two
// halves of the echo time; the derivations below are the experiment's
// defining arithmetic and reproduce the original timing exactly.
type Timing struct {
	// T12 is the interval between the 90° excite and the first 180°.
	T12 float64
	// T2G1 is the interval between the first 180° and editing pulse #1.
	T2G1 float64
	// TG13 is the interval between editing pulse #1 and the second 180°.
	TG13 float64
	// T3G2 is the interval between the second 180° and editing pulse #2.
	T3G2 float64
	// TG2R is the interval between editing pulse #2 and acquisition.
	TG2R float64
	// PulseDur is the duration of one editing pulse (samples * dwell).
	PulseDur float64
}

// Derive computes the free-precession intervals from the echo time, the
// excite-to-refocus interval t12, and the editing-pulse duration.
// Any negative interval means the pulse does not fit inside the echo and
// is a fatal configuration error.
func Derive(echoTime, t12, pulseDur float64) (Timing, error) {
	for _, v := range [...]float64{echoTime, t12, pulseDur} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Timing{}, fmt.Errorf("sequence: timing inputs must be finite and non-negative (te=%v t12=%v pulse=%v)", echoTime, t12, pulseDur)
		}
	}

	t := Timing{T12: t12, PulseDur: pulseDur}
	t.T2G1 = (t12+echoTime/2)/2 - t12 - pulseDur/2
	t.TG13 = echoTime/2 - t.T2G1 - pulseDur
	t.T3G2 = (echoTime/2-t12)/2 - pulseDur/2
	t.TG2R = (echoTime/2 - t12) - t.T3G2 - pulseDur

	for name, v := range map[string]float64{
		"t_2g1": t.T2G1, "t_g13": t.TG13, "t_3g2": t.T3G2, "t_g2r": t.TG2R,
	} {
		if v < 0 {
			return Timing{}, fmt.Errorf("sequence: derived interval %s is negative (%v); editing pulse does not fit in the echo", name, v)
		}
	}
	return t, nil
}

// Total returns the full duration from excitation to acquisition:
// t12 + t_2g1 + pulse + t_g13 + t_3g2 + pulse + t_g2r. By construction
// this equals the echo time.
func (t Timing) Total() float64 {
	return t.T12 + t.T2G1 + t.TG13 + t.T3G2 + t.TG2R + 2*t.PulseDur
}
