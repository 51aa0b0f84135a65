package core

import "math/cmplx"

/*------------------------------------------------------------------
 *
 * Purpose:	Automatic gain control, normalizing instantaneous
 *		magnitude toward a target using a first order low pass.
 *
 * Tracks a smoothed magnitude estimate and scales each sample by its
 * inverse, so the downstream timing and carrier loops see a roughly
 * constant signal amplitude regardless of input level.
 *
 *----------------------------------------------------------------*/

// AGC normalizes instantaneous magnitude toward a target level.
type AGC struct {
	target float64
	gain   float64
	pole   float64
}

// NewAGC returns an AGC with unity initial gain, settling toward the
// given target magnitude.
func NewAGC(target float64) *AGC {
	return &AGC{
		target: target,
		gain:   1,
		pole:   5e-3,
	}
}

// Apply returns x*gain and updates gain toward target/|x|.
func (a *AGC) Apply(x complex64) complex64 {
	y := x * complex(float32(a.gain), 0)

	mag := cmplx.Abs(complex128(x))
	if mag > 1e-12 {
		a.gain += a.pole * (a.target/mag - a.gain)
	}
	if a.gain <= 0 {
		a.gain = 1e-9
	}
	return y
}

// Gain returns the current gain scalar.
func (a *AGC) Gain() float64 {
	return a.gain
}
