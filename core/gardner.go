package core

import "math"

/*------------------------------------------------------------------
 *
 * Purpose:	Gardner timing-error detector, run over the interpolated
 *		stream to extract one sample per symbol via a fractional
 *		delay control loop.
 *
 * A fractional sample-offset accumulator advances once per input
 * sample; mid-symbol and end-symbol samples are captured and compared
 * to steer the accumulator toward the true symbol boundary.
 *
 *----------------------------------------------------------------*/

// Gardner recovers symbol timing from an oversampled complex stream.
type Gardner struct {
	offset float64 // resync_offset: fractional accumulator
	period float64 // resync_period: nominal samples/symbol
	gain   float64 // loop gain divisor

	before complex64
	mid    complex64
	cur    complex64
}

// NewGardner builds a Gardner resampler for the given nominal samples
// per symbol (L*Fs/symRate).
func NewGardner(period float64) *Gardner {
	return &Gardner{
		period: period,
		gain:   2e6,
	}
}

// Period returns the nominal samples-per-symbol stride.
func (g *Gardner) Period() float64 {
	return g.period
}

// Offset returns the current fractional timing accumulator, exposed for
// testing convergence behavior.
func (g *Gardner) Offset() float64 {
	return g.offset
}

// Step advances the timing loop by one interpolated input sample. It
// applies agc to samples captured at the mid- and end-symbol windows,
// and once per recovered symbol runs the result through costas and
// returns a pair of saturated signed 8-bit soft symbols.
func (g *Gardner) Step(x complex64, agc *AGC, costas *Costas) (i, q int8, emitted bool) {
	g.offset++

	if g.offset >= g.period/2 && g.offset < g.period/2+1 {
		g.mid = agc.Apply(x)
	}

	if g.offset < g.period {
		return 0, 0, false
	}

	g.cur = agc.Apply(x)
	for g.offset >= g.period {
		g.offset -= g.period
	}

	tau := float64(imag(g.cur)-imag(g.before)) * float64(imag(g.mid))
	g.offset += tau * g.period / g.gain

	g.before = g.cur

	out := costas.Resync(g.cur)
	return saturate8(real(out) / 2), saturate8(imag(out) / 2), true
}

// saturate8 rounds and clamps v to a signed 8-bit range, excluding -128
// by construction (the clamp bound is -127, not -128).
func saturate8(v float32) int8 {
	f := math.Round(float64(v))
	switch {
	case f > 127:
		f = 127
	case f < -127:
		f = -127
	}
	return int8(f)
}
