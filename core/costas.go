package core

import "math"

/*------------------------------------------------------------------
 *
 * Purpose:	Costas-loop phase/frequency tracker for suppressed-carrier
 *		QPSK, with hysteretic lock detection.
 *
 * A proportional+integral update driven by the four-fold QPSK
 * decision-directed phase error steers a phase/frequency NCO; lock
 * state uses separate ON/OFF thresholds on a smoothed error magnitude
 * so brief glitches don't flap the reported lock state.
 *
 *----------------------------------------------------------------*/

// Costas tracks residual carrier phase/frequency error on a QPSK symbol
// stream and reports lock state.
type Costas struct {
	phase float64 // radians, wrapped to [-pi, pi)
	freq  float64 // radians/symbol

	kp float64
	ki float64

	symRate float64

	avgErr  float64
	locked  bool
	tLock   float64
	tUnlock float64
}

// NewCostas builds a Costas loop for the given loop bandwidth bwHz (Hz,
// normalized internally to 2*pi*bwHz/symRate) and damping factor zeta,
// at the given symbol rate.
// Kp/Ki follow the standard second-order PLL mapping.
func NewCostas(bwHz, zeta, symRate float64) *Costas {
	beta := 2 * math.Pi * bwHz / symRate
	denom := 1 + 2*zeta*beta + beta*beta
	const tLock = 0.03
	const tUnlock = 0.08
	return &Costas{
		kp:      (4 * zeta * beta) / denom,
		ki:      (4 * beta * beta) / denom,
		symRate: symRate,
		// Seeded above tUnlock so a freshly constructed loop starts
		// unlocked rather than snapping to locked on the first
		// low-error (e.g. zero-amplitude) sample.
		avgErr:  tUnlock + 1,
		tLock:   tLock,
		tUnlock: tUnlock,
	}
}

// SetPhase seeds the NCO phase, e.g. for a configured constellation
// rotation offset.
func (c *Costas) SetPhase(phase float64) {
	c.phase = wrapPhase(phase)
}

// Resync rotates x by the current NCO phase estimate, updates the loop
// filter from the decision-directed QPSK phase error, and returns the
// de-rotated sample.
func (c *Costas) Resync(x complex64) complex64 {
	rot := complex(float32(math.Cos(-c.phase)), float32(math.Sin(-c.phase)))
	y := x * rot

	re, im := float64(real(y)), float64(imag(y))
	e := sign(re)*im - sign(im)*re

	c.freq += c.ki * e
	step := c.freq + c.kp*e
	c.phase = wrapPhase(c.phase + step)

	const trackAlpha = 0.01
	// An all-zero sample carries no carrier to lock onto; it counts as
	// above-threshold error so silence never drives the loop into lock.
	errMag := math.Abs(e)
	if re == 0 && im == 0 {
		errMag = c.tUnlock + 1
	}
	c.avgErr += trackAlpha * (errMag - c.avgErr)
	switch {
	case c.locked && c.avgErr > c.tUnlock:
		c.locked = false
	case !c.locked && c.avgErr < c.tLock:
		c.locked = true
	}

	return y
}

// Locked reports whether the loop currently considers itself locked.
func (c *Costas) Locked() bool {
	return c.locked
}

// FreqHz reports the tracked frequency offset in Hz.
func (c *Costas) FreqHz() float64 {
	return c.freq * c.symRate / (2 * math.Pi)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func wrapPhase(p float64) float64 {
	for p >= math.Pi {
		p -= 2 * math.Pi
	}
	for p < -math.Pi {
		p += 2 * math.Pi
	}
	return p
}
