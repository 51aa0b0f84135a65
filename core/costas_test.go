package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// qpskSymbol returns one of the four QPSK constellation points rotated
// by phase.
func qpskSymbol(n int, phase float64) complex64 {
	base := math.Pi/4 + float64(n%4)*math.Pi/2
	return complex(float32(math.Cos(base+phase)), float32(math.Sin(base+phase)))
}

func TestCostasLocksOnCleanSignal(t *testing.T) {
	c := NewCostas(50, 0.707, 1200)

	for i := 0; i < 20000; i++ {
		c.Resync(qpskSymbol(i, 0))
	}

	assert.True(t, c.Locked())
}

func TestCostasUnlocksOnNoise(t *testing.T) {
	c := NewCostas(50, 0.707, 1200)
	for i := 0; i < 20000; i++ {
		c.Resync(qpskSymbol(i, 0))
	}
	require := assert.New(t)
	require.True(c.Locked())

	// Two incommensurate sinusoids on I and Q land off the constellation
	// diagonals, where the QPSK detector reports a non-zero error.
	for i := 0; i < 5000; i++ {
		n := float32(math.Sin(float64(i) * 1.3))
		m := float32(math.Sin(float64(i)*0.7 + 1))
		c.Resync(complex(n, m))
	}
	require.False(c.Locked())
}

func TestCostasPullsInFrequencyOffset(t *testing.T) {
	c := NewCostas(50, 0.707, 1200)

	// A static phase rotation per symbol is equivalent to a frequency
	// offset; the loop should track it and report a non-zero FreqHz.
	const perSymbolRad = 0.01
	phase := 0.0
	for i := 0; i < 30000; i++ {
		c.Resync(qpskSymbol(i, phase))
		phase += perSymbolRad
	}

	assert.Greater(t, math.Abs(c.FreqHz()), 0.0)
}

func TestWrapPhaseStaysInRange(t *testing.T) {
	for _, p := range []float64{10, -10, math.Pi, -math.Pi, 0} {
		w := wrapPhase(p)
		assert.GreaterOrEqual(t, w, -math.Pi)
		assert.Less(t, w, math.Pi)
	}
}
