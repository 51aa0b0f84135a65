package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRRCCenterTap(t *testing.T) {
	alpha := 0.35
	f := RRC(16, 4, alpha)
	taps := f.Taps()

	// Taps are stored as float32, so the center tap is the float32
	// rounding of the closed form.
	center := 1 - alpha + 4*alpha/math.Pi
	assert.Equal(t, float32(center), taps[16])
	assert.Len(t, taps, 33)
}

func TestRRCSymmetric(t *testing.T) {
	f := RRC(20, 8, 0.5)
	taps := f.Taps()
	for i := range taps {
		assert.InDelta(t, taps[i], taps[len(taps)-1-i], 1e-6)
	}
}

// TestRRCFiniteAcrossSingularity checks that every tap is finite even
// when order/l/alpha put a tap exactly at the 4*alpha*t=1 removable
// singularity.
func TestRRCFiniteAcrossSingularity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		order := rapid.IntRange(2, 64).Draw(rt, "order")
		l := rapid.IntRange(1, 16).Draw(rt, "l")
		alpha := rapid.Float64Range(0.05, 1).Draw(rt, "alpha")

		f := RRC(order, l, alpha)
		for i, tap := range f.Taps() {
			require.Falsef(rt, math.IsNaN(float64(tap)) || math.IsInf(float64(tap), 0),
				"tap %d is not finite for order=%d l=%d alpha=%f", i, order, l, alpha)
		}
	})
}

func TestRRCSingularityContinuity(t *testing.T) {
	// Pick alpha so that 4*alpha*t == 1 lands exactly on an integer tap
	// offset: t = k/l, so 4*alpha*k/l == 1 => alpha == l/(4k).
	const l = 8
	const k = 3
	alpha := float64(l) / (4 * k)

	near := rrcTap(16-k-1, 16, l, alpha)
	exact := rrcTap(16-k, 16, l, alpha)
	far := rrcTap(16-k+1, 16, l, alpha)

	assert.False(t, math.IsNaN(exact))
	// The tap at the singularity should sit between its neighbors'
	// general trend, not spike to infinity.
	assert.Less(t, math.Abs(exact), math.Abs(near)+math.Abs(far)+1)
}
