package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGardnerEmitsOncePerPeriod(t *testing.T) {
	g := NewGardner(8)
	agc := NewAGC(1)
	costas := NewCostas(50, 0.707, 1200)

	emitted := 0
	for i := 0; i < 800; i++ {
		x := complex(float32(math.Sin(float64(i)*0.3)), float32(math.Cos(float64(i)*0.3)))
		_, _, ok := g.Step(x, agc, costas)
		if ok {
			emitted++
		}
	}

	// Roughly one emission per 8 samples, with some slack for the
	// timing loop's own drift correction.
	assert.InDelta(t, 100, emitted, 20)
}

func TestSaturate8ClampsRange(t *testing.T) {
	assert.Equal(t, int8(127), saturate8(1000))
	assert.Equal(t, int8(-127), saturate8(-1000))
	assert.Equal(t, int8(0), saturate8(0))
	assert.Equal(t, int8(5), saturate8(5.2))
}

func TestGardnerOffsetStaysBounded(t *testing.T) {
	g := NewGardner(10)
	agc := NewAGC(1)
	costas := NewCostas(50, 0.707, 1200)

	for i := 0; i < 5000; i++ {
		x := complex(float32(math.Sin(float64(i)*0.2)), float32(math.Cos(float64(i)*0.2)))
		g.Step(x, agc, costas)
		assert.GreaterOrEqual(t, g.Offset(), 0.0)
		assert.Less(t, g.Offset(), g.Period()+1)
	}
}
