package core

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAGCSettlesTowardTarget(t *testing.T) {
	agc := NewAGC(10)

	var last complex64
	for i := 0; i < 5000; i++ {
		last = agc.Apply(complex64(100))
	}

	mag := cmplx.Abs(complex128(last))
	assert.InDelta(t, 10, mag, 0.5)
}

func TestAGCNeverGoesNonPositive(t *testing.T) {
	agc := NewAGC(1)
	for i := 0; i < 1000; i++ {
		agc.Apply(0)
	}
	assert.Greater(t, agc.Gain(), 0.0)
}
