package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFirImpulseResponse(t *testing.T) {
	taps := []float32{1, 2, 3}
	f := Fir(taps)

	got := []complex64{
		f.Advance(1),
		f.Advance(0),
		f.Advance(0),
		f.Advance(0),
	}
	want := []complex64{1, 2, 3, 0}
	assert.Equal(t, want, got)
}

func TestFirLinearity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		taps := make([]float32, n)
		for i := range taps {
			taps[i] = float32(rapid.Float64Range(-4, 4).Draw(rt, "tap"))
		}

		samples := rapid.SliceOfN(rapid.Float64Range(-4, 4), 1, 16).Draw(rt, "samples")
		scale := float32(rapid.Float64Range(-4, 4).Draw(rt, "scale"))

		fa := Fir(taps)
		fb := Fir(taps)
		fsum := Fir(taps)

		for _, s := range samples {
			x := complex(float32(s), 0)
			a := fa.Advance(x)
			b := fb.Advance(x * complex(scale, 0))
			sum := fsum.Advance(x + x*complex(scale, 0))

			assert.InDelta(t, real(sum), real(a+b), 1e-3)
			assert.InDelta(t, imag(sum), imag(a+b), 1e-3)
		}
	})
}

func TestIirPanicsOnOversizedFeedback(t *testing.T) {
	assert.Panics(t, func() {
		Iir([]float32{1}, []float32{1, 1})
	})
}

func TestFilterClone(t *testing.T) {
	f := Fir([]float32{1, 0, 0})
	f.Advance(5)

	clone := f.Clone()
	// Clone resets the delay line, so feeding the clone zero should not
	// echo back the 5 still latent in f's memory.
	assert.Equal(t, complex64(0), clone.Advance(0))

	f.Advance(0)
	assert.Equal(t, complex64(0), f.Advance(0))
}
