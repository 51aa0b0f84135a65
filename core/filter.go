package core

/*------------------------------------------------------------------
 *
 * Purpose:	Generic biquad-style FIR/IIR kernel with a tap delay line.
 *		Used both as the RRC matched filter and as a building
 *		block for loop filters.
 *
 * A single complex64 tap delay line backs both FIR and IIR use; Fir
 * and Iir are separate constructors rather than one variadic entry
 * point, since the feedback path changes the delay line's sizing
 * invariant.
 *
 *----------------------------------------------------------------*/

// Filter holds immutable coefficients and a mutable tap delay line.
// fwd are the feed-forward coefficients, back the feedback
// coefficients. back is nil/empty for an FIR filter.
type Filter struct {
	fwd  []float32
	back []float32
	mem  []complex64
}

// Fir builds a finite impulse response filter from its tap coefficients.
func Fir(taps []float32) *Filter {
	return &Filter{
		fwd: append([]float32(nil), taps...),
		mem: make([]complex64, len(taps)),
	}
}

// Iir builds an infinite impulse response filter from feed-forward and
// feedback coefficients. By convention back[0] is unused (fixed at 1);
// len(back) must not exceed len(fwd), since the feedback sum indexes
// into the same delay line as the feed-forward sum.
func Iir(fwd, back []float32) *Filter {
	if len(back) > len(fwd) {
		panic("core: iir feedback order exceeds feed-forward order")
	}
	return &Filter{
		fwd:  append([]float32(nil), fwd...),
		back: append([]float32(nil), back...),
		mem:  make([]complex64, len(fwd)),
	}
}

// Clone returns an independent copy sharing no state: same coefficients,
// delay line reset to zero.
func (f *Filter) Clone() *Filter {
	return &Filter{
		fwd:  f.fwd,
		back: f.back,
		mem:  make([]complex64, len(f.mem)),
	}
}

// Taps returns the feed-forward coefficients, for callers (e.g. tests of
// the RRC factory's center-tap invariant) that need the raw values.
func (f *Filter) Taps() []float32 {
	return f.fwd
}

// Advance pushes one sample through the filter and returns the output.
// It is deterministic, single-threaded, and O(len(fwd)+len(back)).
func (f *Filter) Advance(x complex64) complex64 {
	if len(f.back) > 1 {
		var acc complex64
		for i := 1; i < len(f.back); i++ {
			acc += f.mem[i] * complex(f.back[i], 0)
		}
		x -= acc
	}

	copy(f.mem[1:], f.mem[:len(f.mem)-1])
	f.mem[0] = x

	var y complex64
	for i, c := range f.fwd {
		y += f.mem[i] * complex(c, 0)
	}
	return y
}
