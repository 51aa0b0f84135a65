package core

/*------------------------------------------------------------------
 *
 * Purpose:	Upsample a sample source by repeating each input sample
 *		l times and matched-filtering the result with an RRC
 *		filter, producing l output samples per input sample.
 *
 *----------------------------------------------------------------*/

// Interpolator upsamples an underlying Source by a factor of l,
// pushing the zero-order-hold result through an RRC matched filter.
type Interpolator struct {
	src   Source
	rrc   *Filter
	l     int
	scale complex64

	buf    []complex64
	bufPos int
	cur    complex64
	have   bool
}

// NewInterpolator wraps src, repeating each sample l times and
// filtering through rrc. rrc is not cloned; callers should pass a
// freshly constructed filter per Interpolator instance.
func NewInterpolator(src Source, rrc *Filter, l int) *Interpolator {
	return &Interpolator{
		src:   src,
		rrc:   rrc,
		l:     l,
		scale: complex(float32(1/sqrt2), 0),
	}
}

const sqrt2 = 1.4142135623730951

func (in *Interpolator) SampleRate() uint32 {
	return in.src.SampleRate() * uint32(in.l)
}

func (in *Interpolator) Size() uint64 {
	return in.src.Size() * uint64(in.l)
}

func (in *Interpolator) Done() uint64 {
	return in.src.Done() * uint64(in.l)
}

func (in *Interpolator) Close() error {
	return in.src.Close()
}

// Read produces up to n interpolated samples, pulling from the
// underlying source as needed. It returns (nil, nil) at end-of-stream,
// once the last partial repetition has been flushed.
func (in *Interpolator) Read(n int) ([]complex64, error) {
	out := make([]complex64, 0, n)
	for len(out) < n {
		if !in.have {
			block, err := in.src.Read(1)
			if err != nil {
				if len(out) == 0 {
					return nil, err
				}
				return out, nil
			}
			if len(block) == 0 {
				if len(out) == 0 {
					return nil, nil
				}
				return out, nil
			}
			in.cur = block[0]
			in.have = true
			in.bufPos = 0
		}

		for in.bufPos < in.l && len(out) < n {
			out = append(out, in.rrc.Advance(in.cur*in.scale))
			in.bufPos++
		}
		if in.bufPos >= in.l {
			in.have = false
		}
	}
	return out, nil
}
