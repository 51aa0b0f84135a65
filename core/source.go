package core

import "io"

/*------------------------------------------------------------------
 *
 * Purpose:	Abstract sample source and output sink contracts.
 *
 * A single typed interface covers every sample origin - file decode,
 * live capture, in-memory test fixtures, or the interpolator itself -
 * so the driver never needs to know which backend it's talking to.
 *
 *----------------------------------------------------------------*/

// Source yields blocks of complex baseband samples at a fixed rate.
//
// After a successful Read(n), the returned slice holds the newest
// samples; len(data) <= n; len(data) == 0 with a nil error means
// end-of-stream. The slice may be reused/overwritten by the next
// Read call - callers must not retain it across calls.
type Source interface {
	SampleRate() uint32
	Read(n int) (data []complex64, err error)
	Close() error
	Size() uint64
	Done() uint64
}

// Sink is the output byte stream the driver writes interleaved
// signed-8-bit I/Q pairs to.
type Sink = io.Writer

// FuncSource adapts a plain read function to the Source interface,
// tracking Size/Done bookkeeping so backends only need to supply the
// actual block-read logic.
type FuncSource struct {
	sampleRate uint32
	size       uint64
	done       uint64
	readFn     func(n int) ([]complex64, error)
	closeFn    func() error
}

// NewFuncSource builds a Source around readFn. size is the total
// sample count the backend expects to produce (0 if unknown, e.g. a
// live capture device). closeFn may be nil.
func NewFuncSource(sampleRate uint32, size uint64, readFn func(int) ([]complex64, error), closeFn func() error) *FuncSource {
	return &FuncSource{
		sampleRate: sampleRate,
		size:       size,
		readFn:     readFn,
		closeFn:    closeFn,
	}
}

func (s *FuncSource) SampleRate() uint32 { return s.sampleRate }
func (s *FuncSource) Size() uint64       { return s.size }
func (s *FuncSource) Done() uint64       { return s.done }

func (s *FuncSource) Read(n int) ([]complex64, error) {
	data, err := s.readFn(n)
	s.done += uint64(len(data))
	return data, err
}

func (s *FuncSource) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// SliceSource serves samples from an in-memory buffer, useful for
// tests and for the symbol generator's round-trip checks.
type SliceSource struct {
	sampleRate uint32
	data       []complex64
	pos        int
}

// NewSliceSource builds a Source that replays data once, then reports
// end-of-stream.
func NewSliceSource(sampleRate uint32, data []complex64) *SliceSource {
	return &SliceSource{sampleRate: sampleRate, data: data}
}

func (s *SliceSource) SampleRate() uint32 { return s.sampleRate }
func (s *SliceSource) Size() uint64       { return uint64(len(s.data)) }
func (s *SliceSource) Done() uint64       { return uint64(s.pos) }
func (s *SliceSource) Close() error       { return nil }

func (s *SliceSource) Read(n int) ([]complex64, error) {
	if s.pos >= len(s.data) {
		return nil, nil
	}
	end := s.pos + n
	if end > len(s.data) {
		end = len(s.data)
	}
	out := s.data[s.pos:end]
	s.pos = end
	return out, nil
}
