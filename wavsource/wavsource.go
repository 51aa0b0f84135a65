// Package wavsource adapts a stereo WAV file to core.Source, treating
// the left channel as the in-phase component and the right channel as
// quadrature.
package wavsource

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/doismellburning/go-qpsk-demod/core"
)

// Source reads interleaved stereo PCM samples from a WAV file and
// yields them as complex64 I/Q pairs.
type Source struct {
	f    *os.File
	dec  *wav.Decoder
	buf  *audio.IntBuffer
	size uint64
	done uint64
}

// Open opens path as a WAV file and prepares it for reading. The file
// must be stereo PCM; any bit depth go-audio/wav supports is accepted
// and rescaled to the [-1, 1] range before being cast to complex64.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavsource: open %s: %w", path, err)
	}

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("wavsource: %s is not a valid WAV file", path)
	}
	if dec.NumChans != 2 {
		f.Close()
		return nil, fmt.Errorf("wavsource: %s has %d channels, want 2 (I/Q)", path, dec.NumChans)
	}

	var size uint64
	if dur, err := dec.Duration(); err == nil {
		size = uint64(dur.Seconds() * float64(dec.SampleRate))
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: int(dec.NumChans),
			SampleRate:  int(dec.SampleRate),
		},
		SourceBitDepth: int(dec.BitDepth),
	}

	return &Source{
		f:    f,
		dec:  dec,
		buf:  buf,
		size: size,
	}, nil
}

func (s *Source) SampleRate() uint32 { return s.dec.SampleRate }
func (s *Source) Size() uint64       { return s.size }
func (s *Source) Done() uint64       { return s.done }

func (s *Source) Close() error { return s.f.Close() }

// Read returns up to n I/Q samples decoded from the underlying WAV
// file's stereo frames.
func (s *Source) Read(n int) ([]complex64, error) {
	if len(s.buf.Data) != n*2 {
		s.buf.Data = make([]int, n*2)
	}

	nRead, err := s.dec.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("wavsource: read: %w", err)
	}
	if nRead == 0 {
		return nil, nil
	}

	frames := nRead / 2
	out := make([]complex64, frames)
	scale := float32(int(1) << (s.buf.SourceBitDepth - 1))
	for i := 0; i < frames; i++ {
		l := float32(s.buf.Data[2*i]) / scale
		r := float32(s.buf.Data[2*i+1]) / scale
		out[i] = complex(l, r)
	}
	s.done += uint64(len(out))
	return out, nil
}

var _ core.Source = (*Source)(nil)
