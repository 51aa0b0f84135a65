// Package liveaudio adapts a live stereo input device, via PortAudio,
// to core.Source, for capturing an intermediate-frequency signal
// directly rather than from a recorded file.
package liveaudio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/doismellburning/go-qpsk-demod/core"
)

// Source streams I/Q samples from the default stereo input device;
// no other device can be selected.
type Source struct {
	stream     *portaudio.Stream
	sampleRate uint32
	in         []float32
	done       uint64
}

// Open initializes PortAudio and opens a stereo input stream at
// sampleRate, buffering framesPerBuffer frames per read.
func Open(sampleRate uint32, framesPerBuffer int) (*Source, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("liveaudio: init: %w", err)
	}

	in := make([]float32, framesPerBuffer*2)
	stream, err := portaudio.OpenDefaultStream(2, 0, float64(sampleRate), framesPerBuffer, in)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("liveaudio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("liveaudio: start stream: %w", err)
	}

	return &Source{
		stream:     stream,
		sampleRate: sampleRate,
		in:         in,
	}, nil
}

func (s *Source) SampleRate() uint32 { return s.sampleRate }
func (s *Source) Size() uint64       { return 0 } // unbounded live capture
func (s *Source) Done() uint64       { return s.done }

// Read blocks until one buffer's worth of frames is available. n is
// ignored; Read always returns exactly one device buffer.
func (s *Source) Read(n int) ([]complex64, error) {
	if err := s.stream.Read(); err != nil {
		return nil, fmt.Errorf("liveaudio: read: %w", err)
	}

	frames := len(s.in) / 2
	out := make([]complex64, frames)
	for i := 0; i < frames; i++ {
		out[i] = complex(s.in[2*i], s.in[2*i+1])
	}
	s.done += uint64(len(out))
	return out, nil
}

// Close stops the stream and releases PortAudio resources.
func (s *Source) Close() error {
	if err := s.stream.Stop(); err != nil {
		return err
	}
	if err := s.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}

var _ core.Source = (*Source)(nil)
