// Package filesink provides a buffered core.Sink backed by a plain
// file.
package filesink

import (
	"bufio"
	"os"
)

// Sink wraps an *os.File with a buffered writer so the demodulator's
// symbol-chunk writes don't each incur a syscall.
type Sink struct {
	f *os.File
	w *bufio.Writer
}

// Create truncates/creates path and returns a Sink writing to it.
func Create(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Sink{f: f, w: bufio.NewWriterSize(f, 1<<16)}, nil
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Close flushes any buffered bytes and closes the underlying file.
func (s *Sink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
