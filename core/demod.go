package core

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ChunkSize is the number of input samples pulled from the source per
// Read call.
const ChunkSize = 4096

// SymChunkSize is the output flush threshold, in bytes. It is always
// even since each emitted symbol contributes one I byte and one Q
// byte.
const SymChunkSize = 4096

// Sentinel errors wrapped by DemodError.
var (
	ErrSourceEof     = errors.New("sample source exhausted")
	ErrSourceFault   = errors.New("sample source read failure")
	ErrSinkFault     = errors.New("output sink write failure")
	ErrConfigInvalid = errors.New("invalid demodulator configuration")
)

// DemodError wraps one of the sentinel errors above with context.
type DemodError struct {
	kind error
	msg  string
}

func (e *DemodError) Error() string {
	if e.msg == "" {
		return e.kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.kind.Error(), e.msg)
}

func (e *DemodError) Unwrap() error {
	return e.kind
}

func newDemodError(kind error, msg string) *DemodError {
	return &DemodError{kind: kind, msg: msg}
}

// Config holds every tunable demodulator parameter.
type Config struct {
	// RRCOrder is the matched filter's one-sided tap count; the filter
	// has 2*RRCOrder+1 taps.
	RRCOrder int
	// Oversample is samples produced per input sample by the
	// interpolator (L).
	Oversample int
	// RolloffAlpha is the RRC roll-off factor, in (0, 1].
	RolloffAlpha float64
	// SymbolRate is the signal's symbol rate, in symbols/second.
	SymbolRate float64
	// AGCTarget is the magnitude the AGC loop settles the signal to.
	AGCTarget float64
	// CostasBandwidthHz is the Costas loop bandwidth, in Hz.
	CostasBandwidthHz float64
	// CostasZeta is the Costas loop's damping factor.
	CostasZeta float64
	// PhaseOffset seeds the Costas NCO phase, in radians, for
	// transmitters that define symbol phase 0 differently.
	PhaseOffset float64
}

// Validate checks the configuration for values that would make the
// pipeline malformed or divide by zero.
func (c Config) Validate() error {
	switch {
	case c.RRCOrder <= 0:
		return newDemodError(ErrConfigInvalid, "rrc order must be positive")
	case c.Oversample <= 0:
		return newDemodError(ErrConfigInvalid, "oversample factor must be positive")
	case c.RolloffAlpha <= 0 || c.RolloffAlpha > 1:
		return newDemodError(ErrConfigInvalid, "rolloff alpha must be in (0, 1]")
	case c.SymbolRate <= 0:
		return newDemodError(ErrConfigInvalid, "symbol rate must be positive")
	case c.AGCTarget <= 0:
		return newDemodError(ErrConfigInvalid, "agc target must be positive")
	case c.CostasBandwidthHz <= 0:
		return newDemodError(ErrConfigInvalid, "costas bandwidth must be positive")
	case c.CostasZeta <= 0:
		return newDemodError(ErrConfigInvalid, "costas zeta must be positive")
	}
	return nil
}

// Status is a point-in-time snapshot of a running Demod.
type Status struct {
	Running   bool
	PLLLocked bool
	BytesOut  uint64
	Done      bool
	Size      uint64
	FreqHz    float64
	Gain      float64
	Err       error
}

// Demod is the assembled demodulator pipeline: interpolator, AGC,
// Costas loop, and Gardner timing recovery, driven by a single worker
// goroutine that reads from a Source and writes soft symbols to a
// Sink.
type Demod struct {
	cfg Config

	interp  *Interpolator
	agc     *AGC
	costas  *Costas
	gardner *Gardner

	warmup    int
	discarded int

	running  atomic.Bool
	bytesOut atomic.Uint64

	mu     sync.Mutex
	locked bool
	freqHz float64
	gain   float64
	done   bool
	err    error

	wg sync.WaitGroup
}

// NewDemod validates cfg and assembles a Demod around src. No worker
// is started; call Start to begin processing.
func NewDemod(cfg Config, src Source) (*Demod, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rrc := RRC(cfg.RRCOrder, cfg.Oversample, cfg.RolloffAlpha)
	interp := NewInterpolator(src, rrc, cfg.Oversample)

	costas := NewCostas(cfg.CostasBandwidthHz, cfg.CostasZeta, cfg.SymbolRate)
	if cfg.PhaseOffset != 0 {
		costas.SetPhase(cfg.PhaseOffset)
	}

	period := float64(interp.SampleRate()) / cfg.SymbolRate

	return &Demod{
		cfg:     cfg,
		interp:  interp,
		agc:     NewAGC(cfg.AGCTarget),
		costas:  costas,
		gardner: NewGardner(period),
		warmup:  cfg.RRCOrder * cfg.Oversample,
	}, nil
}

// Start launches the worker goroutine, reading from the configured
// source and writing soft symbols to sink. Start must be called at
// most once per Demod.
func (d *Demod) Start(sink Sink) {
	d.running.Store(true)
	d.wg.Add(1)
	go d.run(sink)
}

func (d *Demod) run(sink Sink) {
	defer d.wg.Done()
	defer d.running.Store(false)

	out := make([]byte, 0, SymChunkSize)

	for {
		if !d.running.Load() {
			d.finish(nil)
			return
		}

		block, err := d.interp.Read(ChunkSize)
		if err != nil {
			d.finish(newDemodError(ErrSourceFault, err.Error()))
			return
		}
		if len(block) == 0 {
			if len(out) > 0 {
				if werr := d.flush(sink, out); werr != nil {
					d.finish(werr)
					return
				}
			}
			d.finish(newDemodError(ErrSourceEof, ""))
			return
		}

		block = d.discardSamples(block)

		for _, x := range block {
			i, q, emitted := d.gardner.Step(x, d.agc, d.costas)
			if !emitted {
				continue
			}
			out = append(out, byte(i), byte(q))
			if len(out) >= SymChunkSize {
				if werr := d.flush(sink, out); werr != nil {
					d.finish(werr)
					return
				}
				out = out[:0]
			}
		}

		d.mu.Lock()
		d.locked = d.costas.Locked()
		d.freqHz = d.costas.FreqHz()
		d.gain = d.agc.Gain()
		d.mu.Unlock()
	}
}

// discardSamples drops the leading portion of block still covered by
// the matched filter's group delay (rrcOrder*oversample interpolated
// samples), so Gardner timing recovery only ever sees settled filter
// output.
func (d *Demod) discardSamples(block []complex64) []complex64 {
	if d.discarded >= d.warmup {
		return block
	}
	remaining := d.warmup - d.discarded
	if remaining >= len(block) {
		d.discarded += len(block)
		return nil
	}
	d.discarded = d.warmup
	return block[remaining:]
}

func (d *Demod) flush(sink Sink, out []byte) error {
	n, err := sink.Write(out)
	if err != nil {
		return newDemodError(ErrSinkFault, err.Error())
	}
	d.bytesOut.Add(uint64(n))
	return nil
}

func (d *Demod) finish(err error) {
	d.mu.Lock()
	d.done = true
	d.err = err
	d.mu.Unlock()
}

// Status returns a consistent snapshot of the demodulator's progress.
func (d *Demod) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Status{
		Running:   d.running.Load(),
		PLLLocked: d.locked,
		BytesOut:  d.bytesOut.Load(),
		Done:      d.done,
		Size:      d.interp.Size(),
		FreqHz:    d.freqHz,
		Gain:      d.gain,
		Err:       d.err,
	}
}

// Stop requests the worker goroutine to exit at the next convenient
// point. Join should be called afterward to wait for actual exit.
func (d *Demod) Stop() {
	d.running.Store(false)
}

// Join blocks until the worker goroutine has exited.
func (d *Demod) Join() {
	d.wg.Wait()
}
