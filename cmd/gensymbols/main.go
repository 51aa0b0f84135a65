package main

/*------------------------------------------------------------------
 *
 * Purpose:	Generate a WAV file carrying a QPSK-modulated baseband
 *		test signal, for exercising the demodulator against
 *		known symbol sequences.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("gensymbols", pflag.ExitOnError)

	count := fs.Int("symbols", 10000, "number of QPSK symbols to generate")
	sampleRate := fs.Int("sample-rate", 48000, "output WAV sample rate")
	symbolRate := fs.Float64("symbol-rate", 1200, "symbol rate in symbols/second")
	seed := fs.Int64("seed", 1, "PRNG seed for the symbol sequence (0 disables randomness, emits a fixed pattern)")
	amplitude := fs.Float64("amplitude", 0.7, "peak sample amplitude, in (0,1]")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gensymbols [flags] <output.wav>")
		os.Exit(2)
	}

	if err := run(fs.Arg(0), *count, *sampleRate, *symbolRate, *seed, *amplitude); err != nil {
		fmt.Fprintln(os.Stderr, "gensymbols:", err)
		os.Exit(1)
	}
}

func run(outputPath string, count, sampleRate int, symbolRate float64, seed int64, amplitude float64) error {
	samplesPerSymbol := int(float64(sampleRate) / symbolRate)
	if samplesPerSymbol < 1 {
		return fmt.Errorf("sample rate too low for symbol rate %.1f", symbolRate)
	}

	symbols := generateSymbols(count, seed)

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	defer enc.Close()

	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:   make([]int, 0, samplesPerSymbol*2),
	}

	const scale = 32767
	for _, sym := range symbols {
		re := math.Cos(sym) * amplitude
		im := math.Sin(sym) * amplitude
		buf.Data = buf.Data[:0]
		for i := 0; i < samplesPerSymbol; i++ {
			buf.Data = append(buf.Data, int(re*scale), int(im*scale))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}
	return nil
}

// generateSymbols returns a sequence of QPSK carrier phases, one of
// {pi/4, 3pi/4, 5pi/4, 7pi/4}. seed == 0 produces a fixed repeating
// pattern useful for deterministic golden-file tests; any other seed
// produces an independently reproducible pseudo-random sequence.
func generateSymbols(count int, seed int64) []float64 {
	out := make([]float64, count)
	phases := [4]float64{math.Pi / 4, 3 * math.Pi / 4, 5 * math.Pi / 4, 7 * math.Pi / 4}

	if seed == 0 {
		for i := range out {
			out[i] = phases[i%4]
		}
		return out
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = phases[rng.Intn(4)]
	}
	return out
}
