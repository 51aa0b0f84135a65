package main

/*------------------------------------------------------------------
 *
 * Purpose:	Command-line front end for the QPSK soft-decision
 *		demodulator: reads a WAV recording of a baseband
 *		signal, runs it through the filter/AGC/Costas/Gardner
 *		pipeline, and writes interleaved signed 8-bit I/Q soft
 *		symbols to an output file.
 *
 *------------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/doismellburning/go-qpsk-demod/config"
	"github.com/doismellburning/go-qpsk-demod/core"
	"github.com/doismellburning/go-qpsk-demod/filesink"
	"github.com/doismellburning/go-qpsk-demod/wavsource"
)

const Version = "0.1.0"

func main() {
	fs := pflag.NewFlagSet("qpskdemod", pflag.ExitOnError)

	profile := fs.String("profile", "", "YAML configuration profile to load before applying flags")
	output := fs.String("output", "", "output file for soft symbols (default: derived from --output-pattern)")
	outputPattern := fs.String("output-pattern", "%Y%m%d_%H%M%S.sym", "strftime pattern used to name the output file when --output is unset")
	quiet := fs.Bool("quiet", false, "suppress progress logging")
	showVersion := fs.Bool("version", false, "print version and exit")

	getCfg := config.BindFlags(fs, config.Default())
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *showVersion {
		fmt.Println("qpskdemod", Version)
		return
	}
	if *profile != "" {
		loaded, err := config.Load(*profile)
		if err != nil {
			log.Fatal("loading profile", "err", err)
		}
		// Profile values apply to every parameter not given as a flag.
		prof := pflag.NewFlagSet("profile", pflag.ContinueOnError)
		config.BindFlags(prof, loaded)
		prof.VisitAll(func(f *pflag.Flag) {
			if !fs.Changed(f.Name) {
				_ = fs.Set(f.Name, f.DefValue)
			}
		})
	}
	cfg := getCfg()

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: qpskdemod [flags] <input.wav>")
		os.Exit(2)
	}
	inputPath := fs.Arg(0)

	outputPath := *output
	if outputPath == "" {
		name, err := strftime.Format(*outputPattern, time.Now())
		if err != nil {
			fmt.Fprintln(os.Stderr, "bad --output-pattern:", err)
			os.Exit(2)
		}
		outputPath = name
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *quiet {
		logger.SetLevel(log.WarnLevel)
	}

	if err := run(logger, cfg, inputPath, outputPath); err != nil {
		logger.Error("demodulation failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger, cfg core.Config, inputPath, outputPath string) error {
	src, err := wavsource.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer src.Close()

	sink, err := filesink.Create(outputPath)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer sink.Close()

	d, err := core.NewDemod(cfg, src)
	if err != nil {
		return fmt.Errorf("configure demodulator: %w", err)
	}

	logger.Info("starting demodulation", "input", inputPath, "output", outputPath, "sample_rate", src.SampleRate())
	d.Start(sink)

	wasLocked := false
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		<-ticker.C
		status := d.Status()

		if status.PLLLocked != wasLocked {
			if status.PLLLocked {
				logger.Info("carrier lock acquired", "freq_hz", status.FreqHz)
			} else {
				logger.Warn("carrier lock lost")
			}
			wasLocked = status.PLLLocked
		}

		if status.Done {
			d.Join()
			final := d.Status()
			logger.Info("demodulation finished", "bytes_out", final.BytesOut)
			if final.Err != nil && !errors.Is(final.Err, core.ErrSourceEof) {
				return final.Err
			}
			return nil
		}
	}
}
