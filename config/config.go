// Package config binds core.Config fields to command-line flags and
// an optional YAML profile file.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/doismellburning/go-qpsk-demod/core"
)

// file mirrors core.Config with yaml tags; a separate type keeps the
// core package free of serialization concerns.
type file struct {
	RRCOrder          int     `yaml:"rrc_order"`
	Oversample        int     `yaml:"oversample"`
	RolloffAlpha      float64 `yaml:"rolloff_alpha"`
	SymbolRate        float64 `yaml:"symbol_rate"`
	AGCTarget         float64 `yaml:"agc_target"`
	CostasBandwidthHz float64 `yaml:"costas_bandwidth_hz"`
	CostasZeta        float64 `yaml:"costas_zeta"`
	PhaseOffset       float64 `yaml:"phase_offset"`
}

func (f file) toCore() core.Config {
	return core.Config{
		RRCOrder:          f.RRCOrder,
		Oversample:        f.Oversample,
		RolloffAlpha:      f.RolloffAlpha,
		SymbolRate:        f.SymbolRate,
		AGCTarget:         f.AGCTarget,
		CostasBandwidthHz: f.CostasBandwidthHz,
		CostasZeta:        f.CostasZeta,
		PhaseOffset:       f.PhaseOffset,
	}
}

func fromCore(c core.Config) file {
	return file{
		RRCOrder:          c.RRCOrder,
		Oversample:        c.Oversample,
		RolloffAlpha:      c.RolloffAlpha,
		SymbolRate:        c.SymbolRate,
		AGCTarget:         c.AGCTarget,
		CostasBandwidthHz: c.CostasBandwidthHz,
		CostasZeta:        c.CostasZeta,
		PhaseOffset:       c.PhaseOffset,
	}
}

// Default returns the built-in default configuration, tuned for a
// 1200 baud QPSK signal sampled at typical sound-card rates.
func Default() core.Config {
	return core.Config{
		RRCOrder:          48,
		Oversample:        8,
		RolloffAlpha:      0.35,
		SymbolRate:        1200,
		AGCTarget:         1,
		CostasBandwidthHz: 30,
		CostasZeta:        0.707,
		PhaseOffset:       0,
	}
}

// Load reads a YAML profile from path and overlays it onto Default.
func Load(path string) (core.Config, error) {
	cfg := fromCore(Default())

	data, err := os.ReadFile(path)
	if err != nil {
		return core.Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return core.Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.toCore(), nil
}

// BindFlags registers flags on fs for every tunable parameter,
// defaulting to the values already present in cfg, and returns a
// closure that reads the final flag values back into a core.Config
// once fs has been parsed.
func BindFlags(fs *pflag.FlagSet, cfg core.Config) func() core.Config {
	rrcOrder := fs.Int("rrc-order", cfg.RRCOrder, "RRC matched filter one-sided tap count")
	oversample := fs.Int("oversample", cfg.Oversample, "interpolation factor (samples per input sample)")
	alpha := fs.Float64("rolloff", cfg.RolloffAlpha, "RRC roll-off factor, in (0,1]")
	symRate := fs.Float64("symbol-rate", cfg.SymbolRate, "symbol rate in symbols/second")
	agcTarget := fs.Float64("agc-target", cfg.AGCTarget, "AGC target magnitude")
	costasBw := fs.Float64("costas-bandwidth", cfg.CostasBandwidthHz, "Costas loop bandwidth in Hz")
	costasZeta := fs.Float64("costas-zeta", cfg.CostasZeta, "Costas loop damping factor")
	phaseOffset := fs.Float64("phase-offset", cfg.PhaseOffset, "constellation rotation offset in radians")

	return func() core.Config {
		return core.Config{
			RRCOrder:          *rrcOrder,
			Oversample:        *oversample,
			RolloffAlpha:      *alpha,
			SymbolRate:        *symRate,
			AGCTarget:         *agcTarget,
			CostasBandwidthHz: *costasBw,
			CostasZeta:        *costasZeta,
			PhaseOffset:       *phaseOffset,
		}
	}
}
