// Command sfft computes a short-term FFT spectrogram of a WAV file or of the
// built-in demo signal and writes it as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-spectra/algorithms/synthetic"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/spectrogram"
	"github.com/RyanBlaney/sonido-spectra/spectrogram/config"
	"github.com/RyanBlaney/sonido-spectra/transcode"
)

const (
	demoPoints  = 4096
	demoSpacing = 1e-6
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logging.NewConsoleLogger(os.Stderr).Error(err, "sfft failed")
		os.Exit(1)
	}
}

// summary is what --summary prints instead of the full grid.
type summary struct {
	Label      string              `json:"label"`
	Info       []string            `json:"info"`
	FreqBins   int                 `json:"freq_bins"`
	TimeBins   int                 `json:"time_bins"`
	SampleRate float64             `json:"sample_rate"`
	Frequency  spectrogram.Axis    `json:"frequency"`
	Time       spectrogram.Axis    `json:"time"`
	Magnitude  spectrogram.Axis    `json:"magnitude"`
	PeakFreqs  []float64           `json:"peak_frequencies"`
	Centroids  []float64           `json:"centroids"`
	Flatness   []float64           `json:"flatness"`
	Clamps     []spectrogram.Clamp `json:"clamps,omitempty"`
}

// run parses args, computes the spectrogram and writes JSON to stdout (or
// --output). Diagnostics go to stderr in the configured log format.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("sfft", pflag.ContinueOnError)
	configPath := flags.String("config", "", "config file (yaml, json or toml)")
	input := flags.StringP("input", "i", "", "WAV file to analyse; the demo signal is used when empty")
	output := flags.StringP("output", "o", "", "write JSON here instead of stdout")
	summaryOnly := flags.Bool("summary", false, "print axes, ranges and per-window descriptors instead of the full grid")
	seed := flags.Uint64("seed", 1, "noise seed for the demo signal")

	d := config.DefaultConfig()
	flags.Int("freq-bins", d.FreqBins, "FFT points per window")
	flags.Int("time-bins", d.TimeBins, "number of windows; 0 derives it from --overlap")
	flags.Float64("overlap", d.Overlap, "overlap of consecutive windows in [0, 1)")
	flags.Bool("normalize", d.Normalize, "amplitude-normalize magnitudes before the dB conversion")
	flags.Float64("floor-db", d.FloorDB, "lowest reported level in dB")
	flags.String("window", d.Window, "taper applied to each window")
	flags.String("backend", d.Backend, "FFT backend: go-dsp or gonum")
	flags.Int("workers", d.Workers, "worker goroutines; 0 picks automatically")
	flags.String("log-level", d.LogLevel, "debug, info, warn or error")
	flags.String("log-format", d.LogFormat, "console, json or text")

	if err := flags.Parse(args); err != nil {
		return err
	}

	v, err := config.NewViper(*configPath)
	if err != nil {
		return err
	}
	if err := bindFlags(v, flags); err != nil {
		return err
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		return err
	}

	series, err := loadSeries(*input, *seed, logger)
	if err != nil {
		return err
	}

	var result *spectrogram.Spectrogram
	if cfg.UsesOverlap() {
		result, err = spectrogram.ComputeWithOverlapContext(ctx, series, cfg.FreqBins, cfg.Overlap, cfg.Options(logger)...)
	} else {
		result, err = spectrogram.ComputeContext(ctx, series, cfg.FreqBins, cfg.TimeBins, cfg.Options(logger)...)
	}
	if err != nil {
		return err
	}

	var payload any = result
	if *summaryOnly {
		payload = summarize(result)
	}
	return writeJSON(payload, *output, stdout)
}

// bindFlags maps kebab-case flags onto the snake_case config keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	keys := map[string]string{
		"freq-bins":  "freq_bins",
		"time-bins":  "time_bins",
		"overlap":    "overlap",
		"normalize":  "normalize",
		"floor-db":   "floor_db",
		"window":     "window",
		"backend":    "backend",
		"workers":    "workers",
		"log-level":  "log_level",
		"log-format": "log_format",
	}
	for flag, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

func loadSeries(path string, seed uint64, logger logging.Logger) (spectrogram.TimeSeries, error) {
	if path == "" {
		logger.Info("using demo signal", logging.Fields{"points": demoPoints, "seed": seed})
		y := synthetic.Demo(demoPoints, seed)
		return spectrogram.NewUniformSamples("testData", demoSpacing, y).WithUnits("s", "a.u."), nil
	}

	audioData, err := transcode.NewDecoder(nil, logger).DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return audioData.Series(), nil
}

func summarize(s *spectrogram.Spectrogram) summary {
	return summary{
		Label:      s.Label,
		Info:       s.Info,
		FreqBins:   s.FreqBins,
		TimeBins:   s.TimeBins,
		SampleRate: s.SampleRate,
		Frequency:  s.FrequencyDescription(),
		Time:       s.TimeDescription(),
		Magnitude:  s.MagnitudeDescription(),
		PeakFreqs:  s.PeakFrequencies(),
		Centroids:  s.Centroids(),
		Flatness:   s.Flatness(),
		Clamps:     s.Clamps,
	}
}

func writeJSON(payload any, path string, stdout io.Writer) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
