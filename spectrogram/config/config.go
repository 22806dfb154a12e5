package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/spectrogram"
)

// EnvPrefix prefixes every environment variable Load consults, e.g. SFFT_FREQ_BINS.
const EnvPrefix = "SFFT"

// Config holds the tunable parameters of a spectrogram computation
type Config struct {
	FreqBins  int     `json:"freq_bins" mapstructure:"freq_bins"`
	TimeBins  int     `json:"time_bins" mapstructure:"time_bins"` // > 0 takes precedence over Overlap
	Overlap   float64 `json:"overlap" mapstructure:"overlap"`     // [0, 1)
	Normalize bool    `json:"normalize" mapstructure:"normalize"`
	FloorDB   float64 `json:"floor_db" mapstructure:"floor_db"`
	Window    string  `json:"window" mapstructure:"window"`
	Backend   string  `json:"backend" mapstructure:"backend"`
	Workers   int     `json:"workers" mapstructure:"workers"` // 0 = automatic
	LogLevel  string  `json:"log_level" mapstructure:"log_level"`
	LogFormat string  `json:"log_format" mapstructure:"log_format"` // console, json or text
}

// DefaultConfig returns the settings of the reference demo: 256 FFT points
// with 90% overlap on the raw slice.
func DefaultConfig() *Config {
	return &Config{
		FreqBins:  256,
		TimeBins:  0,
		Overlap:   0.9,
		Normalize: true,
		FloorDB:   spectral.DefaultFloorDB,
		Window:    string(windowing.Rectangular),
		Backend:   string(spectral.BackendGoDSP),
		Workers:   0,
		LogLevel:  "info",
		LogFormat: string(logging.FormatConsole),
	}
}

// Validate checks ranges that do not depend on the input series.
func (c *Config) Validate() error {
	var errs []error
	if c.FreqBins < 2 {
		errs = append(errs, fmt.Errorf("freq_bins must be >= 2, got %d", c.FreqBins))
	}
	if c.TimeBins < 0 {
		errs = append(errs, fmt.Errorf("time_bins must be >= 0, got %d", c.TimeBins))
	}
	if c.TimeBins == 0 && (math.IsNaN(c.Overlap) || c.Overlap < 0 || c.Overlap >= 1) {
		errs = append(errs, fmt.Errorf("overlap must be in [0, 1), got %g", c.Overlap))
	}
	if math.IsNaN(c.FloorDB) || math.IsInf(c.FloorDB, 0) {
		errs = append(errs, fmt.Errorf("floor_db must be finite, got %g", c.FloorDB))
	}
	if _, err := windowing.New(windowing.Type(c.Window), 2); err != nil {
		errs = append(errs, err)
	}
	if _, err := spectral.NewFFT(spectral.Backend(c.Backend)); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// NewLogger builds the logger selected by LogFormat at LogLevel, writing to w.
func (c *Config) NewLogger(w io.Writer) (logging.Logger, error) {
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(format, w)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(logging.ParseLevel(c.LogLevel))
	return logger, nil
}

// Options converts the config into computation options.
func (c *Config) Options(logger logging.Logger) []spectrogram.Option {
	return []spectrogram.Option{
		spectrogram.WithLogger(logger),
		spectrogram.WithNormalize(c.Normalize),
		spectrogram.WithFloorDB(c.FloorDB),
		spectrogram.WithWindow(windowing.Type(c.Window)),
		spectrogram.WithBackend(spectral.Backend(c.Backend)),
		spectrogram.WithWorkers(c.Workers),
	}
}

// UsesOverlap reports whether the number of windows is derived from Overlap.
func (c *Config) UsesOverlap() bool {
	return c.TimeBins <= 0
}

// SetDefaults registers DefaultConfig values on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("freq_bins", d.FreqBins)
	v.SetDefault("time_bins", d.TimeBins)
	v.SetDefault("overlap", d.Overlap)
	v.SetDefault("normalize", d.Normalize)
	v.SetDefault("floor_db", d.FloorDB)
	v.SetDefault("window", d.Window)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

// NewViper returns a viper instance with defaults and SFFT_* environment
// bindings. path, when non-empty, names a yaml/json/toml config file.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return v, nil
}

// FromViper decodes and validates a Config.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		FreqBins:  v.GetInt("freq_bins"),
		TimeBins:  v.GetInt("time_bins"),
		Overlap:   v.GetFloat64("overlap"),
		Normalize: v.GetBool("normalize"),
		FloorDB:   v.GetFloat64("floor_db"),
		Window:    v.GetString("window"),
		Backend:   v.GetString("backend"),
		Workers:   v.GetInt("workers"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load reads defaults, the optional config file at path and SFFT_* variables.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}
