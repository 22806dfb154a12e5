package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-spectra/algorithms/synthetic"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/spectrogram"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.UsesOverlap())
	assert.Equal(t, 256, cfg.FreqBins)
	assert.Equal(t, 0.9, cfg.Overlap)
	assert.True(t, cfg.Normalize)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := &Config{
		FreqBins: 1,
		TimeBins: -1,
		FloorDB:  0,
		Window:   "kaiser",
		Backend:  "fftw",
		Workers:  -2,

		LogFormat: "xml",
	}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"freq_bins", "time_bins", "kaiser", "fftw", "workers", "xml"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateOverlapOnlyWhenUsed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Overlap = 1
	assert.Error(t, cfg.Validate())

	cfg.TimeBins = 10
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.UsesOverlap())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sfft.yaml")
	require.NoError(t, os.WriteFile(path, []byte("freq_bins: 512\nwindow: hann\noverlap: 0.5\n"), 0o644))

	t.Setenv("SFFT_WORKERS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.FreqBins)
	assert.Equal(t, "hann", cfg.Window)
	assert.Equal(t, 0.5, cfg.Overlap)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "go-dsp", cfg.Backend)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("SFFT_FREQ_BINS", "1")
	_, err := Load("")
	assert.Error(t, err)
}

func TestOptionsDriveComputation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 2
	cfg.FloorDB = -90

	rec := logging.NewRecorder()
	series := spectrogram.NewUniformSamples("demo", 1e-6, synthetic.Demo(2048, 1))

	s, err := spectrogram.ComputeWithOverlap(series, cfg.FreqBins, cfg.Overlap, cfg.Options(rec)...)
	require.NoError(t, err)
	assert.Equal(t, 70, s.TimeBins)
	assert.GreaterOrEqual(t, s.MagnitudeMin, -90.0-1e-9)
	assert.NotEmpty(t, rec.Filter(logging.InfoLevel))
}

func TestNewLoggerFollowsFormatAndLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "text"
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	assert.IsType(t, &logging.DefaultLogger{}, logger)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN] shown")

	cfg.LogFormat = "xml"
	_, err = cfg.NewLogger(&buf)
	assert.Error(t, err)
}

func TestLoadLogFormatFromEnv(t *testing.T) {
	t.Setenv("SFFT_LOG_FORMAT", "json")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}
