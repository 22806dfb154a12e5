package spectral

import (
	"fmt"
)

// Engine turns one analysis window into a row of dB magnitudes. It keeps no
// per-call state; one Engine may serve many goroutines.
type Engine struct {
	fft       RealFFT
	normalize bool
	floorDB   float64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithNormalize selects amplitude-normalized magnitudes (|X|*2/n) before the log.
func WithNormalize(normalize bool) EngineOption {
	return func(e *Engine) { e.normalize = normalize }
}

// WithFloorDB sets the lowest reported level.
func WithFloorDB(floorDB float64) EngineOption {
	return func(e *Engine) { e.floorDB = floorDB }
}

// NewEngine creates an Engine. A nil transform selects the go-dsp backend.
func NewEngine(transform RealFFT, opts ...EngineOption) *Engine {
	if transform == nil {
		transform = &GoDSPFFT{}
	}
	e := &Engine{
		fft:       transform,
		normalize: true,
		floorDB:   DefaultFloorDB,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Analyze returns len(samples)/2 dB magnitudes, DC first. The Nyquist bin is
// dropped so the row length matches the frequency axis.
func (e *Engine) Analyze(samples []float64) ([]float64, error) {
	n := len(samples)
	if n < 2 {
		return nil, fmt.Errorf("window must hold at least 2 samples, got %d", n)
	}

	coeffs := e.fft.Forward(samples)
	return MagnitudeDB(coeffs, n, n/2, e.normalize, e.floorDB), nil
}

// Normalize reports whether magnitudes are amplitude-normalized.
func (e *Engine) Normalize() bool { return e.normalize }

// FloorDB returns the clamp level.
func (e *Engine) FloorDB() float64 { return e.floorDB }

// Backend reports the FFT implementation in use.
func (e *Engine) Backend() Backend { return e.fft.Backend() }
