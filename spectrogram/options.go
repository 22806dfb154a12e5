package spectrogram

import (
	"math"

	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// Option configures a computation.
type Option func(*settings)

type settings struct {
	logger    logging.Logger
	normalize bool
	floorDB   float64
	window    windowing.Type
	backend   spectral.Backend
	workers   int
}

func defaultSettings() settings {
	return settings{
		logger:    &logging.NoOpLogger{},
		normalize: true,
		floorDB:   spectral.DefaultFloorDB,
		window:    windowing.Rectangular,
		backend:   spectral.BackendGoDSP,
	}
}

// WithLogger injects the diagnostic sink. nil discards diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(s *settings) { s.logger = logging.OrNop(logger) }
}

// WithNormalize selects amplitude-normalized (true, default) or raw magnitudes.
func WithNormalize(normalize bool) Option {
	return func(s *settings) { s.normalize = normalize }
}

// WithFloorDB sets the level exact-zero bins are reported at.
func WithFloorDB(floorDB float64) Option {
	return func(s *settings) { s.floorDB = floorDB }
}

// WithWindow applies a taper to every slice. The default, rectangular,
// analyses the raw slice.
func WithWindow(kind windowing.Type) Option {
	return func(s *settings) { s.window = kind }
}

// WithBackend selects the FFT implementation.
func WithBackend(backend spectral.Backend) Option {
	return func(s *settings) { s.backend = backend }
}

// WithWorkers bounds the number of goroutines analysing windows. 0 picks a
// count from the workload, 1 runs sequentially.
func WithWorkers(workers int) Option {
	return func(s *settings) { s.workers = workers }
}

func applyOptions(opts []Option) (settings, error) {
	s := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if math.IsNaN(s.floorDB) || math.IsInf(s.floorDB, 0) {
		return s, &ParameterError{Name: "floor_db", Value: s.floorDB, Reason: "must be finite"}
	}
	if s.workers < 0 {
		return s, &ParameterError{Name: "workers", Value: s.workers, Reason: "must be >= 0"}
	}
	return s, nil
}
