package spectrogram

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// Axis describes one dimension of the result.
type Axis struct {
	Name string  `json:"name"`
	Unit string  `json:"unit"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Spectrogram is a time x frequency grid of dB magnitudes. Magnitude is
// row-major: Magnitude[t][f] belongs to TimeAxis[t] and FrequencyAxis[f].
// A Spectrogram shares no memory with the engine that built it.
type Spectrogram struct {
	Label         string      `json:"label"`
	Info          []string    `json:"info"`
	FrequencyAxis []float64   `json:"frequency_axis"`
	TimeAxis      []float64   `json:"time_axis"`
	Magnitude     [][]float64 `json:"magnitude"`
	MagnitudeMin  float64     `json:"magnitude_min"`
	MagnitudeMax  float64     `json:"magnitude_max"`
	FreqUnit      string      `json:"freq_unit"`
	TimeUnit      string      `json:"time_unit"`
	MagnitudeUnit string      `json:"magnitude_unit"`
	FreqBins      int         `json:"freq_bins"`
	TimeBins      int         `json:"time_bins"`
	SampleRate    float64     `json:"sample_rate"`
	Clamps        []Clamp     `json:"clamps,omitempty"`
}

// Compute builds the spectrogram of series with freqBins FFT points and
// timeBins windows.
func Compute(series TimeSeries, freqBins, timeBins int, opts ...Option) (*Spectrogram, error) {
	return ComputeContext(context.Background(), series, freqBins, timeBins, opts...)
}

// ComputeWithOverlap derives the number of windows from overlap in [0, 1).
func ComputeWithOverlap(series TimeSeries, freqBins int, overlap float64, opts ...Option) (*Spectrogram, error) {
	return ComputeWithOverlapContext(context.Background(), series, freqBins, overlap, opts...)
}

// ComputeContext is Compute with cancellation, checked at every window boundary.
func ComputeContext(ctx context.Context, series TimeSeries, freqBins, timeBins int, opts ...Option) (*Spectrogram, error) {
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	plan, err := PlanAxes(series, freqBins, timeBins, s.logger)
	if err != nil {
		return nil, err
	}
	return assemble(ctx, series, plan, s)
}

// ComputeWithOverlapContext is ComputeWithOverlap with cancellation.
func ComputeWithOverlapContext(ctx context.Context, series TimeSeries, freqBins int, overlap float64, opts ...Option) (*Spectrogram, error) {
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	plan, err := PlanFromOverlap(series, freqBins, overlap, s.logger)
	if err != nil {
		return nil, err
	}
	return assemble(ctx, series, plan, s)
}

func assemble(ctx context.Context, series TimeSeries, plan *Plan, s settings) (*Spectrogram, error) {
	transform, err := spectral.NewFFT(s.backend)
	if err != nil {
		return nil, &ParameterError{Name: "backend", Value: s.backend, Reason: err.Error()}
	}
	taper, err := windowing.New(s.window, plan.FreqBins)
	if err != nil {
		return nil, &ParameterError{Name: "window", Value: s.window, Reason: err.Error()}
	}
	engine := spectral.NewEngine(transform,
		spectral.WithNormalize(s.normalize),
		spectral.WithFloorDB(s.floorDB),
	)

	slices := Slices(series.Len(), plan.FreqBins, plan.TimeBins)
	workers := workerCount(s.workers, len(slices))

	rows, extrema, err := analyzeSlices(ctx, series, slices, engine, taper, workers, s.logger)
	if err != nil {
		return nil, fmt.Errorf("computing spectrogram of %q: %w", series.Name(), err)
	}

	timeUnit := series.TimeUnit()
	result := &Spectrogram{
		Label:         "SFFT(" + series.Name() + ")",
		Info:          []string{fmt.Sprintf("nFFT=%d, nT=%d", plan.FreqBins, plan.TimeBins)},
		FrequencyAxis: plan.FrequencyAxis,
		TimeAxis:      plan.TimeAxis,
		Magnitude:     rows,
		MagnitudeMin:  extrema.Min(),
		MagnitudeMax:  extrema.Max(),
		FreqUnit:      "1/" + timeUnit,
		TimeUnit:      timeUnit,
		MagnitudeUnit: series.ValueUnit(),
		FreqBins:      plan.FreqBins,
		TimeBins:      plan.TimeBins,
		SampleRate:    plan.SampleRate,
		Clamps:        plan.Clamps,
	}

	s.logger.Info("result of sfft", logging.Fields{
		"label":         result.Label,
		"freq_bins":     result.FreqBins,
		"time_bins":     result.TimeBins,
		"workers":       workers,
		"magnitude_min": result.MagnitudeMin,
		"magnitude_max": result.MagnitudeMax,
	})
	return result, nil
}

// FrequencyDescription describes the frequency axis.
func (s *Spectrogram) FrequencyDescription() Axis {
	return axisOf("Frequency", s.FreqUnit, s.FrequencyAxis)
}

// TimeDescription describes the time axis.
func (s *Spectrogram) TimeDescription() Axis {
	return axisOf("Time", s.TimeUnit, s.TimeAxis)
}

// MagnitudeDescription describes the magnitude range.
func (s *Spectrogram) MagnitudeDescription() Axis {
	return Axis{Name: "Magnitude", Unit: s.MagnitudeUnit, Min: s.MagnitudeMin, Max: s.MagnitudeMax}
}

func axisOf(name, unit string, values []float64) Axis {
	a := Axis{Name: name, Unit: unit}
	if len(values) > 0 {
		a.Min = values[0]
		a.Max = values[len(values)-1]
	}
	return a
}

// At returns the magnitude of time bin t and frequency bin f.
func (s *Spectrogram) At(t, f int) float64 {
	return s.Magnitude[t][f]
}

// Row returns the spectrum of time bin t.
func (s *Spectrogram) Row(t int) []float64 {
	return s.Magnitude[t]
}

// PeakBins returns, per time bin, the index of the loudest frequency bin.
func (s *Spectrogram) PeakBins() []int {
	peaks := make([]int, len(s.Magnitude))
	for t, row := range s.Magnitude {
		if len(row) > 0 {
			peaks[t] = floats.MaxIdx(row)
		}
	}
	return peaks
}

// PeakFrequencies maps PeakBins onto the frequency axis.
func (s *Spectrogram) PeakFrequencies() []float64 {
	bins := s.PeakBins()
	out := make([]float64, len(bins))
	for i, b := range bins {
		if b < len(s.FrequencyAxis) {
			out[i] = s.FrequencyAxis[b]
		}
	}
	return out
}

// Centroids returns the spectral centroid of every time bin, in frequency
// axis units.
func (s *Spectrogram) Centroids() []float64 {
	out := make([]float64, len(s.Magnitude))
	for t, row := range s.Magnitude {
		out[t] = spectral.Centroid(s.FrequencyAxis, spectral.FromDecibels(row))
	}
	return out
}

// Flatness returns the spectral flatness of every time bin.
func (s *Spectrogram) Flatness() []float64 {
	out := make([]float64, len(s.Magnitude))
	for t, row := range s.Magnitude {
		out[t] = spectral.Flatness(spectral.FromDecibels(row))
	}
	return out
}
