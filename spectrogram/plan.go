package spectrogram

import (
	"math"

	"github.com/RyanBlaney/sonido-spectra/logging"
)

// Clamp records a requested resolution that the input could not support.
type Clamp struct {
	Parameter string `json:"parameter"`
	Requested int    `json:"requested"`
	Effective int    `json:"effective"`
}

// Plan holds the effective resolution and both output axes.
type Plan struct {
	FreqBins      int       `json:"freq_bins"`
	TimeBins      int       `json:"time_bins"`
	SampleRate    float64   `json:"sample_rate"`
	FrequencyAxis []float64 `json:"frequency_axis"`
	TimeAxis      []float64 `json:"time_axis"`
	Clamps        []Clamp   `json:"clamps,omitempty"`
}

// FrequencyStep is the spacing of the frequency axis, fs/freqBins.
func (p *Plan) FrequencyStep() float64 {
	return p.SampleRate / float64(p.FreqBins)
}

// PlanAxes validates the request, clamps freqBins/timeBins to what the series
// supports and derives the sample rate and both axes. Clamping is reported
// through logger and Plan.Clamps, never as an error.
func PlanAxes(series TimeSeries, freqBins, timeBins int, logger logging.Logger) (*Plan, error) {
	logger = logging.OrNop(logger)

	if err := validateSeries(series); err != nil {
		return nil, err
	}
	if freqBins < 2 {
		return nil, &ParameterError{Name: "freq_bins", Value: freqBins, Reason: "must be >= 2"}
	}
	if timeBins < 1 {
		return nil, &ParameterError{Name: "time_bins", Value: timeBins, Reason: "must be >= 1"}
	}

	n := series.Len()
	plan := &Plan{FreqBins: freqBins, TimeBins: timeBins}

	if n < freqBins {
		plan.clamp(logger, "Not enough samples for requested frequency resolution", "freq_bins", freqBins, n)
		plan.FreqBins = n
	}
	if n-plan.FreqBins < timeBins-1 {
		effective := n - plan.FreqBins + 1
		plan.clamp(logger, "Not enough samples for requested time resolution", "time_bins", timeBins, effective)
		plan.TimeBins = effective
	}

	plan.SampleRate = float64(n) / (series.TimeAt(n-1) - series.TimeAt(0))

	fStep := plan.FrequencyStep()
	plan.FrequencyAxis = make([]float64, plan.FreqBins/2)
	for i := range plan.FrequencyAxis {
		plan.FrequencyAxis[i] = float64(i) * fStep
	}

	// Each timestamp sits at the centre sample of its window.
	span := n - plan.FreqBins
	plan.TimeAxis = make([]float64, plan.TimeBins)
	for i := range plan.TimeAxis {
		plan.TimeAxis[i] = series.TimeAt(i*span/plan.TimeBins + plan.FreqBins/2)
	}

	return plan, nil
}

// PlanFromOverlap derives timeBins from the overlap between consecutive
// windows, then delegates to PlanAxes.
func PlanFromOverlap(series TimeSeries, freqBins int, overlap float64, logger logging.Logger) (*Plan, error) {
	if err := validateSeries(series); err != nil {
		return nil, err
	}
	timeBins, err := TimeBinsFromOverlap(series.Len(), freqBins, overlap)
	if err != nil {
		return nil, err
	}
	return PlanAxes(series, freqBins, timeBins, logger)
}

// TimeBinsFromOverlap computes floor((length-freqBins) / (freqBins*(1-overlap))).
func TimeBinsFromOverlap(length, freqBins int, overlap float64) (int, error) {
	if freqBins < 2 {
		return 0, &ParameterError{Name: "freq_bins", Value: freqBins, Reason: "must be >= 2"}
	}
	if math.IsNaN(overlap) || overlap < 0 || overlap >= 1 {
		return 0, &ParameterError{Name: "overlap", Value: overlap, Reason: "must be in [0, 1)"}
	}

	timeBins := math.Floor(float64(length-freqBins) / (float64(freqBins) * (1 - overlap)))
	if timeBins < 1 {
		return 0, &ParameterError{Name: "overlap", Value: overlap, Reason: "yields fewer than 1 time bin for this series"}
	}
	if timeBins > float64(length) {
		timeBins = float64(length)
	}
	return int(timeBins), nil
}

func (p *Plan) clamp(logger logging.Logger, msg, parameter string, requested, effective int) {
	p.Clamps = append(p.Clamps, Clamp{Parameter: parameter, Requested: requested, Effective: effective})
	logger.Warn(msg, logging.Fields{
		"event":     "parameter_clamped",
		"parameter": parameter,
		"requested": requested,
		"effective": effective,
	})
}
