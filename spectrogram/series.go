package spectrogram

import (
	"fmt"
	"math"
)

// TimeSeries is the read-only input: equidistantly sampled (t, y) pairs with
// a display name and axis units.
type TimeSeries interface {
	Len() int
	TimeAt(i int) float64
	ValueAt(i int) float64
	Name() string
	TimeUnit() string
	ValueUnit() string
}

// Samples is an in-memory TimeSeries backed by two slices.
type Samples struct {
	name      string
	timeUnit  string
	valueUnit string
	t         []float64
	y         []float64
}

// NewSamples pairs timestamps with values. The slices are used as-is; the
// caller must not modify them afterwards.
func NewSamples(name string, t, y []float64) (*Samples, error) {
	if len(t) != len(y) {
		return nil, fmt.Errorf("time and value slices differ in length: %d != %d", len(t), len(y))
	}
	return &Samples{name: name, timeUnit: "s", valueUnit: "a.u.", t: t, y: y}, nil
}

// NewUniformSamples builds a series with t[i] = i*dt.
func NewUniformSamples(name string, dt float64, y []float64) *Samples {
	t := make([]float64, len(y))
	for i := range t {
		t[i] = float64(i) * dt
	}
	return &Samples{name: name, timeUnit: "s", valueUnit: "a.u.", t: t, y: y}
}

// WithUnits sets the time and amplitude units and returns s.
func (s *Samples) WithUnits(timeUnit, valueUnit string) *Samples {
	s.timeUnit = timeUnit
	s.valueUnit = valueUnit
	return s
}

func (s *Samples) Len() int              { return len(s.y) }
func (s *Samples) TimeAt(i int) float64  { return s.t[i] }
func (s *Samples) ValueAt(i int) float64 { return s.y[i] }
func (s *Samples) Name() string          { return s.name }
func (s *Samples) TimeUnit() string      { return s.timeUnit }
func (s *Samples) ValueUnit() string     { return s.valueUnit }

func validateSeries(series TimeSeries) error {
	if series == nil {
		return &InputError{Reason: "series is nil"}
	}
	n := series.Len()
	if n < 2 {
		return &InputError{Reason: fmt.Sprintf("need at least 2 samples, got %d", n)}
	}
	prev := series.TimeAt(0)
	for i := 1; i < n; i++ {
		cur := series.TimeAt(i)
		if !(cur > prev) {
			return &InputError{Index: i, Reason: fmt.Sprintf("timestamps not strictly increasing: t[%d]=%g, t[%d]=%g", i-1, prev, i, cur)}
		}
		prev = cur
	}
	for i := range n {
		if v := series.ValueAt(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return &InputError{Index: i, Reason: fmt.Sprintf("non-finite value y[%d]=%g", i, v)}
		}
	}
	return nil
}
