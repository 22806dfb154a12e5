package windowing

import (
	"fmt"
	"sort"

	"github.com/mjibson/go-dsp/window"
)

// Type names a taper applied to each analysis slice.
type Type string

const (
	Rectangular Type = "rectangular"
	Hann        Type = "hann"
	Hamming     Type = "hamming"
	Blackman    Type = "blackman"
	Bartlett    Type = "bartlett"
	FlatTop     Type = "flattop"
)

var generators = map[Type]func(int) []float64{
	Rectangular: window.Rectangular,
	Hann:        window.Hann,
	Hamming:     window.Hamming,
	Blackman:    window.Blackman,
	Bartlett:    window.Bartlett,
	FlatTop:     window.FlatTop,
}

// Window multiplies a slice by precomputed coefficients.
type Window struct {
	kind         Type
	coefficients []float64
}

// New builds a window of the given type and size. An empty type means rectangular.
func New(kind Type, size int) (*Window, error) {
	if kind == "" {
		kind = Rectangular
	}
	gen, ok := generators[kind]
	if !ok {
		return nil, fmt.Errorf("unknown window type %q", kind)
	}
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}
	return &Window{kind: kind, coefficients: gen(size)}, nil
}

// ApplyInPlace multiplies signal by the window coefficients.
func (w *Window) ApplyInPlace(signal []float64) error {
	if len(signal) != len(w.coefficients) {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), len(w.coefficients))
	}
	if w.kind == Rectangular {
		return nil
	}
	for i, c := range w.coefficients {
		signal[i] *= c
	}
	return nil
}

// Coefficients returns a copy of the window coefficients.
func (w *Window) Coefficients() []float64 {
	out := make([]float64, len(w.coefficients))
	copy(out, w.coefficients)
	return out
}

// Size returns the window length.
func (w *Window) Size() int { return len(w.coefficients) }

// Type returns the window type.
func (w *Window) Type() Type { return w.kind }

// IsIdentity reports whether applying the window leaves the slice unchanged.
func (w *Window) IsIdentity() bool { return w.kind == Rectangular }

// Supported lists the known window types, sorted.
func Supported() []Type {
	out := make([]Type, 0, len(generators))
	for t := range generators {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
