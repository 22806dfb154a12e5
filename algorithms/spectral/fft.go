package spectral

import (
	"fmt"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Backend names a real FFT implementation.
type Backend string

const (
	BackendGoDSP Backend = "go-dsp"
	BackendGonum Backend = "gonum"
)

// RealFFT transforms a real signal of length n and returns only the
// non-redundant half of the spectrum: bins [0, n/2], n/2+1 values.
// Implementations are safe for concurrent use.
type RealFFT interface {
	Forward(x []float64) []complex128
	Backend() Backend
}

// NewFFT returns the RealFFT for backend. An empty backend selects go-dsp.
func NewFFT(backend Backend) (RealFFT, error) {
	switch backend {
	case "", BackendGoDSP:
		return &GoDSPFFT{}, nil
	case BackendGonum:
		return NewGonumFFT(), nil
	default:
		return nil, fmt.Errorf("unknown fft backend %q", backend)
	}
}

// GoDSPFFT uses mjibson/go-dsp, which handles any length (radix-2 or Bluestein).
type GoDSPFFT struct{}

func (f *GoDSPFFT) Forward(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	full := fft.FFTReal(x)
	return full[:len(x)/2+1]
}

func (f *GoDSPFFT) Backend() Backend { return BackendGoDSP }

// GonumFFT uses gonum's fourier package. A fourier.FFT holds scratch space and
// is not safe for concurrent use, so plans are pooled per length.
type GonumFFT struct {
	mu    sync.Mutex
	plans map[int]*sync.Pool
}

// NewGonumFFT creates a gonum-backed RealFFT.
func NewGonumFFT() *GonumFFT {
	return &GonumFFT{plans: make(map[int]*sync.Pool)}
}

func (f *GonumFFT) pool(n int) *sync.Pool {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[n]
	if !ok {
		p = &sync.Pool{New: func() any { return fourier.NewFFT(n) }}
		f.plans[n] = p
	}
	return p
}

func (f *GonumFFT) Forward(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	p := f.pool(len(x))
	plan := p.Get().(*fourier.FFT)
	defer p.Put(plan)

	return plan.Coefficients(nil, x)
}

func (f *GonumFFT) Backend() Backend { return BackendGonum }
