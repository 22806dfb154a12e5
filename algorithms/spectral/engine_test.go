package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func sine(n int, cycles, amplitude float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amplitude * math.Sin(2*math.Pi*cycles*float64(i)/float64(n))
	}
	return x
}

func TestNewFFTBackends(t *testing.T) {
	for _, b := range []Backend{"", BackendGoDSP, BackendGonum} {
		f, err := NewFFT(b)
		require.NoError(t, err)
		assert.NotNil(t, f)
	}

	_, err := NewFFT("fftw")
	assert.Error(t, err)
}

func TestBackendsAgree(t *testing.T) {
	x := sine(96, 7, 1.5)
	for i := range x {
		x[i] += 0.25 * math.Cos(float64(i)*0.3)
	}

	a := (&GoDSPFFT{}).Forward(x)
	b := NewGonumFFT().Forward(x)
	require.Len(t, a, 49)
	require.Len(t, b, 49)

	for k := range a {
		assert.InDelta(t, real(a[k]), real(b[k]), 1e-9, "re bin %d", k)
		assert.InDelta(t, imag(a[k]), imag(b[k]), 1e-9, "im bin %d", k)
	}
}

func TestForwardEmpty(t *testing.T) {
	assert.Empty(t, (&GoDSPFFT{}).Forward(nil))
	assert.Empty(t, NewGonumFFT().Forward(nil))
}

func TestAnalyzeRowLengthDropsNyquist(t *testing.T) {
	e := NewEngine(nil)
	for _, n := range []int{2, 3, 64, 300, 301} {
		row, err := e.Analyze(make([]float64, n))
		require.NoError(t, err)
		assert.Len(t, row, n/2, "n=%d", n)
	}
}

func TestAnalyzeRejectsShortWindow(t *testing.T) {
	_, err := NewEngine(nil).Analyze([]float64{1})
	assert.Error(t, err)
}

func TestAnalyzeNormalizedSinePeak(t *testing.T) {
	const n = 256
	x := sine(n, 32, 2.0)

	for _, transform := range []RealFFT{&GoDSPFFT{}, NewGonumFFT()} {
		row, err := NewEngine(transform).Analyze(x)
		require.NoError(t, err)

		peak := floats.MaxIdx(row)
		assert.Equal(t, 32, peak, transform.Backend())
		// amplitude 2 -> 20*log10(2)
		assert.InDelta(t, 20*math.Log10(2), row[peak], 1e-6, transform.Backend())
	}
}

func TestAnalyzeRawMagnitude(t *testing.T) {
	const n = 128
	x := sine(n, 10, 1.0)

	row, err := NewEngine(nil, WithNormalize(false)).Analyze(x)
	require.NoError(t, err)
	// unnormalized peak is A*n/2
	assert.InDelta(t, 20*math.Log10(n/2), row[10], 1e-6)
}

func TestAnalyzeFloorsSilence(t *testing.T) {
	row, err := NewEngine(nil, WithFloorDB(-120)).Analyze(make([]float64, 32))
	require.NoError(t, err)
	for _, v := range row {
		assert.InDelta(t, -120.0, v, 1e-9)
	}
}

func TestDecibelsFloorBelowLinearUnderflow(t *testing.T) {
	// 10^(-7000/20) is 0 in float64
	got := Decibels([]float64{0, 1e-320, 1}, -7000)
	assert.Equal(t, -7000.0, got[0])
	assert.False(t, math.IsInf(got[1], 0))
	assert.GreaterOrEqual(t, got[1], -7000.0)
	assert.InDelta(t, 0, got[2], 1e-12)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	x := sine(64, 3, 1)
	orig := append([]float64(nil), x...)
	_, err := NewEngine(NewGonumFFT()).Analyze(x)
	require.NoError(t, err)
	assert.Equal(t, orig, x)
}

func TestDecibels(t *testing.T) {
	got := Decibels([]float64{1, 10, 0, math.NaN()}, -100)
	assert.InDelta(t, 0, got[0], 1e-12)
	assert.InDelta(t, 20, got[1], 1e-12)
	assert.InDelta(t, -100, got[2], 1e-9)
	assert.InDelta(t, -100, got[3], 1e-9)
}

func TestMagnitudesClampsBins(t *testing.T) {
	got := Magnitudes([]complex128{3 + 4i, 1}, 5)
	assert.Equal(t, []float64{5, 1}, got)
}
