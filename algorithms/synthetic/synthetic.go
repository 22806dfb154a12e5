// Package synthetic generates deterministic test and demo signals.
package synthetic

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sine returns n samples of amplitude*sin(2*pi*freq*t) sampled every dt.
func Sine(n int, dt, freq, amplitude float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", n)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("sample spacing must be > 0: %f", dt)
	}
	out := make([]float64, n)
	step := 2 * math.Pi * freq * dt
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// LinearChirp sweeps from f0 to f1 (in cycles per sample) over n samples.
func LinearChirp(n int, f0, f1, amplitude float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	k := (f1 - f0) / float64(n)
	for i := range out {
		x := float64(i)
		out[i] = amplitude * math.Sin(2*math.Pi*(f0*x+0.5*k*x*x))
	}
	return out
}

// Noise returns n gaussian samples with standard deviation sigma. The same
// seed always yields the same sequence.
func Noise(n int, sigma float64, seed uint64) []float64 {
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// Demo builds the composite demonstration signal, indexed by sample number
// with frequencies in cycles per sample:
//   - linear chirp between 20% and 90% of the record
//   - a steady tone at 0.25 between 5% and 95%
//   - a tone near 0.4 frequency-modulated at 0.01 between 30% and 90%
//   - a quadratic chirp starting at 0.1 across the whole record
//   - gaussian noise with sigma 0.1
func Demo(n int, seed uint64) []float64 {
	y := Noise(n, 0.1, seed)
	total := float64(n)
	// phase 2e-4*x^2, i.e. 0 to 4e-4*n cycles per sample over the record
	chirp := LinearChirp(n, 0, 4e-4*total, 0.7)

	for i := range y {
		x := float64(i)

		if x > 0.2*total && x < 0.9*total {
			y[i] += chirp[i]
		}

		if x > 0.05*total && x < 0.95*total {
			y[i] += math.Sin(2 * math.Pi * 0.25 * x)
		}

		mod := math.Cos(2 * math.Pi * 0.01 * x)
		if x > 0.3*total && x < 0.9*total {
			y[i] += math.Sin(2 * math.Pi * (0.4 - 5e-4*mod) * x)
		}

		y[i] += 0.5 * math.Sin(2*math.Pi*((0.1+5e-8*x*x)*x))
	}
	return y
}
