package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// flatnessThreshold keeps log(0) out of the geometric mean.
const flatnessThreshold = 1e-10

// FromDecibels converts a dB row back to linear magnitudes.
func FromDecibels(db []float64) []float64 {
	out := make([]float64, len(db))
	for i, v := range db {
		out[i] = math.Pow(10, v/20)
	}
	return out
}

// Centroid returns the magnitude-weighted mean frequency of a spectrum.
// freqs and magnitudes are paired by index; extra entries in either are
// ignored. A silent spectrum has centroid 0.
func Centroid(freqs, magnitudes []float64) float64 {
	n := min(len(freqs), len(magnitudes))
	if n == 0 {
		return 0
	}
	total := floats.Sum(magnitudes[:n])
	if total == 0 {
		return 0
	}
	return floats.Dot(freqs[:n], magnitudes[:n]) / total
}

// Flatness is the ratio of geometric to arithmetic mean of a magnitude
// spectrum (Wiener entropy). Values near 0 mean tonal, near 1 noise-like.
func Flatness(magnitudes []float64) float64 {
	if len(magnitudes) == 0 {
		return 0
	}

	logSum := 0.0
	valid := 0
	for _, m := range magnitudes {
		if m > flatnessThreshold {
			logSum += math.Log(m)
			valid++
		}
	}
	if valid == 0 {
		return 0
	}

	arithmetic := stat.Mean(magnitudes, nil)
	if arithmetic <= flatnessThreshold {
		return 0
	}
	return math.Min(math.Exp(logSum/float64(valid))/arithmetic, 1)
}
