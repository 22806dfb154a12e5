package spectral

import (
	"math"
	"math/cmplx"
)

// DefaultFloorDB is the lowest level a magnitude is reported at. Exact-zero
// bins would otherwise map to -Inf.
const DefaultFloorDB = -200.0

// Magnitudes returns |X[k]| for the first bins coefficients.
func Magnitudes(coeffs []complex128, bins int) []float64 {
	bins = min(bins, len(coeffs))
	mag := make([]float64, bins)
	for i := range bins {
		mag[i] = cmplx.Abs(coeffs[i])
	}
	return mag
}

// AmplitudeScale is the factor mapping a raw FFT magnitude of an n-point
// transform to the amplitude of the sinusoid that produced it.
func AmplitudeScale(n int) float64 {
	if n <= 0 {
		return 1
	}
	return 2.0 / float64(n)
}

// Decibels converts magnitudes to 20*log10(mag) in place, clamping at floorDB.
// The clamp is applied to the level, not the magnitude, so very low floors
// whose linear value underflows still hold.
func Decibels(mag []float64, floorDB float64) []float64 {
	for i, m := range mag {
		db := 20 * math.Log10(m)
		if math.IsNaN(db) || db < floorDB {
			db = floorDB
		}
		mag[i] = db
	}
	return mag
}

// MagnitudeDB computes the dB magnitude of the first bins coefficients of an
// n-point transform, optionally amplitude-normalized.
func MagnitudeDB(coeffs []complex128, n, bins int, normalize bool, floorDB float64) []float64 {
	mag := Magnitudes(coeffs, bins)
	if normalize {
		scale := AmplitudeScale(n)
		for i := range mag {
			mag[i] *= scale
		}
	}
	return Decibels(mag, floorDB)
}
