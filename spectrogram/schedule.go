package spectrogram

// Slice is one analysis window: samples [Start, End) of the series.
type Slice struct {
	Index int
	Start int
	End   int
}

// Timestep is the distance in samples between consecutive window starts,
// floor((length-freqBins)/timeBins).
func Timestep(length, freqBins, timeBins int) int {
	if timeBins < 1 || length < freqBins {
		return 0
	}
	return (length - freqBins) / timeBins
}

// WindowStarts returns the first sample index of each of the timeBins windows.
// No taper is implied; windows may overlap or leave gaps.
func WindowStarts(length, freqBins, timeBins int) []int {
	if timeBins < 1 {
		return nil
	}
	step := Timestep(length, freqBins, timeBins)
	starts := make([]int, timeBins)
	for i := range starts {
		starts[i] = i * step
	}
	return starts
}

// Slices expands WindowStarts into [Start, End) ranges.
func Slices(length, freqBins, timeBins int) []Slice {
	starts := WindowStarts(length, freqBins, timeBins)
	out := make([]Slice, len(starts))
	for i, s := range starts {
		out[i] = Slice{Index: i, Start: s, End: s + freqBins}
	}
	return out
}
