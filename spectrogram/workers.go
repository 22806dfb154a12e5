package spectrogram

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/algorithms/stats"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// analyzeSlices runs engine over every slice and returns the rows in slice
// order together with the merged extrema. Each worker owns its window buffer
// and extrema; rows land in disjoint slots of the result.
func analyzeSlices(ctx context.Context, series TimeSeries, slices []Slice, engine *spectral.Engine,
	taper *windowing.Window, workers int, logger logging.Logger) ([][]float64, *stats.Extrema, error) {

	rows := make([][]float64, len(slices))
	total := stats.NewExtrema()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan Slice)

	g.Go(func() error {
		defer close(jobs)
		for _, s := range slices {
			select {
			case jobs <- s:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			local := stats.NewExtrema()
			defer func() {
				mu.Lock()
				total.Merge(local)
				mu.Unlock()
			}()

			if len(slices) == 0 {
				return nil
			}
			buf := make([]float64, slices[0].End-slices[0].Start)

			for job := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}

				logger.Debug("SFFT: evaluating slice", logging.Fields{
					"slice": job.Index,
					"start": job.Start,
					"end":   job.End,
				})

				for j := range buf {
					buf[j] = series.ValueAt(job.Start + j)
				}
				if err := taper.ApplyInPlace(buf); err != nil {
					return err
				}

				row, err := engine.Analyze(buf)
				if err != nil {
					return err
				}
				rows[job.Index] = row
				local.Update(row)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rows, total, nil
}

// workerCount picks how many goroutines to use for numSlices windows.
func workerCount(requested, numSlices int) int {
	if numSlices < 1 {
		return 1
	}
	if requested > 0 {
		return min(requested, numSlices)
	}

	numCPU := runtime.NumCPU()
	var n int
	switch {
	case numSlices < 100:
		n = min(numCPU/2, numSlices)
	case numSlices < 1000:
		n = min(numCPU, 8)
	default:
		n = numCPU
	}
	return max(n, 1)
}
