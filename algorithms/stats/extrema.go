package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Extrema tracks the running minimum and maximum over every value it sees.
// Update is a commutative reduction: partial Extrema built on disjoint rows
// can be combined with Merge in any order. Not safe for concurrent use; give
// each goroutine its own and merge at the end.
type Extrema struct {
	min   float64
	max   float64
	count int
}

// NewExtrema returns an empty aggregator (min=+Inf, max=-Inf).
func NewExtrema() *Extrema {
	return &Extrema{min: math.Inf(1), max: math.Inf(-1)}
}

// Update folds every cell of row into the running extrema.
func (e *Extrema) Update(row []float64) {
	if len(row) == 0 {
		return
	}
	e.min = math.Min(e.min, floats.Min(row))
	e.max = math.Max(e.max, floats.Max(row))
	e.count += len(row)
}

// Merge folds other into e.
func (e *Extrema) Merge(other *Extrema) {
	if other == nil || other.count == 0 {
		return
	}
	e.min = math.Min(e.min, other.min)
	e.max = math.Max(e.max, other.max)
	e.count += other.count
}

func (e *Extrema) Min() float64 { return e.min }

func (e *Extrema) Max() float64 { return e.max }

// Count is the number of cells seen.
func (e *Extrema) Count() int { return e.count }

// Empty reports whether no cell has been seen yet.
func (e *Extrema) Empty() bool { return e.count == 0 }
