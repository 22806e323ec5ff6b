// Package zonal summarizes a raster restricted to a boolean mask,
// e.g. elevation change over glacierized vs stable terrain.
package zonal

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/openterrain/geoutil/grid"
)

// Summary holds masked sample statistics.
type Summary struct {
	N                          int
	Mean, Min, Max, SD, Median float64
}

// Stats summarizes the non-null samples of r where m is true.
// The mask must share r's grid shape.
func Stats(r *grid.Real, m *grid.Mask) (Summary, error) {
	if !r.GD.SameShape(m.GD) {
		return Summary{}, fmt.Errorf("zonal.Stats: %dx%d vs %dx%d: %w",
			r.GD.NR, r.GD.NC, m.GD.NR, m.GD.NC, grid.ErrShapeMismatch)
	}
	xs := make([]float64, 0, m.Count())
	for i, b := range m.B {
		if b && !r.IsNull(i) {
			xs = append(xs, r.A[i])
		}
	}
	if len(xs) == 0 {
		nan := math.NaN()
		return Summary{N: 0, Mean: nan, Min: nan, Max: nan, SD: nan, Median: nan}, nil
	}
	sort.Float64s(xs)
	return Summary{
		N:      len(xs),
		Mean:   stat.Mean(xs, nil),
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		SD:     stat.StdDev(xs, nil),
		Median: stat.Quantile(.5, stat.Empirical, xs, nil),
	}, nil
}
