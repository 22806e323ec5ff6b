package grid

import (
	"fmt"
	"math"
)

// NoData is the sentinel written in place of null samples on export.
const NoData = -9999.

// Real is a raster of float64 samples over a grid definition, stored
// row-major from the upper-left cell. Null samples are held as NaN.
// Operations never mutate their receiver; each returns a new raster.
type Real struct {
	GD *Definition
	A  []float64
}

// NewReal allocates a raster over gd with every sample set to fill.
func NewReal(gd *Definition, fill float64) *Real {
	a := make([]float64, gd.Ncells())
	for i := range a {
		a[i] = fill
	}
	return &Real{GD: gd, A: a}
}

// IsNull reports whether sample i carries no data.
func (r *Real) IsNull(i int) bool { return math.IsNaN(r.A[i]) }

// Value returns the sample at (row, col).
func (r *Real) Value(row, col int) float64 { return r.A[row*r.GD.NC+col] }

func (r *Real) compatible(o *Real) error {
	if !r.GD.SameShape(o.GD) {
		return fmt.Errorf("grid: %dx%d vs %dx%d: %w", r.GD.NR, r.GD.NC, o.GD.NR, o.GD.NC, ErrShapeMismatch)
	}
	if !sameCRS(r.GD.Proj4, o.GD.Proj4) {
		return fmt.Errorf("grid: %q vs %q: %w", r.GD.Proj4, o.GD.Proj4, ErrCRSMismatch)
	}
	return nil
}

// Diff returns the elementwise difference r-o. Null propagates.
func (r *Real) Diff(o *Real) (*Real, error) {
	return r.combine(o, func(a, b float64) float64 { return a - b })
}

// Add returns the elementwise sum r+o. Null propagates.
func (r *Real) Add(o *Real) (*Real, error) {
	return r.combine(o, func(a, b float64) float64 { return a + b })
}

func (r *Real) combine(o *Real, f func(a, b float64) float64) (*Real, error) {
	if err := r.compatible(o); err != nil {
		return nil, err
	}
	out := &Real{GD: r.GD, A: make([]float64, len(r.A))}
	for i, v := range r.A {
		out.A[i] = f(v, o.A[i]) // NaN propagates through arithmetic
	}
	return out, nil
}

// Scale returns r with every sample multiplied by f.
func (r *Real) Scale(f float64) *Real {
	out := &Real{GD: r.GD, A: make([]float64, len(r.A))}
	for i, v := range r.A {
		out.A[i] = v * f
	}
	return out
}

// Abs returns the elementwise absolute value of r.
func (r *Real) Abs() *Real {
	out := &Real{GD: r.GD, A: make([]float64, len(r.A))}
	for i, v := range r.A {
		out.A[i] = math.Abs(v)
	}
	return out
}

// MinMax returns the least and greatest non-null samples.
func (r *Real) MinMax() (min, max float64) {
	min, max = math.MaxFloat64, -math.MaxFloat64
	for i, v := range r.A {
		if r.IsNull(i) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}

// Mean returns the average of the non-null samples.
func (r *Real) Mean() float64 {
	s, n := 0., 0
	for i, v := range r.A {
		if r.IsNull(i) {
			continue
		}
		s += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return s / float64(n)
}

// Nnull returns the count of null samples.
func (r *Real) Nnull() int {
	n := 0
	for i := range r.A {
		if r.IsNull(i) {
			n++
		}
	}
	return n
}
