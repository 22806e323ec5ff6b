package grid

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
	"github.com/gosuri/uiprogress"
)

// Method selects the resampling kernel used by Warp.
type Method int

const (
	Bilinear Method = iota // continuous surfaces (default)
	Nearest                // categorical rasters
)

// WarpSpec describes the target grid of a reprojection/resampling.
// Exactly one of To, Proj4, Cs or Extent must be given: a reference
// definition, a target coordinate system, a new cell size over the
// source extent, or a new extent at the source cell size.
type WarpSpec struct {
	To     *Definition
	Proj4  string
	Cs     float64
	Extent *Bounds
	Method Method
}

// progress bars kick in on grids larger than this
const barcells = 1 << 22

// Warp resamples the raster onto the grid described by ws,
// returning a new raster. The source is never modified.
func (r *Real) Warp(ws WarpSpec) (*Real, error) {
	gd, err := r.targetDefinition(ws)
	if err != nil {
		return nil, err
	}
	tr, err := newTransform(gd.Proj4, r.GD.Proj4) // target to source
	if err != nil {
		return nil, err
	}

	out := &Real{GD: gd, A: make([]float64, gd.Ncells())}
	var bar *uiprogress.Bar
	if gd.Ncells() >= barcells {
		uiprogress.Start()
		bar = uiprogress.AddBar(gd.NR).AppendCompleted().PrependElapsed()
	}
	for row := 0; row < gd.NR; row++ {
		for col := 0; col < gd.NC; col++ {
			x, y := gd.CellCentroid(row, col)
			if tr != nil {
				if x, y, err = transformPoint(tr, x, y); err != nil {
					out.A[row*gd.NC+col] = math.NaN() // outside transform domain
					continue
				}
			}
			switch ws.Method {
			case Nearest:
				out.A[row*gd.NC+col] = r.nearest(x, y)
			default:
				out.A[row*gd.NC+col] = r.bilinear(x, y)
			}
		}
		if bar != nil {
			bar.Incr()
		}
	}
	if bar != nil {
		uiprogress.Stop()
	}
	return out, nil
}

func (r *Real) targetDefinition(ws WarpSpec) (*Definition, error) {
	n := 0
	if ws.To != nil {
		n++
	}
	if ws.Proj4 != "" {
		n++
	}
	if ws.Cs > 0. {
		n++
	}
	if ws.Extent != nil {
		n++
	}
	if n != 1 {
		return nil, fmt.Errorf("grid.Warp: %d of reference/CRS/resolution/extent given, need exactly 1: %w", n, ErrWarpSpec)
	}

	src := r.GD
	switch {
	case ws.To != nil:
		gd := *ws.To
		return &gd, nil
	case ws.Cs > 0.:
		return DefinitionFromBounds(src.Bounds(), ws.Cs, src.Proj4)
	case ws.Extent != nil:
		return DefinitionFromBounds(*ws.Extent, src.Cs, src.Proj4)
	default: // CRS change
		if src.Proj4 == "" {
			return nil, fmt.Errorf("grid.Warp: reprojection of an unreferenced grid: %w", ErrNoCRS)
		}
		if sameCRS(src.Proj4, ws.Proj4) {
			gd := *src
			return &gd, nil
		}
		return src.reprojected(ws.Proj4)
	}
}

// reprojected builds a target definition covering the source footprint in a
// new coordinate system, keeping the source column count and deriving the
// cell size from the transformed extent.
func (gd *Definition) reprojected(proj4 string) (*Definition, error) {
	tr, err := newTransform(gd.Proj4, proj4)
	if err != nil {
		return nil, err
	}
	b := gd.Bounds()
	xmin, ymin := math.MaxFloat64, math.MaxFloat64
	xmax, ymax := -math.MaxFloat64, -math.MaxFloat64
	// corner and edge-midpoint samples bound curved edges well enough here
	xs := []float64{b.Xmin, (b.Xmin + b.Xmax) / 2., b.Xmax}
	ys := []float64{b.Ymin, (b.Ymin + b.Ymax) / 2., b.Ymax}
	for _, x := range xs {
		for _, y := range ys {
			tx, ty, err := transformPoint(tr, x, y)
			if err != nil {
				return nil, fmt.Errorf("grid.Warp: footprint transform: %v: %w", err, ErrWarpSpec)
			}
			xmin, ymin = math.Min(xmin, tx), math.Min(ymin, ty)
			xmax, ymax = math.Max(xmax, tx), math.Max(ymax, ty)
		}
	}
	cs := (xmax - xmin) / float64(gd.NC)
	return DefinitionFromBounds(Bounds{xmin, ymin, xmax, ymax}, cs, proj4)
}

func (r *Real) nearest(x, y float64) float64 {
	row, col, ok := r.GD.CellIndex(x, y)
	if !ok {
		return math.NaN()
	}
	return r.Value(row, col)
}

func (r *Real) bilinear(x, y float64) float64 {
	gd := r.GD
	fc := (x-gd.Eorig)/gd.Cs - .5
	fr := (gd.Norig-y)/gd.Cs - .5
	c0, r0 := math.Floor(fc), math.Floor(fr)
	dx, dy := fc-c0, fr-r0

	at := func(row, col int) float64 {
		if row < 0 || row >= gd.NR || col < 0 || col >= gd.NC {
			return math.NaN()
		}
		return r.Value(row, col)
	}

	// zero-weight corners are excluded so edge and exact-centroid hits
	// do not pick up null neighbours
	v, w := 0., 0.
	acc := func(val, wgt float64) bool {
		if wgt == 0. {
			return true
		}
		if math.IsNaN(val) {
			return false
		}
		v += val * wgt
		w += wgt
		return true
	}
	ri, ci := int(r0), int(c0)
	if !acc(at(ri, ci), (1.-dx)*(1.-dy)) ||
		!acc(at(ri, ci+1), dx*(1.-dy)) ||
		!acc(at(ri+1, ci), (1.-dx)*dy) ||
		!acc(at(ri+1, ci+1), dx*dy) {
		return math.NaN()
	}
	if w == 0. {
		return math.NaN()
	}
	return v / w
}

func newTransform(fromP4, toP4 string) (proj.Transformer, error) {
	if fromP4 == "" || toP4 == "" || sameCRS(fromP4, toP4) {
		return nil, nil
	}
	from, err := proj.Parse(fromP4)
	if err != nil {
		return nil, fmt.Errorf("grid: while parsing %q: %v: %w", fromP4, err, ErrWarpSpec)
	}
	to, err := proj.Parse(toP4)
	if err != nil {
		return nil, fmt.Errorf("grid: while parsing %q: %v: %w", toP4, err, ErrWarpSpec)
	}
	tr, err := from.NewTransform(to)
	if err != nil {
		return nil, fmt.Errorf("grid: while creating transform: %v: %w", err, ErrWarpSpec)
	}
	return tr, nil
}

func transformPoint(tr proj.Transformer, x, y float64) (float64, float64, error) {
	g, err := geom.Point{X: x, Y: y}.Transform(tr)
	if err != nil {
		return 0., 0., err
	}
	p := g.(geom.Point)
	return p.X, p.Y, nil
}
