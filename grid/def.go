package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"
)

// Definition describes a regular, axis-aligned grid: an upper-left origin,
// a uniform cell size, NR rows by NC columns, and an optional proj4
// coordinate reference system. Rotated grids are not supported.
type Definition struct {
	Eorig, Norig float64 // upper-left cell corner
	Cs           float64 // uniform (square) cell size
	Rot          float64 // grid rotation, must be zero
	NR, NC       int
	Proj4        string
}

// Bounds is an axis-aligned extent in grid coordinates.
type Bounds struct{ Xmin, Ymin, Xmax, Ymax float64 }

// NewDefinition builds a grid definition from its upper-left origin,
// cell size and shape.
func NewDefinition(eorig, norig, cs float64, nr, nc int, proj4 string) (*Definition, error) {
	if cs <= 0. {
		return nil, fmt.Errorf("grid.NewDefinition: cell size %f: %w", cs, ErrWarpSpec)
	}
	if nr <= 0 || nc <= 0 {
		return nil, fmt.Errorf("grid.NewDefinition: shape %dx%d: %w", nr, nc, ErrWarpSpec)
	}
	return &Definition{Eorig: eorig, Norig: norig, Cs: cs, NR: nr, NC: nc, Proj4: normProj4(proj4)}, nil
}

// DefinitionFromBounds derives the grid shape from an extent and cell size,
// snapping the extent outward so whole cells cover it. The origin, shape,
// resolution and bounds of a definition are mutually dependent; any three
// fix the fourth.
func DefinitionFromBounds(b Bounds, cs float64, proj4 string) (*Definition, error) {
	if b.Xmax <= b.Xmin || b.Ymax <= b.Ymin {
		return nil, fmt.Errorf("grid.DefinitionFromBounds: empty extent: %w", ErrWarpSpec)
	}
	nc := int(math.Ceil((b.Xmax - b.Xmin) / cs))
	nr := int(math.Ceil((b.Ymax - b.Ymin) / cs))
	return NewDefinition(b.Xmin, b.Ymin+float64(nr)*cs, cs, nr, nc, proj4)
}

// Ncells number of cells that make up the grid
func (gd *Definition) Ncells() int { return gd.NR * gd.NC }

// Bounds returns the grid extent.
func (gd *Definition) Bounds() Bounds {
	return Bounds{
		Xmin: gd.Eorig,
		Ymin: gd.Norig - float64(gd.NR)*gd.Cs,
		Xmax: gd.Eorig + float64(gd.NC)*gd.Cs,
		Ymax: gd.Norig,
	}
}

// CellCentroid returns the coordinate at the centre of cell (row, col).
func (gd *Definition) CellCentroid(row, col int) (x, y float64) {
	x = gd.Eorig + (float64(col)+.5)*gd.Cs
	y = gd.Norig - (float64(row)+.5)*gd.Cs
	return
}

// CellIndex returns the cell containing coordinate (x, y),
// ok=false when outside the grid.
func (gd *Definition) CellIndex(x, y float64) (row, col int, ok bool) {
	col = int(math.Floor((x - gd.Eorig) / gd.Cs))
	row = int(math.Floor((gd.Norig - y) / gd.Cs))
	ok = row >= 0 && row < gd.NR && col >= 0 && col < gd.NC
	return
}

// SameShape reports whether two definitions have identical row-column shape.
func (gd *Definition) SameShape(o *Definition) bool {
	return gd.NR == o.NR && gd.NC == o.NC
}

// Same reports whether two definitions describe the same grid: shape,
// placement, resolution and coordinate reference system.
func (gd *Definition) Same(o *Definition) bool {
	const tol = 1e-9
	if !gd.SameShape(o) || !sameCRS(gd.Proj4, o.Proj4) {
		return false
	}
	return math.Abs(gd.Eorig-o.Eorig) < tol*gd.Cs &&
		math.Abs(gd.Norig-o.Norig) < tol*gd.Cs &&
		math.Abs(gd.Cs-o.Cs) < tol*gd.Cs
}

// CellLatLon returns the geographic coordinate of a cell centre.
// Geographic grids pass through; UTM grids are converted with the
// zone parsed from the proj4 string.
func (gd *Definition) CellLatLon(row, col int) (lat, lon float64, err error) {
	x, y := gd.CellCentroid(row, col)
	switch {
	case gd.Proj4 == "":
		return 0., 0., fmt.Errorf("grid.CellLatLon: %w", ErrNoCRS)
	case strings.Contains(gd.Proj4, "+proj=longlat"):
		return y, x, nil
	case strings.Contains(gd.Proj4, "+proj=utm"):
		zone, south, zerr := utmZone(gd.Proj4)
		if zerr != nil {
			return 0., 0., zerr
		}
		return UTM.ToLatLon(x, y, zone, "", !south)
	default:
		return 0., 0., fmt.Errorf("grid.CellLatLon: cannot invert %q: %w", gd.Proj4, ErrNoCRS)
	}
}

func utmZone(proj4 string) (zone int, south bool, err error) {
	for _, f := range strings.Fields(proj4) {
		if strings.HasPrefix(f, "+zone=") {
			zone, err = strconv.Atoi(f[6:])
			if err != nil {
				return 0, false, fmt.Errorf("grid.utmZone: %q: %w", f, ErrNoCRS)
			}
		}
		if f == "+south" {
			south = true
		}
	}
	if zone == 0 {
		return 0, false, fmt.Errorf("grid.utmZone: no +zone in %q: %w", proj4, ErrNoCRS)
	}
	return zone, south, nil
}

func normProj4(p string) string { return strings.Join(strings.Fields(p), " ") }

func sameCRS(a, b string) bool { return normProj4(a) == normProj4(b) }
