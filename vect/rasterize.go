package vect

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"github.com/openterrain/geoutil/grid"
)

// Rasterize burns the collection onto gd, returning a mask that is true
// where feature coverage intersects the cell. Polygons mark a cell when
// their intersection with the cell square has positive area; points and
// lines mark any cell their envelope touches. The collection must
// already share gd's coordinate system.
func (v *Vector) Rasterize(gd *grid.Definition) (*grid.Mask, error) {
	m := grid.NewMask(gd)
	if len(v.Features) == 0 {
		return m, nil
	}
	if v.Proj4 == "" {
		return nil, fmt.Errorf("vect.Rasterize: undeclared vector CRS: %w", grid.ErrNoCRS)
	}
	if gd.Proj4 == "" || gd.Proj4 != v.Proj4 {
		return nil, fmt.Errorf("vect.Rasterize: %q vs %q, reproject first: %w", v.Proj4, gd.Proj4, grid.ErrCRSMismatch)
	}

	tree := rtree.NewTree(25, 50)
	for _, f := range v.Features {
		tree.Insert(f.Geom)
	}

	for row := 0; row < gd.NR; row++ {
		for col := 0; col < gd.NC; col++ {
			x0 := gd.Eorig + float64(col)*gd.Cs
			y1 := gd.Norig - float64(row)*gd.Cs
			cell := geom.Polygon{{
				{X: x0, Y: y1 - gd.Cs},
				{X: x0 + gd.Cs, Y: y1 - gd.Cs},
				{X: x0 + gd.Cs, Y: y1},
				{X: x0, Y: y1},
			}}
			cb := cell.Bounds()
			for _, it := range tree.SearchIntersect(cb) {
				switch g := it.(type) {
				case geom.Polygonal:
					if isect := g.Intersection(cell); isect != nil && isect.Area() > 0. {
						m.B[row*gd.NC+col] = true
					}
				case geom.Geom:
					if cb.Overlaps(g.Bounds()) {
						m.B[row*gd.NC+col] = true
					}
				}
				if m.B[row*gd.NC+col] {
					break
				}
			}
		}
	}
	return m, nil
}
