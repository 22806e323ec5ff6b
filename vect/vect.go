// Package vect wraps glacier-outline (and other) vector datasets:
// shapefile import, coordinate transformation and rasterization onto
// a grid definition.
package vect

import (
	"encoding/gob"
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"

	"github.com/openterrain/geoutil/grid"
)

// Feature is one geometry with its attribute values.
type Feature struct {
	Geom  geom.Geom
	Attrs map[string]string
}

// Vector is an ordered feature collection sharing one coordinate
// reference system. Reprojection returns a new instance; geometries
// are never mutated in place.
type Vector struct {
	Features []Feature
	Proj4    string // empty until declared or reprojected

	sr *proj.SR
}

// DeclareCRS records the collection's coordinate system as a proj4
// string, e.g. when the source file carried none.
func (v *Vector) DeclareCRS(proj4 string) error {
	sr, err := proj.Parse(proj4)
	if err != nil {
		return fmt.Errorf("vect.DeclareCRS %q: %v: %w", proj4, err, grid.ErrNoCRS)
	}
	v.sr, v.Proj4 = sr, strings.Join(strings.Fields(proj4), " ")
	return nil
}

// Reproject returns a new collection with every geometry transformed
// into the given coordinate system.
func (v *Vector) Reproject(proj4 string) (*Vector, error) {
	if v.sr == nil {
		return nil, fmt.Errorf("vect.Reproject: source: %w", grid.ErrNoCRS)
	}
	dst, err := proj.Parse(proj4)
	if err != nil {
		return nil, fmt.Errorf("vect.Reproject: while parsing %q: %v: %w", proj4, err, grid.ErrNoCRS)
	}
	tr, err := v.sr.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("vect.Reproject: while creating transform: %v: %w", err, grid.ErrNoCRS)
	}
	out := &Vector{Features: make([]Feature, len(v.Features)), Proj4: strings.Join(strings.Fields(proj4), " "), sr: dst}
	for i, f := range v.Features {
		g, err := f.Geom.Transform(tr)
		if err != nil {
			return nil, fmt.Errorf("vect.Reproject: feature %d: %v: %w", i, err, grid.ErrNoCRS)
		}
		out.Features[i] = Feature{Geom: g, Attrs: f.Attrs}
	}
	return out, nil
}

func init() {
	gob.Register(geom.Point{})
	gob.Register(geom.MultiPoint{})
	gob.Register(geom.LineString{})
	gob.Register(geom.MultiLineString{})
	gob.Register(geom.Polygon{})
	gob.Register(geom.MultiPolygon{})
}

type vectorGob struct {
	Features []Feature
	Proj4    string
}

// SaveGob Vector to gob
func (v *Vector) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Vector.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(vectorGob{v.Features, v.Proj4}); err != nil {
		return fmt.Errorf(" Vector.SaveGob %v", err)
	}
	return nil
}

// LoadGobVector loads
func LoadGobVector(fp string) (*Vector, error) {
	var vg vectorGob
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&vg); err != nil {
		return nil, err
	}
	v := &Vector{Features: vg.Features}
	if vg.Proj4 != "" {
		if err := v.DeclareCRS(vg.Proj4); err != nil {
			return nil, err
		}
	}
	return v, nil
}
