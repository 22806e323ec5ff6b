package vect

import (
	"fmt"

	"github.com/ctessum/geom/encoding/shp"
	"github.com/maseology/mmio"

	"github.com/openterrain/geoutil/grid"
)

// ReadSHP imports a shapefile, keeping the named attribute columns.
// The spatial reference comes from the .prj alongside; the proj4
// form of it must be declared separately (DeclareCRS) before any
// string-keyed CRS comparison.
func ReadSHP(fp string, fields ...string) (*Vector, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("vect.ReadSHP %s: %w", fp, grid.ErrIO)
	}
	dec, err := shp.NewDecoder(fp)
	if err != nil {
		return nil, fmt.Errorf("vect.ReadSHP %s: %v: %w", fp, err, grid.ErrIO)
	}
	defer dec.Close()

	v := &Vector{}
	if sr, err := dec.SR(); err == nil {
		v.sr = sr
	}
	for {
		g, attrs, more := dec.DecodeRowFields(fields...)
		if !more {
			break
		}
		f := Feature{Geom: g, Attrs: make(map[string]string, len(fields))}
		for _, k := range fields {
			s, ok := attrs[k]
			if !ok {
				return nil, fmt.Errorf("vect.ReadSHP %s: missing attribute column %s: %w", fp, k, grid.ErrIO)
			}
			f.Attrs[k] = s
		}
		v.Features = append(v.Features, f)
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("vect.ReadSHP %s: %v: %w", fp, err, grid.ErrIO)
	}
	return v, nil
}
