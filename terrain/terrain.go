// Package terrain derives surfaces from a DEM: slope, aspect and
// hillshade. Every function is pure; the input raster is never touched.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/openterrain/geoutil/grid"
)

// ErrPlanar flags terrain analysis attempted over geographic coordinates,
// where cell size is angular and gradients are meaningless.
var ErrPlanar = errors.New("terrain: projected (planar) coordinate reference system required")

const d2r = math.Pi / 180.

// Slope returns the steepest-descent gradient in degrees, from the
// Horn 8-neighbour stencil. Border and null-adjacent cells come back null.
func Slope(dem *grid.Real) (*grid.Real, error) {
	if err := planar(dem); err != nil {
		return nil, err
	}
	out := grid.NewReal(dem.GD, math.NaN())
	eachGradient(dem, func(i int, dzdx, dzdy float64) {
		out.A[i] = math.Atan(math.Hypot(dzdx, dzdy)) / d2r
	})
	return out, nil
}

// Aspect returns the downslope direction in degrees clockwise from
// north. Flat cells come back null.
func Aspect(dem *grid.Real) (*grid.Real, error) {
	if err := planar(dem); err != nil {
		return nil, err
	}
	out := grid.NewReal(dem.GD, math.NaN())
	eachGradient(dem, func(i int, dzdx, dzdy float64) {
		if dzdx == 0. && dzdy == 0. {
			return // flat
		}
		out.A[i] = compass(math.Atan2(dzdy, -dzdx) / d2r)
	})
	return out, nil
}

// trigonometric angle (deg, ccw from east) to compass bearing
func compass(a float64) float64 {
	switch {
	case a < 0.:
		return 90. - a
	case a > 90.:
		return 360. - a + 90.
	default:
		return 90. - a
	}
}

// Hillshade returns shaded relief on [0,255] for a sun position given
// by azimuth (degrees clockwise from north) and altitude (degrees above
// the horizon). 315/45 reproduces the customary northwest illumination.
func Hillshade(dem *grid.Real, azimuth, altitude float64) (*grid.Real, error) {
	if err := planar(dem); err != nil {
		return nil, err
	}
	zen := (90. - altitude) * d2r
	azm := math.Mod(360.-azimuth+90., 360.) * d2r
	out := grid.NewReal(dem.GD, math.NaN())
	eachGradient(dem, func(i int, dzdx, dzdy float64) {
		slp := math.Atan(math.Hypot(dzdx, dzdy))
		asp := math.Atan2(dzdy, -dzdx)
		s := math.Cos(zen)*math.Cos(slp) + math.Sin(zen)*math.Sin(slp)*math.Cos(azm-asp)
		out.A[i] = shade(math.Max(s, 0.))
	})
	return out, nil
}

// eachGradient visits every interior cell with a full non-null
// 3x3 neighbourhood and hands over its Horn gradient.
func eachGradient(dem *grid.Real, f func(i int, dzdx, dzdy float64)) {
	gd := dem.GD
	for row := 1; row < gd.NR-1; row++ {
		for col := 1; col < gd.NC-1; col++ {
			var z [3][3]float64
			ok := true
			for dr := -1; dr <= 1 && ok; dr++ {
				for dc := -1; dc <= 1; dc++ {
					v := dem.Value(row+dr, col+dc)
					if math.IsNaN(v) {
						ok = false
						break
					}
					z[dr+1][dc+1] = v
				}
			}
			if !ok {
				continue
			}
			dzdx := ((z[0][2] + 2.*z[1][2] + z[2][2]) - (z[0][0] + 2.*z[1][0] + z[2][0])) / (8. * gd.Cs)
			dzdy := ((z[2][0] + 2.*z[2][1] + z[2][2]) - (z[0][0] + 2.*z[0][1] + z[0][2])) / (8. * gd.Cs)
			f(row*gd.NC+col, dzdx, dzdy)
		}
	}
}

func planar(dem *grid.Real) error {
	if dem.GD.Proj4 == "" {
		return fmt.Errorf("terrain: %w", grid.ErrNoCRS)
	}
	if strings.Contains(dem.GD.Proj4, "+proj=longlat") {
		return ErrPlanar
	}
	return nil
}
