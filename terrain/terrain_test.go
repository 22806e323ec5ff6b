package terrain

import (
	"errors"
	"math"
	"testing"

	"github.com/openterrain/geoutil/grid"
)

const (
	longlat = "+proj=longlat +datum=WGS84 +no_defs"
	webmerc = "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs"
)

// inclined or flat plane z = ax + by + c over a 6x6 unit grid
func plane(t *testing.T, a, b, c float64) *grid.Real {
	t.Helper()
	gd, err := grid.NewDefinition(0., 6., 1., 6, 6, webmerc)
	if err != nil {
		t.Fatal(err)
	}
	r := grid.NewReal(gd, 0.)
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			x, y := gd.CellCentroid(row, col)
			r.A[row*6+col] = a*x + b*y + c
		}
	}
	return r
}

func interior(t *testing.T, r *grid.Real, want float64, tol float64, lbl string) {
	t.Helper()
	for row := 1; row < r.GD.NR-1; row++ {
		for col := 1; col < r.GD.NC-1; col++ {
			if got := r.Value(row, col); math.Abs(got-want) > tol {
				t.Fatalf("%s (%d,%d): got %f want %f", lbl, row, col, got, want)
			}
		}
	}
}

func TestSlopeInclinedPlane(t *testing.T) {
	s, err := Slope(plane(t, 1., 0., 100.))
	if err != nil {
		t.Fatal(err)
	}
	interior(t, s, 45., 1e-9, "slope")
	if !math.IsNaN(s.Value(0, 0)) {
		t.Fatal("border cells should be null")
	}
}

func TestSlopeFlat(t *testing.T) {
	s, err := Slope(plane(t, 0., 0., 42.))
	if err != nil {
		t.Fatal(err)
	}
	interior(t, s, 0., 1e-12, "slope")
}

func TestAspect(t *testing.T) {
	for _, tc := range []struct {
		name    string
		a, b    float64
		bearing float64
	}{
		{"rises east faces west", 1., 0., 270.},
		{"rises north faces south", 0., 1., 180.},
		{"rises west faces east", -1., 0., 90.},
		{"rises south faces north", 0., -1., 0.},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Aspect(plane(t, tc.a, tc.b, 0.))
			if err != nil {
				t.Fatal(err)
			}
			interior(t, a, tc.bearing, 1e-9, "aspect")
		})
	}
}

func TestAspectFlatNull(t *testing.T) {
	a, err := Aspect(plane(t, 0., 0., 7.))
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(a.Value(2, 2)) {
		t.Fatal("flat aspect should be null")
	}
}

func TestHillshadeFlat(t *testing.T) {
	hs, err := Hillshade(plane(t, 0., 0., 300.), 315., 45.)
	if err != nil {
		t.Fatal(err)
	}
	want := 255. * math.Cos(45.*math.Pi/180.)
	interior(t, hs, want, .1, "hillshade")
}

func TestHillshadeRange(t *testing.T) {
	hs, err := Hillshade(plane(t, 3., -2., 0.), 315., 45.)
	if err != nil {
		t.Fatal(err)
	}
	for row := 1; row < 5; row++ {
		for col := 1; col < 5; col++ {
			if v := hs.Value(row, col); v < 0. || v > 255. {
				t.Fatalf("(%d,%d): %f outside [0,255]", row, col, v)
			}
		}
	}
}

func TestNullNeighbourhood(t *testing.T) {
	dem := plane(t, 1., 0., 0.)
	dem.A[2*6+2] = math.NaN()
	s, err := Slope(dem)
	if err != nil {
		t.Fatal(err)
	}
	// every cell touching the hole goes null
	for row := 1; row <= 3; row++ {
		for col := 1; col <= 3; col++ {
			if !math.IsNaN(s.Value(row, col)) {
				t.Fatalf("(%d,%d): expected null near hole", row, col)
			}
		}
	}
	if math.IsNaN(s.Value(4, 4)) {
		t.Fatal("cells clear of the hole should survive")
	}
}

func TestGeographicRejected(t *testing.T) {
	gd, _ := grid.NewDefinition(0., 1., .01, 4, 4, longlat)
	if _, err := Slope(grid.NewReal(gd, 0.)); !errors.Is(err, ErrPlanar) {
		t.Fatalf("got %v, want ErrPlanar", err)
	}
	gd2, _ := grid.NewDefinition(0., 1., 1., 4, 4, "")
	if _, err := Aspect(grid.NewReal(gd2, 0.)); !errors.Is(err, grid.ErrNoCRS) {
		t.Fatalf("got %v, want ErrNoCRS", err)
	}
}
