package zonal

import (
	"errors"
	"math"
	"testing"

	"github.com/openterrain/geoutil/grid"
)

func testRaster(t *testing.T, vals ...float64) *grid.Real {
	t.Helper()
	gd, err := grid.NewDefinition(0., 2., 1., 2, 3, "")
	if err != nil {
		t.Fatal(err)
	}
	r := grid.NewReal(gd, 0.)
	copy(r.A, vals)
	return r
}

func TestFullMaskMatchesUnmasked(t *testing.T) {
	r := testRaster(t, 1., 2., 3., 4., math.NaN(), 6.)
	m := grid.NewMask(r.GD).Not() // all true
	s, err := Stats(r, m)
	if err != nil {
		t.Fatal(err)
	}
	if s.N != 5 {
		t.Fatalf("N: got %d want 5", s.N)
	}
	if s.Mean != r.Mean() {
		t.Fatalf("full-mask mean %f != unmasked mean %f", s.Mean, r.Mean())
	}
	if s.Min != 1. || s.Max != 6. {
		t.Fatalf("range: got %f..%f want 1..6", s.Min, s.Max)
	}
}

func TestMaskedSubset(t *testing.T) {
	r := testRaster(t, 10., 20., 30., 40., 50., 60.)
	m := grid.NewMask(r.GD)
	m.B[0], m.B[2], m.B[4] = true, true, true
	s, err := Stats(r, m)
	if err != nil {
		t.Fatal(err)
	}
	if s.N != 3 || s.Mean != 30. || s.Median != 30. {
		t.Fatalf("got %+v", s)
	}
}

func TestEmptyMask(t *testing.T) {
	r := testRaster(t, 1., 2., 3., 4., 5., 6.)
	s, err := Stats(r, grid.NewMask(r.GD))
	if err != nil {
		t.Fatal(err)
	}
	if s.N != 0 || !math.IsNaN(s.Mean) {
		t.Fatalf("got %+v", s)
	}
}

func TestShapeMismatch(t *testing.T) {
	r := testRaster(t, 1., 2., 3., 4., 5., 6.)
	gd, _ := grid.NewDefinition(0., 2., 1., 2, 2, "")
	if _, err := Stats(r, grid.NewMask(gd)); !errors.Is(err, grid.ErrShapeMismatch) {
		t.Fatalf("got %v, want ErrShapeMismatch", err)
	}
}
