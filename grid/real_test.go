package grid

import (
	"errors"
	"math"
	"testing"
)

func testReal(t *testing.T, nr, nc int, proj4 string, vals ...float64) *Real {
	t.Helper()
	gd, err := NewDefinition(0., float64(nr), 1., nr, nc, proj4)
	if err != nil {
		t.Fatal(err)
	}
	r := NewReal(gd, 0.)
	copy(r.A, vals)
	return r
}

func TestDiffSelfZero(t *testing.T) {
	r := testReal(t, 2, 2, "", 1.5, -2., math.NaN(), 40.)
	d, err := r.Diff(r)
	if err != nil {
		t.Fatal(err)
	}
	for i := range d.A {
		if r.IsNull(i) {
			if !d.IsNull(i) {
				t.Fatalf("cell %d: null should propagate", i)
			}
			continue
		}
		if d.A[i] != 0. {
			t.Fatalf("cell %d: self-difference %f, want 0", i, d.A[i])
		}
	}
}

func TestDiffShapeMismatch(t *testing.T) {
	a := testReal(t, 2, 2, "")
	b := testReal(t, 2, 3, "")
	if _, err := a.Diff(b); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("got %v, want ErrShapeMismatch", err)
	}
}

func TestDiffCRSMismatch(t *testing.T) {
	a := testReal(t, 2, 2, longlat)
	b := testReal(t, 2, 2, "+proj=utm +zone=33 +datum=WGS84 +units=m +no_defs")
	if _, err := a.Diff(b); !errors.Is(err, ErrCRSMismatch) {
		t.Fatalf("got %v, want ErrCRSMismatch", err)
	}
}

func TestAdd(t *testing.T) {
	a := testReal(t, 1, 3, "", 1., 2., 3.)
	b := testReal(t, 1, 3, "", 10., 20., 30.)
	s, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{11., 22., 33.} {
		if s.A[i] != want {
			t.Fatalf("cell %d: got %f want %f", i, s.A[i], want)
		}
	}
}

func TestScaleAbs(t *testing.T) {
	r := testReal(t, 1, 2, "", -3., 4.)
	if got := r.Scale(2.).A[0]; got != -6. {
		t.Fatalf("Scale: got %f want -6", got)
	}
	if got := r.Abs().A[0]; got != 3. {
		t.Fatalf("Abs: got %f want 3", got)
	}
	if r.A[0] != -3. {
		t.Fatal("receiver mutated")
	}
}

func TestMeanMinMax(t *testing.T) {
	r := testReal(t, 2, 2, "", 1., 3., math.NaN(), 8.)
	if m := r.Mean(); m != 4. {
		t.Fatalf("Mean: got %f want 4", m)
	}
	mn, mx := r.MinMax()
	if mn != 1. || mx != 8. {
		t.Fatalf("MinMax: got %f,%f want 1,8", mn, mx)
	}
	if r.Nnull() != 1 {
		t.Fatalf("Nnull: got %d want 1", r.Nnull())
	}
}
