package grid

import (
	"path/filepath"
	"testing"
)

func TestMaskCountNot(t *testing.T) {
	gd, _ := NewDefinition(0., 2., 1., 2, 2, "")
	m := NewMask(gd)
	m.B[0], m.B[3] = true, true
	if m.Count() != 2 {
		t.Fatalf("Count: got %d want 2", m.Count())
	}
	n := m.Not()
	if n.Count() != 2 || n.B[0] || !n.B[1] {
		t.Fatalf("Not: got %+v", n.B)
	}
	if m.All() || m.None() {
		t.Fatal("partial mask misreported")
	}
	if !NewMask(gd).None() || !NewMask(gd).Not().All() {
		t.Fatal("fresh/complemented mask misreported")
	}
}

func TestMaskGobRoundTrip(t *testing.T) {
	gd, _ := NewDefinition(0., 3., 1., 3, 3, longlat)
	m := NewMask(gd)
	m.B[4] = true
	fp := filepath.Join(t.TempDir(), "mask.gob")
	if err := m.SaveGob(fp); err != nil {
		t.Fatal(err)
	}
	m2, err := LoadGobMask(fp)
	if err != nil {
		t.Fatal(err)
	}
	if !m.GD.Same(m2.GD) || m2.Count() != 1 || !m2.B[4] {
		t.Fatalf("round trip changed mask: %+v", m2)
	}
}
