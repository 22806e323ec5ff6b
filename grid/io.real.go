package grid

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// ReadGDEF imports a grid definition file: one value per line
// OE, ON, ROT, NR, NC, CS, followed by an optional proj4 line.
func ReadGDEF(fp string) (*Definition, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("grid.ReadGDEF %s: %w", fp, ErrIO)
	}
	a, _ := mmio.ReadTextLines(fp)
	if len(a) < 6 {
		return nil, fmt.Errorf("grid.ReadGDEF %s: short file: %w", fp, ErrIO)
	}

	var stErr []string
	errfunc := func(v string, err error) {
		stErr = append(stErr, fmt.Sprintf("  failed to read %s: %v", v, err))
	}
	pf := func(s, lbl string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			errfunc(lbl, err)
		}
		return v
	}
	pi := func(s, lbl string) int {
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			errfunc(lbl, err)
		}
		return int(v)
	}

	oe, on, rot := pf(a[0], "OE"), pf(a[1], "ON"), pf(a[2], "ROT")
	nr, nc := pi(a[3], "NR"), pi(a[4], "NC")
	cls := strings.TrimSpace(a[5])
	if len(cls) > 0 && cls[0] == 'U' { // uniform-grid flag
		cls = cls[1:]
	}
	cs := pf(cls, "CS")
	if len(stErr) > 0 {
		return nil, fmt.Errorf("grid.ReadGDEF %s:\n%s\n%w", fp, strings.Join(stErr, "\n"), ErrIO)
	}
	if rot != 0. {
		return nil, fmt.Errorf("grid.ReadGDEF %s: rotated grids not supported: %w", fp, ErrIO)
	}

	proj4 := ""
	if len(a) > 6 && strings.HasPrefix(strings.TrimSpace(a[6]), "+") {
		proj4 = a[6]
	}
	return NewDefinition(oe, on, cs, nr, nc, proj4)
}

// WriteGDEF exports the grid definition file.
func (gd *Definition) WriteGDEF(fp string) error {
	s := fmt.Sprintf("%f\n%f\n%f\n%d\n%d\nU%f\n", gd.Eorig, gd.Norig, gd.Rot, gd.NR, gd.NC, gd.Cs)
	if gd.Proj4 != "" {
		s += gd.Proj4 + "\n"
	}
	if err := os.WriteFile(fp, []byte(s), 0644); err != nil {
		return fmt.Errorf("grid.WriteGDEF %s: %w", fp, ErrIO)
	}
	return nil
}

// ReadReal imports a flat little-endian float32 grid over gd.
// Samples equal to the NoData sentinel come back null.
func ReadReal(fp string, gd *Definition) (*Real, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("grid.ReadReal %s: %w", fp, ErrIO)
	}
	buf := mmio.OpenBinary(fp)
	f32 := make([]float32, gd.Ncells())
	if err := binary.Read(buf, binary.LittleEndian, f32); err != nil {
		return nil, fmt.Errorf("grid.ReadReal %s: %v: %w", fp, err, ErrIO)
	}
	a := make([]float64, len(f32))
	for i, v := range f32 {
		if v == NoData {
			a[i] = math.NaN()
		} else {
			a[i] = float64(v)
		}
	}
	return &Real{GD: gd, A: a}, nil
}

// WriteReal exports the raster as a flat little-endian float32 grid.
func WriteReal(fp string, r *Real) error {
	f32 := make([]float32, len(r.A))
	for i, v := range r.A {
		if r.IsNull(i) {
			f32[i] = NoData
		} else {
			f32[i] = float32(v)
		}
	}
	if err := mmio.WriteBinary(fp, f32); err != nil {
		return fmt.Errorf("grid.WriteReal %s: %v: %w", fp, err, ErrIO)
	}
	return nil
}
