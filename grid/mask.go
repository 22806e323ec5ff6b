package grid

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Mask is a boolean raster, true where a condition (typically vector
// coverage) holds.
type Mask struct {
	GD *Definition
	B  []bool
}

// NewMask allocates an all-false mask over gd.
func NewMask(gd *Definition) *Mask {
	return &Mask{GD: gd, B: make([]bool, gd.Ncells())}
}

// Count returns the number of true cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.B {
		if b {
			n++
		}
	}
	return n
}

// All reports whether every cell is true.
func (m *Mask) All() bool { return m.Count() == len(m.B) }

// None reports whether no cell is true.
func (m *Mask) None() bool { return m.Count() == 0 }

// Not returns the cellwise complement.
func (m *Mask) Not() *Mask {
	o := NewMask(m.GD)
	for i, b := range m.B {
		o.B[i] = !b
	}
	return o
}

// SaveGob Mask to gob
func (m *Mask) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Mask.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf(" Mask.SaveGob %v", err)
	}
	return nil
}

// LoadGobMask loads
func LoadGobMask(fp string) (*Mask, error) {
	var m Mask
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
