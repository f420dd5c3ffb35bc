package eos

import (
	"fmt"
	"math"
)

// Table is a rectangular-lattice grid with bilinear interpolation. Cells may
// hold NaN where the external tabulation had no stable assemblage; any NaN
// corner makes the enclosing cell undefined, which approximates the convex
// hull of the scattered source data.
type Table struct {
	pAxis []float64 // ascending, bar
	tAxis []float64 // ascending, K
	vals  [][]Values
	phase [][]string // optional, same shape as vals
}

// NewTable builds a table from ascending axes and a vals[pi][ti] lattice.
func NewTable(pAxis, tAxis []float64, vals [][]Values) (*Table, error) {
	if len(pAxis) < 2 || len(tAxis) < 2 {
		return nil, fmt.Errorf("eos: table needs at least 2x2 points, got %dx%d", len(pAxis), len(tAxis))
	}
	if len(vals) != len(pAxis) {
		return nil, fmt.Errorf("eos: %d value rows for %d pressure nodes", len(vals), len(pAxis))
	}
	for i, row := range vals {
		if len(row) != len(tAxis) {
			return nil, fmt.Errorf("eos: row %d has %d values for %d temperature nodes", i, len(row), len(tAxis))
		}
	}
	for i := 1; i < len(pAxis); i++ {
		if pAxis[i] <= pAxis[i-1] {
			return nil, fmt.Errorf("eos: pressure axis not ascending at %d", i)
		}
	}
	for i := 1; i < len(tAxis); i++ {
		if tAxis[i] <= tAxis[i-1] {
			return nil, fmt.Errorf("eos: temperature axis not ascending at %d", i)
		}
	}
	return &Table{pAxis: pAxis, tAxis: tAxis, vals: vals}, nil
}

// SetPhases attaches assemblage labels to the table nodes.
func (t *Table) SetPhases(phase [][]string) error {
	if len(phase) != len(t.pAxis) {
		return fmt.Errorf("eos: %d phase rows for %d pressure nodes", len(phase), len(t.pAxis))
	}
	for i, row := range phase {
		if len(row) != len(t.tAxis) {
			return fmt.Errorf("eos: phase row %d has %d labels for %d temperature nodes", i, len(row), len(t.tAxis))
		}
	}
	t.phase = phase
	return nil
}

func (t *Table) Bounds() (pMin, pMax, tMin, tMax float64) {
	return t.pAxis[0], t.pAxis[len(t.pAxis)-1], t.tAxis[0], t.tAxis[len(t.tAxis)-1]
}

// locate returns the cell index i such that axis[i] <= x <= axis[i+1].
func locate(axis []float64, x float64) (int, bool) {
	if x < axis[0] || x > axis[len(axis)-1] {
		return 0, false
	}
	lo, hi := 0, len(axis)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if axis[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, true
}

func (t *Table) Lookup(pressureBar, temperatureK float64) (Values, bool) {
	pi, okP := locate(t.pAxis, pressureBar)
	ti, okT := locate(t.tAxis, temperatureK)
	if !okP || !okT {
		return Values{}, false
	}

	v00 := t.vals[pi][ti]
	v01 := t.vals[pi][ti+1]
	v10 := t.vals[pi+1][ti]
	v11 := t.vals[pi+1][ti+1]
	for _, v := range []Values{v00, v01, v10, v11} {
		if math.IsNaN(v.Density) || math.IsNaN(v.Cp) || math.IsNaN(v.Alpha) {
			return Values{}, false
		}
	}

	fp := (pressureBar - t.pAxis[pi]) / (t.pAxis[pi+1] - t.pAxis[pi])
	ft := (temperatureK - t.tAxis[ti]) / (t.tAxis[ti+1] - t.tAxis[ti])

	blend := func(a, b, c, d float64) float64 {
		return a*(1-fp)*(1-ft) + b*(1-fp)*ft + c*fp*(1-ft) + d*fp*ft
	}
	return Values{
		Density: blend(v00.Density, v01.Density, v10.Density, v11.Density),
		Cp:      blend(v00.Cp, v01.Cp, v10.Cp, v11.Cp),
		Alpha:   blend(v00.Alpha, v01.Alpha, v10.Alpha, v11.Alpha),
	}, true
}

func (t *Table) Phase(pressureBar, temperatureK float64) (string, bool) {
	if t.phase == nil {
		return "", false
	}
	pi, okP := locate(t.pAxis, pressureBar)
	ti, okT := locate(t.tAxis, temperatureK)
	if !okP || !okT {
		return "", false
	}
	// nearest node wins
	if pressureBar-t.pAxis[pi] > t.pAxis[pi+1]-pressureBar {
		pi++
	}
	if temperatureK-t.tAxis[ti] > t.tAxis[ti+1]-temperatureK {
		ti++
	}
	label := t.phase[pi][ti]
	return label, label != ""
}
