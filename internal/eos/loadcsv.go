package eos

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// LoadTableCSV reads an externally tabulated grid from a CSV file with the
// columns pressure_bar, temperature_k, density, cp, alpha and an optional
// trailing phase column. Rows must cover a complete rectangular lattice;
// cells outside the source data's stable region may carry "nan".
func LoadTableCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("eos: reading %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("eos: %s holds no data rows", path)
	}

	type cell struct {
		vals  Values
		phase string
	}
	cells := make(map[[2]float64]cell)
	pSet := make(map[float64]struct{})
	tSet := make(map[float64]struct{})
	hasPhase := false

	for i, rec := range records[1:] {
		if len(rec) < 5 {
			return nil, fmt.Errorf("eos: %s row %d has %d columns, want at least 5", path, i+2, len(rec))
		}
		nums := make([]float64, 5)
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("eos: %s row %d column %d: %w", path, i+2, j+1, err)
			}
			nums[j] = v
		}
		c := cell{vals: Values{Density: nums[2], Cp: nums[3], Alpha: nums[4]}}
		if len(rec) > 5 {
			c.phase = rec[5]
			hasPhase = true
		}
		cells[[2]float64{nums[0], nums[1]}] = c
		pSet[nums[0]] = struct{}{}
		tSet[nums[1]] = struct{}{}
	}

	pAxis := sortedKeys(pSet)
	tAxis := sortedKeys(tSet)
	if len(pAxis)*len(tAxis) != len(cells) {
		return nil, fmt.Errorf("eos: %s is not a complete %dx%d lattice (%d rows)",
			path, len(pAxis), len(tAxis), len(cells))
	}

	vals := make([][]Values, len(pAxis))
	phases := make([][]string, len(pAxis))
	for i, p := range pAxis {
		vals[i] = make([]Values, len(tAxis))
		phases[i] = make([]string, len(tAxis))
		for j, t := range tAxis {
			c, ok := cells[[2]float64{p, t}]
			if !ok {
				return nil, fmt.Errorf("eos: %s missing lattice point (%g, %g)", path, p, t)
			}
			vals[i][j] = c.vals
			phases[i][j] = c.phase
		}
	}

	table, err := NewTable(pAxis, tAxis, vals)
	if err != nil {
		return nil, err
	}
	if hasPhase {
		if err := table.SetPhases(phases); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// LoadGridDir loads a grid set from a directory holding um.csv, lm.csv,
// core.csv and optionally water.csv.
func LoadGridDir(dir string) (*GridSet, error) {
	um, err := LoadTableCSV(filepath.Join(dir, "um.csv"))
	if err != nil {
		return nil, err
	}
	lm, err := LoadTableCSV(filepath.Join(dir, "lm.csv"))
	if err != nil {
		return nil, err
	}
	core, err := LoadTableCSV(filepath.Join(dir, "core.csv"))
	if err != nil {
		return nil, err
	}
	gs := &GridSet{UpperMantle: um, LowerMantle: lm, Core: core}

	waterPath := filepath.Join(dir, "water.csv")
	if _, err := os.Stat(waterPath); err == nil {
		water, err := LoadTableCSV(waterPath)
		if err != nil {
			return nil, err
		}
		gs.Water = water
	}
	return gs, nil
}

func sortedKeys(set map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(set))
	for k := range set {
		if !math.IsNaN(k) {
			out = append(out, k)
		}
	}
	sort.Float64s(out)
	return out
}
