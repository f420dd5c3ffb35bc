package eos

// ToPa converts bar to pascal.
const ToPa = 1e5

// Region identifies one material region's grid.
type Region int

const (
	UpperMantle Region = iota
	LowerMantle
	Core
	Water
)

func (r Region) String() string {
	switch r {
	case UpperMantle:
		return "upper_mantle"
	case LowerMantle:
		return "lower_mantle"
	case Core:
		return "core"
	case Water:
		return "water"
	}
	return "unknown"
}

// Values are the thermodynamic properties a grid lookup yields.
type Values struct {
	Density float64 // kg/m^3
	Cp      float64 // J/(kg K)
	Alpha   float64 // 1/K
}

// Grid interpolates tabulated thermodynamic data over (pressure, temperature).
// Lookup reports ok=false when the point lies outside the domain of the
// tabulated data; that is an expected condition, not an error.
type Grid interface {
	Lookup(pressureBar, temperatureK float64) (Values, bool)

	// Phase returns the assemblage label nearest to the point, when the
	// table carries phase data.
	Phase(pressureBar, temperatureK float64) (string, bool)

	// Bounds reports the rectangular hull of the tabulated points.
	Bounds() (pMin, pMax, tMin, tMax float64)
}

// LookupBatch queries a grid over many (P, T) pairs at once.
func LookupBatch(g Grid, pressureBar, temperatureK []float64) ([]Values, []bool) {
	vals := make([]Values, len(pressureBar))
	ok := make([]bool, len(pressureBar))
	for i := range pressureBar {
		vals[i], ok[i] = g.Lookup(pressureBar[i], temperatureK[i])
	}
	return vals, ok
}

// GridSet bundles the per-region grids of one run. The water grid may be nil
// when the model carries no hydrosphere.
type GridSet struct {
	UpperMantle Grid
	LowerMantle Grid
	Core        Grid
	Water       Grid
}
