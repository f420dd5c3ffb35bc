package structure

import "github.com/ebalaguer/exoterra/internal/eos"

// cascade is the shared "primary grid, secondary grid, analytic fallback,
// else fatal" resolution strategy. Density, specific heat and expansivity
// all resolve through it; only the parameterization differs.
type cascade struct {
	property  string
	band      string
	primary   eos.Grid
	secondary eos.Grid
	// fallback is the closed-form EOS for points no grid covers; nil when
	// the region has none. It receives bar and may reject the point.
	fallback func(pressureBar, temperatureK float64) (float64, error)
	pick     func(eos.Values) float64
}

func (c cascade) resolve(layer int, pressureBar, temperatureK float64) (float64, error) {
	if c.primary != nil {
		if v, ok := c.primary.Lookup(pressureBar, temperatureK); ok {
			return c.pick(v), nil
		}
	}
	if c.secondary != nil {
		if v, ok := c.secondary.Lookup(pressureBar, temperatureK); ok {
			return c.pick(v), nil
		}
	}
	if c.fallback != nil {
		if v, err := c.fallback(pressureBar, temperatureK); err == nil {
			return v, nil
		}
	}
	return 0, &DomainError{
		Property:     c.property,
		Band:         c.band,
		Layer:        layer,
		PressureBar:  pressureBar,
		TemperatureK: temperatureK,
	}
}

func pickDensity(v eos.Values) float64 { return v.Density }
func pickCp(v eos.Values) float64      { return v.Cp }
func pickAlpha(v eos.Values) float64   { return v.Alpha }
