package planet

import (
	"fmt"
	"math"
)

// Earth reference values used to convert run targets to SI.
const (
	EarthMass   = 5.972e24 // kg
	EarthRadius = 6.371e6  // m
)

// Band identifies one of the three contiguous layer bands of a profile.
type Band int

const (
	CoreBand Band = iota
	MantleBand
	WaterBand
)

func (b Band) String() string {
	switch b {
	case CoreBand:
		return "core"
	case MantleBand:
		return "mantle"
	case WaterBand:
		return "water"
	}
	return "unknown"
}

// Layers is the immutable layer-count triple for a run. Water may be zero;
// core and mantle may not.
type Layers struct {
	Mantle int `yaml:"mantle"`
	Core   int `yaml:"core"`
	Water  int `yaml:"water"`
}

func (l Layers) Total() int { return l.Mantle + l.Core + l.Water }

func (l Layers) Validate() error {
	if l.Core <= 0 {
		return fmt.Errorf("planet: core layer count must be positive, got %d", l.Core)
	}
	if l.Mantle <= 0 {
		return fmt.Errorf("planet: mantle layer count must be positive, got %d", l.Mantle)
	}
	if l.Water < 0 {
		return fmt.Errorf("planet: water layer count must be non-negative, got %d", l.Water)
	}
	return nil
}

// Range returns the half-open layer index range [lo, hi) of a band.
func (l Layers) Range(b Band) (lo, hi int) {
	switch b {
	case CoreBand:
		return 0, l.Core
	case MantleBand:
		return l.Core, l.Core + l.Mantle
	case WaterBand:
		return l.Core + l.Mantle, l.Total()
	}
	return 0, 0
}

// Profile holds the radial structure of a planet as parallel slices ordered
// center-outward. Pressure is in bar; all other fields are SI.
type Profile struct {
	Layers Layers

	Radius      []float64 // m
	Density     []float64 // kg/m^3
	Pressure    []float64 // bar
	Temperature []float64 // K
	Gravity     []float64 // m/s^2
	Mass        []float64 // cumulative, kg
	Alpha       []float64 // 1/K
	Cp          []float64 // J/(kg K)

	// Phases carries the assemblage label per layer once resolved; it is
	// empty until the solver labels a converged profile.
	Phases []string
}

// NewProfile allocates a zeroed profile for the given layer counts.
func NewProfile(l Layers) *Profile {
	n := l.Total()
	return &Profile{
		Layers:      l,
		Radius:      make([]float64, n),
		Density:     make([]float64, n),
		Pressure:    make([]float64, n),
		Temperature: make([]float64, n),
		Gravity:     make([]float64, n),
		Mass:        make([]float64, n),
		Alpha:       make([]float64, n),
		Cp:          make([]float64, n),
	}
}

func (p *Profile) Clone() *Profile {
	c := NewProfile(p.Layers)
	copy(c.Radius, p.Radius)
	copy(c.Density, p.Density)
	copy(c.Pressure, p.Pressure)
	copy(c.Temperature, p.Temperature)
	copy(c.Gravity, p.Gravity)
	copy(c.Mass, p.Mass)
	copy(c.Alpha, p.Alpha)
	copy(c.Cp, p.Cp)
	if p.Phases != nil {
		c.Phases = make([]string, len(p.Phases))
		copy(c.Phases, p.Phases)
	}
	return c
}

// Check verifies the structural invariants: equal slice lengths matching the
// layer counts and non-decreasing radii.
func (p *Profile) Check() error {
	n := p.Layers.Total()
	for name, s := range map[string][]float64{
		"radius": p.Radius, "density": p.Density, "pressure": p.Pressure,
		"temperature": p.Temperature, "gravity": p.Gravity, "mass": p.Mass,
		"alpha": p.Alpha, "cp": p.Cp,
	} {
		if len(s) != n {
			return fmt.Errorf("planet: %s has %d layers, want %d", name, len(s), n)
		}
	}
	for i := 1; i < n; i++ {
		if p.Radius[i] < p.Radius[i-1] {
			return fmt.Errorf("planet: radius decreases at layer %d (%g < %g)",
				i, p.Radius[i], p.Radius[i-1])
		}
	}
	return nil
}

// IsValid reports whether every profile value is finite.
func (p *Profile) IsValid() bool {
	for _, s := range [][]float64{p.Radius, p.Density, p.Pressure, p.Temperature, p.Gravity, p.Mass} {
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// TotalRadius is the outer radius of the outermost layer.
func (p *Profile) TotalRadius() float64 {
	if len(p.Radius) == 0 {
		return 0
	}
	return p.Radius[len(p.Radius)-1]
}

// TotalMass is the cumulative mass at the outermost layer.
func (p *Profile) TotalMass() float64 {
	if len(p.Mass) == 0 {
		return 0
	}
	return p.Mass[len(p.Mass)-1]
}

// IntegratedMass evaluates the shell-mass quadrature sum of
// 4*pi*r^2*rho(r)*dr over the discrete profile by the trapezoid rule.
func (p *Profile) IntegratedMass() float64 {
	total := 0.0
	if len(p.Radius) > 0 && p.Radius[0] > 0 {
		// innermost shell extends down to the center
		total += (4.0 * math.Pi / 3.0) * p.Density[0] * math.Pow(p.Radius[0], 3)
	}
	for i := 1; i < len(p.Radius); i++ {
		rho := 0.5 * (p.Density[i] + p.Density[i-1])
		total += (4.0 * math.Pi / 3.0) * rho *
			(math.Pow(p.Radius[i], 3) - math.Pow(p.Radius[i-1], 3))
	}
	return total
}

// CoreMantleBoundary returns the radius and pressure at the outermost core
// layer.
func (p *Profile) CoreMantleBoundary() (radius, pressureBar float64) {
	_, hi := p.Layers.Range(CoreBand)
	if hi == 0 {
		return 0, 0
	}
	return p.Radius[hi-1], p.Pressure[hi-1]
}

// SurfaceGravity is the gravity at the outermost layer.
func (p *Profile) SurfaceGravity() float64 {
	if len(p.Gravity) == 0 {
		return 0
	}
	return p.Gravity[len(p.Gravity)-1]
}

// BulkDensity is the mean density implied by total mass and radius.
func (p *Profile) BulkDensity() float64 {
	r := p.TotalRadius()
	if r == 0 {
		return 0
	}
	return p.TotalMass() / (4.0 * math.Pi / 3.0 * r * r * r)
}
