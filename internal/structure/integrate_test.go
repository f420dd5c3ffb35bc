package structure

import (
	"math"
	"testing"

	"github.com/ebalaguer/exoterra/internal/planet"
)

// uniformProfile builds a constant-density dry planet with evenly spaced
// radii, dense enough that the band fits reproduce the constant exactly.
func uniformProfile(rho, radius float64, core, mantle int) *planet.Profile {
	p := planet.NewProfile(planet.Layers{Core: core, Mantle: mantle})
	n := p.Layers.Total()
	for i := 0; i < n; i++ {
		p.Radius[i] = radius * float64(i) / float64(n-1)
		p.Density[i] = rho
	}
	return p
}

func TestIntegrateGravity_UniformSphere(t *testing.T) {
	const rho = 5500.0
	const R = 6.371e6
	// minimal core band keeps the skipped inter-band shell negligible
	p := uniformProfile(rho, R, 2, 98)

	if err := integrateGravity(p); err != nil {
		t.Fatalf("gravity: %v", err)
	}

	if p.Gravity[0] != 0 {
		t.Errorf("central gravity %g, want 0", p.Gravity[0])
	}
	// inside a uniform sphere g = 4/3 pi G rho r
	for _, i := range []int{10, 50, 99} {
		r := p.Radius[i]
		want := 4.0 / 3.0 * math.Pi * gravConst * rho * r
		if math.Abs(p.Gravity[i]-want)/want > 1e-3 {
			t.Errorf("g(%g) = %g, want %g", r, p.Gravity[i], want)
		}
	}
}

func TestIntegrateGravity_MonotonicOutward(t *testing.T) {
	p := uniformProfile(5500, 6.371e6, 30, 50)
	if err := integrateGravity(p); err != nil {
		t.Fatalf("gravity: %v", err)
	}
	// within a band g grows with r; the band's first sample carries the
	// seed and may dip slightly
	for _, b := range []planet.Band{planet.CoreBand, planet.MantleBand} {
		lo, hi := p.Layers.Range(b)
		for i := lo + 2; i < hi; i++ {
			if p.Gravity[i] <= p.Gravity[i-1] {
				t.Fatalf("uniform-sphere gravity not increasing at layer %d", i)
			}
		}
	}
}

func TestIntegratePressure_SurfaceAnchor(t *testing.T) {
	p := uniformProfile(5500, 6.371e6, 2, 98)
	if err := integrateGravity(p); err != nil {
		t.Fatalf("gravity: %v", err)
	}
	if err := integratePressure(p); err != nil {
		t.Fatalf("pressure: %v", err)
	}

	n := p.Layers.Total()
	if math.Abs(p.Pressure[n-1]-1.0) > 1e-9 {
		t.Errorf("surface pressure %g bar, want 1", p.Pressure[n-1])
	}
	for i := 1; i < n; i++ {
		if p.Pressure[i] > p.Pressure[i-1] {
			t.Errorf("pressure increases outward at layer %d", i)
		}
	}
}

func TestIntegratePressure_UniformSphereCenter(t *testing.T) {
	const rho = 5500.0
	const R = 6.371e6
	p := uniformProfile(rho, R, 2, 138)
	if err := integrateGravity(p); err != nil {
		t.Fatalf("gravity: %v", err)
	}
	if err := integratePressure(p); err != nil {
		t.Fatalf("pressure: %v", err)
	}

	// analytic central pressure of a uniform sphere
	wantPa := 2.0 / 3.0 * math.Pi * gravConst * rho * rho * R * R
	gotPa := p.Pressure[0] * 1e5
	if math.Abs(gotPa-wantPa)/wantPa > 5e-3 {
		t.Errorf("central pressure %g Pa, want %g", gotPa, wantPa)
	}
}

func TestResolveRadius_MassBudget(t *testing.T) {
	comp := planet.Composition{CoreFe: 100, CoreMassFrac: 0.33}
	p := planet.NewProfile(planet.Layers{Core: 50, Mantle: 80})
	lo, hi := p.Layers.Range(planet.CoreBand)
	for i := lo; i < hi; i++ {
		p.Density[i] = 11000
	}
	lo, hi = p.Layers.Range(planet.MantleBand)
	for i := lo; i < hi; i++ {
		p.Density[i] = 4500
	}

	total := planet.EarthMass
	resolveRadius(p, comp, total)

	if p.Radius[0] != 0 {
		t.Errorf("center radius %g, want 0", p.Radius[0])
	}
	if math.Abs(p.TotalMass()-total)/total > 1e-12 {
		t.Errorf("cumulative mass %g, want %g", p.TotalMass(), total)
	}
	_, cHi := p.Layers.Range(planet.CoreBand)
	coreMass := p.Mass[cHi-1]
	wantCore := total * comp.CoreMassFrac
	if math.Abs(coreMass-wantCore)/wantCore > 1e-12 {
		t.Errorf("core mass %g, want %g", coreMass, wantCore)
	}
	for i := 1; i < p.Layers.Total(); i++ {
		if p.Radius[i] <= p.Radius[i-1] {
			t.Fatalf("radius not increasing at layer %d", i)
		}
	}
}

func TestResolveRadius_WaterBand(t *testing.T) {
	comp := planet.Composition{CoreFe: 100, CoreMassFrac: 0.33, WaterMassFrac: 0.1}
	p := planet.NewProfile(planet.Layers{Core: 30, Mantle: 50, Water: 20})
	for i := range p.Density {
		p.Density[i] = 6000
	}
	lo, hi := p.Layers.Range(planet.WaterBand)
	for i := lo; i < hi; i++ {
		p.Density[i] = 1200
	}

	total := 2.0 * planet.EarthMass
	resolveRadius(p, comp, total)

	if math.Abs(p.TotalMass()-total)/total > 1e-12 {
		t.Errorf("cumulative mass %g, want %g", p.TotalMass(), total)
	}
	// water band carries its mass fraction of the whole planet
	_, mHi := p.Layers.Range(planet.MantleBand)
	waterMass := p.TotalMass() - p.Mass[mHi-1]
	want := total * comp.WaterMassFrac
	if math.Abs(waterMass-want)/want > 1e-12 {
		t.Errorf("water mass %g, want %g", waterMass, want)
	}
}

func TestResolveRadius_ConsistentWithQuadrature(t *testing.T) {
	// the shell construction and the trapezoid mass integral must agree on
	// a smooth density profile
	comp := planet.Composition{CoreFe: 100, CoreMassFrac: 0.33}
	p := planet.NewProfile(planet.Layers{Core: 300, Mantle: 500})
	for i := range p.Density {
		p.Density[i] = 10000 - 8.0*float64(i)
	}

	total := planet.EarthMass
	resolveRadius(p, comp, total)

	got := p.IntegratedMass()
	if math.Abs(got-total)/total > 2e-2 {
		t.Errorf("quadrature mass %g disagrees with budget %g", got, total)
	}
}
