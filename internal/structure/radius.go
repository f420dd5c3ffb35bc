package structure

import (
	"math"

	"github.com/ebalaguer/exoterra/internal/planet"
)

// resolveRadius rebuilds the radius samples from the per-band mass budget and
// the current density profile. Layer masses are fixed per band; each shell's
// thickness comes from dM = 4 pi r^2 rho dr with the density averaged over
// the shell's endpoints. The cumulative mass column is refreshed alongside.
//
// The center sample holds no shell mass, so the core distributes its budget
// over Core-1 shells.
func resolveRadius(p *planet.Profile, comp planet.Composition, totalMass float64) {
	waterMass := totalMass * comp.WaterMassFrac
	coreMass := (totalMass - waterMass) * comp.CoreMassFrac
	mantleMass := totalMass - waterMass - coreMass

	p.Radius[0] = 0
	p.Mass[0] = 0

	dM := coreMass / float64(p.Layers.Core-1)
	for i := 1; i < p.Layers.Core; i++ {
		rho := 0.5 * (p.Density[i-1] + p.Density[i])
		p.Radius[i] = nextShellRadius(p.Radius[i-1], dM, rho)
		p.Mass[i] = p.Mass[i-1] + dM
	}

	lo, hi := p.Layers.Range(planet.MantleBand)
	dM = mantleMass / float64(p.Layers.Mantle)
	for i := lo; i < hi; i++ {
		rho := p.Density[i]
		if i > lo {
			rho = 0.5 * (p.Density[i-1] + p.Density[i])
		}
		p.Radius[i] = nextShellRadius(p.Radius[i-1], dM, rho)
		p.Mass[i] = p.Mass[i-1] + dM
	}

	if p.Layers.Water > 0 {
		lo, hi = p.Layers.Range(planet.WaterBand)
		dM = waterMass / float64(p.Layers.Water)
		for i := lo; i < hi; i++ {
			rho := p.Density[i]
			if i > lo {
				rho = 0.5 * (p.Density[i-1] + p.Density[i])
			}
			p.Radius[i] = nextShellRadius(p.Radius[i-1], dM, rho)
			p.Mass[i] = p.Mass[i-1] + dM
		}
	}
}

// nextShellRadius inverts the shell mass relation for the outer radius:
// r^3 = r0^3 + 3 dM / (4 pi rho).
func nextShellRadius(r0, dM, rho float64) float64 {
	return math.Cbrt(r0*r0*r0 + 3.0*dM/(4.0*math.Pi*rho))
}
