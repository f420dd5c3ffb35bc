package structure

import (
	"fmt"
	"math"

	"github.com/ebalaguer/exoterra/internal/numeric"
	"github.com/ebalaguer/exoterra/internal/planet"
)

const gravConst = 6.67408e-11

// Per-band density-fit degrees for the Poisson integration. The hydrous and
// anhydrous planets use different smoothing; the values are empirical and
// deliberately not unified, since uniform smoothing shifts the solution near
// band boundaries.
const (
	gravityFitCoreHydrous   = 3
	gravityFitCoreDry       = 4
	gravityFitMantleHydrous = 3
	gravityFitMantleDry     = 4
	gravityFitWater         = 3
)

// integrateGravity solves d(g r^2)/dr = 4 pi G rho r^2 band by band from the
// center outward, each band seeded with the previous band's boundary value,
// then recovers g = I / r^2 with g forced to zero at the center sample.
func integrateGravity(p *planet.Profile) error {
	hydrous := p.Layers.Water > 0
	n := p.Layers.Total()
	integral := make([]float64, n)

	bands := []struct {
		band   planet.Band
		degree int
	}{
		{planet.CoreBand, pickDeg(hydrous, gravityFitCoreHydrous, gravityFitCoreDry)},
		{planet.MantleBand, pickDeg(hydrous, gravityFitMantleHydrous, gravityFitMantleDry)},
		{planet.WaterBand, gravityFitWater},
	}

	seed := 0.0
	for _, b := range bands {
		lo, hi := p.Layers.Range(b.band)
		if hi == lo {
			continue
		}
		radii := p.Radius[lo:hi]
		fit, err := numeric.FitPoly(radii, p.Density[lo:hi], b.degree)
		if err != nil {
			return fmt.Errorf("gravity %s fit: %w", b.band, err)
		}
		poisson := func(r float64) float64 {
			return 4.0 * math.Pi * gravConst * fit.At(r) * r * r
		}
		vals := numeric.CumIntegrate(radii, seed, poisson)
		copy(integral[lo:hi], vals)
		seed = vals[len(vals)-1]
	}

	for i := 0; i < n; i++ {
		if p.Radius[i] > 0 {
			p.Gravity[i] = integral[i] / (p.Radius[i] * p.Radius[i])
		} else {
			p.Gravity[i] = 0
		}
	}
	p.Gravity[0] = 0
	return nil
}

func pickDeg(hydrous bool, wet, dry int) int {
	if hydrous {
		return wet
	}
	return dry
}
