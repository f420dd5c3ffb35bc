package structure

import (
	"fmt"

	"github.com/ebalaguer/exoterra/internal/eos"
	"github.com/ebalaguer/exoterra/internal/numeric"
	"github.com/ebalaguer/exoterra/internal/planet"
)

// surfacePressurePa anchors the hydrostatic integration: 1 bar at the
// outermost layer.
const surfacePressurePa = 1e5

// Per-band density/gravity fit degrees for the hydrostatic integration.
const (
	pressureFitWater         = 4
	pressureFitMantleHydrous = 3
	pressureFitMantleDry     = 4
	pressureFitCoreHydrous   = 5
	pressureFitCoreDry       = 4
)

// integratePressure works in depth coordinates and integrates
// dP/d(depth) = rho * g from the surface inward, band by band
// (water, mantle, core), each band starting from the previous band's bottom
// pressure. The result is stored in bar, center-outward.
func integratePressure(p *planet.Profile) error {
	hydrous := p.Layers.Water > 0
	n := p.Layers.Total()
	surface := p.TotalRadius()

	depth := make([]float64, n)
	for i := range depth {
		depth[i] = surface - p.Radius[i]
	}

	bands := []struct {
		band   planet.Band
		degree int
	}{
		{planet.WaterBand, pressureFitWater},
		{planet.MantleBand, pickDeg(hydrous, pressureFitMantleHydrous, pressureFitMantleDry)},
		{planet.CoreBand, pickDeg(hydrous, pressureFitCoreHydrous, pressureFitCoreDry)},
	}

	pascal := make([]float64, n)
	seed := surfacePressurePa
	for _, b := range bands {
		lo, hi := p.Layers.Range(b.band)
		if hi == lo {
			continue
		}
		// reverse to increasing depth: band top first
		depths := numeric.Reverse(depth[lo:hi])
		rhoFit, err := numeric.FitPoly(depths, numeric.Reverse(p.Density[lo:hi]), b.degree)
		if err != nil {
			return fmt.Errorf("pressure %s density fit: %w", b.band, err)
		}
		gFit, err := numeric.FitPoly(depths, numeric.Reverse(p.Gravity[lo:hi]), b.degree)
		if err != nil {
			return fmt.Errorf("pressure %s gravity fit: %w", b.band, err)
		}
		hydro := func(d float64) float64 {
			return rhoFit.At(d) * gFit.At(d)
		}
		vals := numeric.CumIntegrate(depths, seed, hydro)
		for k, v := range vals {
			pascal[hi-1-k] = v
		}
		seed = vals[len(vals)-1]
	}

	for i := 0; i < n; i++ {
		p.Pressure[i] = pascal[i] / eos.ToPa
	}
	return nil
}
