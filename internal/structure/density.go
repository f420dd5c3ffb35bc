package structure

import (
	"github.com/ebalaguer/exoterra/internal/eos"
	"github.com/ebalaguer/exoterra/internal/planet"
)

// MantleSplitBar is the pressure that separates the upper- and lower-mantle
// grids (125 GPa).
const MantleSplitBar = 1.25e6

// resolveDensity fills the density profile from the EOS grids, falling back
// to the analytic equations of state where the grids have no coverage, then
// repairs interpolation noise so density never increases outward within the
// mantle and water bands.
func resolveDensity(p *planet.Profile, grids *eos.GridSet, comp planet.Composition, iron *eos.LiquidIron, lookback int) error {
	coreScale := comp.CoreMolarMass() / planet.MolarMassFe

	coreCascade := cascade{
		property: "density",
		band:     "core",
		primary:  grids.Core,
		fallback: func(pBar, tK float64) (float64, error) {
			return iron.Density(pBar*eos.ToPa, tK)
		},
		pick: pickDensity,
	}
	lo, hi := p.Layers.Range(planet.CoreBand)
	for i := lo; i < hi; i++ {
		rho, err := coreCascade.resolve(i, p.Pressure[i], p.Temperature[i])
		if err != nil {
			return err
		}
		p.Density[i] = coreScale * rho
	}

	lo, hi = p.Layers.Range(planet.MantleBand)
	for i := lo; i < hi; i++ {
		c := mantleCascade("density", grids, p.Pressure[i], pickDensity)
		rho, err := c.resolve(i, p.Pressure[i], p.Temperature[i])
		if err != nil {
			return err
		}
		p.Density[i] = rho
	}
	repairMonotonic(p.Density[lo:hi], p.Pressure[lo:hi], lookback)

	if p.Layers.Water > 0 {
		lo, hi = p.Layers.Range(planet.WaterBand)
		waterCascade := cascade{
			property: "density",
			band:     "water",
			primary:  grids.Water,
			fallback: eos.WaterDensityFallback,
			pick:     pickDensity,
		}
		for i := lo; i < hi; i++ {
			rho, err := waterCascade.resolve(i, p.Pressure[i], p.Temperature[i])
			if err != nil {
				return err
			}
			p.Density[i] = rho
		}
		repairMonotonic(p.Density[lo:hi], p.Pressure[lo:hi], lookback)
	}

	return nil
}

// mantleCascade picks the region-appropriate grid for a mantle layer and
// keeps the other as the retry, per the 125 GPa split.
func mantleCascade(property string, grids *eos.GridSet, pressureBar float64, pick func(eos.Values) float64) cascade {
	primary, secondary := grids.UpperMantle, grids.LowerMantle
	if pressureBar >= MantleSplitBar {
		primary, secondary = grids.LowerMantle, grids.UpperMantle
	}
	return cascade{
		property:  property,
		band:      "mantle",
		primary:   primary,
		secondary: secondary,
		pick:      pick,
	}
}

// repairMonotonic sweeps a band from the outside in and extrapolates any
// layer that is less dense than the layer above it, using the gradient over
// the lookback window. Interpolation noise near grid boundaries produces
// these inversions; density must not increase outward.
func repairMonotonic(rho, pressureBar []float64, lookback int) {
	n := len(rho)
	for i := n - 2; i >= 0; i-- {
		if rho[i+1] <= rho[i] {
			continue
		}
		j := i + lookback
		if j > n-1 {
			j = n - 1
		}
		if j <= i+1 || pressureBar[i+1] == pressureBar[j] {
			rho[i] = rho[i+1]
			continue
		}
		grad := (rho[i+1] - rho[j]) / (pressureBar[i+1] - pressureBar[j])
		fixed := rho[i+1] + (pressureBar[i]-pressureBar[i+1])*grad
		if fixed < rho[i+1] {
			fixed = rho[i+1]
		}
		rho[i] = fixed
	}
}
