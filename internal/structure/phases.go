package structure

import (
	"github.com/ebalaguer/exoterra/internal/eos"
	"github.com/ebalaguer/exoterra/internal/planet"
)

// labelPhases annotates every layer of a converged profile with the stable
// assemblage at its pressure and temperature. Labels are cosmetic: layers the
// grids cannot classify get the band's fallback name rather than an error.
func labelPhases(p *planet.Profile, grids *eos.GridSet) {
	lo, hi := p.Layers.Range(planet.CoreBand)
	for i := lo; i < hi; i++ {
		p.Phases[i] = lookupPhase(grids.Core, p.Pressure[i], p.Temperature[i], "Fe")
	}

	lo, hi = p.Layers.Range(planet.MantleBand)
	for i := lo; i < hi; i++ {
		g := grids.UpperMantle
		fallback := "upper mantle"
		if p.Pressure[i] >= MantleSplitBar {
			g = grids.LowerMantle
			fallback = "lower mantle"
		}
		p.Phases[i] = lookupPhase(g, p.Pressure[i], p.Temperature[i], fallback)
	}

	if p.Layers.Water > 0 {
		lo, hi = p.Layers.Range(planet.WaterBand)
		for i := lo; i < hi; i++ {
			p.Phases[i] = lookupPhase(grids.Water, p.Pressure[i], p.Temperature[i], "H2O")
		}
	}
}

func lookupPhase(g eos.Grid, pBar, tK float64, fallback string) string {
	if g != nil {
		if name, ok := g.Phase(pBar, tK); ok && name != "" {
			return name
		}
	}
	return fallback
}
