package structure

import (
	"fmt"
	"math"

	"github.com/ebalaguer/exoterra/internal/eos"
	"github.com/ebalaguer/exoterra/internal/numeric"
	"github.com/ebalaguer/exoterra/internal/planet"
)

// Structural carries the thermal boundary conditions of a run.
type Structural struct {
	MantlePotentialT float64 // K
	WaterPotentialT  float64 // K
}

// Per-band fit degrees for the adiabat quadrature.
const (
	tempFitWater         = 3
	tempFitMantleHydrous = 5
	tempFitMantleDry     = 4
	tempFitCoreHydrous   = 5
	tempFitCoreDry       = 3
)

// Expansivity jump thresholds: a layer whose alpha exceeds its outward
// neighbor's by more than this factor is treated as an interpolation
// outlier and extrapolated away, mirroring the density repair.
const (
	alphaJumpWater         = 2.0
	alphaJumpMantleHydrous = 2.0
	alphaJumpMantleDry     = 3.0
)

// integrateTemperature resolves expansivity and specific heat through the
// grid cascade, repairs expansivity outliers, then integrates the adiabatic
// gradient d(lnT)/d(depth) = alpha*g/cp per band from the surface inward.
// The water and mantle bands scale their exponentiated gradient by the
// potential temperatures; the core anchors to the mantle's innermost
// resolved temperature.
func integrateTemperature(p *planet.Profile, grids *eos.GridSet, iron *eos.LiquidIron, params Structural, lookback int) error {
	hydrous := p.Layers.Water > 0
	surface := p.TotalRadius()
	n := p.Layers.Total()
	depth := make([]float64, n)
	for i := range depth {
		depth[i] = surface - p.Radius[i]
	}

	if err := resolveThermo(p, grids, iron); err != nil {
		return err
	}

	mLo, mHi := p.Layers.Range(planet.MantleBand)
	cLo, cHi := p.Layers.Range(planet.CoreBand)

	// water band first: it seeds the mantle's boundary pressure
	if hydrous {
		wLo, wHi := p.Layers.Range(planet.WaterBand)
		repairAlphaJumps(p.Alpha[wLo:wHi], depth[wLo:wHi], alphaJumpWater, lookback)
		temps, err := integrateAdiabat(adiabatBand{
			depths:  depth[wLo:wHi],
			alpha:   p.Alpha[wLo:wHi],
			gravity: p.Gravity[wLo:wHi],
			cp:      p.Cp[wLo:wHi],
			degree:  tempFitWater,
			seed:    0,
			anchor:  params.WaterPotentialT,
		})
		if err != nil {
			return fmt.Errorf("water adiabat: %w", err)
		}
		copy(p.Temperature[wLo:wHi], temps)
	}

	// mantle: seeded with the empirical gradient at the water-mantle (or
	// surface) boundary pressure instead of zero
	jumpFactor := pickFactor(hydrous, alphaJumpMantleHydrous, alphaJumpMantleDry)
	repairAlphaJumps(p.Alpha[mLo:mHi], depth[mLo:mHi], jumpFactor, lookback)

	boundaryBar := p.Pressure[mHi-1]
	if hydrous {
		boundaryBar = p.Pressure[mHi] // innermost water layer
	}
	temps, err := integrateAdiabat(adiabatBand{
		depths:  depth[mLo:mHi],
		alpha:   p.Alpha[mLo:mHi],
		gravity: p.Gravity[mLo:mHi],
		cp:      p.Cp[mLo:mHi],
		degree:  pickDeg(hydrous, tempFitMantleHydrous, tempFitMantleDry),
		seed:    mantleSeedGradient(boundaryBar),
		anchor:  params.MantlePotentialT,
	})
	if err != nil {
		return fmt.Errorf("mantle adiabat: %w", err)
	}
	copy(p.Temperature[mLo:mHi], temps)

	// core: zero seed, anchored to the mantle's innermost temperature
	temps, err = integrateAdiabat(adiabatBand{
		depths:  depth[cLo:cHi],
		alpha:   p.Alpha[cLo:cHi],
		gravity: p.Gravity[cLo:cHi],
		cp:      p.Cp[cLo:cHi],
		degree:  pickDeg(hydrous, tempFitCoreHydrous, tempFitCoreDry),
		seed:    0,
		anchor:  p.Temperature[mLo],
	})
	if err != nil {
		return fmt.Errorf("core adiabat: %w", err)
	}
	copy(p.Temperature[cLo:cHi], temps)

	return nil
}

// resolveThermo fills alpha and cp per layer with the same cascade the
// density resolver uses: mantle cross-grid retry, core liquid-iron fallback,
// water closed-form fallbacks.
func resolveThermo(p *planet.Profile, grids *eos.GridSet, iron *eos.LiquidIron) error {
	lo, hi := p.Layers.Range(planet.CoreBand)
	for i := lo; i < hi; i++ {
		v, ok := eos.Values{}, false
		if grids.Core != nil {
			v, ok = grids.Core.Lookup(p.Pressure[i], p.Temperature[i])
		}
		if !ok {
			// one root solve yields both properties
			fb, err := iron.Evaluate(p.Pressure[i]*eos.ToPa, p.Temperature[i])
			if err != nil {
				return &DomainError{Property: "expansivity/specific heat", Band: "core",
					Layer: i, PressureBar: p.Pressure[i], TemperatureK: p.Temperature[i]}
			}
			v = fb
		}
		p.Alpha[i] = v.Alpha
		p.Cp[i] = v.Cp
	}

	lo, hi = p.Layers.Range(planet.MantleBand)
	for i := lo; i < hi; i++ {
		cpCascade := mantleCascade("specific heat", grids, p.Pressure[i], pickCp)
		cp, err := cpCascade.resolve(i, p.Pressure[i], p.Temperature[i])
		if err != nil {
			return err
		}
		alphaCascade := mantleCascade("expansivity", grids, p.Pressure[i], pickAlpha)
		alpha, err := alphaCascade.resolve(i, p.Pressure[i], p.Temperature[i])
		if err != nil {
			return err
		}
		p.Cp[i] = cp
		p.Alpha[i] = alpha
	}

	if p.Layers.Water > 0 {
		lo, hi = p.Layers.Range(planet.WaterBand)
		for i := lo; i < hi; i++ {
			v, ok := eos.Values{}, false
			if grids.Water != nil {
				v, ok = grids.Water.Lookup(p.Pressure[i], p.Temperature[i])
			}
			if ok {
				p.Cp[i] = v.Cp
				p.Alpha[i] = v.Alpha
			} else {
				p.Cp[i] = eos.WaterCpFallback(p.Pressure[i])
				p.Alpha[i] = eos.WaterAlphaFallback(p.Pressure[i], p.Temperature[i])
			}
		}
	}
	return nil
}

// repairAlphaJumps replaces expansivity outliers by linear extrapolation
// over the lookback window, walking the band from the outside in.
func repairAlphaJumps(alpha, depth []float64, factor float64, lookback int) {
	n := len(alpha)
	for i := n - 2; i >= 0; i-- {
		if alpha[i] <= factor*alpha[i+1] {
			continue
		}
		j := i + lookback
		if j > n-1 {
			j = n - 1
		}
		if j <= i+1 || depth[i+1] == depth[j] {
			alpha[i] = alpha[i+1]
			continue
		}
		grad := (alpha[i+1] - alpha[j]) / (depth[i+1] - depth[j])
		alpha[i] = alpha[i+1] + (depth[i]-depth[i+1])*grad
	}
}

type adiabatBand struct {
	depths  []float64 // center-outward slice of the depth coordinate
	alpha   []float64
	gravity []float64
	cp      []float64
	degree  int
	seed    float64 // log-gradient at the band top
	anchor  float64 // temperature scale for the exponentiated gradient
}

// integrateAdiabat integrates the log-gradient over increasing depth and
// returns absolute temperatures in center-outward order.
func integrateAdiabat(b adiabatBand) ([]float64, error) {
	depths := numeric.Reverse(b.depths)
	alphaFit, err := numeric.FitPoly(depths, numeric.Reverse(b.alpha), b.degree)
	if err != nil {
		return nil, err
	}
	gFit, err := numeric.FitPoly(depths, numeric.Reverse(b.gravity), b.degree)
	if err != nil {
		return nil, err
	}
	cpFit, err := numeric.FitPoly(depths, numeric.Reverse(b.cp), b.degree)
	if err != nil {
		return nil, err
	}
	gradient := func(d float64) float64 {
		cp := cpFit.At(d)
		if cp == 0 {
			return 0
		}
		return alphaFit.At(d) * gFit.At(d) / cp
	}
	logGrad := numeric.CumIntegrate(depths, b.seed, gradient)

	temps := make([]float64, len(logGrad))
	for k, lg := range logGrad {
		temps[len(temps)-1-k] = math.Exp(lg) * b.anchor
	}
	return temps, nil
}

// mantleSeedGradient is the empirical adiabatic log-gradient at the mantle's
// upper boundary, as a function of the boundary pressure.
func mantleSeedGradient(pressureBar float64) float64 {
	pGPa := pressureBar / 10.0 / 1000.0
	return 0.0041453 + 0.00221*pGPa - 6.6523e-6*pGPa*pGPa
}

func pickFactor(hydrous bool, wet, dry float64) float64 {
	if hydrous {
		return wet
	}
	return dry
}
