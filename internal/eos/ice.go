package eos

import (
	"fmt"
	"math"
)

// Ice VII cold-curve and empirical water-shell parameters.
const (
	iceMolarMass = 18.015e-3 // kg/mol
	iceV0        = 12.3e-6   // m^3/mol
	iceK0        = 23.9e9    // Pa
	iceK0Prime   = 4.15

	// thermal density correction exponent, per kelvin above 300 K
	iceThermalExponent = 11.58e-5

	// Fei expansivity coefficients
	waterAlphaA0 = -3.9e-4
	waterAlphaA1 = 1.5e-6
)

// WaterDensityFallback returns the pure-ice density with an empirical
// thermal correction, used when the water grid has no coverage. Pressure is
// in bar. Valid only for P >= 1 bar and T >= 300 K; outside that range the
// point is a genuine domain failure.
func WaterDensityFallback(pressureBar, temperatureK float64) (float64, error) {
	if pressureBar < 1 || temperatureK < 300 {
		return 0, fmt.Errorf("eos: water fallback invalid at P=%g bar, T=%g K", pressureBar, temperatureK)
	}
	cold, err := iceColdDensity(pressureBar * ToPa)
	if err != nil {
		return 0, err
	}
	corr := math.Exp((temperatureK - 300.0) * iceThermalExponent)
	return cold / corr, nil
}

// iceColdDensity solves the third-order Birch-Murnaghan cold curve of
// Ice VII for density at 300 K.
func iceColdDensity(pressurePa float64) (float64, error) {
	residual := func(v float64) float64 {
		x := math.Pow(iceV0/v, 1.0/3.0)
		p := 1.5 * iceK0 * (math.Pow(x, 7) - math.Pow(x, 5)) *
			(1.0 + 0.75*(iceK0Prime-4.0)*(x*x-1.0))
		return p - pressurePa
	}

	lo, hi := iceV0*0.25, iceV0*1.05
	fLo, fHi := residual(lo), residual(hi)
	if fLo*fHi > 0 {
		return 0, fmt.Errorf("eos: ice volume bracket failed at P=%g Pa", pressurePa)
	}
	for i := 0; i < 80; i++ {
		mid := 0.5 * (lo + hi)
		fMid := residual(mid)
		if fMid*fLo > 0 {
			lo, fLo = mid, fMid
		} else {
			hi, fHi = mid, fMid
		}
	}
	return iceMolarMass / (0.5 * (lo + hi)), nil
}

// WaterCpFallback is the empirical pressure-dependent specific heat of the
// water shell, J/(kg K). Pressure is in bar.
func WaterCpFallback(pressureBar float64) float64 {
	pGPa := pressureBar / 10.0 / 1000.0
	return 1000.0 * (3.3 + 22.1*math.Exp(-0.058*pGPa))
}

// WaterAlphaFallback is the Birch-Murnaghan-derived expansivity of the water
// shell (Fei parameterization). Pressure is in bar.
func WaterAlphaFallback(pressureBar, temperatureK float64) float64 {
	pGPa := pressureBar / 10.0 / 1000.0
	at := waterAlphaA0 + waterAlphaA1*temperatureK
	return at * math.Pow(1.0+(iceK0Prime/(iceK0/1e9))*pGPa, -0.9)
}
