package eos

import (
	"fmt"
	"math"
)

// LiquidIron is the closed-form liquid-iron equation of state used when a
// core (P, T) point falls outside the tabulated grid. It is a finite-strain
// Mie-Grueneisen formulation: the third-order Birch-Murnaghan cold curve
// plus a thermal pressure gamma(V)*Cv*(T-T0)/V, with the molar volume
// recovered by a bracketed root solve of the pressure residual.
type LiquidIron struct {
	MolarMass float64 // kg/mol
	V0        float64 // m^3/mol
	K0        float64 // Pa
	K0Prime   float64
	Gamma0    float64
	Q0        float64
	Cv        float64 // J/(mol K)
	T0        float64 // K
}

// NewLiquidIron returns the liquid-iron parameter set (Anderson & Ahrens
// shock-wave fit, referenced to the 1 bar melting point).
func NewLiquidIron() *LiquidIron {
	return &LiquidIron{
		MolarMass: 55.845e-3,
		V0:        7.957e-6,
		K0:        109.7e9,
		K0Prime:   4.66,
		Gamma0:    1.735,
		Q0:        -0.130,
		Cv:        46.632,
		T0:        1811.0,
	}
}

// grueneisen evaluates the finite-strain volume dependence of gamma.
func (l *LiquidIron) grueneisen(volume float64) float64 {
	x := l.V0 / volume
	f := 0.5 * (math.Pow(x, 2.0/3.0) - 1.0)
	a1 := 6.0 * l.Gamma0
	a2 := -12.0*l.Gamma0 + 36.0*l.Gamma0*l.Gamma0 - 18.0*l.Q0*l.Gamma0
	nuSq := 1.0 + a1*f + 0.5*a2*f*f
	return 1.0 / 6.0 / nuSq * (2.0*f + 1.0) * (a1 + a2*f)
}

// pressureResidual is P(V, T) - P.
func (l *LiquidIron) pressureResidual(volume, pressurePa, temperatureK float64) float64 {
	f := 0.5 * (math.Pow(l.V0/volume, 2.0/3.0) - 1.0)
	bIIKK := 9.0 * l.K0
	bIIKKMM := 27.0 * l.K0 * (l.K0Prime - 4.0)
	cold := (1.0 / 3.0) * math.Pow(1.0+2.0*f, 2.5) * (bIIKK*f + 0.5*bIIKKMM*f*f)
	thermal := l.grueneisen(volume) * l.Cv * (temperatureK - l.T0) / volume
	return cold + thermal - pressurePa
}

// volume solves for the molar volume at (P, T) by bisection between V0 and
// a heavily compressed bracket.
func (l *LiquidIron) volume(pressurePa, temperatureK float64) (float64, error) {
	hi := l.V0 * 1.2
	lo := l.V0 * 1e-2
	fHi := l.pressureResidual(hi, pressurePa, temperatureK)
	fLo := l.pressureResidual(lo, pressurePa, temperatureK)
	if fHi*fLo > 0 {
		return 0, fmt.Errorf("eos: liquid iron volume bracket failed at P=%g Pa, T=%g K", pressurePa, temperatureK)
	}
	for i := 0; i < 80; i++ {
		mid := 0.5 * (lo + hi)
		fMid := l.pressureResidual(mid, pressurePa, temperatureK)
		if fMid == 0 {
			return mid, nil
		}
		if fMid*fHi < 0 {
			lo = mid
			fLo = fMid
		} else {
			hi = mid
			fHi = fMid
		}
		_ = fLo
	}
	return 0.5 * (lo + hi), nil
}

// isothermalBulkModulus evaluates K_T at the solved volume.
func (l *LiquidIron) isothermalBulkModulus(volume, temperatureK float64) float64 {
	x := l.V0 / volume
	f := 0.5 * (math.Pow(x, 2.0/3.0) - 1.0)
	// third-order Birch-Murnaghan cold bulk modulus
	coldK := l.K0 * math.Pow(1.0+2.0*f, 2.5) *
		(1.0 + (3.0*l.K0Prime-5.0)*f + 13.5*(l.K0Prime-4.0)*f*f)

	gr := l.grueneisen(volume)
	q := l.volumeDependentQ(x)
	eTh := l.Cv * (temperatureK - l.T0)
	return coldK + (gr+1.0-q)*(gr/volume)*eTh - (gr*gr/volume)*eTh
}

func (l *LiquidIron) volumeDependentQ(x float64) float64 {
	f := 0.5 * (math.Pow(x, 2.0/3.0) - 1.0)
	a1 := 6.0 * l.Gamma0
	a2 := -12.0*l.Gamma0 + 36.0*l.Gamma0*l.Gamma0 - 18.0*l.Q0*l.Gamma0
	nuSq := 1.0 + a1*f + 0.5*a2*f*f
	gr := 1.0 / 6.0 / nuSq * (2.0*f + 1.0) * (a1 + a2*f)
	if math.Abs(l.Gamma0) < 1e-10 {
		return (18.0*gr - 6.0) / 9.0
	}
	return (18.0*gr - 6.0 - 0.5/nuSq*(2.0*f+1.0)*(2.0*f+1.0)*a2/gr) / 9.0
}

// Evaluate returns density, specific heat and expansivity at (P, T).
// Pressure is in pascals.
func (l *LiquidIron) Evaluate(pressurePa, temperatureK float64) (Values, error) {
	v, err := l.volume(pressurePa, temperatureK)
	if err != nil {
		return Values{}, err
	}
	gr := l.grueneisen(v)
	kT := l.isothermalBulkModulus(v, temperatureK)
	alpha := gr * l.Cv / (kT * v)
	cpMolar := l.Cv * (1.0 + gr*alpha*temperatureK)
	return Values{
		Density: l.MolarMass / v,
		Cp:      cpMolar / l.MolarMass,
		Alpha:   alpha,
	}, nil
}

// Density is a convenience wrapper for the density-only path.
func (l *LiquidIron) Density(pressurePa, temperatureK float64) (float64, error) {
	vals, err := l.Evaluate(pressurePa, temperatureK)
	if err != nil {
		return 0, err
	}
	return vals.Density, nil
}
