package planet

import (
	"fmt"
	"math"
)

// Molar masses in g/mol.
const (
	MolarMassFe = 55.845
	MolarMassSi = 28.0867
	MolarMassO  = 15.9994
	MolarMassS  = 32.0650
)

const weightSumTolerance = 1e-6

// Composition is the immutable bulk composition of a run: core light-element
// weight percentages (summing to 100), an informational mantle oxide split,
// and the mass fractions that divide the planet into bands.
type Composition struct {
	// Core element weight percent; must sum to 100.
	CoreFe float64
	CoreSi float64
	CoreO  float64
	CoreS  float64

	// Mantle bulk composition as oxide weight percent. Carried through to
	// output metadata; the mantle EOS grids are tabulated for it externally.
	MantleOxides map[string]float64

	// CoreMassFrac is the core mass fraction of the rocky portion.
	CoreMassFrac float64
	// WaterMassFrac is the water mass fraction of the whole planet.
	WaterMassFrac float64
}

func (c Composition) Validate() error {
	sum := c.CoreFe + c.CoreSi + c.CoreO + c.CoreS
	if math.Abs(sum-100.0) > weightSumTolerance {
		return fmt.Errorf("planet: core weight fractions sum to %g, want 100", sum)
	}
	for _, v := range []float64{c.CoreFe, c.CoreSi, c.CoreO, c.CoreS} {
		if v < 0 {
			return fmt.Errorf("planet: negative core weight fraction %g", v)
		}
	}
	if c.CoreMassFrac <= 0 || c.CoreMassFrac >= 1 {
		return fmt.Errorf("planet: core mass fraction %g outside (0, 1)", c.CoreMassFrac)
	}
	if c.WaterMassFrac < 0 || c.WaterMassFrac >= 1 {
		return fmt.Errorf("planet: water mass fraction %g outside [0, 1)", c.WaterMassFrac)
	}
	return nil
}

// MolFractions converts the core weight percentages to molar fractions.
func (c Composition) MolFractions() (fe, si, o, s float64) {
	total := (c.CoreFe/MolarMassFe + c.CoreO/MolarMassO +
		c.CoreS/MolarMassS + c.CoreSi/MolarMassSi) / 100.0
	fe = (c.CoreFe / MolarMassFe / 100.0) / total
	si = (c.CoreSi / MolarMassSi / 100.0) / total
	o = (c.CoreO / MolarMassO / 100.0) / total
	s = (c.CoreS / MolarMassS / 100.0) / total
	return fe, si, o, s
}

// CoreMolarMass is the effective molar mass of the core alloy in g/mol.
// Light elements lower it below pure iron, which scales the tabulated iron
// density down accordingly.
func (c Composition) CoreMolarMass() float64 {
	fe, si, o, s := c.MolFractions()
	return fe*MolarMassFe + si*MolarMassSi + o*MolarMassO + s*MolarMassS
}
