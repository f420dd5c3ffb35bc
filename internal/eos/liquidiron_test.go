package eos

import (
	"math"
	"testing"
)

func TestLiquidIron_ReferenceState(t *testing.T) {
	iron := NewLiquidIron()

	// at 1 bar and the reference temperature the thermal pressure vanishes
	// and the volume relaxes to V0
	v, err := iron.Evaluate(1e5, iron.T0)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	wantRho := iron.MolarMass / iron.V0
	if math.Abs(v.Density-wantRho)/wantRho > 1e-3 {
		t.Errorf("reference density %g, want about %g", v.Density, wantRho)
	}
}

func TestLiquidIron_CompressionMonotonic(t *testing.T) {
	iron := NewLiquidIron()
	pressures := []float64{1e5, 1e9, 1e10, 1e11, 3e11}

	last := 0.0
	for _, p := range pressures {
		rho, err := iron.Density(p, 4000)
		if err != nil {
			t.Fatalf("density at %g Pa: %v", p, err)
		}
		if rho <= last {
			t.Errorf("density %g at %g Pa not above %g", rho, p, last)
		}
		last = rho
	}
}

func TestLiquidIron_ThermalExpansion(t *testing.T) {
	iron := NewLiquidIron()

	cold, err := iron.Density(5e10, 2000)
	if err != nil {
		t.Fatalf("cold: %v", err)
	}
	hot, err := iron.Density(5e10, 6000)
	if err != nil {
		t.Fatalf("hot: %v", err)
	}
	if hot >= cold {
		t.Errorf("heating at constant P should lower density: %g vs %g", hot, cold)
	}
}

func TestLiquidIron_DerivedProperties(t *testing.T) {
	iron := NewLiquidIron()
	v, err := iron.Evaluate(1.4e11, 4500)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v.Alpha <= 0 || v.Alpha > 1e-3 {
		t.Errorf("expansivity %g outside plausible range", v.Alpha)
	}
	if v.Cp <= 0 {
		t.Errorf("specific heat %g must be positive", v.Cp)
	}
	// liquid iron around core conditions sits near 1e4 kg/m^3
	if v.Density < 7000 || v.Density > 16000 {
		t.Errorf("density %g outside plausible core range", v.Density)
	}
}
