package structure

import (
	"math"
	"testing"
)

func TestRepairMonotonic_FixesInversion(t *testing.T) {
	// center-outward: pressure decreasing, density should decrease too.
	// layer 2 is an interpolation glitch, lighter than its outward neighbor.
	rho := []float64{5000, 4800, 4000, 4500, 4300, 4100, 3900}
	pressure := []float64{9e5, 8e5, 7e5, 6e5, 5e5, 4e5, 3e5}

	repairMonotonic(rho, pressure, 5)

	for i := 0; i < len(rho)-1; i++ {
		if rho[i] < rho[i+1] {
			t.Errorf("density still increases outward at layer %d: %g < %g", i, rho[i], rho[i+1])
		}
	}
}

func TestRepairMonotonic_LeavesCleanProfile(t *testing.T) {
	rho := []float64{5000, 4800, 4600, 4400, 4200}
	pressure := []float64{9e5, 8e5, 7e5, 6e5, 5e5}
	orig := append([]float64(nil), rho...)

	repairMonotonic(rho, pressure, 5)

	for i := range rho {
		if rho[i] != orig[i] {
			t.Errorf("monotone profile modified at layer %d: %g -> %g", i, orig[i], rho[i])
		}
	}
}

func TestRepairMonotonic_WindowClampedAtEnd(t *testing.T) {
	// inversion near the outer edge where the lookback window is truncated
	rho := []float64{5000, 4000, 4500, 4400}
	pressure := []float64{9e5, 8e5, 7e5, 6e5}

	repairMonotonic(rho, pressure, 5)

	for i := 0; i < len(rho)-1; i++ {
		if rho[i] < rho[i+1] {
			t.Errorf("density still increases outward at layer %d", i)
		}
	}
}

func TestRepairMonotonic_ShortSlices(t *testing.T) {
	// nothing to do, must not panic
	repairMonotonic([]float64{}, []float64{}, 5)
	repairMonotonic([]float64{5000}, []float64{1e5}, 5)
}

func TestRepairAlphaJumps_RemovesSpike(t *testing.T) {
	// layer 1 spikes far above its outward neighbor
	alpha := []float64{2.1e-5, 9.0e-5, 2.0e-5, 1.9e-5, 1.8e-5, 1.7e-5}
	depth := []float64{6e6, 5e6, 4e6, 3e6, 2e6, 1e6}

	repairAlphaJumps(alpha, depth, 2.0, 5)

	for i := 0; i < len(alpha)-1; i++ {
		if alpha[i] > 2.0*alpha[i+1] {
			t.Errorf("spike survives at layer %d: %g vs %g", i, alpha[i], alpha[i+1])
		}
	}
}

func TestRepairAlphaJumps_RespectsFactor(t *testing.T) {
	// a 2.5x step is a spike under factor 2 but legitimate under factor 3
	mk := func() []float64 { return []float64{5.0e-5, 2.0e-5, 1.9e-5, 1.8e-5, 1.7e-5, 1.6e-5} }
	depth := []float64{6e6, 5e6, 4e6, 3e6, 2e6, 1e6}

	loose := mk()
	repairAlphaJumps(loose, depth, 3.0, 5)
	if loose[0] != 5.0e-5 {
		t.Errorf("factor 3 should keep the step, got %g", loose[0])
	}

	tight := mk()
	repairAlphaJumps(tight, depth, 2.0, 5)
	if tight[0] == 5.0e-5 {
		t.Error("factor 2 should repair the step")
	}
}

func TestMantleSeedGradient(t *testing.T) {
	// surface pressure: the constant term dominates
	if g := mantleSeedGradient(1.0); math.Abs(g-0.0041453) > 1e-5 {
		t.Errorf("near-surface gradient %g, want about 0.0041453", g)
	}
	// the quadratic term eventually bends the curve down
	if mantleSeedGradient(1.25e6) <= mantleSeedGradient(1.0) {
		t.Error("gradient should grow toward the deep mantle")
	}
}
