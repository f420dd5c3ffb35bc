package planet

import (
	"math"
	"testing"
)

func TestLayersRange(t *testing.T) {
	l := Layers{Core: 3, Mantle: 4, Water: 2}

	tests := []struct {
		band   Band
		lo, hi int
	}{
		{CoreBand, 0, 3},
		{MantleBand, 3, 7},
		{WaterBand, 7, 9},
	}
	for _, tt := range tests {
		lo, hi := l.Range(tt.band)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("%s: got [%d, %d), want [%d, %d)", tt.band, lo, hi, tt.lo, tt.hi)
		}
	}
	if l.Total() != 9 {
		t.Errorf("total = %d, want 9", l.Total())
	}
}

func TestLayersValidate(t *testing.T) {
	tests := []struct {
		name    string
		l       Layers
		wantErr bool
	}{
		{"ok dry", Layers{Core: 2, Mantle: 3}, false},
		{"ok hydrous", Layers{Core: 2, Mantle: 3, Water: 1}, false},
		{"no core", Layers{Mantle: 3}, true},
		{"no mantle", Layers{Core: 2}, true},
		{"negative water", Layers{Core: 2, Mantle: 3, Water: -1}, true},
	}
	for _, tt := range tests {
		err := tt.l.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestProfileCheck(t *testing.T) {
	p := NewProfile(Layers{Core: 2, Mantle: 2})
	p.Radius = []float64{0, 1e6, 2e6, 3e6}
	if err := p.Check(); err != nil {
		t.Errorf("valid profile rejected: %v", err)
	}

	p.Radius[2] = 0.5e6
	if err := p.Check(); err == nil {
		t.Error("expected error for decreasing radius")
	}
}

func TestProfileCloneIndependent(t *testing.T) {
	p := NewProfile(Layers{Core: 2, Mantle: 1})
	p.Density[0] = 9000
	c := p.Clone()
	c.Density[0] = 1
	if p.Density[0] != 9000 {
		t.Error("clone shares density storage with the original")
	}
}

func TestIntegratedMass_UniformSphere(t *testing.T) {
	// dense radial sampling of a constant-density sphere
	const rho = 5000.0
	const R = 6.0e6
	n := 2000
	p := NewProfile(Layers{Core: n / 2, Mantle: n / 2})
	for i := 0; i < n; i++ {
		p.Radius[i] = R * float64(i) / float64(n-1)
		p.Density[i] = rho
	}
	want := 4.0 / 3.0 * math.Pi * rho * R * R * R
	got := p.IntegratedMass()
	if math.Abs(got-want)/want > 1e-9 {
		t.Errorf("integrated mass %g, want %g", got, want)
	}
}

func TestBulkDensity(t *testing.T) {
	p := NewProfile(Layers{Core: 2, Mantle: 2})
	p.Radius = []float64{0, 1e6, 2e6, 3e6}
	p.Mass[3] = 4.0 / 3.0 * math.Pi * math.Pow(3e6, 3) * 4000.0
	if math.Abs(p.BulkDensity()-4000.0) > 1e-6 {
		t.Errorf("bulk density %g, want 4000", p.BulkDensity())
	}
}

func TestCompositionValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Composition
		wantErr bool
	}{
		{"pure iron", Composition{CoreFe: 100, CoreMassFrac: 0.33}, false},
		{"alloy", Composition{CoreFe: 80, CoreSi: 10, CoreO: 5, CoreS: 5, CoreMassFrac: 0.3, WaterMassFrac: 0.1}, false},
		{"bad sum", Composition{CoreFe: 90, CoreMassFrac: 0.33}, true},
		{"negative element", Composition{CoreFe: 110, CoreSi: -10, CoreMassFrac: 0.33}, true},
		{"cmf zero", Composition{CoreFe: 100, CoreMassFrac: 0}, true},
		{"cmf one", Composition{CoreFe: 100, CoreMassFrac: 1}, true},
		{"wmf one", Composition{CoreFe: 100, CoreMassFrac: 0.3, WaterMassFrac: 1}, true},
	}
	for _, tt := range tests {
		err := tt.c.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestMolFractions_PureIron(t *testing.T) {
	c := Composition{CoreFe: 100, CoreMassFrac: 0.33}
	fe, si, o, s := c.MolFractions()
	if math.Abs(fe-1.0) > 1e-12 || si != 0 || o != 0 || s != 0 {
		t.Errorf("pure iron mol fractions = %g %g %g %g", fe, si, o, s)
	}
	if math.Abs(c.CoreMolarMass()-MolarMassFe) > 1e-9 {
		t.Errorf("pure iron molar mass %g, want %g", c.CoreMolarMass(), MolarMassFe)
	}
}

func TestCoreMolarMass_LightElements(t *testing.T) {
	c := Composition{CoreFe: 80, CoreSi: 10, CoreO: 5, CoreS: 5, CoreMassFrac: 0.3}
	m := c.CoreMolarMass()
	if m >= MolarMassFe {
		t.Errorf("light-element alloy molar mass %g should be below pure iron %g", m, MolarMassFe)
	}
	fe, si, o, s := c.MolFractions()
	if sum := fe + si + o + s; math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("mol fractions sum to %g", sum)
	}
}
