package config

import "github.com/ebalaguer/exoterra/internal/planet"

func planetLayers(mantle, core, water int) planet.Layers {
	return planet.Layers{Mantle: mantle, Core: core, Water: water}
}

var Presets = map[string]*Config{
	"earth": {
		Composition: CompositionConfig{
			CoreFe:       100.0,
			MantleOxides: map[string]float64{"SiO2": 45.0, "MgO": 55.0},
			CoreMassFrac: 0.33,
		},
		Layers:    planetLayers(800, 500, 0),
		Structure: StructureConfig{MantlePotentialTemp: 1600.0, TargetMass: 1.0},
		Solver:    SolverConfig{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations, Lookback: DefaultLookback},
	},
	"iron": {
		Composition: CompositionConfig{
			CoreFe:       100.0,
			MantleOxides: map[string]float64{"SiO2": 45.0, "MgO": 55.0},
			CoreMassFrac: 0.80,
		},
		Layers:    planetLayers(400, 900, 0),
		Structure: StructureConfig{MantlePotentialTemp: 1600.0, TargetMass: 1.0},
		Solver:    SolverConfig{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations, Lookback: DefaultLookback},
	},
	"ocean": {
		Composition: CompositionConfig{
			CoreFe:        100.0,
			MantleOxides:  map[string]float64{"SiO2": 45.0, "MgO": 55.0},
			CoreMassFrac:  0.33,
			WaterMassFrac: 0.05,
		},
		Layers:    planetLayers(700, 400, 200),
		Structure: StructureConfig{MantlePotentialTemp: 1600.0, WaterPotentialTemp: 300.0, TargetMass: 1.0},
		Solver:    SolverConfig{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations, Lookback: DefaultLookback},
	},
	"light-core": {
		Composition: CompositionConfig{
			CoreFe:       80.0,
			CoreSi:       10.0,
			CoreO:        5.0,
			CoreS:        5.0,
			MantleOxides: map[string]float64{"SiO2": 45.0, "MgO": 55.0},
			CoreMassFrac: 0.33,
		},
		Layers:    planetLayers(800, 500, 0),
		Structure: StructureConfig{MantlePotentialTemp: 1700.0, TargetMass: 1.0},
		Solver:    SolverConfig{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations, Lookback: DefaultLookback},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
