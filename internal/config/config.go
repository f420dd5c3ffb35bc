package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ebalaguer/exoterra/internal/planet"
	"github.com/ebalaguer/exoterra/internal/structure"
)

const (
	DefaultMantleLayers  = 800
	DefaultCoreLayers    = 500
	DefaultWaterLayers   = 0
	DefaultMantlePotT    = 1600.0
	DefaultWaterPotT     = 300.0
	DefaultTolerance     = 1e-3
	DefaultMaxIterations = 100
	DefaultLookback      = 5
)

type Config struct {
	Composition CompositionConfig `yaml:"composition"`
	Layers      planet.Layers     `yaml:"layers"`
	Structure   StructureConfig   `yaml:"structure"`
	Solver      SolverConfig      `yaml:"solver"`
}

type CompositionConfig struct {
	// Core element weight percent; must sum to 100.
	CoreFe float64 `yaml:"core_fe"`
	CoreSi float64 `yaml:"core_si"`
	CoreO  float64 `yaml:"core_o"`
	CoreS  float64 `yaml:"core_s"`

	MantleOxides map[string]float64 `yaml:"mantle_oxides"`

	CoreMassFrac  float64 `yaml:"core_mass_frac"`
	WaterMassFrac float64 `yaml:"water_mass_frac"`
}

type StructureConfig struct {
	MantlePotentialTemp float64 `yaml:"mantle_potential_temp"`
	WaterPotentialTemp  float64 `yaml:"water_potential_temp"`

	// Exactly one target must be set, in Earth units.
	TargetMass   float64 `yaml:"target_mass"`
	TargetRadius float64 `yaml:"target_radius"`
}

type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	Lookback      int     `yaml:"lookback"`
	Verbose       bool    `yaml:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		Composition: CompositionConfig{
			CoreFe:       100.0,
			MantleOxides: map[string]float64{"SiO2": 45.0, "MgO": 55.0},
			CoreMassFrac: 0.33,
		},
		Layers: planet.Layers{
			Mantle: DefaultMantleLayers,
			Core:   DefaultCoreLayers,
			Water:  DefaultWaterLayers,
		},
		Structure: StructureConfig{
			MantlePotentialTemp: DefaultMantlePotT,
			WaterPotentialTemp:  DefaultWaterPotT,
			TargetMass:          1.0,
		},
		Solver: SolverConfig{
			Tolerance:     DefaultTolerance,
			MaxIterations: DefaultMaxIterations,
			Lookback:      DefaultLookback,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.GetComposition().Validate(); err != nil {
		return err
	}
	if err := c.Layers.Validate(); err != nil {
		return err
	}
	hasMass := c.Structure.TargetMass > 0
	hasRadius := c.Structure.TargetRadius > 0
	if hasMass == hasRadius {
		return fmt.Errorf("config: exactly one of target_mass and target_radius must be set")
	}
	if c.Structure.MantlePotentialTemp <= 0 {
		return fmt.Errorf("config: mantle_potential_temp must be positive, got %g", c.Structure.MantlePotentialTemp)
	}
	if c.Layers.Water > 0 && c.Structure.WaterPotentialTemp <= 0 {
		return fmt.Errorf("config: water_potential_temp must be positive with water layers, got %g", c.Structure.WaterPotentialTemp)
	}
	return nil
}

func (c *Config) GetComposition() planet.Composition {
	return planet.Composition{
		CoreFe:        c.Composition.CoreFe,
		CoreSi:        c.Composition.CoreSi,
		CoreO:         c.Composition.CoreO,
		CoreS:         c.Composition.CoreS,
		MantleOxides:  c.Composition.MantleOxides,
		CoreMassFrac:  c.Composition.CoreMassFrac,
		WaterMassFrac: c.Composition.WaterMassFrac,
	}
}

func (c *Config) GetStructural() structure.Structural {
	return structure.Structural{
		MantlePotentialT: c.Structure.MantlePotentialTemp,
		WaterPotentialT:  c.Structure.WaterPotentialTemp,
	}
}

func (c *Config) GetSolverOptions() structure.Options {
	opts := structure.DefaultOptions()
	if c.Solver.Tolerance > 0 {
		opts.Tolerance = c.Solver.Tolerance
	}
	if c.Solver.MaxIterations > 0 {
		opts.MaxIterations = c.Solver.MaxIterations
	}
	if c.Solver.Lookback > 0 {
		opts.Lookback = c.Solver.Lookback
	}
	return opts
}
