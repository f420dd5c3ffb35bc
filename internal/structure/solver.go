package structure

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ebalaguer/exoterra/internal/eos"
	"github.com/ebalaguer/exoterra/internal/planet"
)

// Observer receives a snapshot after every fixed-point iteration. Implement
// it to watch convergence live; the profile is a copy and safe to retain.
type Observer interface {
	OnIteration(iter int, residual float64, p *planet.Profile)
}

// Options tunes the solver. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// Tolerance bounds the worst relative density change between successive
	// iterations.
	Tolerance float64
	// OuterTolerance bounds the relative miss of the mass or radius target
	// in the outer loop.
	OuterTolerance float64
	// MaxIterations caps the inner fixed-point loop.
	MaxIterations int
	// MaxOuter caps the outer target-matching loop.
	MaxOuter int
	// Lookback is the window, in layers, used when extrapolating over
	// density inversions and expansivity spikes.
	Lookback int

	Logger   *logrus.Logger
	Observer Observer
}

func DefaultOptions() Options {
	return Options{
		Tolerance:      1e-3,
		OuterTolerance: 1e-3,
		MaxIterations:  100,
		MaxOuter:       60,
		Lookback:       5,
	}
}

// Result is a converged structure plus its convergence bookkeeping.
type Result struct {
	Profile    *planet.Profile
	Iterations int
	Residual   float64
}

// Solver computes self-consistent interior structures for one composition
// and layering. It is safe for sequential reuse across targets but not for
// concurrent use; sweeps construct one solver per worker.
type Solver struct {
	grids  *eos.GridSet
	comp   planet.Composition
	layers planet.Layers
	params Structural
	opts   Options
	iron   *eos.LiquidIron
	log    *logrus.Logger
}

func New(grids *eos.GridSet, comp planet.Composition, layers planet.Layers, params Structural, opts Options) (*Solver, error) {
	if grids == nil {
		return nil, fmt.Errorf("structure: nil grid set")
	}
	if err := layers.Validate(); err != nil {
		return nil, err
	}
	if layers.Core < 2 {
		return nil, fmt.Errorf("structure: core needs at least 2 layers, got %d", layers.Core)
	}
	if err := comp.Validate(); err != nil {
		return nil, err
	}
	if (comp.WaterMassFrac > 0) != (layers.Water > 0) {
		return nil, fmt.Errorf("structure: water mass fraction %g inconsistent with %d water layers",
			comp.WaterMassFrac, layers.Water)
	}
	if params.MantlePotentialT <= 0 {
		return nil, fmt.Errorf("structure: mantle potential temperature %g must be positive", params.MantlePotentialT)
	}
	if layers.Water > 0 && params.WaterPotentialT <= 0 {
		return nil, fmt.Errorf("structure: water potential temperature %g must be positive", params.WaterPotentialT)
	}
	if opts.Tolerance <= 0 || opts.MaxIterations <= 0 {
		return nil, fmt.Errorf("structure: tolerance and iteration cap must be positive")
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Solver{
		grids:  grids,
		comp:   comp,
		layers: layers,
		params: params,
		opts:   opts,
		iron:   eos.NewLiquidIron(),
		log:    log,
	}, nil
}

// SolveMass computes the structure of a planet with the given total mass in
// Earth masses. The fixed-point loop holds mass exact by construction; the
// outer loop only refreshes the radius seed until the structure stops moving.
func (s *Solver) SolveMass(ctx context.Context, massEarth float64) (*Result, error) {
	if massEarth <= 0 {
		return nil, fmt.Errorf("structure: target mass %g must be positive", massEarth)
	}
	mass := massEarth * planet.EarthMass

	// empirical mass-radius seed; only the first iteration sees it
	rGuess := planet.EarthRadius * math.Pow(massEarth, 0.27)

	for outer := 0; outer < s.opts.MaxOuter; outer++ {
		p := s.initialProfile(mass, rGuess)
		r, err := s.iterate(ctx, p, mass)
		if err != nil {
			return nil, err
		}
		got := r.Profile.TotalRadius()
		miss := math.Abs(got-rGuess) / got
		s.log.WithFields(logrus.Fields{
			"outer":       outer,
			"radius_m":    got,
			"radius_seed": rGuess,
			"miss":        miss,
		}).Debug("mass solve outer step")
		if miss < s.opts.OuterTolerance {
			labelPhases(r.Profile, s.grids)
			return r, nil
		}
		rGuess = got
	}
	return nil, &ShootingError{
		Mode:    "mass",
		Target:  massEarth,
		Message: fmt.Sprintf("radius seed did not settle in %d outer iterations", s.opts.MaxOuter),
	}
}

// SolveRadius computes the structure of a planet with the given total radius
// in Earth radii by bisecting over trial total mass until the converged
// radius matches.
func (s *Solver) SolveRadius(ctx context.Context, radiusEarth float64) (*Result, error) {
	if radiusEarth <= 0 {
		return nil, fmt.Errorf("structure: target radius %g must be positive", radiusEarth)
	}
	target := radiusEarth * planet.EarthRadius

	radiusOf := func(massEarth float64) (*Result, float64, error) {
		r, err := s.SolveMass(ctx, massEarth)
		if err != nil {
			return nil, 0, err
		}
		return r, r.Profile.TotalRadius(), nil
	}

	const loLimit, hiLimit = 0.01, 100.0
	lo, hi := loLimit, math.Pow(radiusEarth, 3.7)
	if hi <= lo {
		hi = 2 * lo
	}
	if hi > hiLimit {
		hi = hiLimit
	}

	// grow the upper bracket until it overshoots the target radius
	hiRes, hiRadius, err := radiusOf(hi)
	if err != nil {
		return nil, err
	}
	for hiRadius < target {
		if hi >= hiLimit {
			return nil, &ShootingError{
				Mode: "radius", Lo: lo, Hi: hi, Target: radiusEarth,
				Message: fmt.Sprintf("no planet up to %g Earth masses reaches %g Earth radii", hiLimit, radiusEarth),
			}
		}
		hi = math.Min(2*hi, hiLimit)
		hiRes, hiRadius, err = radiusOf(hi)
		if err != nil {
			return nil, err
		}
	}
	_, loRadius, err := radiusOf(lo)
	if err != nil {
		return nil, err
	}
	if loRadius > target {
		return nil, &ShootingError{
			Mode: "radius", Lo: lo, Hi: hi, Target: radiusEarth,
			Message: fmt.Sprintf("even %g Earth masses exceeds %g Earth radii", loLimit, radiusEarth),
		}
	}

	if math.Abs(hiRadius-target)/target < s.opts.OuterTolerance {
		return hiRes, nil
	}
	for outer := 0; outer < s.opts.MaxOuter; outer++ {
		mid := 0.5 * (lo + hi)
		res, gotRadius, err := radiusOf(mid)
		if err != nil {
			return nil, err
		}
		miss := math.Abs(gotRadius-target) / target
		s.log.WithFields(logrus.Fields{
			"outer":      outer,
			"trial_mass": mid,
			"radius_m":   gotRadius,
			"miss":       miss,
		}).Debug("radius solve bisection step")
		if miss < s.opts.OuterTolerance {
			return res, nil
		}
		if gotRadius < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return nil, &ShootingError{
		Mode: "radius", Lo: lo, Hi: hi, Target: radiusEarth,
		Message: fmt.Sprintf("bisection did not close in %d steps", s.opts.MaxOuter),
	}
}

// iterate runs the fixed-point loop at a fixed total mass until the worst
// relative density change falls under the tolerance. The innermost layer is
// excluded from the residual: the center sample is the least constrained and
// oscillates without affecting the rest of the structure.
func (s *Solver) iterate(ctx context.Context, p *planet.Profile, totalMass float64) (*Result, error) {
	for iter := 1; iter <= s.opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		old := p.Clone()

		if err := resolveDensity(p, s.grids, s.comp, s.iron, s.opts.Lookback); err != nil {
			return nil, err
		}
		if err := integrateGravity(p); err != nil {
			return nil, err
		}
		if err := integratePressure(p); err != nil {
			return nil, err
		}
		if err := integrateTemperature(p, s.grids, s.iron, s.params, s.opts.Lookback); err != nil {
			return nil, err
		}
		resolveRadius(p, s.comp, totalMass)

		residual := 0.0
		for i := 1; i < p.Layers.Total(); i++ {
			r := math.Abs(1.0 - old.Density[i]/p.Density[i])
			if r > residual {
				residual = r
			}
		}

		s.log.WithFields(logrus.Fields{
			"iter":     iter,
			"residual": residual,
			"radius_m": p.TotalRadius(),
		}).Debug("fixed-point iteration")
		if s.opts.Observer != nil {
			s.opts.Observer.OnIteration(iter, residual, p.Clone())
		}

		if !p.IsValid() {
			return nil, fmt.Errorf("structure: non-finite profile at iteration %d", iter)
		}
		if residual < s.opts.Tolerance {
			return &Result{Profile: p, Iterations: iter, Residual: residual}, nil
		}
	}
	return nil, &ConvergenceError{
		Iterations: s.opts.MaxIterations,
		Residual:   math.NaN(),
	}
}

// initialProfile seeds the fixed-point loop: banded constant densities scaled
// to the bulk density of the guess sphere, a parabolic self-gravity pressure
// profile, and isothermal bands at their potential temperatures.
func (s *Solver) initialProfile(totalMass, rGuess float64) *planet.Profile {
	p := planet.NewProfile(s.layers)
	p.Phases = make([]string, s.layers.Total())

	bulk := totalMass / (4.0 * math.Pi / 3.0 * rGuess * rGuess * rGuess)
	lo, hi := p.Layers.Range(planet.CoreBand)
	for i := lo; i < hi; i++ {
		p.Density[i] = 2.0 * bulk
	}
	lo, hi = p.Layers.Range(planet.MantleBand)
	for i := lo; i < hi; i++ {
		p.Density[i] = 0.9 * bulk
	}
	lo, hi = p.Layers.Range(planet.WaterBand)
	for i := lo; i < hi; i++ {
		p.Density[i] = 0.35 * bulk
	}

	resolveRadius(p, s.comp, totalMass)
	surface := p.TotalRadius()

	// uniform-sphere central pressure, floored so the EOS never sees vacuum
	pc := 3.0 * gravConst * totalMass * totalMass /
		(8.0 * math.Pi * math.Pow(surface, 4))
	for i := range p.Pressure {
		x := p.Radius[i] / surface
		bar := pc * (1.0 - x*x) / eos.ToPa
		if bar < 1.0 {
			bar = 1.0
		}
		p.Pressure[i] = bar
	}

	lo, hi = p.Layers.Range(planet.WaterBand)
	for i := lo; i < hi; i++ {
		p.Temperature[i] = s.params.WaterPotentialT
	}
	lo, hi = p.Layers.Range(planet.MantleBand)
	for i := lo; i < hi; i++ {
		p.Temperature[i] = s.params.MantlePotentialT
	}
	lo, hi = p.Layers.Range(planet.CoreBand)
	for i := lo; i < hi; i++ {
		// mild superadiabatic guess; the first temperature pass replaces it
		p.Temperature[i] = 1.2 * s.params.MantlePotentialT
	}

	for i := range p.Gravity {
		p.Gravity[i] = gravConst * totalMass * p.Radius[i] / math.Pow(surface, 3)
	}
	return p
}
