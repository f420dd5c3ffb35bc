// Package sweep runs batches of independent structure solves, one worker
// per planet. Grids are read-only, so the workers share them; each worker
// builds its own solver.
package sweep

import (
	"context"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ebalaguer/exoterra/internal/eos"
	"github.com/ebalaguer/exoterra/internal/planet"
	"github.com/ebalaguer/exoterra/internal/structure"
)

// Point is one solved planet of a sweep; Err is set when that solve failed
// and the rest of the sweep continued.
type Point struct {
	MassEarth float64
	Result    *structure.Result
	Err       error
}

type Sweep struct {
	grids  *eos.GridSet
	comp   planet.Composition
	layers planet.Layers
	params structure.Structural
	opts   structure.Options
	log    *logrus.Logger
}

func New(grids *eos.GridSet, comp planet.Composition, layers planet.Layers, params structure.Structural, opts structure.Options) *Sweep {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	// per-solve observers would interleave across workers
	opts.Observer = nil
	return &Sweep{grids: grids, comp: comp, layers: layers, params: params, opts: opts, log: log}
}

// MassRange returns n masses spaced logarithmically over [lo, hi] Earth
// masses.
func MassRange(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	masses := make([]float64, n)
	logLo, logHi := math.Log(lo), math.Log(hi)
	for i := range masses {
		t := float64(i) / float64(n-1)
		masses[i] = math.Exp(logLo + t*(logHi-logLo))
	}
	return masses
}

// Run solves every mass in parallel and returns the points in input order.
// Individual solve failures land in their point's Err; Run itself only fails
// when the context is canceled.
func (s *Sweep) Run(ctx context.Context, massesEarth []float64) ([]Point, error) {
	points := make([]Point, len(massesEarth))

	var wg sync.WaitGroup
	for i, mass := range massesEarth {
		wg.Add(1)
		go func(idx int, massEarth float64) {
			defer wg.Done()

			solver, err := structure.New(s.grids, s.comp, s.layers, s.params, s.opts)
			if err != nil {
				points[idx] = Point{MassEarth: massEarth, Err: err}
				return
			}
			res, err := solver.SolveMass(ctx, massEarth)
			points[idx] = Point{MassEarth: massEarth, Result: res, Err: err}
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"mass_earth": massEarth,
				}).WithError(err).Warn("sweep point failed")
			}
		}(i, mass)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return points, nil
}
