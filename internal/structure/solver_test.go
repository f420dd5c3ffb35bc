package structure_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ebalaguer/exoterra/internal/eos"
	"github.com/ebalaguer/exoterra/internal/planet"
	"github.com/ebalaguer/exoterra/internal/structure"
)

// syntheticTable tabulates an analytic, temperature-independent field on a
// dense lattice; bilinear interpolation of a field linear in P is exact.
func syntheticTable(pMin, pMax float64, rho func(pBar float64) float64, cp, alpha float64) *eos.Table {
	const nP, nT = 60, 8
	pAxis := make([]float64, nP)
	tAxis := make([]float64, nT)
	for i := range pAxis {
		pAxis[i] = pMin + (pMax-pMin)*float64(i)/float64(nP-1)
	}
	for j := range tAxis {
		tAxis[j] = 100 + 25000*float64(j)/float64(nT-1)
	}
	vals := make([][]eos.Values, nP)
	for i, p := range pAxis {
		vals[i] = make([]eos.Values, nT)
		for j := range tAxis {
			vals[i][j] = eos.Values{Density: rho(p), Cp: cp, Alpha: alpha}
		}
	}
	table, err := eos.NewTable(pAxis, tAxis, vals)
	Expect(err).NotTo(HaveOccurred())
	return table
}

func syntheticGrids() *eos.GridSet {
	mantleRho := func(pBar float64) float64 { return 3300 + 1.2e-3*pBar }
	coreRho := func(pBar float64) float64 { return 8000 + 2.5e-3*pBar }
	waterRho := func(pBar float64) float64 { return 1000 + 4.0e-4*pBar }

	return &eos.GridSet{
		UpperMantle: syntheticTable(0.5, 1.25e6, mantleRho, 1200, 2e-5),
		LowerMantle: syntheticTable(0.5, 1e9, mantleRho, 1250, 1.5e-5),
		Core:        syntheticTable(0.5, 1e9, coreRho, 800, 1.2e-5),
		Water:       syntheticTable(0.5, 1e9, waterRho, 4000, 2e-4),
	}
}

var _ = Describe("Solver", func() {
	var (
		grids  *eos.GridSet
		comp   planet.Composition
		layers planet.Layers
		params structure.Structural
		opts   structure.Options
	)

	BeforeEach(func() {
		grids = syntheticGrids()
		comp = planet.Composition{CoreFe: 100, CoreMassFrac: 0.33}
		layers = planet.Layers{Core: 40, Mantle: 60}
		params = structure.Structural{MantlePotentialT: 1600}
		opts = structure.DefaultOptions()
	})

	Describe("construction", func() {
		It("rejects a single-layer core", func() {
			layers.Core = 1
			_, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).To(HaveOccurred())
		})

		It("rejects water layers without a water mass fraction", func() {
			layers.Water = 10
			_, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a water mass fraction without water layers", func() {
			comp.WaterMassFrac = 0.05
			_, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("solving for a target mass", func() {
		It("converges to a self-consistent Earth-mass structure", func() {
			solver, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).NotTo(HaveOccurred())

			res, err := solver.SolveMass(context.Background(), 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Residual).To(BeNumerically("<", opts.Tolerance))

			p := res.Profile
			Expect(p.Check()).To(Succeed())
			Expect(p.IsValid()).To(BeTrue())

			By("holding the mass budget exactly")
			Expect(p.TotalMass()).To(BeNumerically("~", planet.EarthMass, planet.EarthMass*1e-9))

			By("producing an Earth-like radius from Earth-like densities")
			rEarth := p.TotalRadius() / planet.EarthRadius
			Expect(rEarth).To(BeNumerically(">", 0.7))
			Expect(rEarth).To(BeNumerically("<", 1.4))

			By("anchoring the boundary conditions")
			Expect(p.Gravity[0]).To(BeZero())
			Expect(p.Pressure[p.Layers.Total()-1]).To(BeNumerically("~", 1.0, 1e-6))

			By("stratifying density core over mantle")
			cLo, cHi := p.Layers.Range(planet.CoreBand)
			mLo, _ := p.Layers.Range(planet.MantleBand)
			Expect(p.Density[cHi-1]).To(BeNumerically(">", p.Density[mLo]))
			Expect(p.Density[cLo]).To(BeNumerically(">", p.Density[cHi-1]))

			By("labeling core phases")
			Expect(p.Phases[0]).To(Equal("Fe"))
		})

		It("keeps the profile physically ordered", func() {
			solver, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).NotTo(HaveOccurred())

			res, err := solver.SolveMass(context.Background(), 2.0)
			Expect(err).NotTo(HaveOccurred())

			p := res.Profile
			for i := 1; i < p.Layers.Total(); i++ {
				Expect(p.Pressure[i]).To(BeNumerically("<=", p.Pressure[i-1]),
					"pressure must not increase outward")
			}
			mLo, mHi := p.Layers.Range(planet.MantleBand)
			for i := mLo + 1; i < mHi; i++ {
				Expect(p.Density[i]).To(BeNumerically("<=", p.Density[i-1]),
					"mantle density must not increase outward")
			}
		})

		It("grows the radius with mass", func() {
			solver, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).NotTo(HaveOccurred())

			small, err := solver.SolveMass(context.Background(), 0.5)
			Expect(err).NotTo(HaveOccurred())
			large, err := solver.SolveMass(context.Background(), 3.0)
			Expect(err).NotTo(HaveOccurred())

			Expect(large.Profile.TotalRadius()).To(BeNumerically(">", small.Profile.TotalRadius()))
		})

		It("reports each iteration to the observer", func() {
			var iters []int
			opts.Observer = observerFunc(func(iter int, residual float64, p *planet.Profile) {
				iters = append(iters, iter)
				Expect(residual).To(BeNumerically(">=", 0))
				Expect(p).NotTo(BeNil())
			})
			solver, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).NotTo(HaveOccurred())

			res, err := solver.SolveMass(context.Background(), 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(iters).NotTo(BeEmpty())
			Expect(iters[len(iters)-1]).To(Equal(res.Iterations))
		})

		It("honors context cancellation", func() {
			solver, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err = solver.SolveMass(ctx, 1.0)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})

	Describe("solving for a target radius", func() {
		It("finds the mass whose structure matches the radius", func() {
			solver, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).NotTo(HaveOccurred())

			res, err := solver.SolveRadius(context.Background(), 1.0)
			Expect(err).NotTo(HaveOccurred())

			rEarth := res.Profile.TotalRadius() / planet.EarthRadius
			Expect(math.Abs(rEarth-1.0)).To(BeNumerically("<", 2e-3))
		})
	})

	Describe("hydrous planets", func() {
		BeforeEach(func() {
			comp.WaterMassFrac = 0.05
			layers.Water = 20
			params.WaterPotentialT = 300
		})

		It("solves a water world with a cold outer shell", func() {
			solver, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).NotTo(HaveOccurred())

			res, err := solver.SolveMass(context.Background(), 1.0)
			Expect(err).NotTo(HaveOccurred())

			p := res.Profile
			wLo, wHi := p.Layers.Range(planet.WaterBand)
			Expect(p.Temperature[wHi-1]).To(BeNumerically("~", 300, 1))
			mLo, _ := p.Layers.Range(planet.MantleBand)
			Expect(p.Density[wLo]).To(BeNumerically("<", p.Density[mLo-1]))

			waterMass := p.TotalMass() - p.Mass[wLo-1]
			Expect(waterMass).To(BeNumerically("~", 0.05*p.TotalMass(), 1e-6*p.TotalMass()))
		})
	})

	Describe("grid coverage failures", func() {
		It("falls back to the liquid-iron EOS when the core grid is thin", func() {
			// core grid capped far below core pressures
			grids.Core = syntheticTable(0.5, 1e4, func(float64) float64 { return 8000 }, 800, 1.2e-5)
			solver, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).NotTo(HaveOccurred())

			res, err := solver.SolveMass(context.Background(), 1.0)
			Expect(err).NotTo(HaveOccurred())
			// the analytic EOS yields iron-like, not grid, densities
			Expect(res.Profile.Density[0]).To(BeNumerically(">", 9000))
		})

		It("surfaces a domain error when nothing covers a point", func() {
			// mantle grids capped below mantle pressures, no fallback exists
			grids.UpperMantle = syntheticTable(0.5, 10, func(float64) float64 { return 3300 }, 1200, 2e-5)
			grids.LowerMantle = syntheticTable(0.5, 10, func(float64) float64 { return 3300 }, 1200, 2e-5)
			solver, err := structure.New(grids, comp, layers, params, opts)
			Expect(err).NotTo(HaveOccurred())

			_, err = solver.SolveMass(context.Background(), 1.0)
			var de *structure.DomainError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Band).To(Equal("mantle"))
		})
	})
})

// observerFunc adapts a closure to the Observer interface.
type observerFunc func(iter int, residual float64, p *planet.Profile)

func (f observerFunc) OnIteration(iter int, residual float64, p *planet.Profile) {
	f(iter, residual, p)
}
