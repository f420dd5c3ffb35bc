package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ebalaguer/exoterra/internal/config"
	"github.com/ebalaguer/exoterra/internal/eos"
	"github.com/ebalaguer/exoterra/internal/planet"
	"github.com/ebalaguer/exoterra/internal/storage"
	"github.com/ebalaguer/exoterra/internal/structure"
	"github.com/ebalaguer/exoterra/internal/sweep"
	"github.com/ebalaguer/exoterra/internal/tui"
	"github.com/ebalaguer/exoterra/internal/viz"
)

var (
	dataDir  string
	gridDir  string
	verbose  bool
	cfgFile  string
	preset   string
	mass     float64
	radius   float64
	noStore  bool
	quantity string
	// sweep ranges
	sweepLo float64
	sweepHi float64
	sweepN  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "exoterra",
		Short: "planetary interior structure solver",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".exoterra", "data directory")
	rootCmd.PersistentFlags().StringVar(&gridDir, "grids", "grids", "EOS grid directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve one interior structure",
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVar(&cfgFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	solveCmd.Flags().Float64Var(&mass, "mass", 0, "target mass (Earth masses)")
	solveCmd.Flags().Float64Var(&radius, "radius", 0, "target radius (Earth radii)")
	solveCmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist the run")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "solve with a live convergence monitor",
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&cfgFile, "config", "", "config file path (yaml)")
	watchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	watchCmd.Flags().Float64Var(&mass, "mass", 0, "target mass (Earth masses)")
	watchCmd.Flags().Float64Var(&radius, "radius", 0, "target radius (Earth radii)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve a mass range in parallel and plot the M-R curve",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&cfgFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().Float64Var(&sweepLo, "from", 0.5, "lowest mass (Earth masses)")
	sweepCmd.Flags().Float64Var(&sweepHi, "to", 5.0, "highest mass (Earth masses)")
	sweepCmd.Flags().IntVar(&sweepN, "points", 8, "number of masses")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&quantity, "quantity", "density", "density, gravity, pressure or temperature")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(solveCmd, watchCmd, sweepCmd, listCmd, plotCmd, exportCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// loadRunConfig resolves preset, config file and target flags into one
// validated configuration.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("mass") {
		cfg.Structure.TargetMass = mass
		cfg.Structure.TargetRadius = 0
	}
	if cmd.Flags().Changed("radius") {
		cfg.Structure.TargetRadius = radius
		cfg.Structure.TargetMass = 0
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSolver(cfg *config.Config, log *logrus.Logger, obs structure.Observer) (*structure.Solver, error) {
	grids, err := eos.LoadGridDir(gridDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load EOS grids from %s: %w", gridDir, err)
	}
	opts := cfg.GetSolverOptions()
	opts.Logger = log
	opts.Observer = obs
	return structure.New(grids, cfg.GetComposition(), cfg.Layers, cfg.GetStructural(), opts)
}

func solveTarget(ctx context.Context, solver *structure.Solver, cfg *config.Config) (mode string, target float64, res *structure.Result, err error) {
	if cfg.Structure.TargetMass > 0 {
		res, err = solver.SolveMass(ctx, cfg.Structure.TargetMass)
		return "mass", cfg.Structure.TargetMass, res, err
	}
	res, err = solver.SolveRadius(ctx, cfg.Structure.TargetRadius)
	return "radius", cfg.Structure.TargetRadius, res, err
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger()

	solver, err := buildSolver(cfg, log, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	mode, target, res, err := solveTarget(context.Background(), solver, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(viz.Summary(res))
	fmt.Printf("solved in %v\n", elapsed)

	if !noStore {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(mode, target, cfg.GetComposition(), res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger()

	events := make(chan tea.Msg, 16)
	solver, err := buildSolver(cfg, log, tui.ObserverChan(events))
	if err != nil {
		return err
	}

	go func() {
		_, _, _, err := solveTarget(context.Background(), solver, cfg)
		events <- tui.SolveDone{Err: err}
	}()

	p := tea.NewProgram(tui.NewMonitor(events))
	_, err = p.Run()
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger()

	grids, err := eos.LoadGridDir(gridDir)
	if err != nil {
		return fmt.Errorf("failed to load EOS grids from %s: %w", gridDir, err)
	}
	opts := cfg.GetSolverOptions()
	opts.Logger = log

	sw := sweep.New(grids, cfg.GetComposition(), cfg.Layers, cfg.GetStructural(), opts)
	masses := sweep.MassRange(sweepLo, sweepHi, sweepN)

	fmt.Printf("sweeping %d masses over %.2f–%.2f M⊕...\n", sweepN, sweepLo, sweepHi)
	start := time.Now()
	points, err := sw.Run(context.Background(), masses)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	mrPoints := make([]viz.MassRadiusPoint, 0, len(points))
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Printf("  %.3f M⊕: %v\n", pt.MassEarth, pt.Err)
			continue
		}
		mrPoints = append(mrPoints, viz.MassRadiusPoint{
			MassEarth:   pt.MassEarth,
			RadiusEarth: pt.Result.Profile.TotalRadius() / planet.EarthRadius,
		})
	}
	if len(mrPoints) == 0 {
		return fmt.Errorf("no sweep point converged")
	}

	fmt.Println(viz.MassRadiusTable(mrPoints))
	fmt.Println()
	fmt.Println(viz.MassRadiusPlot(mrPoints, 70, 15))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTARGET\tMASS [M⊕]\tRADIUS [R⊕]\tITER\tWHEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.3g\t%.3f\t%.3f\t%d\t%s\n",
			run.ID, run.Mode, run.Target,
			run.MassKg/planet.EarthMass,
			run.RadiusM/planet.EarthRadius,
			run.Iterations,
			run.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	p, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}
	graph, err := viz.ProfilePlot(p, viz.ProfileQuantity(quantity), 70, 15)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
