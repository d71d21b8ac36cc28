package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/metrics"
	"github.com/san-kum/heatsim/internal/render"
	"github.com/san-kum/heatsim/internal/storage"
)

var (
	dataDir string
	verbose bool
	logger  = zap.NewNop()

	// Simulation parameters
	configFile string
	preset     string
	dimFlag    string
	boundary   string
	diffusion  float64
	length     float64
	duration   float64
	nodes      int
	source     float64
	dt         float64
	strictCFL  bool
	validate   bool
	workers    int
	every      int

	// GIF export
	outFile  string
	cellSize int
	delay    int
)

// main registers the heatsim commands and executes the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "heatsim",
		Short:        "explicit heat diffusion lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heatsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario and store its snapshots",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario in memory and play it back",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	stabilityCmd := &cobra.Command{
		Use:   "stability [scenario]",
		Short: "print the stable time step bounds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showStability,
	}
	addSimFlags(stabilityCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	playCmd := &cobra.Command{
		Use:   "play [run_id]...",
		Short: "play stored runs side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE:  playRuns,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	exportGIFCmd := &cobra.Command{
		Use:   "export-gif [run_id]",
		Short: "export run as an animated color map",
		Args:  cobra.ExactArgs(1),
		RunE:  exportGIF,
	}
	exportGIFCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.gif)")
	exportGIFCmd.Flags().IntVar(&cellSize, "cell", 6, "pixels per node")
	exportGIFCmd.Flags().IntVar(&delay, "delay", 5, "frame delay in 1/100 s")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the center trace and final profile as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output prefix (default <run_id>)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run snapshots to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := config.ListScenarios()
			if len(args) > 0 {
				scenarios = args
			}
			for _, s := range scenarios {
				presets := config.ListPresets(s)
				if len(presets) == 0 {
					fmt.Printf("no presets for scenario: %s\n", s)
					continue
				}
				fmt.Printf("presets for %s (default %s):\n", s, config.DefaultPresets[s])
				for _, p := range presets {
					c := config.GetPreset(s, p)
					fmt.Printf("  %-8s dim=%s a=%g length=%g duration=%g nodes=%d\n",
						p, c.Dim, c.A, c.Length, c.Duration, c.Nodes)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, stabilityCmd, listCmd, showCmd, playCmd, deleteCmd,
		exportGIFCmd, exportSVGCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&dimFlag, "dim", config.DefaultDim, "dimensionality: 1, 2 or both")
	cmd.Flags().StringVar(&boundary, "boundary", config.DefaultBoundary, "boundary: fixed or zeroflux")
	cmd.Flags().Float64Var(&diffusion, "a", config.DefaultA, "thermal diffusivity")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	cmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "nodes per axis")
	cmd.Flags().Float64Var(&source, "q", 0, "center source strength (zeroflux)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 derives the stable bound)")
	cmd.Flags().BoolVar(&strictCFL, "strict", false, "reject a dt above the stability bound")
	cmd.Flags().BoolVar(&validate, "validate", false, "fail when the field goes non-finite")
	cmd.Flags().IntVar(&workers, "workers", 0, "stencil workers (0 uses every CPU)")
	cmd.Flags().IntVar(&every, "every", config.DefaultRecordEvery, "keep every nth snapshot")
}

// resolveConfig layers preset, config file and flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	scenario := config.DefaultScenario
	if len(args) > 0 {
		scenario = args[0]
	}

	name := preset
	if name == "" {
		name = config.DefaultPresets[scenario]
	}
	cfg := config.GetPreset(scenario, name)
	if cfg == nil {
		if preset != "" || len(config.ListPresets(scenario)) > 0 {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(scenario))
		}
		cfg = config.DefaultConfig()
		cfg.Scenario = scenario
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dim") {
		cfg.Dim = dimFlag
	}
	if flags.Changed("boundary") {
		cfg.Boundary = boundary
	}
	if flags.Changed("a") {
		cfg.A = diffusion
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("nodes") {
		cfg.Nodes = nodes
	}
	if flags.Changed("q") {
		cfg.Q = source
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("strict") {
		cfg.StrictCFL = strictCFL
	}
	if flags.Changed("validate") {
		cfg.ValidateField = validate
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("every") {
		cfg.RecordEvery = every
	}
	return cfg, nil
}

type runOutput struct {
	result  *heat.Result
	metrics map[string]float64
}

// simulate runs the dimensionalities cfg asks for. Paired runs go through
// heat.RecordPair and share the common stable dt unless one is given; each
// side records its own metrics.
func simulate(ctx context.Context, cfg *config.Config) ([]runOutput, error) {
	dims, err := cfg.Dims()
	if err != nil {
		return nil, err
	}

	sets := make(map[heat.Dim]*metrics.Set, len(dims))
	optsFor := func(dim heat.Dim) []heat.Option {
		sets[dim] = metrics.Default()
		return []heat.Option{
			heat.WithLogger(logger.With(zap.String("scenario", cfg.Scenario), zap.Stringer("dim", dim))),
			heat.WithObserver(sets[dim]),
		}
	}

	hc, err := cfg.HeatConfig(dims[0])
	if err != nil {
		return nil, err
	}

	var results []*heat.Result
	if cfg.Paired() {
		logger.Info("starting paired run", zap.Float64("dt", hc.Dt), zap.Int("nodes", hc.Nodes))
		pair, err := heat.RecordPair(ctx, hc, cfg.Stride(), optsFor)
		if err != nil {
			return nil, err
		}
		results = []*heat.Result{pair.OneD, pair.TwoD}
	} else {
		r, err := heat.NewRunner(hc, optsFor(hc.Dim)...)
		if err != nil {
			return nil, err
		}
		logger.Info("starting run",
			zap.Stringer("dim", hc.Dim),
			zap.Float64("dt", r.Dt()),
			zap.Int("steps", r.Steps()),
		)
		res, err := heat.Record(ctx, r, cfg.Stride())
		if err != nil {
			return nil, err
		}
		results = []*heat.Result{res}
	}

	outs := make([]runOutput, len(results))
	for i, res := range results {
		outs[i] = runOutput{result: res, metrics: sets[res.Config.Dim].Values()}
	}
	return outs, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s simulation (dim %s)...\n", cfg.Scenario, cfg.Dim)
	start := time.Now()

	outs, err := simulate(ctx, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)

	for _, out := range outs {
		meta := storage.NewMetadata(cfg.Scenario, out.result, out.metrics)
		runID, err := st.Save(ctx, meta, out.result.Snapshots)
		if err != nil {
			return err
		}
		logger.Info("saved run", zap.String("run_id", runID), zap.Int("frames", len(out.result.Snapshots)))

		fmt.Printf("\nrun id: %s\n", runID)
		fmt.Printf("dt: %.6g  steps: %d  frames: %d\n", out.result.Dt, out.result.Steps, len(out.result.Snapshots))
		printMetrics(out.metrics)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	outs, err := simulate(context.Background(), cfg)
	if err != nil {
		return err
	}

	panels := make([]render.Panel, len(outs))
	for i, out := range outs {
		panels[i] = render.Panel{
			Title:  strings.ToUpper(out.result.Config.Dim.String()),
			Frames: render.FramesOf(out.result),
		}
	}
	return render.Play(panels...)
}

func showStability(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	hc, err := cfg.HeatConfig(heat.Dim1)
	if err != nil {
		return err
	}

	dx := hc.Dx()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "a\t%g\n", hc.A)
	fmt.Fprintf(w, "dx\t%g\n", dx)
	fmt.Fprintln(w, "\nBOUND\tDT\tSTEPS")
	for _, row := range []struct {
		name string
		dt   float64
	}{
		{"1d", heat.MaxStableDt(heat.Dim1, hc.A, dx)},
		{"2d", heat.MaxStableDt(heat.Dim2, hc.A, dx)},
		{"common", heat.CommonDt(hc.A, dx)},
	} {
		fmt.Fprintf(w, "%s\t%.6g\t%d\n", row.name, row.dt, heat.StepCount(hc.Duration, row.dt))
	}
	if hc.Dt > 0 {
		for _, dim := range []heat.Dim{heat.Dim1, heat.Dim2} {
			status := "stable"
			if err := heat.CheckStable(dim, hc.A, dx, hc.Dt); err != nil {
				status = err.Error()
			}
			fmt.Fprintf(w, "dt %g (%s)\t%s\t\n", hc.Dt, dim, status)
		}
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tDIM\tBOUNDARY\tTIME\tNODES\tDURATION\tDT\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dd\t%s\t%s\t%d\t%.2fs\t%.4gs\t%d\n",
			run.ID,
			run.Scenario,
			run.Dim,
			run.Boundary,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Nodes,
			run.Duration,
			run.Dt,
			run.Recorded,
		)
	}

	return w.Flush()
}

// loadRun opens the store and loads one run with its frames.
func loadRun(ctx context.Context, runID string) (*storage.RunMetadata, []heat.Snapshot, error) {
	st, err := storage.Open(dataDir)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	meta, err := st.Load(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	snaps, err := st.LoadSnapshots(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(snaps) == 0 {
		return nil, nil, fmt.Errorf("run %s has no snapshots", runID)
	}
	return meta, snaps, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, snaps, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	frames := render.Frames(heat.Dim(meta.Dim), meta.Nodes, snaps)
	last := frames[len(frames)-1]

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%dd, %s)\n", meta.Scenario, meta.Dim, meta.Boundary)
	fmt.Printf("a=%g length=%g nodes=%d dt=%.6g steps=%d frames=%d\n\n",
		meta.A, meta.Length, meta.Nodes, meta.Dt, meta.Steps, len(frames))

	fmt.Println(render.CenterTrace(frames, len(frames)-1))
	fmt.Println()
	fmt.Println(render.Profile(last, render.DefaultScale))
	fmt.Println()
	if err := render.NewText(os.Stdout, "final").Render(last); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(render.Legend(render.DefaultScale, 40))
	fmt.Println("\nmetrics:")
	printMetrics(meta.Metrics)
	return nil
}

func playRuns(cmd *cobra.Command, args []string) error {
	panels := make([]render.Panel, 0, len(args))
	for _, runID := range args {
		meta, snaps, err := loadRun(cmd.Context(), runID)
		if err != nil {
			return err
		}
		panels = append(panels, render.Panel{
			Title:  meta.ID,
			Frames: render.Frames(heat.Dim(meta.Dim), meta.Nodes, snaps),
		})
	}
	return render.Play(panels...)
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func exportGIF(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, snaps, err := loadRun(cmd.Context(), runID)
	if err != nil {
		return err
	}

	out := outFile
	if out == "" {
		out = runID + ".gif"
	}

	g := render.NewGIF(cellSize, delay)
	if err := render.RenderAll(g, render.Frames(heat.Dim(meta.Dim), meta.Nodes, snaps)); err != nil {
		return err
	}
	if err := g.Save(out); err != nil {
		return fmt.Errorf("failed to save gif: %w", err)
	}

	logger.Info("exported gif", zap.String("run_id", runID), zap.String("file", out), zap.Int("frames", g.Len()))
	fmt.Printf("wrote %d frames to %s\n", g.Len(), out)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, snaps, err := loadRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	frames := render.Frames(heat.Dim(meta.Dim), meta.Nodes, snaps)

	prefix := outFile
	if prefix == "" {
		prefix = runID
	}
	files := []struct{ name, svg string }{
		{prefix + "_trace.svg", render.TraceSVG(frames)},
		{prefix + "_profile.svg", render.ProfileSVG(frames[len(frames)-1], render.DefaultScale)},
	}
	for _, f := range files {
		name, svg := f.name, f.svg
		if svg == "" {
			fmt.Printf("skipping %s: not enough frames\n", name)
			continue
		}
		if err := os.WriteFile(name, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", name)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, snaps, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range snaps[0].Field {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range snaps {
		row := []string{strconv.FormatFloat(s.Time, 'f', 6, 64)}
		for _, val := range s.Field {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, snaps, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, snaps)
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}
