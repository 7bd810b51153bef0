package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/bracket/internal/batch"
	"github.com/san-kum/bracket/internal/config"
	"github.com/san-kum/bracket/internal/dynamo"
	"github.com/san-kum/bracket/internal/events"
	"github.com/san-kum/bracket/internal/export"
	"github.com/san-kum/bracket/internal/expr"
	"github.com/san-kum/bracket/internal/integrators"
	"github.com/san-kum/bracket/internal/interp"
	"github.com/san-kum/bracket/internal/metrics"
	"github.com/san-kum/bracket/internal/models"
	"github.com/san-kum/bracket/internal/report"
	"github.com/san-kum/bracket/internal/roots"
	"github.com/san-kum/bracket/internal/scan"
	"github.com/san-kum/bracket/internal/storage"
	"github.com/san-kum/bracket/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string

	// problem and solver
	exprSrc string
	preset  string
	lower   float64
	upper   float64
	maxIter int
	tol     float64
	save    bool
	watch   bool

	// export
	format  string
	outFile string

	// ode
	model       string
	integNames  []string
	t0          float64
	t1          float64
	steps       int
	y0          float64
	rate        float64
	outDir      string
	writeSVG    bool
	crossing    float64
	eventMethod string
	every       int

	// interp
	evalAt []float64

	// scan
	points int

	appCfg = config.DefaultConfig()
	logger = zap.NewNop()
)

// main registers the bracket commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "bracket",
		Short:        "bracketing root finders and numerical demos",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				cfg, err := config.Load(configFile)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				appCfg = cfg
				if !cmd.Flags().Changed("data") {
					dataDir = cfg.DataDir
				}
				if !cmd.Flags().Changed("verbose") {
					verbose = cfg.Verbose
				}
			}

			zc := zap.NewProductionConfig()
			zc.Encoding = "console"
			zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every iteration")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")

	solveCmd := &cobra.Command{
		Use:   "solve [method]",
		Short: "find a root with bisection, regula-falsi or shifter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addProblemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	solveCmd.Flags().BoolVar(&watch, "watch", false, "replay the iterations when done")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run every method on the same problem",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	addProblemFlags(compareCmd)
	compareCmd.Flags().BoolVar(&save, "save", false, "save every run to the data directory")

	scanCmd := &cobra.Command{
		Use:   "scan [method]",
		Short: "find every sign change on a grid and solve each bracket",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	addProblemFlags(scanCmd)
	scanCmd.Flags().IntVar(&points, "points", 100, "number of grid cells")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot the residual and bracket width of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&watch, "watch", false, "replay the iterations")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as csv or json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	odeCmd := &cobra.Command{
		Use:   "ode",
		Short: "integrate a test ODE and write one .dat file per integrator",
		Args:  cobra.NoArgs,
		RunE:  runODE,
	}
	odeCmd.Flags().StringVar(&model, "model", config.DefaultModel, "decay or oscillator")
	odeCmd.Flags().StringSliceVar(&integNames, "integrator", []string{"euler", "heun"}, "integrators to run ("+strings.Join(integrators.Names(), ", ")+")")
	odeCmd.Flags().Float64Var(&t0, "t0", 0, "initial time")
	odeCmd.Flags().Float64Var(&t1, "t1", config.DefaultT1, "final time")
	odeCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of intervals")
	odeCmd.Flags().Float64Var(&y0, "y0", config.DefaultY0, "initial value")
	odeCmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "decay rate or angular frequency")
	odeCmd.Flags().StringVar(&outDir, "out", ".", "output directory for .dat files")
	odeCmd.Flags().BoolVar(&writeSVG, "svg", false, "also write an svg plot per integrator")
	odeCmd.Flags().Float64Var(&crossing, "crossing", 0, "report the times the solution crosses this level")
	odeCmd.Flags().StringVar(&eventMethod, "method", "shifter", "root finder used to refine crossings")
	odeCmd.Flags().IntVar(&every, "every", 32, "print every n-th sample")

	interpCmd := &cobra.Command{
		Use:   "interp",
		Short: "cubic Lagrange interpolation of the sample dataset",
		Args:  cobra.NoArgs,
		RunE:  runInterp,
	}
	interpCmd.Flags().Float64SliceVar(&evalAt, "at", nil, "evaluate the polynomial at these points")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "solve every problem in a yaml batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list the named test problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLOWER\tUPPER\tEXPR")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%s\n", name, p.Lower, p.Upper, p.Expr)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration to a yaml or toml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(solveCmd, compareCmd, scanCmd, listCmd, showCmd, exportCmd, odeCmd, interpCmd, batchCmd, presetsCmd, initCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&exprSrc, "expr", "e", "", "function of x, e.g. \"x**2 - 2\" (exponent notation such as 1e-3 is accepted)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "named problem (see presets)")
	cmd.Flags().Float64Var(&lower, "lower", 0, "lower bound")
	cmd.Flags().Float64Var(&upper, "upper", 0, "upper bound")
	cmd.Flags().IntVar(&maxIter, "max-iter", roots.DefaultMaxIter, "maximum iterations")
	cmd.Flags().Float64Var(&tol, "tol", roots.DefaultTol, "residual tolerance")
}

// resolveProblem layers the preset and then explicit flags over the config.
func resolveProblem(cmd *cobra.Command) (config.ProblemConfig, *expr.Expr, error) {
	p := appCfg.Problem
	if preset != "" {
		pp, ok := config.GetPreset(preset)
		if !ok {
			return p, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p = pp
	}
	if cmd.Flags().Changed("expr") {
		p.Expr = exprSrc
	}
	if cmd.Flags().Changed("lower") {
		p.Lower = lower
	}
	if cmd.Flags().Changed("upper") {
		p.Upper = upper
	}

	e, err := expr.Compile(p.Expr)
	if err != nil {
		return p, nil, err
	}
	return p, e, nil
}

func solverConfig(cmd *cobra.Command) roots.Config {
	rc := appCfg.RootsConfig()
	if cmd.Flags().Changed("max-iter") {
		rc.MaxIter = maxIter
	}
	if cmd.Flags().Changed("tol") {
		rc.Tol = tol
	}
	rc.Logger = logger
	return rc
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	name := appCfg.Solver.Method
	if len(args) > 0 {
		name = args[0]
	}
	m, err := roots.ParseMethod(name)
	if err != nil {
		return err
	}

	p, e, err := resolveProblem(cmd)
	if err != nil {
		return err
	}

	rc := solverConfig(cmd)
	trace := &roots.Trace{}
	rc.Observer = trace

	fmt.Printf("solving %s = 0 on [%g, %g]\n", e, p.Lower, p.Upper)
	res, solveErr := roots.Solve(m, p.Lower, p.Upper, e.Func(), rc)
	report.New(os.Stdout).Result(res, solveErr)

	if save {
		st, err := openStore()
		if err != nil {
			return err
		}
		runID, err := st.Save(storage.Run{
			Expr:    e.String(),
			Lower:   p.Lower,
			Upper:   p.Upper,
			MaxIter: rc.MaxIter,
			Tol:     rc.Tol,
			Result:  res,
			Err:     solveErr,
			Trace:   trace.States,
		})
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}

	if watch && trace.Len() > 0 {
		title := fmt.Sprintf("%s on %s", m, e)
		if err := viz.Run(title, roots.Interval{Lower: p.Lower, Upper: p.Upper}, trace.States); err != nil {
			return err
		}
	}

	if solveErr != nil {
		return fmt.Errorf("%s: %w", m, solveErr)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	p, e, err := resolveProblem(cmd)
	if err != nil {
		return err
	}

	methods := roots.Methods()
	traces := make([]*roots.Trace, len(methods))
	widths := make([]*metrics.WidthRatio, len(methods))
	rates := make([]*metrics.ResidualRate, len(methods))
	jobs := make([]roots.Job, len(methods))
	for i, m := range methods {
		traces[i] = &roots.Trace{}
		widths[i] = metrics.NewWidthRatio()
		rates[i] = metrics.NewResidualRate()
		rc := solverConfig(cmd)
		rc.Observer = metrics.Observers{traces[i], widths[i], rates[i]}
		rc.Logger = logger.With(zap.Stringer("method", m))
		jobs[i] = roots.Job{
			Name:   m.String(),
			Method: m,
			Lower:  p.Lower,
			Upper:  p.Upper,
			F:      e.Func(),
			Config: rc,
		}
	}

	fmt.Printf("comparing methods on %s = 0, [%g, %g]\n\n", e, p.Lower, p.Upper)
	outcomes := roots.SolveAll(cmd.Context(), jobs, 0)
	if err := report.New(os.Stdout).Table(outcomes); err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD	WIDTH RATIO	RESIDUAL RATE")
	for i, m := range methods {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", m, widths[i].Value(), rates[i].Value())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !save {
		return nil
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	for i, o := range outcomes {
		runID, err := st.Save(storage.Run{
			Expr:    e.String(),
			Lower:   p.Lower,
			Upper:   p.Upper,
			MaxIter: jobs[i].Config.MaxIter,
			Tol:     jobs[i].Config.Tol,
			Result:  o.Result,
			Err:     o.Err,
			Trace:   traces[i].States,
		})
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	name := appCfg.Solver.Method
	if len(args) > 0 {
		name = args[0]
	}
	m, err := roots.ParseMethod(name)
	if err != nil {
		return err
	}

	p, e, err := resolveProblem(cmd)
	if err != nil {
		return err
	}

	g := scan.NewGrid(p.Lower, p.Upper, points)
	brackets, err := g.Brackets(cmd.Context(), e.Func())
	if err != nil {
		return err
	}
	fmt.Printf("%s = 0 on [%g, %g]: %d sign changes in %d cells\n\n", e, g.Lower, g.Upper, len(brackets), g.Points)
	if len(brackets) == 0 {
		return nil
	}

	jobs, exact := scan.Jobs("root", brackets, m, e.Func(), solverConfig(cmd))
	for _, x := range exact {
		fmt.Printf("exact root on the grid: %.15g\n", x)
	}
	return report.New(os.Stdout).Table(roots.SolveAll(cmd.Context(), jobs, 0))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tTIME\tEXPR\tROOT\tITER\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if !run.Converged {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.10g\t%d\t%s\n",
			run.ID,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Expr,
			run.Root,
			run.Iterations,
			status,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir, logger)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if watch {
		title := fmt.Sprintf("%s on %s", meta.Method, meta.Expr)
		return viz.Run(title, roots.Interval{Lower: meta.Lower, Upper: meta.Upper}, states)
	}

	fmt.Printf("run:        %s\n", meta.ID)
	fmt.Printf("method:     %s\n", meta.Method)
	fmt.Printf("problem:    %s = 0 on [%g, %g]\n", meta.Expr, meta.Lower, meta.Upper)
	fmt.Printf("root:       %.15g\n", meta.Root)
	fmt.Printf("iterations: %d (max %d, tol %g)\n", meta.Iterations, meta.MaxIter, meta.Tol)
	if meta.Error != "" {
		fmt.Printf("error:      %s\n", meta.Error)
	}

	if len(states) < 2 {
		return nil
	}

	trace := roots.Trace{States: states}
	fmt.Println()
	fmt.Println(asciigraph.Plot(log10All(trace.Residuals()),
		asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("log10 |f(x)|")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(log10All(trace.Widths()),
		asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("log10 bracket width")))
	return nil
}

// log10All clamps zero and non-finite values so asciigraph can plot them.
func log10All(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			out[i] = 0
		case v <= 0:
			out[i] = -17
		default:
			out[i] = math.Max(math.Log10(v), -17)
		}
	}
	return out
}

func exportRun(cmd *cobra.Command, args []string) (err error) {
	runID := args[0]
	st := storage.New(dataDir, logger)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	w := os.Stdout
	if outFile != "" {
		var f *os.File
		f, err = os.Create(outFile)
		if err != nil {
			return &export.IOError{Op: "create", Path: outFile, Err: err}
		}
		defer export.CloseFile(f, outFile, &err)
		w = f
	}

	switch format {
	case "csv":
		return export.TraceCSV(w, states)
	case "json":
		return export.JSON(w, export.TraceData{
			ID:         meta.ID,
			Method:     meta.Method,
			Expr:       meta.Expr,
			Lower:      meta.Lower,
			Upper:      meta.Upper,
			Root:       meta.Root,
			Iterations: meta.Iterations,
			Residual:   meta.Residual,
			Converged:  meta.Converged,
			Steps:      states,
		})
	default:
		return fmt.Errorf("unknown format: %s (available: csv, json)", format)
	}
}

func runODE(cmd *cobra.Command, args []string) error {
	oc := appCfg.ODE
	if cmd.Flags().Changed("model") || oc.Model == "" {
		oc.Model = model
	}
	if configFile != "" && !cmd.Flags().Changed("integrator") && oc.Integrator != "" {
		integNames = []string{oc.Integrator}
	}
	if cmd.Flags().Changed("t0") {
		oc.T0 = t0
	}
	if cmd.Flags().Changed("t1") {
		oc.T1 = t1
	}
	if cmd.Flags().Changed("steps") {
		oc.Steps = steps
	}
	if cmd.Flags().Changed("y0") {
		oc.Y0 = y0
	}
	if cmd.Flags().Changed("rate") {
		oc.Rate = rate
	}
	if cmd.Flags().Changed("out") {
		oc.Output = outDir
	}
	if cmd.Flags().Changed("crossing") {
		oc.Crossing = &crossing
	}

	if len(integNames) == 0 {
		return fmt.Errorf("no integrator given (available: %v)", integrators.Names())
	}
	sys, err := models.Get(oc.Model, oc.Rate)
	if err != nil {
		return err
	}
	x0 := make(dynamo.State, sys.StateDim())
	x0[0] = oc.Y0

	dcfg := dynamo.DefaultConfig()
	dcfg.T0, dcfg.T1, dcfg.Steps = oc.T0, oc.T1, oc.Steps

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	exact, _ := sys.(dynamo.Solution)

	results := make([]*dynamo.Result, 0, len(integNames))
	summaries := make([][]metrics.Metric, 0, len(integNames))
	for _, name := range integNames {
		integ, err := integrators.Get(name)
		if err != nil {
			return err
		}
		sim := dynamo.New(sys, integ)
		var ms []metrics.Metric
		if exact != nil {
			me := metrics.NewMaxError(exact, x0)
			sim.AddObserver(me)
			ms = append(ms, me)
		}
		if _, ok := sys.(dynamo.Hamiltonian); ok {
			ed := metrics.NewEnergyDrift(sys)
			sim.AddObserver(ed)
			ms = append(ms, ed)
		}

		res, err := sim.Run(ctx, x0, dcfg)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		results = append(results, res)
		summaries = append(summaries, ms)

		ys := res.Component(0)
		path := filepath.Join(oc.Output, name+".dat")
		if err := export.WriteDat(path, res.Times, ys); err != nil {
			return err
		}
		logger.Debug("wrote solution", zap.String("integrator", name), zap.String("path", path))

		if writeSVG {
			svg := export.LineSVG(res.Times, ys, 800, 400, "#00ff88")
			svgPath := filepath.Join(oc.Output, name+".svg")
			if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
				return &export.IOError{Op: "write", Path: svgPath, Err: err}
			}
		}
	}

	displayODE(results, x0, exact)

	fmt.Println()
	for i, ms := range summaries {
		for _, m := range ms {
			fmt.Printf("  %-6s %-12s %.3e\n", integNames[i], m.Name(), m.Value())
		}
	}

	if oc.Crossing != nil {
		m, err := roots.ParseMethod(eventMethod)
		if err != nil {
			return err
		}
		return reportCrossings(results, x0, exact, m, *oc.Crossing)
	}
	return nil
}

// displayODE prints t, each numerical solution and its absolute error for
// every n-th sample and the last one.
func displayODE(results []*dynamo.Result, x0 dynamo.State, exact dynamo.Solution) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"t"}
	if exact != nil {
		header = append(header, "exact")
	}
	for _, name := range integNames {
		header = append(header, name)
		if exact != nil {
			header = append(header, "|err|")
		}
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	n := len(results[0].Times)
	stride := max(every, 1)
	for i := 0; i < n; i++ {
		if i%stride != 0 && i != n-1 {
			continue
		}
		t := results[0].Times[i]
		row := []string{fmt.Sprintf("%.4f", t)}
		var ref float64
		if exact != nil {
			ref = exact.Exact(x0, t)[0]
			row = append(row, fmt.Sprintf("%.10f", ref))
		}
		for _, res := range results {
			y := res.States[i][0]
			row = append(row, fmt.Sprintf("%.10f", y))
			if exact != nil {
				row = append(row, fmt.Sprintf("%.3e", math.Abs(y-ref)))
			}
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func reportCrossings(results []*dynamo.Result, x0 dynamo.State, exact dynamo.Solution, m roots.Method, level float64) error {
	fd := events.NewFinder(m)
	fd.Config.Logger = logger
	dt := results[0].Times[1] - results[0].Times[0]

	fmt.Printf("\ncrossings of %g (%s):\n", level, m)
	for i, res := range results {
		evs, err := fd.Find(res, 0, level)
		if err != nil {
			return fmt.Errorf("%s: %w", integNames[i], err)
		}
		if len(evs) == 0 {
			fmt.Printf("  %-6s none\n", integNames[i])
			continue
		}
		for _, ev := range evs {
			dir := "falling"
			if ev.Rising {
				dir = "rising"
			}
			status := fmt.Sprintf("%d iterations", ev.Iterations)
			if !ev.Converged {
				status += ", not converged"
			}
			line := fmt.Sprintf("  %-6s t = %.10f  %s  (%s)", integNames[i], ev.Time, dir, status)
			if exact != nil {
				g := func(t float64) float64 { return exact.Exact(x0, t)[0] - level }
				if ref, err := roots.Solve(m, ev.Time-dt, ev.Time+dt, g, fd.Config); err == nil {
					line += fmt.Sprintf("  exact %.10f  |err| %.3e", ref.Root, math.Abs(ev.Time-ref.Root))
				}
			}
			fmt.Println(line)
		}
	}
	return nil
}

// The dataset of the cubic interpolation demo.
var (
	interpXs = []float64{-1.2, 0.2, 2.0, 3.5}
	interpYs = []float64{18.8, 5.0, 16.0, 15.0}
)

func runInterp(cmd *cobra.Command, args []string) error {
	p, err := interp.Lagrange(interpXs, interpYs)
	if err != nil {
		return err
	}

	fmt.Printf("degree %d Lagrange polynomial through %d points\n\n", p.Degree(), len(interpXs))
	fmt.Println("Differences:")
	for _, d := range p.Residuals(interpXs, interpYs) {
		fmt.Printf("%.12f\n", math.Abs(d))
	}

	if len(evalAt) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "x\tp(x)")
		for _, x := range evalAt {
			fmt.Fprintf(w, "%g\t%.12f\n", x, p.Eval(x))
		}
		return w.Flush()
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := batch.Load(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if b.Description != "" {
		fmt.Printf("%s: %s\n\n", b.Name, b.Description)
	}
	outcomes, err := batch.Run(ctx, b, logger)
	if err != nil {
		return err
	}
	if err := report.New(os.Stdout).Table(outcomes); err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	fmt.Printf("\n%d of %d solved\n", len(outcomes)-failed, len(outcomes))
	return nil
}
