package main

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/skm-lab/zetadyn/internal/config"
	"github.com/skm-lab/zetadyn/internal/dimension"
	"github.com/skm-lab/zetadyn/internal/distribution"
	"github.com/skm-lab/zetadyn/internal/export"
	"github.com/skm-lab/zetadyn/internal/ifs"
	"github.com/skm-lab/zetadyn/internal/registry"
	"github.com/skm-lab/zetadyn/internal/spectral"
	"github.com/skm-lab/zetadyn/internal/symbolic"
	"github.com/skm-lab/zetadyn/internal/zeta"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	kind       string
	order      int
	workers    int
	// system parameters
	width    float64
	outerLen float64
	innerLen float64
	angle    float64
	twist    float64
	funnels  int
	branches int
	rotated  bool
	symm     bool
	// search domain
	reMin float64
	reMax float64
	imMin float64
	imMax float64
	// output
	outFile string
	points  int
	from    float64
	to      float64
	// cross validation
	crossCheck bool
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaa00"))
	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zetadyn",
		Short: "resonances of hyperbolic surfaces via zeta determinants",
	}

	resCmd := &cobra.Command{
		Use:   "resonances [system]",
		Short: "locate resonances in a complex domain",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runResonances,
	}
	addSystemFlags(resCmd)
	addDomainFlags(resCmd)
	resCmd.Flags().StringVar(&outFile, "out", "", "write results to file (.json, .csv or .svg)")

	dimCmd := &cobra.Command{
		Use:   "dimension [system]",
		Short: "Hausdorff dimension of the limit set",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDimension,
	}
	addSystemFlags(dimCmd)
	addDomainFlags(dimCmd)
	dimCmd.Flags().BoolVar(&crossCheck, "cross-validate", false, "compare against the leading resonance")

	distCmd := &cobra.Command{
		Use:   "distribution [system]",
		Short: "invariant distributions at the located resonances",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDistribution,
	}
	addSystemFlags(distCmd)
	addDomainFlags(distCmd)

	traceCmd := &cobra.Command{
		Use:   "trace [system]",
		Short: "plot the determinant modulus on the real axis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	addSystemFlags(traceCmd)
	traceCmd.Flags().Float64Var(&from, "from", 0.0, "left end of the real interval")
	traceCmd.Flags().Float64Var(&to, "to", 1.0, "right end of the real interval")
	traceCmd.Flags().IntVar(&points, "points", 200, "sample count")
	traceCmd.Flags().StringVar(&outFile, "out", "", "write plot to an svg file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list systems and presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(resCmd, dimCmd, distCmd, traceCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&kind, "kind", "selberg", "zeta kind (selberg|flow)")
	cmd.Flags().IntVar(&order, "order", config.DefaultOrder, "truncation order")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 = all CPUs)")
	cmd.Flags().Float64Var(&width, "width", 5.0, "funnel or cylinder width")
	cmd.Flags().Float64Var(&outerLen, "outer", 6.0, "outer geodesic length (torus)")
	cmd.Flags().Float64Var(&innerLen, "inner", 6.0, "inner geodesic length (torus)")
	cmd.Flags().Float64Var(&angle, "angle", math.Pi/2, "intersection angle (torus)")
	cmd.Flags().Float64Var(&twist, "twist", 0.0, "twist (geometric torus)")
	cmd.Flags().IntVar(&funnels, "funnels", 3, "funnel count (n_funnel)")
	cmd.Flags().IntVar(&branches, "branches", 2, "branch count (gauss)")
	cmd.Flags().BoolVar(&rotated, "rotated", true, "use the bounded-interval cylinder model")
	cmd.Flags().BoolVar(&symm, "symmetry", false, "reduce by the rotational symmetry (n_funnel)")
}

func addDomainFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&reMin, "re-min", -1, "domain lower real bound")
	cmd.Flags().Float64Var(&reMax, "re-max", 1, "domain upper real bound")
	cmd.Flags().Float64Var(&imMin, "im-min", -2, "domain lower imaginary bound")
	cmd.Flags().Float64Var(&imMax, "im-max", 2, "domain upper imaginary bound")
}

// loadConfig resolves the configuration: an explicit file or preset first,
// then flags override whatever they were set on.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	system := ""
	if len(args) == 1 {
		system = args[0]
	}

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		if system == "" {
			return nil, fmt.Errorf("preset %q needs a system argument", preset)
		}
		p := config.GetPreset(system, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %s/%s", system, preset)
		}
		copied := *p
		cfg = &copied
	default:
		cfg = config.DefaultConfig()
	}

	if system != "" {
		cfg.System = system
	}
	if cmd.Flags().Changed("kind") || cfg.Kind == "" {
		cfg.Kind = kind
	}
	if cmd.Flags().Changed("order") || cfg.Order == 0 {
		cfg.Order = order
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("symmetry") {
		cfg.UseSymmetry = symm
	}
	if cmd.Flags().Changed("width") {
		cfg.Params.Width = width
	}
	if cmd.Flags().Changed("outer") {
		cfg.Params.OuterLen = outerLen
	}
	if cmd.Flags().Changed("inner") {
		cfg.Params.InnerLen = innerLen
	}
	if cmd.Flags().Changed("angle") {
		cfg.Params.Angle = angle
	}
	if cmd.Flags().Changed("twist") {
		cfg.Params.Twist = twist
	}
	if cmd.Flags().Changed("funnels") {
		cfg.Params.Funnels = funnels
	}
	if cmd.Flags().Changed("branches") {
		cfg.Params.Branches = branches
	}
	if cmd.Flags().Changed("rotated") {
		cfg.Params.Rotated = rotated
	}
	for flag, dst := range map[string]*float64{
		"re-min": &cfg.Domain.ReMin, "re-max": &cfg.Domain.ReMax,
		"im-min": &cfg.Domain.ImMin, "im-max": &cfg.Domain.ImMax,
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			v, err := cmd.Flags().GetFloat64(flag)
			if err != nil {
				return nil, err
			}
			*dst = v
		}
	}
	return cfg, nil
}

// buildZeta constructs the determinant for a configuration. withWeights
// attaches Poincare section weights, which needs a system with bounded
// fundamental intervals.
func buildZeta(ctx context.Context, cfg *config.Config, withWeights bool) (*zeta.Zeta, error) {
	reg := registry.NewRegistry()
	inst, err := reg.GetSystem(cfg)
	if err != nil {
		return nil, err
	}
	zk, err := reg.GetKind(cfg.Kind)
	if err != nil {
		return nil, err
	}
	dyn, err := symbolic.New(inst.System.Adjacency())
	if err != nil {
		return nil, err
	}
	red, err := symbolic.NewReduced(dyn, inst.Group)
	if err != nil {
		return nil, err
	}

	var wp ifs.WeightProvider
	if withWeights {
		if inst.Map == nil {
			return nil, fmt.Errorf("system %s has no interval model for weights", cfg.System)
		}
		ivs, err := inst.Map.FundamentalIntervals()
		if err != nil {
			return nil, err
		}
		support := cfg.Weights.Support
		if support <= 0 {
			support = config.DefaultSupport
		}
		sigma := cfg.Weights.Sigma
		if sigma <= 0 {
			sigma = config.DefaultSigma
		}
		sup := ifs.SupportPoints(ivs, support)
		wp, err = ifs.NewPoincareWeights(inst.Map, sup, sup, sigma, sigma)
		if err != nil {
			return nil, err
		}
	}

	data, err := zeta.BuildCycleData(ctx, inst.System, red, cfg.Order, wp, cfg.Workers)
	if err != nil {
		return nil, err
	}
	return zeta.New(data, zk), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runResonances(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s zeta, system %s, order %d", cfg.Kind, cfg.System, cfg.Order)))
	start := time.Now()
	z, err := buildZeta(ctx, cfg, false)
	if err != nil {
		return err
	}
	res, err := spectral.FindResonances(ctx, z, cfg.GetDomain(), cfg.GetSearchOptions())
	if err != nil {
		return err
	}
	fmt.Printf("searched %v in %v\n\n", cfg.GetDomain(), time.Since(start).Round(time.Millisecond))

	printResonances(res)
	if outFile != "" {
		return writeResonances(outFile, cfg, res)
	}
	return nil
}

func printResonances(res *spectral.Result) {
	sorted := append([]spectral.Resonance(nil), res.Resonances...)
	sort.Slice(sorted, func(i, j int) bool {
		if real(sorted[i].S) != real(sorted[j].S) {
			return real(sorted[i].S) > real(sorted[j].S)
		}
		return imag(sorted[i].S) < imag(sorted[j].S)
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RE\tIM\tMULT")
	for _, r := range sorted {
		fmt.Fprintf(w, "%.10f\t%.10f\t%d\n", real(r.S), imag(r.S), r.Multiplicity)
	}
	w.Flush()
	fmt.Printf("\n%d resonances\n", len(sorted))

	for _, warn := range res.Warnings {
		fmt.Println(warnStyle.Render("warning: " + warn.String()))
	}
}

func writeResonances(path string, cfg *config.Config, res *spectral.Result) error {
	set := export.NewResonanceSet(cfg.System, cfg.Kind, cfg.Order, cfg.GetDomain(), res)
	switch ext := filepath.Ext(path); ext {
	case ".json":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return export.WriteJSON(f, set)
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return export.WriteCSV(f, set)
	case ".svg":
		return os.WriteFile(path, []byte(export.ScatterSVG(set, 800, 600)), 0644)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

func runDimension(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	z, err := buildZeta(ctx, cfg, false)
	if err != nil {
		return err
	}
	tol := cfg.RootTolerance
	if tol <= 0 {
		tol = config.DefaultRootTolerance
	}

	if crossCheck {
		res, err := spectral.FindResonances(ctx, z, cfg.GetDomain(), cfg.GetSearchOptions())
		if err != nil {
			return err
		}
		rep, err := dimension.CrossValidate(z, res.Resonances, 1e-6)
		if err != nil {
			return err
		}
		fmt.Printf("pressure zero:     %s\n", valueStyle.Render(fmt.Sprintf("%.10f", rep.Pressure)))
		fmt.Printf("leading resonance: %s\n", valueStyle.Render(fmt.Sprintf("%.10f", rep.Resonance)))
		if rep.Agree {
			fmt.Println("readings agree")
		} else {
			fmt.Println(warnStyle.Render(fmt.Sprintf("readings differ by %.3g", rep.Diff)))
		}
		return nil
	}

	dim, err := dimension.FromPressure(z, tol)
	if err != nil {
		return err
	}
	fmt.Printf("dimension: %s\n", valueStyle.Render(fmt.Sprintf("%.10f", dim)))
	return nil
}

func runDistribution(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	z, err := buildZeta(ctx, cfg, true)
	if err != nil {
		return err
	}
	res, err := spectral.FindResonances(ctx, z, cfg.GetDomain(), cfg.GetSearchOptions())
	if err != nil {
		return err
	}
	if len(res.Resonances) == 0 {
		return fmt.Errorf("no resonances in %v", cfg.GetDomain())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RESONANCE\tMULT\tGRID\t|VALUES|")
	for _, r := range res.Resonances {
		dist, err := distribution.At(z, r, 2*r.Multiplicity-1)
		if err != nil {
			fmt.Fprintf(w, "%.6f%+.6fi\t%d\t-\t%v\n", real(r.S), imag(r.S), r.Multiplicity, err)
			continue
		}
		var lo, hi float64 = math.Inf(1), math.Inf(-1)
		for _, v := range dist.Values {
			a := cmplx.Abs(v)
			if a < lo {
				lo = a
			}
			if a > hi {
				hi = a
			}
		}
		fmt.Fprintf(w, "%.6f%+.6fi\t%d\t%d\t%.3g .. %.3g\n",
			real(r.S), imag(r.S), r.Multiplicity, len(dist.Values), lo, hi)
	}
	w.Flush()
	for _, warn := range res.Warnings {
		fmt.Println(warnStyle.Render("warning: " + warn.String()))
	}
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	z, err := buildZeta(ctx, cfg, false)
	if err != nil {
		return err
	}
	if points < 2 {
		return fmt.Errorf("need at least 2 sample points")
	}
	if to <= from {
		return fmt.Errorf("empty interval [%v, %v]", from, to)
	}

	xs := make([]float64, points)
	vals := make([]float64, points)
	for i := 0; i < points; i++ {
		x := from + (to-from)*float64(i)/float64(points-1)
		xs[i] = x
		vals[i] = cmplx.Abs(z.Eval(complex(x, 0)))
	}

	graph := asciigraph.Plot(vals,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("|Z(s)| for s in [%.3g, %.3g], %s zeta", from, to, cfg.Kind)))
	fmt.Println(graph)

	if outFile != "" {
		return os.WriteFile(outFile, []byte(export.TraceSVG(xs, vals, 800, 300)), 0644)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	reg := registry.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYSTEM\tPRESETS")
	for _, name := range reg.ListSystems() {
		presets := config.ListPresets(name)
		sort.Strings(presets)
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(presets, ", "))
	}
	return w.Flush()
}
