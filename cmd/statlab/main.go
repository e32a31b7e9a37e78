package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/statlab/internal/anneal"
	"github.com/san-kum/statlab/internal/config"
	"github.com/san-kum/statlab/internal/dataset"
	"github.com/san-kum/statlab/internal/experiment"
	"github.com/san-kum/statlab/internal/export"
	"github.com/san-kum/statlab/internal/mixture"
	"github.com/san-kum/statlab/internal/optim"
	"github.com/san-kum/statlab/internal/storage"
	"github.com/san-kum/statlab/internal/viz"
)

var (
	dataDir     string
	dataFile    string
	components  int
	tol         float64
	maxIter     int
	initName    string
	restarts    int
	standardize bool
	proposal    string
	sigma       float64
	samples     int
	temp        float64
	alpha       float64
	gridSize    int
	seed        int64
	configFile  string
	preset      string
	progress    bool
	// landscape temperature series
	bathTemp  float64
	bathSteps int
	// svg export
	svgSize int
	svgOut  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "statlab",
		Short: "mixture fitting and annealing lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".statlab", "data directory")

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "fit a Gaussian mixture by EM",
		RunE:  runFit,
	}
	fitCmd.Flags().StringVar(&dataFile, "file", "", "local dataset file (default: fetch Old Faithful)")
	fitCmd.Flags().IntVar(&components, "components", config.DefaultComponents, "mixture components")
	fitCmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "convergence tolerance")
	fitCmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "iteration cap")
	fitCmd.Flags().StringVar(&initName, "init", "random", "initializer (random, kmeans)")
	fitCmd.Flags().IntVar(&restarts, "restarts", config.DefaultRestarts, "kmeans restarts")
	fitCmd.Flags().BoolVar(&standardize, "standardize", false, "standardize features before fitting")
	fitCmd.Flags().Int64Var(&seed, "seed", 442, "random seed")
	fitCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	fitCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	kmeansCmd := &cobra.Command{
		Use:   "kmeans",
		Short: "cluster the dataset with k-means",
		RunE:  runKMeans,
	}
	kmeansCmd.Flags().StringVar(&dataFile, "file", "", "local dataset file (default: fetch Old Faithful)")
	kmeansCmd.Flags().IntVar(&components, "clusters", config.DefaultComponents, "number of clusters")
	kmeansCmd.Flags().IntVar(&restarts, "restarts", config.DefaultRestarts, "random restarts")
	kmeansCmd.Flags().Int64Var(&seed, "seed", 40, "random seed")

	annealCmd := &cobra.Command{
		Use:   "anneal",
		Short: "run simulated annealing over the peaks landscape",
		RunE:  runAnneal,
	}
	annealCmd.Flags().StringVar(&proposal, "proposal", "gaussian", "proposal kernel (gaussian, uniform)")
	annealCmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "gaussian proposal stddev")
	annealCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "sample budget")
	annealCmd.Flags().Float64Var(&temp, "temp", config.DefaultTemp, "start temperature")
	annealCmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "geometric cooling rate")
	annealCmd.Flags().IntVar(&gridSize, "grid", config.DefaultGridSize, "landscape grid size")
	annealCmd.Flags().Int64Var(&seed, "seed", 25, "random seed")
	annealCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	annealCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	annealCmd.Flags().BoolVar(&progress, "progress", false, "print progress during the run")

	landscapeCmd := &cobra.Command{
		Use:   "landscape",
		Short: "render the peaks density, energy and heat bath",
		RunE:  showLandscape,
	}
	landscapeCmd.Flags().IntVar(&gridSize, "grid", config.DefaultGridSize, "landscape grid size")
	landscapeCmd.Flags().Float64Var(&bathTemp, "bath-temp", 16.0, "heat bath start temperature")
	landscapeCmd.Flags().IntVar(&bathSteps, "bath-steps", 4, "heat bath halvings to render")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	traceCmd := &cobra.Command{
		Use:   "trace [run_id]",
		Short: "render an annealing walk over the landscape",
		Args:  cobra.ExactArgs(1),
		RunE:  traceRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run history to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run history to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export an annealing walk to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 600, "image size in pixels")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the annealing walker live",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&proposal, "proposal", "gaussian", "proposal kernel")
	liveCmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "gaussian proposal stddev")
	liveCmd.Flags().IntVar(&samples, "samples", 2000, "sample budget")
	liveCmd.Flags().Float64Var(&temp, "temp", config.DefaultTemp, "start temperature")
	liveCmd.Flags().Float64Var(&alpha, "alpha", 0.999, "geometric cooling rate")
	liveCmd.Flags().IntVar(&gridSize, "grid", config.DefaultGridSize, "landscape grid size")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	compareCmd := &cobra.Command{
		Use:   "compare [proposal1] [proposal2] ...",
		Short: "compare proposal kernels on the same landscape",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareProposals,
	}
	compareCmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "gaussian proposal stddev")
	compareCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "sample budget")
	compareCmd.Flags().Int64Var(&seed, "seed", 25, "random seed")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search sigma and cooling rate",
		RunE:  tuneAnnealer,
	}
	tuneCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "sample budget per trial")
	tuneCmd.Flags().Int64Var(&seed, "seed", 25, "random seed")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark annealing throughput",
		RunE:  benchAnnealer,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list available presets for a run kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for kind: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(fitCmd, kmeansCmd, annealCmd, landscapeCmd, listCmd, plotCmd, traceCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd, compareCmd, tuneCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadDataset(ctx context.Context) (*mat.Dense, error) {
	if dataFile != "" {
		return dataset.LoadFile(dataFile)
	}
	return dataset.FetchFaithful(ctx, nil, dataDir)
}

func runFit(cmd *cobra.Command, args []string) error {
	if preset != "" {
		cfg := config.GetPreset("fit", preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets("fit"))
		}
		components = cfg.Mixture.Components
		tol = cfg.Mixture.Tol
		maxIter = cfg.Mixture.MaxIter
		initName = cfg.Mixture.Init
		if cfg.Mixture.Restarts != 0 {
			restarts = cfg.Mixture.Restarts
		}
		seed = cfg.Seed
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("components") {
			components = cfg.Mixture.Components
		}
		if !cmd.Flags().Changed("tol") {
			tol = cfg.Mixture.Tol
		}
		if !cmd.Flags().Changed("max-iter") {
			maxIter = cfg.Mixture.MaxIter
		}
		if !cmd.Flags().Changed("init") && cfg.Mixture.Init != "" {
			initName = cfg.Mixture.Init
		}
		if !cmd.Flags().Changed("standardize") {
			standardize = cfg.Dataset.Standardize
		}
		if !cmd.Flags().Changed("file") && cfg.Dataset.Path != "" {
			dataFile = cfg.Dataset.Path
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx := context.Background()
	x, err := loadDataset(ctx)
	if err != nil {
		return err
	}
	n, d := x.Dims()
	fmt.Printf("loaded %d observations (%d features)\n", n, d)

	var scaler *dataset.Scaler
	if standardize {
		scaler, err = dataset.FitScaler(x)
		if err != nil {
			return err
		}
		x = scaler.Transform(x)
	}

	registry := experiment.NewRegistry()
	init, err := registry.GetInitializer(initName, map[string]float64{"restarts": float64(restarts)})
	if err != nil {
		return err
	}

	em := &mixture.EM{
		K:           components,
		Tol:         tol,
		MaxIter:     maxIter,
		Seed:        seed,
		Initializer: init,
	}

	fmt.Printf("fitting %d-component mixture (init=%s)...\n", components, initName)
	start := time.Now()

	result, err := em.Fit(ctx, x)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	columns, rows := fitHistory(result, d)
	final := result.Final()
	metrics := map[string]float64{
		"final_loglik": result.LogLikelihood[len(result.LogLikelihood)-1],
		"iterations":   float64(result.Iterations),
		"weight_sum":   final.WeightSum(),
	}
	params := map[string]float64{
		"components": float64(components),
		"tol":        tol,
		"max_iter":   float64(maxIter),
	}

	runID, err := st.Save("fit", seed, params, metrics, columns, rows)
	if err != nil {
		return err
	}

	if result.Converged {
		fmt.Printf("converged after %d iterations in %v\n", result.Iterations, elapsed)
	} else {
		fmt.Printf("stopped at iteration cap (%d) after %v\n", result.Iterations, elapsed)
	}
	fmt.Printf("run id: %s\n\n", runID)

	for i, c := range final.Components {
		fmt.Printf("component %d:\n", i+1)
		fmt.Printf("  weight: %.4f\n", c.Weight)
		fmt.Printf("  mean:   %v\n", mat.Formatted(mat.NewDense(1, d, c.Mean)))
		fmt.Printf("  cov:    %v\n", mat.Formatted(c.Cov, mat.Prefix("          ")))
	}
	fmt.Printf("\nlog-likelihood: %.4f\n", metrics["final_loglik"])

	labels, err := final.Assign(x)
	if err != nil {
		return err
	}
	means := make([][]float64, len(final.Components))
	for i, c := range final.Components {
		means[i] = c.Mean
	}
	fmt.Println()
	fmt.Print(viz.Scatter(x, labels, means, 70, 20))

	return nil
}

// fitHistory flattens EM snapshots to named history columns: iteration,
// log-likelihood, then per-component weight and mean coordinates.
func fitHistory(result *mixture.Result, dim int) ([]string, [][]float64) {
	k := result.Final().K()

	columns := []string{"iter", "loglik"}
	for j := 0; j < k; j++ {
		columns = append(columns, fmt.Sprintf("w%d", j))
	}
	for j := 0; j < k; j++ {
		for c := 0; c < dim; c++ {
			columns = append(columns, fmt.Sprintf("mu%d_%d", j, c))
		}
	}

	rows := make([][]float64, 0, len(result.History))
	for i, m := range result.History {
		row := []float64{float64(i), result.LogLikelihood[i]}
		for _, comp := range m.Components {
			row = append(row, comp.Weight)
		}
		for _, comp := range m.Components {
			row = append(row, comp.Mean...)
		}
		rows = append(rows, row)
	}
	return columns, rows
}

func runKMeans(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	x, err := loadDataset(ctx)
	if err != nil {
		return err
	}
	n, _ := x.Dims()
	fmt.Printf("loaded %d observations\n", n)

	scaler, err := dataset.FitScaler(x)
	if err != nil {
		return err
	}
	scaled := scaler.Transform(x)

	km := &mixture.KMeans{K: components, Restarts: restarts, Seed: seed}
	result, err := km.Fit(scaled)
	if err != nil {
		return err
	}

	centers := scaler.InverseTransform(result.Centers)
	fmt.Println("cluster centers:")
	for j := 0; j < components; j++ {
		fmt.Printf("  cluster %d: %v\n", j+1, mat.Formatted(mat.NewDense(1, 2, centers.RawRowView(j))))
	}
	fmt.Printf("\ninertia: %.2f\n\n", result.Inertia)

	means := make([][]float64, components)
	for j := 0; j < components; j++ {
		means[j] = centers.RawRowView(j)
	}
	fmt.Print(viz.Scatter(x, result.Labels, means, 70, 20))

	return nil
}

func annealConfigFromFlags(cmd *cobra.Command) (experiment.Config, error) {
	if preset != "" {
		cfg := config.GetPreset("anneal", preset)
		if cfg == nil {
			return experiment.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets("anneal"))
		}
		proposal = cfg.Anneal.Proposal
		sigma = cfg.Anneal.Sigma
		samples = cfg.Anneal.Samples
		temp = cfg.Anneal.Temp
		alpha = cfg.Anneal.Alpha
		gridSize = cfg.Anneal.GridSize
		seed = cfg.Seed
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return experiment.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("proposal") && cfg.Anneal.Proposal != "" {
			proposal = cfg.Anneal.Proposal
		}
		if !cmd.Flags().Changed("sigma") {
			sigma = cfg.Anneal.Sigma
		}
		if !cmd.Flags().Changed("samples") {
			samples = cfg.Anneal.Samples
		}
		if !cmd.Flags().Changed("temp") {
			temp = cfg.Anneal.Temp
		}
		if !cmd.Flags().Changed("alpha") {
			alpha = cfg.Anneal.Alpha
		}
		if !cmd.Flags().Changed("grid") && cfg.Anneal.GridSize != 0 {
			gridSize = cfg.Anneal.GridSize
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
	}

	return experiment.Config{
		Proposal: proposal,
		Sigma:    sigma,
		Samples:  samples,
		Temp:     temp,
		Alpha:    alpha,
		GridSize: gridSize,
		Seed:     seed,
	}, nil
}

// progressObserver prints a status line at a fixed step interval.
type progressObserver struct {
	total int
	every int
}

func (p *progressObserver) OnStep(s anneal.Step) {
	if s.Iter%p.every == 0 || s.Iter == p.total {
		fmt.Printf("  step %d/%d  T=%.4f  E=%.4f\n", s.Iter, p.total, s.Temp, s.Energy)
	}
}

func setupExperiment(cfg experiment.Config) (*experiment.Experiment, error) {
	registry := experiment.NewRegistry()

	prop, err := registry.GetProposal(cfg.Proposal, cfg.Params())
	if err != nil {
		return nil, err
	}
	sched, err := registry.GetSchedule("geometric", cfg.Params())
	if err != nil {
		return nil, err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(prop, sched, registry.DefaultMetrics()); err != nil {
		return nil, err
	}
	return exp, nil
}

func runAnneal(cmd *cobra.Command, args []string) error {
	cfg, err := annealConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := setupExperiment(cfg)
	if err != nil {
		return err
	}

	if progress {
		every := cfg.Samples / 10
		if every < 1 {
			every = 1
		}
		exp.Annealer().AddObserver(&progressObserver{total: cfg.Samples, every: every})
	}

	fmt.Printf("annealing with %s proposal...\n", cfg.Proposal)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	columns := []string{"iter", "x0", "x1", "temp", "prob", "energy"}
	rows := make([][]float64, 0, len(result.Temps))
	for i := range result.Temps {
		pos := result.Positions[i+1]
		rows = append(rows, []float64{
			float64(i + 1),
			float64(pos[0]),
			float64(pos[1]),
			result.Temps[i],
			result.Probs[i],
			result.Energies[i+1],
		})
	}

	runID, err := st.Save("anneal", cfg.Seed, cfg.Params(), result.Metrics, columns, rows)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("proposed: %d  accepted: %d  rejected: %d\n",
		result.Accepted+result.Rejected, result.Accepted, result.Rejected)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	fmt.Println()
	fmt.Print(viz.TraceWalk(exp.Landscape(), result.Positions, 70, 24))

	return nil
}

func showLandscape(cmd *cobra.Command, args []string) error {
	land, err := anneal.NewLandscape(gridSize)
	if err != nil {
		return err
	}

	fmt.Println("density:")
	fmt.Print(viz.Heatmap(land.PDF, 70, 22))
	fmt.Println("\nenergy:")
	fmt.Print(viz.Heatmap(land.Energy, 70, 22))

	t := bathTemp
	for i := 0; i < bathSteps; i++ {
		fmt.Printf("\nheat bath T=%.2f:\n", t)
		fmt.Print(viz.Heatmap(land.Boltzmann(t), 70, 22))
		t *= 0.5
	}

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

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	columns, rows, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(rows))

	plotted := 0
	for _, col := range columns {
		if col == "iter" || col == "x0" || col == "x1" {
			continue
		}
		if plotted >= 6 {
			break
		}
		data, ok := storage.Column(columns, rows, col)
		if !ok || len(data) < 2 {
			continue
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col),
		)
		fmt.Println(graph)
		fmt.Println()
		plotted++
	}

	return nil
}

func loadWalk(st *storage.Store, runID string) (*storage.RunMetadata, *anneal.Landscape, []anneal.Coord, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if meta.Kind != "anneal" {
		return nil, nil, nil, fmt.Errorf("run %s is a %s run, need an anneal run", runID, meta.Kind)
	}

	columns, rows, err := st.LoadHistory(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	x0s, ok0 := storage.Column(columns, rows, "x0")
	x1s, ok1 := storage.Column(columns, rows, "x1")
	if !ok0 || !ok1 || len(x0s) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s has no position history", runID)
	}

	n := int(meta.Params["grid_size"])
	if n == 0 {
		n = anneal.DefaultGridSize
	}
	land, err := anneal.NewLandscape(n)
	if err != nil {
		return nil, nil, nil, err
	}

	positions := make([]anneal.Coord, len(x0s))
	for i := range x0s {
		positions[i] = anneal.Coord{int(x0s[i]), int(x1s[i])}
	}
	return meta, land, positions, nil
}

func traceRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, land, positions, err := loadWalk(st, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("steps: %d\n\n", len(positions))
	fmt.Print(viz.TraceWalk(land, positions, 70, 24))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, nil, nil)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	columns, rows, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for j, val := range row {
			record[j] = strconv.FormatFloat(val, 'f', 6, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	columns, rows, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, columns, rows)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, land, positions, err := loadWalk(st, args[0])
	if err != nil {
		return err
	}

	svg := export.WalkToSVG(land, positions, svgSize)
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func runLive(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	params := map[string]float64{"sigma": sigma, "temp": temp, "alpha": alpha}

	prop, err := registry.GetProposal(proposal, params)
	if err != nil {
		return err
	}
	sched, err := registry.GetSchedule("geometric", params)
	if err != nil {
		return err
	}
	land, err := anneal.NewLandscape(gridSize)
	if err != nil {
		return err
	}

	walker := anneal.NewWalker(land, prop, sched, seed)
	m := viz.NewModel(land, walker, prop, samples)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareProposals(cmd *cobra.Command, args []string) error {
	fmt.Printf("comparing proposals (samples=%d, seed=%d)\n\n", samples, seed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROPOSAL\tBEST_ENERGY\tACCEPT_RATE\tFINAL_TEMP\tTIME_MS")

	for _, name := range args {
		cfg := experiment.Config{
			Proposal: name,
			Sigma:    sigma,
			Samples:  samples,
			Temp:     config.DefaultTemp,
			Alpha:    config.DefaultAlpha,
			GridSize: config.DefaultGridSize,
			Seed:     seed,
		}

		exp, err := setupExperiment(cfg)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.4f\t%.3f\t%.6f\t%.2f\n",
			name,
			result.Metrics["best_energy"],
			result.Metrics["acceptance_rate"],
			result.Metrics["final_temp"],
			float64(elapsed.Microseconds())/1000,
		)
	}

	return w.Flush()
}

func tuneAnnealer(cmd *cobra.Command, args []string) error {
	sigmas := []float64{2, 5, 10, 20}
	alphas := []float64{0.9, 0.95, 0.99, 0.999}

	search := optim.NewGridSearch([]string{"sigma", "alpha"}, [][]float64{sigmas, alphas})

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := experiment.Config{
			Proposal: "gaussian",
			Sigma:    params["sigma"],
			Samples:  samples,
			Temp:     config.DefaultTemp,
			Alpha:    params["alpha"],
			GridSize: config.DefaultGridSize,
			Seed:     seed,
		}
		return setupExperiment(cfg)
	}

	fmt.Printf("searching %d configurations...\n", len(sigmas)*len(alphas))
	best, bestVal, err := search.Search(context.Background(), build, "best_energy")
	if err != nil {
		return err
	}

	fmt.Printf("best energy: %.4f\n", bestVal)
	fmt.Println("parameters:")
	for name, val := range best {
		fmt.Printf("  %s: %g\n", name, val)
	}
	return nil
}

func benchAnnealer(cmd *cobra.Command, args []string) error {
	budgets := []int{300, 1000, 3000}
	sigmas := []float64{5, 10, 20}

	fmt.Println("benchmarking annealing")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLES\tSIGMA\tTIME\tSTEPS/SEC")

	for _, budget := range budgets {
		for _, s := range sigmas {
			cfg := experiment.Config{
				Proposal: "gaussian",
				Sigma:    s,
				Samples:  budget,
				Temp:     config.DefaultTemp,
				Alpha:    config.DefaultAlpha,
				GridSize: config.DefaultGridSize,
				Seed:     42,
			}

			exp, err := setupExperiment(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := result.Accepted + result.Rejected
			stepsPerSec := float64(steps) / elapsed.Seconds()

			fmt.Fprintf(w, "%d\t%.1f\t%v\t%.0f\n", budget, s, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
