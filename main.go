package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gomonte/adapters/memledger"
	"gomonte/adapters/rng"
	"gomonte/adapters/tabular"
	"gomonte/app"
	"gomonte/domain/montecarlo"
	"gomonte/internal"
	"gomonte/internal/config"
	"gomonte/internal/render"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "gomonte",
		Short: "Monte Carlo laboratory: LLN, sampling distributions, and integration error scaling",
	}

	rootCmd.AddCommand(
		newSuiteCmd(cfg),
		newLLNCmd(cfg),
		newSamplingCmd(cfg),
		newIntegrateCmd(cfg),
		newScalingCmd(cfg),
		newDescribeCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService wires the standard adapter set behind the lab service.
func newService(cfg *config.Config) (*app.LabService, *memledger.Ledger) {
	ledger := memledger.New()
	svc := app.NewLabService(
		ledger,
		rng.NewProvider(),
		tabular.NewReader(cfg.Data.Sheet),
		internal.DefaultLogger,
		cfg.Lab.Workers,
		cfg.Report.HistogramBins,
	)
	return svc, ledger
}

func newSuiteCmd(cfg *config.Config) *cobra.Command {
	var seed int64
	var draws, replicates, scalingTrials int
	var markdownPath, htmlPath, jsonPath string

	cmd := &cobra.Command{
		Use:   "suite",
		Short: "Run the full experiment suite and render a report",
		Long: `Run every standard experiment in one seeded, replayable pass:

- law-of-large-numbers convergence for each population family
- sampling distributions of the mean with a normality verdict
- Monte Carlo integrals for every registered integrand
- integration error scaling with the fitted log-log slope

Example: gomonte suite --seed 12345 --markdown report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := defaultSuite(cfg, seed, draws, replicates, scalingTrials)
			if err != nil {
				return err
			}

			svc, ledger := newService(cfg)
			result, err := svc.RunSuite(cmd.Context(), req)
			if err != nil {
				return err
			}

			manifest := result.Manifest.Payload.(montecarlo.RunManifest)
			renderResult(cfg, result, manifest)

			if markdownPath == "" {
				markdownPath = cfg.Report.MarkdownPath
			}
			if htmlPath == "" {
				htmlPath = cfg.Report.HTMLPath
			}
			if jsonPath == "" {
				jsonPath = cfg.Report.JSONPath
			}
			return writeReports(ledger, result, manifest, markdownPath, htmlPath, jsonPath)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", cfg.Lab.Seed, "Base seed for all experiment streams")
	cmd.Flags().IntVar(&draws, "draws", cfg.Lab.Draws, "Draws per law-of-large-numbers run")
	cmd.Flags().IntVar(&replicates, "replicates", cfg.Lab.Replicates, "Replicates per sampling distribution")
	cmd.Flags().IntVar(&scalingTrials, "trials", cfg.Lab.ScalingTrials, "Trials per sample size in the scaling study")
	cmd.Flags().StringVar(&markdownPath, "markdown", "", "Write a Markdown report to this path")
	cmd.Flags().StringVar(&htmlPath, "html", "", "Write an HTML report to this path")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Write the raw artifact ledger as JSON to this path")

	return cmd
}

// defaultSuite builds the standard experiment set from configuration.
func defaultSuite(cfg *config.Config, seed int64, draws, replicates, scalingTrials int) (app.SuiteRequest, error) {
	populations := []montecarlo.PopulationSpec{
		montecarlo.Normal(0, 1),
		montecarlo.Uniform(0, 1),
		montecarlo.Exponential(1),
		montecarlo.Coin(0.5),
	}

	req := app.SuiteRequest{Seed: seed}

	checkpoints := logCheckpoints(draws)
	for _, pop := range populations {
		spec, err := montecarlo.NewLLNSpec(pop, draws, checkpoints)
		if err != nil {
			return app.SuiteRequest{}, err
		}
		req.LLN = append(req.LLN, spec)
	}

	// The exponential population is the CLT showcase: raw draws are far
	// from normal, their sample means are not.
	for _, n := range cfg.Lab.SampleSizes {
		spec, err := montecarlo.NewSamplingSpec(montecarlo.Exponential(1), n, replicates)
		if err != nil {
			return app.SuiteRequest{}, err
		}
		req.Sampling = append(req.Sampling, spec)
	}

	for _, name := range montecarlo.IntegrandNames() {
		integrand, err := montecarlo.LookupIntegrand(name)
		if err != nil {
			return app.SuiteRequest{}, err
		}
		spec, err := montecarlo.NewIntegrateSpec(integrand, draws)
		if err != nil {
			return app.SuiteRequest{}, err
		}
		req.Integrations = append(req.Integrations, spec)
	}

	quarter, err := montecarlo.LookupIntegrand("unit-quarter-circle")
	if err != nil {
		return app.SuiteRequest{}, err
	}
	scaling, err := montecarlo.NewScalingSpec(quarter, cfg.Lab.ScalingSizes, scalingTrials)
	if err != nil {
		return app.SuiteRequest{}, err
	}
	req.Scaling = append(req.Scaling, scaling)

	return req, nil
}

// logCheckpoints returns powers of ten up to draws, always ending at draws.
func logCheckpoints(draws int) []int {
	var points []int
	for c := 10; c < draws; c *= 10 {
		points = append(points, c)
	}
	points = append(points, draws)
	return points
}

func renderResult(cfg *config.Config, result *app.SuiteResult, manifest montecarlo.RunManifest) {
	r := render.New(os.Stdout, cfg.Report.BarWidth)
	for _, a := range result.Artifacts {
		switch p := a.Payload.(type) {
		case montecarlo.ConvergencePath:
			r.WriteConvergence(p)
		case montecarlo.SamplingDistribution:
			r.WriteSamplingDistribution(p)
		case montecarlo.NormalityCheck:
			r.WriteNormality("sampling distribution", p)
		case montecarlo.IntegralEstimate:
			r.WriteIntegral(p)
		case montecarlo.ErrorScaling:
			r.WriteScaling(p)
		}
	}
	r.WriteManifest(manifest)
}

func writeReports(ledger *memledger.Ledger, result *app.SuiteResult, manifest montecarlo.RunManifest, markdownPath, htmlPath, jsonPath string) error {
	var md string
	if markdownPath != "" || htmlPath != "" {
		md = render.MarkdownReport(manifest, result.Artifacts)
	}
	if markdownPath != "" {
		if err := os.WriteFile(markdownPath, []byte(md), 0o644); err != nil {
			return fmt.Errorf("failed to write markdown report: %w", err)
		}
	}
	if htmlPath != "" {
		if err := os.WriteFile(htmlPath, render.HTMLReport(md), 0o644); err != nil {
			return fmt.Errorf("failed to write html report: %w", err)
		}
	}
	if jsonPath != "" {
		f, err := os.Create(jsonPath)
		if err != nil {
			return fmt.Errorf("failed to create json export: %w", err)
		}
		defer f.Close()
		if err := ledger.ExportJSON(f, result.RunID); err != nil {
			return fmt.Errorf("failed to export json: %w", err)
		}
	}
	return nil
}

func newLLNCmd(cfg *config.Config) *cobra.Command {
	var seed int64
	var draws int
	var checkpoints string
	popFlags := newPopulationFlags()

	cmd := &cobra.Command{
		Use:   "lln",
		Short: "Watch the running mean converge to the population mean",
		Long: `Simulate IID draws and record the running mean at each checkpoint.

Example: gomonte lln --pop exponential --rate 2 --draws 100000 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pop, err := popFlags.build()
			if err != nil {
				return err
			}
			points, err := parseInts(checkpoints)
			if err != nil {
				return fmt.Errorf("invalid --checkpoints: %w", err)
			}
			if len(points) == 0 {
				points = logCheckpoints(draws)
			}
			spec, err := montecarlo.NewLLNSpec(pop, draws, points)
			if err != nil {
				return err
			}

			svc, _ := newService(cfg)
			path, err := svc.RunLLN(cmd.Context(), seed, spec)
			if err != nil {
				return err
			}
			render.New(os.Stdout, cfg.Report.BarWidth).WriteConvergence(path)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", cfg.Lab.Seed, "Random seed")
	cmd.Flags().IntVar(&draws, "draws", cfg.Lab.Draws, "Total number of draws")
	cmd.Flags().StringVar(&checkpoints, "checkpoints", "", "Comma-separated checkpoints (default: powers of ten)")
	popFlags.register(cmd)

	return cmd
}

func newSamplingCmd(cfg *config.Config) *cobra.Command {
	var seed int64
	var sampleSize, replicates int
	popFlags := newPopulationFlags()

	cmd := &cobra.Command{
		Use:   "sampling",
		Short: "Build the sampling distribution of the mean and test its normality",
		Long: `Draw many independent samples, collect each sample's mean, and compare
the spread of those means against the CLT prediction sigma/sqrt(n).

Example: gomonte sampling --pop exponential --n 30 --replicates 2000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pop, err := popFlags.build()
			if err != nil {
				return err
			}
			spec, err := montecarlo.NewSamplingSpec(pop, sampleSize, replicates)
			if err != nil {
				return err
			}

			svc, _ := newService(cfg)
			dist, check, err := svc.RunSampling(cmd.Context(), seed, spec)
			if err != nil {
				return err
			}
			r := render.New(os.Stdout, cfg.Report.BarWidth)
			r.WriteSamplingDistribution(dist)
			r.WriteNormality(fmt.Sprintf("means of %s, n=%d", pop, sampleSize), check)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", cfg.Lab.Seed, "Random seed")
	cmd.Flags().IntVar(&sampleSize, "n", 30, "Observations per sample")
	cmd.Flags().IntVar(&replicates, "replicates", cfg.Lab.Replicates, "Number of replicate samples")
	popFlags.register(cmd)

	return cmd
}

func newIntegrateCmd(cfg *config.Config) *cobra.Command {
	var seed int64
	var samples int

	cmd := &cobra.Command{
		Use:   "integrate [integrand]",
		Short: "Estimate a one-dimensional integral by uniform sampling",
		Long: fmt.Sprintf(`Estimate the integral of a registered function by averaging uniform
evaluations over its interval. Known integrands: %s.

Example: gomonte integrate unit-quarter-circle --samples 1000000`,
			strings.Join(montecarlo.IntegrandNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			integrand, err := montecarlo.LookupIntegrand(args[0])
			if err != nil {
				return err
			}
			spec, err := montecarlo.NewIntegrateSpec(integrand, samples)
			if err != nil {
				return err
			}

			svc, _ := newService(cfg)
			est, err := svc.RunIntegration(cmd.Context(), seed, spec)
			if err != nil {
				return err
			}
			render.New(os.Stdout, cfg.Report.BarWidth).WriteIntegral(est)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", cfg.Lab.Seed, "Random seed")
	cmd.Flags().IntVar(&samples, "samples", 100000, "Number of uniform samples")

	return cmd
}

func newScalingCmd(cfg *config.Config) *cobra.Command {
	var seed int64
	var trials int
	var sizes string

	cmd := &cobra.Command{
		Use:   "scaling [integrand]",
		Short: "Measure how integration error shrinks as sample size grows",
		Long: `Repeat an integral at increasing sample sizes, measure the RMS error
against the analytic value, and fit the log-log slope (theory: -0.5).

Example: gomonte scaling sin --sizes 16,64,256,1024 --trials 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			integrand, err := montecarlo.LookupIntegrand(args[0])
			if err != nil {
				return err
			}
			sampleSizes, err := parseInts(sizes)
			if err != nil {
				return fmt.Errorf("invalid --sizes: %w", err)
			}
			if len(sampleSizes) == 0 {
				sampleSizes = cfg.Lab.ScalingSizes
			}
			spec, err := montecarlo.NewScalingSpec(integrand, sampleSizes, trials)
			if err != nil {
				return err
			}

			svc, _ := newService(cfg)
			scaling, err := svc.RunScaling(cmd.Context(), seed, spec)
			if err != nil {
				return err
			}
			render.New(os.Stdout, cfg.Report.BarWidth).WriteScaling(scaling)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", cfg.Lab.Seed, "Random seed")
	cmd.Flags().IntVar(&trials, "trials", cfg.Lab.ScalingTrials, "Trials per sample size")
	cmd.Flags().StringVar(&sizes, "sizes", "", "Comma-separated sample sizes (default from config)")

	return cmd
}

func newDescribeCmd(cfg *config.Config) *cobra.Command {
	var column, sheet string
	var all bool

	cmd := &cobra.Command{
		Use:   "describe [file]",
		Short: "Profile numeric columns of a CSV or XLSX file",
		Long: `Load a tabular file, clean the named column, and print its descriptive
statistics, outlier count, and a normality verdict. With --all, profile
every numeric column and include a histogram for each.

Example: gomonte describe measurements.xlsx --column latency_ms --sheet Sheet1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sheet != "" {
				cfg.Data.Sheet = sheet
			}
			svc, _ := newService(cfg)
			r := render.New(os.Stdout, cfg.Report.BarWidth)

			if all {
				_, artifacts, err := svc.ProfileTable(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, a := range artifacts {
					switch p := a.Payload.(type) {
					case app.ColumnProfile:
						r.WriteDescription(p.Column, p.Description)
					case app.ColumnHistogram:
						r.WriteHistogram(p.Histogram)
					}
				}
				return nil
			}

			if column == "" {
				return fmt.Errorf("--column is required unless --all is set")
			}
			desc, err := svc.DescribeColumn(cmd.Context(), args[0], column)
			if err != nil {
				return err
			}
			r.WriteDescription(column, desc)
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column to profile")
	cmd.Flags().BoolVar(&all, "all", false, "Profile every numeric column")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name for XLSX input")

	return cmd
}

// populationFlags is the shared --pop flag group for simulation commands.
type populationFlags struct {
	family string
	mu     float64
	sigma  float64
	rate   float64
	p      float64
	min    float64
	max    float64
}

func newPopulationFlags() *populationFlags {
	return &populationFlags{family: "normal", mu: 0, sigma: 1, rate: 1, p: 0.5, min: 0, max: 1}
}

func (f *populationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.family, "pop", f.family, "Population family: normal, uniform, exponential, coin, lognormal")
	cmd.Flags().Float64Var(&f.mu, "mu", f.mu, "Mean parameter (normal, lognormal)")
	cmd.Flags().Float64Var(&f.sigma, "sigma", f.sigma, "Scale parameter (normal, lognormal)")
	cmd.Flags().Float64Var(&f.rate, "rate", f.rate, "Rate parameter (exponential)")
	cmd.Flags().Float64Var(&f.p, "p", f.p, "Success probability (coin)")
	cmd.Flags().Float64Var(&f.min, "min", f.min, "Lower bound (uniform)")
	cmd.Flags().Float64Var(&f.max, "max", f.max, "Upper bound (uniform)")
}

func (f *populationFlags) build() (montecarlo.PopulationSpec, error) {
	var pop montecarlo.PopulationSpec
	switch strings.ToLower(f.family) {
	case "normal":
		pop = montecarlo.Normal(f.mu, f.sigma)
	case "uniform":
		pop = montecarlo.Uniform(f.min, f.max)
	case "exponential":
		pop = montecarlo.Exponential(f.rate)
	case "coin":
		pop = montecarlo.Coin(f.p)
	case "lognormal":
		pop = montecarlo.LogNormal(f.mu, f.sigma)
	default:
		return montecarlo.PopulationSpec{}, fmt.Errorf("unknown population family %q", f.family)
	}
	if err := pop.Validate(); err != nil {
		return montecarlo.PopulationSpec{}, err
	}
	return pop, nil
}

// parseInts splits a comma-separated list into ints; empty input is empty.
func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
