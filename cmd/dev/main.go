package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gomonte/adapters/memledger"
	"gomonte/adapters/rng"
	"gomonte/adapters/tabular"
	"gomonte/app"
	"gomonte/domain/montecarlo"
	"gomonte/internal"
	"gomonte/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gomonte-dev",
		Short: "gomonte development tools",
	}

	rootCmd.AddCommand(
		newSeedDataCmd(),
		newSmokeCmd(),
		newDeterminismCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedDataCmd() *cobra.Command {
	var rows int
	var seed int64
	var path string

	cmd := &cobra.Command{
		Use:   "seed-data",
		Short: "Write a synthetic CSV for exercising the describe pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSeedData(path, rows, seed)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 500, "Number of data rows")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	cmd.Flags().StringVar(&path, "out", "seed_data.csv", "Output path")

	return cmd
}

// writeSeedData emits three columns with distinct shapes: a normal column,
// a right-skewed exponential column, and a non-numeric label column that
// the reader must reject.
func writeSeedData(path string, rows int, seed int64) error {
	stream := testkit.Stream(uint64(seed), uint64(seed)+1)
	normal := testkit.NormalDraws(stream, rows, 100, 15)
	skewed := testkit.ExponentialDraws(stream, rows, 0.5)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"gaussian", "waiting_time", "label"}); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		record := []string{
			strconv.FormatFloat(normal[i], 'g', -1, 64),
			strconv.FormatFloat(skewed[i], 'g', -1, 64),
			fmt.Sprintf("obs-%d", i),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	fmt.Printf("wrote %d rows to %s\n", rows, path)
	return nil
}

func newSmokeCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run a small suite end to end and print the fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runSmallSuite(cmd.Context(), seed)
			if err != nil {
				return err
			}
			fmt.Printf("run %s: %d artifacts, fingerprint %s\n",
				result.RunID, len(result.Artifacts), result.Fingerprint)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")

	return cmd
}

func newDeterminismCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "determinism [seed]",
		Short: "Run the same suite twice and verify the fingerprints match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed %q: %w", args[0], err)
			}
			return checkDeterminism(cmd.Context(), seed)
		},
	}
	return cmd
}

func checkDeterminism(ctx context.Context, seed int64) error {
	first, err := runSmallSuite(ctx, seed)
	if err != nil {
		return fmt.Errorf("first run failed: %w", err)
	}
	second, err := runSmallSuite(ctx, seed)
	if err != nil {
		return fmt.Errorf("second run failed: %w", err)
	}

	if first.Fingerprint != second.Fingerprint {
		return fmt.Errorf("determinism violated: %s != %s", first.Fingerprint, second.Fingerprint)
	}
	fmt.Printf("deterministic: both runs produced fingerprint %s\n", first.Fingerprint)
	return nil
}

// runSmallSuite covers every experiment kind at sizes that finish in
// well under a second.
func runSmallSuite(ctx context.Context, seed int64) (*app.SuiteResult, error) {
	quarter, err := montecarlo.LookupIntegrand("unit-quarter-circle")
	if err != nil {
		return nil, err
	}

	req := app.SuiteRequest{
		Seed: seed,
		LLN: []montecarlo.LLNSpec{
			montecarlo.MustNewLLNSpec(montecarlo.Coin(0.5), 10000, []int{100, 1000, 10000}),
		},
		Sampling: []montecarlo.SamplingSpec{
			montecarlo.MustNewSamplingSpec(montecarlo.Exponential(1), 30, 500),
		},
		Integrations: []montecarlo.IntegrateSpec{
			montecarlo.MustNewIntegrateSpec(quarter, 10000),
		},
		Scaling: []montecarlo.ScalingSpec{
			montecarlo.MustNewScalingSpec(quarter, []int{16, 64, 256, 1024}, 20),
		},
	}

	// RunID stays fixed so replays share stream identities.
	req.RunID = "dev-smoke"

	svc := app.NewLabService(
		memledger.New(),
		rng.NewProvider(),
		tabular.NewReader(""),
		internal.DefaultLogger,
		4,
		20,
	)
	return svc.RunSuite(ctx, req)
}
