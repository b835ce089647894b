package simulate

import (
	"math"
	"testing"

	"gomonte/domain/montecarlo"
)

func TestSamplingDistributionMatchesCLTPrediction(t *testing.T) {
	// Heavily skewed population, yet its sample means spread exactly as
	// sigma/sqrt(n) predicts.
	spec := montecarlo.MustNewSamplingSpec(montecarlo.Exponential(1), 40, 2000)

	dist, err := SamplingDistribution(stream(5, 6), spec, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(dist.Means) != 2000 {
		t.Fatalf("want 2000 replicate means, got %d", len(dist.Means))
	}

	predicted := 1.0 / math.Sqrt(40)
	if math.Abs(dist.PredictedStdError-predicted) > 1e-12 {
		t.Errorf("predicted std error = %v, want %v", dist.PredictedStdError, predicted)
	}

	// Observed spread should sit within ~10% of the prediction at these sizes.
	ratio := dist.StdError / dist.PredictedStdError
	if ratio < 0.9 || ratio > 1.1 {
		t.Errorf("observed/predicted std error = %v, want near 1", ratio)
	}

	// Mean of means estimates the population mean (1 for rate 1).
	if math.Abs(dist.MeanOfMeans-1) > 0.02 {
		t.Errorf("mean of means = %v, want near 1", dist.MeanOfMeans)
	}

	if dist.Histogram.N != 2000 {
		t.Errorf("histogram should bin every replicate mean, N = %d", dist.Histogram.N)
	}
	if dist.Histogram.Bins() != DefaultHistogramBins {
		t.Errorf("bins = %d, want default %d when unset", dist.Histogram.Bins(), DefaultHistogramBins)
	}
}

func TestSamplingDistributionBernoulli(t *testing.T) {
	spec := montecarlo.MustNewSamplingSpec(montecarlo.Coin(0.5), 100, 1000)

	dist, err := SamplingDistribution(stream(7, 8), spec, 15)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(dist.PredictedStdError-0.05) > 1e-12 {
		t.Errorf("fair coin predicted std error at n=100 should be 0.05, got %v", dist.PredictedStdError)
	}
	if dist.Histogram.Bins() != 15 {
		t.Errorf("explicit bin count ignored, got %d", dist.Histogram.Bins())
	}
}

func TestSamplingDistributionDeterministic(t *testing.T) {
	spec := montecarlo.MustNewSamplingSpec(montecarlo.Normal(10, 3), 25, 200)

	a, err := SamplingDistribution(stream(2, 2), spec, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := SamplingDistribution(stream(2, 2), spec, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Means {
		if a.Means[i] != b.Means[i] {
			t.Fatalf("replicate %d differs across identical streams", i)
		}
	}
}

func TestSamplingDistributionRejectsInvalidSpec(t *testing.T) {
	bad := montecarlo.SamplingSpec{Population: montecarlo.Coin(0.5), SampleSize: 1, Replicates: 10}
	if _, err := SamplingDistribution(stream(1, 1), bad, 0); err == nil {
		t.Error("sample size 1 should be rejected before any simulation")
	}
}
