package describe

import (
	"math"
	"math/rand/v2"
	"testing"

	"gomonte/domain/montecarlo"
	"gomonte/domain/sample"
	"gomonte/internal/simulate"
)

func draws(pop montecarlo.PopulationSpec, n int, hi, lo uint64) sample.Sample {
	draw := pop.Sampler(rand.New(rand.NewPCG(hi, lo)))
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = draw()
	}
	return sample.New(xs)
}

func TestNormalDrawsPassNormality(t *testing.T) {
	check := CheckNormality(draws(montecarlo.Normal(0, 1), 1000, 1, 2))
	if check.Method != "dagostino-k2" {
		t.Fatalf("method = %s, want dagostino-k2 for n=1000", check.Method)
	}
	if !check.Normal {
		t.Errorf("standard normal draws flagged non-normal (p=%v)", check.PValue)
	}
}

func TestExponentialDrawsFailNormality(t *testing.T) {
	check := CheckNormality(draws(montecarlo.Exponential(1), 1000, 3, 4))
	if check.Normal {
		t.Errorf("heavily skewed draws passed normality (p=%v)", check.PValue)
	}
	if check.PValue > 1e-6 {
		t.Errorf("p-value for 1000 exponential draws should be essentially zero, got %v", check.PValue)
	}
}

// The central limit theorem as a testable property: raw exponential draws
// fail the normality check, but the sampling distribution of their means
// passes once the sample size is large.
func TestSamplingDistributionOfSkewedPopulationIsNormal(t *testing.T) {
	spec := montecarlo.MustNewSamplingSpec(montecarlo.Exponential(1), 50, 1000)
	dist, err := simulate.SamplingDistribution(rand.New(rand.NewPCG(5, 6)), spec, 0)
	if err != nil {
		t.Fatal(err)
	}

	check := CheckNormality(sample.New(dist.Means))
	if !check.Normal {
		t.Errorf("sampling distribution of means failed normality (p=%v), the CLT says it should pass", check.PValue)
	}
}

func TestCheckNormalityEdgeCases(t *testing.T) {
	if CheckNormality(sample.New([]float64{1, 2})).Method != "insufficient-data" {
		t.Error("two observations cannot support a verdict")
	}

	small := CheckNormality(sample.New([]float64{1, 2, 3, 4, 5}))
	if small.Method != "moment-approx" {
		t.Errorf("n=5 should use the small-sample fallback, got %s", small.Method)
	}

	constant := CheckNormality(sample.New([]float64{7, 7, 7, 7, 7, 7, 7, 7, 7, 7}))
	if constant.Normal {
		t.Error("a constant sample is not normal")
	}
}

func TestDescribe(t *testing.T) {
	s := draws(montecarlo.Normal(10, 2), 500, 7, 8)
	// Inject missing values and one far outlier.
	s.Xs = append(s.Xs, math.NaN(), math.Inf(1), 1000)

	d, err := Describe(s)
	if err != nil {
		t.Fatal(err)
	}
	if d.Summary.N != 501 {
		t.Errorf("summary N = %d, want 501 after dropping non-finite values", d.Summary.N)
	}
	wantMissing := 2.0 / 503.0
	if math.Abs(d.MissingRatio-wantMissing) > 1e-12 {
		t.Errorf("missing ratio = %v, want %v", d.MissingRatio, wantMissing)
	}
	if d.Outliers < 1 {
		t.Error("the injected extreme value should be counted as an outlier")
	}
	if math.Abs(d.Summary.Mean-10) > 0.5 {
		t.Errorf("mean = %v, want near 10", d.Summary.Mean)
	}
}

func TestDescribeRejectsTinySamples(t *testing.T) {
	if _, err := Describe(sample.New([]float64{1})); err == nil {
		t.Error("one observation should be rejected")
	}
	if _, err := Describe(sample.New([]float64{math.NaN(), math.NaN(), 5})); err == nil {
		t.Error("a sample that cleans down to one value should be rejected")
	}
}
