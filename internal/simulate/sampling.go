package simulate

import (
	"math"
	"math/rand/v2"

	"gomonte/domain/montecarlo"
	"gomonte/domain/sample"
)

// DefaultHistogramBins is the bin count used when a caller does not choose
// one.
const DefaultHistogramBins = 20

// SamplingDistribution simulates the sampling distribution of the mean:
// Replicates independent samples of SampleSize, each reduced to its mean.
// PredictedStdError is the CLT prediction sigma/sqrt(n) from the
// population's analytic sigma; StdError is the spread actually observed.
func SamplingDistribution(rng *rand.Rand, spec montecarlo.SamplingSpec, bins int) (montecarlo.SamplingDistribution, error) {
	if _, err := montecarlo.NewSamplingSpec(spec.Population, spec.SampleSize, spec.Replicates); err != nil {
		return montecarlo.SamplingDistribution{}, err
	}
	if bins < 1 {
		bins = DefaultHistogramBins
	}

	draw := spec.Population.Sampler(rng)

	means := make([]float64, spec.Replicates)
	for r := range means {
		sum := 0.0
		for i := 0; i < spec.SampleSize; i++ {
			sum += draw()
		}
		means[r] = sum / float64(spec.SampleSize)
	}

	s := sample.New(means)
	meanOfMeans, err := s.Mean()
	if err != nil {
		return montecarlo.SamplingDistribution{}, err
	}
	stdError, err := s.StdDev()
	if err != nil {
		return montecarlo.SamplingDistribution{}, err
	}
	hist, err := s.Histogram(bins)
	if err != nil {
		return montecarlo.SamplingDistribution{}, err
	}

	return montecarlo.SamplingDistribution{
		Spec:              spec,
		Means:             means,
		MeanOfMeans:       meanOfMeans,
		StdError:          stdError,
		PredictedStdError: spec.Population.StdDev() / math.Sqrt(float64(spec.SampleSize)),
		Histogram:         hist,
	}, nil
}
