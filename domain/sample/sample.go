package sample

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Domain errors - centralized error definitions
var (
	ErrEmptySample    = errors.New("sample is empty")
	ErrTooFewValues   = errors.New("too few values")
	ErrNonFiniteValue = errors.New("sample contains NaN or Inf")
)

// Sample is a one-dimensional batch of observations. It is the only entity
// the lab manipulates: transient numeric arrays that are summarized,
// binned, or standardized and then discarded.
type Sample struct {
	Xs []float64
}

// New wraps the given values without copying.
func New(xs []float64) Sample {
	return Sample{Xs: xs}
}

// Len returns the number of observations.
func (s Sample) Len() int { return len(s.Xs) }

// Clean returns a copy with NaN and Inf observations removed, along with
// the number of observations dropped. Analyses operate on cleaned samples
// so a stray sentinel value can never silently poison a mean.
func (s Sample) Clean() (Sample, int) {
	kept := make([]float64, 0, len(s.Xs))
	for _, x := range s.Xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		kept = append(kept, x)
	}
	return Sample{Xs: kept}, len(s.Xs) - len(kept)
}

// Validate rejects empty or non-finite samples.
func (s Sample) Validate() error {
	if len(s.Xs) == 0 {
		return ErrEmptySample
	}
	for i, x := range s.Xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w at index %d", ErrNonFiniteValue, i)
		}
	}
	return nil
}

// Mean returns the arithmetic mean.
func (s Sample) Mean() (float64, error) {
	if len(s.Xs) == 0 {
		return 0, ErrEmptySample
	}
	return stats.Mean(s.Xs)
}

// Sum returns the total of all observations.
func (s Sample) Sum() (float64, error) {
	if len(s.Xs) == 0 {
		return 0, ErrEmptySample
	}
	return stats.Sum(s.Xs)
}

// StdDev returns the sample standard deviation (n-1 denominator).
func (s Sample) StdDev() (float64, error) {
	if len(s.Xs) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 values for a standard deviation, got %d", ErrTooFewValues, len(s.Xs))
	}
	return stats.StandardDeviationSample(s.Xs)
}

// Variance returns the sample variance (n-1 denominator).
func (s Sample) Variance() (float64, error) {
	if len(s.Xs) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 values for a variance, got %d", ErrTooFewValues, len(s.Xs))
	}
	return stats.SampleVariance(s.Xs)
}

// Min returns the smallest observation.
func (s Sample) Min() (float64, error) {
	if len(s.Xs) == 0 {
		return 0, ErrEmptySample
	}
	return stats.Min(s.Xs)
}

// Max returns the largest observation.
func (s Sample) Max() (float64, error) {
	if len(s.Xs) == 0 {
		return 0, ErrEmptySample
	}
	return stats.Max(s.Xs)
}

// Median returns the middle observation.
func (s Sample) Median() (float64, error) {
	if len(s.Xs) == 0 {
		return 0, ErrEmptySample
	}
	return stats.Median(s.Xs)
}

// Percentile returns the p-th percentile, p in (0, 100].
func (s Sample) Percentile(p float64) (float64, error) {
	if len(s.Xs) == 0 {
		return 0, ErrEmptySample
	}
	return stats.Percentile(s.Xs, p)
}

// Summary contains the always-comparable descriptive statistics of a sample.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Summarize computes the full descriptive summary in one pass over the
// stats library. Requires at least two observations.
func (s Sample) Summarize() (Summary, error) {
	if len(s.Xs) < 2 {
		return Summary{}, fmt.Errorf("%w: need at least 2 values for a summary, got %d", ErrTooFewValues, len(s.Xs))
	}

	mean, err := stats.Mean(s.Xs)
	if err != nil {
		return Summary{}, err
	}
	stdDev, err := stats.StandardDeviationSample(s.Xs)
	if err != nil {
		return Summary{}, err
	}
	min, err := stats.Min(s.Xs)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(s.Xs)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(s.Xs)
	if err != nil {
		return Summary{}, err
	}
	q25, err := stats.Percentile(s.Xs, 25)
	if err != nil {
		return Summary{}, err
	}
	q75, err := stats.Percentile(s.Xs, 75)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		N:      len(s.Xs),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Q25:    q25,
		Median: median,
		Q75:    q75,
		Max:    max,
	}, nil
}

// Skewness computes sample skewness using the adjusted Fisher-Pearson
// coefficient with bias correction.
func (s Sample) Skewness() float64 {
	if len(s.Xs) < 3 {
		return 0
	}

	mean, _ := stats.Mean(s.Xs)
	stdDev, _ := stats.StandardDeviationSample(s.Xs)
	if stdDev == 0 || math.IsNaN(stdDev) {
		return 0
	}

	n := float64(len(s.Xs))
	sumCubedDeviations := 0.0
	for _, x := range s.Xs {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// Kurtosis computes total sample kurtosis (a normal distribution scores 3).
func (s Sample) Kurtosis() float64 {
	if len(s.Xs) < 4 {
		return 3.0 // Normal kurtosis
	}

	mean, _ := stats.Mean(s.Xs)
	stdDev, _ := stats.StandardDeviationSample(s.Xs)
	if stdDev == 0 || math.IsNaN(stdDev) {
		return 3.0
	}

	n := float64(len(s.Xs))
	sumFourthDeviations := 0.0
	for _, x := range s.Xs {
		deviation := (x - mean) / stdDev
		sumFourthDeviations += deviation * deviation * deviation * deviation
	}

	kurtosis := sumFourthDeviations / n

	// Bias correction for sample excess kurtosis
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		kurtosis = kurtosis*correction + 6/(n+1)
	}

	return kurtosis + 3
}

// Standardize returns the z-scores of the sample. All values of a constant
// sample standardize to zero.
func (s Sample) Standardize() (Sample, error) {
	if len(s.Xs) < 2 {
		return Sample{}, fmt.Errorf("%w: need at least 2 values to standardize, got %d", ErrTooFewValues, len(s.Xs))
	}

	mean, err := stats.Mean(s.Xs)
	if err != nil {
		return Sample{}, err
	}
	stdDev, err := stats.StandardDeviationSample(s.Xs)
	if err != nil {
		return Sample{}, err
	}

	zs := make([]float64, len(s.Xs))
	if stdDev == 0 {
		return Sample{Xs: zs}, nil
	}
	for i, x := range s.Xs {
		zs[i] = (x - mean) / stdDev
	}
	return Sample{Xs: zs}, nil
}
