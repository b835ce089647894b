package montecarlo

import "fmt"

// LLNSpec describes a law-of-large-numbers run: simulate Draws IID draws
// from the population and record the running mean at each checkpoint.
type LLNSpec struct {
	Population  PopulationSpec `json:"population"`
	Draws       int            `json:"draws"`
	Checkpoints []int          `json:"checkpoints"`
}

// NewLLNSpec validates and constructs an LLNSpec. Checkpoints must be
// strictly increasing and each at most Draws; when empty, a single
// checkpoint at Draws is implied.
func NewLLNSpec(pop PopulationSpec, draws int, checkpoints []int) (LLNSpec, error) {
	if err := pop.Validate(); err != nil {
		return LLNSpec{}, err
	}
	if draws < 1 {
		return LLNSpec{}, fmt.Errorf("lln run needs at least 1 draw, got %d", draws)
	}
	if len(checkpoints) == 0 {
		checkpoints = []int{draws}
	}
	prev := 0
	for i, c := range checkpoints {
		if c <= prev {
			return LLNSpec{}, fmt.Errorf("checkpoints must be strictly increasing, got %d after %d at position %d", c, prev, i)
		}
		if c > draws {
			return LLNSpec{}, fmt.Errorf("checkpoint %d exceeds total draws %d", c, draws)
		}
		prev = c
	}
	return LLNSpec{Population: pop, Draws: draws, Checkpoints: checkpoints}, nil
}

// MustNewLLNSpec is NewLLNSpec for tests and fixtures; it panics on error.
func MustNewLLNSpec(pop PopulationSpec, draws int, checkpoints []int) LLNSpec {
	s, err := NewLLNSpec(pop, draws, checkpoints)
	if err != nil {
		panic(err)
	}
	return s
}

// SamplingSpec describes a sampling-distribution run: draw Replicates
// independent samples of SampleSize and collect each sample's mean.
type SamplingSpec struct {
	Population PopulationSpec `json:"population"`
	SampleSize int            `json:"sample_size"`
	Replicates int            `json:"replicates"`
}

// NewSamplingSpec validates and constructs a SamplingSpec. SampleSize must
// be at least 2 so each sample has a standard error; Replicates must be at
// least 2 so the collected means have a spread.
func NewSamplingSpec(pop PopulationSpec, sampleSize, replicates int) (SamplingSpec, error) {
	if err := pop.Validate(); err != nil {
		return SamplingSpec{}, err
	}
	if sampleSize < 2 {
		return SamplingSpec{}, fmt.Errorf("sampling run needs sample size >= 2, got %d", sampleSize)
	}
	if replicates < 2 {
		return SamplingSpec{}, fmt.Errorf("sampling run needs at least 2 replicates, got %d", replicates)
	}
	return SamplingSpec{Population: pop, SampleSize: sampleSize, Replicates: replicates}, nil
}

// MustNewSamplingSpec is NewSamplingSpec for tests and fixtures; it panics on error.
func MustNewSamplingSpec(pop PopulationSpec, sampleSize, replicates int) SamplingSpec {
	s, err := NewSamplingSpec(pop, sampleSize, replicates)
	if err != nil {
		panic(err)
	}
	return s
}

// IntegrateSpec describes one Monte Carlo integral: average Samples uniform
// evaluations of the integrand over its interval.
type IntegrateSpec struct {
	Integrand IntegrandSpec `json:"integrand"`
	Samples   int           `json:"samples"`
}

// NewIntegrateSpec validates and constructs an IntegrateSpec.
func NewIntegrateSpec(integrand IntegrandSpec, samples int) (IntegrateSpec, error) {
	if err := integrand.Validate(); err != nil {
		return IntegrateSpec{}, err
	}
	if samples < 1 {
		return IntegrateSpec{}, fmt.Errorf("integration needs at least 1 sample, got %d", samples)
	}
	return IntegrateSpec{Integrand: integrand, Samples: samples}, nil
}

// MustNewIntegrateSpec is NewIntegrateSpec for tests and fixtures; it panics on error.
func MustNewIntegrateSpec(integrand IntegrandSpec, samples int) IntegrateSpec {
	s, err := NewIntegrateSpec(integrand, samples)
	if err != nil {
		panic(err)
	}
	return s
}

// ScalingSpec describes an error-scaling study: at each sample size run
// Trials independent integral estimates, record the RMS error against the
// analytic truth, then fit log RMSE against log N.
type ScalingSpec struct {
	Integrand   IntegrandSpec `json:"integrand"`
	SampleSizes []int         `json:"sample_sizes"`
	Trials      int           `json:"trials"`
}

// NewScalingSpec validates and constructs a ScalingSpec. The integrand must
// know its analytic truth, there must be at least two sample sizes (a slope
// needs two points), and the sizes must be strictly increasing.
func NewScalingSpec(integrand IntegrandSpec, sampleSizes []int, trials int) (ScalingSpec, error) {
	if err := integrand.Validate(); err != nil {
		return ScalingSpec{}, err
	}
	if !integrand.HasTruth() {
		return ScalingSpec{}, fmt.Errorf("error scaling needs an integrand with a known truth, %q has none", integrand.Name)
	}
	if len(sampleSizes) < 2 {
		return ScalingSpec{}, fmt.Errorf("error scaling needs at least 2 sample sizes, got %d", len(sampleSizes))
	}
	prev := 1
	for i, n := range sampleSizes {
		if n < 2 {
			return ScalingSpec{}, fmt.Errorf("error scaling sample sizes must be >= 2, got %d at position %d", n, i)
		}
		if n <= prev {
			return ScalingSpec{}, fmt.Errorf("error scaling sample sizes must be strictly increasing, got %d after %d", n, prev)
		}
		prev = n
	}
	if trials < 1 {
		return ScalingSpec{}, fmt.Errorf("error scaling needs at least 1 trial per sample size, got %d", trials)
	}
	return ScalingSpec{Integrand: integrand, SampleSizes: sampleSizes, Trials: trials}, nil
}

// MustNewScalingSpec is NewScalingSpec for tests and fixtures; it panics on error.
func MustNewScalingSpec(integrand IntegrandSpec, sampleSizes []int, trials int) ScalingSpec {
	s, err := NewScalingSpec(integrand, sampleSizes, trials)
	if err != nil {
		panic(err)
	}
	return s
}
