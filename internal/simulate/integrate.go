package simulate

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"gomonte/domain/montecarlo"
)

// Integrate estimates the integral as the average of Samples uniform
// evaluations of the integrand, scaled by the interval width. Mean and
// variance accumulate with Welford's update so N can be large without
// buffering the evaluations.
func Integrate(rng *rand.Rand, spec montecarlo.IntegrateSpec) (montecarlo.IntegralEstimate, error) {
	if _, err := montecarlo.NewIntegrateSpec(spec.Integrand, spec.Samples); err != nil {
		return montecarlo.IntegralEstimate{}, err
	}

	f := spec.Integrand
	width := f.Width()
	uniform := distuv.Uniform{Min: f.Lower, Max: f.Upper, Src: rng}

	mean, m2 := 0.0, 0.0
	for n := 1; n <= spec.Samples; n++ {
		y := f.Eval(uniform.Rand())
		delta := y - mean
		mean += delta / float64(n)
		m2 += delta * (y - mean)
	}

	estimate := width * mean
	stdError := 0.0
	if spec.Samples > 1 {
		variance := m2 / float64(spec.Samples-1)
		stdError = width * math.Sqrt(variance/float64(spec.Samples))
	}

	truth := f.Truth
	absErr := math.NaN()
	if f.HasTruth() {
		absErr = math.Abs(estimate - truth)
	}

	z := distuv.UnitNormal.Quantile(0.975)
	return montecarlo.IntegralEstimate{
		Spec:        spec,
		Estimate:    estimate,
		StdError:    stdError,
		Truth:       truth,
		AbsErr:      absErr,
		HalfWidth95: z * stdError,
	}, nil
}
