package simulate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"

	"gomonte/domain/montecarlo"
)

// StreamProvider hands out an independent deterministic stream for a named
// sub-computation. Results cannot depend on the order keys are requested.
type StreamProvider func(key string) (*rand.Rand, error)

// ErrorScaling measures how Monte Carlo integration error shrinks with
// sample size: Trials independent estimates at each N, reduced to the RMS
// error against the analytic truth, then a least-squares fit of log RMSE
// against log N. Each (N, trial) pair draws from its own derived stream so
// the study replays identically regardless of scheduling.
func ErrorScaling(streams StreamProvider, spec montecarlo.ScalingSpec) (montecarlo.ErrorScaling, error) {
	if _, err := montecarlo.NewScalingSpec(spec.Integrand, spec.SampleSizes, spec.Trials); err != nil {
		return montecarlo.ErrorScaling{}, err
	}

	points := make([]montecarlo.ScalingPoint, 0, len(spec.SampleSizes))
	logN := make([]float64, 0, len(spec.SampleSizes))
	logRMSE := make([]float64, 0, len(spec.SampleSizes))

	for _, n := range spec.SampleSizes {
		sumSq, sumAbs := 0.0, 0.0
		for trial := 0; trial < spec.Trials; trial++ {
			rng, err := streams(fmt.Sprintf("n=%d/trial=%d", n, trial))
			if err != nil {
				return montecarlo.ErrorScaling{}, err
			}
			est, err := Integrate(rng, montecarlo.IntegrateSpec{Integrand: spec.Integrand, Samples: n})
			if err != nil {
				return montecarlo.ErrorScaling{}, err
			}
			sumSq += est.AbsErr * est.AbsErr
			sumAbs += est.AbsErr
		}
		rmse := math.Sqrt(sumSq / float64(spec.Trials))
		points = append(points, montecarlo.ScalingPoint{
			N:       n,
			RMSErr:  rmse,
			MeanErr: sumAbs / float64(spec.Trials),
		})
		if rmse > 0 {
			logN = append(logN, math.Log(float64(n)))
			logRMSE = append(logRMSE, math.Log(rmse))
		}
	}

	if len(logN) < 2 {
		return montecarlo.ErrorScaling{}, fmt.Errorf("error scaling needs at least 2 sample sizes with nonzero error, got %d", len(logN))
	}

	intercept, slope := stat.LinearRegression(logN, logRMSE, nil, false)
	r2 := stat.RSquared(logN, logRMSE, nil, intercept, slope)

	return montecarlo.ErrorScaling{
		Spec:      spec,
		Points:    points,
		Slope:     slope,
		Intercept: intercept,
		R2:        r2,
	}, nil
}
