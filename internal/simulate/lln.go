// Package simulate holds the lab's computational engines. Every engine is
// a pure function of its spec and a random stream: same stream, same
// result, no I/O.
package simulate

import (
	"math"
	"math/rand/v2"

	"gomonte/domain/montecarlo"
)

// LLN simulates the law of large numbers: Draws IID draws from the
// population, with the running mean recorded at each checkpoint. One pass,
// O(Draws), nothing buffered.
func LLN(rng *rand.Rand, spec montecarlo.LLNSpec) (montecarlo.ConvergencePath, error) {
	if _, err := montecarlo.NewLLNSpec(spec.Population, spec.Draws, spec.Checkpoints); err != nil {
		return montecarlo.ConvergencePath{}, err
	}

	draw := spec.Population.Sampler(rng)
	trueMean := spec.Population.Mean()

	points := make([]montecarlo.ConvergencePoint, 0, len(spec.Checkpoints))
	sum := 0.0
	next := 0
	for n := 1; n <= spec.Draws; n++ {
		sum += draw()
		if next < len(spec.Checkpoints) && n == spec.Checkpoints[next] {
			mean := sum / float64(n)
			points = append(points, montecarlo.ConvergencePoint{
				N:           n,
				RunningMean: mean,
				AbsErr:      math.Abs(mean - trueMean),
			})
			next++
		}
	}

	finalMean := sum / float64(spec.Draws)
	return montecarlo.ConvergencePath{
		Spec:        spec,
		Points:      points,
		FinalMean:   finalMean,
		TrueMean:    trueMean,
		FinalAbsErr: math.Abs(finalMean - trueMean),
	}, nil
}
