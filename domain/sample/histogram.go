package sample

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram is an equal-width binned view of a sample. Edges has one more
// entry than Counts; bin i covers [Edges[i], Edges[i+1]) and the final bin
// is closed on the right so the maximum observation is always counted.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
	N      int       `json:"n"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
}

// Bins returns the number of bins.
func (h Histogram) Bins() int { return len(h.Counts) }

// MaxCount returns the largest bin count (used to scale rendered bars).
func (h Histogram) MaxCount() int {
	max := 0
	for _, c := range h.Counts {
		if c > max {
			max = c
		}
	}
	return max
}

// Histogram bins the sample into the given number of equal-width bins.
// A constant sample collapses into a single bin around its value.
func (s Sample) Histogram(bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, fmt.Errorf("histogram needs at least 1 bin, got %d", bins)
	}
	if err := s.Validate(); err != nil {
		return Histogram{}, err
	}

	sorted := make([]float64, len(s.Xs))
	copy(sorted, s.Xs)
	sort.Float64s(sorted)

	min := sorted[0]
	max := sorted[len(sorted)-1]

	if min == max {
		// Degenerate sample: one bin holding everything.
		return Histogram{
			Edges:  []float64{min, math.Nextafter(min, math.Inf(1))},
			Counts: []int{len(sorted)},
			N:      len(sorted),
			Min:    min,
			Max:    max,
		}, nil
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, min, max)
	// stat.Histogram requires max(x) strictly below the last divider.
	dividers[len(dividers)-1] = math.Nextafter(max, math.Inf(1))

	weights := stat.Histogram(nil, dividers, sorted, nil)

	counts := make([]int, len(weights))
	for i, w := range weights {
		counts[i] = int(w)
	}

	edges := make([]float64, len(dividers))
	copy(edges, dividers)
	edges[len(edges)-1] = max // report the true data range, not the nudged divider

	return Histogram{
		Edges:  edges,
		Counts: counts,
		N:      len(sorted),
		Min:    min,
		Max:    max,
	}, nil
}
