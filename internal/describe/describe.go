// Package describe reduces a numeric series to a printable profile:
// descriptive statistics, distribution shape, data quality, and a
// normality verdict.
package describe

import (
	"fmt"

	"gomonte/domain/montecarlo"
	"gomonte/domain/sample"
)

// Description is the complete profile of one numeric series.
type Description struct {
	Summary      sample.Summary            `json:"summary"`
	Skewness     float64                   `json:"skewness"`
	Kurtosis     float64                   `json:"kurtosis"`
	Normality    montecarlo.NormalityCheck `json:"normality"`
	Outliers     int                       `json:"outliers"`
	MissingRatio float64                   `json:"missing_ratio"`
}

// Describe profiles a sample. Non-finite values are removed first and
// reported through MissingRatio; at least two finite observations must
// remain.
func Describe(s sample.Sample) (Description, error) {
	clean, dropped := s.Clean()
	if clean.Len() < 2 {
		return Description{}, fmt.Errorf("describe needs at least 2 finite observations, got %d", clean.Len())
	}

	summary, err := clean.Summarize()
	if err != nil {
		return Description{}, err
	}

	return Description{
		Summary:      summary,
		Skewness:     clean.Skewness(),
		Kurtosis:     clean.Kurtosis(),
		Normality:    CheckNormality(clean),
		Outliers:     countOutliers(clean, summary.Q25, summary.Q75),
		MissingRatio: float64(dropped) / float64(s.Len()),
	}, nil
}

// countOutliers applies the usual IQR fences: below Q1 - 1.5 IQR or above
// Q3 + 1.5 IQR.
func countOutliers(s sample.Sample, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	count := 0
	for _, x := range s.Xs {
		if x < lower || x > upper {
			count++
		}
	}
	return count
}
