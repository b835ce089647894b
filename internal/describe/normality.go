package describe

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gomonte/domain/montecarlo"
	"gomonte/domain/sample"
)

const normalityAlpha = 0.05

// CheckNormality tests whether a sample is plausibly normal. Samples of 8
// or more use D'Agostino's K^2 test; very small samples fall back to a
// conservative moment-based approximation. Non-finite and degenerate
// samples are never normal.
func CheckNormality(s sample.Sample) montecarlo.NormalityCheck {
	clean, _ := s.Clean()
	if clean.Len() < 3 {
		return montecarlo.NormalityCheck{PValue: 1, Normal: false, Method: "insufficient-data"}
	}
	if clean.Len() >= 8 {
		return dagostinoK2(clean)
	}
	return momentApprox(clean)
}

// dagostinoK2 combines transformed skewness and kurtosis into the K^2
// statistic, chi-squared with 2 degrees of freedom under normality.
// Transforms follow D'Agostino (skewness) and Anscombe-Glynn (kurtosis).
func dagostinoK2(s sample.Sample) montecarlo.NormalityCheck {
	n := float64(s.Len())
	notNormal := montecarlo.NormalityCheck{PValue: 0, Normal: false, Method: "dagostino-k2"}

	stdDev, err := s.StdDev()
	if err != nil || stdDev == 0 || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return notNormal
	}

	g1 := s.Skewness()
	g2 := s.Kurtosis() // total kurtosis, normal scores 3

	// Skewness transform to Z1.
	y := g1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := (3 * (n*n + 27*n - 70) * (n + 1) * (n + 3)) / ((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	if w2 <= 0 {
		return notNormal
	}
	delta := 1 / math.Sqrt(math.Log(math.Sqrt(w2)))
	alpha := math.Sqrt(2 / (w2 - 1))
	ay := y / alpha
	z1 := delta * math.Log(ay+math.Sqrt(ay*ay+1))

	// Kurtosis transform to Z2.
	e := 3 * (n - 1) / (n + 1)
	v := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	if v <= 0 {
		return notNormal
	}
	x := (g2 - e) / math.Sqrt(v)

	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) * math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	if a <= 4 {
		return notNormal
	}

	term := 1 - 2/(9*a)
	den := 1 + x*math.Sqrt(2/(a-4))
	if den <= 0 {
		// Invalid fractional power; kurtosis is far out in the tail.
		return notNormal
	}
	z2 := (term - math.Pow((1-2/a)/den, 1.0/3.0)) / math.Sqrt(2/(9*a))

	k2 := z1*z1 + z2*z2
	pValue := 1 - distuv.ChiSquared{K: 2}.CDF(k2)

	return montecarlo.NormalityCheck{
		Statistic: k2,
		PValue:    pValue,
		Normal:    pValue > normalityAlpha,
		Method:    "dagostino-k2",
	}
}

// momentApprox is the small-sample fallback: a Jarque-Bera-style statistic
// from skewness and excess kurtosis against chi-squared with 2 degrees of
// freedom. Conservative by construction.
func momentApprox(s sample.Sample) montecarlo.NormalityCheck {
	skew := s.Skewness()
	excess := s.Kurtosis() - 3

	stat := math.Abs(skew) + math.Abs(excess)/2
	pValue := 1 - distuv.ChiSquared{K: 2}.CDF(stat*stat)

	return montecarlo.NormalityCheck{
		Statistic: stat,
		PValue:    pValue,
		Normal:    pValue > normalityAlpha,
		Method:    "moment-approx",
	}
}
