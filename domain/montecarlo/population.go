package montecarlo

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Family identifies a population distribution the lab can draw from.
type Family string

const (
	FamilyNormal      Family = "normal"
	FamilyUniform     Family = "uniform"
	FamilyExponential Family = "exponential"
	FamilyBernoulli   Family = "bernoulli"
	FamilyLogNormal   Family = "lognormal"
)

// Families lists every supported population family.
func Families() []Family {
	return []Family{FamilyNormal, FamilyUniform, FamilyExponential, FamilyBernoulli, FamilyLogNormal}
}

// PopulationSpec describes a population distribution to draw IID samples
// from. Only the parameters of the selected family are consulted; the rest
// are ignored. Every family knows its own analytic mean and standard
// deviation so simulated results can always be compared against truth.
type PopulationSpec struct {
	Family Family  `json:"family"`
	Mu     float64 `json:"mu,omitempty"`    // normal, lognormal
	Sigma  float64 `json:"sigma,omitempty"` // normal, lognormal
	Rate   float64 `json:"rate,omitempty"`  // exponential
	P      float64 `json:"p,omitempty"`     // bernoulli
	Min    float64 `json:"min,omitempty"`   // uniform
	Max    float64 `json:"max,omitempty"`   // uniform
}

// Convenience constructors for the populations the lab demonstrates with.

// Normal returns a normal population with the given mean and standard deviation.
func Normal(mu, sigma float64) PopulationSpec {
	return PopulationSpec{Family: FamilyNormal, Mu: mu, Sigma: sigma}
}

// Uniform returns a uniform population on [min, max).
func Uniform(min, max float64) PopulationSpec {
	return PopulationSpec{Family: FamilyUniform, Min: min, Max: max}
}

// Exponential returns an exponential population with the given rate. This is
// the lab's deliberately skewed population.
func Exponential(rate float64) PopulationSpec {
	return PopulationSpec{Family: FamilyExponential, Rate: rate}
}

// Coin returns a Bernoulli population: 1 with probability p, else 0.
// A fair coin is Coin(0.5).
func Coin(p float64) PopulationSpec {
	return PopulationSpec{Family: FamilyBernoulli, P: p}
}

// LogNormal returns a lognormal population whose underlying normal has the
// given location and scale.
func LogNormal(mu, sigma float64) PopulationSpec {
	return PopulationSpec{Family: FamilyLogNormal, Mu: mu, Sigma: sigma}
}

// Validate checks the parameters of the selected family.
func (p PopulationSpec) Validate() error {
	switch p.Family {
	case FamilyNormal, FamilyLogNormal:
		if p.Sigma <= 0 || math.IsNaN(p.Sigma) || math.IsInf(p.Sigma, 0) {
			return fmt.Errorf("%s population needs sigma > 0, got %v", p.Family, p.Sigma)
		}
		if math.IsNaN(p.Mu) || math.IsInf(p.Mu, 0) {
			return fmt.Errorf("%s population needs a finite mu, got %v", p.Family, p.Mu)
		}
	case FamilyUniform:
		if !(p.Min < p.Max) {
			return fmt.Errorf("uniform population needs min < max, got [%v, %v)", p.Min, p.Max)
		}
	case FamilyExponential:
		if p.Rate <= 0 || math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
			return fmt.Errorf("exponential population needs rate > 0, got %v", p.Rate)
		}
	case FamilyBernoulli:
		if p.P < 0 || p.P > 1 || math.IsNaN(p.P) {
			return fmt.Errorf("bernoulli population needs p in [0, 1], got %v", p.P)
		}
	case "":
		return fmt.Errorf("population family is required, one of %v", Families())
	default:
		return fmt.Errorf("unknown population family %q, expected one of %v", p.Family, Families())
	}
	return nil
}

// Mean returns the analytic population mean.
func (p PopulationSpec) Mean() float64 {
	switch p.Family {
	case FamilyNormal:
		return p.Mu
	case FamilyUniform:
		return (p.Min + p.Max) / 2
	case FamilyExponential:
		return 1 / p.Rate
	case FamilyBernoulli:
		return p.P
	case FamilyLogNormal:
		return math.Exp(p.Mu + p.Sigma*p.Sigma/2)
	}
	return math.NaN()
}

// StdDev returns the analytic population standard deviation.
func (p PopulationSpec) StdDev() float64 {
	switch p.Family {
	case FamilyNormal:
		return p.Sigma
	case FamilyUniform:
		return (p.Max - p.Min) / math.Sqrt(12)
	case FamilyExponential:
		return 1 / p.Rate
	case FamilyBernoulli:
		return math.Sqrt(p.P * (1 - p.P))
	case FamilyLogNormal:
		s2 := p.Sigma * p.Sigma
		return math.Sqrt((math.Exp(s2) - 1) * math.Exp(2*p.Mu+s2))
	}
	return math.NaN()
}

// Sampler binds the spec to a random source and returns a draw function.
// The spec must have been validated first.
func (p PopulationSpec) Sampler(src rand.Source) func() float64 {
	switch p.Family {
	case FamilyNormal:
		d := distuv.Normal{Mu: p.Mu, Sigma: p.Sigma, Src: src}
		return d.Rand
	case FamilyUniform:
		d := distuv.Uniform{Min: p.Min, Max: p.Max, Src: src}
		return d.Rand
	case FamilyExponential:
		d := distuv.Exponential{Rate: p.Rate, Src: src}
		return d.Rand
	case FamilyBernoulli:
		d := distuv.Bernoulli{P: p.P, Src: src}
		return d.Rand
	case FamilyLogNormal:
		d := distuv.LogNormal{Mu: p.Mu, Sigma: p.Sigma, Src: src}
		return d.Rand
	}
	panic(fmt.Sprintf("montecarlo: unvalidated population family %q", p.Family))
}

// String describes the population with its active parameters.
func (p PopulationSpec) String() string {
	switch p.Family {
	case FamilyNormal:
		return fmt.Sprintf("normal(mu=%g, sigma=%g)", p.Mu, p.Sigma)
	case FamilyUniform:
		return fmt.Sprintf("uniform[%g, %g)", p.Min, p.Max)
	case FamilyExponential:
		return fmt.Sprintf("exponential(rate=%g)", p.Rate)
	case FamilyBernoulli:
		return fmt.Sprintf("bernoulli(p=%g)", p.P)
	case FamilyLogNormal:
		return fmt.Sprintf("lognormal(mu=%g, sigma=%g)", p.Mu, p.Sigma)
	}
	return string(p.Family)
}
