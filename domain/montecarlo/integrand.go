package montecarlo

import (
	"fmt"
	"math"
	"sort"
)

// IntegrandSpec names a one-dimensional integrand over [Lower, Upper].
// Truth holds the analytic value of the integral when one is known; NaN
// marks it unknown.
type IntegrandSpec struct {
	Name  string  `json:"name"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Truth float64 `json:"truth"`

	fn func(float64) float64
}

// Validate checks the integrand has a function and a proper interval.
func (s IntegrandSpec) Validate() error {
	if s.fn == nil {
		return fmt.Errorf("integrand %q has no function; look it up with LookupIntegrand", s.Name)
	}
	if !(s.Lower < s.Upper) {
		return fmt.Errorf("integrand %q needs lower < upper, got [%v, %v]", s.Name, s.Lower, s.Upper)
	}
	return nil
}

// HasTruth reports whether the analytic value of the integral is known.
func (s IntegrandSpec) HasTruth() bool { return !math.IsNaN(s.Truth) }

// Eval evaluates the integrand at x.
func (s IntegrandSpec) Eval(x float64) float64 { return s.fn(x) }

// Width returns the length of the integration interval.
func (s IntegrandSpec) Width() float64 { return s.Upper - s.Lower }

// The built-in integrands. unit-quarter-circle is the classic pi estimator:
// the mean of sqrt(1-x^2) over [0,1] is pi/4.
var integrands = map[string]IntegrandSpec{
	"unit-quarter-circle": {
		Name: "unit-quarter-circle", Lower: 0, Upper: 1, Truth: math.Pi / 4,
		fn: func(x float64) float64 { return math.Sqrt(1 - x*x) },
	},
	"sin": {
		Name: "sin", Lower: 0, Upper: math.Pi, Truth: 2,
		fn: math.Sin,
	},
	"exp": {
		Name: "exp", Lower: 0, Upper: 1, Truth: math.E - 1,
		fn: math.Exp,
	},
	"poly": {
		Name: "poly", Lower: 0, Upper: 3, Truth: 9,
		fn: func(x float64) float64 { return x * x },
	},
	"peaked": {
		Name: "peaked", Lower: -1, Upper: 1, Truth: 2.0 / 5.0 * math.Atan(5),
		fn: func(x float64) float64 { return 1 / (1 + 25*x*x) },
	},
}

// LookupIntegrand returns a built-in integrand by name. Unknown names get
// an error listing what exists.
func LookupIntegrand(name string) (IntegrandSpec, error) {
	s, ok := integrands[name]
	if !ok {
		return IntegrandSpec{}, fmt.Errorf("unknown integrand %q, available: %v", name, IntegrandNames())
	}
	return s, nil
}

// MustLookupIntegrand is LookupIntegrand for tests and fixtures; it panics on error.
func MustLookupIntegrand(name string) IntegrandSpec {
	s, err := LookupIntegrand(name)
	if err != nil {
		panic(err)
	}
	return s
}

// NewIntegrand builds a custom integrand. Pass math.NaN() as truth when the
// analytic value is unknown.
func NewIntegrand(name string, lower, upper, truth float64, fn func(float64) float64) (IntegrandSpec, error) {
	if name == "" {
		return IntegrandSpec{}, fmt.Errorf("integrand needs a name")
	}
	if fn == nil {
		return IntegrandSpec{}, fmt.Errorf("integrand %q needs a function", name)
	}
	s := IntegrandSpec{Name: name, Lower: lower, Upper: upper, Truth: truth, fn: fn}
	if err := s.Validate(); err != nil {
		return IntegrandSpec{}, err
	}
	return s, nil
}

// IntegrandNames lists the built-in integrands in sorted order.
func IntegrandNames() []string {
	names := make([]string, 0, len(integrands))
	for name := range integrands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
