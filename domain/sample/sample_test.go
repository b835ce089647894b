package sample

import (
	"errors"
	"math"
	"testing"
)

func TestCleanDropsNonFinite(t *testing.T) {
	s := New([]float64{1, math.NaN(), 2, math.Inf(1), 3, math.Inf(-1)})
	clean, dropped := s.Clean()
	if dropped != 3 {
		t.Errorf("dropped = %d, want 3", dropped)
	}
	if clean.Len() != 3 {
		t.Errorf("clean length = %d, want 3", clean.Len())
	}
	for i, want := range []float64{1, 2, 3} {
		if clean.Xs[i] != want {
			t.Errorf("clean.Xs[%d] = %g, want %g", i, clean.Xs[i], want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		xs      []float64
		wantErr error
	}{
		{"empty", nil, ErrEmptySample},
		{"nan", []float64{1, math.NaN()}, ErrNonFiniteValue},
		{"inf", []float64{math.Inf(1)}, ErrNonFiniteValue},
		{"ok", []float64{1, 2, 3}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.xs).Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDescriptiveStatistics(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	mean, err := s.Mean()
	if err != nil {
		t.Fatalf("Mean: %v", err)
	}
	if mean != 5 {
		t.Errorf("Mean = %g, want 5", mean)
	}

	sum, err := s.Sum()
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if sum != 40 {
		t.Errorf("Sum = %g, want 40", sum)
	}

	variance, err := s.Variance()
	if err != nil {
		t.Fatalf("Variance: %v", err)
	}
	if math.Abs(variance-32.0/7.0) > 1e-12 {
		t.Errorf("Variance = %g, want %g", variance, 32.0/7.0)
	}

	stdDev, err := s.StdDev()
	if err != nil {
		t.Fatalf("StdDev: %v", err)
	}
	if math.Abs(stdDev-math.Sqrt(32.0/7.0)) > 1e-12 {
		t.Errorf("StdDev = %g, want %g", stdDev, math.Sqrt(32.0/7.0))
	}

	min, _ := s.Min()
	max, _ := s.Max()
	if min != 2 || max != 9 {
		t.Errorf("Min, Max = %g, %g, want 2, 9", min, max)
	}

	median, err := s.Median()
	if err != nil {
		t.Fatalf("Median: %v", err)
	}
	if median != 4.5 {
		t.Errorf("Median = %g, want 4.5", median)
	}
}

func TestStatisticsRejectDegenerateSamples(t *testing.T) {
	empty := New(nil)
	if _, err := empty.Mean(); !errors.Is(err, ErrEmptySample) {
		t.Errorf("Mean on empty = %v, want ErrEmptySample", err)
	}
	if _, err := empty.Median(); !errors.Is(err, ErrEmptySample) {
		t.Errorf("Median on empty = %v, want ErrEmptySample", err)
	}

	single := New([]float64{1})
	if _, err := single.StdDev(); !errors.Is(err, ErrTooFewValues) {
		t.Errorf("StdDev on 1 value = %v, want ErrTooFewValues", err)
	}
	if _, err := single.Variance(); !errors.Is(err, ErrTooFewValues) {
		t.Errorf("Variance on 1 value = %v, want ErrTooFewValues", err)
	}
	if _, err := single.Summarize(); !errors.Is(err, ErrTooFewValues) {
		t.Errorf("Summarize on 1 value = %v, want ErrTooFewValues", err)
	}
}

func TestSummarize(t *testing.T) {
	xs := make([]float64, 100)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	summary, err := New(xs).Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if summary.N != 100 {
		t.Errorf("N = %d, want 100", summary.N)
	}
	if summary.Mean != 50.5 {
		t.Errorf("Mean = %g, want 50.5", summary.Mean)
	}
	if summary.Min != 1 || summary.Max != 100 {
		t.Errorf("Min, Max = %g, %g, want 1, 100", summary.Min, summary.Max)
	}
	if summary.Median != 50.5 {
		t.Errorf("Median = %g, want 50.5", summary.Median)
	}
	if summary.Q25 >= summary.Median || summary.Median >= summary.Q75 {
		t.Errorf("quartiles out of order: q25=%g median=%g q75=%g",
			summary.Q25, summary.Median, summary.Q75)
	}
}

func TestSkewness(t *testing.T) {
	symmetric := New([]float64{1, 2, 3, 4, 5})
	if got := symmetric.Skewness(); math.Abs(got) > 1e-12 {
		t.Errorf("symmetric skewness = %g, want 0", got)
	}

	// A long right tail skews positive.
	rightTailed := New([]float64{1, 1, 1, 1, 1, 2, 2, 3, 10, 50})
	if got := rightTailed.Skewness(); got <= 1 {
		t.Errorf("right-tailed skewness = %g, want > 1", got)
	}

	if got := New([]float64{1, 2}).Skewness(); got != 0 {
		t.Errorf("skewness of 2 values = %g, want 0", got)
	}
	if got := New([]float64{5, 5, 5, 5}).Skewness(); got != 0 {
		t.Errorf("skewness of constant sample = %g, want 0", got)
	}
}

func TestKurtosis(t *testing.T) {
	// Heavy tails push total kurtosis well above the normal value of 3.
	heavy := New([]float64{0, 0, 0, 0, 0, 0, 0, 0, -20, 20})
	if got := heavy.Kurtosis(); got <= 3 {
		t.Errorf("heavy-tailed kurtosis = %g, want > 3", got)
	}

	if got := New([]float64{1, 2, 3}).Kurtosis(); got != 3 {
		t.Errorf("kurtosis of 3 values = %g, want normal fallback 3", got)
	}
	if got := New([]float64{7, 7, 7, 7, 7}).Kurtosis(); got != 3 {
		t.Errorf("kurtosis of constant sample = %g, want 3", got)
	}
}

func TestStandardize(t *testing.T) {
	s := New([]float64{10, 20, 30, 40, 50})
	z, err := s.Standardize()
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}

	mean, _ := z.Mean()
	if math.Abs(mean) > 1e-12 {
		t.Errorf("standardized mean = %g, want 0", mean)
	}
	stdDev, _ := z.StdDev()
	if math.Abs(stdDev-1) > 1e-12 {
		t.Errorf("standardized stddev = %g, want 1", stdDev)
	}

	constant, err := New([]float64{3, 3, 3}).Standardize()
	if err != nil {
		t.Fatalf("Standardize constant: %v", err)
	}
	for i, v := range constant.Xs {
		if v != 0 {
			t.Errorf("constant z-score[%d] = %g, want 0", i, v)
		}
	}
}
