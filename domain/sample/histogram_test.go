package sample

import (
	"errors"
	"math"
	"testing"
)

func TestHistogramEqualWidthBins(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	h, err := New(xs).Histogram(5)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}

	if h.Bins() != 5 {
		t.Fatalf("Bins() = %d, want 5", h.Bins())
	}
	if len(h.Edges) != 6 {
		t.Fatalf("len(Edges) = %d, want 6", len(h.Edges))
	}
	for _, c := range h.Counts {
		if c != 2 {
			t.Errorf("Counts = %v, want 2 per bin", h.Counts)
			break
		}
	}
	if h.N != 10 || h.Min != 1 || h.Max != 10 {
		t.Errorf("N, Min, Max = %d, %g, %g, want 10, 1, 10", h.N, h.Min, h.Max)
	}
	if h.Edges[0] != 1 || h.Edges[5] != 10 {
		t.Errorf("edge range = [%g, %g], want [1, 10]", h.Edges[0], h.Edges[5])
	}
}

func TestHistogramCountsEveryObservation(t *testing.T) {
	// The maximum lands exactly on the last edge; it must still be
	// counted in the final bin.
	xs := []float64{0, 0.25, 0.5, 0.75, 1}
	h, err := New(xs).Histogram(4)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}

	total := 0
	for _, c := range h.Counts {
		total += c
	}
	if total != len(xs) {
		t.Errorf("total count = %d, want %d (counts %v)", total, len(xs), h.Counts)
	}
	if h.Counts[len(h.Counts)-1] == 0 {
		t.Error("final bin lost the maximum observation")
	}
}

func TestHistogramConstantSample(t *testing.T) {
	h, err := New([]float64{3, 3, 3, 3}).Histogram(10)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if h.Bins() != 1 {
		t.Fatalf("Bins() = %d, want 1 for a constant sample", h.Bins())
	}
	if h.Counts[0] != 4 {
		t.Errorf("Counts[0] = %d, want 4", h.Counts[0])
	}
	if h.Min != 3 || h.Max != 3 {
		t.Errorf("Min, Max = %g, %g, want 3, 3", h.Min, h.Max)
	}
}

func TestHistogramRejectsBadInput(t *testing.T) {
	if _, err := New([]float64{1, 2}).Histogram(0); err == nil {
		t.Error("expected error for zero bins")
	}
	if _, err := New(nil).Histogram(5); !errors.Is(err, ErrEmptySample) {
		t.Errorf("expected ErrEmptySample, got %v", err)
	}
	if _, err := New([]float64{1, math.NaN()}).Histogram(5); !errors.Is(err, ErrNonFiniteValue) {
		t.Errorf("expected ErrNonFiniteValue, got %v", err)
	}
}

func TestHistogramMaxCount(t *testing.T) {
	h, err := New([]float64{1, 1, 1, 2, 3}).Histogram(2)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if got := h.MaxCount(); got != 3 {
		t.Errorf("MaxCount() = %d, want 3 (counts %v)", got, h.Counts)
	}
}

func TestHistogramEmptyMaxCount(t *testing.T) {
	var h Histogram
	if got := h.MaxCount(); got != 0 {
		t.Errorf("MaxCount() on zero value = %d, want 0", got)
	}
}
