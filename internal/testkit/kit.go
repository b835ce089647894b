// Package testkit holds deterministic fixtures shared across package
// tests: seeded data generators and temp-file helpers for tabular tests.
package testkit

import (
	"encoding/csv"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat/distuv"
)

// Stream returns a fixed PCG stream for reproducible test data.
func Stream(hi, lo uint64) *rand.Rand {
	return rand.New(rand.NewPCG(hi, lo))
}

// Constant returns n copies of v.
func Constant(n int, v float64) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = v
	}
	return xs
}

// NormalDraws returns n draws from a normal distribution.
func NormalDraws(rng *rand.Rand, n int, mu, sigma float64) []float64 {
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: rng}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = d.Rand()
	}
	return xs
}

// ExponentialDraws returns n draws from an exponential distribution.
func ExponentialDraws(rng *rand.Rand, n int, rate float64) []float64 {
	d := distuv.Exponential{Rate: rate, Src: rng}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = d.Rand()
	}
	return xs
}

// LinearWithNoise returns xs 0..n-1 and ys = slope*x + intercept + noise.
func LinearWithNoise(rng *rand.Rand, n int, slope, intercept, sigma float64) (xs, ys []float64) {
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: rng}
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = slope*xs[i] + intercept + noise.Rand()
	}
	return xs, ys
}

// Quadratic returns xs 0..n-1 and ys = x*x.
func Quadratic(n int) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = xs[i] * xs[i]
	}
	return xs, ys
}

// WriteTempCSV writes rows to a CSV file in the test's temp dir and
// returns its path.
func WriteTempCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp CSV: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

// WriteTempXLSX writes rows to Sheet1 of an XLSX file in the test's temp
// dir and returns its path.
func WriteTempXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to compute cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to write XLSX row %d: %v", i, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save temp XLSX: %v", err)
	}
	return path
}
