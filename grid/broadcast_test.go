package grid

import (
	"errors"
	"strings"
	"testing"
)

func TestBroadcastShapes(t *testing.T) {
	m := MustNew(2, 3, []float64{1, 2, 3, 4, 5, 6})

	tests := []struct {
		name string
		b    *Grid
		want *Grid
	}{
		{
			"same shape",
			MustNew(2, 3, []float64{10, 10, 10, 20, 20, 20}),
			MustNew(2, 3, []float64{11, 12, 13, 24, 25, 26}),
		},
		{
			"row vector (1,n)",
			MustNew(1, 3, []float64{10, 20, 30}),
			MustNew(2, 3, []float64{11, 22, 33, 14, 25, 36}),
		},
		{
			"column vector (m,1)",
			MustNew(2, 1, []float64{10, 20}),
			MustNew(2, 3, []float64{11, 12, 13, 24, 25, 26}),
		},
		{
			"scalar grid (1,1)",
			MustNew(1, 1, []float64{100}),
			MustNew(2, 3, []float64{101, 102, 103, 104, 105, 106}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(m, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Add result wrong for %s", tt.name)
			}

			// Broadcasting commutes for addition.
			flipped, err := Add(tt.b, m)
			if err != nil {
				t.Fatal(err)
			}
			if !flipped.Equal(tt.want) {
				t.Errorf("Add should commute for %s", tt.name)
			}
		})
	}
}

func TestBroadcastIncompatible(t *testing.T) {
	a := MustNew(2, 3, make([]float64, 6))
	b := MustNew(3, 2, make([]float64, 6))

	_, err := Add(a, b)
	if err == nil {
		t.Fatal("incompatible shapes should be rejected")
	}
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("want *ShapeError, got %T", err)
	}
	// The error names both shapes.
	if !strings.Contains(err.Error(), "(2, 3)") || !strings.Contains(err.Error(), "(3, 2)") {
		t.Errorf("shape error should name both shapes: %v", err)
	}
}

func TestSubMulDiv(t *testing.T) {
	a := MustNew(2, 2, []float64{6, 8, 10, 12})
	b := MustNew(1, 2, []float64{2, 4})

	sub, err := Sub(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !sub.Equal(MustNew(2, 2, []float64{4, 4, 8, 8})) {
		t.Error("Sub with row broadcast wrong")
	}

	mul, err := Mul(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !mul.Equal(MustNew(2, 2, []float64{12, 32, 20, 48})) {
		t.Error("Mul with row broadcast wrong")
	}

	div, err := Div(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !div.Equal(MustNew(2, 2, []float64{3, 2, 5, 3})) {
		t.Error("Div with row broadcast wrong")
	}
}

func TestScalarOps(t *testing.T) {
	g := MustNew(2, 2, []float64{1, 2, 3, 4})
	if !g.AddScalar(10).Equal(MustNew(2, 2, []float64{11, 12, 13, 14})) {
		t.Error("AddScalar wrong")
	}
	if !g.MulScalar(2).Equal(MustNew(2, 2, []float64{2, 4, 6, 8})) {
		t.Error("MulScalar wrong")
	}
	if g.At(0, 0) != 1 {
		t.Error("scalar ops should not mutate the receiver")
	}
}

func TestMatMul(t *testing.T) {
	a := MustNew(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := MustNew(3, 2, []float64{7, 8, 9, 10, 11, 12})

	got, err := MatMul(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := MustNew(2, 2, []float64{58, 64, 139, 154})
	if !got.Equal(want) {
		t.Error("MatMul result wrong")
	}

	if _, err := MatMul(a, a); err == nil {
		t.Error("inner-dimension mismatch should be rejected")
	}
}

func TestDenseRoundTrip(t *testing.T) {
	g := MustNew(2, 3, []float64{1, 2, 3, 4, 5, 6})
	back, err := FromDense(g.ToDense())
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(g) {
		t.Error("ToDense/FromDense should round-trip")
	}

	// Views round-trip through their compacted form.
	v, _ := g.Slice(0, 2, 1, 3)
	backV, err := FromDense(v.ToDense())
	if err != nil {
		t.Fatal(err)
	}
	if !backV.Equal(v) {
		t.Error("view should round-trip through Dense")
	}
}
