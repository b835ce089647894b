package grid

import (
	"math"
	"testing"
)

func TestConstruction(t *testing.T) {
	if _, err := New(2, 3, []float64{1, 2, 3, 4, 5}); err == nil {
		t.Error("length mismatch should be rejected")
	}
	if _, err := New(0, 3, nil); err == nil {
		t.Error("zero rows should be rejected")
	}

	g := MustNew(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if g.At(0, 0) != 1 || g.At(1, 2) != 6 {
		t.Errorf("row-major layout broken: At(0,0)=%v, At(1,2)=%v", g.At(0, 0), g.At(1, 2))
	}

	eye, err := Identity(3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if eye.At(i, j) != want {
				t.Errorf("identity At(%d,%d) = %v, want %v", i, j, eye.At(i, j), want)
			}
		}
	}

	full, _ := Full(2, 2, 7)
	if full.At(1, 1) != 7 {
		t.Errorf("Full should fill every element, got %v", full.At(1, 1))
	}
}

func TestArange(t *testing.T) {
	g, err := Arange(0, 1, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.25, 0.5, 0.75}
	if g.Cols() != len(want) {
		t.Fatalf("Arange(0,1,0.25) has %d elements, want %d", g.Cols(), len(want))
	}
	for j, w := range want {
		if g.At(0, j) != w {
			t.Errorf("Arange[%d] = %v, want %v", j, g.At(0, j), w)
		}
	}

	if _, err := Arange(0, 1, 0); err == nil {
		t.Error("zero step should be rejected")
	}
	if _, err := Arange(0, 1, -1); err == nil {
		t.Error("step away from stop should be rejected")
	}
}

func TestLinspace(t *testing.T) {
	g, err := Linspace(0, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for j, w := range want {
		if math.Abs(g.At(0, j)-w) > 1e-15 {
			t.Errorf("Linspace[%d] = %v, want %v", j, g.At(0, j), w)
		}
	}
	// Endpoint is inclusive, unlike Arange.
	if g.At(0, 4) != 1 {
		t.Errorf("Linspace endpoint = %v, want exactly 1", g.At(0, 4))
	}
}

func TestFromRowsRaggedRejected(t *testing.T) {
	if _, err := FromRows([][]float64{{1, 2}, {3}}); err == nil {
		t.Error("ragged rows should be rejected")
	}
	g, err := FromRows([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	if g.At(1, 0) != 3 {
		t.Errorf("FromRows At(1,0) = %v, want 3", g.At(1, 0))
	}
}

func TestSliceIsAView(t *testing.T) {
	g := MustNew(3, 4, []float64{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
	})

	v, err := g.Slice(1, 3, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if r, c := v.Shape(); r != 2 || c != 2 {
		t.Fatalf("slice shape = %dx%d, want 2x2", r, c)
	}
	if v.At(0, 0) != 5 || v.At(1, 1) != 10 {
		t.Errorf("slice content wrong: At(0,0)=%v At(1,1)=%v", v.At(0, 0), v.At(1, 1))
	}

	// The memory-layout lesson: a view shares the backing array.
	v.Set(0, 0, 99)
	if g.At(1, 1) != 99 {
		t.Errorf("mutating a view should mutate the base, base At(1,1) = %v", g.At(1, 1))
	}

	if v.IsContiguous() {
		t.Error("a 2x2 window of a 3x4 grid is not contiguous")
	}
	if rs, cs := v.Strides(); rs != 4 || cs != 1 {
		t.Errorf("view strides = (%d, %d), want (4, 1)", rs, cs)
	}

	if _, err := g.Slice(0, 4, 0, 1); err == nil {
		t.Error("out-of-range slice should be rejected")
	}
}

func TestReshape(t *testing.T) {
	g := MustNew(2, 6, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})

	r, err := g.Reshape(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if r.At(2, 3) != 11 {
		t.Errorf("reshape At(2,3) = %v, want 11", r.At(2, 3))
	}

	// Reshape is a view over the same backing array.
	r.Set(0, 0, 42)
	if g.At(0, 0) != 42 {
		t.Error("reshape should share the backing array")
	}

	if _, err := g.Reshape(5, 2); err == nil {
		t.Error("element-count mismatch should be rejected")
	}

	view, _ := g.Slice(0, 2, 0, 3)
	if _, err := view.Reshape(3, 2); err == nil {
		t.Error("reshaping a non-contiguous view should error, never copy silently")
	}
	if _, err := view.Clone().Reshape(3, 2); err != nil {
		t.Errorf("reshaping after Clone should work: %v", err)
	}
}

func TestTakeAndMaskSelect(t *testing.T) {
	g := MustNew(3, 2, []float64{1, 2, 3, 4, 5, 6})

	taken, err := g.Take([]int{2, 0, 2})
	if err != nil {
		t.Fatal(err)
	}
	if taken.Rows() != 3 || taken.At(0, 0) != 5 || taken.At(1, 0) != 1 || taken.At(2, 1) != 6 {
		t.Errorf("Take([2,0,2]) wrong: %v %v %v", taken.At(0, 0), taken.At(1, 0), taken.At(2, 1))
	}
	if _, err := g.Take([]int{3}); err == nil {
		t.Error("out-of-range take should be rejected")
	}

	evens := g.MaskSelect(func(v float64) bool { return math.Mod(v, 2) == 0 })
	want := []float64{2, 4, 6}
	if len(evens) != len(want) {
		t.Fatalf("MaskSelect returned %v, want %v", evens, want)
	}
	for i := range want {
		if evens[i] != want[i] {
			t.Errorf("MaskSelect[%d] = %v, want %v", i, evens[i], want[i])
		}
	}
}

func TestRowColCopy(t *testing.T) {
	g := MustNew(2, 2, []float64{1, 2, 3, 4})
	row := g.Row(0)
	row[0] = 99
	if g.At(0, 0) != 1 {
		t.Error("Row should copy, not alias")
	}
	col := g.Col(1)
	if col[0] != 2 || col[1] != 4 {
		t.Errorf("Col(1) = %v, want [2 4]", col)
	}
}

func TestApply(t *testing.T) {
	g := MustNew(1, 3, []float64{1, 4, 9})
	s := g.Apply(math.Sqrt)
	want := []float64{1, 2, 3}
	for j, w := range want {
		if s.At(0, j) != w {
			t.Errorf("Apply sqrt [%d] = %v, want %v", j, s.At(0, j), w)
		}
	}
	if g.At(0, 1) != 4 {
		t.Error("Apply should not mutate the receiver")
	}
}
