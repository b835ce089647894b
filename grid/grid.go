// Package grid implements dense two-dimensional float64 arrays with
// row-major storage, stride-backed views, and NumPy-style broadcasting.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is a dense row-major matrix of float64. A Grid may be a view into a
// larger backing array, in which case its row stride exceeds its column
// count and mutations are visible through the base grid.
type Grid struct {
	rows   int
	cols   int
	stride int
	data   []float64
}

// New builds a rows x cols grid over the given backing slice, which must
// contain exactly rows*cols elements. The slice is used directly, not
// copied.
func New(rows, cols int, data []float64) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid needs rows, cols >= 1, got %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("grid %dx%d needs %d elements, got %d", rows, cols, rows*cols, len(data))
	}
	return &Grid{rows: rows, cols: cols, stride: cols, data: data}, nil
}

// MustNew is New for tests and fixtures; it panics on error.
func MustNew(rows, cols int, data []float64) *Grid {
	g, err := New(rows, cols, data)
	if err != nil {
		panic(err)
	}
	return g
}

// Zeros returns a rows x cols grid of zeros.
func Zeros(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid needs rows, cols >= 1, got %dx%d", rows, cols)
	}
	return &Grid{rows: rows, cols: cols, stride: cols, data: make([]float64, rows*cols)}, nil
}

// Full returns a rows x cols grid with every element set to v.
func Full(rows, cols int, v float64) (*Grid, error) {
	g, err := Zeros(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range g.data {
		g.data[i] = v
	}
	return g, nil
}

// Identity returns the n x n identity grid.
func Identity(n int) (*Grid, error) {
	g, err := Zeros(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		g.data[i*g.stride+i] = 1
	}
	return g, nil
}

// Arange returns a 1 x n grid of values start, start+step, ... stopping
// before stop. Step must move toward stop.
func Arange(start, stop, step float64) (*Grid, error) {
	if step == 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("arange needs a nonzero step, got %v", step)
	}
	if (stop-start)/step <= 0 {
		return nil, fmt.Errorf("arange step %v never reaches %v from %v", step, stop, start)
	}
	n := int(math.Ceil((stop - start) / step))
	data := make([]float64, n)
	for i := range data {
		data[i] = start + float64(i)*step
	}
	return New(1, n, data)
}

// Linspace returns a 1 x n grid of n evenly spaced values from start to
// stop inclusive.
func Linspace(start, stop float64, n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("linspace needs at least 2 points, got %d", n)
	}
	data := make([]float64, n)
	floats.Span(data, start, stop)
	return New(1, n, data)
}

// FromRows builds a grid from row slices, which must all have the same
// length. The rows are copied.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid needs at least one row and one column")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("ragged rows: row 0 has %d columns, row %d has %d", cols, i, len(r))
		}
		data = append(data, r...)
	}
	return New(len(rows), cols, data)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Shape returns (rows, cols).
func (g *Grid) Shape() (int, int) { return g.rows, g.cols }

// Strides returns the element distance between consecutive rows and
// consecutive columns. A contiguous grid has strides (cols, 1).
func (g *Grid) Strides() (int, int) { return g.stride, 1 }

// IsContiguous reports whether the grid's elements occupy one dense
// row-major block. Views carved from a wider grid are not contiguous.
func (g *Grid) IsContiguous() bool { return g.stride == g.cols }

// At returns the element at row i, column j. Out-of-range indices panic.
func (g *Grid) At(i, j int) float64 {
	g.checkBounds(i, j)
	return g.data[i*g.stride+j]
}

// Set stores v at row i, column j. Out-of-range indices panic.
func (g *Grid) Set(i, j int, v float64) {
	g.checkBounds(i, j)
	g.data[i*g.stride+j] = v
}

func (g *Grid) checkBounds(i, j int) {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		panic(fmt.Sprintf("grid: index (%d, %d) out of range for %dx%d grid", i, j, g.rows, g.cols))
	}
}

// Row returns a copy of row i.
func (g *Grid) Row(i int) []float64 {
	if i < 0 || i >= g.rows {
		panic(fmt.Sprintf("grid: row %d out of range for %dx%d grid", i, g.rows, g.cols))
	}
	out := make([]float64, g.cols)
	copy(out, g.data[i*g.stride:i*g.stride+g.cols])
	return out
}

// Col returns a copy of column j.
func (g *Grid) Col(j int) []float64 {
	if j < 0 || j >= g.cols {
		panic(fmt.Sprintf("grid: column %d out of range for %dx%d grid", j, g.rows, g.cols))
	}
	out := make([]float64, g.rows)
	for i := range out {
		out[i] = g.data[i*g.stride+j]
	}
	return out
}

// Slice returns the sub-grid [r0, r1) x [c0, c1) as a view sharing the
// backing array. Mutating the view mutates the base.
func (g *Grid) Slice(r0, r1, c0, c1 int) (*Grid, error) {
	if r0 < 0 || r1 > g.rows || c0 < 0 || c1 > g.cols || r0 >= r1 || c0 >= c1 {
		return nil, fmt.Errorf("slice [%d:%d, %d:%d] out of range for %dx%d grid", r0, r1, c0, c1, g.rows, g.cols)
	}
	off := r0*g.stride + c0
	return &Grid{
		rows:   r1 - r0,
		cols:   c1 - c0,
		stride: g.stride,
		data:   g.data[off : off+(r1-r0-1)*g.stride+(c1-c0)],
	}, nil
}

// Take returns a new grid holding copies of the given rows, in order.
// Indices may repeat.
func (g *Grid) Take(rows []int) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("take needs at least one row index")
	}
	data := make([]float64, 0, len(rows)*g.cols)
	for _, i := range rows {
		if i < 0 || i >= g.rows {
			return nil, fmt.Errorf("take: row %d out of range for %dx%d grid", i, g.rows, g.cols)
		}
		data = append(data, g.data[i*g.stride:i*g.stride+g.cols]...)
	}
	return New(len(rows), g.cols, data)
}

// MaskSelect returns the elements for which the mask is true, in row-major
// order. The NumPy boolean-indexing lesson: the result is always flat.
func (g *Grid) MaskSelect(mask func(v float64) bool) []float64 {
	var out []float64
	for i := 0; i < g.rows; i++ {
		row := g.data[i*g.stride : i*g.stride+g.cols]
		for _, v := range row {
			if mask(v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// Reshape returns a rows x cols view over the same backing array. The
// element count must match and the grid must be contiguous; reshaping
// never copies silently.
func (g *Grid) Reshape(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("reshape needs rows, cols >= 1, got %dx%d", rows, cols)
	}
	if rows*cols != g.rows*g.cols {
		return nil, fmt.Errorf("cannot reshape %dx%d grid to %dx%d: element counts differ", g.rows, g.cols, rows, cols)
	}
	if !g.IsContiguous() {
		return nil, fmt.Errorf("cannot reshape a non-contiguous view, copy it first with Clone")
	}
	return &Grid{rows: rows, cols: cols, stride: cols, data: g.data}, nil
}

// Clone returns a contiguous deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]float64, g.rows*g.cols)
	for i := 0; i < g.rows; i++ {
		copy(data[i*g.cols:(i+1)*g.cols], g.data[i*g.stride:i*g.stride+g.cols])
	}
	return &Grid{rows: g.rows, cols: g.cols, stride: g.cols, data: data}
}

// Apply returns a new grid with fn applied to every element.
func (g *Grid) Apply(fn func(v float64) float64) *Grid {
	out := g.Clone()
	for i := range out.data {
		out.data[i] = fn(out.data[i])
	}
	return out
}

// Flat returns the elements in row-major order. Contiguous grids return
// the backing array directly; views are compacted into a fresh slice.
func (g *Grid) Flat() []float64 {
	if g.IsContiguous() {
		return g.data
	}
	return g.Clone().data
}

// Equal reports whether two grids have the same shape and elements.
// NaN elements compare equal to NaN so result grids can be compared.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			a, b := g.At(i, j), other.At(i, j)
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return false
			}
		}
	}
	return true
}

// String renders the shape, for error messages and logs.
func (g *Grid) String() string { return fmt.Sprintf("Grid(%dx%d)", g.rows, g.cols) }
