package grid

import "fmt"

// ShapeError reports two grid shapes that cannot broadcast together.
type ShapeError struct {
	ARows, ACols int
	BRows, BCols int
	Op           string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("grid: cannot %s shapes (%d, %d) and (%d, %d)", e.Op, e.ARows, e.ACols, e.BRows, e.BCols)
}

// broadcastDim resolves one axis pair under the NumPy rule: equal sizes
// pass through, a size of 1 stretches to the other.
func broadcastDim(a, b int) (int, bool) {
	switch {
	case a == b:
		return a, true
	case a == 1:
		return b, true
	case b == 1:
		return a, true
	}
	return 0, false
}

// broadcast applies op elementwise with NumPy broadcasting over rows and
// columns. Supported shape pairs: (m,n)x(m,n), (m,n)x(1,n), (m,n)x(m,1),
// (m,n)x(1,1) and their mirrors.
func broadcast(a, b *Grid, name string, op func(x, y float64) float64) (*Grid, error) {
	rows, okR := broadcastDim(a.rows, b.rows)
	cols, okC := broadcastDim(a.cols, b.cols)
	if !okR || !okC {
		return nil, &ShapeError{ARows: a.rows, ACols: a.cols, BRows: b.rows, BCols: b.cols, Op: name}
	}

	out, err := Zeros(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		ai, bi := i, i
		if a.rows == 1 {
			ai = 0
		}
		if b.rows == 1 {
			bi = 0
		}
		for j := 0; j < cols; j++ {
			aj, bj := j, j
			if a.cols == 1 {
				aj = 0
			}
			if b.cols == 1 {
				bj = 0
			}
			out.data[i*out.stride+j] = op(a.At(ai, aj), b.At(bi, bj))
		}
	}
	return out, nil
}

// Add returns a + b with broadcasting.
func Add(a, b *Grid) (*Grid, error) {
	return broadcast(a, b, "add", func(x, y float64) float64 { return x + y })
}

// Sub returns a - b with broadcasting.
func Sub(a, b *Grid) (*Grid, error) {
	return broadcast(a, b, "subtract", func(x, y float64) float64 { return x - y })
}

// Mul returns the elementwise product a * b with broadcasting.
func Mul(a, b *Grid) (*Grid, error) {
	return broadcast(a, b, "multiply", func(x, y float64) float64 { return x * y })
}

// Div returns a / b with broadcasting. Division by zero follows IEEE 754.
func Div(a, b *Grid) (*Grid, error) {
	return broadcast(a, b, "divide", func(x, y float64) float64 { return x / y })
}

// AddScalar returns the grid with v added to every element. This is the
// bulk path the traversal benchmarks compare against an At/Set loop.
func (g *Grid) AddScalar(v float64) *Grid {
	out := g.Clone()
	for i := range out.data {
		out.data[i] += v
	}
	return out
}

// MulScalar returns the grid with every element multiplied by v.
func (g *Grid) MulScalar(v float64) *Grid {
	out := g.Clone()
	for i := range out.data {
		out.data[i] *= v
	}
	return out
}
