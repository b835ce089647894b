package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToDense copies the grid into a gonum dense matrix.
func (g *Grid) ToDense() *mat.Dense {
	return mat.NewDense(g.rows, g.cols, g.Clone().data)
}

// FromDense copies a gonum dense matrix into a grid.
func FromDense(d *mat.Dense) (*Grid, error) {
	rows, cols := d.Dims()
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = d.At(i, j)
		}
	}
	return New(rows, cols, data)
}

// MatMul returns the matrix product a x b, delegating to gonum.
func MatMul(a, b *Grid) (*Grid, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("grid: cannot multiply %dx%d by %dx%d, inner dimensions differ", a.rows, a.cols, b.rows, b.cols)
	}
	var out mat.Dense
	out.Mul(a.ToDense(), b.ToDense())
	return FromDense(&out)
}
