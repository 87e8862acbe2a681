package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// COO is a triplet accumulator for assembly. Duplicate (i,j) entries are
// allowed and are summed when the matrix is compressed to CSR.
type COO struct {
	M *sparse.COO
}

func NewCOO(nr, nc int) (R COO) {
	R = COO{
		sparse.NewCOO(nr, nc, nil, nil, nil),
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m COO) Dims() (r, c int)    { return m.M.Dims() }
func (m COO) At(i, j int) float64 { return m.M.At(i, j) }
func (m COO) T() mat.Matrix       { return m.M.T() }

func (m COO) Append(i, j int, val float64) {
	m.M.Set(i, j, val)
}

func (m COO) NNZ() int { return m.M.NNZ() }

func (m COO) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: "unnamed - hint: pass a variable name to SetReadOnly()",
	}
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) NNZ() int                      { return m.M.NNZ() }

func (m *CSR) SetReadOnly(name ...string) CSR {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

// DoNonZero visits each stored element once in row-major order.
func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	m.M.DoNonZero(fn)
}

// MulVec computes b = A*x for the compressed matrix.
func (m CSR) MulVec(x []float64) (b []float64) {
	var (
		nr, nc = m.Dims()
	)
	if len(x) != nc {
		err := fmt.Errorf("dimension mismatch in MulVec: nc = %d, len(x) = %d", nc, len(x))
		panic(err)
	}
	b = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, v float64) {
		b[i] += v * x[j]
	})
	return
}
