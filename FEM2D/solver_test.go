package FEM2D

import (
	"errors"
	"testing"

	"github.com/notargets/gofea/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func smallSystem(diag []float64, b []float64) (sys *System) {
	n := len(diag)
	coo := utils.NewCOO(n, n)
	for i, v := range diag {
		coo.Append(i, i, v)
	}
	sys = &System{
		A: coo.ToCSR(),
		B: mat.NewVecDense(n, b),
		N: n,
	}
	return
}

func TestCholeskySolvesSPD(t *testing.T) {
	sys := smallSystem([]float64{2, 4, 8}, []float64{2, 8, 32})
	x, err := CholeskySolver{}.Solve(sys)
	require.NoError(t, err)
	assert.True(t, nearVec([]float64{1, 2, 4}, x.RawVector().Data, 1.e-12))
}

func TestSingularSystem(t *testing.T) {
	{ // Zero pivot
		sys := smallSystem([]float64{1, 0, 1}, []float64{1, 1, 1})
		_, err := CholeskySolver{}.Solve(sys)
		var singular *SingularSystemError
		require.Error(t, err)
		assert.True(t, errors.As(err, &singular))
	}
	{ // Negative pivot where positive definiteness was assumed
		sys := smallSystem([]float64{1, -1}, []float64{1, 1})
		_, err := CholeskySolver{}.Solve(sys)
		var singular *SingularSystemError
		require.Error(t, err)
		assert.True(t, errors.As(err, &singular))
	}
}

func TestSolversAgreeOnPoissonSystem(t *testing.T) {
	msh, err := NewUnitSquareTriMesh(4, 4)
	require.NoError(t, err)
	fs, err := NewFunctionSpace(msh, Lagrange, 1)
	require.NoError(t, err)
	build := func() *System {
		sys, err := Assemble(fs, ConstSource(-6))
		require.NoError(t, err)
		bc, err := NewDirichletBC(fs, BCSpec{Where: WholeBoundary, Value: uExact})
		require.NoError(t, err)
		bc.Apply(sys)
		return sys
	}
	xChol, err := CholeskySolver{}.Solve(build())
	require.NoError(t, err)
	xCG, err := CGSolver{}.Solve(build())
	require.NoError(t, err)
	assert.True(t, nearVec(xChol.RawVector().Data, xCG.RawVector().Data, 1.e-6))
}
