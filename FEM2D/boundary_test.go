package FEM2D

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uExact(x, y float64) float64 { return 1 + x*x + 2*y*y }

func TestDirichletDofSelection(t *testing.T) {
	msh, err := NewUnitSquareTriMesh(4, 4)
	require.NoError(t, err)
	for P := 1; P <= 3; P++ {
		fs, err := NewFunctionSpace(msh, Lagrange, P)
		require.NoError(t, err)
		bc, err := NewDirichletBC(fs, BCSpec{Where: WholeBoundary, Value: uExact})
		require.NoError(t, err)
		// Boundary vertices plus P-1 interior DOFs on each boundary facet
		var (
			nbf          = len(msh.BoundaryFacets())
			nBoundaryVts = nbf // closed loop: as many vertices as facets
			want         = nBoundaryVts + (P-1)*nbf
		)
		assert.Equal(t, want, len(bc.Dofs))
		// Values are the boundary data evaluated at the DOF locations
		for i, d := range bc.Dofs {
			assert.True(t, near(uExact(fs.DofX[d], fs.DofY[d]), bc.Values[i], 1.e-14))
		}
	}
}

func TestEliminationStructure(t *testing.T) {
	msh, err := NewUnitSquareTriMesh(3, 3)
	require.NoError(t, err)
	fs, err := NewFunctionSpace(msh, Lagrange, 2)
	require.NoError(t, err)
	sys, err := Assemble(fs, ConstSource(-6))
	require.NoError(t, err)
	bc, err := NewDirichletBC(fs, BCSpec{Where: WholeBoundary, Value: uExact})
	require.NoError(t, err)
	bc.Apply(sys)

	constrained := make(map[int]bool)
	for _, d := range bc.Dofs {
		constrained[d] = true
	}
	// Constrained rows and columns hold only the unit diagonal
	sys.A.DoNonZero(func(i, j int, v float64) {
		if constrained[i] || constrained[j] {
			assert.Equal(t, i, j)
			assert.True(t, near(1, v, 1.e-14))
		}
	})
	// Right hand side carries the prescribed values
	for i, d := range bc.Dofs {
		assert.True(t, near(bc.Values[i], sys.B.AtVec(d), 1.e-14))
	}
	// Elimination preserves symmetry
	sys.A.DoNonZero(func(i, j int, v float64) {
		assert.True(t, near(v, sys.A.At(j, i), 1.e-12))
	})
}

func TestConflictingBoundaryValues(t *testing.T) {
	msh, err := NewUnitSquareTriMesh(2, 2)
	require.NoError(t, err)
	fs, err := NewFunctionSpace(msh, Lagrange, 1)
	require.NoError(t, err)
	{ // Two selections prescribing different constants on shared DOFs
		_, err := NewDirichletBC(fs,
			BCSpec{Where: WholeBoundary, Value: ConstSource(0)},
			BCSpec{Where: WholeBoundary, Value: ConstSource(1)},
		)
		var conflict *ConflictingBoundaryValueError
		require.Error(t, err)
		assert.True(t, errors.As(err, &conflict))
	}
	{ // Overlapping selections that agree are accepted
		bc, err := NewDirichletBC(fs,
			BCSpec{Where: WholeBoundary, Value: uExact},
			BCSpec{Where: WholeBoundary, Value: uExact},
		)
		require.NoError(t, err)
		assert.NotEmpty(t, bc.Dofs)
	}
}

func TestPartialBoundarySelection(t *testing.T) {
	msh, err := NewUnitSquareQuadMesh(3, 3)
	require.NoError(t, err)
	fs, err := NewFunctionSpace(msh, Lagrange, 1)
	require.NoError(t, err)
	// Left edge only: x == 0 at both facet endpoints
	left := func(m *Mesh, f Facet) bool {
		x0, _ := m.VertexCoords(f.Verts[0])
		x1, _ := m.VertexCoords(f.Verts[1])
		return x0 == 0 && x1 == 0
	}
	bc, err := NewDirichletBC(fs, BCSpec{Where: left, Value: ConstSource(3)})
	require.NoError(t, err)
	assert.Equal(t, 4, len(bc.Dofs)) // 4 vertices on the left edge
	for _, d := range bc.Dofs {
		assert.Equal(t, 0., fs.DofX[d])
	}
}
