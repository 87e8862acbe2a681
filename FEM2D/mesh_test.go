package FEM2D

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshGenerators(t *testing.T) {
	{ // Structured triangular mesh of the unit square
		msh, err := NewUnitSquareTriMesh(2, 2)
		require.NoError(t, err)
		assert.Equal(t, 9, msh.NumVertices())
		assert.Equal(t, 8, msh.NumCells())
		assert.Equal(t, 2, msh.Dim())
		// 3 incidences per triangle: 8 boundary facets, interior shared
		assert.Equal(t, 16, msh.NumEdges())
		assert.Equal(t, 8, len(msh.BoundaryFacets()))
	}
	{ // Structured quadrilateral mesh
		msh, err := NewUnitSquareQuadMesh(2, 2)
		require.NoError(t, err)
		assert.Equal(t, 9, msh.NumVertices())
		assert.Equal(t, 4, msh.NumCells())
		assert.Equal(t, 12, msh.NumEdges())
		assert.Equal(t, 8, len(msh.BoundaryFacets()))
	}
}

func TestFacetIncidence(t *testing.T) {
	for _, tc := range []struct {
		name string
		nx   int
	}{
		{"tri4", 4}, {"tri8", 8},
	} {
		msh, err := NewUnitSquareTriMesh(tc.nx, tc.nx)
		require.NoError(t, err)
		var totalIncidence, boundary int
		for _, f := range msh.Facets {
			totalIncidence += f.NumCells
			if f.OnBoundary() {
				boundary++
				assert.Equal(t, -1, f.Cells[1])
			} else {
				assert.Equal(t, 2, f.NumCells)
			}
		}
		// Incidence-weighted facet count is 3 per triangle
		assert.Equal(t, 3*msh.NumCells(), totalIncidence)
		assert.Equal(t, 4*tc.nx, boundary)
	}
	{ // 4 incidences per quad
		msh, err := NewUnitSquareQuadMesh(3, 5)
		require.NoError(t, err)
		var totalIncidence int
		for _, f := range msh.Facets {
			totalIncidence += f.NumCells
		}
		assert.Equal(t, 4*msh.NumCells(), totalIncidence)
	}
}

func TestFacetCanonicalOrder(t *testing.T) {
	msh, err := NewUnitSquareTriMesh(3, 3)
	require.NoError(t, err)
	for _, f := range msh.Facets {
		assert.Less(t, f.Verts[0], f.Verts[1])
	}
}

func TestInvalidTopology(t *testing.T) {
	var (
		vx = []float64{0, 1, 0, 1}
		vy = []float64{0, 0, 1, 1}
	)
	{ // Out of range vertex index
		_, err := NewMesh2D(vx, vy, [][]int{{0, 1, 7}}, Triangle)
		var topoErr *InvalidTopologyError
		require.Error(t, err)
		assert.True(t, errors.As(err, &topoErr))
	}
	{ // Too few vertices for the cell type
		_, err := NewMesh2D(vx, vy, [][]int{{0, 1, 2}}, Quad)
		var topoErr *InvalidTopologyError
		require.Error(t, err)
		assert.True(t, errors.As(err, &topoErr))
	}
	{ // Repeated vertex within a cell
		_, err := NewMesh2D(vx, vy, [][]int{{0, 1, 1}}, Triangle)
		var topoErr *InvalidTopologyError
		require.Error(t, err)
		assert.True(t, errors.As(err, &topoErr))
	}
	{ // A facet incident to more than two cells
		_, err := NewMesh2D(vx, vy, [][]int{{0, 1, 2}, {1, 0, 3}, {0, 1, 3}}, Triangle)
		var topoErr *InvalidTopologyError
		require.Error(t, err)
		assert.True(t, errors.As(err, &topoErr))
	}
}

func TestEdgeNumberPacking(t *testing.T) {
	en := NewEdgeNumber([2]int{11, 4})
	assert.Equal(t, en, NewEdgeNumber([2]int{4, 11}))
	verts := en.GetVertices()
	assert.Equal(t, [2]int{4, 11}, verts)
}

func TestMapRS(t *testing.T) {
	{ // Triangle vertices map to reference corners
		msh, err := NewUnitSquareTriMesh(1, 1)
		require.NoError(t, err)
		vx, vy := msh.CellCoords(0)
		for i, rs := range [][2]float64{{0, 0}, {1, 0}, {0, 1}} {
			x, y := msh.MapRS(0, rs[0], rs[1])
			assert.True(t, near(vx[i], x, 1.e-14))
			assert.True(t, near(vy[i], y, 1.e-14))
		}
	}
	{ // Quad center maps to cell centroid
		msh, err := NewUnitSquareQuadMesh(2, 2)
		require.NoError(t, err)
		x, y := msh.MapRS(0, 0, 0)
		assert.True(t, near(0.25, x, 1.e-14))
		assert.True(t, near(0.25, y, 1.e-14))
	}
}
