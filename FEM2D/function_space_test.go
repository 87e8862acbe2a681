package FEM2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDofCounts(t *testing.T) {
	{ // Triangles: V, V+E, V+2E+K for degrees 1..3
		msh, err := NewUnitSquareTriMesh(4, 3)
		require.NoError(t, err)
		var (
			nV = msh.NumVertices()
			nE = msh.NumEdges()
			nK = msh.NumCells()
		)
		for P, want := range map[int]int{
			1: nV,
			2: nV + nE,
			3: nV + 2*nE + nK,
		} {
			fs, err := NewFunctionSpace(msh, Lagrange, P)
			require.NoError(t, err)
			assert.Equal(t, want, fs.NumDofs(), "degree %d", P)
		}
	}
	{ // Quads: interior block is (P-1)^2 per cell
		msh, err := NewUnitSquareQuadMesh(3, 3)
		require.NoError(t, err)
		var (
			nV = msh.NumVertices()
			nE = msh.NumEdges()
			nK = msh.NumCells()
		)
		for P, want := range map[int]int{
			1: nV,
			2: nV + nE + nK,
			3: nV + 2*nE + 4*nK,
		} {
			fs, err := NewFunctionSpace(msh, Lagrange, P)
			require.NoError(t, err)
			assert.Equal(t, want, fs.NumDofs(), "degree %d", P)
		}
	}
}

// Adjacent cells must resolve shared entities to the same global DOF at the
// same geometric location, independent of traversal direction.
func TestSharedEntityConsistency(t *testing.T) {
	for _, ct := range []CellType{Triangle, Quad} {
		for P := 1; P <= 3; P++ {
			var (
				msh *Mesh
				err error
			)
			if ct == Triangle {
				msh, err = NewUnitSquareTriMesh(3, 3)
			} else {
				msh, err = NewUnitSquareQuadMesh(3, 3)
			}
			require.NoError(t, err)
			fs, err := NewFunctionSpace(msh, Lagrange, P)
			require.NoError(t, err)

			faces := msh.CType.LocalFaces()
			for _, f := range msh.Facets {
				if f.OnBoundary() {
					continue
				}
				// Collect the edge DOFs from each owning cell's table
				sides := make([]map[int]bool, 2)
				for side := 0; side < 2; side++ {
					var (
						k    = f.Cells[side]
						face = f.CellFaces[side]
						lf   = faces[face]
						cd   = fs.CellDofs[k]
					)
					sides[side] = map[int]bool{
						cd[fs.Ref.VertexNodes[lf[0]]]: true,
						cd[fs.Ref.VertexNodes[lf[1]]]: true,
					}
					for _, n := range fs.Ref.EdgeNodes[face] {
						sides[side][cd[n]] = true
					}
				}
				assert.Equal(t, sides[0], sides[1],
					"ct=%v P=%d facet (%d,%d)", ct, P, f.Verts[0], f.Verts[1])
			}
		}
	}
}

// Every cell's local table must place each global DOF at the location the
// space records for it.
func TestDofCoordinateAgreement(t *testing.T) {
	msh, err := NewUnitSquareTriMesh(3, 2)
	require.NoError(t, err)
	for P := 1; P <= 3; P++ {
		fs, err := NewFunctionSpace(msh, Lagrange, P)
		require.NoError(t, err)
		for k := 0; k < msh.NumCells(); k++ {
			for n, gid := range fs.CellDofs[k] {
				x, y := msh.MapRS(k, fs.Ref.R.AtVec(n), fs.Ref.S.AtVec(n))
				assert.True(t, near(fs.DofX[gid], x, 1.e-12))
				assert.True(t, near(fs.DofY[gid], y, 1.e-12))
			}
		}
	}
}

func TestVertexDofCoords(t *testing.T) {
	msh, err := NewUnitSquareQuadMesh(2, 2)
	require.NoError(t, err)
	fs, err := NewFunctionSpace(msh, Lagrange, 1)
	require.NoError(t, err)
	X, Y := fs.DofCoords()
	assert.Equal(t, msh.NumVertices(), X.Len())
	// Degree 1 DOFs are exactly the mesh vertices
	seen := make(map[[2]float64]bool)
	for d := 0; d < fs.NumDofs(); d++ {
		seen[[2]float64{X.AtVec(d), Y.AtVec(d)}] = true
	}
	for v := 0; v < msh.NumVertices(); v++ {
		x, y := msh.VertexCoords(v)
		assert.True(t, seen[[2]float64{x, y}])
	}
}
