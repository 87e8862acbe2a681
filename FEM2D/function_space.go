package FEM2D

import (
	"fmt"
	"math"

	"github.com/notargets/gofea/utils"
)

// FunctionSpace maps mesh cells to global degree-of-freedom indices for a
// Lagrange element of fixed degree. Vertex DOFs are shared by vertex, edge
// DOFs by canonicalized edge, interior DOFs are cell-private. The numbering
// is assigned on first encounter while iterating cells in increasing index
// order and is frozen after construction.
type FunctionSpace struct {
	Msh        *Mesh
	Family     ElementFamily
	P          int
	Ref        *ReferenceElement
	NDofs      int
	CellDofs   [][]int // K x Np local to global tables
	DofX, DofY []float64
	// Representative location of each DOF: owning cell and reference point
	DofCell    []int
	DofR, DofS []float64
}

const dofCoordTol = 1.e-12

func NewFunctionSpace(msh *Mesh, family ElementFamily, P int) (fs *FunctionSpace, err error) {
	var (
		ref *ReferenceElement
	)
	if ref, err = NewReferenceElement(family, msh.CType, P); err != nil {
		return
	}
	fs = &FunctionSpace{
		Msh:    msh,
		Family: family,
		P:      P,
		Ref:    ref,
	}
	if err = fs.buildDofNumbering(); err != nil {
		return nil, err
	}
	return
}

// buildDofNumbering performs the entity-based deduplication. The counter is
// local to this call; the resulting tables are never mutated afterward.
func (fs *FunctionSpace) buildDofNumbering() (err error) {
	var (
		msh      = fs.Msh
		ref      = fs.Ref
		faces    = msh.CType.LocalFaces()
		nextDof  = 0
		vertDofs = make(map[int]int)
		edgeDofs = make(map[EdgeNumber]int) // base index of each P-1 block
	)
	fs.CellDofs = make([][]int, msh.NumCells())

	assign := func(k, n int) int {
		gid := nextDof
		nextDof++
		x, y := msh.MapRS(k, ref.R.AtVec(n), ref.S.AtVec(n))
		fs.DofX = append(fs.DofX, x)
		fs.DofY = append(fs.DofY, y)
		fs.DofCell = append(fs.DofCell, k)
		fs.DofR = append(fs.DofR, ref.R.AtVec(n))
		fs.DofS = append(fs.DofS, ref.S.AtVec(n))
		return gid
	}

	check := func(gid, k, n int) error {
		x, y := msh.MapRS(k, ref.R.AtVec(n), ref.S.AtVec(n))
		if math.Abs(x-fs.DofX[gid]) > dofCoordTol || math.Abs(y-fs.DofY[gid]) > dofCoordTol {
			return &InconsistentDofMappingError{Dof: gid, Cell: k,
				Reason: fmt.Sprintf("shared entity resolves to (%g,%g) here but (%g,%g) previously",
					x, y, fs.DofX[gid], fs.DofY[gid])}
		}
		return nil
	}

	for k := 0; k < msh.NumCells(); k++ {
		var (
			verts = msh.CellVerts(k)
			dofs  = make([]int, ref.Np)
		)
		for i, n := range ref.VertexNodes {
			v := verts[i]
			gid, seen := vertDofs[v]
			if !seen {
				gid = assign(k, n)
				vertDofs[v] = gid
			} else if err = check(gid, k, n); err != nil {
				return
			}
			dofs[n] = gid
		}
		for face, lf := range faces {
			var (
				a, b  = verts[lf[0]], verts[lf[1]]
				en    = NewEdgeNumber([2]int{a, b})
				nodes = ref.EdgeNodes[face]
			)
			if len(nodes) == 0 {
				continue
			}
			base, seen := edgeDofs[en]
			if !seen {
				// Allocate the whole block at once, ordered along the
				// canonical min->max vertex direction
				base = nextDof
				edgeDofs[en] = base
				nextDof += len(nodes)
				fs.DofX = append(fs.DofX, make([]float64, len(nodes))...)
				fs.DofY = append(fs.DofY, make([]float64, len(nodes))...)
				fs.DofCell = append(fs.DofCell, make([]int, len(nodes))...)
				fs.DofR = append(fs.DofR, make([]float64, len(nodes))...)
				fs.DofS = append(fs.DofS, make([]float64, len(nodes))...)
			}
			for pos, n := range nodes {
				// A cell traversing the edge against canonical order
				// reverses its local sequence
				off := pos
				if a > b {
					off = len(nodes) - 1 - pos
				}
				gid := base + off
				if !seen {
					x, y := msh.MapRS(k, ref.R.AtVec(n), ref.S.AtVec(n))
					fs.DofX[gid], fs.DofY[gid] = x, y
					fs.DofCell[gid] = k
					fs.DofR[gid], fs.DofS[gid] = ref.R.AtVec(n), ref.S.AtVec(n)
				} else if err = check(gid, k, n); err != nil {
					return
				}
				dofs[n] = gid
			}
		}
		for _, n := range ref.InteriorNodes {
			dofs[n] = assign(k, n)
		}
		fs.CellDofs[k] = dofs
	}
	fs.NDofs = nextDof
	return
}

func (fs *FunctionSpace) NumDofs() int { return fs.NDofs }

// DofCoords returns the geometric location of each global DOF.
func (fs *FunctionSpace) DofCoords() (X, Y utils.Vector) {
	X = utils.NewVector(fs.NDofs, fs.DofX)
	Y = utils.NewVector(fs.NDofs, fs.DofY)
	return
}

// FacetDofs returns the global DOFs lying on the given facet: its two vertex
// DOFs plus the edge-interior DOFs when P >= 2.
func (fs *FunctionSpace) FacetDofs(f Facet) (dofs utils.Index) {
	var (
		k     = f.Cells[0]
		face  = f.CellFaces[0]
		lf    = fs.Msh.CType.LocalFaces()[face]
		cd    = fs.CellDofs[k]
		ref   = fs.Ref
		vA    = ref.VertexNodes[lf[0]]
		vB    = ref.VertexNodes[lf[1]]
		nodes = ref.EdgeNodes[face]
	)
	dofs = append(dofs, cd[vA], cd[vB])
	for _, n := range nodes {
		dofs = append(dofs, cd[n])
	}
	return
}
