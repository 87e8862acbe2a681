package FEM2D

import (
	"math"
	"sort"

	"github.com/notargets/gofea/utils"
)

// FacetPredicate selects facets for boundary condition application.
type FacetPredicate func(msh *Mesh, f Facet) bool

// WholeBoundary selects every boundary facet.
func WholeBoundary(msh *Mesh, f Facet) bool { return f.OnBoundary() }

// BCSpec pairs a facet selection with the Dirichlet value to prescribe there.
type BCSpec struct {
	Where FacetPredicate
	Value SourceFunc
}

// DirichletBC is the resolved set of constrained global DOFs and their
// prescribed values, computed once per solve and consumed by Apply.
type DirichletBC struct {
	Dofs   utils.Index
	Values []float64
	byDof  map[int]float64
}

// Prescribed values for one DOF arriving from different selections must agree
// within this tolerance; otherwise the constraint set is rejected.
const bcConflictTol = 1.e-12

// NewDirichletBC evaluates each selection's value function at the geometric
// location of every DOF on its selected boundary facets. A DOF reached by
// more than one selection with disagreeing values fails with
// ConflictingBoundaryValueError.
func NewDirichletBC(fs *FunctionSpace, specs ...BCSpec) (bc *DirichletBC, err error) {
	bc = &DirichletBC{
		byDof: make(map[int]float64),
	}
	for _, spec := range specs {
		for _, f := range fs.Msh.BoundaryFacets() {
			if !spec.Where(fs.Msh, f) {
				continue
			}
			for _, d := range fs.FacetDofs(f) {
				val := spec.Value(fs.DofX[d], fs.DofY[d])
				if prev, seen := bc.byDof[d]; seen {
					if math.Abs(prev-val) > bcConflictTol {
						return nil, &ConflictingBoundaryValueError{Dof: d, Value: prev, Other: val}
					}
					continue
				}
				bc.byDof[d] = val
			}
		}
	}
	bc.Dofs = make(utils.Index, 0, len(bc.byDof))
	for d := range bc.byDof {
		bc.Dofs = append(bc.Dofs, d)
	}
	sort.Ints(bc.Dofs)
	bc.Values = make([]float64, len(bc.Dofs))
	for i, d := range bc.Dofs {
		bc.Values[i] = bc.byDof[d]
	}
	return
}

// Apply eliminates the constrained DOFs from the assembled system in place:
// each constrained row d becomes the identity row with b[d] = g_d, and every
// free row i with A[i,d] != 0 moves A[i,d]*g_d to the right hand side. The
// constrained matrix stays symmetric.
func (bc *DirichletBC) Apply(sys *System) {
	var (
		n   = sys.N
		b   = sys.B
		coo = utils.NewCOO(n, n)
	)
	sys.A.DoNonZero(func(i, j int, v float64) {
		_, ci := bc.byDof[i]
		_, cj := bc.byDof[j]
		switch {
		case ci:
			// dropped; the unit diagonal is re-added below
		case cj:
			b.SetVec(i, b.AtVec(i)-v*bc.byDof[j])
		default:
			coo.Append(i, j, v)
		}
	})
	for _, d := range bc.Dofs {
		coo.Append(d, d, 1)
		b.SetVec(d, bc.byDof[d])
	}
	sys.A = coo.ToCSR()
	sys.A.SetReadOnly("constrained stiffness matrix")
}
