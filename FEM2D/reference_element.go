package FEM2D

import (
	"fmt"
	"math"

	"github.com/notargets/gofea/utils"
)

type ElementFamily uint8

const (
	Lagrange ElementFamily = iota
)

func (ef ElementFamily) String() string {
	if ef == Lagrange {
		return "Lagrange"
	}
	return "Unknown"
}

// ReferenceElement describes one member of the closed (cell type, degree)
// family set: the reference lattice nodes in entity order, the inverse
// generalized Vandermonde fixing the nodal basis, and the basis/derivative
// evaluation matrices at the cubature points.
//
// Local DOF ordering is vertices first, then the interior nodes of each local
// face in face traversal order (P-1 per face, ordered from the face's first
// vertex toward its second), then cell-interior nodes.
type ReferenceElement struct {
	CType             CellType
	P                 int // polynomial degree
	Np, NpEdge, NpInt int
	R, S              utils.Vector // lattice node coordinates
	Vinv              utils.Matrix
	Cub               *Cubature
	Phi, Dr, Ds       utils.Matrix // Nq x Np, evaluated at cubature points
	VertexNodes       []int
	EdgeNodes         [][]int // interior nodes of each local face
	InteriorNodes     []int
	exps              [][2]int // monomial exponents spanning the space
}

// NewReferenceElement builds the Lagrange descriptor for the given cell type
// and degree 1..3.
func NewReferenceElement(family ElementFamily, ct CellType, P int) (ref *ReferenceElement, err error) {
	if family != Lagrange {
		return nil, fmt.Errorf("unsupported element family: %v", family)
	}
	if P < 1 || P > 3 {
		return nil, fmt.Errorf("Lagrange degree must be in [1,3], have %d", P)
	}
	ref = &ReferenceElement{
		CType:  ct,
		P:      P,
		NpEdge: P - 1,
	}
	switch ct {
	case Triangle:
		ref.Np = (P + 1) * (P + 2) / 2
	case Quad:
		ref.Np = (P + 1) * (P + 1)
	default:
		return nil, fmt.Errorf("unsupported cell type: %v", ct)
	}
	ref.buildLattice()
	ref.NpInt = len(ref.InteriorNodes)
	ref.buildExponents()
	if len(ref.exps) != ref.Np {
		panic(fmt.Errorf("monomial count %d does not match Np %d", len(ref.exps), ref.Np))
	}
	// Generalized Vandermonde at the lattice nodes fixes the nodal basis
	V := utils.NewMatrix(ref.Np, ref.Np)
	for n := 0; n < ref.Np; n++ {
		row := ref.monomials(ref.R.AtVec(n), ref.S.AtVec(n))
		for m, val := range row {
			V.Set(n, m, val)
		}
	}
	if ref.Vinv, err = V.Inverse(); err != nil {
		panic(fmt.Errorf("reference Vandermonde is singular for %v degree %d: %v", ct, P, err))
	}
	ref.Vinv.SetReadOnly("Vinv")
	// Quadrature covering degree 2P handles both the stiffness form (2P-2)
	// and load integration of sources up to the basis degree
	ref.Cub = NewCubature(ct, 2*P)
	ref.Phi = utils.NewMatrix(ref.Cub.Nq, ref.Np)
	ref.Dr = utils.NewMatrix(ref.Cub.Nq, ref.Np)
	ref.Ds = utils.NewMatrix(ref.Cub.Nq, ref.Np)
	for q := 0; q < ref.Cub.Nq; q++ {
		r, s := ref.Cub.R.AtVec(q), ref.Cub.S.AtVec(q)
		phi := ref.EvalBasis(r, s)
		dr, ds := ref.EvalBasisGrad(r, s)
		for j := 0; j < ref.Np; j++ {
			ref.Phi.Set(q, j, phi[j])
			ref.Dr.Set(q, j, dr[j])
			ref.Ds.Set(q, j, ds[j])
		}
	}
	ref.Phi.SetReadOnly("Phi")
	ref.Dr.SetReadOnly("Dr")
	ref.Ds.SetReadOnly("Ds")
	return
}

// buildLattice places the reference nodes in entity order.
func (ref *ReferenceElement) buildLattice() {
	var (
		P      = ref.P
		faces  = ref.CType.LocalFaces()
		vR, vS []float64
		r, s   []float64
	)
	switch ref.CType {
	case Triangle:
		vR, vS = []float64{0, 1, 0}, []float64{0, 0, 1}
	case Quad:
		vR, vS = []float64{-1, 1, 1, -1}, []float64{-1, -1, 1, 1}
	}
	for i := range vR {
		ref.VertexNodes = append(ref.VertexNodes, len(r))
		r, s = append(r, vR[i]), append(s, vS[i])
	}
	ref.EdgeNodes = make([][]int, len(faces))
	for face, lf := range faces {
		a, b := lf[0], lf[1]
		for k := 1; k < P; k++ {
			t := float64(k) / float64(P)
			ref.EdgeNodes[face] = append(ref.EdgeNodes[face], len(r))
			r = append(r, vR[a]+t*(vR[b]-vR[a]))
			s = append(s, vS[a]+t*(vS[b]-vS[a]))
		}
	}
	switch ref.CType {
	case Triangle:
		for i := 1; i < P; i++ {
			for j := 1; i+j < P; j++ {
				ref.InteriorNodes = append(ref.InteriorNodes, len(r))
				r = append(r, float64(i)/float64(P))
				s = append(s, float64(j)/float64(P))
			}
		}
	case Quad:
		for j := 1; j < P; j++ {
			for i := 1; i < P; i++ {
				ref.InteriorNodes = append(ref.InteriorNodes, len(r))
				r = append(r, -1+2*float64(i)/float64(P))
				s = append(s, -1+2*float64(j)/float64(P))
			}
		}
	}
	ref.R = utils.NewVector(len(r), r)
	ref.S = utils.NewVector(len(s), s)
}

func (ref *ReferenceElement) buildExponents() {
	var (
		P = ref.P
	)
	switch ref.CType {
	case Triangle:
		for d := 0; d <= P; d++ {
			for i := d; i >= 0; i-- {
				ref.exps = append(ref.exps, [2]int{i, d - i})
			}
		}
	case Quad:
		for j := 0; j <= P; j++ {
			for i := 0; i <= P; i++ {
				ref.exps = append(ref.exps, [2]int{i, j})
			}
		}
	}
}

func (ref *ReferenceElement) monomials(r, s float64) (row []float64) {
	row = make([]float64, len(ref.exps))
	for m, e := range ref.exps {
		row[m] = math.Pow(r, float64(e[0])) * math.Pow(s, float64(e[1]))
	}
	return
}

func (ref *ReferenceElement) monomialGrads(r, s float64) (dr, ds []float64) {
	dr, ds = make([]float64, len(ref.exps)), make([]float64, len(ref.exps))
	for m, e := range ref.exps {
		i, j := float64(e[0]), float64(e[1])
		if e[0] > 0 {
			dr[m] = i * math.Pow(r, i-1) * math.Pow(s, j)
		}
		if e[1] > 0 {
			ds[m] = j * math.Pow(r, i) * math.Pow(s, j-1)
		}
	}
	return
}

// EvalBasis evaluates all nodal basis functions at reference point (r,s).
func (ref *ReferenceElement) EvalBasis(r, s float64) (phi []float64) {
	var (
		mono = ref.monomials(r, s)
	)
	phi = make([]float64, ref.Np)
	for j := 0; j < ref.Np; j++ {
		var sum float64
		for m := 0; m < ref.Np; m++ {
			sum += mono[m] * ref.Vinv.At(m, j)
		}
		phi[j] = sum
	}
	return
}

// EvalBasisGrad evaluates the reference-space gradients of all nodal basis
// functions at (r,s).
func (ref *ReferenceElement) EvalBasisGrad(r, s float64) (dr, ds []float64) {
	var (
		mr, ms = ref.monomialGrads(r, s)
	)
	dr, ds = make([]float64, ref.Np), make([]float64, ref.Np)
	for j := 0; j < ref.Np; j++ {
		var sumR, sumS float64
		for m := 0; m < ref.Np; m++ {
			sumR += mr[m] * ref.Vinv.At(m, j)
			sumS += ms[m] * ref.Vinv.At(m, j)
		}
		dr[j], ds[j] = sumR, sumS
	}
	return
}
