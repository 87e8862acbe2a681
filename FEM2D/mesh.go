package FEM2D

import (
	"fmt"
	"math"

	"github.com/notargets/gofea/utils"
)

type CellType uint8

const (
	Triangle CellType = iota
	Quad
)

func (ct CellType) String() string {
	switch ct {
	case Triangle:
		return "Triangle"
	case Quad:
		return "Quad"
	}
	return "Unknown"
}

func (ct CellType) NumVerts() int {
	if ct == Triangle {
		return 3
	}
	return 4
}

// LocalFaces returns the local vertex index pairs of each cell face in
// traversal order around the cell.
func (ct CellType) LocalFaces() [][2]int {
	if ct == Triangle {
		return [][2]int{{0, 1}, {1, 2}, {2, 0}}
	}
	return [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
}

// EdgeNumber packs two vertex indices into a uint64 to act as a hash and an
// indirect access method. The vertex order is canonicalized (min, max) so
// both cells sharing an edge produce the same number.
type EdgeNumber uint64

func NewEdgeNumber(verts [2]int) (packed EdgeNumber) {
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] < verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeNumber(i1 + i2<<32)
	return
}

func (en EdgeNumber) GetVertices() (verts [2]int) {
	var (
		enTmp EdgeNumber
	)
	enTmp = en >> 32
	verts[1] = int(enTmp)
	verts[0] = int(en - enTmp<<32)
	return
}

// Facet is one cell edge, canonicalized by vertex index order. A facet is
// incident to exactly one cell (boundary) or two cells (interior).
type Facet struct {
	Verts     [2]int // canonical order, Verts[0] < Verts[1]
	Cells     [2]int // owning cell indices, Cells[1] == -1 for boundary
	CellFaces [2]int // local face number within each owning cell
	NumCells  int
}

func (f Facet) OnBoundary() bool { return f.NumCells == 1 }

// Mesh is the immutable geometric/topological container: flat vertex
// coordinate vectors, cell connectivity, and the derived facet set.
type Mesh struct {
	VX, VY     utils.Vector
	EToV       [][]int
	CType      CellType
	Facets     []Facet
	facetIndex map[EdgeNumber]int
}

// NewMesh2D builds a mesh from explicit vertex coordinates and cell
// connectivity and derives the facet set. Connectivity referencing an
// out-of-range or repeated vertex fails with InvalidTopologyError.
func NewMesh2D(vx, vy []float64, etov [][]int, ct CellType) (msh *Mesh, err error) {
	var (
		nVerts = len(vx)
		nv     = ct.NumVerts()
	)
	if len(vy) != nVerts {
		return nil, &InvalidTopologyError{Cell: -1,
			Reason: fmt.Sprintf("coordinate lengths differ: %d vs %d", len(vx), len(vy))}
	}
	msh = &Mesh{
		VX:         utils.NewVector(nVerts, vx),
		VY:         utils.NewVector(nVerts, vy),
		EToV:       etov,
		CType:      ct,
		facetIndex: make(map[EdgeNumber]int),
	}
	for k, verts := range etov {
		if len(verts) != nv {
			return nil, &InvalidTopologyError{Cell: k,
				Reason: fmt.Sprintf("%s cell requires %d vertices, have %d", ct, nv, len(verts))}
		}
		for i, v := range verts {
			if v < 0 || v >= nVerts {
				return nil, &InvalidTopologyError{Cell: k,
					Reason: fmt.Sprintf("vertex index %d out of range [0,%d)", v, nVerts)}
			}
			for j := 0; j < i; j++ {
				if verts[j] == v {
					return nil, &InvalidTopologyError{Cell: k,
						Reason: fmt.Sprintf("vertex index %d repeated within cell", v)}
				}
			}
		}
	}
	if err = msh.buildFacets(); err != nil {
		return nil, err
	}
	return
}

// buildFacets canonicalizes every cell edge, deduplicates by packed edge
// number and counts incidences. Incidence 1 is boundary, 2 is interior,
// anything else is a topology error.
func (msh *Mesh) buildFacets() (err error) {
	var (
		faces = msh.CType.LocalFaces()
	)
	for k, verts := range msh.EToV {
		for face, lf := range faces {
			pair := [2]int{verts[lf[0]], verts[lf[1]]}
			en := NewEdgeNumber(pair)
			fIdx, exists := msh.facetIndex[en]
			if !exists {
				msh.facetIndex[en] = len(msh.Facets)
				msh.Facets = append(msh.Facets, Facet{
					Verts:     en.GetVertices(),
					Cells:     [2]int{k, -1},
					CellFaces: [2]int{face, -1},
					NumCells:  1,
				})
				continue
			}
			f := &msh.Facets[fIdx]
			if f.NumCells > 1 {
				return &InvalidTopologyError{Cell: k,
					Reason: fmt.Sprintf("facet (%d,%d) incident to more than two cells", pair[0], pair[1])}
			}
			f.Cells[1] = k
			f.CellFaces[1] = face
			f.NumCells++
		}
	}
	return
}

func (msh *Mesh) NumVertices() int { return msh.VX.Len() }
func (msh *Mesh) NumCells() int    { return len(msh.EToV) }
func (msh *Mesh) NumEdges() int    { return len(msh.Facets) }
func (msh *Mesh) Dim() int         { return 2 }

func (msh *Mesh) CellVerts(k int) []int { return msh.EToV[k] }

func (msh *Mesh) VertexCoords(v int) (x, y float64) {
	return msh.VX.AtVec(v), msh.VY.AtVec(v)
}

// BoundaryFacets enumerates every facet incident to exactly one cell.
func (msh *Mesh) BoundaryFacets() (bf []Facet) {
	for _, f := range msh.Facets {
		if f.OnBoundary() {
			bf = append(bf, f)
		}
	}
	return
}

// CellCoords returns the physical coordinates of cell k's vertices.
func (msh *Mesh) CellCoords(k int) (vx, vy []float64) {
	var (
		verts = msh.EToV[k]
	)
	vx, vy = make([]float64, len(verts)), make([]float64, len(verts))
	for i, v := range verts {
		vx[i], vy[i] = msh.VertexCoords(v)
	}
	return
}

// MapRS maps reference coordinates to physical coordinates within cell k.
// Triangles use the affine map on the unit reference triangle, quads the
// bilinear map on [-1,1]^2.
func (msh *Mesh) MapRS(k int, r, s float64) (x, y float64) {
	var (
		vx, vy = msh.CellCoords(k)
	)
	switch msh.CType {
	case Triangle:
		l0 := 1. - r - s
		x = l0*vx[0] + r*vx[1] + s*vx[2]
		y = l0*vy[0] + r*vy[1] + s*vy[2]
	case Quad:
		n := quadGeomBasis(r, s)
		for a := 0; a < 4; a++ {
			x += n[a] * vx[a]
			y += n[a] * vy[a]
		}
	}
	return
}

// quadGeomBasis evaluates the bilinear geometry basis on [-1,1]^2 for the
// counterclockwise vertex order (-1,-1),(1,-1),(1,1),(-1,1).
func quadGeomBasis(r, s float64) (n [4]float64) {
	n[0] = 0.25 * (1 - r) * (1 - s)
	n[1] = 0.25 * (1 + r) * (1 - s)
	n[2] = 0.25 * (1 + r) * (1 + s)
	n[3] = 0.25 * (1 - r) * (1 + s)
	return
}

func quadGeomBasisGrad(r, s float64) (dr, ds [4]float64) {
	dr[0], ds[0] = -0.25*(1-s), -0.25*(1-r)
	dr[1], ds[1] = 0.25*(1-s), -0.25*(1+r)
	dr[2], ds[2] = 0.25*(1+s), 0.25*(1+r)
	dr[3], ds[3] = -0.25*(1+s), 0.25*(1-r)
	return
}

// NewUnitSquareQuadMesh generates a structured nx x ny quadrilateral mesh of
// the unit square [0,1]x[0,1].
func NewUnitSquareQuadMesh(nx, ny int) (msh *Mesh, err error) {
	if nx < 1 || ny < 1 {
		return nil, &InvalidTopologyError{Cell: -1,
			Reason: fmt.Sprintf("grid dimensions must be positive, have %d x %d", nx, ny)}
	}
	vx, vy := unitSquareVertices(nx, ny)
	var etov [][]int
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v00 := i + j*(nx+1)
			v10 := v00 + 1
			v11 := v10 + nx + 1
			v01 := v00 + nx + 1
			etov = append(etov, []int{v00, v10, v11, v01})
		}
	}
	return NewMesh2D(vx, vy, etov, Quad)
}

// NewUnitSquareTriMesh generates a structured nx x ny grid of the unit square
// with each quad bisected into two counterclockwise triangles.
func NewUnitSquareTriMesh(nx, ny int) (msh *Mesh, err error) {
	if nx < 1 || ny < 1 {
		return nil, &InvalidTopologyError{Cell: -1,
			Reason: fmt.Sprintf("grid dimensions must be positive, have %d x %d", nx, ny)}
	}
	vx, vy := unitSquareVertices(nx, ny)
	var etov [][]int
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v00 := i + j*(nx+1)
			v10 := v00 + 1
			v11 := v10 + nx + 1
			v01 := v00 + nx + 1
			etov = append(etov, []int{v00, v10, v11})
			etov = append(etov, []int{v00, v11, v01})
		}
	}
	return NewMesh2D(vx, vy, etov, Triangle)
}

func unitSquareVertices(nx, ny int) (vx, vy []float64) {
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			vx = append(vx, float64(i)/float64(nx))
			vy = append(vy, float64(j)/float64(ny))
		}
	}
	return
}
