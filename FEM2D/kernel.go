package FEM2D

import (
	"github.com/notargets/gofea/utils"
)

// SourceFunc evaluates PDE data (source term or boundary value) at a physical
// coordinate.
type SourceFunc func(x, y float64) float64

// ConstSource adapts a constant to a SourceFunc.
func ConstSource(c float64) SourceFunc {
	return func(x, y float64) float64 { return c }
}

// cellGeometry holds the metric terms of one cell's reference-to-physical
// map evaluated at the cubature points:
//
//	J  = xr*ys - xs*yr
//	rx = ys/J; sx = -yr/J; ry = -xs/J; sy = xr/J
//
// Triangles use the affine map (constant metric), quads the bilinear map
// (metric varies per point).
type cellGeometry struct {
	Jdet           []float64
	Rx, Sx, Ry, Sy []float64
	Xq, Yq         []float64
}

func newCellGeometry(ref *ReferenceElement, vx, vy []float64, k int) (geom *cellGeometry, err error) {
	var (
		cub = ref.Cub
		Nq  = cub.Nq
	)
	geom = &cellGeometry{
		Jdet: make([]float64, Nq),
		Rx:   make([]float64, Nq), Sx: make([]float64, Nq),
		Ry: make([]float64, Nq), Sy: make([]float64, Nq),
		Xq: make([]float64, Nq), Yq: make([]float64, Nq),
	}
	for q := 0; q < Nq; q++ {
		var (
			r, s           = cub.R.AtVec(q), cub.S.AtVec(q)
			xr, xs, yr, ys float64
		)
		switch ref.CType {
		case Triangle:
			xr, xs = vx[1]-vx[0], vx[2]-vx[0]
			yr, ys = vy[1]-vy[0], vy[2]-vy[0]
			l0 := 1. - r - s
			geom.Xq[q] = l0*vx[0] + r*vx[1] + s*vx[2]
			geom.Yq[q] = l0*vy[0] + r*vy[1] + s*vy[2]
		case Quad:
			dr, ds := quadGeomBasisGrad(r, s)
			n := quadGeomBasis(r, s)
			for a := 0; a < 4; a++ {
				xr += dr[a] * vx[a]
				xs += ds[a] * vx[a]
				yr += dr[a] * vy[a]
				ys += ds[a] * vy[a]
				geom.Xq[q] += n[a] * vx[a]
				geom.Yq[q] += n[a] * vy[a]
			}
		}
		J := xr*ys - xs*yr
		if J <= 0 {
			return nil, &DegenerateCellError{Cell: k, Det: J}
		}
		geom.Jdet[q] = J
		geom.Rx[q], geom.Sx[q] = ys/J, -yr/J
		geom.Ry[q], geom.Sy[q] = -xs/J, xr/J
	}
	return
}

// ElementStiffness computes the local stiffness matrix and load vector of one
// cell for the Poisson bilinear form. Physical-space basis gradients are the
// inverse-transpose Jacobian applied to the reference gradients.
func ElementStiffness(ref *ReferenceElement, vx, vy []float64, f SourceFunc, k int) (Ke utils.Matrix, Fe []float64, err error) {
	var (
		geom   *cellGeometry
		Np     = ref.Np
		cub    = ref.Cub
		gx, gy = make([]float64, Np), make([]float64, Np)
	)
	if geom, err = newCellGeometry(ref, vx, vy, k); err != nil {
		return
	}
	Ke = utils.NewMatrix(Np, Np)
	Fe = make([]float64, Np)
	for q := 0; q < cub.Nq; q++ {
		w := cub.W.AtVec(q) * geom.Jdet[q]
		for j := 0; j < Np; j++ {
			dr, ds := ref.Dr.At(q, j), ref.Ds.At(q, j)
			gx[j] = dr*geom.Rx[q] + ds*geom.Sx[q]
			gy[j] = dr*geom.Ry[q] + ds*geom.Sy[q]
		}
		for i := 0; i < Np; i++ {
			for j := 0; j < Np; j++ {
				Ke.Set(i, j, Ke.At(i, j)+w*(gx[i]*gx[j]+gy[i]*gy[j]))
			}
		}
		fval := f(geom.Xq[q], geom.Yq[q])
		for i := 0; i < Np; i++ {
			Fe[i] += w * ref.Phi.At(q, i) * fval
		}
	}
	return
}
