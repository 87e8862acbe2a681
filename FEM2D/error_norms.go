package FEM2D

import (
	"fmt"
	"math"
)

// L2ErrorAnalytic integrates (u - exact)^2 cell-wise by quadrature and
// returns the L2 norm of the difference.
func L2ErrorAnalytic(u *Function, exact SourceFunc) (l2 float64, err error) {
	var (
		fs  = u.FS
		msh = fs.Msh
		ref = fs.Ref
		cub = ref.Cub
	)
	for k := 0; k < msh.NumCells(); k++ {
		var (
			geom *cellGeometry
			dofs = fs.CellDofs[k]
		)
		vx, vy := msh.CellCoords(k)
		if geom, err = newCellGeometry(ref, vx, vy, k); err != nil {
			return 0, err
		}
		for q := 0; q < cub.Nq; q++ {
			var uh float64
			for j, d := range dofs {
				uh += ref.Phi.At(q, j) * u.Coeffs.AtVec(d)
			}
			diff := uh - exact(geom.Xq[q], geom.Yq[q])
			l2 += cub.W.AtVec(q) * geom.Jdet[q] * diff * diff
		}
	}
	l2 = math.Sqrt(l2)
	return
}

// L2Diff integrates the squared difference of two functions sharing one mesh,
// possibly on different-degree spaces, using the higher-degree cubature.
func L2Diff(u, v *Function) (l2 float64, err error) {
	if u.FS.Msh != v.FS.Msh {
		return 0, fmt.Errorf("functions must share a mesh to compare")
	}
	var (
		hi = u.FS
	)
	if v.FS.P > hi.P {
		hi = v.FS
	}
	var (
		msh = hi.Msh
		ref = hi.Ref
		cub = ref.Cub
	)
	for k := 0; k < msh.NumCells(); k++ {
		var (
			geom *cellGeometry
		)
		vx, vy := msh.CellCoords(k)
		if geom, err = newCellGeometry(ref, vx, vy, k); err != nil {
			return 0, err
		}
		for q := 0; q < cub.Nq; q++ {
			r, s := cub.R.AtVec(q), cub.S.AtVec(q)
			diff := u.EvalCell(k, r, s) - v.EvalCell(k, r, s)
			l2 += cub.W.AtVec(q) * geom.Jdet[q] * diff * diff
		}
	}
	l2 = math.Sqrt(l2)
	return
}

// MaxNodalError is the maximum pointwise absolute difference between u and
// the analytic field, sampled at u's DOF locations.
func MaxNodalError(u *Function, exact SourceFunc) (maxErr float64) {
	var (
		fs = u.FS
	)
	for d := 0; d < fs.NDofs; d++ {
		diff := math.Abs(u.Coeffs.AtVec(d) - exact(fs.DofX[d], fs.DofY[d]))
		if diff > maxErr {
			maxErr = diff
		}
	}
	return
}

// MaxDiffAtDofs samples |u - v| at v's DOF locations, typically the DOFs of
// the lower-degree space.
func MaxDiffAtDofs(u, v *Function) (maxErr float64, err error) {
	if u.FS.Msh != v.FS.Msh {
		return 0, fmt.Errorf("functions must share a mesh to compare")
	}
	var (
		fs = v.FS
	)
	for d := 0; d < fs.NDofs; d++ {
		uh := u.EvalCell(fs.DofCell[d], fs.DofR[d], fs.DofS[d])
		diff := math.Abs(uh - v.Coeffs.AtVec(d))
		if diff > maxErr {
			maxErr = diff
		}
	}
	return
}

// CalcConvergenceOrder computes the observed order from errors at two mesh
// sizes: log(e1/e2) / log(h1/h2).
func CalcConvergenceOrder(h1, e1, h2, e2 float64) float64 {
	return math.Log(e1/e2) / math.Log(h1/h2)
}
