package FEM2D

import (
	"fmt"
	"math"

	"github.com/vladimir-ch/iterative"
	"gonum.org/v1/gonum/mat"
)

// LinearSolver solves the constrained symmetric system A x = b. A failed or
// non-finite solve reports SingularSystemError: no partial result is ever
// returned.
type LinearSolver interface {
	Solve(sys *System) (x *mat.VecDense, err error)
}

// CholeskySolver is the direct solver. The constrained matrix is symmetric
// positive definite after correct elimination, so a failed factorization
// means a singular or indefinite system.
type CholeskySolver struct{}

func (CholeskySolver) Solve(sys *System) (x *mat.VecDense, err error) {
	var (
		n    = sys.N
		sym  = mat.NewSymDense(n, nil)
		chol mat.Cholesky
	)
	sys.A.DoNonZero(func(i, j int, v float64) {
		if i <= j {
			sym.SetSym(i, j, v)
		}
	})
	if ok := chol.Factorize(sym); !ok {
		return nil, &SingularSystemError{Reason: "Cholesky factorization found a non-positive pivot"}
	}
	x = mat.NewVecDense(n, nil)
	if err = chol.SolveVecTo(x, sys.B); err != nil {
		return nil, &SingularSystemError{Reason: err.Error()}
	}
	if err = checkFinite(x); err != nil {
		return nil, err
	}
	return
}

// CGSolver solves via preconditioner-free conjugate gradients on the sparse
// matrix. Suited to larger systems where the dense factorization is too
// expensive.
type CGSolver struct{}

func (CGSolver) Solve(sys *System) (x *mat.VecDense, err error) {
	var (
		n = sys.N
		b = make([]float64, n)
	)
	copy(b, sys.B.RawVector().Data)
	matvec := func(dst, src []float64) {
		copy(dst, sys.A.MulVec(src))
	}
	res, cgErr := iterative.LinearSolve(iterative.MatrixOps{MatVec: matvec}, b, &iterative.CG{}, iterative.Settings{})
	if cgErr != nil {
		return nil, &SingularSystemError{Reason: fmt.Sprintf("CG did not converge: %v", cgErr)}
	}
	x = mat.NewVecDense(n, res.X)
	if err = checkFinite(x); err != nil {
		return nil, err
	}
	return
}

func checkFinite(x *mat.VecDense) error {
	for _, v := range x.RawVector().Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &SingularSystemError{Reason: "solution vector contains non-finite entries"}
		}
	}
	return nil
}
