package FEM2D

import (
	"fmt"
	"strings"

	"github.com/notargets/gofea/InputParameters"
	"gonum.org/v1/gonum/mat"
)

// SolvePoisson runs the full pipeline: assemble the stiffness system for the
// source term, eliminate the Dirichlet constraints, solve, and wrap the
// coefficient vector as a Function. On any failure no partial result is
// returned.
func SolvePoisson(fs *FunctionSpace, f SourceFunc, solver LinearSolver, bcs ...BCSpec) (u *Function, err error) {
	var (
		sys *System
	)
	if sys, err = Assemble(fs, f); err != nil {
		return
	}
	return solveAssembled(fs, sys, solver, bcs)
}

func solveAssembled(fs *FunctionSpace, sys *System, solver LinearSolver, bcs []BCSpec) (u *Function, err error) {
	var (
		bc *DirichletBC
		x  *mat.VecDense
	)
	if bc, err = NewDirichletBC(fs, bcs...); err != nil {
		return
	}
	bc.Apply(sys)
	if x, err = solver.Solve(sys); err != nil {
		return
	}
	u = NewFunction(fs)
	for d := 0; d < fs.NDofs; d++ {
		u.Coeffs.Set(d, x.AtVec(d))
	}
	return
}

// RunCase drives the pipeline from a parsed YAML case definition: constant
// source, constant Dirichlet data on the whole boundary.
func RunCase(cp *InputParameters.CaseParameters2D) (u *Function, err error) {
	var (
		msh    *Mesh
		fs     *FunctionSpace
		sys    *System
		solver LinearSolver
	)
	switch strings.ToLower(cp.MeshType) {
	case "tri", "triangle":
		msh, err = NewUnitSquareTriMesh(cp.Nx, cp.Ny)
	case "quad", "quadrilateral":
		msh, err = NewUnitSquareQuadMesh(cp.Nx, cp.Ny)
	default:
		err = fmt.Errorf("unknown mesh type: %q", cp.MeshType)
	}
	if err != nil {
		return
	}
	if fs, err = NewFunctionSpace(msh, Lagrange, cp.PolynomialOrder); err != nil {
		return
	}
	switch strings.ToLower(cp.SolverType) {
	case "", "cholesky":
		solver = CholeskySolver{}
	case "cg":
		solver = CGSolver{}
	default:
		err = fmt.Errorf("unknown solver type: %q", cp.SolverType)
		return
	}
	f := ConstSource(cp.SourceConstant)
	if cp.ParallelDegree > 1 {
		sys, err = AssembleParallel(fs, f, cp.ParallelDegree)
	} else {
		sys, err = Assemble(fs, f)
	}
	if err != nil {
		return
	}
	return solveAssembled(fs, sys, solver,
		[]BCSpec{{Where: WholeBoundary, Value: ConstSource(cp.BoundaryConstant)}})
}
