package FEM2D

import (
	"fmt"

	"github.com/notargets/gofea/utils"
)

// Function is a finite-element field: one coefficient per global DOF of its
// FunctionSpace. For Lagrange elements each coefficient is the field value at
// that DOF's geometric location.
type Function struct {
	FS     *FunctionSpace
	Coeffs utils.Vector
}

func NewFunction(fs *FunctionSpace) (u *Function) {
	u = &Function{
		FS:     fs,
		Coeffs: utils.NewVector(fs.NDofs),
	}
	return
}

// Interpolate fills the coefficients by evaluating f at every DOF location.
func (u *Function) Interpolate(f SourceFunc) *Function {
	var (
		fs = u.FS
	)
	for d := 0; d < fs.NDofs; d++ {
		u.Coeffs.Set(d, f(fs.DofX[d], fs.DofY[d]))
	}
	return u
}

// EvalCell evaluates the field within cell k at reference point (r,s).
func (u *Function) EvalCell(k int, r, s float64) (val float64) {
	var (
		phi  = u.FS.Ref.EvalBasis(r, s)
		dofs = u.FS.CellDofs[k]
	)
	for j, d := range dofs {
		val += phi[j] * u.Coeffs.AtVec(d)
	}
	return
}

func (u *Function) Copy() (v *Function) {
	v = &Function{
		FS:     u.FS,
		Coeffs: u.Coeffs.Copy(),
	}
	return
}

// Sub subtracts v coefficient-wise, producing an error field. Both functions
// must live on the same space.
func (u *Function) Sub(v *Function) (*Function, error) {
	if u.FS != v.FS {
		return nil, fmt.Errorf("cannot subtract functions on different spaces")
	}
	w := u.Copy()
	for d := 0; d < u.FS.NDofs; d++ {
		w.Coeffs.Set(d, u.Coeffs.AtVec(d)-v.Coeffs.AtVec(d))
	}
	return w, nil
}
