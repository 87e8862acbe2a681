package FEM2D

import (
	"fmt"

	"github.com/notargets/gofea/utils"
	"gonum.org/v1/gonum/integrate/quad"
)

// Cubature holds a 2D quadrature rule on the reference cell: point
// coordinates R,S and weights W. Triangle rules live on the unit reference
// triangle (0,0),(1,0),(0,1) with weights summing to 1/2; quad rules on
// [-1,1]^2 with weights summing to 4.
type Cubature struct {
	R, S, W utils.Vector
	Nq      int
}

// NewCubature provides a rule integrating exactly polynomials up to degree P
// on the reference cell of the given type.
func NewCubature(ct CellType, P int) (cb *Cubature) {
	if ct == Triangle {
		return newTriCubature(P)
	}
	return newQuadCubature(P)
}

func newCubatureFromTriples(cub2d []float64) (cb *Cubature) {
	Nq := len(cub2d) / 3
	cubMat := utils.NewMatrix(Nq, 3, cub2d)
	cb = &Cubature{
		R:  cubMat.Col(0),
		S:  cubMat.Col(1),
		W:  cubMat.Col(2),
		Nq: Nq,
	}
	return
}

// Symmetric Gauss rules for the triangle (Dunavant), stored as raw
// (r, s, weight) triples on the unit reference triangle. Barycentric
// coordinates (l1,l2,l3) map to (r,s) = (l2,l3); the tabulated weights sum
// to one and are scaled by the reference area 1/2 below.
var triCubTables = []struct {
	degree int
	data   []float64
}{
	{1, []float64{
		1. / 3., 1. / 3., 1.,
	}},
	{2, []float64{
		1. / 6., 1. / 6., 1. / 3.,
		2. / 3., 1. / 6., 1. / 3.,
		1. / 6., 2. / 3., 1. / 3.,
	}},
	{4, []float64{
		0.445948490915965, 0.445948490915965, 0.223381589678011,
		0.108103018168070, 0.445948490915965, 0.223381589678011,
		0.445948490915965, 0.108103018168070, 0.223381589678011,
		0.091576213509771, 0.091576213509771, 0.109951743655322,
		0.816847572980459, 0.091576213509771, 0.109951743655322,
		0.091576213509771, 0.816847572980459, 0.109951743655322,
	}},
	{5, []float64{
		1. / 3., 1. / 3., 0.225,
		0.470142064105115, 0.470142064105115, 0.132394152788506,
		0.059715871789770, 0.470142064105115, 0.132394152788506,
		0.470142064105115, 0.059715871789770, 0.132394152788506,
		0.101286507323456, 0.101286507323456, 0.125939180544827,
		0.797426985353087, 0.101286507323456, 0.125939180544827,
		0.101286507323456, 0.797426985353087, 0.125939180544827,
	}},
	{6, []float64{
		0.249286745170910, 0.249286745170910, 0.116786275726379,
		0.501426509658179, 0.249286745170910, 0.116786275726379,
		0.249286745170910, 0.501426509658179, 0.116786275726379,
		0.063089014491502, 0.063089014491502, 0.050844906370207,
		0.873821971016996, 0.063089014491502, 0.050844906370207,
		0.063089014491502, 0.873821971016996, 0.050844906370207,
		0.053145049844816, 0.636502499121399, 0.082851075618374,
		0.636502499121399, 0.053145049844816, 0.082851075618374,
		0.053145049844816, 0.310352451033785, 0.082851075618374,
		0.310352451033785, 0.053145049844816, 0.082851075618374,
		0.636502499121399, 0.310352451033785, 0.082851075618374,
		0.310352451033785, 0.636502499121399, 0.082851075618374,
	}},
}

func getTriCub(P int) (cub2d []float64) {
	for _, tbl := range triCubTables {
		if tbl.degree >= P {
			cub2d = tbl.data
			return
		}
	}
	err := fmt.Errorf("TriCubature(%d): degree > 6 not tabulated\n", P)
	panic(err)
}

func newTriCubature(P int) (cb *Cubature) {
	cb = newCubatureFromTriples(getTriCub(P))
	cb.W.Apply(func(w float64) float64 { return 0.5 * w })
	return
}

// newQuadCubature builds a tensor-product Gauss-Legendre rule with enough
// points per direction to integrate degree P exactly.
func newQuadCubature(P int) (cb *Cubature) {
	var (
		n = (P + 2) / 2 // 2n-1 >= P
	)
	if n < 1 {
		n = 1
	}
	x, w := make([]float64, n), make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	cub2d := make([]float64, 0, 3*n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			cub2d = append(cub2d, x[i], x[j], w[i]*w[j])
		}
	}
	cb = newCubatureFromTriples(cub2d)
	return
}
