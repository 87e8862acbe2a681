package FEM2D

import (
	"sync"

	"github.com/notargets/gofea/utils"
	"gonum.org/v1/gonum/mat"
)

// System is the assembled global linear system. It is exclusively owned by
// the solve that produced it.
type System struct {
	A utils.CSR
	B *mat.VecDense
	N int
}

// Assemble builds the global stiffness matrix and load vector by scattering
// each cell's local contributions additively. Triplets accumulate in COO form
// and duplicates sum on compression to CSR.
func Assemble(fs *FunctionSpace, f SourceFunc) (sys *System, err error) {
	var (
		msh = fs.Msh
		n   = fs.NDofs
		coo = utils.NewCOO(n, n)
		b   = mat.NewVecDense(n, nil)
	)
	for k := 0; k < msh.NumCells(); k++ {
		var (
			Ke utils.Matrix
			Fe []float64
		)
		vx, vy := msh.CellCoords(k)
		if Ke, Fe, err = ElementStiffness(fs.Ref, vx, vy, f, k); err != nil {
			return nil, err
		}
		dofs := fs.CellDofs[k]
		for i, gi := range dofs {
			for j, gj := range dofs {
				coo.Append(gi, gj, Ke.At(i, j))
			}
			b.SetVec(gi, b.AtVec(gi)+Fe[i])
		}
	}
	sys = &System{
		A: coo.ToCSR(),
		B: b,
		N: n,
	}
	return
}

type localTriplets struct {
	I, J []int
	V    []float64
	B    []float64
}

// AssembleParallel partitions the cell set across workers. Each worker fills
// a private triplet buffer; the buffers merge single-threaded afterward, so
// no two goroutines touch the same global entry.
func AssembleParallel(fs *FunctionSpace, f SourceFunc, nWorkers int) (sys *System, err error) {
	var (
		msh  = fs.Msh
		n    = fs.NDofs
		pm   = utils.NewPartitionMap(nWorkers, msh.NumCells())
		NP   = pm.ParallelDegree
		loc  = make([]*localTriplets, NP)
		errs = make([]error, NP)
		wg   = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var (
				kMin, kMax = pm.GetBucketRange(np)
				lt         = &localTriplets{B: make([]float64, n)}
			)
			for k := kMin; k < kMax; k++ {
				vx, vy := msh.CellCoords(k)
				Ke, Fe, kerr := ElementStiffness(fs.Ref, vx, vy, f, k)
				if kerr != nil {
					errs[np] = kerr
					return
				}
				dofs := fs.CellDofs[k]
				for i, gi := range dofs {
					for j, gj := range dofs {
						lt.I = append(lt.I, gi)
						lt.J = append(lt.J, gj)
						lt.V = append(lt.V, Ke.At(i, j))
					}
					lt.B[gi] += Fe[i]
				}
			}
			loc[np] = lt
		}(np)
	}
	wg.Wait()
	for np := 0; np < NP; np++ {
		if errs[np] != nil {
			return nil, errs[np]
		}
	}
	var (
		coo = utils.NewCOO(n, n)
		b   = mat.NewVecDense(n, nil)
	)
	for np := 0; np < NP; np++ {
		lt := loc[np]
		for m := range lt.V {
			coo.Append(lt.I[m], lt.J[m], lt.V[m])
		}
		for i, v := range lt.B {
			if v != 0 {
				b.SetVec(i, b.AtVec(i)+v)
			}
		}
	}
	sys = &System{
		A: coo.ToCSR(),
		B: b,
		N: n,
	}
	return
}
