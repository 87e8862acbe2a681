package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML case definition
type CaseParameters2D struct {
	Title            string  `yaml:"Title"`
	MeshType         string  `yaml:"MeshType"` // "Tri" or "Quad"
	Nx               int     `yaml:"Nx"`
	Ny               int     `yaml:"Ny"`
	PolynomialOrder  int     `yaml:"PolynomialOrder"`
	SolverType       string  `yaml:"SolverType"` // "Cholesky" or "CG"
	SourceConstant   float64 `yaml:"SourceConstant"`
	BoundaryConstant float64 `yaml:"BoundaryConstant"`
	ParallelDegree   int     `yaml:"ParallelDegree"`
}

func (cp *CaseParameters2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *CaseParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%s]\t\t\t= Mesh Type\n", cp.MeshType)
	fmt.Printf("[%d x %d]\t\t= Grid\n", cp.Nx, cp.Ny)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", cp.PolynomialOrder)
	fmt.Printf("[%s]\t\t= Solver Type\n", cp.SolverType)
	fmt.Printf("%8.5f\t\t= Source Constant\n", cp.SourceConstant)
	fmt.Printf("%8.5f\t\t= Boundary Constant\n", cp.BoundaryConstant)
}
