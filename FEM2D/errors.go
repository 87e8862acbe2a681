package FEM2D

import "fmt"

// InvalidTopologyError reports malformed mesh connectivity discovered during
// mesh construction or facet extraction.
type InvalidTopologyError struct {
	Cell   int
	Reason string
}

func (e *InvalidTopologyError) Error() string {
	if e.Cell < 0 {
		return fmt.Sprintf("invalid mesh topology: %s", e.Reason)
	}
	return fmt.Sprintf("invalid mesh topology at cell %d: %s", e.Cell, e.Reason)
}

// DegenerateCellError reports a non-positive Jacobian determinant encountered
// while evaluating the geometric map of a cell.
type DegenerateCellError struct {
	Cell int
	Det  float64
}

func (e *DegenerateCellError) Error() string {
	return fmt.Sprintf("degenerate cell %d: Jacobian determinant = %g, must be positive", e.Cell, e.Det)
}

// InconsistentDofMappingError reports a disagreement between adjacent cells on
// the placement of a shared degree of freedom. It signals an internal
// numbering defect and should be unreachable for valid meshes.
type InconsistentDofMappingError struct {
	Dof    int
	Cell   int
	Reason string
}

func (e *InconsistentDofMappingError) Error() string {
	return fmt.Sprintf("inconsistent DOF mapping for global DOF %d at cell %d: %s", e.Dof, e.Cell, e.Reason)
}

// ConflictingBoundaryValueError reports two boundary specifications that
// prescribe different values for the same degree of freedom.
type ConflictingBoundaryValueError struct {
	Dof          int
	Value, Other float64
}

func (e *ConflictingBoundaryValueError) Error() string {
	return fmt.Sprintf("conflicting boundary values for DOF %d: %g vs %g", e.Dof, e.Value, e.Other)
}

// SingularSystemError reports a failed factorization or a non-converged or
// non-finite solve of the constrained linear system.
type SingularSystemError struct {
	Reason string
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("singular or indefinite linear system: %s", e.Reason)
}
