package analysis

import (
	"errors"
	"fmt"

	"github.com/edp1096/pchmat/pkg/matrix"
)

// Load is a force applied to one DOF of a node.
type Load struct {
	Node  int
	DOF   int
	Value float64
}

// Static solves K u = f with a sparse LU factorization.
//
// Results: "U" holds the full displacement vector; "U(node.dof)" holds the
// displacement of each loaded or non-zero DOF.
type Static struct {
	BaseAnalysis
	loads  []Load
	system *matrix.SparseSystem
}

func NewStatic(loads []Load) *Static {
	return &Static{BaseAnalysis: *NewBaseAnalysis(), loads: loads}
}

func (s *Static) Setup(model *Model) error {
	if err := requireMatrix(model.Stiffness, matrix.Stiffness); err != nil {
		return err
	}
	if model.Table == nil {
		return ErrMissingTable
	}

	system, err := matrix.ToSparse(model.Stiffness)
	if err != nil {
		return err
	}
	for _, load := range s.loads {
		idx, err := model.Table.GlobalIndex(load.Node, load.DOF)
		if err == nil {
			err = system.AddRHS(idx, load.Value)
		}
		if err != nil {
			system.Destroy()
			return fmt.Errorf("load on %d.%d: %w", load.Node, load.DOF, err)
		}
	}

	s.Model = model
	s.system = system
	return nil
}

func (s *Static) Execute() error {
	if s.system == nil {
		return errors.New("analysis: static analysis not set up")
	}
	defer func() {
		s.system.Destroy()
		s.system = nil
	}()

	if err := s.system.Solve(); err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}

	u := s.system.Solution()
	s.StoreResult("U", u...)
	for i, v := range u {
		if v != 0 {
			s.StoreResult(fmt.Sprintf("U(%s)", s.DofName(i)), v)
		}
	}
	return nil
}
