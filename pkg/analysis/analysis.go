// Package analysis runs structural analyses on matrices extracted from
// punch files.
package analysis

import (
	"errors"
	"fmt"

	"github.com/edp1096/pchmat/pkg/dof"
	"github.com/edp1096/pchmat/pkg/matrix"
)

var (
	ErrMissingMatrix       = errors.New("analysis: required matrix missing")
	ErrMissingTable        = errors.New("analysis: dof table missing")
	ErrNotPositiveDefinite = errors.New("analysis: mass matrix is not positive definite")
	ErrEigenFailed         = errors.New("analysis: eigen decomposition failed")
	ErrSingular            = errors.New("analysis: stiffness matrix is singular")
)

// Model is the input of an analysis: a DOF table and the matrices built
// from it. Either matrix may be nil when an analysis does not need it.
type Model struct {
	Table     *dof.Table
	Stiffness *matrix.System
	Mass      *matrix.System
}

type Analysis interface {
	Setup(model *Model) error
	Execute() error
	GetResults() map[string][]float64
}

type BaseAnalysis struct {
	Model   *Model
	results map[string][]float64 // key: quantity name
}

func NewBaseAnalysis() *BaseAnalysis {
	return &BaseAnalysis{results: make(map[string][]float64)}
}

func (a *BaseAnalysis) StoreResult(name string, values ...float64) {
	a.results[name] = append(a.results[name], values...)
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}

// DofName labels a global index as "node.dof", e.g. "546.3".
func (a *BaseAnalysis) DofName(idx int) string {
	if a.Model != nil && a.Model.Table != nil {
		if id, local, ok := a.Model.Table.Locate(idx); ok {
			return fmt.Sprintf("%d.%d", id, local)
		}
	}
	return fmt.Sprintf("#%d", idx)
}

func requireMatrix(sys *matrix.System, kind matrix.Kind) error {
	if sys == nil {
		return fmt.Errorf("%s: %w", kind, ErrMissingMatrix)
	}
	return nil
}
