package analysis

import (
	"fmt"
	"math"

	"github.com/edp1096/pchmat/pkg/matrix"
	"gonum.org/v1/gonum/mat"
)

// Modal solves K x = w^2 M x for the natural frequencies of the model.
//
// Results: "EIGENVALUE" (w^2), "OMEGA" (rad/s) and "FREQ" (Hz), ascending.
type Modal struct {
	BaseAnalysis
	modes int
}

// NewModal keeps the lowest modes frequencies; modes <= 0 keeps all of them.
func NewModal(modes int) *Modal {
	return &Modal{BaseAnalysis: *NewBaseAnalysis(), modes: modes}
}

func (m *Modal) Setup(model *Model) error {
	if err := requireMatrix(model.Stiffness, matrix.Stiffness); err != nil {
		return err
	}
	if err := requireMatrix(model.Mass, matrix.Mass); err != nil {
		return err
	}
	if k, ms := model.Stiffness.Dim(), model.Mass.Dim(); k != ms {
		return fmt.Errorf("stiffness %dx%d, mass %dx%d: %w", k, k, ms, ms, matrix.ErrDimensionMismatch)
	}
	m.Model = model
	return nil
}

func (m *Modal) Execute() error {
	k := m.Model.Stiffness.Sym()
	n := k.SymmetricDim()

	// M = L L^T, then A = L^-1 K L^-T has the same eigenvalues as (K, M).
	var chol mat.Cholesky
	if ok := chol.Factorize(m.Model.Mass.Sym()); !ok {
		return ErrNotPositiveDefinite
	}
	var l, linv mat.TriDense
	chol.LTo(&l)
	if err := linv.InverseTri(&l); err != nil {
		return fmt.Errorf("%w: %v", ErrNotPositiveDefinite, err)
	}

	var tmp, full mat.Dense
	tmp.Mul(&linv, k)
	full.Mul(&tmp, linv.T())

	a := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a.SetSym(i, j, 0.5*(full.At(i, j)+full.At(j, i)))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(a, false); !ok {
		return ErrEigenFailed
	}
	values := eig.Values(nil)

	count := len(values)
	if m.modes > 0 && m.modes < count {
		count = m.modes
	}
	for _, lambda := range values[:count] {
		// rigid-body modes come out as tiny negative numbers
		omega := math.Sqrt(math.Max(lambda, 0))
		m.StoreResult("EIGENVALUE", lambda)
		m.StoreResult("OMEGA", omega)
		m.StoreResult("FREQ", omega/(2*math.Pi))
	}
	return nil
}
