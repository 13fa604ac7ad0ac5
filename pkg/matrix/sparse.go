package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// SparseSystem is a real sparse matrix with a right-hand side, factored and
// solved by LU. Public indices are 0-based; the underlying matrix and
// vectors are 1-based.
type SparseSystem struct {
	Size     int
	matrix   *sparse.Matrix
	rhs      []float64
	solution []float64
	config   *sparse.Configuration
}

func NewSparse(size int) (*SparseSystem, error) {
	if size <= 0 {
		return nil, fmt.Errorf("NewSparse(%d): %w", size, ErrInvalidDimensions)
	}

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           false,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	m, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &SparseSystem{
		Size:     size,
		matrix:   m,
		rhs:      make([]float64, size+1),
		solution: make([]float64, size+1),
		config:   config,
	}, nil
}

// ToSparse copies the non-zero entries of s into a new SparseSystem.
func ToSparse(s *System) (*SparseSystem, error) {
	n := s.Dim()
	sp, err := NewSparse(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := s.At(i, j); v != 0 {
				sp.matrix.GetElement(int64(i+1), int64(j+1)).Real = v
			}
		}
	}
	return sp, nil
}

func (m *SparseSystem) AddElement(i, j int, value float64) error {
	if i < 0 || j < 0 || i >= m.Size || j >= m.Size {
		return fmt.Errorf("SparseSystem.AddElement(%d,%d) in %dx%d: %w", i, j, m.Size, m.Size, ErrOutOfRange)
	}
	m.matrix.GetElement(int64(i+1), int64(j+1)).Real += value
	return nil
}

func (m *SparseSystem) AddRHS(i int, value float64) error {
	if i < 0 || i >= m.Size {
		return fmt.Errorf("SparseSystem.AddRHS(%d) size %d: %w", i, m.Size, ErrOutOfRange)
	}
	m.rhs[i+1] += value
	return nil
}

func (m *SparseSystem) Solve() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("matrix factorization failed: %v", err)
	}

	solution, err := m.matrix.Solve(m.rhs)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %v", err)
	}
	m.solution = solution
	return nil
}

// Solution returns the 0-based solution vector of the last Solve.
func (m *SparseSystem) Solution() []float64 {
	out := make([]float64, m.Size)
	if len(m.solution) > m.Size {
		copy(out, m.solution[1:m.Size+1])
	}
	return out
}

func (m *SparseSystem) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
	}
}
