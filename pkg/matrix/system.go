// Package matrix holds the dense symmetric system matrices read from punch
// files and a sparse view of them for factorization.
package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/edp1096/pchmat/internal/consts"
)

// Writer receives symmetric entries. Set(i, j, v) also sets (j, i).
type Writer interface {
	Dim() int
	Set(i, j int, v float64) error
}

// System is a square, dense, symmetric matrix of one Kind. It is
// zero-initialized and never resized.
type System struct {
	Kind Kind
	sym  *mat.SymDense
}

var _ Writer = (*System)(nil)

// NewSystem returns a zero n x n matrix. n must lie in 1..consts.MaxDimension.
func NewSystem(kind Kind, n int) (*System, error) {
	if n <= 0 || n > consts.MaxDimension || n > math.MaxInt/n {
		return nil, fmt.Errorf("NewSystem(%d): %w", n, ErrInvalidDimensions)
	}
	return &System{Kind: kind, sym: mat.NewSymDense(n, nil)}, nil
}

func (s *System) Dim() int {
	return s.sym.SymmetricDim()
}

// At returns the entry at (i, j). It panics on out-of-range indices, like
// gonum matrices do.
func (s *System) At(i, j int) float64 {
	return s.sym.At(i, j)
}

// Set writes v at (i, j) and (j, i).
func (s *System) Set(i, j int, v float64) error {
	n := s.Dim()
	if i < 0 || i >= n || j < 0 || j >= n {
		return fmt.Errorf("System.Set(%d,%d) in %dx%d: %w", i, j, n, n, ErrOutOfRange)
	}
	s.sym.SetSym(i, j, v)
	return nil
}

// Sym exposes the backing gonum matrix. Writes through it bypass bounds
// reporting.
func (s *System) Sym() *mat.SymDense {
	return s.sym
}

// NonZeros counts the non-zero entries of the full matrix.
func (s *System) NonZeros() int {
	n := s.Dim()
	count := 0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if s.sym.At(i, j) == 0 {
				continue
			}
			if i == j {
				count++
			} else {
				count += 2
			}
		}
	}
	return count
}

// Row returns a copy of row i.
func (s *System) Row(i int) []float64 {
	n := s.Dim()
	row := make([]float64, n)
	for j := 0; j < n; j++ {
		row[j] = s.sym.At(i, j)
	}
	return row
}

func (s *System) String() string {
	return fmt.Sprintf("%v", mat.Formatted(s.sym, mat.Squeeze()))
}
