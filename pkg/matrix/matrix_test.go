package matrix_test

import (
	"math"
	"testing"

	"github.com/edp1096/pchmat/internal/consts"
	"github.com/edp1096/pchmat/pkg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindIdentifier(t *testing.T) {
	require.Equal(t, "MAAX", matrix.Mass.Identifier())
	require.Equal(t, "KAAX", matrix.Stiffness.Identifier())
	require.Equal(t, "mass", matrix.Mass.String())
	require.Equal(t, "stiffness", matrix.Stiffness.String())
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"mass", "M", "MAAX", " Mass "} {
		k, err := matrix.ParseKind(name)
		require.NoError(t, err, name)
		require.Equal(t, matrix.Mass, k, name)
	}
	for _, name := range []string{"stiffness", "STIF", "k", "kaax"} {
		k, err := matrix.ParseKind(name)
		require.NoError(t, err, name)
		require.Equal(t, matrix.Stiffness, k, name)
	}

	_, err := matrix.ParseKind("damping")
	require.ErrorIs(t, err, matrix.ErrUnknownKind)
}

func TestNewSystemInvalidDimensions(t *testing.T) {
	_, err := matrix.NewSystem(matrix.Mass, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewSystem(matrix.Mass, -2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	for _, n := range []int{consts.MaxDimension + 1, math.MaxInt / 2, math.MaxInt} {
		_, err = matrix.NewSystem(matrix.Stiffness, n)
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions, n)
	}
}

func TestSystemSetIsSymmetric(t *testing.T) {
	s, err := matrix.NewSystem(matrix.Stiffness, 3)
	require.NoError(t, err)
	require.Equal(t, 3, s.Dim())
	require.Equal(t, 0, s.NonZeros())

	require.NoError(t, s.Set(2, 0, 5.5))
	require.NoError(t, s.Set(1, 1, -1))

	require.Equal(t, 5.5, s.At(2, 0))
	require.Equal(t, 5.5, s.At(0, 2))
	require.Equal(t, -1.0, s.At(1, 1))
	require.Equal(t, 3, s.NonZeros())
	require.Equal(t, []float64{5.5, 0, 0}, s.Row(2))

	for i := 0; i < s.Dim(); i++ {
		for j := 0; j < s.Dim(); j++ {
			assert.Equal(t, s.At(i, j), s.At(j, i))
		}
	}
}

func TestSystemSetOutOfRange(t *testing.T) {
	s, err := matrix.NewSystem(matrix.Mass, 2)
	require.NoError(t, err)

	require.ErrorIs(t, s.Set(2, 0, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, s.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestSystemString(t *testing.T) {
	s, err := matrix.NewSystem(matrix.Mass, 2)
	require.NoError(t, err)
	require.NoError(t, s.Set(0, 1, 2))

	out := s.String()
	require.Contains(t, out, "2")
	require.Contains(t, out, "0")
}

func TestSparseSolve(t *testing.T) {
	s, err := matrix.NewSystem(matrix.Stiffness, 2)
	require.NoError(t, err)
	require.NoError(t, s.Set(0, 0, 4))
	require.NoError(t, s.Set(0, 1, 1))
	require.NoError(t, s.Set(1, 1, 3))

	sp, err := matrix.ToSparse(s)
	require.NoError(t, err)
	defer sp.Destroy()

	require.NoError(t, sp.AddRHS(0, 1))
	require.NoError(t, sp.AddRHS(1, 2))
	require.NoError(t, sp.Solve())

	x := sp.Solution()
	require.Len(t, x, 2)
	assert.InDelta(t, 1.0/11.0, x[0], 1e-12)
	assert.InDelta(t, 7.0/11.0, x[1], 1e-12)
}

func TestSparseBounds(t *testing.T) {
	_, err := matrix.NewSparse(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	sp, err := matrix.NewSparse(2)
	require.NoError(t, err)
	defer sp.Destroy()

	require.ErrorIs(t, sp.AddElement(2, 0, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, sp.AddRHS(-1, 1), matrix.ErrOutOfRange)
	require.NoError(t, sp.AddElement(1, 1, 1))
}
