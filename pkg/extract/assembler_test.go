package extract_test

import (
	"testing"

	"github.com/edp1096/pchmat/pkg/dof"
	"github.com/edp1096/pchmat/pkg/extract"
	"github.com/edp1096/pchmat/pkg/matrix"
	"github.com/edp1096/pchmat/pkg/punch"
	"github.com/stretchr/testify/require"
)

func newTable() *dof.Table {
	table := dof.NewTable()
	table.Declare(82)
	table.Set(546, 3)
	table.Set(547, 2)
	return table
}

func newAssembler(t *testing.T, kind matrix.Kind, lenient bool) (*extract.Assembler, *matrix.System) {
	t.Helper()
	table := newTable()
	sys, err := matrix.NewSystem(kind, table.Total())
	require.NoError(t, err)
	return extract.NewAssembler(table, kind, sys, lenient), sys
}

func feed(t *testing.T, a *extract.Assembler, lines ...string) {
	t.Helper()
	for i, line := range lines {
		rec := punch.Classify(line)
		rec.Line = i + 1
		require.NoError(t, a.Feed(rec), line)
	}
}

func TestAssemblerStates(t *testing.T) {
	a, sys := newAssembler(t, matrix.Stiffness, false)
	require.Equal(t, extract.Idle, a.State())

	// entries before any header are ignored
	feed(t, a, "* 547 2 9.0D0")
	require.Equal(t, extract.Idle, a.State())
	require.Equal(t, 0, sys.NonZeros())

	feed(t, a, "DMIG* KAAX 546 3")
	require.Equal(t, extract.RowActive, a.State())
	require.Equal(t, 3, a.Row())

	feed(t, a, "* 547 2 5.26D3")
	require.Equal(t, 5260.0, sys.At(3, 5))
	require.Equal(t, 5260.0, sys.At(5, 3))

	// other records keep the row open
	feed(t, a, "DMIG KAAX 0 6 2 0 6", "$ comment", "")
	require.Equal(t, extract.RowActive, a.State())

	feed(t, a, "DMIG* MAAX 546 1")
	require.Equal(t, extract.Idle, a.State())

	feed(t, a, "* 546 1 7.0D0")
	require.Equal(t, 0.0, sys.At(1, 1))
	require.Equal(t, 1, a.Entries())
	require.Equal(t, "IDLE", extract.Idle.String())
	require.Equal(t, "ROW_ACTIVE", extract.RowActive.String())
}

func TestAssemblerScalarPointComponent(t *testing.T) {
	a, sys := newAssembler(t, matrix.Mass, false)

	feed(t, a, "DMIG* MAAX 82 0", "* 82 0 1.0D+2", "* 546 1 2.5D0")
	require.Equal(t, 100.0, sys.At(0, 0))
	require.Equal(t, 2.5, sys.At(0, 1))
	require.Equal(t, 2.5, sys.At(1, 0))
}

func TestAssemblerUnknownNode(t *testing.T) {
	a, _ := newAssembler(t, matrix.Stiffness, false)

	rec := punch.Classify("DMIG* KAAX 999 1")
	rec.Line = 4
	err := a.Feed(rec)
	require.ErrorIs(t, err, dof.ErrUnknownNode)
	require.Contains(t, err.Error(), "line 4")

	feed(t, a, "DMIG* KAAX 546 1")
	err = a.Feed(punch.Classify("* 1000 1 1.0"))
	require.ErrorIs(t, err, dof.ErrUnknownNode)
}

func TestAssemblerLenientSkipsUnknownNodes(t *testing.T) {
	a, sys := newAssembler(t, matrix.Stiffness, true)

	feed(t, a, "DMIG* KAAX 999 1", "* 546 1 4.0")
	require.Equal(t, extract.Idle, a.State())

	feed(t, a, "DMIG* KAAX 546 1", "* 1000 1 1.0", "* 546 1 3.0")
	require.Equal(t, 2, a.Skipped())
	require.Equal(t, 1, a.Entries())
	require.Equal(t, 3.0, sys.At(1, 1))
	require.Equal(t, 1, sys.NonZeros())
}

func TestAssemblerIndexOutsideMatrix(t *testing.T) {
	a, _ := newAssembler(t, matrix.Stiffness, false)

	// local dof 3 of the last node points past the end
	err := a.Feed(punch.Classify("DMIG* KAAX 547 3"))
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestAssemblerFormatErrors(t *testing.T) {
	tests := map[string][]string{
		"missing matrix name": {"DMIG*"},
		"bad row node":        {"DMIG* KAAX x 1"},
		"missing row dof":     {"DMIG* KAAX 546"},
		"bad column dof":      {"DMIG* KAAX 546 1", "* 547 y 1.0"},
		"missing value":       {"DMIG* KAAX 546 1", "* 547 1"},
		"bad value":           {"DMIG* KAAX 546 1", "* 547 1 1.0X2"},
	}

	for name, lines := range tests {
		t.Run(name, func(t *testing.T) {
			a, _ := newAssembler(t, matrix.Stiffness, false)
			var err error
			for _, line := range lines {
				if err = a.Feed(punch.Classify(line)); err != nil {
					break
				}
			}
			require.ErrorIs(t, err, punch.ErrFormat)
		})
	}
}

func TestAssemblerMismatchedHeaderNotParsed(t *testing.T) {
	a, _ := newAssembler(t, matrix.Mass, false)

	// node fields of other matrices are never read
	feed(t, a, "DMIG* KAAX bogus tokens")
	require.Equal(t, extract.Idle, a.State())
}
