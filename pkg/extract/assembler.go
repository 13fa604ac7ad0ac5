package extract

import (
	"errors"
	"fmt"

	"github.com/edp1096/pchmat/pkg/dof"
	"github.com/edp1096/pchmat/pkg/matrix"
	"github.com/edp1096/pchmat/pkg/punch"
)

// State of an Assembler between records.
type State int

const (
	// Idle: no matching column header is open; entries are skipped.
	Idle State = iota
	// RowActive: entries are written against the current row.
	RowActive
)

func (s State) String() string {
	if s == RowActive {
		return "ROW_ACTIVE"
	}
	return "IDLE"
}

// Assembler writes the entries of one matrix kind into a Writer as records
// are fed to it.
//
// A DMIG* record naming the selected matrix opens a row and moves to
// RowActive; one naming any other matrix moves back to Idle. Each "*" entry
// seen in RowActive is written at (row, column) and mirrored at
// (column, row). All other records leave the state unchanged.
type Assembler struct {
	table   *dof.Table
	kind    matrix.Kind
	out     matrix.Writer
	lenient bool

	state   State
	row     int
	entries int
	skipped int
}

// NewAssembler returns an Idle assembler. With lenient set, records naming a
// node missing from table are skipped instead of failing with
// dof.ErrUnknownNode; a skipped column header leaves the assembler Idle.
func NewAssembler(table *dof.Table, kind matrix.Kind, out matrix.Writer, lenient bool) *Assembler {
	return &Assembler{table: table, kind: kind, out: out, lenient: lenient}
}

func (a *Assembler) State() State {
	return a.state
}

// Row is the global row of the open column header. Valid in RowActive only.
func (a *Assembler) Row() int {
	return a.row
}

// Entries counts the matrix entries written so far.
func (a *Assembler) Entries() int {
	return a.entries
}

// Skipped counts records dropped for naming unknown nodes in lenient mode.
func (a *Assembler) Skipped() int {
	return a.skipped
}

func (a *Assembler) Feed(rec punch.Record) error {
	switch rec.Kind {
	case punch.KindColumn:
		return a.openRow(rec)
	case punch.KindEntry:
		if a.state != RowActive {
			return nil
		}
		return a.writeEntry(rec)
	}
	return nil
}

func (a *Assembler) openRow(rec punch.Record) error {
	name, err := rec.Token(0, "matrix name")
	if err != nil {
		return err
	}
	if name != a.kind.Identifier() {
		a.state = Idle
		return nil
	}

	row, err := a.index(rec, "node id", "local dof")
	if a.skip(err) {
		a.state = Idle
		return nil
	}
	if err != nil {
		return err
	}
	a.row = row
	a.state = RowActive
	return nil
}

func (a *Assembler) writeEntry(rec punch.Record) error {
	col, err := a.index(rec, "column node id", "column local dof")
	if a.skip(err) {
		return nil
	}
	if err != nil {
		return err
	}
	v, err := rec.Float(2, "value")
	if err != nil {
		return err
	}
	if err := a.out.Set(a.row, col, v); err != nil {
		return fmt.Errorf("line %d: %w", rec.Line, err)
	}
	a.entries++
	return nil
}

// index resolves the (node, local DOF) pair held in the first two fields
// after the record's matrix name, if any.
func (a *Assembler) index(rec punch.Record, nodeWhat, localWhat string) (int, error) {
	first := 0
	if rec.Kind == punch.KindColumn {
		first = 1
	}

	id, err := rec.Int(first, nodeWhat)
	if err != nil {
		return 0, err
	}
	local, err := rec.Int(first+1, localWhat)
	if err != nil {
		return 0, err
	}

	idx, err := a.table.GlobalIndex(id, local)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", rec.Line, err)
	}

	if n := a.out.Dim(); idx < 0 || idx >= n {
		return 0, fmt.Errorf("line %d: node %d dof %d maps to %d, outside %dx%d: %w",
			rec.Line, id, local, idx, n, n, matrix.ErrOutOfRange)
	}
	return idx, nil
}

func (a *Assembler) skip(err error) bool {
	if a.lenient && errors.Is(err, dof.ErrUnknownNode) {
		a.skipped++
		return true
	}
	return false
}
