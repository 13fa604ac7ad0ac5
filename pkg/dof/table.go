// Package dof maps node IDs to their number of degrees of freedom and
// resolves global DOF positions from that map.
//
// The global layout orders nodes by ascending ID, never by the order in which
// they appear in a file: the global index of (node, local DOF) is the sum of
// the DOF counts of all nodes with a smaller ID, plus local DOF - 1.
package dof

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownNode is returned when a record references a node that has no
	// entry in the table.
	ErrUnknownNode = errors.New("dof: unknown node")

	// ErrEmptyTable is returned when no node carries any DOF.
	ErrEmptyTable = errors.New("dof: no degrees of freedom declared")
)

// Table is an ordered node ID -> DOF count map. Lookups go through the map,
// ordered walks through ids, which is kept sorted on every insert.
type Table struct {
	counts   map[int]int
	ids      []int
	declared int
	header   bool
}

func NewTable() *Table {
	return &Table{counts: make(map[int]int)}
}

// Set assigns n DOFs to node id, replacing any previous count.
func (t *Table) Set(id, n int) {
	if _, ok := t.counts[id]; !ok {
		pos, _ := slices.BinarySearch(t.ids, id)
		t.ids = slices.Insert(t.ids, pos, id)
	}
	t.counts[id] = n
}

// Declare registers a scalar point (one DOF) unless id is already present.
// It reports whether the table changed.
func (t *Table) Declare(id int) bool {
	if _, ok := t.counts[id]; ok {
		return false
	}
	t.Set(id, 1)
	return true
}

func (t *Table) Count(id int) (int, bool) {
	n, ok := t.counts[id]
	return n, ok
}

func (t *Table) Len() int {
	return len(t.ids)
}

// IDs returns the node IDs in ascending order.
func (t *Table) IDs() []int {
	return slices.Clone(t.ids)
}

// Last returns the node with the largest ID.
func (t *Table) Last() (id, n int, ok bool) {
	if len(t.ids) == 0 {
		return 0, 0, false
	}
	id = t.ids[len(t.ids)-1]
	return id, t.counts[id], true
}

// Total is the sum of all DOF counts, i.e. the system matrix dimension.
func (t *Table) Total() int {
	id, n, ok := t.Last()
	if !ok {
		return 0
	}
	return t.OffsetBefore(id) + n
}

// OffsetBefore sums the DOF counts of the nodes ordered before id. The walk
// stops at id; when id is absent it never stops and the sum of all counts
// is returned.
func (t *Table) OffsetBefore(id int) int {
	offset := 0
	for _, k := range t.ids {
		if k == id {
			break
		}
		offset += t.counts[k]
	}
	return offset
}

// GlobalIndex returns the 0-based matrix position of local DOF local of
// node id. Local DOF 0 addresses the single DOF of a scalar point.
func (t *Table) GlobalIndex(id, local int) (int, error) {
	if _, ok := t.counts[id]; !ok {
		return 0, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	if local == 0 {
		local = 1
	}
	return t.OffsetBefore(id) + local - 1, nil
}

// Locate maps a global index back to its node and local DOF.
func (t *Table) Locate(idx int) (id, local int, ok bool) {
	if idx < 0 {
		return 0, 0, false
	}
	offset := 0
	for _, k := range t.ids {
		n := t.counts[k]
		if idx < offset+n {
			return k, idx - offset + 1, true
		}
		offset += n
	}
	return 0, 0, false
}

// SetDeclared records the total DOF count stated by the matrix header. It is
// informational and never checked against Total.
func (t *Table) SetDeclared(n int) {
	t.declared = n
	t.header = true
}

// Declared returns the header's total DOF count and whether a header was seen.
func (t *Table) Declared() (int, bool) {
	return t.declared, t.header
}

func (t *Table) String() string {
	s := "{"
	for i, id := range t.ids {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d: %d", id, t.counts[id])
	}
	return s + "}"
}
