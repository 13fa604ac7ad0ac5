package dof

import (
	"io"

	"github.com/edp1096/pchmat/internal/consts"
	"github.com/edp1096/pchmat/pkg/punch"
)

// Build reads a punch stream once and returns its DOF table.
//
// Until the first DMIG header, SPOINT records declare one-DOF scalar points
// (first declaration wins) and the header's last token is kept as the
// declared total. After it, every DMIG* record with a non-zero local DOF sets
// the node's count to that local DOF, overwriting earlier values. The next
// DMIG header ends the scan.
func Build(r io.Reader) (*Table, error) {
	sc := punch.NewScanner(r)
	table := NewTable()

	for sc.Scan() {
		rec := sc.Record()

		if rec.Kind == punch.KindScalarPoint {
			id, err := rec.Int(0, "scalar point id")
			if err != nil {
				return nil, err
			}
			table.Declare(id)
			continue
		}

		if rec.Kind == punch.KindHeader {
			n, err := rec.Int(len(rec.Fields)-1, "declared dof count")
			if err != nil {
				return nil, err
			}
			table.SetDeclared(n)
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for sc.Scan() {
		rec := sc.Record()

		if rec.Kind == punch.KindHeader {
			break
		}
		if rec.Kind != punch.KindColumn {
			continue
		}

		if _, err := rec.Token(0, "matrix name"); err != nil {
			return nil, err
		}
		if _, err := rec.Token(1, "node id"); err != nil {
			return nil, err
		}
		local, err := rec.Token(2, "local dof")
		if err != nil {
			return nil, err
		}
		if local == consts.ScalarComponent {
			continue
		}
		id, err := rec.Int(1, "node id")
		if err != nil {
			return nil, err
		}
		n, err := rec.Int(2, "local dof")
		if err != nil {
			return nil, err
		}
		// zero written with padding, e.g. "00"
		if n == 0 {
			continue
		}
		table.Set(id, n)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return table, nil
}
