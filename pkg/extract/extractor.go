// Package extract reads mass and stiffness matrices out of punch files.
//
// Extraction runs in two passes over the file: the first builds the DOF
// table (see dof.Build), the second fills a dense matrix sized by the
// table's total DOF count. The table can be built once with Extractor.Table
// and reused for several matrices of the same file.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/edp1096/pchmat/pkg/dof"
	"github.com/edp1096/pchmat/pkg/matrix"
	"github.com/edp1096/pchmat/pkg/punch"
)

type Options struct {
	// Lenient skips records that name nodes absent from the DOF table
	// rather than failing with dof.ErrUnknownNode.
	Lenient bool
	// Mmap maps the punch file read-only for each pass.
	Mmap bool
	// Logger receives pass-level debug events and header mismatches.
	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Lenient: false,
		Mmap:    true,
		Logger:  slog.Default().With(slog.String("component", "extract")),
	}
}

// Extractor holds no state between calls and is safe for concurrent use.
type Extractor struct {
	opts Options
	log  *slog.Logger
}

// New returns an Extractor. A nil opts means DefaultOptions.
func New(opts *Options) *Extractor {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Logger == nil {
		o.Logger = slog.Default().With(slog.String("component", "extract"))
	}
	return &Extractor{opts: o, log: o.Logger}
}

// Extract runs both passes over path and returns the selected matrix.
func Extract(path string, kind matrix.Kind) (*matrix.System, error) {
	return New(nil).Extract(path, kind)
}

func (e *Extractor) Extract(path string, kind matrix.Kind) (*matrix.System, error) {
	table, err := e.Table(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractWith(path, table, kind)
}

// Table runs the first pass over path.
func (e *Extractor) Table(path string) (*dof.Table, error) {
	r, err := punch.Open(path, e.opts.Mmap)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	table, err := dof.Build(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	e.log.Debug("dof table built",
		slog.String("file", path),
		slog.Int("nodes", table.Len()),
		slog.Int("dofs", table.Total()))

	declared, ok := table.Declared()
	switch {
	case !ok:
		e.log.Warn("no DMIG header before end of file", slog.String("file", path))
	case declared != table.Total():
		e.log.Warn("declared dof count differs from table",
			slog.String("file", path),
			slog.Int("declared", declared),
			slog.Int("dofs", table.Total()))
	}

	return table, nil
}

// ExtractWith runs the second pass over path using a table built earlier.
func (e *Extractor) ExtractWith(path string, table *dof.Table, kind matrix.Kind) (*matrix.System, error) {
	systems, err := e.fillFile(path, table, []matrix.Kind{kind})
	if err != nil {
		return nil, err
	}
	return systems[kind], nil
}

// ExtractAll builds the table once and fills every requested kind in a
// single further pass.
func (e *Extractor) ExtractAll(path string, kinds ...matrix.Kind) (*dof.Table, map[matrix.Kind]*matrix.System, error) {
	table, err := e.Table(path)
	if err != nil {
		return nil, nil, err
	}
	systems, err := e.fillFile(path, table, kinds)
	if err != nil {
		return nil, nil, err
	}
	return table, systems, nil
}

func (e *Extractor) fillFile(path string, table *dof.Table, kinds []matrix.Kind) (map[matrix.Kind]*matrix.System, error) {
	r, err := punch.Open(path, e.opts.Mmap)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	systems, skipped, err := fill(r, table, kinds, e.opts.Lenient)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if skipped > 0 {
		e.log.Warn("records naming unknown nodes skipped",
			slog.String("file", path),
			slog.Int("records", skipped))
	}

	if !e.log.Enabled(context.Background(), slog.LevelDebug) {
		return systems, nil
	}
	for kind, sys := range systems {
		e.log.Debug("matrix filled",
			slog.String("file", path),
			slog.String("kind", kind.String()),
			slog.Int("dim", sys.Dim()),
			slog.Int("nonzeros", sys.NonZeros()))
	}
	return systems, nil
}

// Fill reads a punch stream and writes the entries of kind into a new
// matrix sized by table.
func Fill(r io.Reader, table *dof.Table, kind matrix.Kind, lenient bool) (*matrix.System, error) {
	systems, _, err := fill(r, table, []matrix.Kind{kind}, lenient)
	if err != nil {
		return nil, err
	}
	return systems[kind], nil
}

func fill(r io.Reader, table *dof.Table, kinds []matrix.Kind, lenient bool) (map[matrix.Kind]*matrix.System, int, error) {
	n := table.Total()
	if n == 0 {
		return nil, 0, dof.ErrEmptyTable
	}

	systems := make(map[matrix.Kind]*matrix.System, len(kinds))
	var assemblers []*Assembler
	for _, kind := range kinds {
		if _, ok := systems[kind]; ok {
			continue
		}
		sys, err := matrix.NewSystem(kind, n)
		if err != nil {
			return nil, 0, err
		}
		systems[kind] = sys
		assemblers = append(assemblers, NewAssembler(table, kind, sys, lenient))
	}

	sc := punch.NewScanner(r)
	for sc.Scan() {
		rec := sc.Record()
		for _, a := range assemblers {
			if err := a.Feed(rec); err != nil {
				return nil, 0, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}

	skipped := 0
	for _, a := range assemblers {
		skipped += a.Skipped()
	}
	return systems, skipped, nil
}
