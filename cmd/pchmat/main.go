package main // import "github.com/edp1096/pchmat/cmd/pchmat"

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/edp1096/pchmat/internal/config"
	"github.com/edp1096/pchmat/pkg/analysis"
	"github.com/edp1096/pchmat/pkg/extract"
	"github.com/edp1096/pchmat/pkg/matrix"
	"github.com/edp1096/pchmat/pkg/util"
)

type loadList []config.Load

func (l *loadList) String() string {
	parts := make([]string, len(*l))
	for i, load := range *l {
		parts[i] = fmt.Sprintf("%d:%d=%g", load.Node, load.DOF, load.Value)
	}
	return strings.Join(parts, ",")
}

func (l *loadList) Set(s string) error {
	load, err := config.ParseLoad(s)
	if err != nil {
		return err
	}
	*l = append(*l, load)
	return nil
}

// kindsFor returns the requested kinds followed by any others the analyses need.
func kindsFor(cfg config.Config) ([]matrix.Kind, error) {
	kinds, err := cfg.Kinds()
	if err != nil {
		return nil, err
	}

	// analyses pull in the matrices they need
	need := map[matrix.Kind]bool{}
	if cfg.Modes > 0 {
		need[matrix.Mass] = true
		need[matrix.Stiffness] = true
	}
	if len(cfg.Loads) > 0 {
		need[matrix.Stiffness] = true
	}
	for _, k := range kinds {
		delete(need, k)
	}
	for _, k := range []matrix.Kind{matrix.Mass, matrix.Stiffness} {
		if need[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

func printMatrix(w io.Writer, sys *matrix.System, format string) error {
	switch strings.ToLower(format) {
	case "none":
		return nil
	case "csv":
		cw := csv.NewWriter(w)
		for i := 0; i < sys.Dim(); i++ {
			row := sys.Row(i)
			record := make([]string, len(row))
			for j, v := range row {
				record[j] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		_, err := fmt.Fprintf(w, "%s\n", sys)
		return err
	}
}

func printResults(w io.Writer, title string, results map[string][]float64) {
	fmt.Fprintf(w, "\n%s:\n", title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)+1))

	// Modal
	if freqs, ok := results["FREQ"]; ok {
		fmt.Fprintln(w, "Mode   Frequency      Omega (rad/s)   Eigenvalue")
		for i, f := range freqs {
			fmt.Fprintf(w, "%4d   %s  %s  %s\n", i+1,
				util.FormatFrequency(f),
				util.FormatMagnitude(results["OMEGA"][i]),
				util.FormatMagnitude(results["EIGENVALUE"][i]))
		}
		return
	}

	// Static
	var names []string
	for name := range results {
		if strings.HasPrefix(name, "U(") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%-16s = %s\n", name, util.FormatPunchValue(results[name][0]))
	}
}

type job struct {
	title string
	a     analysis.Analysis
}

func run(w io.Writer, path string, cfg config.Config, logger *slog.Logger) error {
	opts := extract.DefaultOptions()
	opts.Lenient = cfg.Lenient
	opts.Mmap = !cfg.NoMmap
	opts.Logger = logger.With(slog.String("component", "extract"))
	ex := extract.New(&opts)

	requested, err := cfg.Kinds()
	if err != nil {
		return err
	}
	kinds, err := kindsFor(cfg)
	if err != nil {
		return err
	}

	table, systems, err := ex.ExtractAll(path, kinds...)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "File: %s\n", path)
	declared := "none"
	if n, ok := table.Declared(); ok {
		declared = strconv.Itoa(n)
	}
	fmt.Fprintf(w, "Nodes: %d  DOFs: %d  Declared: %s\n", table.Len(), table.Total(), declared)

	for _, kind := range requested {
		sys := systems[kind]
		fmt.Fprintf(w, "\n[%s %s] %dx%d, %d non-zeros\n",
			kind, kind.Identifier(), sys.Dim(), sys.Dim(), sys.NonZeros())
		if err := printMatrix(w, sys, cfg.Format); err != nil {
			return err
		}
	}

	model := &analysis.Model{
		Table:     table,
		Stiffness: systems[matrix.Stiffness],
		Mass:      systems[matrix.Mass],
	}

	var analyses []job
	if cfg.Modes > 0 {
		analyses = append(analyses, job{"Modal Analysis Results", analysis.NewModal(cfg.Modes)})
	}
	if len(cfg.Loads) > 0 {
		loads := make([]analysis.Load, len(cfg.Loads))
		for i, l := range cfg.Loads {
			loads[i] = analysis.Load{Node: l.Node, DOF: l.DOF, Value: l.Value}
		}
		analyses = append(analyses, job{"Static Analysis Results", analysis.NewStatic(loads)})
	}

	for _, item := range analyses {
		if err := item.a.Setup(model); err != nil {
			return fmt.Errorf("analysis setup failed: %w", err)
		}
		if err := item.a.Execute(); err != nil {
			return fmt.Errorf("analysis execution failed: %w", err)
		}
		printResults(w, item.title, item.a.GetResults())
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "YAML settings file")
	kind := flag.String("kind", "", "matrix to extract: mass (MAAX), stiffness (KAAX) or both")
	format := flag.String("format", "", "matrix output: text, csv or none")
	modes := flag.Int("modes", 0, "report the lowest N natural frequencies (needs both matrices)")
	lenient := flag.Bool("lenient", false, "skip records naming nodes without DOFs instead of failing")
	noMmap := flag.Bool("no-mmap", false, "read the file with plain I/O instead of mapping it")
	verbose := flag.Bool("v", false, "debug logging")
	var loads loadList
	flag.Var(&loads, "load", "static load node:dof=value (repeatable)")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: pchmat [flags] <file.pch>")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "kind":
			cfg.Kind = *kind
		case "format":
			cfg.Format = *format
		case "modes":
			cfg.Modes = *modes
		case "lenient":
			cfg.Lenient = *lenient
		case "no-mmap":
			cfg.NoMmap = *noMmap
		case "v":
			cfg.Verbose = *verbose
		case "load":
			cfg.Loads = append(cfg.Loads, loads...)
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Error in settings: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(os.Stdout, flag.Arg(0), cfg, logger); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
