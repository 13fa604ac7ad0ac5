// Package config loads pchmat settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edp1096/pchmat/pkg/matrix"
	"github.com/edp1096/pchmat/pkg/punch"
)

var ErrInvalid = errors.New("config: invalid setting")

type Load struct {
	Node  int     `yaml:"node"`
	DOF   int     `yaml:"dof"`
	Value float64 `yaml:"value"`
}

type Config struct {
	Kind    string `yaml:"kind"`   // both, or any name matrix.ParseKind accepts
	Format  string `yaml:"format"` // text, csv or none
	Modes   int    `yaml:"modes"`  // lowest modes to report, 0 = no modal analysis
	Lenient bool   `yaml:"lenient"`
	NoMmap  bool   `yaml:"no_mmap"`
	Verbose bool   `yaml:"verbose"`
	Loads   []Load `yaml:"loads"`
}

func Default() Config {
	return Config{
		Kind:   "stiffness",
		Format: "text",
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Kinds returns the matrices selected by Kind, mass first for "both".
func (c Config) Kinds() ([]matrix.Kind, error) {
	if strings.EqualFold(strings.TrimSpace(c.Kind), "both") {
		return []matrix.Kind{matrix.Mass, matrix.Stiffness}, nil
	}
	kind, err := matrix.ParseKind(c.Kind)
	if err != nil {
		return nil, fmt.Errorf("kind: %w: %w", ErrInvalid, err)
	}
	return []matrix.Kind{kind}, nil
}

func (c Config) Validate() error {
	if _, err := c.Kinds(); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "text", "csv", "none":
	default:
		return fmt.Errorf("format %q: %w", c.Format, ErrInvalid)
	}
	if c.Modes < 0 {
		return fmt.Errorf("modes %d: %w", c.Modes, ErrInvalid)
	}
	return nil
}

// ParseLoad reads a load given as node:dof=value, e.g. "546:3=1.0D3".
func ParseLoad(s string) (Load, error) {
	target, value, ok := strings.Cut(s, "=")
	if !ok {
		return Load{}, fmt.Errorf("load %q: expected node:dof=value: %w", s, ErrInvalid)
	}
	node, dof, ok := strings.Cut(target, ":")
	if !ok {
		return Load{}, fmt.Errorf("load %q: expected node:dof=value: %w", s, ErrInvalid)
	}

	var load Load
	var err error
	if load.Node, err = punch.ParseID(node); err != nil {
		return Load{}, fmt.Errorf("load %q: %w", s, err)
	}
	if load.DOF, err = punch.ParseID(dof); err != nil {
		return Load{}, fmt.Errorf("load %q: %w", s, err)
	}
	if load.Value, err = punch.ParseValue(value); err != nil {
		return Load{}, fmt.Errorf("load %q: %w", s, err)
	}
	return load, nil
}
