package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edp1096/pchmat/internal/config"
	"github.com/edp1096/pchmat/pkg/matrix"
	"github.com/edp1096/pchmat/pkg/punch"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, "stiffness", cfg.Kind)
	require.Equal(t, "text", cfg.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pchmat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
kind: both
modes: 3
lenient: true
loads:
  - {node: 546, dof: 3, value: 1000}
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "both", cfg.Kind)
	require.Equal(t, "text", cfg.Format, "unset keys keep defaults")
	require.Equal(t, 3, cfg.Modes)
	require.True(t, cfg.Lenient)
	require.Equal(t, []config.Load{{Node: 546, DOF: 3, Value: 1000}}, cfg.Loads)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("kind: damping\n"), 0o644))
	_, err = config.Load(bad)
	require.ErrorIs(t, err, config.ErrInvalid)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("modes: [1\n"), 0o644))
	_, err = config.Load(broken)
	require.Error(t, err)
}

func TestKinds(t *testing.T) {
	tests := []struct {
		kind string
		want []matrix.Kind
	}{
		{"stiffness", []matrix.Kind{matrix.Stiffness}},
		{"KAAX", []matrix.Kind{matrix.Stiffness}},
		{"maax", []matrix.Kind{matrix.Mass}},
		{"m", []matrix.Kind{matrix.Mass}},
		{"Both", []matrix.Kind{matrix.Mass, matrix.Stiffness}},
	}
	for _, tt := range tests {
		cfg := config.Default()
		cfg.Kind = tt.kind
		kinds, err := cfg.Kinds()
		require.NoError(t, err, tt.kind)
		require.Equal(t, tt.want, kinds, tt.kind)
		require.NoError(t, cfg.Validate(), tt.kind)
	}

	cfg := config.Default()
	cfg.Kind = "damping"
	_, err := cfg.Kinds()
	require.ErrorIs(t, err, config.ErrInvalid)
	require.ErrorIs(t, err, matrix.ErrUnknownKind)
}

func TestParseLoad(t *testing.T) {
	load, err := config.ParseLoad("546:3=1.0D3")
	require.NoError(t, err)
	require.Equal(t, config.Load{Node: 546, DOF: 3, Value: 1000}, load)

	_, err = config.ParseLoad("546:3")
	require.ErrorIs(t, err, config.ErrInvalid)
	_, err = config.ParseLoad("546=3")
	require.ErrorIs(t, err, config.ErrInvalid)
	_, err = config.ParseLoad("546:x=3")
	require.ErrorIs(t, err, punch.ErrFormat)
}
