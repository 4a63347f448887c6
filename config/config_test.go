package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Data)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 800.0, cfg.Width)
	assert.Equal(t, 400.0, cfg.Height)
	assert.Equal(t, 100, cfg.Iterations)
	assert.False(t, cfg.Watch)
	assert.Zero(t, cfg.Drift)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("TRUSTGRAPH_PORT", "9090")
	t.Setenv("TRUSTGRAPH_DATA", "graph.json")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "graph.json", cfg.Data)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TRUSTGRAPH_PORT", "9090")

	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.Int("port", 8080, "")
	f.Float64("width", 800, "")
	require.NoError(t, f.Set("port", "7070"))

	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port, "a set flag wins over the environment")
	assert.Equal(t, 800.0, cfg.Width, "an unset flag does not override")
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trustgraph.toml"),
		[]byte("port = 3000\nwidth = 1024.0\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 1024.0, cfg.Width)
}
