package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Eager)
	assert.False(t, cfg.NoImplicit)
	assert.Empty(t, cfg.Skip)
	assert.Equal(t, int64(DefaultMaxElements), cfg.MaxElements)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "gdxdump.yaml")
	content := "output: markdown\neager: true\nskip:\n  - huge\n  - bigger\nmax_elements: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.Output)
	assert.True(t, cfg.Eager)
	assert.Equal(t, []string{"huge", "bigger"}, cfg.Skip)
	assert.Equal(t, int64(500), cfg.MaxElements)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	ResetConfig()
	t.Setenv("GDXDUMP_OUTPUT", "json")
	t.Setenv("GDXDUMP_NO_IMPLICIT", "true")
	t.Setenv("GDXDUMP_SKIP", "a,b")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.NoImplicit)
	assert.Equal(t, []string{"a", "b"}, cfg.Skip)
}

func TestLoadConfigFlagsWinOverEnv(t *testing.T) {
	ResetConfig()
	t.Setenv("GDXDUMP_OUTPUT", "json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("output", "o", "", "")
	fs.Int64("max-elements", DefaultMaxElements, "")
	require.NoError(t, fs.Parse([]string{"--output", "text", "--max-elements", "99"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, int64(99), cfg.MaxElements)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("output", "o", "auto", "")
	require.NoError(t, fs.Parse(nil))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Output)
}

func TestLoadConfigRejectsBadOutput(t *testing.T) {
	ResetConfig()
	t.Setenv("GDXDUMP_OUTPUT", "xml")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output mode")
}

func TestGetCurrentConfig(t *testing.T) {
	ResetConfig()
	assert.Nil(t, GetCurrentConfig())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestFileOptions(t *testing.T) {
	cfg := &Config{MaxElements: DefaultMaxElements}
	assert.Empty(t, cfg.FileOptions())

	cfg = &Config{
		Eager:       true,
		NoImplicit:  true,
		Skip:        []string{"x"},
		MaxElements: 5,
	}
	assert.Len(t, cfg.FileOptions(), 4)
}
