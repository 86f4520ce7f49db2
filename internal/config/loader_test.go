package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPrefersCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	defer os.Chdir(old)
	require.NoError(t, os.Chdir(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("icons: nerd\n"), 0o644))

	path, err := Find()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)
}

func TestFindReturnsEmptyWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	defer os.Chdir(old)
	require.NoError(t, os.Chdir(dir))

	path, err := Find()
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadParsesHostsIconsAllSort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
hosts:
  - host: local
    dozzle: http://localhost:8080
  - host: ssh://user@build-box
    filter: ["label=env=prod"]
icons: nerd
all: true
sort: cpu
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Hosts, 2)
	assert.Equal(t, "local", cfg.Hosts[0].Host)
	assert.Equal(t, "http://localhost:8080", cfg.Hosts[0].Dozzle)
	assert.Equal(t, "ssh://user@build-box", cfg.Hosts[1].Host)
	assert.Equal(t, []string{"label=env=prod"}, cfg.Hosts[1].Filter)
	assert.Equal(t, "nerd", cfg.Icons)
	assert.True(t, cfg.All)
	assert.Equal(t, "cpu", cfg.Sort)
}

func TestLoadOrDefaultReturnsDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	defer os.Chdir(old)
	require.NoError(t, os.Chdir(dir))

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Empty(t, cfg.Hosts)
	assert.Equal(t, "unicode", cfg.Icons)
}
