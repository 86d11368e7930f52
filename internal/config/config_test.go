package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnvVar, dir)

	got, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	p, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(p))
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Dir = "/var/lib/records"
	cfg.UI.Theme = "neon"
	cfg.UI.Group = true
	cfg.Log.Level = "debug"

	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestLoad_FillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nui:\n  group: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "records", cfg.Storage.Key)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.True(t, cfg.UI.Group)
}

func TestLoad_RejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 7\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config version")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: [\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDataDirAndLogPath(t *testing.T) {
	cfg := Default()
	cfg.Storage.Dir = "/data"
	dir, err := cfg.DataDir()
	require.NoError(t, err)
	assert.Equal(t, "/data", dir)

	lp, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "records.log"), lp)

	cfg.Log.File = "/tmp/x.log"
	lp, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.log", lp)
}
