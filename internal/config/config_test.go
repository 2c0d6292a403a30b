package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory with a clean environment.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{EnvConfig, EnvDBPath, EnvLogLevel, EnvLogFile, EnvWorkers, EnvTheme} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile),
		[]byte("db_path: /tmp/x.db\nworkers: 2\ntheme: mono\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	dir := inTempDir(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_BadYAML(t *testing.T) {
	dir := inTempDir(t)
	p := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("workers: [nope"), 0o644))

	_, err := Load(p)
	assert.ErrorContains(t, err, "parse config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := inTempDir(t)
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte("db_path: file.db\nlog_level: warn\n"), 0o644))
	t.Setenv(EnvConfig, p)
	t.Setenv(EnvDBPath, "env.db")
	t.Setenv(EnvWorkers, "8")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.Unsetenv(EnvLogLevel))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_BadWorkers(t *testing.T) {
	inTempDir(t)
	t.Setenv(EnvWorkers, "many")

	_, err := Load("")
	assert.ErrorContains(t, err, "not a number")

	t.Setenv(EnvWorkers, "0")
	_, err = Load("")
	assert.ErrorContains(t, err, "at least 1")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DBPath = "  "
	assert.Error(t, cfg.Validate())
	assert.NoError(t, Default().Validate())
}

func TestScreenLogFile(t *testing.T) {
	cfg := Default()
	cfg.DBPath = filepath.Join("data", "todo.db")
	assert.Equal(t, filepath.Join("data", "todo.log"), cfg.ScreenLogFile())

	cfg.LogFile = "/var/log/todo.log"
	assert.Equal(t, "/var/log/todo.log", cfg.ScreenLogFile())

	cfg = Default()
	cfg.DBPath = ":memory:"
	assert.Equal(t, "todo.log", cfg.ScreenLogFile())
}
