package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/roomtodo/internal/config"
)

// run executes the command tree against a private database.
func run(t *testing.T, db string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--db", db}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func testDB(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{config.EnvConfig, config.EnvDBPath, config.EnvLogLevel, config.EnvLogFile, config.EnvWorkers, config.EnvTheme} {
		t.Setenv(k, "")
	}
	return filepath.Join(t.TempDir(), "todo.db")
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "todo", cmd.Use)

	for _, name := range []string{"ui", "add", "ls", "edit", "rm"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"config", "db", "log-level"} {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "", f.DefValue)
	}
}

func TestAddListEditRemove(t *testing.T) {
	db := testDB(t)

	out, _, err := run(t, db, "add", "  Buy", "milk  ")
	require.NoError(t, err)
	assert.Contains(t, out, "added")

	_, _, err = run(t, db, "add", "Walk", "dog")
	require.NoError(t, err)

	out, _, err = run(t, db, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Walk dog")
	assert.Contains(t, out, "Total 2")

	_, _, err = run(t, db, "rm", "1")
	require.NoError(t, err)

	out, _, err = run(t, db, "edit", "2", "Walk", "the", "dog", "twice")
	require.NoError(t, err)
	assert.Contains(t, out, "updated")

	out, _, err = run(t, db, "ls", "--oldest-first")
	require.NoError(t, err)
	assert.NotContains(t, out, "#1 ")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "Walk the dog twice")
	assert.Contains(t, out, "Total 1")
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	db := testDB(t)

	for i := 0; i < 2; i++ {
		out, _, err := run(t, db, "rm", "41")
		require.NoError(t, err)
		assert.Contains(t, out, "removed")
	}
	out, _, err := run(t, db, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "no todos")
}

func TestEdit_UnknownIDInserts(t *testing.T) {
	db := testDB(t)

	out, _, err := run(t, db, "edit", "9", "from", "nowhere")
	require.NoError(t, err)
	assert.Contains(t, out, "created #9")

	out, _, err = run(t, db, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "#9")
	assert.Contains(t, out, "from nowhere")
}

func TestUsageErrors(t *testing.T) {
	db := testDB(t)

	tests := []struct {
		name string
		args []string
	}{
		{"add without title", []string{"add"}},
		{"edit bad id", []string{"edit", "abc", "title"}},
		{"edit without title", []string{"edit", "1"}},
		{"rm without id", []string{"rm"}},
		{"rm zero id", []string{"rm", "0"}},
		{"unknown subcommand", []string{"frobnicate"}},
		{"unknown flag on subcommand", []string{"ls", "--bogus"}},
		{"unknown root flag", []string{"--bogus"}},
		{"stray argument to ls", []string{"ls", "extra"}},
		{"stray argument to ui", []string{"ui", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, db, tt.args...)
			require.Error(t, err)
			assert.Equal(t, 2, ExitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(usageError{"usage"}))
}

func TestBadConfigFails(t *testing.T) {
	db := testDB(t)

	_, _, err := run(t, db, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "ls")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}
