package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/records/internal/config"
	"github.com/Makepad-fr/records/internal/model"
	"github.com/Makepad-fr/records/internal/store"
)

type result struct {
	code           int
	stdout, stderr string
}

// run executes the CLI against dir with colors off.
func run(t *testing.T, dir string, args ...string) result {
	t.Helper()
	t.Setenv("RECORDS_CONFIG_DIR", filepath.Join(dir, "config"))
	var out, errOut bytes.Buffer
	full := append([]string{"--dir", dir, "--no-color"}, args...)
	code := Execute(context.Background(), full, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func stored(t *testing.T, dir string) []model.Record {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, "records.json"))
	require.NoError(t, err)
	recs, err := store.Decode(b)
	require.NoError(t, err)
	return recs
}

func TestCLI_Lifecycle(t *testing.T) {
	dir := t.TempDir()

	r := run(t, dir, "add", "buy", "milk")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "✔ added 1.")

	r = run(t, dir, "add", "call mom")
	require.Equal(t, exitOK, r.code, r.stderr)

	recs := stored(t, dir)
	require.Len(t, recs, 2)
	assert.Equal(t, "buy milk", recs[0].Text)
	assert.False(t, recs[0].IsComplete)
	assert.NotEqual(t, recs[0].ID, recs[1].ID)

	r = run(t, dir, "ls")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "buy milk")
	assert.Contains(t, r.stdout, "call mom")
	assert.Contains(t, r.stdout, "Total 2")

	r = run(t, dir, "done", "1")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "completed")
	assert.True(t, stored(t, dir)[0].IsComplete)

	// Completed records are protected from rm and edit.
	r = run(t, dir, "rm", "1")
	require.Equal(t, exitOK, r.code)
	assert.Contains(t, r.stderr, "cannot be removed")
	r = run(t, dir, "edit", "1", "oat milk")
	require.Equal(t, exitOK, r.code)
	assert.Contains(t, r.stderr, "complete")
	assert.Equal(t, "buy milk", stored(t, dir)[0].Text)
	assert.Len(t, stored(t, dir), 2)

	r = run(t, dir, "done", recs[0].ID[:13])
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "reopened")

	r = run(t, dir, "edit", "1", "oat", "milk")
	require.Equal(t, exitOK, r.code, r.stderr)
	got := stored(t, dir)
	assert.Equal(t, "oat milk", got[0].Text)
	assert.Equal(t, recs[0].ID, got[0].ID)
	assert.Equal(t, "call mom", got[1].Text)

	r = run(t, dir, "rm", recs[0].ID)
	require.Equal(t, exitOK, r.code, r.stderr)
	got = stored(t, dir)
	require.Len(t, got, 1)
	assert.Equal(t, recs[1].ID, got[0].ID)
}

func TestCLI_AddEmptyTextIsIgnored(t *testing.T) {
	dir := t.TempDir()
	r := run(t, dir, "add", "")
	assert.Equal(t, exitOK, r.code)
	assert.Contains(t, r.stderr, "nothing to add")
	_, err := os.Stat(filepath.Join(dir, "records.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_LsEmpty(t *testing.T) {
	r := run(t, t.TempDir(), "ls")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "No records")
}

func TestCLI_LsGroupAndWhere(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "add", "buy milk")
	run(t, dir, "add", "taxes")
	run(t, dir, "done", "2")

	r := run(t, dir, "ls", "--group")
	require.Equal(t, exitOK, r.code, r.stderr)
	pending := strings.Index(r.stdout, "Pending")
	done := strings.Index(r.stdout, "Done")
	require.True(t, pending >= 0 && done > pending)
	assert.Less(t, strings.Index(r.stdout, "buy milk"), done)
	assert.Greater(t, strings.Index(r.stdout, "taxes"), done)

	r = run(t, dir, "ls", "--where", `text contains "milk"`)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "buy milk")
	assert.NotContains(t, r.stdout, "taxes")

	r = run(t, dir, "ls", "--where", `text +`)
	assert.Equal(t, exitUsage, r.code)
}

func TestCLI_LsMarkdown(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "add", "buy milk")
	r := run(t, dir, "ls", "--markdown")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "buy milk")
}

func TestCLI_Export(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "add", "buy milk")

	r := run(t, dir, "export", "--format", "csv")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "id,text,isComplete")
	assert.Contains(t, r.stdout, "buy milk,false")

	out := filepath.Join(dir, "out.pdf")
	r = run(t, dir, "export", "-f", "pdf", "-o", out)
	require.Equal(t, exitOK, r.code, r.stderr)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	r = run(t, dir, "export", "--format", "xlsx")
	assert.Equal(t, exitUsage, r.code)
}

func TestCLI_SQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	r := run(t, dir, "--backend", "sqlite", "add", "buy milk")
	require.Equal(t, exitOK, r.code, r.stderr)

	r = run(t, dir, "--backend", "sqlite", "ls")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "buy milk")

	_, err := os.Stat(filepath.Join(dir, "records.json"))
	assert.True(t, os.IsNotExist(err), "file backend untouched")
}

func TestCLI_MalformedStorageIsEmptyList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), []byte(`{not json`), 0o644))

	r := run(t, dir, "ls")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "No records")

	r = run(t, dir, "add", "fresh start")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Len(t, stored(t, dir), 1)
}

func TestCLI_UsageErrors(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "add", "only one")

	cases := [][]string{
		{"rm"},
		{"rm", "5"},
		{"done", "zzz"},
		{"edit", "1"},
		{"frobnicate"},
		{"ls", "--nope"},
		{"--backend", "mysql", "ls"},
	}
	for _, args := range cases {
		r := run(t, dir, args...)
		assert.Equal(t, exitUsage, r.code, "%v: %s", args, r.stderr)
		assert.Contains(t, r.stderr, "✖")
	}
}

func TestCLI_Version(t *testing.T) {
	r := run(t, t.TempDir(), "version")
	require.Equal(t, exitOK, r.code)
	assert.Contains(t, r.stdout, "records dev")
}

func TestCLI_InitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config", "config.yaml")

	r := run(t, dir, "--backend", "sqlite", "init")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, dir, cfg.Storage.Dir)

	r = run(t, dir, "init")
	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "already exists")

	// The saved backend applies without the flag.
	r = run(t, dir, "add", "buy milk")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.FileExists(t, filepath.Join(dir, "records.sqlite"))
	assert.NoFileExists(t, filepath.Join(dir, "records.json"))

	r = run(t, dir, "init", "--force")
	require.Equal(t, exitOK, r.code, r.stderr)
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
}
