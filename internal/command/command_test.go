package command_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/qop/internal/command"
	_ "github.com/keshon/qop/internal/command/apply"
	_ "github.com/keshon/qop/internal/command/autocomplete"
	_ "github.com/keshon/qop/internal/command/diff"
	_ "github.com/keshon/qop/internal/command/reverse"
	_ "github.com/keshon/qop/internal/command/snapshot"
	_ "github.com/keshon/qop/internal/command/status"
)

type run struct {
	stdout string
	stderr string
	err    error
}

// qop runs the command tree against dir with the given stdin.
func qop(t *testing.T, dir, stdin string, args ...string) run {
	t.Helper()
	var out, errOut bytes.Buffer
	err := command.Execute(append(args, "-C", dir), command.Streams{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	return run{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeFile(t *testing.T, dir, rel, body string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"snapshot", "init", "checkpoint", "diff", "apply", "reverse", "status", "st", "autocomplete"} {
		_, ok := command.GetCommand(name)
		assert.True(t, ok, name)
	}
	_, ok := command.GetCommand("commit")
	assert.False(t, ok)
	assert.Len(t, command.AllCommands(), 6)
}

func TestSnapshotDiffApplyWorkflow(t *testing.T) {
	tree := t.TempDir()
	writeFile(t, tree, "a.txt", "one\ntwo\nthree\n")

	res := qop(t, tree, "", "snapshot", "-q")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.FileExists(t, filepath.Join(tree, ".qop", "index.toml"))
	assert.FileExists(t, filepath.Join(tree, ".qop", "store", "a.txt"))

	writeFile(t, tree, "a.txt", "one\nTWO\nthree\nfour\n")

	res = qop(t, tree, "", "status")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "modified: a.txt")

	res = qop(t, tree, "", "diff")
	require.NoError(t, res.err)
	forward := res.stdout
	assert.Contains(t, forward, "[files.'a.txt']")
	assert.Contains(t, forward, "+TWO")

	// Undo through reverse piped into apply, then redo from stdin.
	res = qop(t, tree, forward, "reverse")
	require.NoError(t, res.err)
	res = qop(t, tree, res.stdout, "apply", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "one\ntwo\nthree\n", readFile(t, tree, "a.txt"))

	res = qop(t, tree, "", "status")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No changes since snapshot")

	res = qop(t, tree, forward, "apply")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Patched 1 files")
	assert.Equal(t, "one\nTWO\nthree\nfour\n", readFile(t, tree, "a.txt"))
}

func TestDiffOutputFlags(t *testing.T) {
	tree := t.TempDir()
	writeFile(t, tree, "a.txt", "a\nb\n")
	require.NoError(t, qop(t, tree, "", "init", "-q").err)
	writeFile(t, tree, "a.txt", "a\n")

	out := filepath.Join(t.TempDir(), "undo.toml")
	res := qop(t, tree, "", "diff", "--reverse", "--output", out)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	require.NoError(t, qop(t, tree, "", "apply", "-q", out).err)
	assert.Equal(t, "a\nb\n", readFile(t, tree, "a.txt"))

	rev := filepath.Join(t.TempDir(), "redo.toml")
	require.NoError(t, qop(t, tree, "", "reverse", out, "-o", rev).err)
	require.NoError(t, qop(t, tree, "", "apply", "-q", rev).err)
	assert.Equal(t, "a\n", readFile(t, tree, "a.txt"))
}

func TestDiffRequiresSnapshot(t *testing.T) {
	tree := t.TempDir()
	writeFile(t, tree, "a.txt", "a\n")

	res := qop(t, tree, "", "diff")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "qop snapshot")
}

func TestApplyRejectsExtraArgs(t *testing.T) {
	tree := t.TempDir()
	res := qop(t, tree, "", "apply", "a.toml", "b.toml")
	assert.Error(t, res.err)
}

func TestAutocomplete(t *testing.T) {
	res := qop(t, ".", "", "autocomplete", "--shell", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "qop")

	dir := t.TempDir()
	res = qop(t, ".", "", "autocomplete", "--shell", "fish", "--path", dir)
	require.NoError(t, res.err)
	assert.FileExists(t, filepath.Join(dir, "qop.fish"))

	res = qop(t, ".", "", "autocomplete", "--shell", "tcsh")
	assert.Error(t, res.err)
}

func TestVerboseLogsCommandArgs(t *testing.T) {
	res := qop(t, ".", "", "autocomplete", "--shell", "zsh", "-v")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "autocomplete")
	assert.Contains(t, res.stderr, "run")

	res = qop(t, ".", "", "autocomplete", "--shell", "zsh")
	require.NoError(t, res.err)
	assert.Empty(t, res.stderr)
}
