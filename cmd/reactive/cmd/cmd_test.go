package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects the command output for the duration of the test.
func capture(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr, prevDir := stdout, stderr, workDir
	stdout, stderr = out, errOut
	workDir = t.TempDir()
	t.Cleanup(func() {
		stdout, stderr, workDir = prevOut, prevErr, prevDir
	})
	return out, errOut
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecute_Help(t *testing.T) {
	out, _ := capture(t)

	require.NoError(t, ExecuteArgs(nil))
	assert.Contains(t, out.String(), "Commands:")
	assert.Contains(t, out.String(), "replay")
	assert.Contains(t, out.String(), "normalize")

	out.Reset()
	require.NoError(t, ExecuteArgs([]string{"replay", "--help"}))
	assert.Contains(t, out.String(), "reactive replay <scenario.yaml>")
}

func TestExecute_Version(t *testing.T) {
	out, _ := capture(t)

	require.NoError(t, ExecuteArgs([]string{"--version"}))
	require.NoError(t, ExecuteArgs([]string{"version"}))
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("reactive version "+Version)))
}

func TestExecute_UnknownCommand(t *testing.T) {
	_, errOut := capture(t)

	err := ExecuteArgs([]string{"frobnicate"})
	assert.EqualError(t, err, "unknown command: frobnicate")
	assert.Contains(t, errOut.String(), `unknown command "frobnicate"`)
}

func TestExecute_DirRequiresValue(t *testing.T) {
	capture(t)
	assert.EqualError(t, ExecuteArgs([]string{"replay", "--dir"}), "--dir requires a directory path")
}

func TestReplay_Transcript(t *testing.T) {
	out, _ := capture(t)
	path := writeFile(t, t.TempDir(), "s.yaml", `
version: v1
name: scenario a
source: [A, B, C]
projection:
  exclude: [B]
steps:
  - remove_at: 0
  - add: D
`)

	require.NoError(t, ExecuteArgs([]string{"replay", path}))
	want := `Scenario: scenario a
Items: [B C D]
Events:
  remove@0 [A]
  add@2 [D]
Updates: [delete(0) add(2)]
Projection: [C D]
Index map: [1 2]
Projection events:
  remove@0 [A]
  add@1 [D]
`
	assert.Equal(t, want, out.String())
}

func TestReplay_ConfigAndDump(t *testing.T) {
	out, _ := capture(t)
	writeFile(t, workDir, "reactive.yaml", "output:\n  format: dump\n")
	path := writeFile(t, t.TempDir(), "s.yaml", "version: v1\nsource: [x]\nsteps:\n  - clear: true\n")

	require.NoError(t, ExecuteArgs([]string{"replay", path}))
	assert.Contains(t, out.String(), "Reset: true")
	assert.Contains(t, out.String(), "scenario.Result{")
}

func TestReplay_DirFlag(t *testing.T) {
	out, _ := capture(t)
	dir := t.TempDir()
	writeFile(t, dir, "reactive.yaml", "output:\n  format: xml\n")
	path := writeFile(t, t.TempDir(), "s.yaml", "version: v1\n")

	err := ExecuteArgs([]string{"--dir", dir, "replay", path})
	assert.ErrorContains(t, err, "output.format")
	assert.Empty(t, out.String())
}

func TestReplay_ModuleAndRelativePath(t *testing.T) {
	out, _ := capture(t)
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/rows\n\ngo 1.24\n")
	writeFile(t, dir, "s.yaml", "version: v1\nsource: [x]\n")

	require.NoError(t, ExecuteArgs([]string{"--dir", dir, "replay", "s.yaml"}))
	assert.True(t, strings.HasPrefix(out.String(), "Module: example.com/rows\nItems: [x]\n"), out.String())
}

func TestReplay_Args(t *testing.T) {
	capture(t)

	assert.ErrorContains(t, ExecuteArgs([]string{"replay"}), "scenario file required")
	assert.ErrorContains(t, ExecuteArgs([]string{"replay", "a.yaml", "--fast"}), "unknown flag: --fast")
	assert.ErrorContains(t, ExecuteArgs([]string{"replay", "a.yaml", "b.yaml"}), "unexpected argument: b.yaml")
	assert.ErrorContains(t, ExecuteArgs([]string{"replay", filepath.Join(t.TempDir(), "missing.yaml")}), "failed to read scenario")
}

func TestNormalize(t *testing.T) {
	out, _ := capture(t)
	path := writeFile(t, t.TempDir(), "b.yaml", `
version: v1
updates:
  - add: 0
  - add: 0
  - delete: 1
  - delete: 3
`)

	require.NoError(t, ExecuteArgs([]string{"normalize", path}))
	assert.Contains(t, out.String(), "Input:      [add(0) add(0) delete(1) delete(3)]\n")
	assert.Contains(t, out.String(), "Normalized: [add(0) delete(2)]\n")
	assert.Contains(t, out.String(), "Deletes:    [delete(2)]\n")
	assert.Contains(t, out.String(), "Adds:       [add(0)]\n")

	assert.ErrorContains(t, ExecuteArgs([]string{"normalize"}), "batch file required")
}
