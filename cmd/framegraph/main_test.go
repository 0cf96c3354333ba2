package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Git-i/gpu-gems/internal/cli"
)

func writeGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_CompilesAndExecutes(t *testing.T) {
	t.Parallel()

	path := writeGraph(t, `
pass "shadow" {
  output "image" "shadowmap" {
    size   = absolute(1024, 1024)
    format = "depth24plus-stencil8"
  }
}

pass "lighting" {
  input "image" "shadowmap" {}
  output "image" "hdr" {
    format = "rgba8unorm"
  }
}
`)
	var out, errOut bytes.Buffer
	require.NoError(t, run(t.Context(), &out, &errOut, []string{"--frames", "1", path}))

	assert.Contains(t, out.String(), "Render graph: 2 passes, 2 resources, 2 slots (swapchain 1280x720)")
	assert.Contains(t, out.String(), "frame 0 end lighting")
	assert.Contains(t, errOut.String(), "Render graph compiled.")
	assert.NotContains(t, out.String(), "level=INFO")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	path := writeGraph(t, `
pass "broken" {
  output "image" "x" {
`)
	err := run(t.Context(), &bytes.Buffer{}, &bytes.Buffer{}, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestRun_EmptyOutputReferencesExistingImage(t *testing.T) {
	t.Parallel()

	path := writeGraph(t, `
pass "lighting" {
  output "image" "hdr" {}
}
`)
	err := run(t.Context(), &bytes.Buffer{}, &bytes.Buffer{}, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build render graph")
	assert.Contains(t, err.Error(), `pass 'lighting': output 'hdr': image "hdr" does not exist`)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	require.NoError(t, run(t.Context(), &out, &errOut, []string{"-h"}))
	assert.Contains(t, errOut.String(), "Usage:")
	assert.Empty(t, out.String())
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(t.Context(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
