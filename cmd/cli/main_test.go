package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/cli"
)

func writePipeline(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_PlanOnly(t *testing.T) {
	t.Parallel()

	path := writePipeline(t, `
task "generate" "api" {
  duration = 3
}

task "verify" "api" {
  duration = 1
}
`)

	var out bytes.Buffer
	err := run(&out, []string{"-plan-only", "-log-level", "error", path})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Execution plan: 2 task(s) in 2 stage(s)")
	assert.Contains(t, out.String(), "critical path (*)")
}

func TestRun_SimulatedRun(t *testing.T) {
	t.Parallel()

	path := writePipeline(t, `
task "generate" "api" {
  duration = 1
}
`)

	var out bytes.Buffer
	err := run(&out, []string{"-log-level", "error", "-seed", "7", path})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Run success: 1 completed, 0 failed of 1 task(s)")
}

func TestRun_InvalidPipeline(t *testing.T) {
	t.Parallel()

	path := writePipeline(t, `task "generate" {`)

	var out bytes.Buffer
	err := run(&out, []string{"-log-level", "error", path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load pipeline")
}

func TestRun_UsageWhenNoArgs(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(&out, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseErrorIsExitError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(&out, []string{"-log-format", "xml", "pipeline.hcl"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
