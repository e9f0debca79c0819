package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/task"
)

func writePipeline(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	t.Parallel()

	path := writePipeline(t, t.TempDir(), "pipeline.hcl", `
task "generate" "api" {
  duration = 10
}

task "review" "api" {
  duration   = 4
  depends_on = ["generate.api"]
}
`)

	specs, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "generate.api", specs[0].ID)
	assert.Equal(t, "api", specs[0].Name)
	assert.Equal(t, task.RoleGenerate, specs[0].Role)
	assert.InDelta(t, 10.0, specs[0].Duration, 1e-9)
	assert.Empty(t, specs[0].DependsOn)

	assert.Equal(t, "review.api", specs[1].ID)
	assert.Equal(t, []string{"generate.api"}, specs[1].DependsOn)
}

func TestLoad_ExplicitIDOverridesAddress(t *testing.T) {
	t.Parallel()

	path := writePipeline(t, t.TempDir(), "pipeline.hcl", `
task "generate" "api" {
  id       = "custom-id"
  duration = 1
}
`)

	specs, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "custom-id", specs[0].ID)
}

func TestLoad_Params(t *testing.T) {
	t.Parallel()

	path := writePipeline(t, t.TempDir(), "pipeline.hcl", `
task "generate" "api" {
  duration = 1
  params {
    target   = "internal/api"
    retries  = 3
    dry_run  = false
    features = ["grpc", "rest"]
  }
}
`)

	specs, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, specs, 1)

	params := specs[0].Params
	assert.Equal(t, "internal/api", params["target"])
	assert.Equal(t, float64(3), params["retries"])
	assert.Equal(t, false, params["dry_run"])
	assert.Equal(t, []any{"grpc", "rest"}, params["features"])
}

func TestLoad_DirectoryPreservesLexicalFileOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePipeline(t, dir, "20-later.hcl", `
task "generate" "second" {
  duration = 1
}
`)
	writePipeline(t, dir, "10-early.hcl", `
task "generate" "first" {
  duration = 1
}
`)

	specs, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "generate.first", specs[0].ID)
	assert.Equal(t, "generate.second", specs[1].ID)
}

func TestLoad_ParseErrorNamesFile(t *testing.T) {
	t.Parallel()

	path := writePipeline(t, t.TempDir(), "broken.hcl", `task "generate" {`)

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.hcl")
}

func TestLoad_NoFilesFound(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .hcl pipeline files")
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access pipeline path")
}
