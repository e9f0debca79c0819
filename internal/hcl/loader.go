// Package hcl loads pipeline definitions from .hcl files and translates them
// into task specs. The file format is the engine's only text surface:
//
//	task "generate" "api" {
//	  duration   = 10
//	  depends_on = ["generate.schema"]
//	  params {
//	    target = "internal/api"
//	  }
//	}
//
// A task's address is "<role>.<name>" unless an explicit id attribute
// overrides it; depends_on entries reference those addresses.
package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/sync/errgroup"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/fsutil"
	"github.com/vk/taskgrid/internal/task"
)

// Loader parses pipeline files into task specs.
type Loader struct{}

// NewLoader creates a new pipeline loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the pipeline at path, which may be a single .hcl file or a
// directory searched recursively. Files are parsed concurrently; the
// returned specs preserve lexical file order and in-file declaration order,
// which the graph builder's "nearest earlier" gating relies on.
func (l *Loader) Load(ctx context.Context, path string) ([]task.Spec, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.resolveFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl pipeline files found under %q", path)
	}
	logger.Debug("Pipeline files resolved.", "count", len(files))

	perFile := make([][]task.Spec, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			specs, err := l.loadFile(gctx, file)
			if err != nil {
				return err
			}
			perFile[i] = specs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var specs []task.Spec
	for _, fileSpecs := range perFile {
		specs = append(specs, fileSpecs...)
	}
	logger.Debug("Pipeline loaded.", "task_count", len(specs))
	return specs, nil
}

func (l *Loader) resolveFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access pipeline path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return fsutil.FindFilesByExtension(path, ".hcl")
}

// loadFile parses one file. Each call owns its parser; hclparse.Parser is
// not safe for concurrent use.
func (l *Loader) loadFile(ctx context.Context, path string) ([]task.Spec, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing pipeline file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var cfg pipelineConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	specs := make([]task.Spec, 0, len(cfg.Tasks))
	for _, block := range cfg.Tasks {
		spec, err := l.translateTask(block)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// translateTask converts one HCL task block into the engine's spec model.
func (l *Loader) translateTask(block *taskBlock) (task.Spec, error) {
	id := block.ID
	if id == "" {
		id = fmt.Sprintf("%s.%s", block.Role, block.Name)
	}

	params, err := extractParams(block.Params)
	if err != nil {
		return task.Spec{}, fmt.Errorf("task %q: %w", id, err)
	}

	return task.Spec{
		ID:        id,
		Name:      block.Name,
		Role:      task.Role(block.Role),
		Duration:  block.Duration,
		DependsOn: block.DependsOn,
		Params:    params,
	}, nil
}
