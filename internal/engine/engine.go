// Package engine is the library facade over the orchestration pipeline:
// build the graph, topologically sort it, analyze the critical path, layer
// the execution plan, and run it. Each step is exposed on its own so callers
// can stop at any point (for example, to render a plan without running it),
// and Execute chains all five.
package engine

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/cpm"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/dag"
	"github.com/vk/taskgrid/internal/executor"
	"github.com/vk/taskgrid/internal/ident"
	"github.com/vk/taskgrid/internal/plan"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/task"
)

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator injects the generator used for specs without IDs.
func WithIDGenerator(g ident.Generator) Option {
	return func(e *Engine) { e.ids = g }
}

// WithExecutorOptions passes options through to every executor the engine
// creates.
func WithExecutorOptions(opts ...executor.Option) Option {
	return func(e *Engine) { e.execOpts = opts }
}

// Engine ties the orchestration stages together. A zero-value Engine is not
// usable; construct one with New.
type Engine struct {
	ids      ident.Generator
	execOpts []executor.Option
}

// New creates an Engine with UUID-based ID generation unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{ids: ident.UUID()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build constructs the dependency graph from task specs.
func (e *Engine) Build(ctx context.Context, specs []task.Spec) (*dag.Graph, error) {
	return dag.Build(ctx, specs, e.ids)
}

// Sort returns the graph's topological order.
func (e *Engine) Sort(g *dag.Graph) ([]string, error) {
	return dag.TopoSort(g)
}

// AnalyzeCriticalPath runs the CPM forward/backward pass over the graph.
func (e *Engine) AnalyzeCriticalPath(g *dag.Graph, order []string) *cpm.Analysis {
	return cpm.Analyze(g, order)
}

// Plan layers the analyzed graph into a stage-parallel execution plan.
func (e *Engine) Plan(g *dag.Graph, analysis *cpm.Analysis) (*plan.Plan, error) {
	return plan.Build(g, analysis)
}

// Run validates the registry against the graph and executes the plan. The
// returned error covers structural problems only (a role without an
// executor); task-level failures live inside the Result.
func (e *Engine) Run(ctx context.Context, g *dag.Graph, p *plan.Plan, reg *registry.Registry, initial map[string]any) (*executor.Result, error) {
	if err := reg.Validate(g); err != nil {
		return nil, err
	}
	exec := executor.New(g, p, reg, initial, e.execOpts...)
	return exec.Run(ctx), nil
}

// Report is the output of a full Execute: every intermediate artifact plus
// the run result. Result is nil when Execute was asked to stop at planning.
type Report struct {
	Graph    *dag.Graph
	Order    []string
	Analysis *cpm.Analysis
	Plan     *plan.Plan
	Result   *executor.Result
}

// Execute chains build, sort, analyze, plan and run. When reg is nil the
// pipeline stops after planning and the Report carries no Result.
func (e *Engine) Execute(ctx context.Context, specs []task.Spec, reg *registry.Registry, initial map[string]any) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	g, err := e.Build(ctx, specs)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	logger.Debug("Dependency graph built.", "node_count", g.Size())

	order, err := e.Sort(g)
	if err != nil {
		return nil, fmt.Errorf("failed to sort dependency graph: %w", err)
	}

	analysis := e.AnalyzeCriticalPath(g, order)
	logger.Debug("Critical path analyzed.",
		"duration", analysis.Duration, "critical_tasks", len(analysis.CriticalPath))

	p, err := e.Plan(g, analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to plan execution: %w", err)
	}
	logger.Debug("Execution plan ready.",
		"stages", len(p.Stages), "parallelization", p.ParallelizationFactor)

	report := &Report{Graph: g, Order: order, Analysis: analysis, Plan: p}
	if reg == nil {
		return report, nil
	}

	result, err := e.Run(ctx, g, p, reg, initial)
	if err != nil {
		return nil, err
	}
	report.Result = result
	return report, nil
}
