// Package executor runs an execution plan stage by stage. Tasks within a
// stage fan out concurrently and the executor waits for all of them to
// settle before moving on; stages are full barriers. A failure on the
// critical path stops further stages from launching, but never cancels
// siblings already in flight.
package executor

import (
	"context"
	"time"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/dag"
	"github.com/vk/taskgrid/internal/plan"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/runctx"
	"github.com/vk/taskgrid/internal/timeutil"
)

// Option configures an Executor.
type Option func(*Executor)

// WithClock injects the clock used for run metrics.
func WithClock(c timeutil.Clock) Option {
	return func(e *Executor) { e.clock = c }
}

// WithMaxParallel caps the number of concurrently running task goroutines
// per stage. Zero or negative means unbounded, matching the planner's
// assumption; a cap only affects wall-clock behavior, never stage semantics.
func WithMaxParallel(n int) Option {
	return func(e *Executor) { e.maxParallel = n }
}

// WithUnit sets the wall-clock length of one abstract duration unit, used
// only to compute the efficiency ratio. Defaults to one second.
func WithUnit(d time.Duration) Option {
	return func(e *Executor) { e.unit = d }
}

// Executor runs one plan over one graph. Build a fresh Executor per run.
type Executor struct {
	graph    *dag.Graph
	plan     *plan.Plan
	registry *registry.Registry
	store    *runctx.Store

	clock       timeutil.Clock
	maxParallel int
	unit        time.Duration
}

// New creates an Executor for the given graph and plan. The initial map
// seeds the shared run context readable by every task executor.
func New(g *dag.Graph, p *plan.Plan, r *registry.Registry, initial map[string]any, opts ...Option) *Executor {
	e := &Executor{
		graph:    g,
		plan:     p,
		registry: r,
		store:    runctx.NewStore(initial),
		clock:    timeutil.System(),
		unit:     time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the plan's stages in order and always returns a Result; task
// failures are recorded, never propagated as errors. The context is passed
// through to task executors, which own their own timeout behavior; a hung
// executor stalls the run.
func (e *Executor) Run(ctx context.Context) *Result {
	logger := ctxlog.FromContext(ctx)
	start := e.clock.Now()

	critical := make(map[string]bool, len(e.plan.CriticalPath))
	for _, id := range e.plan.CriticalPath {
		critical[id] = true
	}

	result := &Result{
		TaskErrors: make(map[string]error),
	}

	for _, stage := range e.plan.Stages {
		logger.Info("Stage starting.", "stage", stage.Index, "tasks", len(stage.TaskIDs))
		outcomes := e.runStage(ctx, stage)

		criticalFailure := false
		for _, o := range outcomes {
			if o.err != nil {
				result.FailedTasks = append(result.FailedTasks, o.taskID)
				result.TaskErrors[o.taskID] = o.err
				if critical[o.taskID] {
					criticalFailure = true
				}
				continue
			}
			result.CompletedTasks = append(result.CompletedTasks, o.taskID)
		}
		logger.Info("Stage settled.", "stage", stage.Index,
			"completed", len(result.CompletedTasks), "failed", len(result.FailedTasks))

		if criticalFailure {
			logger.Warn("Critical path task failed, aborting remaining stages.", "stage", stage.Index)
			result.Aborted = true
			break
		}
	}

	result.Outputs = e.store.Outputs()
	result.Status = overallStatus(len(result.CompletedTasks), len(result.FailedTasks))
	result.Metrics = e.metrics(result, e.clock.Now().Sub(start))
	return result
}

func (e *Executor) metrics(result *Result, elapsed time.Duration) Metrics {
	m := Metrics{
		TotalTasks:        e.graph.Size(),
		CompletedTasks:    len(result.CompletedTasks),
		FailedTasks:       len(result.FailedTasks),
		ActualDuration:    elapsed,
		EstimatedDuration: e.plan.TotalEstimatedDuration,
	}
	if estimated := time.Duration(e.plan.TotalEstimatedDuration * float64(e.unit)); estimated > 0 {
		m.EfficiencyRatio = float64(elapsed) / float64(estimated)
	}
	return m
}
