package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/plan"
	"github.com/vk/taskgrid/internal/task"
)

// outcome is the settlement of one task: a nil err means the task completed
// and its output was recorded in the run context.
type outcome struct {
	taskID string
	err    error
}

// runStage fans out every task in the stage and waits for all of them to
// settle. There is no fail-fast and no mid-stage cancellation: a sibling's
// failure never starves an independent task in the same stage.
func (e *Executor) runStage(ctx context.Context, stage plan.Stage) []outcome {
	workers := pool.New()
	if e.maxParallel > 0 {
		workers = workers.WithMaxGoroutines(e.maxParallel)
	}

	var mu sync.Mutex
	outcomes := make([]outcome, 0, len(stage.TaskIDs))

	for _, id := range stage.TaskIDs {
		n := e.graph.Nodes[id]
		n.Status = task.StatusInProgress
		workers.Go(func() {
			err := e.invoke(ctx, n)
			mu.Lock()
			outcomes = append(outcomes, outcome{taskID: n.ID, err: err})
			mu.Unlock()
		})
	}
	workers.Wait()

	return outcomes
}

// invoke runs a single task's executor function and settles the node. Any
// panic raised by the executor is converted into a recorded failure rather
// than being allowed to propagate.
func (e *Executor) invoke(ctx context.Context, n *task.Node) (err error) {
	logger := ctxlog.FromContext(ctx).With("task", n.ID, "role", n.Role)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task executor panicked: %v", r)
		}
		if err != nil {
			logger.Error("Task failed.", "error", err)
			n.Status = task.StatusFailed
			n.Err = err
		}
	}()

	fn, ok := e.registry.Handler(n.Role)
	if !ok {
		// Registry validation runs before any stage launches, so this only
		// fires when the executor is driven without it.
		return fmt.Errorf("no executor registered for role %q", n.Role)
	}

	logger.Debug("Task starting.")
	result, err := fn(ctx, n, e.store.ScopeFor(n))
	if err != nil {
		return err
	}

	e.store.SetOutput(n.ID, result)
	n.Status = task.StatusCompleted
	n.Result = result
	logger.Debug("Task completed.")
	return nil
}
