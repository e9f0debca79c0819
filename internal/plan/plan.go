// Package plan turns an analyzed task graph into a stage-parallel execution
// plan: a greedy layering that gathers every ready task into one stage,
// treats stages as sequential barriers, and derives plan-level metrics.
//
// Stage duration is the maximum task duration within the stage, which
// assumes unbounded parallel capacity per stage. That is a deliberate
// simplification; a bounded worker pool would make stage duration depend on
// scheduling order within the stage and would change this package's
// contract.
package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/taskgrid/internal/cpm"
	"github.com/vk/taskgrid/internal/dag"
)

// Stage is one layer of tasks whose dependencies are all satisfied by
// earlier stages. Tasks within a stage may run concurrently.
type Stage struct {
	Index int
	// TaskIDs lists the stage's tasks, critical tasks first, each group
	// sorted by ID.
	TaskIDs []string
	// EstimatedDuration is the maximum task duration in the stage.
	EstimatedDuration float64
}

// Plan is a complete stage-parallel execution plan for a graph.
type Plan struct {
	Stages []Stage
	// TotalEstimatedDuration is the sum of stage durations.
	TotalEstimatedDuration float64
	// CriticalPath and CriticalPathDuration are carried over from the
	// analysis the plan was built from.
	CriticalPath         []string
	CriticalPathDuration float64
	// ParallelizationFactor is the serial sum of all task durations divided
	// by TotalEstimatedDuration; 1.0 means no parallelism was found.
	ParallelizationFactor float64
}

// DeadlockError indicates the layering stalled with tasks still unscheduled.
// This can only happen when a cyclic graph escaped earlier validation.
type DeadlockError struct {
	Remaining []string
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("scheduling deadlock: no runnable tasks among [%s]", strings.Join(e.Remaining, ", "))
}

// Build layers the graph into stages. It fails with a DeadlockError if no
// task is ever ready while unscheduled tasks remain; with a graph validated
// by dag.TopoSort this is unreachable.
func Build(g *dag.Graph, analysis *cpm.Analysis) (*Plan, error) {
	p := &Plan{
		CriticalPath:         analysis.CriticalPath,
		CriticalPathDuration: analysis.Duration,
	}

	scheduled := make(map[string]bool, g.Size())
	for len(scheduled) < g.Size() {
		available := availableTasks(g, scheduled)
		if len(available) == 0 {
			return nil, &DeadlockError{Remaining: unscheduledTasks(g, scheduled)}
		}

		sortStageTasks(available, analysis)
		stage := Stage{
			Index:   len(p.Stages),
			TaskIDs: available,
		}
		for _, id := range available {
			if d := g.Nodes[id].Duration; d > stage.EstimatedDuration {
				stage.EstimatedDuration = d
			}
			scheduled[id] = true
		}
		p.Stages = append(p.Stages, stage)
		p.TotalEstimatedDuration += stage.EstimatedDuration
	}

	if p.TotalEstimatedDuration > 0 {
		p.ParallelizationFactor = g.SerialDuration() / p.TotalEstimatedDuration
	}

	return p, nil
}

// availableTasks returns the unscheduled tasks whose dependencies are all
// scheduled.
func availableTasks(g *dag.Graph, scheduled map[string]bool) []string {
	var available []string
	for id := range g.Nodes {
		if scheduled[id] {
			continue
		}
		ready := true
		for _, depID := range g.RevAdj[id] {
			if !scheduled[depID] {
				ready = false
				break
			}
		}
		if ready {
			available = append(available, id)
		}
	}
	return available
}

func unscheduledTasks(g *dag.Graph, scheduled map[string]bool) []string {
	var remaining []string
	for id := range g.Nodes {
		if !scheduled[id] {
			remaining = append(remaining, id)
		}
	}
	sort.Strings(remaining)
	return remaining
}

// sortStageTasks orders a stage deterministically: by ID, with critical
// tasks stably moved to the front so operators see them first.
func sortStageTasks(ids []string, analysis *cpm.Analysis) {
	sort.Strings(ids)
	sort.SliceStable(ids, func(i, j int) bool {
		return analysis.IsCritical(ids[i]) && !analysis.IsCritical(ids[j])
	})
}
