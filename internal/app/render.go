package app

import (
	"fmt"
	"strings"

	"github.com/vk/taskgrid/internal/engine"
)

// renderPlan writes a human-readable stage table and plan metrics.
func (a *App) renderPlan(report *engine.Report) {
	p := report.Plan

	fmt.Fprintf(a.outW, "Execution plan: %d task(s) in %d stage(s)\n", report.Graph.Size(), len(p.Stages))
	for _, stage := range p.Stages {
		marks := make([]string, 0, len(stage.TaskIDs))
		for _, id := range stage.TaskIDs {
			if report.Analysis.IsCritical(id) {
				marks = append(marks, id+"*")
			} else {
				marks = append(marks, id)
			}
		}
		fmt.Fprintf(a.outW, "  stage %d  (duration %g): %s\n", stage.Index, stage.EstimatedDuration, strings.Join(marks, ", "))
	}
	fmt.Fprintf(a.outW, "  critical path (*): %s (duration %g)\n", strings.Join(p.CriticalPath, " -> "), p.CriticalPathDuration)
	fmt.Fprintf(a.outW, "  total estimated duration: %g, parallelization factor: %.3f\n", p.TotalEstimatedDuration, p.ParallelizationFactor)
}

// renderResult writes the run outcome and per-task failures.
func (a *App) renderResult(report *engine.Report) {
	r := report.Result

	fmt.Fprintf(a.outW, "Run %s: %d completed, %d failed of %d task(s)\n",
		r.Status, r.Metrics.CompletedTasks, r.Metrics.FailedTasks, r.Metrics.TotalTasks)
	if r.Aborted {
		fmt.Fprintln(a.outW, "  aborted: a critical path task failed; remaining stages were not launched")
	}
	for _, id := range r.FailedTasks {
		fmt.Fprintf(a.outW, "  failed: %s: %v\n", id, r.TaskErrors[id])
	}
	fmt.Fprintf(a.outW, "  actual duration: %s (efficiency ratio %.3f)\n",
		r.Metrics.ActualDuration, r.Metrics.EfficiencyRatio)
}
