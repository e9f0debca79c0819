package executor

import "time"

// RunStatus is the overall outcome of a run.
type RunStatus string

const (
	// RunSuccess means every launched task completed and none failed.
	RunSuccess RunStatus = "success"
	// RunPartialSuccess means some tasks completed and some failed.
	RunPartialSuccess RunStatus = "partial_success"
	// RunFailure means no task ever completed successfully.
	RunFailure RunStatus = "failure"
)

// Metrics summarizes a finished run.
type Metrics struct {
	TotalTasks     int
	CompletedTasks int
	FailedTasks    int
	// ActualDuration is the measured wall-clock time of the run.
	ActualDuration time.Duration
	// EstimatedDuration is the plan's total estimate in abstract units.
	EstimatedDuration float64
	// EfficiencyRatio is ActualDuration divided by the estimate converted to
	// wall time; values under 1 mean the run beat its estimate.
	EfficiencyRatio float64
}

// Result reports everything that happened during a run. Tasks absent from
// both CompletedTasks and FailedTasks never launched; their nodes remain
// pending.
type Result struct {
	// CompletedTasks lists the IDs of tasks that settled successfully, in
	// settlement order within each stage.
	CompletedTasks []string
	// FailedTasks lists the IDs of tasks whose executors returned an error
	// or panicked.
	FailedTasks []string
	// TaskErrors maps failed task IDs to their recorded errors.
	TaskErrors map[string]error
	// Outputs maps completed task IDs to their produced outputs.
	Outputs map[string]any
	// Aborted is true when a critical-path failure stopped the run before
	// all stages were launched.
	Aborted bool
	Status  RunStatus
	Metrics Metrics
}

func overallStatus(completed, failed int) RunStatus {
	switch {
	case failed == 0:
		return RunSuccess
	case completed > 0:
		return RunPartialSuccess
	default:
		return RunFailure
	}
}
