package cpm

// Timing holds the schedule window computed for a single task.
type Timing struct {
	// EarliestStart is the soonest the task can begin given its
	// dependencies.
	EarliestStart float64
	// EarliestFinish is EarliestStart plus the task's duration.
	EarliestFinish float64
	// LatestStart is the latest the task can begin without delaying the
	// project.
	LatestStart float64
	// LatestFinish is the latest the task can end without delaying the
	// project.
	LatestFinish float64
	// Slack is LatestStart minus EarliestStart.
	Slack float64
	// Critical is true when the task has zero slack.
	Critical bool
}

// Analysis is the full critical path analysis of a graph.
type Analysis struct {
	// Nodes maps task ID to its computed timing.
	Nodes map[string]Timing
	// CriticalPath lists the zero-slack tasks in topological order. It is a
	// critical set projected onto that order: graphs with parallel critical
	// chains report every zero-slack task, not a single contiguous chain.
	CriticalPath []string
	// Duration is the project duration, the maximum earliest finish over all
	// tasks.
	Duration float64
}

// IsCritical reports whether the given task is on the critical path.
func (a *Analysis) IsCritical(id string) bool {
	return a.Nodes[id].Critical
}
