// Package cpm performs critical path analysis over a task graph: a forward
// pass computing earliest start/finish, a backward pass computing latest
// start/finish, and slack per task. Standard CPM/PERT.
package cpm

import (
	"math"

	"github.com/vk/taskgrid/internal/dag"
)

// slackEpsilon guards the zero-slack comparison against float drift from the
// two passes.
const slackEpsilon = 1e-9

// Analyze computes the critical path analysis for a graph given its
// topological order. It has no hidden state: analyzing the same graph and
// order twice yields identical results.
func Analyze(g *dag.Graph, order []string) *Analysis {
	a := &Analysis{
		Nodes: make(map[string]Timing, len(order)),
	}

	// Forward pass, in topological order: a task starts as soon as its
	// slowest dependency finishes.
	for _, id := range order {
		t := Timing{}
		for _, depID := range g.RevAdj[id] {
			if ef := a.Nodes[depID].EarliestFinish; ef > t.EarliestStart {
				t.EarliestStart = ef
			}
		}
		t.EarliestFinish = t.EarliestStart + g.Nodes[id].Duration
		if t.EarliestFinish > a.Duration {
			a.Duration = t.EarliestFinish
		}
		a.Nodes[id] = t
	}

	// Backward pass, in reverse topological order: a task may finish as late
	// as its most pressed dependent must start; exit tasks may run up to the
	// project duration.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		t := a.Nodes[id]
		t.LatestFinish = a.Duration
		for _, depID := range g.Adj[id] {
			if ls := a.Nodes[depID].LatestStart; ls < t.LatestFinish {
				t.LatestFinish = ls
			}
		}
		t.LatestStart = t.LatestFinish - g.Nodes[id].Duration
		t.Slack = t.LatestStart - t.EarliestStart
		t.Critical = math.Abs(t.Slack) < slackEpsilon
		a.Nodes[id] = t
	}

	// The critical path is the zero-slack subsequence of the topological
	// order.
	for _, id := range order {
		if a.Nodes[id].Critical {
			a.CriticalPath = append(a.CriticalPath, id)
		}
	}

	return a
}
