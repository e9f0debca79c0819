package cpm

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/dag"
	"github.com/vk/taskgrid/internal/ident"
	"github.com/vk/taskgrid/internal/task"
)

// buildGraph constructs a validated graph and its topological order.
func buildGraph(t *testing.T, specs ...task.Spec) (*dag.Graph, []string) {
	t.Helper()
	g, err := dag.Build(context.Background(), specs, ident.Sequential("task"))
	require.NoError(t, err)
	order, err := dag.TopoSort(g)
	require.NoError(t, err)
	return g, order
}

func spec(id string, duration float64, deps ...string) task.Spec {
	return task.Spec{ID: id, Name: id, Role: task.RoleGenerate, Duration: duration, DependsOn: deps}
}

func TestAnalyze_LinearChain(t *testing.T) {
	t.Parallel()

	g, order := buildGraph(t,
		spec("a", 10),
		spec("b", 20, "a"),
		spec("c", 5, "b"),
	)

	a := Analyze(g, order)

	assert.Equal(t, []string{"a", "b", "c"}, a.CriticalPath)
	assert.InDelta(t, 35.0, a.Duration, 1e-9)

	assert.InDelta(t, 0.0, a.Nodes["a"].EarliestStart, 1e-9)
	assert.InDelta(t, 10.0, a.Nodes["a"].EarliestFinish, 1e-9)
	assert.InDelta(t, 10.0, a.Nodes["b"].EarliestStart, 1e-9)
	assert.InDelta(t, 30.0, a.Nodes["b"].EarliestFinish, 1e-9)
	assert.InDelta(t, 30.0, a.Nodes["c"].EarliestStart, 1e-9)
	assert.InDelta(t, 35.0, a.Nodes["c"].EarliestFinish, 1e-9)

	for id, timing := range a.Nodes {
		assert.InDelta(t, 0.0, timing.Slack, 1e-9, "chain node %s must have zero slack", id)
		assert.True(t, timing.Critical)
	}
}

func TestAnalyze_MixedGraph(t *testing.T) {
	t.Parallel()

	g, order := buildGraph(t,
		spec("a", 10),
		spec("b", 20, "a"),
		spec("c", 5, "b"),
		spec("d", 8),
	)

	a := Analyze(g, order)

	assert.Equal(t, []string{"a", "b", "c"}, a.CriticalPath)
	assert.InDelta(t, 35.0, a.Duration, 1e-9)

	d := a.Nodes["d"]
	assert.False(t, d.Critical)
	assert.InDelta(t, 0.0, d.EarliestStart, 1e-9)
	assert.InDelta(t, 8.0, d.EarliestFinish, 1e-9)
	assert.InDelta(t, 35.0, d.LatestFinish, 1e-9)
	assert.InDelta(t, 27.0, d.Slack, 1e-9)
}

func TestAnalyze_EdgeInvariant(t *testing.T) {
	t.Parallel()

	g, order := buildGraph(t,
		spec("a", 3),
		spec("b", 4),
		spec("c", 7, "a", "b"),
		spec("d", 1, "c"),
		spec("e", 2, "a"),
	)

	a := Analyze(g, order)

	for _, e := range g.Edges {
		assert.LessOrEqual(t, a.Nodes[e.From].EarliestFinish, a.Nodes[e.To].EarliestStart,
			"earliestFinish(%s) must not exceed earliestStart(%s)", e.From, e.To)
	}
}

func TestAnalyze_ParallelCriticalChainsAllReported(t *testing.T) {
	t.Parallel()

	// Two disconnected chains of equal length: every task has zero slack,
	// so the critical path is a set, not a single chain.
	g, order := buildGraph(t,
		spec("a1", 10),
		spec("a2", 5, "a1"),
		spec("b1", 5),
		spec("b2", 10, "b1"),
	)

	a := Analyze(g, order)

	assert.ElementsMatch(t, []string{"a1", "a2", "b1", "b2"}, a.CriticalPath)
	assert.InDelta(t, 15.0, a.Duration, 1e-9)
}

func TestAnalyze_ZeroDurationTask(t *testing.T) {
	t.Parallel()

	g, order := buildGraph(t,
		spec("a", 0),
		spec("b", 10, "a"),
	)

	a := Analyze(g, order)

	assert.InDelta(t, 10.0, a.Duration, 1e-9)
	assert.Equal(t, []string{"a", "b"}, a.CriticalPath)
}

func TestAnalyze_Idempotent(t *testing.T) {
	t.Parallel()

	g, order := buildGraph(t,
		spec("a", 10),
		spec("b", 20, "a"),
		spec("c", 5, "b"),
		spec("d", 8),
	)

	first := Analyze(g, order)
	second := Analyze(g, order)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated analysis differs (-first +second):\n%s", diff)
	}
}
