package dag

import (
	"fmt"
	"sort"

	"github.com/vk/taskgrid/internal/task"
)

// Graph is the immutable dependency graph of a pipeline. It is built once by
// Build and never mutated afterward; only the executor writes to the
// contained nodes' Status/Result/Err fields during a run.
type Graph struct {
	// Nodes maps task ID to its node.
	Nodes map[string]*task.Node
	// Edges is the deduplicated edge list. Order is not significant.
	Edges []task.Edge
	// Adj maps a task to the tasks that depend on it (successors).
	Adj map[string][]string
	// RevAdj maps a task to the tasks it depends on (predecessors).
	RevAdj map[string][]string
	// Entry lists tasks with no incoming edge, sorted by ID.
	Entry []string
	// Exit lists tasks with no outgoing edge, sorted by ID.
	Exit []string
}

// Dependencies returns the IDs of tasks the given task depends on.
func (g *Graph) Dependencies(id string) []string {
	return g.RevAdj[id]
}

// Dependents returns the IDs of tasks that depend on the given task.
func (g *Graph) Dependents(id string) []string {
	return g.Adj[id]
}

// Size returns the number of tasks in the graph.
func (g *Graph) Size() int {
	return len(g.Nodes)
}

// SerialDuration returns the sum of all task durations, the time the
// pipeline would take with no parallelism at all.
func (g *Graph) SerialDuration() float64 {
	var total float64
	for _, n := range g.Nodes {
		total += n.Duration
	}
	return total
}

// addEdge records a deduplicated edge and keeps both adjacency maps in sync.
func (g *Graph) addEdge(seen map[task.Edge]bool, from, to string) {
	e := task.Edge{From: from, To: to}
	if seen[e] {
		return
	}
	seen[e] = true
	g.Edges = append(g.Edges, e)
	g.Adj[from] = append(g.Adj[from], to)
	g.RevAdj[to] = append(g.RevAdj[to], from)
}

// finish sorts adjacency lists for deterministic traversal and computes the
// entry and exit sets.
func (g *Graph) finish() {
	for k := range g.Adj {
		sort.Strings(g.Adj[k])
	}
	for k := range g.RevAdj {
		sort.Strings(g.RevAdj[k])
	}

	for id := range g.Nodes {
		if len(g.RevAdj[id]) == 0 {
			g.Entry = append(g.Entry, id)
		}
		if len(g.Adj[id]) == 0 {
			g.Exit = append(g.Exit, id)
		}
	}
	sort.Strings(g.Entry)
	sort.Strings(g.Exit)
}

func newGraph() *Graph {
	return &Graph{
		Nodes:  make(map[string]*task.Node),
		Adj:    make(map[string][]string),
		RevAdj: make(map[string][]string),
	}
}

// sortedIDs returns all node IDs in lexical order, for deterministic
// iteration over the node map.
func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func duplicateIDError(id string) error {
	return fmt.Errorf("duplicate task id %q", id)
}
