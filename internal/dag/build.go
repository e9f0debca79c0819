package dag

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/ident"
	"github.com/vk/taskgrid/internal/task"
)

// Build constructs a validated Graph from an ordered sequence of task specs.
//
// Specs without an ID are assigned one from ids. Explicit dependencies are
// linked first, then the role gating table wires implicit pipeline-order
// dependencies for specs that did not declare them. Build fails with a
// DanglingDependencyError if a dependency does not resolve to any spec, and
// with a CycleError if the linked graph is not acyclic.
func Build(ctx context.Context, specs []task.Spec, ids ident.Generator) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "spec_count", len(specs))

	g := newGraph()

	// First pass: create all nodes, assigning IDs where missing. Input order
	// matters later for implicit gating, so remember it.
	order := make([]string, 0, len(specs))
	for i := range specs {
		spec := specs[i]
		if spec.ID == "" {
			spec.ID = ids.NewID()
			logger.Debug("Build: assigned generated task id.", "id", spec.ID, "name", spec.Name)
		}
		if _, exists := g.Nodes[spec.ID]; exists {
			return nil, duplicateIDError(spec.ID)
		}
		if spec.Duration < 0 {
			return nil, fmt.Errorf("task %q has negative duration %v", spec.ID, spec.Duration)
		}
		g.Nodes[spec.ID] = &task.Node{
			ID:        spec.ID,
			Name:      spec.Name,
			Role:      spec.Role,
			Duration:  spec.Duration,
			DependsOn: append([]string(nil), spec.DependsOn...),
			Params:    spec.Params,
			Status:    task.StatusPending,
		}
		order = append(order, spec.ID)
	}
	logger.Debug("Build: node creation complete.", "node_count", len(g.Nodes))

	// Second pass: wire implicit role-based dependencies onto the nodes
	// before any edges are materialized.
	applyGating(ctx, g, order)

	// Third pass: link every dependency as an edge.
	seen := make(map[task.Edge]bool)
	for _, id := range order {
		n := g.Nodes[id]
		for _, depID := range n.DependsOn {
			if _, ok := g.Nodes[depID]; !ok {
				return nil, &DanglingDependencyError{TaskID: id, DependencyID: depID}
			}
			g.addEdge(seen, depID, id)
		}
	}
	g.finish()
	logger.Debug("Build: node linking complete.", "edge_count", len(g.Edges))

	// Reject malformed pipelines before anything is committed to them.
	if _, err := TopoSort(g); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: cycle validation passed.")

	return g, nil
}
