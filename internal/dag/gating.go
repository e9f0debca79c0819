package dag

import (
	"context"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/task"
)

// gatingRule declares that tasks of a role conventionally gate on an earlier
// pipeline stage. Candidates are tried in order; the first role with an
// earlier occurrence in the pipeline wins.
type gatingRule struct {
	role       task.Role
	candidates []task.Role
}

// gatingRules is the resolution table for implicit dependency wiring. Keeping
// the policy declarative keeps it independently testable and extensible.
var gatingRules = []gatingRule{
	{role: task.RoleReview, candidates: []task.Role{task.RoleGenerate}},
	{role: task.RoleVerify, candidates: []task.Role{task.RoleReview, task.RoleGenerate}},
	{role: task.RoleDeploy, candidates: []task.Role{task.RoleVerify, task.RoleReview}},
	{role: task.RoleObserve, candidates: []task.Role{task.RoleDeploy}},
}

// applyGating wires implicit dependencies for every node whose role appears
// in the gating table. A gate is skipped entirely when the task already
// depends on some task of a candidate role, so explicit wiring always wins
// and no duplicate gates are added. Nodes are processed in pipeline order;
// "nearest earlier" is resolved against that order.
func applyGating(ctx context.Context, g *Graph, order []string) {
	logger := ctxlog.FromContext(ctx)

	for i, id := range order {
		n := g.Nodes[id]
		rule, ok := ruleFor(n.Role)
		if !ok {
			continue
		}
		if dependsOnAnyRole(g, n, rule.candidates) {
			logger.Debug("applyGating: gate already satisfied explicitly.", "task", id, "role", n.Role)
			continue
		}
		if gateID, ok := nearestEarlier(g, order, i, rule.candidates); ok {
			logger.Debug("applyGating: wiring implicit dependency.", "task", id, "gates_on", gateID)
			n.DependsOn = append(n.DependsOn, gateID)
		}
	}
}

func ruleFor(role task.Role) (gatingRule, bool) {
	for _, r := range gatingRules {
		if r.role == role {
			return r, true
		}
	}
	return gatingRule{}, false
}

// dependsOnAnyRole reports whether n already declares a dependency on a task
// of any of the given roles.
func dependsOnAnyRole(g *Graph, n *task.Node, roles []task.Role) bool {
	for _, depID := range n.DependsOn {
		dep, ok := g.Nodes[depID]
		if !ok {
			continue // dangling refs are reported during edge linking
		}
		for _, role := range roles {
			if dep.Role == role {
				return true
			}
		}
	}
	return false
}

// nearestEarlier returns the ID of the closest task before index i whose role
// matches the highest-priority candidate with any earlier occurrence.
func nearestEarlier(g *Graph, order []string, i int, candidates []task.Role) (string, bool) {
	for _, role := range candidates {
		for j := i - 1; j >= 0; j-- {
			if g.Nodes[order[j]].Role == role {
				return order[j], true
			}
		}
	}
	return "", false
}
