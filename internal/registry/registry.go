// Package registry maps task roles to the executor functions that perform
// their work. The engine never inspects what an executor does; it only
// requires that every role present in a graph has a handler before a run
// starts.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/taskgrid/internal/dag"
	"github.com/vk/taskgrid/internal/runctx"
	"github.com/vk/taskgrid/internal/task"
)

// ExecutorFunc performs the work of a single task. It receives the node and
// a capability scope over the run context, and returns the task's produced
// output or an error. Executors own their own timeouts and retries; the
// engine treats them as opaque.
type ExecutorFunc func(ctx context.Context, n *task.Node, scope *runctx.Scope) (any, error)

// Registry holds the executor function for each role.
type Registry struct {
	handlers map[task.Role]ExecutorFunc
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[task.Role]ExecutorFunc)}
}

// Register binds an executor function to a role, replacing any previous
// binding.
func (r *Registry) Register(role task.Role, fn ExecutorFunc) {
	r.handlers[role] = fn
}

// Handler returns the executor function for a role.
func (r *Registry) Handler(role task.Role) (ExecutorFunc, bool) {
	fn, ok := r.handlers[role]
	return fn, ok
}

// Roles returns the registered roles in sorted order.
func (r *Registry) Roles() []task.Role {
	roles := make([]task.Role, 0, len(r.handlers))
	for role := range r.handlers {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Validate performs a strict parity check between the graph and the
// registry: every role used by a node must have a handler. A miss is a
// structural error and is reported before any task executor is invoked.
func (r *Registry) Validate(g *dag.Graph) error {
	missing := make(map[task.Role]bool)
	for _, n := range g.Nodes {
		if _, ok := r.handlers[n.Role]; !ok {
			missing[n.Role] = true
		}
	}
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for role := range missing {
		names = append(names, string(role))
	}
	sort.Strings(names)
	return fmt.Errorf("no executor registered for role(s): %s", strings.Join(names, ", "))
}
