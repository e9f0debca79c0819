package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/dag"
	"github.com/vk/taskgrid/internal/ident"
	"github.com/vk/taskgrid/internal/runctx"
	"github.com/vk/taskgrid/internal/task"
)

func noop(context.Context, *task.Node, *runctx.Scope) (any, error) {
	return nil, nil
}

func buildGraph(t *testing.T, specs ...task.Spec) *dag.Graph {
	t.Helper()
	g, err := dag.Build(context.Background(), specs, ident.Sequential("task"))
	require.NoError(t, err)
	return g
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register(task.RoleGenerate, noop)

	_, ok := r.Handler(task.RoleGenerate)
	assert.True(t, ok)
	_, ok = r.Handler(task.RoleReview)
	assert.False(t, ok)
}

func TestRegistry_RolesSorted(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register(task.RoleVerify, noop)
	r.Register(task.RoleGenerate, noop)

	assert.Equal(t, []task.Role{task.RoleGenerate, task.RoleVerify}, r.Roles())
}

func TestValidate_AllRolesCovered(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register(task.RoleGenerate, noop)
	g := buildGraph(t,
		task.Spec{ID: "a", Role: task.RoleGenerate, Duration: 1},
	)

	assert.NoError(t, r.Validate(g))
}

func TestValidate_MissingRoles(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register(task.RoleGenerate, noop)
	g := buildGraph(t,
		task.Spec{ID: "a", Role: task.RoleGenerate, Duration: 1},
		task.Spec{ID: "b", Role: task.RoleReview, Duration: 1},
		task.Spec{ID: "c", Role: task.RoleVerify, Duration: 1},
	)

	err := r.Validate(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "review, verify")
}
