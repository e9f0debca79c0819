package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/runctx"
	"github.com/vk/taskgrid/internal/task"
)

// simUnit is the wall-clock length of one abstract duration unit when
// simulating a run, kept short so CLI runs finish quickly.
const simUnit = 25 * time.Millisecond

// simulator provides the built-in executor for every role: it sleeps a
// jittered, scaled duration, fails the task IDs it was told to fail, and
// emits a synthetic output. With a fixed seed the jitter is deterministic.
type simulator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	fail map[string]bool
}

func newSimulator(seed int64, failTasks []string) *simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fail := make(map[string]bool, len(failTasks))
	for _, id := range failTasks {
		fail[id] = true
	}
	return &simulator{
		rng:  rand.New(rand.NewSource(seed)),
		fail: fail,
	}
}

// jitter returns a multiplier in [0.8, 1.2).
func (s *simulator) jitter() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 0.8 + 0.4*s.rng.Float64()
}

func (s *simulator) execute(ctx context.Context, n *task.Node, scope *runctx.Scope) (any, error) {
	logger := ctxlog.FromContext(ctx)

	sleep := time.Duration(n.Duration * s.jitter() * float64(simUnit))
	select {
	case <-time.After(sleep):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if s.fail[n.ID] {
		return nil, fmt.Errorf("simulated failure of task %q", n.ID)
	}

	// Touch dependency outputs the way a real executor would consume them.
	consumed := 0
	for _, depID := range n.DependsOn {
		if _, ok := scope.Dependency(depID); ok {
			consumed++
		}
	}
	logger.Debug("Simulated task finished.", "task", n.ID, "consumed_outputs", consumed)

	return map[string]any{
		"task":    n.ID,
		"role":    string(n.Role),
		"message": fmt.Sprintf("%s %s done", n.Role, n.Name),
	}, nil
}

// simulationRegistry registers the simulator for every built-in role.
// Pipelines using roles outside that set fail registry validation before any
// task runs.
func simulationRegistry(sim *simulator) *registry.Registry {
	reg := registry.New()
	for _, role := range task.Roles() {
		reg.Register(role, sim.execute)
	}
	return reg
}
