// Package runctx holds the shared execution context of a run. Every write is
// namespaced by the producing task's ID, and each task executor only ever
// sees a Scope that reads the initial context plus the outputs of its
// declared dependencies. One producer per key therefore holds at the type
// level, not by incidental non-collision.
package runctx

import (
	"sync"

	"github.com/vk/taskgrid/internal/task"
)

// Store is the run-wide context: caller-supplied initial values plus one
// output slot per settled task. It is written concurrently by every task in
// a stage.
type Store struct {
	mu      sync.RWMutex
	initial map[string]any
	outputs map[string]any
}

// NewStore creates a Store seeded with the caller's initial context. The
// initial map is copied; later mutation by the caller has no effect.
func NewStore(initial map[string]any) *Store {
	s := &Store{
		initial: make(map[string]any, len(initial)),
		outputs: make(map[string]any),
	}
	for k, v := range initial {
		s.initial[k] = v
	}
	return s
}

// SetOutput records a task's produced output under its own ID. Only the
// executor calls this, exactly once per completed task.
func (s *Store) SetOutput(taskID string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[taskID] = value
}

// Output returns the output recorded for a task, if any.
func (s *Store) Output(taskID string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.outputs[taskID]
	return v, ok
}

// Outputs returns a copy of every recorded output keyed by producing task ID.
func (s *Store) Outputs() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.outputs))
	for k, v := range s.outputs {
		out[k] = v
	}
	return out
}

// ScopeFor returns the capability handed to the given task's executor: reads
// limited to the initial context and the task's declared dependencies, no
// writes at all.
func (s *Store) ScopeFor(n *task.Node) *Scope {
	deps := make(map[string]struct{}, len(n.DependsOn))
	for _, depID := range n.DependsOn {
		deps[depID] = struct{}{}
	}
	return &Scope{store: s, taskID: n.ID, deps: deps}
}

// Scope is a task executor's read-only view of the run context.
type Scope struct {
	store  *Store
	taskID string
	deps   map[string]struct{}
}

// TaskID returns the ID of the task this scope belongs to.
func (sc *Scope) TaskID() string {
	return sc.taskID
}

// Initial returns a value from the caller-supplied initial context.
func (sc *Scope) Initial(key string) (any, bool) {
	sc.store.mu.RLock()
	defer sc.store.mu.RUnlock()
	v, ok := sc.store.initial[key]
	return v, ok
}

// Dependency returns the output of one of the task's declared dependencies.
// Asking for any other task's output returns false regardless of whether
// that task has settled.
func (sc *Scope) Dependency(depID string) (any, bool) {
	if _, declared := sc.deps[depID]; !declared {
		return nil, false
	}
	return sc.store.Output(depID)
}
