package dag

import "fmt"

// DanglingDependencyError indicates a spec declared a dependency on an ID
// that does not resolve to any built node.
type DanglingDependencyError struct {
	TaskID       string
	DependencyID string
}

func (e *DanglingDependencyError) Error() string {
	return fmt.Sprintf("task %q depends on unknown task %q", e.TaskID, e.DependencyID)
}

// CycleError indicates a circular dependency. NodeID names the node at which
// the cycle was detected.
type CycleError struct {
	NodeID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected at task %q", e.NodeID)
}
