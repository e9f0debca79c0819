package task

// Role is the semantic category of a task. The registry maps each role to
// the executor function that performs its work, and the graph builder uses
// roles to wire conventional pipeline-order dependencies.
type Role string

const (
	// RoleGenerate produces new work output (for example, code generation).
	RoleGenerate Role = "generate"
	// RoleReview inspects the output of an earlier generation task.
	RoleReview Role = "review"
	// RoleVerify checks the reviewed or generated output (tests, validation).
	RoleVerify Role = "verify"
	// RoleDeploy ships verified output.
	RoleDeploy Role = "deploy"
	// RoleObserve watches a deployment after the fact.
	RoleObserve Role = "observe"
)

// Roles returns all built-in roles in conventional pipeline order.
func Roles() []Role {
	return []Role{RoleGenerate, RoleReview, RoleVerify, RoleDeploy, RoleObserve}
}

// Status is the execution state of a single task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Spec describes one declared unit of work before graph construction.
// Dependencies reference the IDs of prior specs in the same pipeline.
type Spec struct {
	// ID uniquely identifies the task. If empty, the graph builder assigns
	// one from its injected ID generator.
	ID string
	// Name is the human-readable label for the task.
	Name string
	// Role is the semantic category used for executor lookup and implicit
	// dependency wiring.
	Role Role
	// Duration is the estimated duration in abstract time units. Must be
	// non-negative.
	Duration float64
	// DependsOn lists the IDs of tasks that must settle before this one runs.
	DependsOn []string
	// Params carries opaque, executor-specific parameters.
	Params map[string]any
}

// Node is a task inside a built graph. Identity fields are fixed at build
// time. Status, Result and Err are written only by the executor during a
// run; stage layering guarantees at most one goroutine touches a given node
// at a time.
type Node struct {
	ID        string
	Name      string
	Role      Role
	Duration  float64
	DependsOn []string
	Params    map[string]any

	Status Status
	Result any
	Err    error
}

// Edge is a directed dependency: To depends on From. Edges carry no state of
// their own; they are derived from node dependency lists.
type Edge struct {
	From string
	To   string
}
