package hcl

import "github.com/hashicorp/hcl/v2"

// paramsBlock captures the free-form attributes of a task's `params` block.
type paramsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// taskBlock is the HCL schema for one `task "<role>" "<name>"` block.
type taskBlock struct {
	Role      string       `hcl:"role,label"`
	Name      string       `hcl:"name,label"`
	ID        string       `hcl:"id,optional"`
	Duration  float64      `hcl:"duration,optional"`
	DependsOn []string     `hcl:"depends_on,optional"`
	Params    *paramsBlock `hcl:"params,block"`
}

// pipelineConfig is the top-level structure of a pipeline file.
type pipelineConfig struct {
	Tasks []*taskBlock `hcl:"task,block"`
	Body  hcl.Body     `hcl:",remain"`
}
