package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// PipelinePath points at a .hcl file or a directory of them.
	PipelinePath string
	// PlanOnly stops after printing the execution plan.
	PlanOnly bool

	LogFormat string
	LogLevel  string
	// Workers caps concurrent tasks per stage; 0 means unbounded.
	Workers int
	// Seed drives the simulation handlers' RNG; 0 picks a time-based seed.
	Seed int64
	// FailTasks lists task IDs the simulation handlers should fail, for
	// rehearsing partial-failure and abort behavior.
	FailTasks []string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("Workers cannot be negative")
	}
	return &cfg, nil
}
