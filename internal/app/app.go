package app

import (
	"io"
	"log/slog"

	"github.com/vk/taskgrid/internal/engine"
	"github.com/vk/taskgrid/internal/executor"
	"github.com/vk/taskgrid/internal/hcl"
	"github.com/vk/taskgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	loader   *hcl.Loader
	engine   *engine.Engine
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Passing a nil registry installs the built-in simulation handlers.
func NewApp(outW io.Writer, cfg *Config, reg *registry.Registry) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if reg == nil {
		reg = simulationRegistry(newSimulator(cfg.Seed, cfg.FailTasks))
		logger.Debug("Simulation handlers registered.", "roles", len(reg.Roles()))
	}

	eng := engine.New(
		engine.WithExecutorOptions(executor.WithMaxParallel(cfg.Workers)),
	)

	return &App{
		outW:     outW,
		logger:   logger,
		loader:   hcl.NewLoader(),
		engine:   eng,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
