package app

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/ctxlog"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	specs, err := a.loader.Load(ctx, cfg.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}
	a.logger.Info("Pipeline loaded.", "tasks", len(specs))

	if cfg.PlanOnly {
		report, err := a.engine.Execute(ctx, specs, nil, nil)
		if err != nil {
			return err
		}
		a.renderPlan(report)
		return nil
	}

	a.logger.Info("Starting staged execution.")
	report, err := a.engine.Execute(ctx, specs, a.registry, nil)
	if err != nil {
		return err
	}
	a.renderPlan(report)
	a.renderResult(report)
	a.logger.Info("Execution finished.", "status", report.Result.Status)

	a.logger.Debug("App.Run method finished.")
	return nil
}
