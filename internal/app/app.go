package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sugipamo/project-cph-sub010/internal/builder"
	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
	"github.com/sugipamo/project-cph-sub010/internal/graph"
	"github.com/sugipamo/project-cph-sub010/internal/planfile"
	"github.com/sugipamo/project-cph-sub010/internal/registry"
	"github.com/sugipamo/project-cph-sub010/internal/request"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: the loaded plan, the execution graph built from it, the
// per-node requests and the driver registry.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	plan     *planfile.Plan
	graph    *graph.Graph
	requests map[string]*request.Request
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and
// registry. Startup failures are fatal and panic; the entrypoint recovers
// them into a clean exit message.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	plan, err := planfile.Load(ctx, cfg.PlanPath)
	if err != nil {
		panic(fmt.Errorf("failed to load plan: %w", err))
	}
	logger.Debug("Plan loaded.", "plan", plan.Name, "steps", len(plan.Steps))

	g, requests, err := builder.Build(plan.Steps)
	if err != nil {
		panic(fmt.Errorf("failed to build execution graph: %w", err))
	}
	logger.Debug("Execution graph built.", "nodes", g.Len(), "edges", len(g.Edges()))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All driver modules registered.", "count", len(modules))

	// A plan that uses a request type with no driver must die here, not
	// halfway through execution.
	if err := reg.Validate(ctx, plan.StepTypes()); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		plan:     plan,
		graph:    g,
		requests: requests,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Graph returns the built execution graph. This is primarily for testing.
func (a *App) Graph() *graph.Graph {
	return a.graph
}
