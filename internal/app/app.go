package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Oseday/node-pathfinder/internal/scenario"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	scenario *scenario.Scenario
	registry *prometheus.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and metrics
// registry.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	sc, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		// A failure to load the scenario is a fatal startup error.
		panic(fmt.Errorf("failed to load scenario: %w", err))
	}
	logger.Debug("Scenario loaded.",
		"points", len(sc.Points), "obstacles", len(sc.Obstacles), "queries", len(sc.Queries))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		scenario: sc,
		registry: prometheus.NewRegistry(),
	}
}

// Scenario returns the loaded scenario. This is primarily for testing.
func (a *App) Scenario() *scenario.Scenario {
	return a.scenario
}
