package app

import (
	"context"
	"fmt"

	"github.com/Oseday/node-pathfinder/internal/ctxlog"
	"github.com/Oseday/node-pathfinder/internal/route"
	"github.com/Oseday/node-pathfinder/internal/scene"
	"github.com/Oseday/node-pathfinder/internal/sched"
	"github.com/Oseday/node-pathfinder/internal/vgraph"
)

// Run executes the main application logic: build the visibility graph over
// the scenario's points, then solve and print every declared query.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	scheduler := sched.New(
		sched.WithLogger(a.logger),
		sched.WithGracePeriod(a.config.GracePeriod),
		sched.WithTickInterval(a.config.TickInterval),
		sched.WithMetrics(a.registry),
	)
	defer scheduler.Close()

	oracle := scene.New(a.scenario.Obstacles...)

	a.logger.Info("🚀 Building visibility graph...", "points", len(a.scenario.Points))
	graph, err := vgraph.Build(ctx, scheduler, oracle, vgraph.DefaultFilter, a.scenario.Points, a.scenario.Weights)
	if err != nil {
		return fmt.Errorf("failed to build visibility graph: %w", err)
	}

	for _, q := range a.scenario.Queries {
		truncate := a.config.Truncate
		if q.Truncate != nil {
			truncate = *q.Truncate
		}
		points, elapsed := route.FindPath(ctx, graph, oracle, q.Filter, q.Start, q.Goal, truncate)
		a.logger.Info("Query solved.", "query", q.Name, "waypoints", len(points), "elapsed_s", elapsed)

		fmt.Fprintf(a.outW, "%s (%d points, %.3f ms):\n", q.Name, len(points), elapsed*1000)
		for _, p := range points {
			fmt.Fprintf(a.outW, "  (%g, %g, %g)\n", p.X, p.Y, p.Z)
		}
	}

	a.logger.Info("🏁 All queries finished.", "count", len(a.scenario.Queries))
	return nil
}
