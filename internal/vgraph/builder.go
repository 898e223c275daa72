package vgraph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Oseday/node-pathfinder/internal/ctxlog"
	"github.com/Oseday/node-pathfinder/internal/geom"
	"github.com/Oseday/node-pathfinder/internal/sched"
)

// Build constructs the visibility graph for points, weighting each edge by
// the Euclidean distance times the average of the two endpoint weights. One
// task module per point is invoked through the scheduler; Build waits for
// every invocation before assembling the graph. Edge costs are symmetric by
// construction even though each node owns its own directed segment list.
//
// Mismatched points/weights lengths are a caller contract violation and fail
// fast. Cancelling ctx abandons the build and returns the context error.
func Build(ctx context.Context, s *sched.Scheduler, oracle Oracle, filter Filter, points []geom.Vec3, weights []float64) (Graph, error) {
	if len(points) != len(weights) {
		return nil, fmt.Errorf("vgraph: %d points but %d weights", len(points), len(weights))
	}
	logger := ctxlog.FromContext(ctx)
	started := time.Now()

	nodes := make([]*Node, len(points))
	var wg sync.WaitGroup
	for i := range points {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, results := s.Invoke(ctx, &losTask{
				oracle:  oracle,
				filter:  filter,
				points:  points,
				weights: weights,
				index:   i,
			})
			if ok && len(results) == 1 {
				nodes[i] = &Node{Segments: results[0].([]Segment)}
			}
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("vgraph: build abandoned: %w", err)
	}

	g := make(Graph, len(points))
	edges := 0
	for i, n := range nodes {
		if n == nil {
			n = &Node{}
		}
		g[i] = n
		edges += len(n.Segments)
	}
	logger.Debug("visibility graph built",
		"points", len(points), "edges", edges, "elapsed", time.Since(started))
	return g, nil
}

// losTask is the per-point unit of work: line-of-sight queries from one
// origin point to every other point, emitting a segment per visible pair.
type losTask struct {
	oracle  Oracle
	filter  Filter
	points  []geom.Vec3
	weights []float64
	index   int
}

func (t *losTask) Name() string { return "vgraph.los" }

func (t *losTask) Execute(_ context.Context, _ ...any) []any {
	origin := t.points[t.index]
	var segs []Segment
	for j, p := range t.points {
		if j == t.index {
			continue
		}
		if t.oracle.Obstructed(origin, p, t.filter) {
			continue
		}
		rel := p.Sub(origin)
		length := rel.Length()
		segs = append(segs, Segment{
			To:     j,
			Origin: origin,
			Rel:    rel,
			Length: length,
			Cost:   length * (t.weights[t.index] + t.weights[j]) / 2,
		})
	}
	return []any{segs}
}
