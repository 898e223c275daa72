// Package route turns a raw A* node path into a smooth traversable point
// sequence: it projects arbitrary start and goal positions onto the graph,
// removes redundant reflex corners, optionally truncates already-visible
// path ends, and splices the literal start and goal positions onto the
// result.
package route

import (
	"context"
	"time"

	"github.com/Oseday/node-pathfinder/internal/astar"
	"github.com/Oseday/node-pathfinder/internal/ctxlog"
	"github.com/Oseday/node-pathfinder/internal/geom"
	"github.com/Oseday/node-pathfinder/internal/vgraph"
)

// cornerDotThreshold marks a corner as a redundant reflex spike when the
// unit vectors into and out of it are nearly antiparallel.
const cornerDotThreshold = -0.975

// FindPath plans a point path from startPos to goalPos through the
// visibility graph and reports the wall-clock seconds spent. The result
// always begins with the literal startPos and ends with the literal
// goalPos; an empty graph, an unobstructed direct line, or an unreachable
// goal all collapse to the direct two-point path.
func FindPath(ctx context.Context, g vgraph.Graph, oracle vgraph.Oracle, f vgraph.Filter, startPos, goalPos geom.Vec3, truncate bool) ([]geom.Vec3, float64) {
	started := time.Now()
	logger := ctxlog.FromContext(ctx)
	direct := []geom.Vec3{startPos, goalPos}

	finish := func(pts []geom.Vec3) ([]geom.Vec3, float64) {
		elapsed := time.Since(started).Seconds()
		logger.Debug("path planned", "waypoints", len(pts), "elapsed_s", elapsed)
		return pts, elapsed
	}

	if len(g) == 0 {
		return finish(direct)
	}
	if !oracle.Obstructed(startPos, goalPos, f) {
		return finish(direct)
	}

	startID, ok := nearestNode(g, startPos)
	if !ok {
		return finish(direct)
	}
	goalID, ok := nearestNode(g, goalPos)
	if !ok {
		return finish(direct)
	}
	startProj := projectOnNode(g[startID], startPos)
	goalProj := projectOnNode(g[goalID], goalPos)

	ids := astar.FindPath(g, startID, goalID)
	pts := make([]geom.Vec3, 0, len(ids)+4)
	for _, id := range ids {
		if origin, ok := g.Origin(id); ok {
			pts = append(pts, origin)
		}
	}

	switch len(pts) {
	case 0:
		return finish(direct)
	case 1:
		return finish([]geom.Vec3{startPos, startProj, pts[0], goalProj, goalPos})
	}

	// The first waypoint is a redundant reflex corner when reaching it from
	// the start projection immediately doubles back toward the second.
	if antiparallel(pts[0].Sub(startProj), pts[1].Sub(pts[0])) {
		pts = pts[1:]
	}
	pts = append([]geom.Vec3{startProj}, pts...)

	if n := len(pts); n >= 2 && antiparallel(pts[n-1].Sub(goalProj), pts[n-2].Sub(pts[n-1])) {
		pts = pts[:n-1]
	}
	pts = append(pts, goalProj)

	if truncate {
		pts = truncateVisible(oracle, f, startPos, goalPos, pts)
	}

	out := make([]geom.Vec3, 0, len(pts)+2)
	out = append(out, startPos)
	out = append(out, pts...)
	out = append(out, goalPos)
	return finish(out)
}

// nearestNode picks the node whose first segment origin is closest to pos.
// This is not a true nearest-edge search, just the documented approximation;
// nodes without segments carry no position and are skipped.
func nearestNode(g vgraph.Graph, pos geom.Vec3) (int, bool) {
	bestID := 0
	bestDist := 0.0
	found := false
	for id := range g {
		origin, ok := g.Origin(id)
		if !ok {
			continue
		}
		if d := pos.Dist(origin); !found || d < bestDist {
			bestID, bestDist, found = id, d, true
		}
	}
	return bestID, found
}

// projectOnNode projects pos onto the closest of the node's segments.
func projectOnNode(n *vgraph.Node, pos geom.Vec3) geom.Vec3 {
	best := geom.Vec3{}
	bestDist := 0.0
	for i, seg := range n.Segments {
		p := geom.ProjectOnSegment(pos, seg.Origin, seg.Rel)
		if d := pos.Dist(p); i == 0 || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func antiparallel(a, b geom.Vec3) bool {
	return a.Unit().Dot(b.Unit()) < cornerDotThreshold
}

// truncateVisible strips the maximal already-visible run at each end of the
// working path. The last visible point of each run is always kept, so the
// strip never shortcuts past the projection points added above.
func truncateVisible(oracle vgraph.Oracle, f vgraph.Filter, startPos, goalPos geom.Vec3, pts []geom.Vec3) []geom.Vec3 {
	run := 0
	for _, p := range pts {
		if oracle.Obstructed(startPos, p, f) {
			break
		}
		run++
	}
	if run > 1 {
		pts = pts[run-1:]
	}

	run = 0
	for i := len(pts) - 1; i >= 0; i-- {
		if oracle.Obstructed(goalPos, pts[i], f) {
			break
		}
		run++
	}
	if run > 1 {
		pts = pts[:len(pts)-(run-1)]
	}
	return pts
}
