// Package scene is a concrete spatial oracle: a static set of obstacles
// answering segment line-of-sight queries. Each obstacle belongs to one or
// more classes (solid, water, blacklisted); a query's filter decides which
// classes obstruct it. The graph core only ever sees the vgraph.Oracle
// interface.
package scene

import (
	"github.com/Oseday/node-pathfinder/internal/geom"
	"github.com/Oseday/node-pathfinder/internal/vgraph"
)

// Classes tags an obstacle with the query classes it participates in.
type Classes struct {
	Solid     bool
	Water     bool
	Blacklist bool
}

func (c Classes) matches(f vgraph.Filter) bool {
	return (c.Solid && f.Collision) || (c.Water && f.Water) || (c.Blacklist && f.Blacklist)
}

// Obstacle is a piece of scene geometry that can block a segment.
type Obstacle interface {
	Classes() Classes
	Blocks(a, b geom.Vec3) bool
}

// Scene is an immutable obstacle set implementing vgraph.Oracle. Queries are
// read-only and safe from any number of workers.
type Scene struct {
	obstacles []Obstacle
}

// New builds a scene over the given obstacles.
func New(obstacles ...Obstacle) *Scene {
	return &Scene{obstacles: obstacles}
}

// Obstructed reports whether any obstacle matching the filter blocks the
// segment from one position to the other.
func (s *Scene) Obstructed(from, to geom.Vec3, f vgraph.Filter) bool {
	for _, o := range s.obstacles {
		if o.Classes().matches(f) && o.Blocks(from, to) {
			return true
		}
	}
	return false
}

// Sphere is a spherical obstacle.
type Sphere struct {
	Center geom.Vec3
	Radius float64
	Class  Classes
}

func (s *Sphere) Classes() Classes { return s.Class }

// Blocks reports whether the segment passes within the sphere's radius.
func (s *Sphere) Blocks(a, b geom.Vec3) bool {
	closest := geom.ProjectOnSegment(s.Center, a, b.Sub(a))
	return s.Center.Dist(closest) < s.Radius
}

// Box is an axis-aligned box obstacle.
type Box struct {
	Min, Max geom.Vec3
	Class    Classes
}

func (b *Box) Classes() Classes { return b.Class }

// Blocks intersects the segment against the box with the slab method,
// clipping the parameter range to [0,1] so only the segment itself counts.
func (b *Box) Blocks(p, q geom.Vec3) bool {
	origin := [3]float64{p.X, p.Y, p.Z}
	dir := [3]float64{q.X - p.X, q.Y - p.Y, q.Z - p.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	tmin, tmax := 0.0, 1.0
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}
