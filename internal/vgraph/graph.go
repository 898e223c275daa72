// Package vgraph builds a visibility graph between spatial points: an edge
// exists between two points exactly when an unobstructed line-of-sight query
// between them succeeds. Construction fans one task per point out over the
// scheduler, so the O(N²) visibility queries run in parallel.
package vgraph

import (
	"github.com/Oseday/node-pathfinder/internal/geom"
)

// Segment is a directed edge owned by one node. Origin and the relative
// vector to the target are stored instead of two endpoints so projection
// math against the segment is O(1).
type Segment struct {
	To     int
	Origin geom.Vec3
	Rel    geom.Vec3
	Length float64
	Cost   float64
}

// Node is the ordered segment list of one point. Segments appear in point
// iteration order, not sorted by anything; consumers must not assume order
// implies proximity.
type Node struct {
	Segments []Segment
}

// Graph maps point index to node.
type Graph map[int]*Node

// Origin reports the position of a node, taken from its first segment.
// A node with no segments has no recoverable position.
func (g Graph) Origin(id int) (geom.Vec3, bool) {
	n, ok := g[id]
	if !ok || len(n.Segments) == 0 {
		return geom.Vec3{}, false
	}
	return n.Segments[0].Origin, true
}
