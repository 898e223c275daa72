package vgraph

import "github.com/Oseday/node-pathfinder/internal/geom"

// Filter selects which obstacle classes a line-of-sight query honors. The
// graph core treats it as opaque; the oracle decides what each flag means.
type Filter struct {
	Collision bool
	Water     bool
	Blacklist bool
}

// DefaultFilter honors solid geometry only.
var DefaultFilter = Filter{Collision: true}

// Oracle answers line-of-sight queries between two positions. Obstructed
// must be safe for concurrent use; graph construction calls it from many
// workers at once.
type Oracle interface {
	Obstructed(from, to geom.Vec3, f Filter) bool
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(from, to geom.Vec3, f Filter) bool

func (fn OracleFunc) Obstructed(from, to geom.Vec3, f Filter) bool {
	return fn(from, to, f)
}
