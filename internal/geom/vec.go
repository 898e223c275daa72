// Package geom holds the small amount of 3D vector math the pathfinding
// packages share: distances, dot products, and clamped scalar projection
// onto a segment.
package geom

import "math"

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// LengthSq returns the squared length of v, avoiding the sqrt.
func (v Vec3) LengthSq() float64 {
	return v.Dot(v)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec3) Dist(o Vec3) float64 {
	return o.Sub(v).Length()
}

// Unit returns v normalized to length 1. The zero vector is returned
// unchanged so callers comparing directions get a harmless zero dot product
// instead of NaNs.
func (v Vec3) Unit() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// ProjectOnSegment projects p onto the segment starting at origin with
// direction rel, clamping the scalar projection to [0,1], and returns the
// closest point on the segment. A zero-length segment yields its origin.
func ProjectOnSegment(p, origin, rel Vec3) Vec3 {
	lsq := rel.LengthSq()
	if lsq == 0 {
		return origin
	}
	t := p.Sub(origin).Dot(rel) / lsq
	t = math.Max(0, math.Min(1, t))
	return origin.Add(rel.Scale(t))
}
