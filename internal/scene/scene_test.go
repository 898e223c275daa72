package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Oseday/node-pathfinder/internal/geom"
	"github.com/Oseday/node-pathfinder/internal/vgraph"
)

func TestSphere_Blocks(t *testing.T) {
	t.Parallel()

	s := &Sphere{Center: geom.Vec3{X: 5}, Radius: 1, Class: Classes{Solid: true}}

	t.Run("segment through the sphere", func(t *testing.T) {
		assert.True(t, s.Blocks(geom.Vec3{X: 0}, geom.Vec3{X: 10}))
	})
	t.Run("segment passing beside it", func(t *testing.T) {
		assert.False(t, s.Blocks(geom.Vec3{X: 0, Y: 2}, geom.Vec3{X: 10, Y: 2}))
	})
	t.Run("segment ending before it", func(t *testing.T) {
		assert.False(t, s.Blocks(geom.Vec3{X: 0}, geom.Vec3{X: 3}))
	})
	t.Run("endpoint inside it", func(t *testing.T) {
		assert.True(t, s.Blocks(geom.Vec3{X: 0}, geom.Vec3{X: 4.5}))
	})
}

func TestBox_Blocks(t *testing.T) {
	t.Parallel()

	b := &Box{
		Min:   geom.Vec3{X: 4, Y: -1, Z: -1},
		Max:   geom.Vec3{X: 6, Y: 1, Z: 1},
		Class: Classes{Solid: true},
	}

	t.Run("segment through the box", func(t *testing.T) {
		assert.True(t, b.Blocks(geom.Vec3{X: 0}, geom.Vec3{X: 10}))
	})
	t.Run("segment above the box", func(t *testing.T) {
		assert.False(t, b.Blocks(geom.Vec3{X: 0, Z: 5}, geom.Vec3{X: 10, Z: 5}))
	})
	t.Run("axis-parallel segment inside the slab", func(t *testing.T) {
		assert.True(t, b.Blocks(geom.Vec3{X: 5, Y: -3}, geom.Vec3{X: 5, Y: 3}))
	})
	t.Run("segment stopping short", func(t *testing.T) {
		assert.False(t, b.Blocks(geom.Vec3{X: 0}, geom.Vec3{X: 2}))
	})
}

func TestScene_FilterClasses(t *testing.T) {
	t.Parallel()

	water := &Sphere{Center: geom.Vec3{X: 5}, Radius: 1, Class: Classes{Water: true}}
	solid := &Sphere{Center: geom.Vec3{X: 5, Y: 10}, Radius: 1, Class: Classes{Solid: true}}
	s := New(water, solid)

	from, to := geom.Vec3{X: 0}, geom.Vec3{X: 10}

	assert.False(t, s.Obstructed(from, to, vgraph.Filter{Collision: true}),
		"water obstacle must not block a collision-only query")
	assert.True(t, s.Obstructed(from, to, vgraph.Filter{Collision: true, Water: true}),
		"water obstacle blocks once the filter includes water")
	assert.False(t, s.Obstructed(from, to, vgraph.Filter{}),
		"empty filter matches no obstacle class")
}
