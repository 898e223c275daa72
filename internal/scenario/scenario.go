// Package scenario loads pathfinding scenarios from HCL: named points with
// weights, scene obstacles, and the path queries to run against them. Query
// start/goal accept either literal [x, y, z] tuples or references to
// declared points (point.<name>) evaluated through a cty context.
package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/Oseday/node-pathfinder/internal/geom"
	"github.com/Oseday/node-pathfinder/internal/scene"
	"github.com/Oseday/node-pathfinder/internal/vgraph"
)

// Scenario is the decoded, evaluated form of one scenario file.
type Scenario struct {
	Names     []string
	Points    []geom.Vec3
	Weights   []float64
	Obstacles []scene.Obstacle
	Queries   []Query
}

// Query is one path request declared in the file. Truncate is nil when the
// query does not set it, letting the caller supply a default.
type Query struct {
	Name     string
	Start    geom.Vec3
	Goal     geom.Vec3
	Truncate *bool
	Filter   vgraph.Filter
}

type pointBlock struct {
	Name     string         `hcl:"name,label"`
	Position hcl.Expression `hcl:"position"`
	Weight   *float64       `hcl:"weight,optional"`
}

type obstacleBlock struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type sphereBody struct {
	Center  hcl.Expression `hcl:"center"`
	Radius  float64        `hcl:"radius"`
	Classes []string       `hcl:"classes,optional"`
}

type boxBody struct {
	Min     hcl.Expression `hcl:"min"`
	Max     hcl.Expression `hcl:"max"`
	Classes []string       `hcl:"classes,optional"`
}

type queryBlock struct {
	Name     string         `hcl:"name,label"`
	Start    hcl.Expression `hcl:"start"`
	Goal     hcl.Expression `hcl:"goal"`
	Truncate *bool          `hcl:"truncate,optional"`
	Filters  []string       `hcl:"filters,optional"`
}

type rootSchema struct {
	Points    []*pointBlock    `hcl:"point,block"`
	Obstacles []*obstacleBlock `hcl:"obstacle,block"`
	Queries   []*queryBlock    `hcl:"query,block"`
}

// Load parses and evaluates the scenario file at path.
func Load(path string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}
	return decode(file.Body)
}

// LoadBytes parses and evaluates scenario source held in memory; filename
// only labels diagnostics.
func LoadBytes(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Scenario, error) {
	var root rootSchema
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario: %w", diags)
	}

	sc := &Scenario{}

	// Points evaluate first, with no context: positions must be literal
	// tuples. Their values then become the point.<name> variables every
	// later expression may reference.
	seen := make(map[string]bool, len(root.Points))
	vars := make(map[string]cty.Value, len(root.Points))
	for _, p := range root.Points {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate point %q", p.Name)
		}
		seen[p.Name] = true

		pos, err := vecFromExpr(p.Position, nil)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", p.Name, err)
		}
		weight := 1.0
		if p.Weight != nil {
			weight = *p.Weight
		}
		sc.Names = append(sc.Names, p.Name)
		sc.Points = append(sc.Points, pos)
		sc.Weights = append(sc.Weights, weight)
		vars[p.Name] = cty.TupleVal([]cty.Value{
			cty.NumberFloatVal(pos.X),
			cty.NumberFloatVal(pos.Y),
			cty.NumberFloatVal(pos.Z),
		})
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"point": cty.ObjectVal(vars)},
	}

	for _, ob := range root.Obstacles {
		obstacle, err := decodeObstacle(ob, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("obstacle %q: %w", ob.Name, err)
		}
		sc.Obstacles = append(sc.Obstacles, obstacle)
	}

	for _, q := range root.Queries {
		query, err := decodeQuery(q, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", q.Name, err)
		}
		sc.Queries = append(sc.Queries, query)
	}
	return sc, nil
}

func decodeObstacle(ob *obstacleBlock, ctx *hcl.EvalContext) (scene.Obstacle, error) {
	switch ob.Kind {
	case "sphere":
		var body sphereBody
		if diags := gohcl.DecodeBody(ob.Body, ctx, &body); diags.HasErrors() {
			return nil, fmt.Errorf("%w", diags)
		}
		center, err := vecFromExpr(body.Center, ctx)
		if err != nil {
			return nil, err
		}
		classes, err := parseClasses(body.Classes)
		if err != nil {
			return nil, err
		}
		return &scene.Sphere{Center: center, Radius: body.Radius, Class: classes}, nil
	case "box":
		var body boxBody
		if diags := gohcl.DecodeBody(ob.Body, ctx, &body); diags.HasErrors() {
			return nil, fmt.Errorf("%w", diags)
		}
		min, err := vecFromExpr(body.Min, ctx)
		if err != nil {
			return nil, err
		}
		max, err := vecFromExpr(body.Max, ctx)
		if err != nil {
			return nil, err
		}
		classes, err := parseClasses(body.Classes)
		if err != nil {
			return nil, err
		}
		return &scene.Box{Min: min, Max: max, Class: classes}, nil
	default:
		return nil, fmt.Errorf("unknown obstacle kind %q (want sphere or box)", ob.Kind)
	}
}

func decodeQuery(q *queryBlock, ctx *hcl.EvalContext) (Query, error) {
	start, err := vecFromExpr(q.Start, ctx)
	if err != nil {
		return Query{}, fmt.Errorf("start: %w", err)
	}
	goal, err := vecFromExpr(q.Goal, ctx)
	if err != nil {
		return Query{}, fmt.Errorf("goal: %w", err)
	}
	filter, err := parseFilters(q.Filters)
	if err != nil {
		return Query{}, err
	}
	return Query{
		Name:     q.Name,
		Start:    start,
		Goal:     goal,
		Filter:   filter,
		Truncate: q.Truncate,
	}, nil
}

// vecFromExpr evaluates an expression to a 3-component vector. It accepts
// anything convertible to a list of numbers: literal tuples and point
// references alike.
func vecFromExpr(expr hcl.Expression, ctx *hcl.EvalContext) (geom.Vec3, error) {
	value, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return geom.Vec3{}, fmt.Errorf("%w", diags)
	}
	value, err := convert.Convert(value, cty.List(cty.Number))
	if err != nil {
		return geom.Vec3{}, fmt.Errorf("expected a [x, y, z] tuple: %w", err)
	}
	var coords []float64
	if err := gocty.FromCtyValue(value, &coords); err != nil {
		return geom.Vec3{}, fmt.Errorf("expected numeric components: %w", err)
	}
	if len(coords) != 3 {
		return geom.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(coords))
	}
	return geom.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func parseClasses(names []string) (scene.Classes, error) {
	if len(names) == 0 {
		return scene.Classes{Solid: true}, nil
	}
	var c scene.Classes
	for _, name := range names {
		switch name {
		case "solid":
			c.Solid = true
		case "water":
			c.Water = true
		case "blacklist":
			c.Blacklist = true
		default:
			return scene.Classes{}, fmt.Errorf("unknown obstacle class %q", name)
		}
	}
	return c, nil
}

func parseFilters(names []string) (vgraph.Filter, error) {
	if len(names) == 0 {
		return vgraph.DefaultFilter, nil
	}
	var f vgraph.Filter
	for _, name := range names {
		switch name {
		case "collision":
			f.Collision = true
		case "water":
			f.Water = true
		case "blacklist":
			f.Blacklist = true
		default:
			return vgraph.Filter{}, fmt.Errorf("unknown query filter %q", name)
		}
	}
	return f, nil
}
