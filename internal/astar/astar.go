// Package astar computes least-cost node sequences through a visibility
// graph. Costs come from the graph's weighted segments; the heuristic is the
// Euclidean distance between node origins.
package astar

import (
	"math"

	"github.com/Oseday/node-pathfinder/internal/vgraph"
)

// FindPath returns the node id sequence from start to goal, inclusive, or an
// empty sequence when the goal is unreachable (disconnected graph); how to
// handle "no path" is the caller's policy. The open set is scanned linearly
// for the minimum f-score: node counts here stay small enough that a heap
// buys nothing. Ties keep the earliest-opened node, which makes the result
// deterministic for a deterministic graph.
func FindPath(g vgraph.Graph, start, goal int) []int {
	if start == goal {
		if _, ok := g[start]; ok {
			return []int{start}
		}
		return nil
	}
	goalOrigin, ok := g.Origin(goal)
	if !ok {
		return nil
	}
	startOrigin, ok := g.Origin(start)
	if !ok {
		return nil
	}

	open := []int{start}
	inOpen := map[int]bool{start: true}
	gScore := map[int]float64{start: 0}
	fScore := map[int]float64{start: startOrigin.Dist(goalOrigin)}
	cameFrom := make(map[int]int)

	for len(open) > 0 {
		// Linear scan; strict < keeps the earliest-opened node on ties.
		bestIdx := 0
		bestF := math.Inf(1)
		for i, id := range open {
			if f := fScore[id]; f < bestF {
				bestF = f
				bestIdx = i
			}
		}
		current := open[bestIdx]
		if current == goal {
			return reconstruct(cameFrom, start, goal)
		}
		open = append(open[:bestIdx], open[bestIdx+1:]...)
		delete(inOpen, current)

		for _, seg := range g[current].Segments {
			tentative := gScore[current] + seg.Cost
			if prev, seen := gScore[seg.To]; seen && tentative >= prev {
				continue
			}
			gScore[seg.To] = tentative
			h := 0.0
			if origin, ok := g.Origin(seg.To); ok {
				h = origin.Dist(goalOrigin)
			}
			fScore[seg.To] = tentative + h
			cameFrom[seg.To] = current
			if !inOpen[seg.To] {
				inOpen[seg.To] = true
				open = append(open, seg.To)
			}
		}
	}
	return nil
}

func reconstruct(cameFrom map[int]int, start, goal int) []int {
	path := []int{goal}
	for current := goal; current != start; {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
