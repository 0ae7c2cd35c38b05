package graph

import "math/rand/v2"

// Chain returns the directed path 0 -> 1 -> ... -> n-1.
func Chain(n uint32) *Graph {
	edges := make([]Edge, 0, max(n, 1)-1)
	for i := uint32(1); i < n; i++ {
		edges = append(edges, Edge{From: i - 1, To: i})
	}
	return Build(n, edges)
}

// Complete returns the complete directed graph on n nodes without self-loops.
func Complete(n uint32) *Graph {
	edges := make([]Edge, 0, int(n)*int(max(n, 1)-1))
	for u := range n {
		for v := range n {
			if u != v {
				edges = append(edges, Edge{From: u, To: v})
			}
		}
	}
	return Build(n, edges)
}

// Star returns a graph where node 0 points at nodes 1..n-1.
func Star(n uint32) *Graph {
	edges := make([]Edge, 0, max(n, 1)-1)
	for v := uint32(1); v < n; v++ {
		edges = append(edges, Edge{From: 0, To: v})
	}
	return Build(n, edges)
}

// Grid returns a w×h grid with edges in both directions between
// horizontally and vertically adjacent cells. Node (x, y) has index y*w+x.
func Grid(w, h uint32) *Graph {
	var edges []Edge
	for y := range h {
		for x := range w {
			id := y*w + x
			if x+1 < w {
				edges = append(edges, Edge{From: id, To: id + 1}, Edge{From: id + 1, To: id})
			}
			if y+1 < h {
				edges = append(edges, Edge{From: id, To: id + w}, Edge{From: id + w, To: id})
			}
		}
	}
	return Build(w*h, edges)
}

// Uniform returns a random directed graph with n nodes and n*degree edges
// whose endpoints are drawn uniformly. The same seed yields the same graph.
func Uniform(n, degree uint32, seed uint64) *Graph {
	if n == 0 {
		return Build(0, nil)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	edges := make([]Edge, 0, int(n)*int(degree))
	for range int(n) * int(degree) {
		edges = append(edges, Edge{From: rng.Uint32N(n), To: rng.Uint32N(n)})
	}
	return Build(n, edges)
}

// RMAT returns a recursive-matrix graph with 2^scale nodes and
// edgeFactor*2^scale edges, using the Graph500 quadrant probabilities
// (0.57, 0.19, 0.19, 0.05). Degrees follow a skewed power-law shape.
func RMAT(scale, edgeFactor uint32, seed uint64) *Graph {
	const a, b, c = 0.57, 0.19, 0.19

	n := uint32(1) << scale
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	numEdges := int(n) * int(edgeFactor)
	edges := make([]Edge, 0, numEdges)

	for range numEdges {
		var u, v uint32
		for bit := range scale {
			r := rng.Float64()
			switch {
			case r < a:
			case r < a+b:
				v |= 1 << bit
			case r < a+b+c:
				u |= 1 << bit
			default:
				u |= 1 << bit
				v |= 1 << bit
			}
		}
		edges = append(edges, Edge{From: u, To: v})
	}
	return Build(n, edges)
}
