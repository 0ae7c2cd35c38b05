// Package verify checks traversal output against an independent serial
// breadth-first search.
package verify

import (
	"errors"
	"fmt"
	"strings"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"parbfs/pkg/graph"
)

// ErrDistanceMismatch is returned by Compare when two buffers disagree.
var ErrDistanceMismatch = errors.New("verify: distance mismatch")

// maxReported caps how many mismatching vertices Compare lists.
const maxReported = 10

// unreached mirrors bfs.NotVisited without importing the package under test.
const unreached int32 = -1

// Reference computes hop distances from root with gonum's serial
// breadth-first walk over a copy of g. Unreached vertices get -1.
func Reference(g *graph.Graph, root uint32) []int32 {
	dg := toGonum(g)
	dist := make([]int32, g.NumNodes)
	for i := range dist {
		dist[i] = unreached
	}
	if root >= g.NumNodes {
		return dist
	}

	var bf traverse.BreadthFirst
	bf.Walk(dg, dg.Node(int64(root)), func(n gonumgraph.Node, depth int) bool {
		dist[n.ID()] = int32(depth)
		return false
	})
	return dist
}

// toGonum copies g's outgoing adjacency into a gonum directed graph.
// Self-loops are skipped; gonum rejects them and they never shorten a path.
func toGonum(g *graph.Graph) *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for u := uint32(0); u < g.NumNodes; u++ {
		dg.AddNode(simple.Node(u))
	}
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for _, v := range g.Head[start:end] {
			if v == u {
				continue
			}
			dg.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
		}
	}
	return dg
}

// Mismatch is one vertex whose distances disagree.
type Mismatch struct {
	Vertex uint32
	Got    int32
	Want   int32
}

// Diff returns every vertex where got and want disagree. Buffers of
// different lengths are compared over the shorter prefix.
func Diff(got, want []int32) []Mismatch {
	var out []Mismatch
	for i := range min(len(got), len(want)) {
		if got[i] != want[i] {
			out = append(out, Mismatch{Vertex: uint32(i), Got: got[i], Want: want[i]})
		}
	}
	return out
}

// Compare returns nil when got equals want, or an error wrapping
// ErrDistanceMismatch that lists the first mismatching vertices.
func Compare(got, want []int32) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: length %d, want %d", ErrDistanceMismatch, len(got), len(want))
	}
	diffs := Diff(got, want)
	if len(diffs) == 0 {
		return nil
	}

	var b strings.Builder
	for i, d := range diffs[:min(len(diffs), maxReported)] {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "dist[%d]=%d want %d", d.Vertex, d.Got, d.Want)
	}
	if len(diffs) > maxReported {
		fmt.Fprintf(&b, ", ... (%d more)", len(diffs)-maxReported)
	}
	return fmt.Errorf("%w: %d vertices differ: %s", ErrDistanceMismatch, len(diffs), b.String())
}
