package graph

import (
	"cmp"
	"slices"

	"github.com/paulmach/osm"

	osmparser "parbfs/pkg/osm"
)

// Edge is a directed edge between two compact node indices.
type Edge struct {
	From uint32
	To   uint32
}

// Build creates a CSR Graph with both outgoing and incoming adjacency from
// an edge list over nodes [0, numNodes). Self-loops and duplicate edges are
// dropped; neither changes hop distances. Edges referencing nodes outside
// the range are a caller bug and panic on the index.
func Build(numNodes uint32, edges []Edge) *Graph {
	if numNodes == 0 {
		return &Graph{FirstOut: []uint32{0}, FirstIn: []uint32{0}}
	}

	// Step 1: Sort edges by source, then target, so duplicates are adjacent.
	sorted := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.From != e.To {
			sorted = append(sorted, e)
		}
	}
	slices.SortFunc(sorted, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	sorted = slices.Compact(sorted)

	numEdges := uint32(len(sorted))
	firstOut := make([]uint32, numNodes+1)
	head := make([]uint32, numEdges)
	firstIn := make([]uint32, numNodes+1)
	tail := make([]uint32, numEdges)

	// Step 2: Count degrees in both directions.
	for i, e := range sorted {
		head[i] = e.To
		firstOut[e.From+1]++
		firstIn[e.To+1]++
	}

	// Step 3: Prefix sums.
	for i := uint32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
		firstIn[i] += firstIn[i-1]
	}

	// Step 4: Place reverse edges. Iterating in source order keeps each
	// incoming list sorted by source.
	pos := make([]uint32, numNodes)
	copy(pos, firstIn[:numNodes])
	for _, e := range sorted {
		tail[pos[e.To]] = e.From
		pos[e.To]++
	}

	return &Graph{
		NumNodes: numNodes,
		NumEdges: numEdges,
		FirstOut: firstOut,
		Head:     head,
		FirstIn:  firstIn,
		Tail:     tail,
	}
}

// FromOSM creates a Graph from parsed OSM edges, remapping OSM node IDs to
// compact indices in order of first appearance and carrying coordinates.
func FromOSM(result *osmparser.ParseResult) *Graph {
	if len(result.Edges) == 0 {
		return Build(0, nil)
	}

	// Collect all unique node IDs and build a compact mapping.
	nodeSet := make(map[osm.NodeID]uint32)
	var nodeIDs []osm.NodeID

	addNode := func(id osm.NodeID) uint32 {
		if idx, ok := nodeSet[id]; ok {
			return idx
		}
		idx := uint32(len(nodeIDs))
		nodeSet[id] = idx
		nodeIDs = append(nodeIDs, id)
		return idx
	}

	edges := make([]Edge, len(result.Edges))
	for i, e := range result.Edges {
		edges[i] = Edge{From: addNode(e.FromNodeID), To: addNode(e.ToNodeID)}
	}

	g := Build(uint32(len(nodeIDs)), edges)

	g.NodeLat = make([]float64, g.NumNodes)
	g.NodeLon = make([]float64, g.NumNodes)
	for idx, id := range nodeIDs {
		g.NodeLat[idx] = result.NodeLat[id]
		g.NodeLon[idx] = result.NodeLon[id]
	}
	return g
}
