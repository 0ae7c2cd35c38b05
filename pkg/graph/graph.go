package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidCSR is returned when a graph's adjacency arrays violate the CSR invariants.
var ErrInvalidCSR = errors.New("invalid CSR graph")

// Graph represents an unweighted directed graph in CSR (Compressed Sparse Row) format.
// Both directions are stored so traversals can scan outgoing or incoming edges.
type Graph struct {
	NumNodes uint32
	NumEdges uint32
	FirstOut []uint32 // len: NumNodes + 1; FirstOut[i]..FirstOut[i+1] are edges from node i
	Head     []uint32 // len: NumEdges; target node for each outgoing edge
	FirstIn  []uint32 // len: NumNodes + 1; FirstIn[i]..FirstIn[i+1] are edges into node i
	Tail     []uint32 // len: NumEdges; source node for each incoming edge

	// Optional node coordinates, present for graphs imported from OSM.
	NodeLat []float64 // len: NumNodes or 0
	NodeLon []float64 // len: NumNodes or 0
}

// EdgesFrom returns the range of Head indices for edges originating from node u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// EdgesTo returns the range of Tail indices for edges ending at node v.
func (g *Graph) EdgesTo(v uint32) (start, end uint32) {
	return g.FirstIn[v], g.FirstIn[v+1]
}

// OutDegree returns the number of outgoing edges of u.
func (g *Graph) OutDegree(u uint32) uint32 {
	return g.FirstOut[u+1] - g.FirstOut[u]
}

// InDegree returns the number of incoming edges of v.
func (g *Graph) InDegree(v uint32) uint32 {
	return g.FirstIn[v+1] - g.FirstIn[v]
}

// HasCoordinates reports whether every node carries a lat/lon pair.
func (g *Graph) HasCoordinates() bool {
	return g.NumNodes > 0 && uint32(len(g.NodeLat)) == g.NumNodes && uint32(len(g.NodeLon)) == g.NumNodes
}

// Validate checks the CSR invariants of both adjacency directions and that
// they describe the same number of edges.
func (g *Graph) Validate() error {
	if err := validateCSR(g.FirstOut, g.Head, g.NumNodes); err != nil {
		return fmt.Errorf("%w: outgoing: %v", ErrInvalidCSR, err)
	}
	if err := validateCSR(g.FirstIn, g.Tail, g.NumNodes); err != nil {
		return fmt.Errorf("%w: incoming: %v", ErrInvalidCSR, err)
	}
	if uint32(len(g.Head)) != g.NumEdges || uint32(len(g.Tail)) != g.NumEdges {
		return fmt.Errorf("%w: NumEdges %d, len(Head) %d, len(Tail) %d",
			ErrInvalidCSR, g.NumEdges, len(g.Head), len(g.Tail))
	}
	if len(g.NodeLat) != len(g.NodeLon) {
		return fmt.Errorf("%w: NodeLat/NodeLon length mismatch %d != %d", ErrInvalidCSR, len(g.NodeLat), len(g.NodeLon))
	}
	return nil
}

// validateCSR checks CSR invariants.
func validateCSR(firstOut, head []uint32, numNodes uint32) error {
	if uint32(len(firstOut)) != numNodes+1 {
		return fmt.Errorf("offsets length %d != NumNodes+1 %d", len(firstOut), numNodes+1)
	}
	if firstOut[0] != 0 {
		return fmt.Errorf("offsets[0]=%d, want 0", firstOut[0])
	}
	numEdges := firstOut[numNodes]
	if uint32(len(head)) != numEdges {
		return fmt.Errorf("edges length %d != offsets[NumNodes] %d", len(head), numEdges)
	}
	for i := uint32(1); i <= numNodes; i++ {
		if firstOut[i] < firstOut[i-1] {
			return fmt.Errorf("offsets not monotonic at %d: %d < %d", i, firstOut[i], firstOut[i-1])
		}
	}
	for i, h := range head {
		if h >= numNodes {
			return fmt.Errorf("edges[%d]=%d >= NumNodes=%d", i, h, numNodes)
		}
	}
	return nil
}
