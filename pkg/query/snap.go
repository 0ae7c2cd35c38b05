package query

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"parbfs/pkg/geo"
	"parbfs/pkg/graph"
)

const maxSnapDistMeters = 500.0

var (
	// ErrPointTooFar is returned when no vertex lies within snapping range.
	ErrPointTooFar = errors.New("point too far from any vertex")
	// ErrNoCoordinates is returned when snapping on a graph without coordinates.
	ErrNoCoordinates = errors.New("graph has no vertex coordinates")
)

// SnapResult is the vertex nearest to a query point.
type SnapResult struct {
	Node uint32
	Dist float64 // meters from the query point
}

// Snapper finds the nearest vertex to a coordinate using an R-tree over
// vertex positions.
type Snapper struct {
	tree rtree.RTreeG[uint32]
	g    *graph.Graph
}

// NewSnapper indexes every vertex of g. g must carry coordinates.
func NewSnapper(g *graph.Graph) *Snapper {
	s := &Snapper{g: g}
	for v := uint32(0); v < g.NumNodes; v++ {
		pt := [2]float64{g.NodeLat[v], g.NodeLon[v]}
		s.tree.Insert(pt, pt, v)
	}
	return s
}

// Snap returns the vertex closest to (lat, lng) within maxSnapDistMeters.
// Ties resolve to the lower vertex index.
func (s *Snapper) Snap(lat, lng float64) (SnapResult, error) {
	minLat, minLon, maxLat, maxLon := geo.Envelope(lat, lng, maxSnapDistMeters)

	best := SnapResult{Dist: math.Inf(1)}
	s.tree.Search([2]float64{minLat, minLon}, [2]float64{maxLat, maxLon},
		func(_, _ [2]float64, v uint32) bool {
			// Cheap filter before the exact distance.
			if geo.EquirectangularDist(lat, lng, s.g.NodeLat[v], s.g.NodeLon[v]) > 2*maxSnapDistMeters {
				return true
			}
			d := geo.Haversine(lat, lng, s.g.NodeLat[v], s.g.NodeLon[v])
			if d < best.Dist || (d == best.Dist && v < best.Node) {
				best = SnapResult{Node: v, Dist: d}
			}
			return true
		})

	if best.Dist > maxSnapDistMeters {
		return SnapResult{}, ErrPointTooFar
	}
	return best, nil
}
