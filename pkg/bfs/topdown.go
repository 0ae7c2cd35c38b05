package bfs

import (
	"sync/atomic"

	"parbfs/pkg/graph"
)

// topDownStep expands frontier along outgoing edges into next.
//
// Many frontier vertices may share a neighbor, so the neighbor's slot is
// claimed with a compare-and-swap from NotVisited. The winner appends it;
// losers move on. A failed swap needs no retry because the slot is already
// final.
func (t *traversal) topDownStep(frontier, next *Frontier) {
	g := t.g
	dist := t.dist
	onDiscover := t.opts.onDiscover
	verts := frontier.Vertices()

	t.pool.run(len(verts), t.opts.topDownChunk, func(_, lo, hi int) {
		for _, u := range verts[lo:hi] {
			d := atomic.LoadInt32(&dist[u]) + 1
			start, end := g.EdgesFrom(u)
			for _, v := range g.Head[start:end] {
				if !atomic.CompareAndSwapInt32(&dist[v], NotVisited, d) {
					continue
				}
				next.Append(v)
				if onDiscover != nil {
					onDiscover(v, d)
				}
			}
		}
	})
}

// outEdges sums the out-degrees of the frontier. Used for reporting only.
func outEdges(g *graph.Graph, f *Frontier) int {
	var n int
	for _, u := range f.Vertices() {
		n += int(g.OutDegree(u))
	}
	return n
}
