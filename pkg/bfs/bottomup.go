package bfs

import "sync/atomic"

// bottomUpStep finds every unvisited vertex with a parent on the current
// level by scanning incoming edges, and collects them into next.
//
// Vertices are split into disjoint chunks, so each distance slot written
// here has a single writer. Loads and stores are still atomic because
// other workers read the same slots as parents. The first qualifying parent
// ends the scan.
func (t *traversal) bottomUpStep(next *Frontier) {
	g := t.g
	dist := t.dist
	level := t.level
	onDiscover := t.opts.onDiscover
	scratch := t.pool.scratch

	t.pool.run(int(g.NumNodes), t.opts.bottomUpChunk, func(w, lo, hi int) {
		found := scratch[w][:0]
		for v := uint32(lo); v < uint32(hi); v++ {
			if atomic.LoadInt32(&dist[v]) != NotVisited {
				continue
			}
			start, end := g.EdgesTo(v)
			for _, u := range g.Tail[start:end] {
				if atomic.LoadInt32(&dist[u]) != level {
					continue
				}
				atomic.StoreInt32(&dist[v], level+1)
				found = append(found, v)
				if onDiscover != nil {
					onDiscover(v, level+1)
				}
				break
			}
		}
		next.AppendBatch(found)
		scratch[w] = found
	})
}
