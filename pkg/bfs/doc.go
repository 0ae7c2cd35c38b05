// Package bfs computes single-source hop distances over a graph.Graph with a
// level-synchronous parallel breadth-first search.
//
// Three strategies share one driver loop:
//
//   - TopDown expands the current frontier along outgoing edges. Workers race
//     to claim each neighbor with a compare-and-swap on its distance slot, so
//     every vertex has exactly one discoverer.
//   - BottomUp scans every unvisited vertex's incoming edges and stops at the
//     first parent on the current level. Each vertex is written only by the
//     worker that owns its chunk.
//   - Hybrid picks TopDown while the frontier holds fewer than half of the
//     vertices and BottomUp otherwise, re-deciding at every level.
//
// The caller owns the distance buffer. Every strategy leaves identical
// distances in it; only the order of vertices inside a frontier differs.
package bfs
