package bfs

import (
	"fmt"
	"time"

	"parbfs/pkg/graph"
)

// TopDown fills dist with hop distances from the root using only top-down
// steps. dist must have length g.NumNodes; its prior contents are ignored.
func TopDown(g *graph.Graph, dist []int32, opts ...Option) Result {
	return Run(g, dist, TopDownStrategy, opts...)
}

// BottomUp fills dist using only bottom-up steps.
func BottomUp(g *graph.Graph, dist []int32, opts ...Option) Result {
	return Run(g, dist, BottomUpStrategy, opts...)
}

// Hybrid fills dist, choosing top-down or bottom-up at every level.
func Hybrid(g *graph.Graph, dist []int32, opts ...Option) Result {
	return Run(g, dist, HybridStrategy, opts...)
}

// Run fills dist with hop distances from the root using strategy s.
//
// The graph must satisfy the CSR invariants (see graph.Graph.Validate) and
// have at least one vertex. A distance buffer of the wrong length or a root
// outside the graph panics before any work starts. Run has no other failure
// mode and always runs to completion.
func Run(g *graph.Graph, dist []int32, s Strategy, opts ...Option) Result {
	t := newTraversal(g, dist, s, newOptions(opts))
	for t.current.Len() > 0 {
		t.expand(s)
	}
	return t.finish()
}

// traversal carries the state of one run: the distance buffer, the two
// frontier buffers and the current level.
type traversal struct {
	g       *graph.Graph
	dist    []int32
	opts    options
	pool    *pool
	current *Frontier
	next    *Frontier
	level   int32
	start   time.Time
	res     Result
}

// newTraversal allocates both frontiers, resets every distance to
// NotVisited and seeds the frontier with the root at level 0.
func newTraversal(g *graph.Graph, dist []int32, s Strategy, o options) *traversal {
	if g.NumNodes == 0 {
		panic("bfs: graph has no vertices")
	}
	if uint32(len(dist)) != g.NumNodes {
		panic(fmt.Sprintf("bfs: distance buffer has length %d, graph has %d vertices", len(dist), g.NumNodes))
	}
	if o.root >= g.NumNodes {
		panic(fmt.Sprintf("bfs: root %d out of range [0, %d)", o.root, g.NumNodes))
	}

	t := &traversal{
		g:       g,
		dist:    dist,
		opts:    o,
		pool:    newPool(o.workers),
		current: NewFrontier(int(g.NumNodes)),
		next:    NewFrontier(int(g.NumNodes)),
		start:   time.Now(),
		res:     Result{Strategy: s, Root: o.root, Reached: 1},
	}

	t.pool.run(len(dist), initChunk, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			dist[i] = NotVisited
		}
	})

	dist[o.root] = 0
	t.current.Append(o.root)
	if o.onDiscover != nil {
		o.onDiscover(o.root, 0)
	}
	return t
}

// expand runs one level: clear next, run the selected step, advance the
// level and swap the frontier roles.
func (t *traversal) expand(s Strategy) {
	step := t.stepFor(s)
	t.next.Clear()

	var edges int
	ev := t.opts.logger.Debug()
	if ev.Enabled() {
		edges = outEdges(t.g, t.current)
	}

	began := time.Now()
	switch step {
	case StepTopDown:
		t.topDownStep(t.current, t.next)
	case StepBottomUp:
		t.bottomUpStep(t.next)
	}

	info := StepInfo{
		Level:        t.level,
		Step:         step,
		FrontierSize: t.current.Len(),
		Discovered:   t.next.Len(),
		Duration:     time.Since(began),
	}
	ev.Int32("depth", info.Level).
		Stringer("step", info.Step).
		Int("frontier", info.FrontierSize).
		Int("frontier_edges", edges).
		Int("discovered", info.Discovered).
		Dur("duration", info.Duration).
		Msg("level complete")

	t.res.Steps = append(t.res.Steps, info)
	t.res.Reached += info.Discovered
	if info.Discovered > 0 {
		t.res.MaxDistance = t.level + 1
	}
	if t.opts.onStep != nil {
		t.opts.onStep(info)
	}

	t.level++
	t.current, t.next = t.next, t.current
}

func (t *traversal) finish() Result {
	t.res.Elapsed = time.Since(t.start)
	return t.res
}
