// Package query answers traversal requests against a loaded graph: it
// resolves the root vertex, runs the requested strategy and caches distance
// buffers by root so repeated queries are served without a new traversal.
package query

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/maypok86/otter/v2"
	"github.com/maypok86/otter/v2/stats"
	"github.com/rs/zerolog"

	"parbfs/pkg/bfs"
	"parbfs/pkg/graph"
)

var (
	// ErrRootOutOfRange is returned when the requested root is not a vertex.
	ErrRootOutOfRange = errors.New("root vertex out of range")
	// ErrTargetOutOfRange is returned when a requested target is not a vertex.
	ErrTargetOutOfRange = errors.New("target vertex out of range")
)

// entryOverhead approximates the bookkeeping cost of one cached result.
const entryOverhead = 256

// LatLng represents a geographic coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// Request describes one traversal. Root takes precedence over Near; when
// neither is set the traversal starts at vertex 0.
type Request struct {
	Strategy bfs.Strategy
	Root     *uint32
	Near     *LatLng
	Targets  []uint32
}

// TargetDistance is the hop distance to one requested vertex.
type TargetDistance struct {
	Vertex   uint32
	Distance int32 // bfs.NotVisited when unreachable
}

// Reached reports whether the vertex has a finite distance.
func (t TargetDistance) Reached() bool {
	return t.Distance != bfs.NotVisited
}

// Response is the outcome of a traversal request.
type Response struct {
	Root    uint32
	Snap    *SnapResult // set when the root came from Near
	Result  bfs.Result  // statistics of the traversal that produced the distances
	Targets []TargetDistance
	Cached  bool
}

// Traverser is the interface for traversal queries.
type Traverser interface {
	Traverse(ctx context.Context, req Request) (*Response, error)
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	Options        []bfs.Option // worker and chunk settings applied to every traversal
	CacheMaxWeight uint64       // bytes of distance buffers to keep; 0 disables caching
	CacheTTL       time.Duration
	Logger         zerolog.Logger
	Observe        func(bfs.Result) // called after every traversal that ran
}

// Stats describes the loaded graph and cache usage.
type Stats struct {
	NumNodes       uint32
	NumEdges       uint32
	HasCoordinates bool
	CacheEntries   int
	CacheHits      uint64
	CacheMisses    uint64
}

type cached struct {
	dist   []int32
	result bfs.Result
	seq    uint64 // value of Engine.seq when the load finished
}

// Engine implements Traverser over a single immutable graph.
type Engine struct {
	g       *graph.Graph
	snapper *Snapper
	cache   *otter.Cache[uint32, *cached]
	counter *stats.Counter
	seq     atomic.Uint64
	cfg     EngineConfig
}

// NewEngine creates a traversal engine for g.
func NewEngine(g *graph.Graph, cfg EngineConfig) (*Engine, error) {
	e := &Engine{g: g, cfg: cfg}
	if g.HasCoordinates() {
		e.snapper = NewSnapper(g)
	}
	if cfg.CacheMaxWeight > 0 {
		e.counter = stats.NewCounter()
		opts := &otter.Options[uint32, *cached]{
			MaximumWeight: cfg.CacheMaxWeight,
			StatsRecorder: e.counter,
			Weigher: func(_ uint32, c *cached) uint32 {
				return uint32(min(uint64(len(c.dist))*4+entryOverhead, math.MaxUint32))
			},
		}
		if cfg.CacheTTL > 0 {
			opts.ExpiryCalculator = otter.ExpiryWriting[uint32, *cached](cfg.CacheTTL)
		}
		cache, err := otter.New(opts)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		e.cache = cache
	}
	return e, nil
}

// Traverse resolves the root, then returns the distances to the requested
// targets, running a traversal unless the root's distances are cached.
// Strategies produce identical distances, so a cached result may report
// the strategy of an earlier request.
func (e *Engine) Traverse(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &Response{}
	switch {
	case req.Root != nil:
		resp.Root = *req.Root
	case req.Near != nil:
		if e.snapper == nil {
			return nil, ErrNoCoordinates
		}
		snap, err := e.snapper.Snap(req.Near.Lat, req.Near.Lng)
		if err != nil {
			return nil, err
		}
		resp.Root = snap.Node
		resp.Snap = &snap
	}
	if resp.Root >= e.g.NumNodes {
		return nil, fmt.Errorf("%w: %d (graph has %d vertices)", ErrRootOutOfRange, resp.Root, e.g.NumNodes)
	}
	for _, t := range req.Targets {
		if t >= e.g.NumNodes {
			return nil, fmt.Errorf("%w: %d (graph has %d vertices)", ErrTargetOutOfRange, t, e.g.NumNodes)
		}
	}

	c, hit, err := e.distances(ctx, resp.Root, req.Strategy)
	if err != nil {
		return nil, err
	}
	resp.Result = c.result
	resp.Cached = hit
	resp.Targets = make([]TargetDistance, len(req.Targets))
	for i, t := range req.Targets {
		resp.Targets[i] = TargetDistance{Vertex: t, Distance: c.dist[t]}
	}
	return resp, nil
}

// distances returns the distance buffer for root. Concurrent misses on the
// same root share one traversal, and every caller that waited on it reports
// a miss: only buffers loaded before the call began count as hits.
func (e *Engine) distances(ctx context.Context, root uint32, s bfs.Strategy) (*cached, bool, error) {
	if e.cache == nil {
		return e.run(root, s), false, nil
	}

	ticket := e.seq.Add(1)
	c, err := e.cache.Get(ctx, root, otter.LoaderFunc[uint32, *cached](func(ctx context.Context, root uint32) (*cached, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := e.run(root, s)
		c.seq = e.seq.Add(1)
		return c, nil
	}))
	if err != nil {
		return nil, false, err
	}
	return c, c.seq < ticket, nil
}

func (e *Engine) run(root uint32, s bfs.Strategy) *cached {
	dist := make([]int32, e.g.NumNodes)
	opts := append([]bfs.Option{bfs.WithLogger(e.cfg.Logger)}, e.cfg.Options...)
	opts = append(opts, bfs.WithRoot(root))
	res := bfs.Run(e.g, dist, s, opts...)

	e.cfg.Logger.Debug().
		Uint32("root", root).
		Str("strategy", s.String()).
		Int("reached", res.Reached).
		Int32("max_distance", res.MaxDistance).
		Dur("elapsed", res.Elapsed).
		Msg("traversal complete")
	if e.cfg.Observe != nil {
		e.cfg.Observe(res)
	}
	return &cached{dist: dist, result: res}
}

// Stats returns graph and cache statistics.
func (e *Engine) Stats() Stats {
	st := Stats{
		NumNodes:       e.g.NumNodes,
		NumEdges:       e.g.NumEdges,
		HasCoordinates: e.g.HasCoordinates(),
	}
	if e.cache != nil {
		cs := e.counter.Snapshot()
		st.CacheEntries = e.cache.EstimatedSize()
		st.CacheHits = cs.Hits
		st.CacheMisses = cs.Misses
	}
	return st
}

// Purge drops every cached distance buffer.
func (e *Engine) Purge() {
	if e.cache != nil {
		e.cache.InvalidateAll()
	}
}
