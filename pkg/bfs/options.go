package bfs

import (
	"runtime"

	"github.com/rs/zerolog"
)

const (
	// DefaultTopDownChunk is the number of frontier vertices a worker claims
	// at a time. Out-degree varies widely, so chunks stay small.
	DefaultTopDownChunk = 64
	// DefaultBottomUpChunk is the number of vertices a worker claims at a
	// time in a bottom-up step.
	DefaultBottomUpChunk = 1024

	initChunk = 1 << 16
)

// Option configures a traversal.
type Option func(*options)

type options struct {
	workers       int
	topDownChunk  int
	bottomUpChunk int
	root          uint32
	onStep        func(StepInfo)
	onDiscover    func(v uint32, dist int32)
	logger        zerolog.Logger
}

func defaultOptions() options {
	return options{
		workers:       runtime.GOMAXPROCS(0),
		topDownChunk:  DefaultTopDownChunk,
		bottomUpChunk: DefaultBottomUpChunk,
		logger:        zerolog.Nop(),
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers sets the number of worker goroutines per step.
// Values below 1 keep the default of GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithTopDownChunk sets how many frontier vertices a worker claims at once.
func WithTopDownChunk(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.topDownChunk = n
		}
	}
}

// WithBottomUpChunk sets how many vertices a worker scans per claim in a
// bottom-up step.
func WithBottomUpChunk(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.bottomUpChunk = n
		}
	}
}

// WithRoot starts the traversal from v instead of vertex 0.
func WithRoot(v uint32) Option {
	return func(o *options) {
		o.root = v
	}
}

// WithOnStep registers a callback run on the driver goroutine after each
// level, with the step that was selected for it.
func WithOnStep(fn func(StepInfo)) Option {
	return func(o *options) {
		o.onStep = fn
	}
}

// WithOnDiscover registers a callback run after every distance write,
// including the root's. It is called concurrently from worker goroutines.
func WithOnDiscover(fn func(v uint32, dist int32)) Option {
	return func(o *options) {
		o.onDiscover = fn
	}
}

// WithLogger enables a debug event per level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
