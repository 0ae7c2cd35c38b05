package bfs

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// pool runs data-parallel loops on a fixed number of workers. Each loop is
// one parallel region; run returns once every worker has finished.
type pool struct {
	workers int
	scratch [][]uint32 // per-worker buffers reused across loops
}

func newPool(workers int) *pool {
	return &pool{
		workers: workers,
		scratch: make([][]uint32, workers),
	}
}

// run splits [0, n) into chunks of size chunk and hands them to workers
// through a shared cursor until the range is exhausted. body receives the
// worker index and the chunk bounds.
func (p *pool) run(n, chunk int, body func(worker, lo, hi int)) {
	if n <= 0 {
		return
	}
	numChunks := (n + chunk - 1) / chunk
	workers := min(p.workers, numChunks)

	if workers <= 1 {
		for lo := 0; lo < n; lo += chunk {
			body(0, lo, min(lo+chunk, n))
		}
		return
	}

	var cursor atomic.Int64
	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			for {
				c := int(cursor.Add(1) - 1)
				if c >= numChunks {
					return nil
				}
				lo := c * chunk
				body(w, lo, min(lo+chunk, n))
			}
		})
	}
	_ = g.Wait()
}
