package bfs

import "sync/atomic"

// Frontier is a fixed-capacity set of vertex ids that many workers can
// append to at once. Slots are handed out by an atomic counter, so appends
// never overwrite each other and leave no gaps.
type Frontier struct {
	vertices []uint32
	count    atomic.Int64
}

// NewFrontier returns a Frontier that can hold capacity vertices.
func NewFrontier(capacity int) *Frontier {
	f := &Frontier{}
	f.Reset(capacity)
	return f
}

// Reset allocates storage for capacity vertices and empties the frontier.
func (f *Frontier) Reset(capacity int) {
	f.vertices = make([]uint32, capacity)
	f.count.Store(0)
}

// Clear empties the frontier, keeping its storage.
func (f *Frontier) Clear() {
	f.count.Store(0)
}

// Append adds v. Safe for concurrent use.
func (f *Frontier) Append(v uint32) {
	i := f.count.Add(1) - 1
	f.vertices[i] = v
}

// AppendBatch adds all of vs in one contiguous block. Safe for concurrent use.
func (f *Frontier) AppendBatch(vs []uint32) {
	if len(vs) == 0 {
		return
	}
	end := f.count.Add(int64(len(vs)))
	copy(f.vertices[end-int64(len(vs)):end], vs)
}

// Len returns the number of vertices in the frontier.
func (f *Frontier) Len() int {
	return int(f.count.Load())
}

// Cap returns the number of vertices the frontier can hold.
func (f *Frontier) Cap() int {
	return len(f.vertices)
}

// Vertices returns the populated prefix of the frontier. The slice aliases
// the frontier's storage and is only valid until the next Clear.
func (f *Frontier) Vertices() []uint32 {
	return f.vertices[:f.count.Load()]
}
