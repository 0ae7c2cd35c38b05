package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerators(t *testing.T) {
	tests := []struct {
		name      string
		g         *Graph
		wantNodes uint32
		wantEdges uint32
	}{
		{"chain", Chain(5), 5, 4},
		{"chain single", Chain(1), 1, 0},
		{"chain empty", Chain(0), 0, 0},
		{"complete", Complete(4), 4, 12},
		{"star", Star(6), 6, 5},
		{"grid", Grid(3, 2), 6, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.g.Validate())
			assert.Equal(t, tt.wantNodes, tt.g.NumNodes)
			assert.Equal(t, tt.wantEdges, tt.g.NumEdges)
		})
	}
}

func TestUniformDeterministic(t *testing.T) {
	a := Uniform(200, 4, 42)
	b := Uniform(200, 4, 42)
	c := Uniform(200, 4, 43)

	require.NoError(t, a.Validate())
	assert.Equal(t, uint32(200), a.NumNodes)
	assert.LessOrEqual(t, a.NumEdges, uint32(800))
	assert.Equal(t, a.Head, b.Head)
	assert.NotEqual(t, a.Head, c.Head)
}

func TestRMATShape(t *testing.T) {
	g := RMAT(10, 8, 7)

	require.NoError(t, g.Validate())
	assert.Equal(t, uint32(1024), g.NumNodes)
	assert.LessOrEqual(t, g.NumEdges, uint32(8*1024))

	// The quadrant skew puts the highest out-degree at node 0.
	var best uint32
	for u := range g.NumNodes {
		best = max(best, g.OutDegree(u))
	}
	assert.Equal(t, best, g.OutDegree(0))
}
