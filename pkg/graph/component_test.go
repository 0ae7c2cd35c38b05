package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind(5)
	for i := range uint32(5) {
		assert.Equal(t, i, uf.Find(i))
		assert.Equal(t, uint32(1), uf.Size(i))
	}

	assert.True(t, uf.Union(0, 1))
	assert.True(t, uf.Union(2, 3))
	assert.Equal(t, uf.Find(0), uf.Find(1))
	assert.Equal(t, uf.Find(2), uf.Find(3))
	assert.NotEqual(t, uf.Find(0), uf.Find(2))

	assert.True(t, uf.Union(1, 3))
	assert.Equal(t, uf.Find(0), uf.Find(3))
	assert.Equal(t, uint32(4), uf.Size(2))
	assert.False(t, uf.Union(0, 2), "already in the same set")
	assert.Equal(t, uint32(1), uf.Size(4))
}

func TestComponents(t *testing.T) {
	// {0,1,2}, {3,4}, {5}
	g := Build(6, []Edge{{0, 1}, {2, 1}, {3, 4}})
	assert.Equal(t, ComponentStats{Count: 3, Largest: 3}, Components(g))

	assert.Equal(t, ComponentStats{}, Components(Build(0, nil)))
	assert.Equal(t, ComponentStats{Count: 1, Largest: 10}, Components(Chain(10)))
}

func TestLargestComponent(t *testing.T) {
	// Component 1: 0 <-> 1 <-> 2 (3 nodes)
	// Component 2: 3 <-> 4 (2 nodes)
	// Node 5 is isolated.
	g := Build(6, []Edge{
		{0, 1}, {1, 0}, {1, 2}, {2, 1},
		{3, 4}, {4, 3},
	})
	assert.Equal(t, []uint32{0, 1, 2}, LargestComponent(g))
}

func TestLargestComponentIgnoresDirection(t *testing.T) {
	// 0 -> 1 <- 2 is weakly connected even though 2 is unreachable from 0.
	g := Build(4, []Edge{{0, 1}, {2, 1}})
	assert.Equal(t, []uint32{0, 1, 2}, LargestComponent(g))
}

func TestLargestComponentTieGoesToLowestVertex(t *testing.T) {
	g := Build(4, []Edge{{3, 2}, {1, 0}})
	assert.Equal(t, []uint32{0, 1}, LargestComponent(g))
}

func TestFilterToComponent(t *testing.T) {
	// Component 1: triangle 0 -> 1 -> 2 -> 0
	// Component 2: isolated pair 3 -> 4
	g := Build(5, []Edge{{0, 1}, {1, 2}, {2, 0}, {3, 4}})
	g.NodeLat = []float64{1.0, 1.1, 1.2, 2.0, 2.1}
	g.NodeLon = []float64{103.0, 103.1, 103.2, 104.0, 104.1}

	filtered := FilterToComponent(g, LargestComponent(g))

	require.Equal(t, uint32(3), filtered.NumNodes)
	require.Equal(t, uint32(3), filtered.NumEdges)
	require.NoError(t, filtered.Validate())
	assert.Equal(t, []float64{1.0, 1.1, 1.2}, filtered.NodeLat)
	assert.Equal(t, []float64{103.0, 103.1, 103.2}, filtered.NodeLon)

	for u := range filtered.NumNodes {
		assert.Equal(t, uint32(1), filtered.OutDegree(u), "node %d", u)
		assert.Equal(t, uint32(1), filtered.InDegree(u), "node %d", u)
	}
}

func TestFilterToComponentRenumbers(t *testing.T) {
	g := Build(4, []Edge{{2, 3}, {3, 0}, {1, 2}})
	filtered := FilterToComponent(g, []uint32{3, 2})

	require.Equal(t, uint32(2), filtered.NumNodes)
	// Only 2 -> 3 survives, which becomes 1 -> 0.
	assert.Equal(t, []uint32{0, 0, 1}, filtered.FirstOut)
	assert.Equal(t, []uint32{0}, filtered.Head)
	assert.Equal(t, []uint32{0, 1, 1}, filtered.FirstIn)
	assert.Equal(t, []uint32{1}, filtered.Tail)
	assert.False(t, filtered.HasCoordinates())
}

func TestFilterToComponentEmptyGraph(t *testing.T) {
	g := Build(0, nil)
	assert.Nil(t, LargestComponent(g))

	filtered := FilterToComponent(g, nil)
	assert.Zero(t, filtered.NumNodes)
	assert.Zero(t, filtered.NumEdges)
	require.NoError(t, filtered.Validate())
}
