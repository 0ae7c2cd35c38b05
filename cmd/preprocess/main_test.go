package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parbfs/pkg/graph"
)

func TestParseBBox(t *testing.T) {
	minLat, minLng, maxLat, maxLng, err := parseBBox("1.15, 103.6, 1.48, 104.1")
	require.NoError(t, err)
	assert.Equal(t, [4]float64{1.15, 103.6, 1.48, 104.1}, [4]float64{minLat, minLng, maxLat, maxLng})

	_, _, _, _, err = parseBBox("1,2,3")
	assert.Error(t, err)
	_, _, _, _, err = parseBBox("2,0,1,1")
	assert.ErrorContains(t, err, "minimum exceeds maximum")
}

func TestSaveBinaryLargestComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	g := graph.Build(6, []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 4, To: 5}})

	require.NoError(t, save(g, outputOptions{path: path, format: "binary", largestComponent: true}, zerolog.Nop()))

	loaded, err := graph.ReadBinary(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), loaded.NumNodes)
	assert.Equal(t, uint32(3), loaded.NumEdges)
}

func TestSaveEdgeList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, save(graph.Chain(3), outputOptions{path: path, format: "edgelist"}, zerolog.Nop()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# nodes 3 edges 2\n0 1\n1 2\n", string(data))
}
