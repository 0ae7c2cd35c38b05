package graph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parbfs/pkg/graph"
)

func TestBinaryRoundTrip(t *testing.T) {
	original := graph.RMAT(8, 4, 1)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.graph.bin")

	require.NoError(t, graph.WriteBinary(path, original))

	loaded, err := graph.ReadBinary(path)
	require.NoError(t, err)

	assert.Equal(t, original.NumNodes, loaded.NumNodes)
	assert.Equal(t, original.NumEdges, loaded.NumEdges)
	assert.Equal(t, original.FirstOut, loaded.FirstOut)
	assert.Equal(t, original.Head, loaded.Head)
	assert.Equal(t, original.FirstIn, loaded.FirstIn)
	assert.Equal(t, original.Tail, loaded.Tail)
	assert.Empty(t, loaded.NodeLat)
	assert.False(t, loaded.HasCoordinates())

	// The temporary file is renamed away.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestBinaryRoundTripWithCoordinates(t *testing.T) {
	original := graph.Chain(3)
	original.NodeLat = []float64{1.0, 1.1, 1.2}
	original.NodeLon = []float64{103.0, 103.1, 103.2}

	path := filepath.Join(t.TempDir(), "coords.graph.bin")
	require.NoError(t, graph.WriteBinary(path, original))

	loaded, err := graph.ReadBinary(path)
	require.NoError(t, err)
	assert.True(t, loaded.HasCoordinates())
	assert.Equal(t, original.NodeLat, loaded.NodeLat)
	assert.Equal(t, original.NodeLon, loaded.NodeLon)
}

func TestBinaryEmptyGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.graph.bin")
	require.NoError(t, graph.WriteBinary(path, graph.Build(0, nil)))

	loaded, err := graph.ReadBinary(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), loaded.NumNodes)
	assert.Equal(t, []uint32{0}, loaded.FirstOut)
}

func TestBinaryRejectsInvalidGraph(t *testing.T) {
	g := graph.Chain(3)
	g.Head[0] = 9

	err := graph.WriteBinary(filepath.Join(t.TempDir(), "bad.graph.bin"), g)
	assert.ErrorIs(t, err, graph.ErrInvalidCSR)
}

func TestBinaryCorruptedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.graph.bin")
	require.NoError(t, graph.WriteBinary(path, graph.Chain(16)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Flip a byte past the header, before the trailer.
	data[len(data)-8] ^= 0xff
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = graph.ReadBinary(path)
	assert.ErrorContains(t, err, "CRC32 mismatch")
}

func TestBinaryInvalidMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.graph.bin")
	require.NoError(t, os.WriteFile(path, []byte("NOT_PARBFS_HEADER_BLAH_BLAH_BLAH_MORE_DATA"), 0644))

	_, err := graph.ReadBinary(path)
	assert.ErrorContains(t, err, "invalid magic")
}

func TestBinaryTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.graph.bin")
	require.NoError(t, os.WriteFile(path, []byte("PARBFSGR"), 0644))

	_, err := graph.ReadBinary(path)
	assert.Error(t, err)
}

func TestBinaryMissingFile(t *testing.T) {
	_, err := graph.ReadBinary(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
