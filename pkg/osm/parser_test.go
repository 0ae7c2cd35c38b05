package osm

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCarAccessible(t *testing.T) {
	tests := []struct {
		name string
		tags osm.Tags
		want bool
	}{
		{
			name: "residential road",
			tags: osm.Tags{{Key: "highway", Value: "residential"}},
			want: true,
		},
		{
			name: "motorway",
			tags: osm.Tags{{Key: "highway", Value: "motorway"}},
			want: true,
		},
		{
			name: "footway (not car accessible)",
			tags: osm.Tags{{Key: "highway", Value: "footway"}},
			want: false,
		},
		{
			name: "cycleway",
			tags: osm.Tags{{Key: "highway", Value: "cycleway"}},
			want: false,
		},
		{
			name: "private access",
			tags: osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "access", Value: "private"},
			},
			want: false,
		},
		{
			name: "no access",
			tags: osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "access", Value: "no"},
			},
			want: false,
		},
		{
			name: "motor_vehicle=no",
			tags: osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "motor_vehicle", Value: "no"},
			},
			want: false,
		},
		{
			name: "area=yes (pedestrian plaza)",
			tags: osm.Tags{
				{Key: "highway", Value: "service"},
				{Key: "area", Value: "yes"},
			},
			want: false,
		},
		{
			name: "service road",
			tags: osm.Tags{{Key: "highway", Value: "service"}},
			want: true,
		},
		{
			name: "living_street",
			tags: osm.Tags{{Key: "highway", Value: "living_street"}},
			want: true,
		},
		{
			name: "no highway tag",
			tags: osm.Tags{{Key: "name", Value: "Some Street"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCarAccessible(tt.tags))
		})
	}
}

func TestDirectionFlags(t *testing.T) {
	tests := []struct {
		name        string
		tags        osm.Tags
		wantForward bool
		wantBackward bool
	}{
		{
			name:        "default bidirectional",
			tags:        osm.Tags{{Key: "highway", Value: "residential"}},
			wantForward: true,
			wantBackward: true,
		},
		{
			name:        "motorway implied oneway",
			tags:        osm.Tags{{Key: "highway", Value: "motorway"}},
			wantForward: true,
			wantBackward: false,
		},
		{
			name:        "motorway_link implied oneway",
			tags:        osm.Tags{{Key: "highway", Value: "motorway_link"}},
			wantForward: true,
			wantBackward: false,
		},
		{
			name:        "roundabout implied oneway",
			tags:        osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "junction", Value: "roundabout"},
			},
			wantForward: true,
			wantBackward: false,
		},
		{
			name:        "explicit oneway=yes",
			tags:        osm.Tags{
				{Key: "highway", Value: "primary"},
				{Key: "oneway", Value: "yes"},
			},
			wantForward: true,
			wantBackward: false,
		},
		{
			name:        "explicit oneway=true",
			tags:        osm.Tags{
				{Key: "highway", Value: "primary"},
				{Key: "oneway", Value: "true"},
			},
			wantForward: true,
			wantBackward: false,
		},
		{
			name:        "explicit oneway=1",
			tags:        osm.Tags{
				{Key: "highway", Value: "primary"},
				{Key: "oneway", Value: "1"},
			},
			wantForward: true,
			wantBackward: false,
		},
		{
			name:        "explicit oneway=-1 (reverse)",
			tags:        osm.Tags{
				{Key: "highway", Value: "primary"},
				{Key: "oneway", Value: "-1"},
			},
			wantForward: false,
			wantBackward: true,
		},
		{
			name:        "explicit oneway=reverse",
			tags:        osm.Tags{
				{Key: "highway", Value: "primary"},
				{Key: "oneway", Value: "reverse"},
			},
			wantForward: false,
			wantBackward: true,
		},
		{
			name:        "explicit oneway=no overrides implied",
			tags:        osm.Tags{
				{Key: "highway", Value: "motorway"},
				{Key: "oneway", Value: "no"},
			},
			wantForward: true,
			wantBackward: true,
		},
		{
			name:        "oneway=reversible skips entirely",
			tags:        osm.Tags{
				{Key: "highway", Value: "primary"},
				{Key: "oneway", Value: "reversible"},
			},
			wantForward: false,
			wantBackward: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fwd, bwd := directionFlags(tt.tags)
			assert.Equal(t, tt.wantForward, fwd, "forward")
			assert.Equal(t, tt.wantBackward, bwd, "backward")
		})
	}
}

func TestIsWalkable(t *testing.T) {
	tests := []struct {
		name string
		tags osm.Tags
		want bool
	}{
		{name: "footway", tags: osm.Tags{{Key: "highway", Value: "footway"}}, want: true},
		{name: "residential", tags: osm.Tags{{Key: "highway", Value: "residential"}}, want: true},
		{name: "motorway", tags: osm.Tags{{Key: "highway", Value: "motorway"}}, want: false},
		{
			name: "foot=no",
			tags: osm.Tags{{Key: "highway", Value: "residential"}, {Key: "foot", Value: "no"}},
			want: false,
		},
		{
			name: "private but foot=yes",
			tags: osm.Tags{{Key: "highway", Value: "service"}, {Key: "access", Value: "private"}, {Key: "foot", Value: "yes"}},
			want: true,
		},
		{
			name: "private",
			tags: osm.Tags{{Key: "highway", Value: "service"}, {Key: "access", Value: "private"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isWalkable(tt.tags))
		})
	}
}

func TestWayFlagsWalkIgnoresOneway(t *testing.T) {
	tags := osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "yes"}}

	fwd, bwd, ok := wayFlags(ProfileWalk, tags)
	assert.True(t, ok)
	assert.True(t, fwd)
	assert.True(t, bwd)

	fwd, bwd, ok = wayFlags(ProfileCar, tags)
	assert.True(t, ok)
	assert.True(t, fwd)
	assert.False(t, bwd)
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("walk")
	require.NoError(t, err)
	assert.Equal(t, ProfileWalk, p)

	p, err = ParseProfile("")
	require.NoError(t, err)
	assert.Equal(t, ProfileCar, p)

	_, err = ParseProfile("boat")
	assert.Error(t, err)
}

func TestWayCollectorAndBuildEdges(t *testing.T) {
	wc := newWayCollector(ProfileCar)

	kept := wc.add(&osm.Way{
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}},
		Tags:  osm.Tags{{Key: "highway", Value: "residential"}},
	})
	require.True(t, kept)

	// One-way motorway contributes forward edges only.
	kept = wc.add(&osm.Way{
		Nodes: osm.WayNodes{{ID: 3}, {ID: 4}},
		Tags:  osm.Tags{{Key: "highway", Value: "motorway"}},
	})
	require.True(t, kept)

	// Footway and single-node ways are dropped.
	assert.False(t, wc.add(&osm.Way{
		Nodes: osm.WayNodes{{ID: 4}, {ID: 5}},
		Tags:  osm.Tags{{Key: "highway", Value: "footway"}},
	}))
	assert.False(t, wc.add(&osm.Way{
		Nodes: osm.WayNodes{{ID: 6}},
		Tags:  osm.Tags{{Key: "highway", Value: "residential"}},
	}))

	require.Len(t, wc.ways, 2)
	assert.Len(t, wc.referenced, 4)

	lat := map[osm.NodeID]float64{1: 1.0, 2: 1.1, 3: 1.2}
	lon := map[osm.NodeID]float64{1: 103.0, 2: 103.1, 3: 103.2}

	// Node 4 has no coordinates, so the motorway edge is skipped.
	edges, skipped, filtered := buildEdges(wc.ways, lat, lon, BBox{})
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 0, filtered)
	assert.ElementsMatch(t, []RawEdge{
		{FromNodeID: 1, ToNodeID: 2},
		{FromNodeID: 2, ToNodeID: 1},
		{FromNodeID: 2, ToNodeID: 3},
		{FromNodeID: 3, ToNodeID: 2},
	}, edges)

	// Bounding box excluding node 3.
	edges, _, filtered = buildEdges(wc.ways, lat, lon, BBox{MinLat: 0.9, MaxLat: 1.15, MinLng: 102, MaxLng: 104})
	assert.Equal(t, 1, filtered)
	assert.Len(t, edges, 2)
}
