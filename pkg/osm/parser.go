// Package osm extracts a directed road network from OpenStreetMap PBF data,
// producing the unweighted edge list used to build traversal graphs.
package osm

import (
	"context"
	"fmt"
	"io"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/rs/zerolog"
)

// RawEdge represents a directed edge parsed from OSM data.
type RawEdge struct {
	FromNodeID osm.NodeID
	ToNodeID   osm.NodeID
}

// ParseResult holds the output of parsing an OSM PBF file.
type ParseResult struct {
	Edges   []RawEdge
	NodeLat map[osm.NodeID]float64
	NodeLon map[osm.NodeID]float64
}

// Profile selects which ways form the network and how direction is interpreted.
type Profile int

const (
	// ProfileCar keeps drivable highways and honours oneway restrictions.
	ProfileCar Profile = iota
	// ProfileWalk keeps walkable highways; every way is traversable both ways.
	ProfileWalk
)

// String returns the profile name used on the command line.
func (p Profile) String() string {
	switch p {
	case ProfileCar:
		return "car"
	case ProfileWalk:
		return "walk"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// ParseProfile converts a command-line name to a Profile.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "car", "":
		return ProfileCar, nil
	case "walk":
		return ProfileWalk, nil
	default:
		return 0, fmt.Errorf("unknown profile %q (want car or walk)", s)
	}
}

// carHighways lists highway tag values accessible by car.
var carHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// walkHighways lists highway tag values usable on foot.
var walkHighways = map[string]bool{
	"primary":       true,
	"secondary":     true,
	"tertiary":      true,
	"unclassified":  true,
	"residential":   true,
	"living_street": true,
	"service":       true,
	"pedestrian":    true,
	"footway":       true,
	"path":          true,
	"steps":         true,
	"track":         true,
	"cycleway":      true,
}

// isCarAccessible returns true if the way is drivable by car.
func isCarAccessible(tags osm.Tags) bool {
	if !carHighways[tags.Find("highway")] {
		return false
	}

	// Skip area highways (pedestrian plazas).
	if tags.Find("area") == "yes" {
		return false
	}

	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}
	return tags.Find("motor_vehicle") != "no"
}

// isWalkable returns true if the way can be used on foot.
func isWalkable(tags osm.Tags) bool {
	if !walkHighways[tags.Find("highway")] {
		return false
	}
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return tags.Find("foot") == "yes"
	}
	return tags.Find("foot") != "no"
}

// directionFlags returns (forward, backward) based on highway type and oneway tags.
func directionFlags(tags osm.Tags) (forward, backward bool) {
	forward = true
	backward = true

	hw := tags.Find("highway")

	// Implied oneway for motorways and roundabouts.
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	// Explicit oneway tag overrides.
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward = true
		backward = false
	case "-1", "reverse":
		forward = false
		backward = true
	case "no":
		forward = true
		backward = true
	case "reversible":
		// Time-dependent, skip entirely.
		forward = false
		backward = false
	}

	return forward, backward
}

// wayFlags applies the profile to a way's tags. ok is false when the way
// is not part of the network.
func wayFlags(p Profile, tags osm.Tags) (forward, backward, ok bool) {
	switch p {
	case ProfileWalk:
		if !isWalkable(tags) {
			return false, false, false
		}
		return true, true, true
	default:
		if !isCarAccessible(tags) {
			return false, false, false
		}
		forward, backward = directionFlags(tags)
		return forward, backward, forward || backward
	}
}

// wayInfo holds parsed way data collected during Pass 1.
type wayInfo struct {
	NodeIDs  []osm.NodeID
	Forward  bool
	Backward bool
}

// BBox defines a geographic bounding box for filtering.
// If non-zero, only edges with both endpoints inside the box are kept.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero returns true if the bbox is unset.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

// Contains returns true if the point is inside the bounding box.
func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ParseOptions configures the OSM parser.
type ParseOptions struct {
	BBox    BBox // if non-zero, filter edges to this bounding box
	Profile Profile
	Logger  zerolog.Logger
}

// Parse reads an OSM PBF file and returns directed edges for the selected profile.
// The reader is consumed twice (seeks back to start for the second pass),
// so it must implement io.ReadSeeker.
func Parse(ctx context.Context, rs io.ReadSeeker, opt ParseOptions) (*ParseResult, error) {
	log := opt.Logger

	// Pass 1: Scan ways to collect referenced node IDs and way info.
	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	wc := newWayCollector(opt.Profile)
	for scanner.Scan() {
		if w, ok := scanner.Object().(*osm.Way); ok {
			wc.add(w)
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()

	ways, referencedNodes := wc.ways, wc.referenced
	log.Info().Int("ways", len(ways)).Int("nodes", len(referencedNodes)).Msg("pass 1 complete")

	// Pass 2: Scan nodes to collect coordinates for referenced nodes only.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	nodeLat := make(map[osm.NodeID]float64, len(referencedNodes))
	nodeLon := make(map[osm.NodeID]float64, len(referencedNodes))

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		nodeLat[n.ID] = n.Lat
		nodeLon[n.ID] = n.Lon
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	log.Info().Int("coordinates", len(nodeLat)).Msg("pass 2 complete")

	edges, skipped, filtered := buildEdges(ways, nodeLat, nodeLon, opt.BBox)
	if skipped > 0 {
		log.Warn().Int("edges", skipped).Msg("skipped edges with missing node coordinates")
	}
	if filtered > 0 {
		log.Info().Int("edges", filtered).Msg("filtered edges outside bounding box")
	}
	log.Info().Int("edges", len(edges)).Msg("built directed edges")

	return &ParseResult{
		Edges:   edges,
		NodeLat: nodeLat,
		NodeLon: nodeLon,
	}, nil
}

// wayCollector keeps the ways that belong to a profile's network and the
// set of node IDs they reference.
type wayCollector struct {
	profile    Profile
	ways       []wayInfo
	referenced map[osm.NodeID]struct{}
}

func newWayCollector(p Profile) *wayCollector {
	return &wayCollector{profile: p, referenced: make(map[osm.NodeID]struct{})}
}

// add records w if it is part of the network. Reports whether it was kept.
func (wc *wayCollector) add(w *osm.Way) bool {
	if len(w.Nodes) < 2 {
		return false
	}
	fwd, bwd, ok := wayFlags(wc.profile, w.Tags)
	if !ok {
		return false
	}

	nodeIDs := make([]osm.NodeID, len(w.Nodes))
	for i, wn := range w.Nodes {
		nodeIDs[i] = wn.ID
		wc.referenced[wn.ID] = struct{}{}
	}
	wc.ways = append(wc.ways, wayInfo{NodeIDs: nodeIDs, Forward: fwd, Backward: bwd})
	return true
}

// buildEdges expands ways into directed edges between consecutive nodes.
// It returns the edges, the number skipped for missing coordinates, and the
// number dropped by the bounding box.
func buildEdges(ways []wayInfo, nodeLat, nodeLon map[osm.NodeID]float64, bbox BBox) (edges []RawEdge, skipped, filtered int) {
	useBBox := !bbox.IsZero()

	for _, w := range ways {
		for i := 0; i < len(w.NodeIDs)-1; i++ {
			fromID := w.NodeIDs[i]
			toID := w.NodeIDs[i+1]

			fromLat, fromOk := nodeLat[fromID]
			toLat, toOk := nodeLat[toID]
			if !fromOk || !toOk {
				skipped++
				continue
			}

			if useBBox && (!bbox.Contains(fromLat, nodeLon[fromID]) || !bbox.Contains(toLat, nodeLon[toID])) {
				filtered++
				continue
			}

			if w.Forward {
				edges = append(edges, RawEdge{FromNodeID: fromID, ToNodeID: toID})
			}
			if w.Backward {
				edges = append(edges, RawEdge{FromNodeID: toID, ToNodeID: fromID})
			}
		}
	}
	return edges, skipped, filtered
}
