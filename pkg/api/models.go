package api

// BFSRequest is the JSON body for POST /api/v1/bfs.
type BFSRequest struct {
	Strategy string      `json:"strategy,omitempty"`
	Root     *uint32     `json:"root,omitempty"`
	Near     *LatLngJSON `json:"near,omitempty"`
	Targets  []uint32    `json:"targets,omitempty"`
}

// LatLngJSON represents a lat/lng pair in JSON.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BFSResponse is the JSON response for a successful traversal.
type BFSResponse struct {
	Root          uint32       `json:"root"`
	Strategy      string       `json:"strategy"`
	Reached       int          `json:"reached"`
	MaxDistance   int32        `json:"max_distance"`
	Levels        int          `json:"levels"`
	ElapsedMicros int64        `json:"elapsed_us"`
	Cached        bool         `json:"cached"`
	Snap          *SnapJSON    `json:"snap,omitempty"`
	Steps         []StepJSON   `json:"steps"`
	Targets       []TargetJSON `json:"targets,omitempty"`
}

// SnapJSON reports the vertex a coordinate was snapped to.
type SnapJSON struct {
	Vertex         uint32  `json:"vertex"`
	DistanceMeters float64 `json:"distance_meters"`
}

// StepJSON describes one expanded level.
type StepJSON struct {
	Level          int32  `json:"level"`
	Step           string `json:"step"`
	FrontierSize   int    `json:"frontier_size"`
	Discovered     int    `json:"discovered"`
	DurationMicros int64  `json:"duration_us"`
}

// TargetJSON is the distance to one requested vertex; -1 when unreachable.
type TargetJSON struct {
	Vertex   uint32 `json:"vertex"`
	Distance int32  `json:"distance"`
	Reached  bool   `json:"reached"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes       uint32 `json:"num_nodes"`
	NumEdges       uint32 `json:"num_edges"`
	HasCoordinates bool   `json:"has_coordinates"`
	CacheEntries   int    `json:"cache_entries"`
	CacheHits      uint64 `json:"cache_hits"`
	CacheMisses    uint64 `json:"cache_misses"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
