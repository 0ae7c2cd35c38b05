package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"parbfs/pkg/bfs"
	"parbfs/pkg/metrics"
	"parbfs/pkg/query"
)

// maxBodyBytes bounds request bodies; target lists dominate their size.
const maxBodyBytes = 1 << 20

// StatsProvider reports graph and cache statistics.
type StatsProvider interface {
	Stats() query.Stats
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	traverser query.Traverser
	stats     StatsProvider
}

// NewHandlers creates handlers with the given traverser.
func NewHandlers(traverser query.Traverser, stats StatsProvider) *Handlers {
	return &Handlers{
		traverser: traverser,
		stats:     stats,
	}
}

// HandleBFS handles POST /api/v1/bfs.
func (h *Handlers) HandleBFS(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Parse request.
	var req BFSRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	strategy, err := bfs.ParseStrategy(req.Strategy)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_strategy", "strategy")
		return
	}

	q := query.Request{
		Strategy: strategy,
		Root:     req.Root,
		Targets:  req.Targets,
	}
	if req.Near != nil {
		if err := validateCoord(*req.Near); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", "near")
			return
		}
		q.Near = &query.LatLng{Lat: req.Near.Lat, Lng: req.Near.Lng}
	}

	result, err := h.traverser.Traverse(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, query.ErrRootOutOfRange):
			writeError(w, http.StatusBadRequest, "invalid_vertex", "root")
		case errors.Is(err, query.ErrTargetOutOfRange):
			writeError(w, http.StatusBadRequest, "invalid_vertex", "targets")
		case errors.Is(err, query.ErrPointTooFar):
			writeError(w, http.StatusUnprocessableEntity, "point_too_far", "near")
		case errors.Is(err, query.ErrNoCoordinates):
			writeError(w, http.StatusUnprocessableEntity, "no_coordinates", "near")
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}

	if result.Cached {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newBFSResponse(result))
}

func newBFSResponse(result *query.Response) BFSResponse {
	res := result.Result
	resp := BFSResponse{
		Root:          result.Root,
		Strategy:      res.Strategy.String(),
		Reached:       res.Reached,
		MaxDistance:   res.MaxDistance,
		Levels:        res.Levels(),
		ElapsedMicros: res.Elapsed.Microseconds(),
		Cached:        result.Cached,
		Steps:         make([]StepJSON, len(res.Steps)),
	}
	if result.Snap != nil {
		resp.Snap = &SnapJSON{Vertex: result.Snap.Node, DistanceMeters: result.Snap.Dist}
	}
	for i, s := range res.Steps {
		resp.Steps[i] = StepJSON{
			Level:          s.Level,
			Step:           s.Step.String(),
			FrontierSize:   s.FrontierSize,
			Discovered:     s.Discovered,
			DurationMicros: s.Duration.Microseconds(),
		}
	}
	for _, t := range result.Targets {
		resp.Targets = append(resp.Targets, TargetJSON{
			Vertex:   t.Vertex,
			Distance: t.Distance,
			Reached:  t.Reached(),
		})
	}
	return resp
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	st := h.stats.Stats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatsResponse{
		NumNodes:       st.NumNodes,
		NumEdges:       st.NumEdges,
		HasCoordinates: st.HasCoordinates,
		CacheEntries:   st.CacheEntries,
		CacheHits:      st.CacheHits,
		CacheMisses:    st.CacheMisses,
	})
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
