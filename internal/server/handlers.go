package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/diorama/pkg/diorama"
)

// StatsResponse is the body of GET /api/scene/stats.
type StatsResponse struct {
	Seed     uint64                   `json:"seed"`
	Version  uint64                   `json:"version"`
	Elements int                      `json:"elements"`
	Counts   map[diorama.Category]int `json:"counts"`
	Bounds   diorama.Bounds           `json:"bounds"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status string   `json:"status"`
	Issues []string `json:"issues,omitempty"`
}

func (s *Server) getScene(w http.ResponseWriter, r *http.Request) {
	scene, _ := s.store.Current()
	respondJSON(w, http.StatusOK, scene.Snapshot())
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	scene, version := s.store.Current()
	meta := scene.Metadata()
	respondJSON(w, http.StatusOK, StatsResponse{
		Seed:     meta.Seed,
		Version:  version,
		Elements: scene.Len(),
		Counts:   scene.Counts(),
		Bounds:   meta.Bounds,
	})
}

// regenerate handles POST /api/scene/regenerate?seed=N. Without a seed the
// clock picks one.
func (s *Server) regenerate(w http.ResponseWriter, r *http.Request) {
	var seed uint64
	if v := r.URL.Query().Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid seed")
			return
		}
		seed = n
	}

	scene, err := s.store.Regenerate(seed)
	if err != nil {
		s.log.Error("regenerate failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("scene regenerated", zap.Uint64("seed", scene.Metadata().Seed))
	respondJSON(w, http.StatusOK, scene.Metadata())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	scene, _ := s.store.Current()
	issues := scene.Validate()
	if len(issues) == 0 {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
		return
	}

	resp := HealthResponse{Status: "degraded"}
	for _, is := range issues {
		resp.Issues = append(resp.Issues, is.Error())
	}
	respondJSON(w, http.StatusServiceUnavailable, resp)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
