package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/basho/internal/directory"
	"github.com/hyperjump/basho/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request",
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.String("query", req.Query),
		zap.Int("capacity", req.Capacity),
		zap.Int("limit", req.Limit))
	response, err := s.engine.Search(r.Context(), &req)
	if err != nil {
		// The engine errors only on invalid input; outages degrade to an
		// empty response.
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	filter := directory.HierarchyFilter{
		Kind:             r.URL.Query().Get("kind"),
		ParentLocationID: r.URL.Query().Get("parent_location_id"),
	}
	locations, err := s.locations.LocationHierarchy(r.Context(), filter)
	if err != nil {
		s.logger.Error("location hierarchy fetch failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, "location directory unavailable")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"locations": locations})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"config": map[string]interface{}{
			"default_limit":           s.config.Search.DefaultLimit,
			"max_limit":               s.config.Search.MaxLimit,
			"max_availability_checks": s.config.Search.MaxAvailabilityChecks,
			"directory_base_url":      s.config.Directory.BaseURL,
			"cache_backend":           s.config.Cache.Backend,
		},
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
