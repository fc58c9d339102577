package handlers

import (
	"context"
	"log"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// HealthHandler godoc
// @Summary Liveness and store reachability
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respond(w, http.StatusOK, HealthResponse{Status: "ok", Store: "memory"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.PingContext(ctx); err != nil {
		log.Printf("health check: store unreachable: %v", err)
		respond(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Store: "unreachable"})
		return
	}
	respond(w, http.StatusOK, HealthResponse{Status: "ok", Store: "up"})
}
