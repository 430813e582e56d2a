package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shortlist-dev/shortlister/internal/config"
	"github.com/shortlist-dev/shortlister/internal/logger"
	"github.com/shortlist-dev/shortlister/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth   service.AuthService
	jd     service.JdService
	ai     service.AIResultService
	health Pinger
	cfg    *config.Config
}

func New(auth service.AuthService, jd service.JdService, ai service.AIResultService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, jd, ai, health, cfg}
}

// Root is the public health check endpoint.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Login/Signup backend running"})
}

// Ready reports whether the database is reachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
