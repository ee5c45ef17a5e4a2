package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/session"
)

type HealthHandler struct {
	DB       *sql.DB
	Sessions session.Store
	Logger   *slog.Logger
	started  time.Time
}

func NewHealthHandler(db *sql.DB, sessions session.Store, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		DB:       db,
		Sessions: sessions,
		Logger:   logger,
		started:  time.Now(),
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	WriteResp(w, h.Logger, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
	}, http.StatusOK)
}

func (h *HealthHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "connected"
	start := time.Now()
	if err := h.DB.PingContext(ctx); err != nil {
		dbStatus = "error"
	}
	dbResponseTime := time.Since(start)

	sessionStatus := "connected"
	if !h.sessionsReachable(ctx) {
		sessionStatus = "error"
	}

	status := http.StatusOK
	overall := "healthy"
	if dbStatus != "connected" || sessionStatus != "connected" {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}

	WriteResp(w, h.Logger, map[string]any{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"database": map[string]any{
			"status":       dbStatus,
			"responseTime": dbResponseTime.String(),
		},
		"sessionStore": map[string]any{
			"status": sessionStatus,
		},
	}, status)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		WriteResp(w, h.Logger, map[string]any{
			"status": "not ready",
			"reason": "database not connected",
		}, http.StatusServiceUnavailable)
		return
	}
	if !h.sessionsReachable(ctx) {
		WriteResp(w, h.Logger, map[string]any{
			"status": "not ready",
			"reason": "session store not connected",
		}, http.StatusServiceUnavailable)
		return
	}

	WriteResp(w, h.Logger, map[string]any{"status": "ready"}, http.StatusOK)
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	WriteResp(w, h.Logger, map[string]any{"status": "alive"}, http.StatusOK)
}

// sessionsReachable probes the store with a lookup that is expected to
// miss; only a transport-level failure counts as unreachable.
func (h *HealthHandler) sessionsReachable(ctx context.Context) bool {
	_, err := h.Sessions.Get(ctx, "health-probe")
	return err == nil || errors.Is(err, session.ErrNotFound)
}
