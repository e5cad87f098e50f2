package http

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"bookshelf/internal/httpx"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

type healthStatus struct {
	Status    string `json:"status"`
	Hostname  string `json:"hostname"`
	OS        string `json:"os"`
	Timestamp string `json:"timestamp"`
}

// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	hostname, _ := os.Hostname()
	httpx.WriteOK(w, r, healthStatus{
		Status:    "ok",
		Hostname:  hostname,
		OS:        runtime.GOOS,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil)
}

// @Summary Readiness probe
// @Description Fails with 503 while the database is unreachable
// @Tags health
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /readyz [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		httpx.WriteError(w, r, http.StatusServiceUnavailable, httpx.CodeUnavailable, "database unavailable", nil)
		return
	}
	httpx.WriteOK(w, r, map[string]string{"status": "ready"}, nil)
}
