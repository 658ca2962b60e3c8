package server

import (
	"context"
	"net/http"
	"time"

	"travel-ticket-api/core/logger"

	"github.com/labstack/echo/v4"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type healthHandler struct {
	db pinger
}

func newHealthHandler(db pinger) *healthHandler {
	return &healthHandler{db: db}
}

// Live answers as long as the process is up.
func (h *healthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready pings the database when one is configured.
func (h *healthHandler) Ready(c echo.Context) error {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{},
	}
	if h.db == nil {
		return c.JSON(http.StatusOK, resp)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.Warn("Health:Ready:DatabaseUnavailable", "error", err)
		resp.Status = "fail"
		resp.Checks["database"] = err.Error()
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	resp.Checks["database"] = "ok"
	return c.JSON(http.StatusOK, resp)
}
