package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	appName string
	version string
	pinger  Pinger
	now     func() time.Time
}

// NewHealthHandler builds the health endpoints. A nil pinger means the
// backend lives in process and is always ready.
func NewHealthHandler(appName, version string, pinger Pinger) *HealthHandler {
	return &HealthHandler{
		appName: appName,
		version: version,
		pinger:  pinger,
		now:     time.Now,
	}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

type HealthResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message" example:"Library API is running"`
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:00.000Z"`
	Version   string `json:"version" example:"1.0.0"`
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Success:   true,
		Message:   h.appName + " is running",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Version:   h.version,
	})
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Pings the storage backend.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			log.Warn().Err(err).Msg("readiness check failed")
			writeError(c, http.StatusServiceUnavailable, "Storage backend is unavailable")
			return
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Success:   true,
		Message:   h.appName + " is ready",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Version:   h.version,
	})
}
