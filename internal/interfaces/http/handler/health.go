package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// Pinger checks that the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness together with database reachability
type HealthHandler struct {
	BaseHandler
	db        Pinger
	name      string
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, name string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		name:      name,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Name      string `json:"name"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Health pings the database. An unreachable database answers 503.
// Served outside /api/v1, so it is not part of the API document.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "up",
		Name:      h.name,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if h.db == nil {
		h.unhealthy(c, resp, "unconfigured")
		return
	}
	if err := h.db.Ping(ctx); err != nil {
		logger.FromContext(c.Request.Context()).Error("Health check failed", zap.Error(err))
		h.unhealthy(c, resp, "down")
		return
	}

	h.Success(c, resp)
}

func (h *HealthHandler) unhealthy(c *gin.Context, resp HealthResponse, database string) {
	resp.Status, resp.Database = "degraded", database
	c.JSON(http.StatusServiceUnavailable, dto.Response{
		Success: false,
		Data:    resp,
		Error: &dto.ErrorInfo{
			Code:      dto.ErrCodeServiceUnavailable,
			Message:   "database " + database,
			RequestID: getRequestID(c),
		},
	})
}
