// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/contribution_points/internal/database/database"
)

const checkTimeout = 5 * time.Second

// Handler handles health check requests.
type Handler struct {
	db      *gorm.DB
	logger  *zap.SugaredLogger
	started time.Time
}

// New creates a new health handler instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:      db,
		logger:  logger,
		started: time.Now(),
	}
}

// Response represents health check response.
type Response struct {
	Status   string         `json:"status"`
	Uptime   string         `json:"uptime"`
	Database DatabaseStatus `json:"database"`
}

// DatabaseStatus reports the database probe and connection pool usage.
type DatabaseStatus struct {
	Status          string `json:"status"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	resp := Response{
		Status: "ok",
		Uptime: time.Since(h.started).Round(time.Second).String(),
		Database: DatabaseStatus{
			Status: "ok",
		},
	}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database.Status = "unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	if stats, err := database.GetStats(h.db); err == nil {
		resp.Database.OpenConnections = stats.OpenConnections
		resp.Database.InUse = stats.InUse
		resp.Database.Idle = stats.Idle
	}

	c.JSON(http.StatusOK, resp)
}
