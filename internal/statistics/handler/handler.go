// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/contribution_points/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetContributorsStatistics handles GET /statistics/contributors request.
func (h *Handler) GetContributorsStatistics(c *gin.Context) {
	resp, err := h.service.GetContributorsStatistics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting contributors statistics", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetContributionStatistics handles GET /statistics/contributions request.
func (h *Handler) GetContributionStatistics(c *gin.Context) {
	resp, err := h.service.GetContributionStatistics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting contribution statistics", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
