// Package handler provides HTTP handlers for score endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festy23/contribution_points/internal/score/model"
	"github.com/festy23/contribution_points/internal/score/service"
)

// Handler handles HTTP requests for score endpoints.
type Handler struct {
	ledger service.Service
	now    func() time.Time
}

// New creates a new score handler instance.
func New(ledger service.Service) *Handler {
	return &Handler{ledger: ledger, now: time.Now}
}

// Give handles POST /score/give.
func (h *Handler) Give(c *gin.Context) {
	var req model.GiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	eventTime := h.now()
	if req.EventTime != nil {
		eventTime = *req.EventTime
	}

	if err := h.ledger.Give(c.Request.Context(), req.UserID, req.Points, eventTime); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Take handles POST /score/take.
func (h *Handler) Take(c *gin.Context) {
	var req model.TakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if err := h.ledger.Take(c.Request.Context(), req.UserID, req.Points); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Reset handles POST /score/reset. The body is optional.
func (h *Handler) Reset(c *gin.Context) {
	var req model.ResetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
	}

	var err error
	if req.TimeSpan == "" {
		err = h.ledger.Reset(c.Request.Context())
	} else {
		err = h.ledger.ResetSpan(c.Request.Context(), model.TimeSpan(req.TimeSpan))
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get handles GET /score/get?user_id=&time_span=.
func (h *Handler) Get(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		badRequest(c, "user_id parameter is required")
		return
	}
	span, err := model.ParseTimeSpan(c.DefaultQuery("time_span", string(model.AllTime)))
	if err != nil {
		h.handleError(c, err)
		return
	}

	points, err := h.ledger.Read(c.Request.Context(), userID, span)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ScoreResponse{UserID: userID, TimeSpan: span, Points: points})
}

// Leaderboard handles GET /score/leaderboard?time_span=&limit=.
func (h *Handler) Leaderboard(c *gin.Context) {
	span, err := model.ParseTimeSpan(c.DefaultQuery("time_span", string(model.AllTime)))
	if err != nil {
		h.handleError(c, err)
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
	}

	resp, err := h.ledger.Leaderboard(c.Request.Context(), span, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidTimeSpan):
		badRequest(c, "time_span must be all_time or weekly")
	case errors.Is(err, model.ErrInvalidPoints):
		badRequest(c, "points must be non-negative")
	case errors.Is(err, model.ErrInvalidUserID):
		badRequest(c, "user_id is required")
	case errors.Is(err, model.ErrUnknownUser):
		errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
	default:
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
