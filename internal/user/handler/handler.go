// Package handler provides HTTP handlers for user endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festy23/contribution_points/internal/user/model"
	"github.com/festy23/contribution_points/internal/user/service"
)

// Handler handles HTTP requests for user endpoints.
type Handler struct {
	service service.Service
}

// New creates a new user handler instance.
func New(svc service.Service) *Handler {
	return &Handler{service: svc}
}

// AddUser handles POST /users/add.
func (h *Handler) AddUser(c *gin.Context) {
	var req model.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AddUser(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserExists):
			errorResponse(c, "USER_EXISTS", "user_id or nickname already exists", http.StatusConflict)
		case errors.Is(err, model.ErrInvalidUserID), errors.Is(err, model.ErrInvalidNickname):
			errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		default:
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetUser handles GET /users/get?nickname=.
func (h *Handler) GetUser(c *gin.Context) {
	nickname := c.Query("nickname")
	if nickname == "" {
		errorResponse(c, "INVALID_REQUEST", "nickname parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetUser(c.Request.Context(), nickname)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			notFoundResponse(c, "user not found")
			return
		}
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
