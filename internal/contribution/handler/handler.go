// Package handler provides HTTP handlers for contribution endpoints.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/contribution_points/internal/contribution/model"
	"github.com/festy23/contribution_points/internal/contribution/service"
)

// Awarder credits points to a user.
type Awarder interface {
	Give(ctx context.Context, userID string, points int64, eventTime time.Time) error
}

// Handler handles HTTP requests for contribution endpoints.
type Handler struct {
	service service.Service
	ledger  Awarder
	logger  *zap.SugaredLogger
}

// New creates a new contribution handler instance.
func New(svc service.Service, ledger Awarder, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, ledger: ledger, logger: logger}
}

// CreateContribution handles POST /contribution/create[?award=true].
// With award set, every distinct collaborator is credited the contribution's
// points at its merge time.
func (h *Handler) CreateContribution(c *gin.Context) {
	award := false
	if v := c.Query("award"); v != "" {
		var err error
		if award, err = strconv.ParseBool(v); err != nil {
			errorResponse(c, "INVALID_REQUEST", "award must be a boolean", http.StatusBadRequest)
			return
		}
	}

	var req model.CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			verr := &model.ValidationError{}
			verr.Add(typeErr.Field, "must be of type "+typeErr.Type.String())
			validationResponse(c, verr)
			return
		}
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateContribution(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if award {
		awarded, err := h.award(c.Request.Context(), &resp.Contribution, resp.Points)
		resp.Awarded = awarded
		if err != nil {
			h.logger.Errorw("CreateContribution award failed",
				"id", resp.Contribution.ID, "awarded", awarded, "error", err)
			errorResponse(c, "AWARD_FAILED",
				"contribution "+resp.Contribution.ID+" was stored but awarding points failed",
				http.StatusInternalServerError)
			return
		}
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) award(ctx context.Context, contribution *model.Contribution, points int) ([]string, error) {
	seen := make(map[string]struct{})
	awarded := make([]string, 0, len(contribution.Pairings))

	for _, userID := range contribution.CollaboratorIDs() {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}

		if err := h.ledger.Give(ctx, userID, int64(points), contribution.MergedAt); err != nil {
			return awarded, err
		}
		awarded = append(awarded, userID)
	}
	return awarded, nil
}

// GetContribution handles GET /contribution/get?id=.
func (h *Handler) GetContribution(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		errorResponse(c, "INVALID_REQUEST", "id parameter is required", http.StatusBadRequest)
		return
	}

	contribution, err := h.service.GetContribution(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contribution": contribution})
}

// DeleteContribution handles POST /contribution/delete.
func (h *Handler) DeleteContribution(c *gin.Context) {
	var req model.DeleteContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteContribution(c.Request.Context(), req.ID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": req.ID, "deleted": true})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *model.ValidationError
	var ferr *model.ExternalFetchError

	switch {
	case errors.As(err, &verr):
		validationResponse(c, verr)
	case errors.As(err, &ferr):
		errorResponse(c, "EXTERNAL_FETCH_FAILED", "failed to fetch review comments", http.StatusBadGateway)
	case errors.Is(err, model.ErrContributionNotFound):
		notFoundResponse(c, "contribution not found")
	case errors.Is(err, model.ErrContributionExists):
		errorResponse(c, "CONTRIBUTION_EXISTS", "contribution already exists", http.StatusConflict)
	case errors.Is(err, model.ErrInvalidContributionID):
		errorResponse(c, "INVALID_REQUEST", "id must be a UUID", http.StatusBadRequest)
	default:
		h.logger.Errorw("contribution request failed", "path", c.FullPath(), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
