package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festy23/contribution_points/internal/contribution/model"
)

// ErrorResponse represents the error body shared by every endpoint.
// Fields is set only for validation failures.
type ErrorResponse struct {
	Error struct {
		Code    string             `json:"code"`
		Message string             `json:"message"`
		Fields  []model.FieldError `json:"fields,omitempty"`
	} `json:"error"`
}

func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

func validationResponse(c *gin.Context, verr *model.ValidationError) {
	resp := ErrorResponse{}
	resp.Error.Code = "VALIDATION_FAILED"
	resp.Error.Message = "contribution is not valid"
	resp.Error.Fields = verr.Fields
	c.JSON(http.StatusUnprocessableEntity, resp)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, "NOT_FOUND", message, http.StatusNotFound)
}
