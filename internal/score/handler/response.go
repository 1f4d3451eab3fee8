package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents the error body shared by every endpoint.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

func badRequest(c *gin.Context, message string) {
	errorResponse(c, "INVALID_REQUEST", message, http.StatusBadRequest)
}
