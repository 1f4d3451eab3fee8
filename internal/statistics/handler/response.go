package handler

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the payload of an error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func errorResponse(c *gin.Context, code, message string, status int) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
