// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/contribution_points/internal/user/handler"
	"github.com/festy23/contribution_points/internal/user/repository"
	"github.com/festy23/contribution_points/internal/user/service"
)

// RegisterRoutes registers user module routes. repo is shared with the
// contribution pipeline so both see the same identity cache.
func RegisterRoutes(r *gin.Engine, repo repository.Repository, scores service.ScoreReader, logger *zap.SugaredLogger) {
	svc := service.New(repo, scores, logger)
	h := handler.New(svc)

	r.POST("/users/add", h.AddUser)
	r.GET("/users/get", h.GetUser)
}
