// Package router provides contribution module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/contribution_points/internal/contribution/handler"
	"github.com/festy23/contribution_points/internal/contribution/repository"
	"github.com/festy23/contribution_points/internal/contribution/service"
)

// RegisterRoutes registers contribution module routes.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	users service.IdentityLookup,
	comments service.CommentFetcher,
	ledger handler.Awarder,
	logger *zap.SugaredLogger,
) {
	repo := repository.New(db, logger)
	svc := service.New(repo, users, comments, db, logger)
	h := handler.New(svc, ledger, logger)

	r.POST("/contribution/create", h.CreateContribution)
	r.GET("/contribution/get", h.GetContribution)
	r.POST("/contribution/delete", h.DeleteContribution)
}
