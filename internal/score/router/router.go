// Package router provides score module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/contribution_points/internal/score/handler"
	"github.com/festy23/contribution_points/internal/score/service"
)

// RegisterRoutes registers score module routes on the shared ledger.
func RegisterRoutes(r *gin.Engine, ledger service.Service) {
	h := handler.New(ledger)

	r.POST("/score/give", h.Give)
	r.POST("/score/take", h.Take)
	r.POST("/score/reset", h.Reset)
	r.GET("/score/get", h.Get)
	r.GET("/score/leaderboard", h.Leaderboard)
}
