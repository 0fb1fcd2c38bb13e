package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/handlers"
	"github.com/shriya7756/campusconnect-backend/internal/middleware"
)

func RegisterProgressRoutes(rg *gin.RouterGroup) {
	progress := rg.Group("/progress")
	progress.Use(middleware.AuthMiddleware())
	{
		progress.GET("", handlers.GetProgress)
		progress.POST("/toggle", handlers.ToggleTopic)
		progress.POST("/track", handlers.SetActiveTrack)
	}
}
