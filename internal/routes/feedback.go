package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/handlers"
	"github.com/shriya7756/campusconnect-backend/internal/middleware"
)

func RegisterFeedbackRoutes(rg *gin.RouterGroup) {
	feedback := rg.Group("/feedback")

	feedback.POST("", middleware.OptionalAuthMiddleware(), handlers.CreateFeedback)
	feedback.GET("", handlers.ListFeedback)
}
