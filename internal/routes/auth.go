package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/handlers"
	"github.com/shriya7756/campusconnect-backend/internal/middleware"
)

func RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/signup", handlers.Signup)
		auth.POST("/login", handlers.Login)
	}
}
