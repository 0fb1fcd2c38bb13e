package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/handlers"
	"github.com/shriya7756/campusconnect-backend/internal/middleware"
)

func RegisterExchangeRoutes(rg *gin.RouterGroup) {
	exchange := rg.Group("/exchange")

	exchange.GET("", middleware.OptionalAuthMiddleware(), handlers.ListItems)
	exchange.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetItem)
	exchange.POST("/:id/view", middleware.OptionalAuthMiddleware(), handlers.RecordItemView)

	authed := exchange.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("", handlers.CreateItem)
		authed.POST("/:id/interest", handlers.ToggleInterest)
		authed.POST("/:id/like", handlers.ToggleItemLike)
	}
}
