package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/handlers"
	"github.com/shriya7756/campusconnect-backend/internal/middleware"
)

func RegisterQARoutes(rg *gin.RouterGroup) {
	questions := rg.Group("/qa/questions")

	questions.GET("", middleware.OptionalAuthMiddleware(), handlers.ListQuestions)
	questions.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetQuestion)
	questions.POST("/:id/view", middleware.OptionalAuthMiddleware(), handlers.RecordQuestionView)

	authed := questions.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("", handlers.CreateQuestion)
		authed.POST("/:id/upvote", handlers.UpvoteQuestion)
		authed.POST("/:id/answers", handlers.AddAnswer)
		authed.DELETE("/:id/answers/:answerId", handlers.DeleteAnswer)
		authed.POST("/:id/answers/:answerId/upvote", handlers.UpvoteAnswer)
	}
}
