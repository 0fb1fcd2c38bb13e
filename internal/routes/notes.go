package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/handlers"
	"github.com/shriya7756/campusconnect-backend/internal/middleware"
)

func RegisterNoteRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")

	// Reads work anonymously; views dedupe on the X-User-Id header when
	// there is no session.
	notes.GET("", middleware.OptionalAuthMiddleware(), handlers.ListNotes)
	notes.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetNote)
	notes.POST("/:id/view", middleware.OptionalAuthMiddleware(), handlers.RecordNoteView)

	authed := notes.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("", handlers.CreateNote)
		authed.POST("/:id/upvote", handlers.UpvoteNote)
		authed.POST("/:id/like", handlers.LikeNote)
		authed.POST("/:id/star", handlers.StarNote)
		authed.POST("/:id/comments", handlers.AddNoteComment)
		authed.DELETE("/:id/comments/:commentId", handlers.DeleteNoteComment)
	}
}
