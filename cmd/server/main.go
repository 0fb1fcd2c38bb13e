package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/config"
	"github.com/shriya7756/campusconnect-backend/internal/database"
	"github.com/shriya7756/campusconnect-backend/internal/middleware"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/shriya7756/campusconnect-backend/internal/routes"
	"github.com/shriya7756/campusconnect-backend/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	err := database.DB.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.NoteComment{},
		&models.Question{},
		&models.Answer{},
		&models.ExchangeItem{},
		&models.Progress{},
		&models.Feedback{},
		&models.Reaction{},
		&models.EntityView{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Msg("Database migrations complete")

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.GeneralRateLimit())

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
		redisStatus := "ok"
		if database.Redis == nil || database.Redis.Ping(database.Ctx).Err() != nil {
			redisStatus = "down"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
		})
	})

	api := router.Group("/api")
	routes.RegisterAuthRoutes(api)
	routes.RegisterUserRoutes(api)
	routes.RegisterNoteRoutes(api)
	routes.RegisterQARoutes(api)
	routes.RegisterExchangeRoutes(api)
	routes.RegisterProgressRoutes(api)
	routes.RegisterFeedbackRoutes(api)

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
	}
	logger.Info().Msg("Server exited")
}
