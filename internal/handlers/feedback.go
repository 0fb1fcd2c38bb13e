package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/database"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/shriya7756/campusconnect-backend/pkg/errors"
	"github.com/shriya7756/campusconnect-backend/pkg/logger"
)

type FeedbackInput struct {
	Category string `json:"category" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Email    string `json:"email"`
}

// CreateFeedback handles POST /feedback. Auth is optional; anonymous
// submissions are rate limited by client IP instead of user id.
func CreateFeedback(c *gin.Context) {
	var input FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.FeedbackCategory(strings.ToLower(strings.TrimSpace(input.Category)))
	if !models.ValidFeedbackCategory(category) {
		respondError(c, errors.BadRequest("Invalid feedback category"))
		return
	}

	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || message == "" {
		respondError(c, errors.BadRequest("Subject and message are required"))
		return
	}

	userID := c.GetString("userId")
	limitKey := userID
	if limitKey == "" {
		limitKey = "ip:" + c.ClientIP()
	}
	allowed, err := database.CheckRateLimit("feedback:"+limitKey, 3, time.Hour)
	if err != nil {
		logger.Warn().Err(err).Msg("Feedback rate limit check failed")
	}
	if !allowed {
		respondError(c, errors.ErrRateLimit)
		return
	}

	feedback := models.Feedback{
		Category: category,
		Subject:  subject,
		Message:  message,
		Email:    strings.TrimSpace(input.Email),
	}
	if userID != "" {
		feedback.UserID = &userID
	}

	if err := database.DB.Create(&feedback).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to save feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	logger.Info().Str("feedback_id", feedback.ID).Str("category", string(category)).Msg("Feedback submitted")

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Thanks for the feedback!",
		"feedback": gin.H{"id": feedback.ID},
	})
}

// ListFeedback handles GET /feedback, newest first. Limit defaults to 50
// and is capped at 100.
func ListFeedback(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	var feedback []models.Feedback
	err := database.DB.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&feedback).Error
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
		return
	}

	c.JSON(http.StatusOK, feedback)
}
