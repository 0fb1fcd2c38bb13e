package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/database"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/shriya7756/campusconnect-backend/pkg/errors"
	"github.com/shriya7756/campusconnect-backend/pkg/logger"
	"gorm.io/gorm"
)

type ToggleTopicInput struct {
	TopicID *int64 `json:"topicId"`
}

type SetTrackInput struct {
	Track string `json:"track" binding:"required"`
}

// loadProgress returns the user's progress row, creating an empty one on
// first access.
func loadProgress(db *gorm.DB, userID string) (*models.Progress, error) {
	var progress models.Progress
	err := db.Where("user_id = ?", userID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	progress = models.Progress{
		UserID:            userID,
		CompletedTopicIDs: []int64{},
		ActiveTrack:       "dsa",
	}
	if err := db.Create(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetProgress handles GET /progress
func GetProgress(c *gin.Context) {
	progress, err := loadProgress(database.DB, c.GetString("userId"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load progress")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ToggleTopic handles POST /progress/toggle. Toggles membership of the
// topic id in the completed set.
func ToggleTopic(c *gin.Context) {
	var input ToggleTopicInput
	if err := c.ShouldBindJSON(&input); err != nil || input.TopicID == nil {
		respondError(c, errors.BadRequest("topicId must be a number"))
		return
	}
	topicID := *input.TopicID

	progress, err := loadProgress(database.DB, c.GetString("userId"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load progress")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	updated := make([]int64, 0, len(progress.CompletedTopicIDs)+1)
	removed := false
	for _, id := range progress.CompletedTopicIDs {
		if id == topicID {
			removed = true
			continue
		}
		updated = append(updated, id)
	}
	if !removed {
		updated = append(updated, topicID)
	}
	progress.CompletedTopicIDs = updated

	if err := database.DB.Model(progress).Update("completed_topic_ids", progress.CompletedTopicIDs).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to update progress")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress, "completed": !removed})
}

// SetActiveTrack handles POST /progress/track
func SetActiveTrack(c *gin.Context) {
	var input SetTrackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	track := strings.TrimSpace(input.Track)
	if track == "" {
		respondError(c, errors.BadRequest("track is required"))
		return
	}

	progress, err := loadProgress(database.DB, c.GetString("userId"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load progress")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	progress.ActiveTrack = track
	if err := database.DB.Model(progress).Update("active_track", track).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to update track")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update track"})
		return
	}

	c.JSON(http.StatusOK, progress)
}
