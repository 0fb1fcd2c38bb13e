package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/database"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/shriya7756/campusconnect-backend/internal/services"
	"github.com/shriya7756/campusconnect-backend/pkg/errors"
	"github.com/shriya7756/campusconnect-backend/pkg/logger"
	"gorm.io/gorm"
)

const notesCacheKey = "notes:all"

type CreateNoteInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Subject     string   `json:"subject" binding:"required"`
	Tags        FlexTags `json:"tags"`
	FileURL     string   `json:"fileUrl"`
	FileType    string   `json:"fileType"`
	FileSize    string   `json:"fileSize"`
}

type CommentInput struct {
	Content string `json:"content"`
}

// attachNoteCounts fills the derived engagement numbers for a page of
// notes from the ledger tables. User-specific flags are attached
// separately so count data stays cacheable.
func attachNoteCounts(db *gorm.DB, notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}
	ids := make([]string, len(notes))
	for i := range notes {
		ids[i] = notes[i].ID
	}

	upvotes, err := services.ReactionCounts(db, models.EntityTypeNote, models.ReactionUpvote, ids)
	if err != nil {
		return err
	}
	likes, err := services.ReactionCounts(db, models.EntityTypeNote, models.ReactionLike, ids)
	if err != nil {
		return err
	}
	stars, err := services.ReactionCounts(db, models.EntityTypeNote, models.ReactionStar, ids)
	if err != nil {
		return err
	}
	views, err := services.ViewCounts(db, models.EntityTypeNote, ids)
	if err != nil {
		return err
	}

	for i := range notes {
		notes[i].Upvotes = upvotes[notes[i].ID]
		notes[i].Likes = likes[notes[i].ID]
		notes[i].Stars = stars[notes[i].ID]
		notes[i].Views = views[notes[i].ID]
		notes[i].CommentCount = int64(len(notes[i].Comments))
	}
	return nil
}

func attachNoteUserFlags(db *gorm.DB, notes []models.Note, userID string) error {
	if userID == "" || len(notes) == 0 {
		return nil
	}
	ids := make([]string, len(notes))
	for i := range notes {
		ids[i] = notes[i].ID
	}

	upvoted, err := services.ReactedSet(db, models.EntityTypeNote, models.ReactionUpvote, userID, ids)
	if err != nil {
		return err
	}
	liked, err := services.ReactedSet(db, models.EntityTypeNote, models.ReactionLike, userID, ids)
	if err != nil {
		return err
	}
	starred, err := services.ReactedSet(db, models.EntityTypeNote, models.ReactionStar, userID, ids)
	if err != nil {
		return err
	}

	for i := range notes {
		notes[i].HasUpvoted = upvoted[notes[i].ID]
		notes[i].HasLiked = liked[notes[i].ID]
		notes[i].HasStarred = starred[notes[i].ID]
	}
	return nil
}

func noteQuery(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("note_comments.created_at ASC")
		}).
		Preload("Comments.Author")
}

// fetchNote loads one note with author, comments and derived engagement
// fields for the given viewer.
func fetchNote(db *gorm.DB, noteID, userID string) (*models.Note, error) {
	var note models.Note
	if err := noteQuery(db).First(&note, "id = ?", noteID).Error; err != nil {
		return nil, err
	}
	notes := []models.Note{note}
	if err := attachNoteCounts(db, notes); err != nil {
		return nil, err
	}
	if err := attachNoteUserFlags(db, notes, userID); err != nil {
		return nil, err
	}
	return &notes[0], nil
}

// ListNotes handles GET /notes with optional q and subject filters.
// The unfiltered listing is cached briefly; per-user flags are applied
// after the cache so entries stay viewer-independent.
func ListNotes(c *gin.Context) {
	userID := c.GetString("userId")
	q := strings.TrimSpace(c.Query("q"))
	subject := strings.TrimSpace(c.Query("subject"))

	unfiltered := q == "" && (subject == "" || subject == "All Subjects")

	var notes []models.Note
	cacheHit := false
	if unfiltered {
		if err := database.CacheGet(notesCacheKey, &notes); err == nil {
			cacheHit = true
		}
	}

	if !cacheHit {
		query := noteQuery(database.DB).Order("created_at DESC")
		if subject != "" && subject != "All Subjects" {
			query = query.Where("subject = ?", subject)
		}
		if q != "" {
			query = applySearch(query, q)
		}

		if err := query.Find(&notes).Error; err != nil {
			logger.Error().Err(err).Msg("Failed to fetch notes")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
			return
		}

		if err := attachNoteCounts(database.DB, notes); err != nil {
			logger.Error().Err(err).Msg("Failed to attach note engagement")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
			return
		}

		if unfiltered {
			_ = database.CacheSet(notesCacheKey, notes, 30*time.Second)
		}
	}

	if err := attachNoteUserFlags(database.DB, notes, userID); err != nil {
		logger.Error().Err(err).Msg("Failed to attach note flags")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	c.JSON(http.StatusOK, notes)
}

// GetNote handles GET /notes/:id
func GetNote(c *gin.Context) {
	note, err := fetchNote(database.DB, c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, errors.NotFound("Note not found"))
		return
	}
	c.JSON(http.StatusOK, note)
}

// CreateNote handles POST /notes
func CreateNote(c *gin.Context) {
	userID := c.GetString("userId")

	var input CreateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := models.Note{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Subject:     input.Subject,
		Tags:        []string(input.Tags),
		FileURL:     input.FileURL,
		FileType:    input.FileType,
		FileSize:    input.FileSize,
		AuthorID:    userID,
	}

	if err := database.DB.Create(&note).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create note")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	go database.CacheInvalidate("notes:*")

	created, err := fetchNote(database.DB, note.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load note"})
		return
	}

	logger.Info().Str("note_id", note.ID).Str("user_id", userID).Msg("Note created")
	c.JSON(http.StatusCreated, created)
}

// toggleNoteReaction is the shared body of the three note toggles.
func toggleNoteReaction(c *gin.Context, kind models.ReactionKind) {
	userID := c.GetString("userId")
	noteID := c.Param("id")

	var note models.Note
	if err := database.DB.Select("id").First(&note, "id = ?", noteID).Error; err != nil {
		respondError(c, errors.NotFound("Note not found"))
		return
	}

	toggled, err := services.ToggleReaction(database.DB, models.EntityTypeNote, noteID, kind, userID)
	if err != nil {
		if err == services.ErrKindNotSupported {
			respondError(c, errors.BadRequest(err.Error()))
			return
		}
		logger.Error().Err(err).Msg("Failed to toggle reaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle reaction"})
		return
	}

	go database.CacheInvalidate("notes:*")

	updated, err := fetchNote(database.DB, noteID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": updated, "toggled": toggled})
}

// UpvoteNote handles POST /notes/:id/upvote
func UpvoteNote(c *gin.Context) {
	toggleNoteReaction(c, models.ReactionUpvote)
}

// LikeNote handles POST /notes/:id/like
func LikeNote(c *gin.Context) {
	toggleNoteReaction(c, models.ReactionLike)
}

// StarNote handles POST /notes/:id/star
func StarNote(c *gin.Context) {
	toggleNoteReaction(c, models.ReactionStar)
}

// AddNoteComment handles POST /notes/:id/comments
func AddNoteComment(c *gin.Context) {
	userID := c.GetString("userId")
	noteID := c.Param("id")

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		respondError(c, errors.BadRequest("Comment content is required"))
		return
	}

	var note models.Note
	if err := database.DB.Select("id").First(&note, "id = ?", noteID).Error; err != nil {
		respondError(c, errors.NotFound("Note not found"))
		return
	}

	comment := models.NoteComment{
		NoteID:   noteID,
		AuthorID: userID,
		Content:  content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	go database.CacheInvalidate("notes:*")

	updated, err := fetchNote(database.DB, noteID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load note"})
		return
	}

	c.JSON(http.StatusCreated, updated)
}

// DeleteNoteComment handles DELETE /notes/:id/comments/:commentId.
// Only the comment's author may remove it.
func DeleteNoteComment(c *gin.Context) {
	userID := c.GetString("userId")
	noteID := c.Param("id")
	commentID := c.Param("commentId")

	var comment models.NoteComment
	if err := database.DB.First(&comment, "id = ? AND note_id = ?", commentID, noteID).Error; err != nil {
		respondError(c, errors.NotFound("Comment not found"))
		return
	}

	if comment.AuthorID != userID {
		respondError(c, errors.Forbidden("Not allowed to delete this comment"))
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to delete comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	go database.CacheInvalidate("notes:*")

	updated, err := fetchNote(database.DB, noteID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load note"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RecordNoteView handles POST /notes/:id/view. Counts at most once per
// viewer identity, ever, and returns the repopulated note like every
// other mutation.
func RecordNoteView(c *gin.Context) {
	noteID := c.Param("id")

	var note models.Note
	if err := database.DB.Select("id").First(&note, "id = ?", noteID).Error; err != nil {
		respondError(c, errors.NotFound("Note not found"))
		return
	}

	counted, err := services.RecordView(database.DB, models.EntityTypeNote, noteID, viewerIdentity(c))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to record view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}

	if counted {
		go database.CacheInvalidate("notes:*")
	}

	updated, err := fetchNote(database.DB, noteID, c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": updated, "counted": counted})
}
