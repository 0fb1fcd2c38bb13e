package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/database"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/shriya7756/campusconnect-backend/internal/services"
	"github.com/shriya7756/campusconnect-backend/pkg/errors"
	"github.com/shriya7756/campusconnect-backend/pkg/logger"
	"gorm.io/gorm"
)

type CreateQuestionInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Subject     string   `json:"subject"`
	Tags        FlexTags `json:"tags"`
}

type AnswerInput struct {
	Content string `json:"content"`
}

// attachQuestionEngagement fills derived fields for questions and their
// nested answers. Answer ids are batched across the whole page so the
// ledger is hit a fixed number of times regardless of page size.
func attachQuestionEngagement(db *gorm.DB, questions []models.Question, userID string) error {
	if len(questions) == 0 {
		return nil
	}

	questionIDs := make([]string, len(questions))
	var answerIDs []string
	for i := range questions {
		questionIDs[i] = questions[i].ID
		for j := range questions[i].Answers {
			answerIDs = append(answerIDs, questions[i].Answers[j].ID)
		}
	}

	qUpvotes, err := services.ReactionCounts(db, models.EntityTypeQuestion, models.ReactionUpvote, questionIDs)
	if err != nil {
		return err
	}
	qViews, err := services.ViewCounts(db, models.EntityTypeQuestion, questionIDs)
	if err != nil {
		return err
	}
	qReacted, err := services.ReactedSet(db, models.EntityTypeQuestion, models.ReactionUpvote, userID, questionIDs)
	if err != nil {
		return err
	}

	aUpvotes, err := services.ReactionCounts(db, models.EntityTypeAnswer, models.ReactionUpvote, answerIDs)
	if err != nil {
		return err
	}
	aReacted, err := services.ReactedSet(db, models.EntityTypeAnswer, models.ReactionUpvote, userID, answerIDs)
	if err != nil {
		return err
	}

	for i := range questions {
		q := &questions[i]
		q.Upvotes = qUpvotes[q.ID]
		q.Views = qViews[q.ID]
		q.HasUpvoted = qReacted[q.ID]
		for j := range q.Answers {
			a := &q.Answers[j]
			a.Upvotes = aUpvotes[a.ID]
			a.HasUpvoted = aReacted[a.ID]
		}
	}
	return nil
}

func questionQuery(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").
		Preload("Answers", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("answers.created_at ASC")
		}).
		Preload("Answers.Author")
}

func fetchQuestion(db *gorm.DB, questionID, userID string) (*models.Question, error) {
	var question models.Question
	if err := questionQuery(db).First(&question, "id = ?", questionID).Error; err != nil {
		return nil, err
	}
	questions := []models.Question{question}
	if err := attachQuestionEngagement(db, questions, userID); err != nil {
		return nil, err
	}
	return &questions[0], nil
}

// ListQuestions handles GET /qa/questions with optional q and subject filters.
func ListQuestions(c *gin.Context) {
	userID := c.GetString("userId")
	q := strings.TrimSpace(c.Query("q"))
	subject := strings.TrimSpace(c.Query("subject"))

	query := questionQuery(database.DB).Order("created_at DESC")
	if subject != "" && subject != "All Subjects" {
		query = query.Where("subject = ?", subject)
	}
	if q != "" {
		query = applySearch(query, q)
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to fetch questions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	if err := attachQuestionEngagement(database.DB, questions, userID); err != nil {
		logger.Error().Err(err).Msg("Failed to attach question engagement")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, questions)
}

// GetQuestion handles GET /qa/questions/:id
func GetQuestion(c *gin.Context) {
	question, err := fetchQuestion(database.DB, c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, errors.NotFound("Question not found"))
		return
	}
	c.JSON(http.StatusOK, question)
}

// CreateQuestion handles POST /qa/questions
func CreateQuestion(c *gin.Context) {
	userID := c.GetString("userId")

	var input CreateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question := models.Question{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Subject:     input.Subject,
		Tags:        []string(input.Tags),
		AuthorID:    userID,
	}

	if err := database.DB.Create(&question).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create question")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	created, err := fetchQuestion(database.DB, question.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load question"})
		return
	}

	logger.Info().Str("question_id", question.ID).Str("user_id", userID).Msg("Question created")
	c.JSON(http.StatusCreated, created)
}

// AddAnswer handles POST /qa/questions/:id/answers
func AddAnswer(c *gin.Context) {
	userID := c.GetString("userId")
	questionID := c.Param("id")

	var input AnswerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		respondError(c, errors.BadRequest("Answer content is required"))
		return
	}

	var question models.Question
	if err := database.DB.Select("id").First(&question, "id = ?", questionID).Error; err != nil {
		respondError(c, errors.NotFound("Question not found"))
		return
	}

	answer := models.Answer{
		QuestionID: questionID,
		AuthorID:   userID,
		Content:    content,
	}
	if err := database.DB.Create(&answer).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create answer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
		return
	}

	updated, err := fetchQuestion(database.DB, questionID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load question"})
		return
	}

	c.JSON(http.StatusCreated, updated)
}

// DeleteAnswer handles DELETE /qa/questions/:id/answers/:answerId.
// Only the answer's author may remove it.
func DeleteAnswer(c *gin.Context) {
	userID := c.GetString("userId")
	questionID := c.Param("id")
	answerID := c.Param("answerId")

	var answer models.Answer
	if err := database.DB.First(&answer, "id = ? AND question_id = ?", answerID, questionID).Error; err != nil {
		respondError(c, errors.NotFound("Answer not found"))
		return
	}

	if answer.AuthorID != userID {
		respondError(c, errors.Forbidden("Not allowed to delete this answer"))
		return
	}

	if err := database.DB.Delete(&answer).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to delete answer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete answer"})
		return
	}

	updated, err := fetchQuestion(database.DB, questionID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load question"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UpvoteQuestion handles POST /qa/questions/:id/upvote
func UpvoteQuestion(c *gin.Context) {
	userID := c.GetString("userId")
	questionID := c.Param("id")

	var question models.Question
	if err := database.DB.Select("id").First(&question, "id = ?", questionID).Error; err != nil {
		respondError(c, errors.NotFound("Question not found"))
		return
	}

	toggled, err := services.ToggleReaction(database.DB, models.EntityTypeQuestion, questionID, models.ReactionUpvote, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to toggle question upvote")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle upvote"})
		return
	}

	updated, err := fetchQuestion(database.DB, questionID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": updated, "toggled": toggled})
}

// UpvoteAnswer handles POST /qa/questions/:id/answers/:answerId/upvote.
// The answer's set is independent of its parent question's.
func UpvoteAnswer(c *gin.Context) {
	userID := c.GetString("userId")
	questionID := c.Param("id")
	answerID := c.Param("answerId")

	var answer models.Answer
	if err := database.DB.Select("id").First(&answer, "id = ? AND question_id = ?", answerID, questionID).Error; err != nil {
		respondError(c, errors.NotFound("Answer not found"))
		return
	}

	toggled, err := services.ToggleReaction(database.DB, models.EntityTypeAnswer, answerID, models.ReactionUpvote, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to toggle answer upvote")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle upvote"})
		return
	}

	updated, err := fetchQuestion(database.DB, questionID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": updated, "toggled": toggled})
}

// RecordQuestionView handles POST /qa/questions/:id/view and responds
// with the repopulated question.
func RecordQuestionView(c *gin.Context) {
	questionID := c.Param("id")

	var question models.Question
	if err := database.DB.Select("id").First(&question, "id = ?", questionID).Error; err != nil {
		respondError(c, errors.NotFound("Question not found"))
		return
	}

	counted, err := services.RecordView(database.DB, models.EntityTypeQuestion, questionID, viewerIdentity(c))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to record view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}

	updated, err := fetchQuestion(database.DB, questionID, c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": updated, "counted": counted})
}
