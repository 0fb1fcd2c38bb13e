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

type CreateItemInput struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Category    string                 `json:"category" binding:"required"`
	Price       *float64               `json:"price" binding:"required"`
	Condition   string                 `json:"condition" binding:"required"`
	Tags        FlexTags               `json:"tags"`
	Images      []string               `json:"images"`
	Contact     models.ExchangeContact `json:"contact"`
}

func attachItemEngagement(db *gorm.DB, items []models.ExchangeItem, userID string) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}

	interested, err := services.ReactionCounts(db, models.EntityTypeExchangeItem, models.ReactionInterest, ids)
	if err != nil {
		return err
	}
	likes, err := services.ReactionCounts(db, models.EntityTypeExchangeItem, models.ReactionLike, ids)
	if err != nil {
		return err
	}
	views, err := services.ViewCounts(db, models.EntityTypeExchangeItem, ids)
	if err != nil {
		return err
	}
	hasInterest, err := services.ReactedSet(db, models.EntityTypeExchangeItem, models.ReactionInterest, userID, ids)
	if err != nil {
		return err
	}
	hasLiked, err := services.ReactedSet(db, models.EntityTypeExchangeItem, models.ReactionLike, userID, ids)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].Interested = interested[items[i].ID]
		items[i].Likes = likes[items[i].ID]
		items[i].Views = views[items[i].ID]
		items[i].HasInterest = hasInterest[items[i].ID]
		items[i].HasLiked = hasLiked[items[i].ID]
	}
	return nil
}

func fetchItem(db *gorm.DB, itemID, userID string) (*models.ExchangeItem, error) {
	var item models.ExchangeItem
	if err := db.Preload("Seller").First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	items := []models.ExchangeItem{item}
	if err := attachItemEngagement(db, items, userID); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// ListItems handles GET /exchange with optional q, category and
// condition filters. "All Categories" and "All Conditions" are
// treated as no filter.
func ListItems(c *gin.Context) {
	userID := c.GetString("userId")
	q := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("category"))
	condition := strings.TrimSpace(c.Query("condition"))

	query := database.DB.Preload("Seller").Order("created_at DESC")
	if category != "" && category != "All Categories" {
		query = query.Where("category = ?", category)
	}
	if condition != "" && condition != "All Conditions" {
		query = query.Where("condition = ?", condition)
	}
	if q != "" {
		query = applySearch(query, q)
	}

	var items []models.ExchangeItem
	if err := query.Find(&items).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to fetch items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	if err := attachItemEngagement(database.DB, items, userID); err != nil {
		logger.Error().Err(err).Msg("Failed to attach item engagement")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetItem handles GET /exchange/:id
func GetItem(c *gin.Context) {
	item, err := fetchItem(database.DB, c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, errors.NotFound("Item not found"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /exchange
func CreateItem(c *gin.Context) {
	userID := c.GetString("userId")

	var input CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.ExchangeItem{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Price:       *input.Price,
		Condition:   input.Condition,
		Tags:        []string(input.Tags),
		Images:      input.Images,
		Contact:     input.Contact,
		SellerID:    userID,
	}

	if err := database.DB.Create(&item).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	created, err := fetchItem(database.DB, item.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	logger.Info().Str("item_id", item.ID).Str("user_id", userID).Msg("Exchange item created")
	c.JSON(http.StatusCreated, created)
}

func toggleItemReaction(c *gin.Context, kind models.ReactionKind) {
	userID := c.GetString("userId")
	itemID := c.Param("id")

	var item models.ExchangeItem
	if err := database.DB.Select("id").First(&item, "id = ?", itemID).Error; err != nil {
		respondError(c, errors.NotFound("Item not found"))
		return
	}

	toggled, err := services.ToggleReaction(database.DB, models.EntityTypeExchangeItem, itemID, kind, userID)
	if err != nil {
		if err == services.ErrKindNotSupported {
			respondError(c, errors.BadRequest(err.Error()))
			return
		}
		logger.Error().Err(err).Msg("Failed to toggle item reaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle reaction"})
		return
	}

	updated, err := fetchItem(database.DB, itemID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": updated, "toggled": toggled})
}

// ToggleInterest handles POST /exchange/:id/interest
func ToggleInterest(c *gin.Context) {
	toggleItemReaction(c, models.ReactionInterest)
}

// ToggleItemLike handles POST /exchange/:id/like
func ToggleItemLike(c *gin.Context) {
	toggleItemReaction(c, models.ReactionLike)
}

// RecordItemView handles POST /exchange/:id/view and responds with the
// repopulated item.
func RecordItemView(c *gin.Context) {
	itemID := c.Param("id")

	var item models.ExchangeItem
	if err := database.DB.Select("id").First(&item, "id = ?", itemID).Error; err != nil {
		respondError(c, errors.NotFound("Item not found"))
		return
	}

	counted, err := services.RecordView(database.DB, models.EntityTypeExchangeItem, itemID, viewerIdentity(c))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to record view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}

	updated, err := fetchItem(database.DB, itemID, c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": updated, "counted": counted})
}
