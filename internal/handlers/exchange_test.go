package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemToggleResponse struct {
	Item    models.ExchangeItem `json:"item"`
	Toggled bool                `json:"toggled"`
}

func createItemVia(t *testing.T, router *gin.Engine, token, title, category string) models.ExchangeItem {
	t.Helper()
	w := doRequest(router, "POST", "/api/exchange", token, gin.H{
		"title":       title,
		"description": "Barely used, selling because the course ended.",
		"category":    category,
		"price":       350.0,
		"condition":   "Good",
		"contact":     gin.H{"email": "seller@campus.edu", "location": "Hostel B"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.ExchangeItem
	decodeJSON(t, w, &item)
	require.NotEmpty(t, item.ID)
	return item
}

func TestInterestToggle(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, aliceToken := createTestUser(t, "Alice", "alice-exchange-interest@campus.edu")
	_, bobToken := createTestUser(t, "Bob", "bob-exchange-interest@campus.edu")

	item := createItemVia(t, router, aliceToken, "Scientific Calculator", "Electronics")

	var resp itemToggleResponse
	w := doRequest(router, "POST", "/api/exchange/"+item.ID+"/interest", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.True(t, resp.Toggled)
	assert.Equal(t, int64(1), resp.Item.Interested)
	assert.True(t, resp.Item.HasInterest)
	assert.Equal(t, int64(0), resp.Item.Likes)

	w = doRequest(router, "POST", "/api/exchange/"+item.ID+"/interest", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Toggled)
	assert.Equal(t, int64(0), resp.Item.Interested)
	assert.False(t, resp.Item.HasInterest)
}

func TestItemLikeAndInterestIndependent(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, aliceToken := createTestUser(t, "Alice", "alice-exchange-like@campus.edu")
	item := createItemVia(t, router, aliceToken, "Drafting Table", "Furniture")

	var resp itemToggleResponse
	w := doRequest(router, "POST", "/api/exchange/"+item.ID+"/like", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.Equal(t, int64(1), resp.Item.Likes)
	assert.Equal(t, int64(0), resp.Item.Interested)
	assert.True(t, resp.Item.HasLiked)
	assert.False(t, resp.Item.HasInterest)
}

func TestItemCategoryFilter(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, token := createTestUser(t, "Seller", "seller-exchange-filter@campus.edu")

	// Unique categories keep this test independent of data created by
	// other tests against the shared in-memory database.
	booksCat := "Books-" + uuid.New().String()
	gadgetsCat := "Gadgets-" + uuid.New().String()

	createItemVia(t, router, token, "CLRS Textbook", booksCat)
	createItemVia(t, router, token, "Discrete Math Textbook", booksCat)
	createItemVia(t, router, token, "Raspberry Pi 4", gadgetsCat)

	w := doRequest(router, "GET", "/api/exchange?category="+booksCat, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.ExchangeItem
	decodeJSON(t, w, &items)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, booksCat, item.Category)
	}
}

func TestCreateItemValidation(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, token := createTestUser(t, "Seller", "seller-exchange-validate@campus.edu")

	// Missing price.
	w := doRequest(router, "POST", "/api/exchange", token, gin.H{
		"title":       "Mystery Box",
		"description": "No price given",
		"category":    "Misc",
		"condition":   "Good",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemViewDedup(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, aliceToken := createTestUser(t, "Alice", "alice-exchange-views@campus.edu")
	item := createItemVia(t, router, aliceToken, "Desk Lamp", "Furniture")

	var resp struct {
		Item    models.ExchangeItem `json:"item"`
		Counted bool                `json:"counted"`
	}

	headers := map[string]string{"X-User-Id": "window-shopper-1"}
	for i := 0; i < 2; i++ {
		w := doRequestHeaders(router, "POST", "/api/exchange/"+item.ID+"/view", "", nil, headers)
		require.Equal(t, http.StatusOK, w.Code)
		decodeJSON(t, w, &resp)
		assert.Equal(t, int64(1), resp.Item.Views)
		assert.Equal(t, i == 0, resp.Counted)
	}

	// The repopulated item rides along with the count.
	assert.Equal(t, item.ID, resp.Item.ID)
	assert.Equal(t, "Desk Lamp", resp.Item.Title)
}
