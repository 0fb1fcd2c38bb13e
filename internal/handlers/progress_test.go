package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressLazyCreation(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, token := createTestUser(t, "Alice", "alice-progress-lazy@campus.edu")

	w := doRequest(router, "GET", "/api/progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var progress models.Progress
	decodeJSON(t, w, &progress)
	assert.Equal(t, "dsa", progress.ActiveTrack)
	assert.Empty(t, progress.CompletedTopicIDs)
}

func TestToggleTopic(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, token := createTestUser(t, "Bob", "bob-progress-toggle@campus.edu")

	var resp struct {
		Progress  models.Progress `json:"progress"`
		Completed bool            `json:"completed"`
	}

	w := doRequest(router, "POST", "/api/progress/toggle", token, gin.H{"topicId": 5})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.True(t, resp.Completed)
	assert.Contains(t, []int64(resp.Progress.CompletedTopicIDs), int64(5))

	w = doRequest(router, "POST", "/api/progress/toggle", token, gin.H{"topicId": 9})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.Len(t, []int64(resp.Progress.CompletedTopicIDs), 2)

	// Toggling an existing topic removes it.
	w = doRequest(router, "POST", "/api/progress/toggle", token, gin.H{"topicId": 5})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Completed)
	assert.NotContains(t, []int64(resp.Progress.CompletedTopicIDs), int64(5))
	assert.Contains(t, []int64(resp.Progress.CompletedTopicIDs), int64(9))
}

func TestToggleTopicRequiresNumber(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, token := createTestUser(t, "Carol", "carol-progress-badinput@campus.edu")

	w := doRequest(router, "POST", "/api/progress/toggle", token, gin.H{"topicId": "five"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, "POST", "/api/progress/toggle", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetActiveTrack(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, token := createTestUser(t, "Dave", "dave-progress-track@campus.edu")

	w := doRequest(router, "POST", "/api/progress/track", token, gin.H{"track": "webdev"})
	require.Equal(t, http.StatusOK, w.Code)

	var progress models.Progress
	decodeJSON(t, w, &progress)
	assert.Equal(t, "webdev", progress.ActiveTrack)

	// Track change does not clear completed topics.
	doRequest(router, "POST", "/api/progress/toggle", token, gin.H{"topicId": 3})
	w = doRequest(router, "POST", "/api/progress/track", token, gin.H{"track": "dsa"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &progress)
	assert.Equal(t, "dsa", progress.ActiveTrack)
	assert.Contains(t, []int64(progress.CompletedTopicIDs), int64(3))
}

func TestProgressIsPerUser(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, aliceToken := createTestUser(t, "Alice", "alice-progress-isolated@campus.edu")
	_, bobToken := createTestUser(t, "Bob", "bob-progress-isolated@campus.edu")

	doRequest(router, "POST", "/api/progress/toggle", aliceToken, gin.H{"topicId": 7})

	w := doRequest(router, "GET", "/api/progress", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var progress models.Progress
	decodeJSON(t, w, &progress)
	assert.Empty(t, progress.CompletedTopicIDs)
}
