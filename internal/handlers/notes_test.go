package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteToggleResponse struct {
	Note    models.Note `json:"note"`
	Toggled bool        `json:"toggled"`
}

func createNoteVia(t *testing.T, router *gin.Engine, token, title string) models.Note {
	t.Helper()
	w := doRequest(router, "POST", "/api/notes", token, gin.H{
		"title":       title,
		"description": "A set of condensed revision notes.",
		"subject":     "Algorithms",
		"tags":        []string{"revision"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var note models.Note
	decodeJSON(t, w, &note)
	require.NotEmpty(t, note.ID)
	return note
}

func TestNoteUpvoteToggleIsInverse(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, aliceToken := createTestUser(t, "Alice", "alice-note-toggle@campus.edu")
	_, bobToken := createTestUser(t, "Bob", "bob-note-toggle@campus.edu")

	note := createNoteVia(t, router, aliceToken, "Graph Traversals")

	w := doRequest(router, "POST", "/api/notes/"+note.ID+"/upvote", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp noteToggleResponse
	decodeJSON(t, w, &resp)
	assert.True(t, resp.Toggled)
	assert.Equal(t, int64(1), resp.Note.Upvotes)
	assert.True(t, resp.Note.HasUpvoted)

	// Second toggle undoes the first.
	w = doRequest(router, "POST", "/api/notes/"+note.ID+"/upvote", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Toggled)
	assert.Equal(t, int64(0), resp.Note.Upvotes)
	assert.False(t, resp.Note.HasUpvoted)
}

func TestNoteReactionKindsAreIndependent(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, aliceToken := createTestUser(t, "Alice", "alice-note-kinds@campus.edu")
	note := createNoteVia(t, router, aliceToken, "Dynamic Programming Patterns")

	w := doRequest(router, "POST", "/api/notes/"+note.ID+"/like", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp noteToggleResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, int64(1), resp.Note.Likes)
	assert.Equal(t, int64(0), resp.Note.Upvotes)
	assert.Equal(t, int64(0), resp.Note.Stars)
	assert.True(t, resp.Note.HasLiked)
	assert.False(t, resp.Note.HasUpvoted)

	w = doRequest(router, "POST", "/api/notes/"+note.ID+"/star", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.Equal(t, int64(1), resp.Note.Likes)
	assert.Equal(t, int64(1), resp.Note.Stars)
}

func TestNoteCountEqualsMembership(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, authorToken := createTestUser(t, "Author", "author-note-counts@campus.edu")
	note := createNoteVia(t, router, authorToken, "Number Theory Basics")

	tokens := make([]string, 3)
	emails := []string{
		"voter1-note-counts@campus.edu",
		"voter2-note-counts@campus.edu",
		"voter3-note-counts@campus.edu",
	}
	for i, email := range emails {
		_, tok := createTestUser(t, "Voter", email)
		tokens[i] = tok
		w := doRequest(router, "POST", "/api/notes/"+note.ID+"/upvote", tok, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var resp noteToggleResponse
	w := doRequest(router, "POST", "/api/notes/"+note.ID+"/upvote", tokens[0], nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)

	// 3 upvoted, 1 retracted: count must equal remaining membership.
	assert.Equal(t, int64(2), resp.Note.Upvotes)
}

func TestNoteCommentAddAndDelete(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, aliceToken := createTestUser(t, "Alice", "alice-note-comment@campus.edu")
	bob, bobToken := createTestUser(t, "Bob", "bob-note-comment@campus.edu")
	_, carolToken := createTestUser(t, "Carol", "carol-note-comment@campus.edu")

	note := createNoteVia(t, router, aliceToken, "Sorting Cheatsheet")

	w := doRequest(router, "POST", "/api/notes/"+note.ID+"/comments", bobToken, gin.H{
		"content": "  Very helpful, thanks!  ",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var updated models.Note
	decodeJSON(t, w, &updated)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, "Very helpful, thanks!", updated.Comments[0].Content)
	assert.Equal(t, bob.ID, updated.Comments[0].AuthorID)
	assert.Equal(t, int64(1), updated.CommentCount)

	commentID := updated.Comments[0].ID

	// Blank comments are rejected.
	w = doRequest(router, "POST", "/api/notes/"+note.ID+"/comments", bobToken, gin.H{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Only the comment author may delete.
	w = doRequest(router, "DELETE", "/api/notes/"+note.ID+"/comments/"+commentID, carolToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, "DELETE", "/api/notes/"+note.ID+"/comments/"+commentID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &updated)
	assert.Len(t, updated.Comments, 0)
	assert.Equal(t, int64(0), updated.CommentCount)

	// Deleting again is a 404, not an error.
	w = doRequest(router, "DELETE", "/api/notes/"+note.ID+"/comments/"+commentID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteViewDedup(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, aliceToken := createTestUser(t, "Alice", "alice-note-views@campus.edu")
	note := createNoteVia(t, router, aliceToken, "Compiler Phases")

	anon := map[string]string{"X-User-Id": "anon-device-1"}

	var resp struct {
		Note    models.Note `json:"note"`
		Counted bool        `json:"counted"`
	}

	for i := 0; i < 3; i++ {
		w := doRequestHeaders(router, "POST", "/api/notes/"+note.ID+"/view", "", nil, anon)
		require.Equal(t, http.StatusOK, w.Code)
		decodeJSON(t, w, &resp)
		assert.Equal(t, int64(1), resp.Note.Views)
		assert.Equal(t, i == 0, resp.Counted)
	}

	// The response carries the full note, not just the count.
	assert.Equal(t, note.ID, resp.Note.ID)
	assert.Equal(t, "Compiler Phases", resp.Note.Title)
	assert.NotEmpty(t, resp.Note.Author.Name)

	// A different viewer identity counts once more.
	w := doRequestHeaders(router, "POST", "/api/notes/"+note.ID+"/view", "", nil,
		map[string]string{"X-User-Id": "anon-device-2"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.Equal(t, int64(2), resp.Note.Views)
	assert.True(t, resp.Counted)

	// A viewer without any identity is not counted.
	w = doRequest(router, "POST", "/api/notes/"+note.ID+"/view", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.Equal(t, int64(2), resp.Note.Views)
	assert.False(t, resp.Counted)
}

func TestNoteEndpointsRequireAuth(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	w := doRequest(router, "POST", "/api/notes", "", gin.H{
		"title":       "No auth",
		"description": "Should fail",
		"subject":     "Misc",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, "POST", "/api/notes/some-id/upvote", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNoteToggleUnknownNote(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, token := createTestUser(t, "Alice", "alice-note-missing@campus.edu")

	w := doRequest(router, "POST", "/api/notes/does-not-exist/upvote", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Note not found")
}

func TestNoteSearchFilter(t *testing.T) {
	SetupTestDB(t)
	router := setupRouter()

	_, token := createTestUser(t, "Alice", "alice-note-search@campus.edu")

	// Unique marker keeps this test independent of notes created by
	// other tests against the shared in-memory database.
	byTitle := gin.H{
		"title":       "Zyxwvut Scheduling Algorithms",
		"description": "Round robin and friends.",
		"subject":     "Operating Systems",
	}
	byDescription := gin.H{
		"title":       "Process Basics",
		"description": "Covers the zyxwvut scheduler in depth.",
		"subject":     "Operating Systems",
	}
	byTag := gin.H{
		"title":       "Exam Prep",
		"description": "Mixed questions.",
		"subject":     "Operating Systems",
		"tags":        []string{"zyxwvut", "exams"},
	}
	unrelated := gin.H{
		"title":       "Linear Algebra Notes",
		"description": "Vectors and matrices.",
		"subject":     "Mathematics",
	}
	for _, payload := range []gin.H{byTitle, byDescription, byTag, unrelated} {
		w := doRequest(router, "POST", "/api/notes", token, payload)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Matches across title, description and tags, case-insensitively.
	w := doRequest(router, "GET", "/api/notes?q=ZYXWVUT", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var notes []models.Note
	decodeJSON(t, w, &notes)
	require.Len(t, notes, 3)
	for _, n := range notes {
		assert.NotEqual(t, "Linear Algebra Notes", n.Title)
	}

	w = doRequest(router, "GET", "/api/notes?q=zyxwvut+scheduling", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "Zyxwvut Scheduling Algorithms", notes[0].Title)
}
