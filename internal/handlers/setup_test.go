package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/internal/config"
	"github.com/shriya7756/campusconnect-backend/internal/database"
	"github.com/shriya7756/campusconnect-backend/internal/middleware"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/shriya7756/campusconnect-backend/internal/routes"
	"github.com/shriya7756/campusconnect-backend/pkg/logger"
	"github.com/shriya7756/campusconnect-backend/pkg/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB wires the package globals to an in-memory sqlite database.
// The shared cache keeps the schema alive across connections within the
// test binary, so tests must use unique emails and ids.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{JWTSecret: "test_secret_key_12345"}
	logger.Init("test")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
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
	))

	database.DB = db
	return db
}

func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware())
	api := router.Group("/api")
	routes.RegisterAuthRoutes(api)
	routes.RegisterUserRoutes(api)
	routes.RegisterNoteRoutes(api)
	routes.RegisterQARoutes(api)
	routes.RegisterExchangeRoutes(api)
	routes.RegisterProgressRoutes(api)
	routes.RegisterFeedbackRoutes(api)
	return router
}

func createTestUser(t *testing.T, name, email string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)
	return user, token
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	return doRequestHeaders(router, method, path, token, body, nil)
}

func doRequestHeaders(router *gin.Engine, method, path, token string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
