package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"streaming-backend/internal/config"
	"streaming-backend/internal/database"
	"streaming-backend/internal/handlers"
	"streaming-backend/internal/middleware"
	"streaming-backend/internal/models"
	"streaming-backend/internal/repository"
	"streaming-backend/internal/routes"
	"streaming-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	db  *database.Database
}

func setupTestApp(t *testing.T) *testEnv {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A second pooled connection would see its own empty in-memory database.
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(gormDB))
	db := database.New(gormDB, config.DatabaseConfig{QueryTimeout: 5 * time.Second})

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	genreRepo := repository.NewGenreRepository(db)
	personRepo := repository.NewPersonRepository(db)
	contentRepo := repository.NewContentRepository(db)
	seasonRepo := repository.NewSeasonRepository(db)
	userRepo := repository.NewUserRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)

	tokenService := services.NewTokenService("test-secret", time.Hour)
	catalogService := services.NewCatalogService(contentRepo, genreRepo, personRepo, seasonRepo, log)
	engagementService := services.NewEngagementService(engagementRepo, log)
	accountService := services.NewAccountService(userRepo, tokenService, log)

	auth := middleware.NewAuth(tokenService)
	app := fiber.New()
	routes.Setup(app, auth,
		handlers.NewCatalogHandler(catalogService, log),
		handlers.NewEngagementHandler(engagementService, log),
		handlers.NewAccountHandler(accountService, log),
		handlers.NewUploadHandler(nil, log),
	)

	return &testEnv{app: app, db: db}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) registerAndLogin(t *testing.T, username string) string {
	resp := e.request(t, http.MethodPost, "/api/v1/register", "", fiber.Map{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "hunter22",
		"password_confirm": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.request(t, http.MethodPost, "/api/v1/auth/token", "", fiber.Map{
		"username": username,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func (e *testEnv) seedContent(t *testing.T, title string) models.Content {
	content := models.Content{
		Title:       title,
		Description: "description",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2021-01-01",
	}
	require.NoError(t, e.db.Create(&content).Error)
	return content
}

func TestRegisterAndAuthFlow(t *testing.T) {
	env := setupTestApp(t)
	token := env.registerAndLogin(t, "alice")

	t.Run("me requires a token", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Authentication required", body["detail"])
	})

	t.Run("me returns the caller", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		decodeBody(t, resp, &body)
		assert.Equal(t, "alice", body["username"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/auth/token", "", fiber.Map{
			"username": "alice",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestFavoriteEndpoints(t *testing.T) {
	env := setupTestApp(t)
	token := env.registerAndLogin(t, "alice")
	content := env.seedContent(t, "Steel Horizon")

	t.Run("anonymous post is rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/favorites", "", fiber.Map{
			"content_id": content.ID,
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("first post creates", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/favorites", token, fiber.Map{
			"content_id": content.ID,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]interface{}
		decodeBody(t, resp, &body)
		favContent := body["content"].(map[string]interface{})
		assert.Equal(t, "Steel Horizon", favContent["title"])
	})

	t.Run("second post conflicts", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/favorites", token, fiber.Map{
			"content_id": content.ID,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Content is already in favorites", body["detail"])
	})

	t.Run("list and delete", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/favorites", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var favorites []map[string]interface{}
		decodeBody(t, resp, &favorites)
		require.Len(t, favorites, 1)

		id := favorites[0]["id"].(float64)
		resp = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/favorites/%d", int(id)), token, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = env.request(t, http.MethodGet, "/api/v1/favorites", token, nil)
		favorites = nil
		decodeBody(t, resp, &favorites)
		assert.Empty(t, favorites)
	})
}

func TestWatchHistoryEndpoints(t *testing.T) {
	env := setupTestApp(t)
	token := env.registerAndLogin(t, "alice")
	content := env.seedContent(t, "Quiet Rivers")

	t.Run("post without target is rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/history", token, fiber.Map{
			"progress": 10,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Content or episode is required", body["detail"])
	})

	t.Run("repeated posts upsert", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/v1/history", token, fiber.Map{
			"content_id": content.ID,
			"progress":   120,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = env.request(t, http.MethodPost, "/api/v1/history", token, fiber.Map{
			"content_id": content.ID,
			"completed":  true,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var entry map[string]interface{}
		decodeBody(t, resp, &entry)
		assert.Equal(t, float64(120), entry["progress"])
		assert.Equal(t, true, entry["completed"])

		resp = env.request(t, http.MethodGet, "/api/v1/history", token, nil)
		var entries []map[string]interface{}
		decodeBody(t, resp, &entries)
		assert.Len(t, entries, 1)
	})
}

func TestRecommendationsEndpoint(t *testing.T) {
	env := setupTestApp(t)

	t.Run("anonymous is rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/v1/contents/recommendations", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Authentication required", body["detail"])
	})

	t.Run("authenticated with empty history gets an empty list", func(t *testing.T) {
		token := env.registerAndLogin(t, "alice")
		resp := env.request(t, http.MethodGet, "/api/v1/contents/recommendations", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var contents []map[string]interface{}
		decodeBody(t, resp, &contents)
		assert.Empty(t, contents)
	})
}

func TestContentListingEndpoint(t *testing.T) {
	env := setupTestApp(t)
	env.seedContent(t, "Steel Horizon")
	env.seedContent(t, "Quiet Rivers")

	resp := env.request(t, http.MethodGet, "/api/v1/contents?search=steel", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Results []map[string]interface{} `json:"results"`
		Meta    map[string]interface{}   `json:"meta"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Steel Horizon", body.Results[0]["title"])
	assert.Equal(t, float64(1), body.Meta["total"])
}

func TestProfileEndpoints(t *testing.T) {
	env := setupTestApp(t)
	token := env.registerAndLogin(t, "alice")

	resp := env.request(t, http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]interface{}
	decodeBody(t, resp, &profile)
	assert.Equal(t, "alice", profile["username"])
	assert.Equal(t, "en", profile["preferred_language"])

	resp = env.request(t, http.MethodPatch, "/api/v1/profile", token, fiber.Map{
		"preferred_language": "de",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	profile = nil
	decodeBody(t, resp, &profile)
	assert.Equal(t, "de", profile["preferred_language"])
}
