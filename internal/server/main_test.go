package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogify/internal/cache"
	"blogify/internal/config"
	"blogify/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer wires a full server against in-memory sqlite and
// miniredis so handlers, services, and repositories are exercised together.
func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Blog{}, &models.Comment{}))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(redisClient)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		JWTSecret:        "test-secret-test-secret-test-secret",
		Port:             "0",
		Env:              "test",
		UploadDir:        t.TempDir(),
		CoverMaxSizeMB:   5,
		AvatarMaxSizeMB:  2,
		DefaultAvatarURL: "/default.svg",
	}

	s, err := NewServerWithDeps(cfg, db, redisClient)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return s, app, db
}

// doJSON performs a request with an optional JSON body and token cookie and
// decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: token})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// signupUser registers an account and returns its token and user id.
func signupUser(t *testing.T, app *fiber.App, fullName, email string) (string, uint) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/user/signup", map[string]string{
		"full_name": fullName,
		"email":     email,
		"password":  "Password123",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup failed: %v", body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	return token, uint(id)
}

// promoteToAdmin flips an account's role directly in the database.
func promoteToAdmin(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("role", models.RoleAdmin).Error)
}

// createBlog posts a blog as the given user and returns its id.
func createBlog(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/blog/", map[string]string{
		"title": title,
		"body":  "Some body text",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create blog failed: %v", body)

	id, _ := body["id"].(float64)
	require.NotZero(t, id)
	return uint(id)
}

func blogPath(id uint) string {
	return fmt.Sprintf("/blog/%d", id)
}
