package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"skilltrack/internal/config"
	"skilltrack/internal/database"
	"skilltrack/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// The Prometheus middleware registers collectors in the default registry, so
// the test server is built exactly once and shared. Tests isolate themselves
// by registering their own users.
var (
	testOnce sync.Once
	testApp  *fiber.App
	testSrv  *Server
	testDB   *gorm.DB

	userCounter int64
)

func setupTestServer(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	testOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
		if err != nil {
			t.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
			t.Fatalf("Failed to migrate database: %v", err)
		}
		if err := database.SeedDefaultCategories(db); err != nil {
			t.Fatalf("Failed to seed categories: %v", err)
		}

		cfg := &config.Config{
			JWTSecret: "handler-test-secret-not-for-production",
			Port:      "8080",
			Env:       "test",
		}
		srv, err := NewServerWithDeps(cfg, db, nil)
		if err != nil {
			t.Fatalf("Failed to create server: %v", err)
		}

		app := fiber.New()
		srv.SetupRoutes(app)

		testApp, testSrv, testDB = app, srv, db
	})
	return testApp, testSrv
}

// doJSON performs a request against the test app and decodes the JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
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
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

type testUser struct {
	ID       uint
	Username string
	Token    string
}

const testPassword = "Sup3rSecret!pw"

// registerTestUser creates a fresh account through the real register endpoint.
func registerTestUser(t *testing.T) testUser {
	t.Helper()
	app, _ := setupTestServer(t)

	n := atomic.AddInt64(&userCounter, 1)
	username := fmt.Sprintf("user%d", n)

	status, resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, status)

	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	user, ok := resp["user"].(map[string]interface{})
	require.True(t, ok)
	id, ok := user["id"].(float64)
	require.True(t, ok)

	return testUser{ID: uint(id), Username: username, Token: token}
}

// categoryID looks a seeded category up by name.
func categoryID(t *testing.T, name string) uint {
	t.Helper()
	var category models.Category
	require.NoError(t, testDB.Where("name = ?", name).First(&category).Error)
	return category.ID
}

// createTestSkill makes a skill through the API and returns its ID.
func createTestSkill(t *testing.T, user testUser, name string) uint {
	t.Helper()
	app, _ := setupTestServer(t)

	status, resp := doJSON(t, app, http.MethodPost, "/api/skills", user.Token, fiber.Map{
		"category_id": categoryID(t, "Programming"),
		"name":        name,
	})
	require.Equal(t, http.StatusCreated, status)
	id, ok := resp["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

// logProgress records a practice entry for the skill through the API.
func logProgress(t *testing.T, user testUser, skillID uint, hours float64, level string, date string) uint {
	t.Helper()
	app, _ := setupTestServer(t)

	body := fiber.Map{
		"skill_id":          skillID,
		"hours_spent":       hours,
		"proficiency_level": level,
	}
	if date != "" {
		body["entry_date"] = date
	}
	status, resp := doJSON(t, app, http.MethodPost, "/api/progress", user.Token, body)
	require.Equal(t, http.StatusCreated, status)
	id, ok := resp["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func futureDateString(days int) string {
	return models.Today(time.Now()).AddDays(days).String()
}
