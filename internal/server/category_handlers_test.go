package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategories(t *testing.T) {
	app, _ := setupTestServer(t)
	user := registerTestUser(t)

	t.Run("returns the seeded set alphabetically", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/categories", user.Token, nil)
		require.Equal(t, http.StatusOK, status)

		categories, ok := body["categories"].([]interface{})
		require.True(t, ok)
		require.Len(t, categories, 9)
		first := categories[0].(map[string]interface{})
		assert.Equal(t, "Art", first["name"])
	})

	t.Run("with_counts scopes skill counts to the caller", func(t *testing.T) {
		createTestSkill(t, user, "Go")
		createTestSkill(t, user, "Rust")

		status, body := doJSON(t, app, http.MethodGet, "/api/categories?with_counts=true", user.Token, nil)
		require.Equal(t, http.StatusOK, status)

		categories, ok := body["categories"].([]interface{})
		require.True(t, ok)
		counts := map[string]float64{}
		for _, raw := range categories {
			category := raw.(map[string]interface{})
			if n, ok := category["skill_count"].(float64); ok {
				counts[category["name"].(string)] = n
			}
		}
		assert.Equal(t, float64(2), counts["Programming"])
		assert.Zero(t, counts["Music"])
	})
}

func TestGetCategory(t *testing.T) {
	app, _ := setupTestServer(t)
	user := registerTestUser(t)

	id := categoryID(t, "Design")
	status, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/categories/%d", id), user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Design", body["name"])

	status, resp := doJSON(t, app, http.MethodGet, "/api/categories/9999", user.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", resp["code"])
}
