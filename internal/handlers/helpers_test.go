package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/ahmed123456787/recipe-api/internal/config"
	"github.com/ahmed123456787/recipe-api/internal/database"
	"github.com/ahmed123456787/recipe-api/internal/dto"
	"github.com/ahmed123456787/recipe-api/internal/handlers"
	"github.com/ahmed123456787/recipe-api/internal/routes"
	"github.com/ahmed123456787/recipe-api/internal/services"
	"github.com/ahmed123456787/recipe-api/internal/storage"
	"github.com/ahmed123456787/recipe-api/internal/testutil"
)

// newTestApp wires the full route table against an isolated in-memory
// database. Every test gets its own app, database and media root.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db := testutil.OpenDB(t)
	database.DB = db

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
		MediaRoot:        t.TempDir(),
	}

	authService := services.NewAuthService(db, cfg)
	recipeService := services.NewRecipeService(db)
	tagService := services.NewTagService(db)
	ingredientService := services.NewIngredientService(db)
	imageStore := storage.NewImageStore(cfg.MediaRoot)

	app := fiber.New(fiber.Config{BodyLimit: 12 * 1024 * 1024})
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(),
		handlers.NewRecipeHandler(recipeService, imageStore),
		handlers.NewTagHandler(tagService),
		handlers.NewIngredientHandler(ingredientService),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
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
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerUser creates an account through the API and returns its access token.
func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email":    email,
		"name":     "Test User",
		"password": "testpass123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var auth dto.AuthResponse
	decodeJSON(t, resp, &auth)
	require.NotEmpty(t, auth.AccessToken)
	return auth.AccessToken
}
