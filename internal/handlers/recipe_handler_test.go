package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmed123456787/recipe-api/internal/dto"
)

func createRecipe(t *testing.T, app *fiber.App, token string, body fiber.Map) dto.RecipeDetail {
	t.Helper()

	if _, ok := body["title"]; !ok {
		body["title"] = "Sample recipe"
	}
	if _, ok := body["time_minutes"]; !ok {
		body["time_minutes"] = 22
	}
	if _, ok := body["price"]; !ok {
		body["price"] = "23.34"
	}

	resp := doJSON(t, app, "POST", "/api/recipes/", token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var detail dto.RecipeDetail
	decodeJSON(t, resp, &detail)
	return detail
}

func TestRecipes_RequireAuth(t *testing.T) {
	app := newTestApp(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/recipes/"},
		{"POST", "/api/recipes/"},
		{"GET", "/api/recipes/1"},
		{"PATCH", "/api/recipes/1"},
		{"DELETE", "/api/recipes/1"},
	} {
		resp := doJSON(t, app, route.method, route.path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestCreateRecipe_WithTagsAndIngredients(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	detail := createRecipe(t, app, token, fiber.Map{
		"title":        "Avocado lime cheesecake",
		"time_minutes": 60,
		"price":        "20.00",
		"link":         "https://example.com/cheesecake",
		"tags":         []fiber.Map{{"name": "Vegan"}, {"name": "Dessert"}},
		"ingredients":  []fiber.Map{{"name": "Avocado"}, {"name": "Lime"}},
	})

	assert.Equal(t, "Avocado lime cheesecake", detail.Title)
	assert.Equal(t, 60, detail.TimeMinutes)
	assert.Equal(t, "20", detail.Price.String())
	assert.Len(t, detail.Tags, 2)
	assert.Len(t, detail.Ingredients, 2)
	assert.Empty(t, detail.Image)

	// Tags are visible on the tag listing too.
	resp := doJSON(t, app, "GET", "/api/tags/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var tags []dto.TagResponse
	decodeJSON(t, resp, &tags)
	assert.Len(t, tags, 2)
}

func TestCreateRecipe_MissingTitle(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	resp := doJSON(t, app, "POST", "/api/recipes/", token, fiber.Map{
		"time_minutes": 30,
		"price":        "5.00",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Contains(t, body.Fields, "Title")
}

func TestCreateRecipe_InvalidPrice(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	for _, price := range []string{"-1.00", "1000.00", "5.123"} {
		resp := doJSON(t, app, "POST", "/api/recipes/", token, fiber.Map{
			"title":        "Bad price",
			"time_minutes": 10,
			"price":        price,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "price %s", price)
	}
}

func TestListRecipes_OwnerIsolationAndOrder(t *testing.T) {
	app := newTestApp(t)
	mine := registerUser(t, app, "me@example.com")
	other := registerUser(t, app, "other@example.com")

	first := createRecipe(t, app, mine, fiber.Map{"title": "First"})
	second := createRecipe(t, app, mine, fiber.Map{"title": "Second"})
	createRecipe(t, app, other, fiber.Map{"title": "Not mine"})

	resp := doJSON(t, app, "GET", "/api/recipes/", mine, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []dto.RecipeListItem
	decodeJSON(t, resp, &items)
	require.Len(t, items, 2)
	// Newest first.
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestListRecipes_FilterByTag(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	tagged := createRecipe(t, app, token, fiber.Map{
		"title": "Thai curry",
		"tags":  []fiber.Map{{"name": "Dinner"}},
	})
	createRecipe(t, app, token, fiber.Map{"title": "Plain toast"})

	resp := doJSON(t, app, "GET", fmt.Sprintf("/api/recipes/?tags=%d", tagged.Tags[0].ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []dto.RecipeListItem
	decodeJSON(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, tagged.ID, items[0].ID)
}

func TestListRecipes_MalformedFilter(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	resp := doJSON(t, app, "GET", "/api/recipes/?tags=abc", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/recipes/?ingredients=1,x", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetRecipe_CrossUserNotFound(t *testing.T) {
	app := newTestApp(t)
	mine := registerUser(t, app, "me@example.com")
	other := registerUser(t, app, "other@example.com")

	recipe := createRecipe(t, app, mine, fiber.Map{"title": "Private"})

	resp := doJSON(t, app, "GET", fmt.Sprintf("/api/recipes/%d", recipe.ID), other, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPatchRecipe_EmptyTagListClears(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	recipe := createRecipe(t, app, token, fiber.Map{
		"title": "Curry",
		"tags":  []fiber.Map{{"name": "Dinner"}},
	})

	resp := doJSON(t, app, "PATCH", fmt.Sprintf("/api/recipes/%d", recipe.ID), token, fiber.Map{
		"tags": []fiber.Map{},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail dto.RecipeDetail
	decodeJSON(t, resp, &detail)
	assert.Empty(t, detail.Tags)
	assert.Equal(t, "Curry", detail.Title)
}

func TestPatchRecipe_AbsentTagListPreserves(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	recipe := createRecipe(t, app, token, fiber.Map{
		"title": "Curry",
		"tags":  []fiber.Map{{"name": "Dinner"}},
	})

	resp := doJSON(t, app, "PATCH", fmt.Sprintf("/api/recipes/%d", recipe.ID), token, fiber.Map{
		"title": "Renamed curry",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail dto.RecipeDetail
	decodeJSON(t, resp, &detail)
	assert.Equal(t, "Renamed curry", detail.Title)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "Dinner", detail.Tags[0].Name)
}

func TestPatchRecipe_ReplacesTagSet(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	recipe := createRecipe(t, app, token, fiber.Map{
		"title": "Curry",
		"tags":  []fiber.Map{{"name": "Dinner"}},
	})

	resp := doJSON(t, app, "PATCH", fmt.Sprintf("/api/recipes/%d", recipe.ID), token, fiber.Map{
		"tags": []fiber.Map{{"name": "Lunch"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail dto.RecipeDetail
	decodeJSON(t, resp, &detail)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "Lunch", detail.Tags[0].Name)
}

func TestPutRecipe_RequiresFullPayload(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	recipe := createRecipe(t, app, token, fiber.Map{"title": "Curry"})

	resp := doJSON(t, app, "PUT", fmt.Sprintf("/api/recipes/%d", recipe.ID), token, fiber.Map{
		"title": "Only a title",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Contains(t, body.Fields, "TimeMinutes")
	assert.Contains(t, body.Fields, "Price")
}

func TestPutRecipe_FullUpdate(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	recipe := createRecipe(t, app, token, fiber.Map{"title": "Curry"})

	resp := doJSON(t, app, "PUT", fmt.Sprintf("/api/recipes/%d", recipe.ID), token, fiber.Map{
		"title":        "Spaghetti carbonara",
		"time_minutes": 25,
		"price":        "5.00",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail dto.RecipeDetail
	decodeJSON(t, resp, &detail)
	assert.Equal(t, "Spaghetti carbonara", detail.Title)
	assert.Equal(t, 25, detail.TimeMinutes)
}

func TestDeleteRecipe(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")

	recipe := createRecipe(t, app, token, fiber.Map{"title": "Doomed"})

	resp := doJSON(t, app, "DELETE", fmt.Sprintf("/api/recipes/%d", recipe.ID), token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/recipes/%d", recipe.ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func doUpload(t *testing.T, app *fiber.App, token string, recipeID uint, filename, contentType string, content []byte) (int, dto.RecipeDetail, dto.ErrorResponse) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/recipes/%d/image", recipeID), &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var detail dto.RecipeDetail
	var errBody dto.ErrorResponse
	if resp.StatusCode == fiber.StatusOK {
		decodeJSON(t, resp, &detail)
	} else {
		decodeJSON(t, resp, &errBody)
	}
	return resp.StatusCode, detail, errBody
}

func TestUploadImage(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")
	recipe := createRecipe(t, app, token, fiber.Map{"title": "Photogenic"})

	status, detail, _ := doUpload(t, app, token, recipe.ID, "dinner.png", "image/png", []byte("\x89PNG fake bytes"))
	require.Equal(t, fiber.StatusOK, status)

	assert.True(t, strings.HasPrefix(detail.Image, "/media/uploads/recipe/"), "image %q", detail.Image)
	assert.True(t, strings.HasSuffix(detail.Image, ".png"), "image %q", detail.Image)

	// The detail endpoint reports the same url afterwards.
	resp := doJSON(t, app, "GET", fmt.Sprintf("/api/recipes/%d", recipe.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var reloaded dto.RecipeDetail
	decodeJSON(t, resp, &reloaded)
	assert.Equal(t, detail.Image, reloaded.Image)
}

func TestUploadImage_ReplacingKeepsLatest(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")
	recipe := createRecipe(t, app, token, fiber.Map{"title": "Photogenic"})

	status, first, _ := doUpload(t, app, token, recipe.ID, "a.png", "image/png", []byte("one"))
	require.Equal(t, fiber.StatusOK, status)
	status, second, _ := doUpload(t, app, token, recipe.ID, "b.png", "image/png", []byte("two"))
	require.Equal(t, fiber.StatusOK, status)

	assert.NotEqual(t, first.Image, second.Image)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")
	recipe := createRecipe(t, app, token, fiber.Map{"title": "Photogenic"})

	status, _, _ := doUpload(t, app, token, recipe.ID, "notes.txt", "text/plain", []byte("not an image"))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUploadImage_MissingFile(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "user@example.com")
	recipe := createRecipe(t, app, token, fiber.Map{"title": "Photogenic"})

	resp := doJSON(t, app, "POST", fmt.Sprintf("/api/recipes/%d/image", recipe.ID), token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadImage_CrossUserNotFound(t *testing.T) {
	app := newTestApp(t)
	mine := registerUser(t, app, "me@example.com")
	other := registerUser(t, app, "other@example.com")
	recipe := createRecipe(t, app, mine, fiber.Map{"title": "Private"})

	status, _, _ := doUpload(t, app, other, recipe.ID, "x.png", "image/png", []byte("bytes"))
	assert.Equal(t, fiber.StatusNotFound, status)
}
