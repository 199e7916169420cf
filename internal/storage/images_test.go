package storage_test

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmed123456787/recipe-api/internal/storage"
)

// multipartFile builds a parsed *multipart.FileHeader the way fiber's
// FormFile would hand it to us.
func multipartFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
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

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestRecipeImagePath(t *testing.T) {
	got := storage.RecipeImagePath("photo.jpg")

	assert.True(t, strings.HasPrefix(got, "uploads/recipe/"), "path %q", got)
	assert.True(t, strings.HasSuffix(got, ".jpg"), "path %q", got)
	// 36-char uuid between prefix and extension.
	base := strings.TrimSuffix(filepath.Base(got), ".jpg")
	assert.Len(t, base, 36)
}

func TestRecipeImagePath_FreshPerCall(t *testing.T) {
	assert.NotEqual(t, storage.RecipeImagePath("a.png"), storage.RecipeImagePath("a.png"))
}

func TestRecipeImagePath_NoExtension(t *testing.T) {
	got := storage.RecipeImagePath("photo")
	assert.True(t, strings.HasPrefix(got, "uploads/recipe/"))
	assert.NotContains(t, filepath.Base(got), ".")
}

func TestImageStore_SaveRecipeImage(t *testing.T) {
	root := t.TempDir()
	store := storage.NewImageStore(root)

	content := []byte("\x89PNG fake image bytes")
	file := multipartFile(t, "dinner.png", "image/png", content)

	rel, err := store.SaveRecipeImage(file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "uploads/recipe/"), "path %q", rel)
	assert.True(t, strings.HasSuffix(rel, ".png"), "path %q", rel)

	written, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestImageStore_SaveRecipeImage_RejectsNonImage(t *testing.T) {
	store := storage.NewImageStore(t.TempDir())

	file := multipartFile(t, "notes.txt", "text/plain", []byte("not an image"))

	_, err := store.SaveRecipeImage(file)
	assert.ErrorIs(t, err, storage.ErrNotImage)
}

func TestImageStore_Remove(t *testing.T) {
	root := t.TempDir()
	store := storage.NewImageStore(root)

	file := multipartFile(t, "dinner.jpg", "image/jpeg", []byte("jpeg bytes"))
	rel, err := store.SaveRecipeImage(file)
	require.NoError(t, err)

	require.NoError(t, store.Remove(rel))

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
}
