package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotImage rejects uploads whose declared content type is not a supported
// image format. No conversion is attempted.
var ErrNotImage = errors.New("uploaded file is not a supported image")

const recipeImageDir = "uploads/recipe"

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// RecipeImagePath returns a fresh relative storage path for an uploaded
// recipe image: a new uuid plus the original file's extension, under the
// uploads/recipe prefix. Never reuses an identifier across calls.
func RecipeImagePath(filename string) string {
	ext := filepath.Ext(filename)
	return path.Join(recipeImageDir, uuid.New().String()+ext)
}

// ImageStore writes uploaded recipe images below a media root directory.
type ImageStore struct {
	root string
}

func NewImageStore(root string) *ImageStore {
	return &ImageStore{root: root}
}

// SaveRecipeImage validates the upload and writes it under a generated path,
// returning the path relative to the media root.
func (s *ImageStore) SaveRecipeImage(file *multipart.FileHeader) (string, error) {
	if !imageContentTypes[file.Header.Get("Content-Type")] {
		return "", ErrNotImage
	}

	rel := RecipeImagePath(file.Filename)
	dst := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return rel, nil
}

// Remove deletes a previously saved image, used to back out after a failed
// database update.
func (s *ImageStore) Remove(rel string) error {
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
}
