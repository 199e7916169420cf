package services

import (
	"errors"
	"fmt"

	"github.com/ahmed123456787/recipe-api/internal/models"
	"github.com/ahmed123456787/recipe-api/internal/owner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// Create resolves or creates the user's tag with the given name. Creating a
// name that already exists returns the existing row.
func (s *TagService) Create(userID uuid.UUID, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.Where(models.Tag{UserID: userID, Name: name}).FirstOrCreate(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}

// List returns the user's tags in reverse name order. With assignedOnly only
// tags attached to at least one recipe are returned.
func (s *TagService) List(userID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	q := s.db.Model(&models.Tag{}).Scopes(owner.Scope(userID))
	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").Distinct("tags.*")
	}

	var tags []models.Tag
	if err := q.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (s *TagService) Get(userID uuid.UUID, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.Scopes(owner.Scope(userID)).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	return &tag, nil
}

func (s *TagService) Update(userID uuid.UUID, id uint, name string) (*models.Tag, error) {
	tag, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(tag).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to rename tag: %w", err)
	}
	return tag, nil
}

// Delete removes an owned tag and detaches it from every recipe.
func (s *TagService) Delete(userID uuid.UUID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Scopes(owner.Scope(userID)).First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return fmt.Errorf("failed to load tag: %w", err)
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return fmt.Errorf("failed to detach tag: %w", err)
		}
		if err := tx.Delete(&tag).Error; err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		return nil
	})
}
