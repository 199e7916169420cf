package services

import (
	"errors"
	"fmt"

	"github.com/ahmed123456787/recipe-api/internal/models"
	"github.com/ahmed123456787/recipe-api/internal/owner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

func (s *IngredientService) Create(userID uuid.UUID, name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.Where(models.Ingredient{UserID: userID, Name: name}).FirstOrCreate(&ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return &ingredient, nil
}

func (s *IngredientService) List(userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	q := s.db.Model(&models.Ingredient{}).Scopes(owner.Scope(userID))
	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Distinct("ingredients.*")
	}

	var ingredients []models.Ingredient
	if err := q.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *IngredientService) Get(userID uuid.UUID, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.Scopes(owner.Scope(userID)).First(&ingredient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient: %w", err)
	}
	return &ingredient, nil
}

func (s *IngredientService) Update(userID uuid.UUID, id uint, name string) (*models.Ingredient, error) {
	ingredient, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(ingredient).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to rename ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *IngredientService) Delete(userID uuid.UUID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.Scopes(owner.Scope(userID)).First(&ingredient, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return fmt.Errorf("failed to load ingredient: %w", err)
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
			return fmt.Errorf("failed to detach ingredient: %w", err)
		}
		if err := tx.Delete(&ingredient).Error; err != nil {
			return fmt.Errorf("failed to delete ingredient: %w", err)
		}
		return nil
	})
}
