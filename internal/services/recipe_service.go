package services

import (
	"errors"
	"fmt"

	"github.com/ahmed123456787/recipe-api/internal/dto"
	"github.com/ahmed123456787/recipe-api/internal/models"
	"github.com/ahmed123456787/recipe-api/internal/owner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrValidation     = errors.New("validation failed")
)

// priceMax comes from the numeric(5,2) column: 3 integer digits.
var priceMax = decimal.New(1000, 0)

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeFilter restricts a recipe listing. Ids within one dimension are
// OR-combined, the two dimensions are AND-combined.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// List returns the user's recipes, newest first, restricted by the filter.
func (s *RecipeService) List(userID uuid.UUID, filter RecipeFilter) ([]models.Recipe, error) {
	q := s.db.Model(&models.Recipe{}).Scopes(owner.Scope(userID))
	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	if err := q.Distinct("recipes.*").Order("recipes.id DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Get loads a single owned recipe with its tags and ingredients.
func (s *RecipeService) Get(userID uuid.UUID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Scopes(owner.Scope(userID)).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

// Create inserts a recipe and resolves its tag/ingredient descriptors in one
// transaction. Descriptor names that don't exist for this user are created as
// a side effect; names that do are reused.
func (s *RecipeService) Create(userID uuid.UUID, req *dto.CreateRecipeRequest) (*models.Recipe, error) {
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	var recipe models.Recipe
	err := s.db.Transaction(func(tx *gorm.DB) error {
		recipe = models.Recipe{
			UserID:      userID,
			Title:       req.Title,
			Description: req.Description,
			TimeMinutes: req.TimeMinutes,
			Price:       req.Price,
			Link:        req.Link,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		tags, err := resolveTags(tx, userID, tagNames(req.Tags))
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&recipe).Association("Tags").Append(tags); err != nil {
				return fmt.Errorf("failed to attach tags: %w", err)
			}
		}

		ingredients, err := resolveIngredients(tx, userID, ingredientNames(req.Ingredients))
		if err != nil {
			return err
		}
		if len(ingredients) > 0 {
			if err := tx.Model(&recipe).Association("Ingredients").Append(ingredients); err != nil {
				return fmt.Errorf("failed to attach ingredients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, recipe.ID)
}

// Update applies supplied scalar fields and, per dimension, replaces the
// association set when the descriptor list is present. A present-but-empty
// list clears the associations; an absent list leaves them untouched. The
// whole write is one transaction.
func (s *RecipeService) Update(userID uuid.UUID, id uint, req *dto.UpdateRecipeRequest) (*models.Recipe, error) {
	if req.Title != nil && *req.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if req.TimeMinutes != nil && *req.TimeMinutes < 1 {
		return nil, fmt.Errorf("%w: time_minutes must be at least 1", ErrValidation)
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Scopes(owner.Scope(userID)).First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("failed to load recipe: %w", err)
		}

		if req.Title != nil {
			recipe.Title = *req.Title
		}
		if req.Description != nil {
			recipe.Description = *req.Description
		}
		if req.TimeMinutes != nil {
			recipe.TimeMinutes = *req.TimeMinutes
		}
		if req.Price != nil {
			recipe.Price = *req.Price
		}
		if req.Link != nil {
			recipe.Link = *req.Link
		}
		if err := tx.Save(&recipe).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		if req.Tags != nil {
			tags, err := resolveTags(tx, userID, tagNames(*req.Tags))
			if err != nil {
				return err
			}
			assoc := tx.Model(&recipe).Association("Tags")
			if len(tags) == 0 {
				err = assoc.Clear()
			} else {
				err = assoc.Replace(tags)
			}
			if err != nil {
				return fmt.Errorf("failed to replace tags: %w", err)
			}
		}

		if req.Ingredients != nil {
			ingredients, err := resolveIngredients(tx, userID, ingredientNames(*req.Ingredients))
			if err != nil {
				return err
			}
			assoc := tx.Model(&recipe).Association("Ingredients")
			if len(ingredients) == 0 {
				err = assoc.Clear()
			} else {
				err = assoc.Replace(ingredients)
			}
			if err != nil {
				return fmt.Errorf("failed to replace ingredients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// Delete removes an owned recipe and its association rows. Tags and
// ingredients themselves survive.
func (s *RecipeService) Delete(userID uuid.UUID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Scopes(owner.Scope(userID)).First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("failed to load recipe: %w", err)
		}
		if err := tx.Select(clause.Associations).Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// SetImage records the stored image path on an owned recipe.
func (s *RecipeService) SetImage(userID uuid.UUID, id uint, path string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.Scopes(owner.Scope(userID)).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if err := s.db.Model(&recipe).Update("image", path).Error; err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return s.Get(userID, id)
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be a positive decimal", ErrValidation)
	}
	if price.GreaterThanOrEqual(priceMax) {
		return fmt.Errorf("%w: price must be below 1000.00", ErrValidation)
	}
	if price.Exponent() < -2 {
		return fmt.Errorf("%w: price allows at most 2 decimal places", ErrValidation)
	}
	return nil
}

// resolveTags maps descriptor names to tag rows owned by the user, creating
// the missing ones. Duplicate names collapse to one row. Runs inside the
// caller's transaction so a later failure rolls the creations back; the
// (user_id, name) unique index settles the concurrent-create race.
func resolveTags(tx *gorm.DB, userID uuid.UUID, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		var tag models.Tag
		if err := tx.Where(models.Tag{UserID: userID, Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func resolveIngredients(tx *gorm.DB, userID uuid.UUID, names []string) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		var ingredient models.Ingredient
		if err := tx.Where(models.Ingredient{UserID: userID, Name: name}).FirstOrCreate(&ingredient).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve ingredient %q: %w", name, err)
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

func tagNames(inputs []dto.TagInput) []string {
	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.Name
	}
	return names
}

func ingredientNames(inputs []dto.IngredientInput) []string {
	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.Name
	}
	return names
}
