package dto

import (
	"github.com/ahmed123456787/recipe-api/internal/models"
	"github.com/shopspring/decimal"
)

type TagInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

type IngredientInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateRecipeRequest struct {
	Title       string            `json:"title" validate:"required,max=255"`
	Description string            `json:"description" validate:"max=255"`
	TimeMinutes int               `json:"time_minutes" validate:"required,min=1"`
	Price       decimal.Decimal   `json:"price" validate:"-"`
	Link        string            `json:"link" validate:"max=255"`
	Tags        []TagInput        `json:"tags" validate:"dive"`
	Ingredients []IngredientInput `json:"ingredients" validate:"dive"`
}

// UpdateRecipeRequest distinguishes absent from empty: a nil Tags pointer
// leaves existing associations alone, a non-nil pointer to an empty slice
// clears them. Same for Ingredients. Scalars follow the usual pointer
// convention, absent means unchanged.
type UpdateRecipeRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	TimeMinutes *int               `json:"time_minutes"`
	Price       *decimal.Decimal   `json:"price"`
	Link        *string            `json:"link"`
	Tags        *[]TagInput        `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]IngredientInput `json:"ingredients" validate:"omitempty,dive"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type RecipeListItem struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
}

type RecipeDetail struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       decimal.Decimal      `json:"price"`
	Link        string               `json:"link"`
	Image       string               `json:"image"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

// mediaURLPrefix is where main mounts the media root as static files.
const mediaURLPrefix = "/media/"

// NewRecipeListItem projects a recipe row into its list representation.
func NewRecipeListItem(r *models.Recipe) RecipeListItem {
	return RecipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
}

// NewRecipeList projects a slice of recipes, preserving order.
func NewRecipeList(recipes []models.Recipe) []RecipeListItem {
	items := make([]RecipeListItem, len(recipes))
	for i := range recipes {
		items[i] = NewRecipeListItem(&recipes[i])
	}
	return items
}

// NewRecipeDetail projects a recipe row with its associations into the detail
// representation. Deliberately independent of NewRecipeListItem.
func NewRecipeDetail(r *models.Recipe) RecipeDetail {
	d := RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        make([]TagResponse, len(r.Tags)),
		Ingredients: make([]IngredientResponse, len(r.Ingredients)),
	}
	if r.Image != "" {
		d.Image = mediaURLPrefix + r.Image
	}
	for i, t := range r.Tags {
		d.Tags[i] = TagResponse{ID: t.ID, Name: t.Name}
	}
	for i, in := range r.Ingredients {
		d.Ingredients[i] = IngredientResponse{ID: in.ID, Name: in.Name}
	}
	return d
}
