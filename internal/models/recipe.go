package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe is owned by exactly one user. Tags and ingredients are attached
// through join tables and must belong to the same owner; the recipe service
// enforces that, not the schema.
type Recipe struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"size:255" json:"description"`
	TimeMinutes int             `gorm:"not null" json:"time_minutes"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string          `gorm:"size:255" json:"link"`
	Image       string          `gorm:"size:255" json:"image"`
	Tags        []Tag           `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients" json:"ingredients"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
