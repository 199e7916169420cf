package models

import "github.com/google/uuid"

// Ingredient mirrors Tag: a per-user named entity attached to recipes.
type Ingredient struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ingredients_user_name" json:"-"`
	Name   string    `gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
}
