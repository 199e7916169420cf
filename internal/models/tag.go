package models

import "github.com/google/uuid"

// Tag is a per-user label for filtering recipes. The (user_id, name) unique
// index backs the resolve-or-create step on recipe writes.
type Tag struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tags_user_name" json:"-"`
	Name   string    `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name" json:"name"`
}
