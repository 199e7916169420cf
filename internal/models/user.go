package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns every recipe, tag and ingredient in the system.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name        string         `gorm:"size:255" json:"name"`
	Password    string         `gorm:"not null" json:"-"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsStaff     bool           `gorm:"default:false" json:"-"`
	IsSuperuser bool           `gorm:"default:false" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
