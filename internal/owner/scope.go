package owner

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope returns a GORM scope that restricts a query to rows owned by the
// given user. Every list/detail/write query in the services goes through it,
// so a foreign-owned row is indistinguishable from a missing one.
func Scope(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
