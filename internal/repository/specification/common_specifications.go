package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserOwnedBy restricts rows to a single user. Every answer and confidence
// row belongs to exactly one user; no cross-user reads happen anywhere.
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}
