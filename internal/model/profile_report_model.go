package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfileReport struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Content     string    `gorm:"type:text;not null"`
	Stale       bool      `gorm:"not null;default:false"`
	GeneratedAt time.Time `gorm:"autoUpdateTime"`
}

func (ProfileReport) TableName() string {
	return "profile_reports"
}
