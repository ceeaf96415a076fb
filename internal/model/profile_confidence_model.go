package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfileConfidence struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Score     int       `gorm:"not null;check:score >= 0 AND score <= 100"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ProfileConfidence) TableName() string {
	return "profile_confidences"
}
