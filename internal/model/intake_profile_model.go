package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IntakeProfile struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Tone      string         `gorm:"type:varchar(50)"`
	Goals     datatypes.JSON `gorm:"type:jsonb"` // []string
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (IntakeProfile) TableName() string {
	return "intake_profiles"
}
