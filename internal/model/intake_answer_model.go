package model

import (
	"time"

	"github.com/google/uuid"
)

type IntakeAnswer struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	QuestionText   string    `gorm:"type:text;not null"`
	AnswerText     string    `gorm:"type:text;not null"`
	DerivedInsight string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (IntakeAnswer) TableName() string {
	return "intake_answers"
}
