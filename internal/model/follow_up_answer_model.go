package model

import (
	"time"

	"github.com/google/uuid"
)

type FollowUpAnswer struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_up_user_question"`
	QuestionId   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_follow_up_user_question"`
	QuestionText string    `gorm:"type:text;not null"`
	AnswerText   string    `gorm:"type:text;not null"`
	Category     string    `gorm:"type:varchar(100);not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (FollowUpAnswer) TableName() string {
	return "follow_up_answers"
}
