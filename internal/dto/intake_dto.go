package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateIntakeAnswerRequest struct {
	QuestionText   string `json:"question_text" validate:"required"`
	AnswerText     string `json:"answer_text" validate:"required"`
	DerivedInsight string `json:"derived_insight"`
}

type CreateIntakeAnswerResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpsertIntakeProfileRequest struct {
	Tone  string   `json:"tone" validate:"required"`
	Goals []string `json:"goals"`
}

type ShowIntakeProfileResponse struct {
	Tone      string     `json:"tone"`
	Goals     []string   `json:"goals"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
