package entity

import (
	"time"

	"github.com/google/uuid"
)

// IntakeAnswer is one response from the original diagnostic questionnaire.
// Created during intake, immutable afterwards; the refinement loop only
// reads it.
type IntakeAnswer struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	QuestionText   string
	AnswerText     string
	DerivedInsight string
	CreatedAt      time.Time
}

// IntakeProfile carries the hints the intake inferred about the user, used
// to steer follow-up question generation.
type IntakeProfile struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Tone      string // preferred communication tone, e.g. "direct", "warm"
	Goals     []string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
