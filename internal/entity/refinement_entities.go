package entity

import (
	"time"

	"github.com/google/uuid"
)

// FollowUpAnswer is one response to a generated follow-up question. At most
// one row exists per (UserId, QuestionId); re-answering updates in place.
// Rows are never deleted.
type FollowUpAnswer struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	QuestionId   string
	QuestionText string
	AnswerText   string
	Category     string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// ProfileConfidence is the persisted per-user confidence scalar. Writers must
// only ever store max(existing, computed) so the value is monotonically
// non-decreasing across the profile's lifetime.
type ProfileConfidence struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Score     int
	UpdatedAt time.Time
}

// ProfileReport is the regenerated narrative report for a user.
type ProfileReport struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Content     string
	Stale       bool
	GeneratedAt time.Time
}
