package contract

import (
	"context"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FollowUpAnswerRepository interface {
	// Upsert writes keyed by (user_id, question_id): a second call with the
	// same key updates answer_text/updated_at instead of inserting.
	Upsert(ctx context.Context, answer *entity.FollowUpAnswer) error

	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FollowUpAnswer, error)
	CountByUser(ctx context.Context, userId uuid.UUID) (int64, error)

	// Categories returns the distinct catalog categories the user has
	// already answered a follow-up for.
	Categories(ctx context.Context, userId uuid.UUID) ([]string, error)
}
