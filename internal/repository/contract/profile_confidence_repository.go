package contract

import (
	"context"

	"ai-profiling-be/internal/entity"

	"github.com/google/uuid"
)

type ProfileConfidenceRepository interface {
	// Get returns (nil, nil) when no confidence has been persisted yet.
	Get(ctx context.Context, userId uuid.UUID) (*entity.ProfileConfidence, error)

	// Save upserts the per-user score. The store does not enforce the
	// monotonic non-decreasing rule itself: there is no transaction
	// coordination with the scoring step, so the CALLER must pass
	// max(existing, computed).
	Save(ctx context.Context, userId uuid.UUID, score int) error
}
