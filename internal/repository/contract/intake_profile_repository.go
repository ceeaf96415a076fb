package contract

import (
	"context"

	"ai-profiling-be/internal/entity"

	"github.com/google/uuid"
)

type IntakeProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.IntakeProfile) error
	FindByUser(ctx context.Context, userId uuid.UUID) (*entity.IntakeProfile, error)
}
