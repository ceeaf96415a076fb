package contract

import (
	"context"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/repository/specification"

	"github.com/google/uuid"
)

type IntakeAnswerRepository interface {
	Create(ctx context.Context, answer *entity.IntakeAnswer) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeAnswer, error)
	CountByUser(ctx context.Context, userId uuid.UUID) (int64, error)
}
