package contract

import (
	"context"

	"ai-profiling-be/internal/entity"

	"github.com/google/uuid"
)

type ProfileReportRepository interface {
	Upsert(ctx context.Context, report *entity.ProfileReport) error
	FindByUser(ctx context.Context, userId uuid.UUID) (*entity.ProfileReport, error)
	MarkStale(ctx context.Context, userId uuid.UUID) error
}
