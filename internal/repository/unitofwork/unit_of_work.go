package unitofwork

import (
	"context"

	"ai-profiling-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	IntakeAnswerRepository() contract.IntakeAnswerRepository
	IntakeProfileRepository() contract.IntakeProfileRepository
	FollowUpAnswerRepository() contract.FollowUpAnswerRepository
	ProfileConfidenceRepository() contract.ProfileConfidenceRepository
	ProfileReportRepository() contract.ProfileReportRepository
}
