package service

import (
	"context"

	"ai-profiling-be/internal/dto"
	"ai-profiling-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IReportService interface {
	ShowLatest(ctx context.Context, userId uuid.UUID) (*dto.ShowReportResponse, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewReportService(uowFactory unitofwork.RepositoryFactory) IReportService {
	return &reportService{
		uowFactory: uowFactory,
	}
}

func (s *reportService) ShowLatest(ctx context.Context, userId uuid.UUID) (*dto.ShowReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ProfileReportRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}

	confidence := 0
	if c, err := uow.ProfileConfidenceRepository().Get(ctx, userId); err == nil && c != nil {
		confidence = c.Score
	}

	return &dto.ShowReportResponse{
		Content:     report.Content,
		Stale:       report.Stale,
		GeneratedAt: report.GeneratedAt,
		Confidence:  confidence,
	}, nil
}
