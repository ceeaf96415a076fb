package service

import (
	"context"
	"encoding/json"

	"ai-profiling-be/internal/dto"
	"ai-profiling-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// reportTrigger implements refine.Trigger: it marks the current report stale
// and hands the rebuild to the consumer worker through the in-process bus.
type reportTrigger struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewReportTrigger(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) *reportTrigger {
	return &reportTrigger{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (t *reportTrigger) Fire(ctx context.Context, userId uuid.UUID) error {
	uow := t.uowFactory.NewUnitOfWork(ctx)

	// Stale flag first: even if the rebuild never runs, readers know the
	// report lags behind the answers.
	if err := uow.ProfileReportRepository().MarkStale(ctx, userId); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.RegenerateReportMessage{UserId: userId.String()})
	if err != nil {
		return err
	}

	return t.publisher.Publish(ctx, payload)
}
