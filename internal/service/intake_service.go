package service

import (
	"context"
	"time"

	"ai-profiling-be/internal/dto"
	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IIntakeService interface {
	CreateAnswer(ctx context.Context, userId uuid.UUID, req *dto.CreateIntakeAnswerRequest) (*dto.CreateIntakeAnswerResponse, error)
	UpsertProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertIntakeProfileRequest) error
	ShowProfile(ctx context.Context, userId uuid.UUID) (*dto.ShowIntakeProfileResponse, error)
}

type intakeService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewIntakeService(uowFactory unitofwork.RepositoryFactory) IIntakeService {
	return &intakeService{
		uowFactory: uowFactory,
	}
}

func (s *intakeService) CreateAnswer(ctx context.Context, userId uuid.UUID, req *dto.CreateIntakeAnswerRequest) (*dto.CreateIntakeAnswerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	answer := entity.IntakeAnswer{
		Id:             uuid.New(),
		UserId:         userId,
		QuestionText:   req.QuestionText,
		AnswerText:     req.AnswerText,
		DerivedInsight: req.DerivedInsight,
		CreatedAt:      time.Now(),
	}

	if err := uow.IntakeAnswerRepository().Create(ctx, &answer); err != nil {
		return nil, err
	}

	return &dto.CreateIntakeAnswerResponse{Id: answer.Id}, nil
}

func (s *intakeService) UpsertProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertIntakeProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile := entity.IntakeProfile{
		Id:        uuid.New(),
		UserId:    userId,
		Tone:      req.Tone,
		Goals:     req.Goals,
		CreatedAt: time.Now(),
	}

	return uow.IntakeProfileRepository().Upsert(ctx, &profile)
}

func (s *intakeService) ShowProfile(ctx context.Context, userId uuid.UUID) (*dto.ShowIntakeProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.IntakeProfileRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	return &dto.ShowIntakeProfileResponse{
		Tone:      profile.Tone,
		Goals:     profile.Goals,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}, nil
}
