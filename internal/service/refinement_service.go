package service

import (
	"context"

	"ai-profiling-be/internal/dto"
	"ai-profiling-be/internal/pkg/logger"
	"ai-profiling-be/internal/websocket"
	"ai-profiling-be/pkg/events"
	"ai-profiling-be/pkg/questions"
	"ai-profiling-be/pkg/refine"

	"github.com/google/uuid"
)

type IRefinementService interface {
	StartRound(ctx context.Context, userId uuid.UUID) (*dto.StartRoundResponse, error)
	GetNextQuestion(ctx context.Context, userId uuid.UUID) (*dto.NextQuestionResponse, error)
	SubmitAnswer(ctx context.Context, userId uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	Abandon(ctx context.Context, userId uuid.UUID) error
}

// RefinementEngine is the slice of the round engine this service drives.
// Satisfied by *refine.Engine.
type RefinementEngine interface {
	StartRound(ctx context.Context, userId uuid.UUID) (*refine.RoundResult, error)
	NextQuestion(userId uuid.UUID) (*questions.FollowUpQuestion, int, error)
	SubmitAnswer(ctx context.Context, userId uuid.UUID, input refine.AnswerInput) (*refine.AnswerResult, error)
	Abandon(userId uuid.UUID) error
}

// LifecycleEventPublisher carries lifecycle events off-process. Satisfied by
// *nats.Publisher.
type LifecycleEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type refinementService struct {
	engine         RefinementEngine
	eventPublisher LifecycleEventPublisher
	hub            *websocket.Hub
	logger         logger.ILogger
}

func NewRefinementService(
	engine RefinementEngine,
	eventPublisher LifecycleEventPublisher,
	hub *websocket.Hub,
	log logger.ILogger,
) IRefinementService {
	return &refinementService{
		engine:         engine,
		eventPublisher: eventPublisher,
		hub:            hub,
		logger:         log,
	}
}

func (s *refinementService) StartRound(ctx context.Context, userId uuid.UUID) (*dto.StartRoundResponse, error) {
	result, err := s.engine.StartRound(ctx, userId)
	if err != nil {
		return nil, err
	}

	if result.Terminated {
		s.emit(ctx, userId, events.NewLoopTerminated(userId.String(), result.Confidence))
		return &dto.StartRoundResponse{
			Terminated: true,
			Confidence: result.Confidence,
		}, nil
	}

	s.emit(ctx, userId, events.NewRoundStarted(userId.String(), result.RoundNumber, result.Confidence, result.Remaining))
	if result.Question != nil {
		s.emit(ctx, userId, events.NewQuestionPresented(userId.String(), result.Question.Id, result.Question.Category, result.Remaining))
	}

	return &dto.StartRoundResponse{
		Confidence:    result.Confidence,
		RoundNumber:   result.RoundNumber,
		BatchSize:     result.Remaining,
		MissingTopics: dto.NewMissingTopicPayloads(result.Missing),
		Question:      questionPayload(result.Question),
	}, nil
}

func (s *refinementService) GetNextQuestion(_ context.Context, userId uuid.UUID) (*dto.NextQuestionResponse, error) {
	question, remaining, err := s.engine.NextQuestion(userId)
	if err != nil {
		return nil, err
	}
	return &dto.NextQuestionResponse{
		Question:  questionPayload(question),
		Remaining: remaining,
	}, nil
}

func (s *refinementService) SubmitAnswer(ctx context.Context, userId uuid.UUID, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	input := refine.AnswerInput{QuestionId: req.QuestionId}
	if req.Answer == nil || *req.Answer == "" {
		input.Skip = true
	} else {
		input.AnswerText = *req.Answer
	}

	result, err := s.engine.SubmitAnswer(ctx, userId, input)
	if err != nil {
		return nil, err
	}

	if !input.Skip {
		s.emit(ctx, userId, events.NewAnswerPersisted(userId.String(), req.QuestionId, result.Confidence))
	}
	if result.NextQuestion != nil {
		s.emit(ctx, userId, events.NewQuestionPresented(userId.String(), result.NextQuestion.Id, result.NextQuestion.Category, result.Remaining))
	}
	if result.RoundComplete {
		s.emit(ctx, userId, events.NewRoundCompleted(userId.String(), result.RoundNumber, result.Answered, result.Confidence))
	}
	if result.Terminated {
		s.emit(ctx, userId, events.NewLoopTerminated(userId.String(), result.Confidence))
	}

	return &dto.SubmitAnswerResponse{
		Confidence:    result.Confidence,
		NextQuestion:  questionPayload(result.NextQuestion),
		Remaining:     result.Remaining,
		RoundComplete: result.RoundComplete,
		Terminated:    result.Terminated,
	}, nil
}

func (s *refinementService) Abandon(_ context.Context, userId uuid.UUID) error {
	return s.engine.Abandon(userId)
}

// emit fans a lifecycle event out to NATS and the websocket hub. Events are
// advisory: a dead broker never fails the request.
func (s *refinementService) emit(ctx context.Context, userId uuid.UUID, event events.Event) {
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("refinement_service", "Failed to publish lifecycle event", map[string]interface{}{
				"event": event.EventType(),
				"error": err.Error(),
			})
		}
	}
	if s.hub != nil {
		s.hub.Send(userId, event)
	}
}

func questionPayload(q *questions.FollowUpQuestion) *dto.FollowUpQuestionPayload {
	if q == nil {
		return nil
	}
	return &dto.FollowUpQuestionPayload{
		Id:          q.Id,
		Question:    q.Question,
		Category:    q.Category,
		Placeholder: q.Placeholder,
		Importance:  string(q.Importance),
		Context:     q.Context,
	}
}
