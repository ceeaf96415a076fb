package refine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/pkg/logger"
	"ai-profiling-be/internal/repository/specification"
	"ai-profiling-be/internal/repository/unitofwork"
	"ai-profiling-be/pkg/questions"
	"ai-profiling-be/pkg/scoring"

	"github.com/google/uuid"
)

// RoundStore keeps per-user round state between calls. Implemented by the
// in-memory cache repository; declared here so the engine does not depend
// on the storage package that depends on this one.
type RoundStore interface {
	Save(state *RoundState)
	Get(userID string) (*RoundState, bool)
	Delete(userID string)
}

// Trigger is fired once per completed round, answered or not. Failures are
// logged and swallowed: a missed regeneration never blocks the refinement
// loop.
type Trigger interface {
	Fire(ctx context.Context, userId uuid.UUID) error
}

// RoundResult describes the outcome of starting a round.
type RoundResult struct {
	Terminated  bool                        `json:"terminated"`
	Confidence  int                         `json:"confidence"`
	RoundNumber int                         `json:"round_number,omitempty"`
	Missing     []scoring.MissingTopic      `json:"missing,omitempty"`
	Question    *questions.FollowUpQuestion `json:"question,omitempty"`
	Remaining   int                         `json:"remaining"`
}

// AnswerInput is one submitted or skipped answer.
type AnswerInput struct {
	QuestionId string
	AnswerText string
	Skip       bool
}

// AnswerResult describes the state of the round after an answer.
type AnswerResult struct {
	Confidence    int                         `json:"confidence"`
	NextQuestion  *questions.FollowUpQuestion `json:"next_question,omitempty"`
	Remaining     int                         `json:"remaining"`
	RoundComplete bool                        `json:"round_complete"`
	RoundNumber   int                         `json:"round_number"`
	Answered      int                         `json:"answered"`
	Terminated    bool                        `json:"terminated"`
}

// Engine drives the refinement loop: analyze, generate a batch, present
// questions one at a time, persist answers, re-score, and decide whether to
// stop. One active round per user; rounds live only in the RoundStore.
type Engine struct {
	factory  unitofwork.RepositoryFactory
	rounds   RoundStore
	source   questions.Source
	analyzer *Analyzer
	trigger  Trigger
	logger   logger.ILogger
}

func NewEngine(
	factory unitofwork.RepositoryFactory,
	rounds RoundStore,
	source questions.Source,
	trigger Trigger,
	log logger.ILogger,
) *Engine {
	return &Engine{
		factory:  factory,
		rounds:   rounds,
		source:   source,
		analyzer: NewAnalyzer(),
		trigger:  trigger,
		logger:   log,
	}
}

// StartRound analyzes the user's profile and, unless the loop has already
// converged, opens a new round with a fresh question batch. Returns
// ErrRoundInProgress while a previous batch still has open questions.
func (e *Engine) StartRound(ctx context.Context, userId uuid.UUID) (*RoundResult, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}

	previous, found := e.rounds.Get(userId.String())
	if found && previous.InProgress() {
		return nil, ErrRoundInProgress
	}

	uow := e.factory.NewUnitOfWork(ctx)

	analysis, err := e.analyzer.Analyze(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if analysis.Terminated {
		e.rounds.Delete(userId.String())
		e.logger.Info("refinement", "Loop terminated before round start", map[string]interface{}{
			"user_id":    userId.String(),
			"confidence": analysis.Persisted,
			"missing":    len(analysis.Missing),
		})
		return &RoundResult{Terminated: true, Confidence: analysis.Persisted}, nil
	}

	batch, err := e.generate(ctx, uow, userId, analysis)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		// Nothing either strategy could ask about. Treat as converged
		// rather than presenting an empty round.
		e.rounds.Delete(userId.String())
		return &RoundResult{Terminated: true, Confidence: analysis.Persisted}, nil
	}

	roundNumber := 1
	if found {
		roundNumber = previous.RoundNumber + 1
	}

	state := &RoundState{
		UserID:      userId.String(),
		RoundNumber: roundNumber,
		State:       StatePresentingQuestion,
		Questions:   batch,
		Confidence:  analysis.Persisted,
	}
	e.rounds.Save(state)

	e.logger.Info("refinement", "Round started", map[string]interface{}{
		"user_id":    userId.String(),
		"round":      roundNumber,
		"confidence": analysis.Persisted,
		"batch_size": len(batch),
	})

	return &RoundResult{
		Confidence:  analysis.Persisted,
		RoundNumber: roundNumber,
		Missing:     analysis.Missing,
		Question:    state.CurrentQuestion(),
		Remaining:   len(batch),
	}, nil
}

// NextQuestion returns the question currently awaiting an answer.
func (e *Engine) NextQuestion(userId uuid.UUID) (*questions.FollowUpQuestion, int, error) {
	if userId == uuid.Nil {
		return nil, 0, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}

	state, found := e.rounds.Get(userId.String())
	if !found || !state.InProgress() {
		return nil, 0, ErrNoActiveRound
	}

	return state.CurrentQuestion(), len(state.Questions) - state.CurrentIndex, nil
}

// SubmitAnswer persists one answer (or records a skip), advances the round,
// and re-scores. On a storage failure the round does not advance, so the
// client may retry the same question.
func (e *Engine) SubmitAnswer(ctx context.Context, userId uuid.UUID, input AnswerInput) (*AnswerResult, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}

	state, found := e.rounds.Get(userId.String())
	if !found || !state.InProgress() {
		return nil, ErrNoActiveRound
	}

	current := state.CurrentQuestion()
	if input.QuestionId != current.Id {
		return nil, fmt.Errorf("%w: expected answer for question %s", ErrInvalidInput, current.Id)
	}

	if input.Skip {
		// A skip advances without a row write and without re-scoring; the
		// last known confidence stands.
		state.CurrentIndex++
	} else {
		if strings.TrimSpace(input.AnswerText) == "" {
			return nil, fmt.Errorf("%w: empty answer text", ErrInvalidInput)
		}

		if err := e.persistAnswer(ctx, userId, current, input.AnswerText); err != nil {
			return nil, err
		}

		state.State = StatePersisting
		state.CurrentIndex++
		state.AnsweredInRound++

		// Re-score after every persisted answer. Best effort: the answer is
		// already committed, so a scoring failure only delays the visible
		// confidence update until the next pass.
		uow := e.factory.NewUnitOfWork(ctx)
		analysis, err := e.analyzer.Analyze(ctx, uow, userId)
		if err != nil {
			e.logger.Warn("refinement", "Re-score after answer failed", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		} else {
			state.Confidence = analysis.Persisted
		}
	}

	if !state.BatchExhausted() {
		state.State = StatePresentingQuestion
		e.rounds.Save(state)
		return &AnswerResult{
			Confidence:   state.Confidence,
			NextQuestion: state.CurrentQuestion(),
			Remaining:    len(state.Questions) - state.CurrentIndex,
			RoundNumber:  state.RoundNumber,
			Answered:     state.AnsweredInRound,
		}, nil
	}

	return e.completeRound(ctx, userId, state)
}

// Abandon discards the active round, if any. Idempotent; persisted answers
// from the round are kept.
func (e *Engine) Abandon(userId uuid.UUID) error {
	if userId == uuid.Nil {
		return fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	e.rounds.Delete(userId.String())
	return nil
}

func (e *Engine) generate(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, analysis *Analysis) ([]questions.FollowUpQuestion, error) {
	prior, err := uow.IntakeAnswerRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: load prior answers: %v", ErrStorage, err)
	}

	hints, err := uow.IntakeProfileRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: load profile hints: %v", ErrStorage, err)
	}

	return e.source.Generate(ctx, questions.GenerateInput{
		Missing:      analysis.Missing,
		PriorAnswers: prior,
		Hints:        hints,
	})
}

func (e *Engine) persistAnswer(ctx context.Context, userId uuid.UUID, q *questions.FollowUpQuestion, text string) error {
	uow := e.factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStorage, err)
	}
	defer uow.Rollback()

	answer := &entity.FollowUpAnswer{
		Id:           uuid.New(),
		UserId:       userId,
		QuestionId:   q.Id,
		QuestionText: q.Question,
		AnswerText:   text,
		Category:     q.Category,
		CreatedAt:    time.Now(),
	}
	if err := uow.FollowUpAnswerRepository().Upsert(ctx, answer); err != nil {
		return fmt.Errorf("%w: save answer: %v", ErrStorage, err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStorage, err)
	}
	return nil
}

func (e *Engine) completeRound(ctx context.Context, userId uuid.UUID, state *RoundState) (*AnswerResult, error) {
	state.State = StateRoundComplete
	e.rounds.Save(state)

	if e.trigger != nil {
		if err := e.trigger.Fire(ctx, userId); err != nil {
			e.logger.Warn("refinement", "Report regeneration trigger failed", map[string]interface{}{
				"user_id": userId.String(),
				"round":   state.RoundNumber,
				"error":   err.Error(),
			})
		}
	}

	result := &AnswerResult{
		Confidence:    state.Confidence,
		RoundComplete: true,
		RoundNumber:   state.RoundNumber,
		Answered:      state.AnsweredInRound,
	}

	uow := e.factory.NewUnitOfWork(ctx)
	analysis, err := e.analyzer.Analyze(ctx, uow, userId)
	if err != nil {
		// The round itself completed; report it and let the next
		// StartRound redo the analysis.
		e.logger.Warn("refinement", "Post-round analysis failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return result, nil
	}

	state.Confidence = analysis.Persisted
	result.Confidence = analysis.Persisted
	if analysis.Terminated {
		state.State = StateTerminated
		e.rounds.Save(state)
		result.Terminated = true
	}

	e.logger.Info("refinement", "Round completed", map[string]interface{}{
		"user_id":    userId.String(),
		"round":      state.RoundNumber,
		"answered":   state.AnsweredInRound,
		"confidence": analysis.Persisted,
		"terminated": analysis.Terminated,
	})

	return result, nil
}
