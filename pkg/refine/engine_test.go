package refine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/repository/contract"
	"ai-profiling-be/internal/repository/memory"
	"ai-profiling-be/internal/repository/specification"
	"ai-profiling-be/internal/repository/unitofwork"
	"ai-profiling-be/pkg/questions"
	"ai-profiling-be/pkg/refine"
	"ai-profiling-be/pkg/scoring"

	"github.com/google/uuid"
)

// fakeStore backs every repository contract with plain maps so engine tests
// run without a database. Failure switches simulate storage outages.
type fakeStore struct {
	intake      []*entity.IntakeAnswer
	profiles    map[uuid.UUID]*entity.IntakeProfile
	followUps   map[string]*entity.FollowUpAnswer
	confidences map[uuid.UUID]int

	failAnswerUpsert   bool
	failConfidenceSave bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:    make(map[uuid.UUID]*entity.IntakeProfile),
		followUps:   make(map[string]*entity.FollowUpAnswer),
		confidences: make(map[uuid.UUID]int),
	}
}

func followUpKey(userId uuid.UUID, questionId string) string {
	return userId.String() + "|" + questionId
}

type fakeIntakeAnswerRepo struct{ s *fakeStore }

func (r *fakeIntakeAnswerRepo) Create(_ context.Context, answer *entity.IntakeAnswer) error {
	r.s.intake = append(r.s.intake, answer)
	return nil
}

func (r *fakeIntakeAnswerRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.IntakeAnswer, error) {
	return r.s.intake, nil
}

func (r *fakeIntakeAnswerRepo) CountByUser(_ context.Context, _ uuid.UUID) (int64, error) {
	return int64(len(r.s.intake)), nil
}

type fakeIntakeProfileRepo struct{ s *fakeStore }

func (r *fakeIntakeProfileRepo) Upsert(_ context.Context, profile *entity.IntakeProfile) error {
	r.s.profiles[profile.UserId] = profile
	return nil
}

func (r *fakeIntakeProfileRepo) FindByUser(_ context.Context, userId uuid.UUID) (*entity.IntakeProfile, error) {
	return r.s.profiles[userId], nil
}

type fakeFollowUpRepo struct{ s *fakeStore }

func (r *fakeFollowUpRepo) Upsert(_ context.Context, answer *entity.FollowUpAnswer) error {
	if r.s.failAnswerUpsert {
		return fmt.Errorf("connection refused")
	}
	key := followUpKey(answer.UserId, answer.QuestionId)
	if existing, ok := r.s.followUps[key]; ok {
		now := time.Now()
		existing.AnswerText = answer.AnswerText
		existing.UpdatedAt = &now
		return nil
	}
	r.s.followUps[key] = answer
	return nil
}

func (r *fakeFollowUpRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.FollowUpAnswer, error) {
	out := make([]*entity.FollowUpAnswer, 0, len(r.s.followUps))
	for _, a := range r.s.followUps {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeFollowUpRepo) CountByUser(_ context.Context, _ uuid.UUID) (int64, error) {
	return int64(len(r.s.followUps)), nil
}

func (r *fakeFollowUpRepo) Categories(_ context.Context, _ uuid.UUID) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, a := range r.s.followUps {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	return out, nil
}

type fakeConfidenceRepo struct{ s *fakeStore }

func (r *fakeConfidenceRepo) Get(_ context.Context, userId uuid.UUID) (*entity.ProfileConfidence, error) {
	score, ok := r.s.confidences[userId]
	if !ok {
		return nil, nil
	}
	return &entity.ProfileConfidence{UserId: userId, Score: score}, nil
}

func (r *fakeConfidenceRepo) Save(_ context.Context, userId uuid.UUID, score int) error {
	if r.s.failConfidenceSave {
		return fmt.Errorf("connection refused")
	}
	r.s.confidences[userId] = score
	return nil
}

type fakeReportRepo struct{}

func (r *fakeReportRepo) Upsert(_ context.Context, _ *entity.ProfileReport) error { return nil }
func (r *fakeReportRepo) FindByUser(_ context.Context, _ uuid.UUID) (*entity.ProfileReport, error) {
	return nil, nil
}
func (r *fakeReportRepo) MarkStale(_ context.Context, _ uuid.UUID) error { return nil }

type fakeUnitOfWork struct{ s *fakeStore }

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) IntakeAnswerRepository() contract.IntakeAnswerRepository {
	return &fakeIntakeAnswerRepo{s: u.s}
}

func (u *fakeUnitOfWork) IntakeProfileRepository() contract.IntakeProfileRepository {
	return &fakeIntakeProfileRepo{s: u.s}
}

func (u *fakeUnitOfWork) FollowUpAnswerRepository() contract.FollowUpAnswerRepository {
	return &fakeFollowUpRepo{s: u.s}
}

func (u *fakeUnitOfWork) ProfileConfidenceRepository() contract.ProfileConfidenceRepository {
	return &fakeConfidenceRepo{s: u.s}
}

func (u *fakeUnitOfWork) ProfileReportRepository() contract.ProfileReportRepository {
	return &fakeReportRepo{}
}

type fakeFactory struct{ s *fakeStore }

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{s: f.s}
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type countingTrigger struct {
	fired int
	err   error
}

func (t *countingTrigger) Fire(_ context.Context, _ uuid.UUID) error {
	t.fired++
	return t.err
}

// seedIntake adds base answers whose text matches no category keyword, so
// coverage comes only from follow-up answers.
func seedIntake(s *fakeStore, userId uuid.UUID, n int) {
	for i := 0; i < n; i++ {
		s.intake = append(s.intake, &entity.IntakeAnswer{
			Id:           uuid.New(),
			UserId:       userId,
			QuestionText: "Where do you live?",
			AnswerText:   "I moved to Berlin in March.",
			CreatedAt:    time.Now(),
		})
	}
}

func newTestEngine(s *fakeStore, trigger refine.Trigger) *refine.Engine {
	return refine.NewEngine(
		&fakeFactory{s: s},
		memory.NewRoundRepository(),
		questions.NewFallbackSource(),
		trigger,
		nopLogger{},
	)
}

func answerWholeRound(t *testing.T, engine *refine.Engine, userId uuid.UUID, first *questions.FollowUpQuestion) *refine.AnswerResult {
	t.Helper()
	question := first
	for {
		result, err := engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{
			QuestionId: question.Id,
			AnswerText: "An honest answer about " + question.Category,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer(%s): %v", question.Id, err)
		}
		if result.RoundComplete {
			return result
		}
		question = result.NextQuestion
	}
}

func TestEngineConvergesOverTwoRounds(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	seedIntake(store, userId, 2)
	trigger := &countingTrigger{}
	engine := newTestEngine(store, trigger)

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if round.Terminated {
		t.Fatal("round 1 terminated immediately")
	}
	if round.Confidence != 20 {
		t.Errorf("round 1 confidence = %d, want 20", round.Confidence)
	}
	if round.RoundNumber != 1 {
		t.Errorf("round number = %d, want 1", round.RoundNumber)
	}
	if round.Remaining != scoring.MaxBatchSize {
		t.Errorf("remaining = %d, want %d", round.Remaining, scoring.MaxBatchSize)
	}
	if round.Question.Id != "fb-coping-mechanisms" {
		t.Errorf("first question = %s, want the high-importance coping one", round.Question.Id)
	}

	result := answerWholeRound(t, engine, userId, round.Question)
	if result.Terminated {
		t.Fatal("terminated after round 1 with half the catalog uncovered")
	}
	// 2 base answers and 4 follow-ups: 20 + 28
	if result.Confidence != 48 {
		t.Errorf("confidence after round 1 = %d, want 48", result.Confidence)
	}
	if trigger.fired != 1 {
		t.Errorf("trigger fired %d times after round 1, want 1", trigger.fired)
	}

	round2, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound round 2: %v", err)
	}
	if round2.RoundNumber != 2 {
		t.Errorf("round number = %d, want 2", round2.RoundNumber)
	}
	if round2.Question.Id != "fb-daily-routines" {
		t.Errorf("round 2 first question = %s, want the routines one", round2.Question.Id)
	}

	result2 := answerWholeRound(t, engine, userId, round2.Question)
	if !result2.Terminated {
		t.Fatal("full catalog coverage did not terminate the loop")
	}
	// 8 follow-ups caps the follow-up term at 55: 20 + 55
	if result2.Confidence != 75 {
		t.Errorf("final confidence = %d, want 75", result2.Confidence)
	}
	if trigger.fired != 2 {
		t.Errorf("trigger fired %d times, want 2", trigger.fired)
	}
	if len(store.followUps) != 8 {
		t.Errorf("persisted %d follow-up answers, want 8", len(store.followUps))
	}
}

func TestStartRoundRejectsSecondRound(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	engine := newTestEngine(store, &countingTrigger{})

	if _, err := engine.StartRound(context.Background(), userId); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := engine.StartRound(context.Background(), userId); !errors.Is(err, refine.ErrRoundInProgress) {
		t.Errorf("second StartRound err = %v, want ErrRoundInProgress", err)
	}
}

func TestStartRoundTerminatesAtThreshold(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	store.confidences[userId] = refine.TerminationThreshold
	engine := newTestEngine(store, &countingTrigger{})

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if !round.Terminated {
		t.Fatal("expected termination at the confidence threshold")
	}
	if round.Confidence != refine.TerminationThreshold {
		t.Errorf("confidence = %d, want %d", round.Confidence, refine.TerminationThreshold)
	}
}

func TestPersistedConfidenceNeverDecreases(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	// A previous pass persisted 80; the current answer set only scores 20.
	store.confidences[userId] = 80
	engine := newTestEngine(store, &countingTrigger{})

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if round.Confidence != 80 {
		t.Errorf("confidence = %d, want the persisted 80", round.Confidence)
	}
	if store.confidences[userId] != 80 {
		t.Errorf("store now holds %d, monotonic rule violated", store.confidences[userId])
	}
}

func TestStorageFailureDoesNotAdvanceRound(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	engine := newTestEngine(store, &countingTrigger{})

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	firstId := round.Question.Id

	store.failAnswerUpsert = true
	_, err = engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{
		QuestionId: firstId,
		AnswerText: "This write will fail",
	})
	if !errors.Is(err, refine.ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}

	current, _, err := engine.NextQuestion(userId)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if current.Id != firstId {
		t.Errorf("round advanced past %s to %s despite the failed write", firstId, current.Id)
	}

	// Storage recovers and the same question can be retried.
	store.failAnswerUpsert = false
	result, err := engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{
		QuestionId: firstId,
		AnswerText: "Retried and persisted",
	})
	if err != nil {
		t.Fatalf("retry SubmitAnswer: %v", err)
	}
	if result.NextQuestion == nil || result.NextQuestion.Id == firstId {
		t.Error("retry did not advance to the next question")
	}
	if len(store.followUps) != 1 {
		t.Errorf("persisted %d answers, want 1", len(store.followUps))
	}
}

func TestSkipAdvancesWithoutWrite(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	trigger := &countingTrigger{}
	engine := newTestEngine(store, trigger)

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	result, err := engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{
		QuestionId: round.Question.Id,
		Skip:       true,
	})
	if err != nil {
		t.Fatalf("SubmitAnswer skip: %v", err)
	}
	if len(store.followUps) != 0 {
		t.Errorf("skip persisted %d answers, want 0", len(store.followUps))
	}
	if result.NextQuestion == nil || result.NextQuestion.Id == round.Question.Id {
		t.Error("skip did not advance the round")
	}

	// Skipping the entire batch still completes the round and fires the
	// regeneration trigger.
	for result.NextQuestion != nil {
		result, err = engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{
			QuestionId: result.NextQuestion.Id,
			Skip:       true,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer skip: %v", err)
		}
	}
	if !result.RoundComplete {
		t.Error("skipping every question did not complete the round")
	}
	if trigger.fired != 1 {
		t.Errorf("trigger fired %d times for an all-skip round, want 1", trigger.fired)
	}
}

func TestSkipReportsLastKnownConfidence(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	seedIntake(store, userId, 2)
	// A previous pass already showed the client 48.
	store.confidences[userId] = 48
	engine := newTestEngine(store, &countingTrigger{})

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if round.Confidence != 48 {
		t.Fatalf("StartRound confidence = %d, want 48", round.Confidence)
	}

	result, err := engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{
		QuestionId: round.Question.Id,
		Skip:       true,
	})
	if err != nil {
		t.Fatalf("SubmitAnswer skip: %v", err)
	}
	if result.Confidence != 48 {
		t.Errorf("skip response confidence = %d, want the 48 the client already saw", result.Confidence)
	}

	for result.NextQuestion != nil {
		result, err = engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{
			QuestionId: result.NextQuestion.Id,
			Skip:       true,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer skip: %v", err)
		}
		if result.Confidence != 48 {
			t.Errorf("skip response confidence = %d, want 48 throughout", result.Confidence)
		}
	}
	if !result.RoundComplete {
		t.Error("skipping every question did not complete the round")
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	engine := newTestEngine(store, &countingTrigger{})

	if _, err := engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{QuestionId: "fb-coping-mechanisms", AnswerText: "x"}); !errors.Is(err, refine.ErrNoActiveRound) {
		t.Errorf("no round err = %v, want ErrNoActiveRound", err)
	}

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	if _, err := engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{QuestionId: "fb-future-vision", AnswerText: "x"}); !errors.Is(err, refine.ErrInvalidInput) {
		t.Errorf("wrong question err = %v, want ErrInvalidInput", err)
	}
	if _, err := engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{QuestionId: round.Question.Id, AnswerText: "   "}); !errors.Is(err, refine.ErrInvalidInput) {
		t.Errorf("blank answer err = %v, want ErrInvalidInput", err)
	}
	if _, err := engine.StartRound(context.Background(), uuid.Nil); !errors.Is(err, refine.ErrInvalidInput) {
		t.Errorf("nil user err = %v, want ErrInvalidInput", err)
	}
}

func TestAbandonAllowsRestart(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	engine := newTestEngine(store, &countingTrigger{})

	if _, err := engine.StartRound(context.Background(), userId); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if err := engine.Abandon(userId); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	// Idempotent
	if err := engine.Abandon(userId); err != nil {
		t.Fatalf("second Abandon: %v", err)
	}

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound after abandon: %v", err)
	}
	if round.RoundNumber != 1 {
		t.Errorf("round number after abandon = %d, want a fresh 1", round.RoundNumber)
	}
}

func TestTriggerFailureDoesNotFailRound(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	trigger := &countingTrigger{err: errors.New("broker down")}
	engine := newTestEngine(store, trigger)

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	result := answerWholeRound(t, engine, userId, round.Question)
	if !result.RoundComplete {
		t.Fatal("round did not complete")
	}
	if trigger.fired != 1 {
		t.Errorf("trigger fired %d times, want 1", trigger.fired)
	}
}

func TestConfidenceSaveFailureKeepsAnswer(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	engine := newTestEngine(store, &countingTrigger{})

	round, err := engine.StartRound(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	store.failConfidenceSave = true
	result, err := engine.SubmitAnswer(context.Background(), userId, refine.AnswerInput{
		QuestionId: round.Question.Id,
		AnswerText: "Persisted even though scoring is down",
	})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if len(store.followUps) != 1 {
		t.Errorf("persisted %d answers, want 1", len(store.followUps))
	}
	if result.NextQuestion == nil {
		t.Error("round did not advance after a scoring failure")
	}
	if result.Confidence != 20 {
		t.Errorf("confidence = %d, want the last persisted 20 while scoring is down", result.Confidence)
	}
}
