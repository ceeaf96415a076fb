package refine

import (
	"context"
	"fmt"

	"ai-profiling-be/internal/repository/specification"
	"ai-profiling-be/internal/repository/unitofwork"
	"ai-profiling-be/pkg/scoring"

	"github.com/google/uuid"
)

// TerminationThreshold is the confidence at which the loop stops asking.
// Fixed on purpose: per-call configuration would make round behavior
// unpredictable across sessions.
const TerminationThreshold = 95

// Analysis is the outcome of one Analyzing pass.
type Analysis struct {
	// Confidence is the value computed from fresh counts this pass.
	Confidence int

	// Persisted is the monotonic value after the max-write, i.e. what a
	// reconnecting client will see. Never less than any earlier Persisted.
	Persisted int

	Missing       []scoring.MissingTopic
	BaseCount     int
	FollowUpCount int

	// Terminated is true when Persisted >= TerminationThreshold or no
	// missing topics remain.
	Terminated bool
}

// Analyzer recomputes confidence and missing topics from the stores. It owns
// the monotonic-max write: the persisted score only ever goes up, so races
// and partial data views can never lower what the user has already seen.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) Analyze(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*Analysis, error) {
	baseCount, err := uow.IntakeAnswerRepository().CountByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: count intake answers: %v", ErrStorage, err)
	}

	followUpCount, err := uow.FollowUpAnswerRepository().CountByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: count follow-up answers: %v", ErrStorage, err)
	}

	answered, err := a.answeredCategories(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	missing := scoring.MissingTopics(answered)
	confidence := scoring.ComputeConfidence(int(baseCount), int(followUpCount))

	persisted, err := a.persistMonotonic(ctx, uow, userId, confidence)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Confidence:    confidence,
		Persisted:     persisted,
		Missing:       missing,
		BaseCount:     int(baseCount),
		FollowUpCount: int(followUpCount),
		Terminated:    persisted >= TerminationThreshold || len(missing) == 0,
	}, nil
}

// answeredCategories merges categories inferred from intake answer text with
// the explicit categories of recorded follow-up answers. Derived fresh every
// pass; there is no hidden state to drift.
func (a *Analyzer) answeredCategories(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (map[string]bool, error) {
	intake, err := uow.IntakeAnswerRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: load intake answers: %v", ErrStorage, err)
	}

	texts := make([]string, 0, len(intake)*2)
	for _, ans := range intake {
		texts = append(texts, ans.QuestionText, ans.AnswerText)
	}
	answered := scoring.InferCategories(texts)

	categories, err := uow.FollowUpAnswerRepository().Categories(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: load follow-up categories: %v", ErrStorage, err)
	}
	for _, c := range categories {
		answered[c] = true
	}

	return answered, nil
}

// persistMonotonic writes max(existing, computed) and returns it. The store
// has no cross-process read-modify-write, so this caller-side max is what
// keeps the persisted value non-decreasing.
func (a *Analyzer) persistMonotonic(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, computed int) (int, error) {
	existing, err := uow.ProfileConfidenceRepository().Get(ctx, userId)
	if err != nil {
		return 0, fmt.Errorf("%w: read confidence: %v", ErrStorage, err)
	}

	persisted := computed
	if existing != nil && existing.Score > persisted {
		persisted = existing.Score
	}

	if existing == nil || existing.Score != persisted {
		if err := uow.ProfileConfidenceRepository().Save(ctx, userId, persisted); err != nil {
			return 0, fmt.Errorf("%w: save confidence: %v", ErrStorage, err)
		}
	}

	return persisted, nil
}
