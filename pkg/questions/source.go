package questions

import (
	"context"
	"errors"
	"sort"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/pkg/scoring"
)

// ErrGenerationUnavailable marks any failure of the generation service:
// transport error, timeout, non-success status, or unparseable output. The
// caller must fall back to the rule-based source, never retry.
var ErrGenerationUnavailable = errors.New("question generation unavailable")

// FollowUpQuestion is one generated follow-up item. Both strategies return
// this exact shape so the caller never knows which one produced the batch.
type FollowUpQuestion struct {
	Id          string             `json:"id"`
	Question    string             `json:"question"`
	Category    string             `json:"category"`
	Placeholder string             `json:"placeholder"`
	Importance  scoring.Importance `json:"importance"`
	Context     string             `json:"context,omitempty"`
}

// GenerateInput carries everything a strategy may use to draft questions.
type GenerateInput struct {
	Missing      []scoring.MissingTopic
	PriorAnswers []*entity.IntakeAnswer
	Hints        *entity.IntakeProfile // nil when intake recorded no hints
}

// Source produces a bounded batch of follow-up questions for a set of
// missing categories.
type Source interface {
	Generate(ctx context.Context, input GenerateInput) ([]FollowUpQuestion, error)
}

// normalize enforces the batch policy shared by every strategy: importance
// ascending (high first, input order preserved within a tier), capped at
// min(MaxBatchSize, len(missing)). Never pads.
func normalize(batch []FollowUpQuestion, missingCount int) []FollowUpQuestion {
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Importance.Rank() < batch[j].Importance.Rank()
	})

	limit := scoring.MaxBatchSize
	if missingCount < limit {
		limit = missingCount
	}
	if len(batch) > limit {
		batch = batch[:limit]
	}
	return batch
}
