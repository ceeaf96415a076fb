package refine

import (
	"ai-profiling-be/pkg/questions"
)

// Round lifecycle states. Transitions only move forward within a round;
// RoundComplete either loops back into a new Analyzing pass or terminates.
const (
	StateIdle               = "IDLE"
	StateAnalyzing          = "ANALYZING"
	StateAwaitingQuestions  = "AWAITING_QUESTIONS"
	StatePresentingQuestion = "PRESENTING_QUESTION"
	StatePersisting         = "PERSISTING"
	StateRoundComplete      = "ROUND_COMPLETE"
	StateTerminated         = "TERMINATED"
)

// RoundState is the in-memory state of one user's active round. It is never
// persisted: abandoning a round simply lets the cache entry expire, and the
// next StartRound recomputes everything from the stores.
type RoundState struct {
	UserID          string                      `json:"user_id"`
	RoundNumber     int                         `json:"round_number"`
	State           string                      `json:"state"`
	Questions       []questions.FollowUpQuestion `json:"questions"`
	CurrentIndex    int                         `json:"current_index"`
	AnsweredInRound int                         `json:"answered_in_round"`

	// Confidence is the persisted score as of the last successful analysis.
	// Reported whenever a fresh re-score is unavailable (skips, transient
	// analysis failures) so the client never sees the value move backwards.
	Confidence int `json:"confidence"`
}

// CurrentQuestion returns the question being presented, or nil when the
// batch is exhausted.
func (r *RoundState) CurrentQuestion() *questions.FollowUpQuestion {
	if r.CurrentIndex < 0 || r.CurrentIndex >= len(r.Questions) {
		return nil
	}
	q := r.Questions[r.CurrentIndex]
	return &q
}

// BatchExhausted reports whether every question in the batch has been
// answered or skipped.
func (r *RoundState) BatchExhausted() bool {
	return r.CurrentIndex >= len(r.Questions)
}

// InProgress reports whether the round still expects answers.
func (r *RoundState) InProgress() bool {
	return r.State == StatePresentingQuestion && !r.BatchExhausted()
}
