package refine

import "errors"

// Error taxonomy for the refinement loop. Generation failures never appear
// here: they are absorbed inside the question source chain and replaced by
// the rule-based fallback.
var (
	// ErrStorage marks a persistence read/write failure. Retryable: the
	// round does not advance until the write succeeds or the caller skips.
	ErrStorage = errors.New("storage failure")

	// ErrInvalidInput marks a malformed user id or answer payload. Rejected
	// before any state mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRoundInProgress is returned when StartRound is called while a
	// batch still has unanswered questions.
	ErrRoundInProgress = errors.New("a refinement round is already in progress")

	// ErrNoActiveRound is returned when an answer arrives with no round
	// open.
	ErrNoActiveRound = errors.New("no active refinement round")
)
