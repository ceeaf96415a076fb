package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "ROUND_STARTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes published on the bus.
const (
	TypeRoundStarted      = "ROUND_STARTED"
	TypeQuestionPresented = "QUESTION_PRESENTED"
	TypeAnswerPersisted   = "ANSWER_PERSISTED"
	TypeRoundCompleted    = "ROUND_COMPLETED"
	TypeLoopTerminated    = "LOOP_TERMINATED"
	TypeRegenerateReport  = "REGENERATE_REPORT"
	TypeReportRegenerated = "REPORT_REGENERATED"
)

// BaseEvent is the generic implementation every constructor below returns.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func newEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

// NewRoundStarted announces a fresh question batch for a user.
func NewRoundStarted(userId string, roundNumber, confidence, batchSize int) Event {
	return newEvent(TypeRoundStarted, map[string]interface{}{
		"user_id":    userId,
		"round":      roundNumber,
		"confidence": confidence,
		"batch_size": batchSize,
	})
}

// NewQuestionPresented announces the question now awaiting an answer.
func NewQuestionPresented(userId, questionId, category string, remaining int) Event {
	return newEvent(TypeQuestionPresented, map[string]interface{}{
		"user_id":     userId,
		"question_id": questionId,
		"category":    category,
		"remaining":   remaining,
	})
}

// NewAnswerPersisted announces one stored follow-up answer and the
// re-scored confidence.
func NewAnswerPersisted(userId, questionId string, confidence int) Event {
	return newEvent(TypeAnswerPersisted, map[string]interface{}{
		"user_id":     userId,
		"question_id": questionId,
		"confidence":  confidence,
	})
}

// NewRoundCompleted announces that every question in a batch was answered
// or skipped.
func NewRoundCompleted(userId string, roundNumber, answered, confidence int) Event {
	return newEvent(TypeRoundCompleted, map[string]interface{}{
		"user_id":    userId,
		"round":      roundNumber,
		"answered":   answered,
		"confidence": confidence,
	})
}

// NewLoopTerminated announces that the refinement loop converged for a user.
func NewLoopTerminated(userId string, confidence int) Event {
	return newEvent(TypeLoopTerminated, map[string]interface{}{
		"user_id":    userId,
		"confidence": confidence,
	})
}

// NewRegenerateReport asks the report worker to rebuild a user's narrative
// report from the current answer set.
func NewRegenerateReport(userId string) Event {
	return newEvent(TypeRegenerateReport, map[string]interface{}{
		"user_id": userId,
	})
}

// NewReportRegenerated announces a freshly written report.
func NewReportRegenerated(userId string, generatedAt time.Time) Event {
	return newEvent(TypeReportRegenerated, map[string]interface{}{
		"user_id":      userId,
		"generated_at": generatedAt.Format(time.RFC3339),
	})
}
