package dto

import "ai-profiling-be/pkg/scoring"

// FollowUpQuestionPayload is the wire form of one pending question.
type FollowUpQuestionPayload struct {
	Id          string `json:"id"`
	Question    string `json:"question"`
	Category    string `json:"category"`
	Placeholder string `json:"placeholder,omitempty"`
	Importance  string `json:"importance"`
	Context     string `json:"context,omitempty"`
}

type MissingTopicPayload struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Importance  string `json:"importance"`
}

type StartRoundResponse struct {
	Terminated    bool                     `json:"terminated"`
	Confidence    int                      `json:"confidence"`
	RoundNumber   int                      `json:"round_number,omitempty"`
	BatchSize     int                      `json:"batch_size"`
	MissingTopics []MissingTopicPayload    `json:"missing_topics,omitempty"`
	Question      *FollowUpQuestionPayload `json:"question,omitempty"`
}

type NextQuestionResponse struct {
	Question  *FollowUpQuestionPayload `json:"question"`
	Remaining int                      `json:"remaining"`
}

// SubmitAnswerRequest carries one answer. A null or blank answer means the
// user skipped the question.
type SubmitAnswerRequest struct {
	QuestionId string  `json:"question_id" validate:"required"`
	Answer     *string `json:"answer"`
}

type SubmitAnswerResponse struct {
	Confidence    int                      `json:"confidence"`
	NextQuestion  *FollowUpQuestionPayload `json:"next_question,omitempty"`
	Remaining     int                      `json:"remaining"`
	RoundComplete bool                     `json:"round_complete"`
	Terminated    bool                     `json:"terminated"`
}

func NewMissingTopicPayloads(topics []scoring.MissingTopic) []MissingTopicPayload {
	out := make([]MissingTopicPayload, 0, len(topics))
	for _, t := range topics {
		out = append(out, MissingTopicPayload{
			Category:    t.Category,
			Description: t.Description,
			Importance:  string(t.Importance),
		})
	}
	return out
}
