package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-profiling-be/internal/constant"
	"ai-profiling-be/pkg/llm"
	"ai-profiling-be/pkg/scoring"

	"github.com/google/uuid"
)

// LLMSource drafts follow-up questions through the generation service. Any
// failure - transport, timeout, schema violation, empty output - is reported
// as ErrGenerationUnavailable so the caller swaps to the fallback. The source
// itself never retries.
type LLMSource struct {
	provider llm.LLMProvider
	timeout  time.Duration
}

func NewLLMSource(provider llm.LLMProvider) *LLMSource {
	return &LLMSource{
		provider: provider,
		timeout:  constant.GenerationTimeoutSeconds * time.Second,
	}
}

var _ Source = &LLMSource{}

// generatedQuestion is the schema the service must return.
type generatedQuestion struct {
	Question    string `json:"question"`
	Category    string `json:"category"`
	Placeholder string `json:"placeholder"`
	Context     string `json:"context"`
}

type generatedBatch struct {
	Questions []generatedQuestion `json:"questions"`
}

func (s *LLMSource) Generate(ctx context.Context, input GenerateInput) ([]FollowUpQuestion, error) {
	if len(input.Missing) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.Generate(ctx, s.buildPrompt(input), llm.WithTemperature(0.4))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}

	batch, err := s.parse(raw, input.Missing)
	if err != nil {
		return nil, err
	}

	return normalize(batch, len(input.Missing)), nil
}

func (s *LLMSource) buildPrompt(input GenerateInput) string {
	var prompt strings.Builder

	prompt.WriteString(constant.FollowUpGenerationPromptV1)
	prompt.WriteString("\n\n<missing_categories>\n")
	for _, topic := range input.Missing {
		fmt.Fprintf(&prompt, "- %s (%s importance): %s\n", topic.Category, topic.Importance, topic.Description)
	}
	prompt.WriteString("</missing_categories>\n")

	if len(input.PriorAnswers) > 0 {
		prompt.WriteString("\n<prior_answers>\n")
		sample := input.PriorAnswers
		if len(sample) > constant.PromptAnswerSampleSize {
			sample = sample[:constant.PromptAnswerSampleSize]
		}
		for _, a := range sample {
			fmt.Fprintf(&prompt, "Q: %s\nA: %s\n\n", a.QuestionText, a.AnswerText)
		}
		prompt.WriteString("</prior_answers>\n")
	}

	if input.Hints != nil {
		prompt.WriteString("\n<profile_hints>\n")
		if input.Hints.Tone != "" {
			fmt.Fprintf(&prompt, "Preferred tone: %s\n", input.Hints.Tone)
		}
		if len(input.Hints.Goals) > 0 {
			fmt.Fprintf(&prompt, "Stated goals: %s\n", strings.Join(input.Hints.Goals, "; "))
		}
		prompt.WriteString("</profile_hints>\n")
	}

	return prompt.String()
}

// parse validates the service output against the requested categories.
// Questions for categories that were not asked for are dropped; the
// importance always comes from the catalog, never from the model.
func (s *LLMSource) parse(raw string, missing []scoring.MissingTopic) ([]FollowUpQuestion, error) {
	cleaned := stripCodeFence(raw)

	var batch generatedBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrGenerationUnavailable, err)
	}

	importanceByCategory := make(map[string]scoring.Importance, len(missing))
	for _, topic := range missing {
		importanceByCategory[topic.Category] = topic.Importance
	}

	seen := make(map[string]bool)
	questions := make([]FollowUpQuestion, 0, len(batch.Questions))
	for _, q := range batch.Questions {
		importance, requested := importanceByCategory[q.Category]
		if !requested || seen[q.Category] || strings.TrimSpace(q.Question) == "" {
			continue
		}
		seen[q.Category] = true
		questions = append(questions, FollowUpQuestion{
			Id:          "gen-" + uuid.New().String(),
			Question:    strings.TrimSpace(q.Question),
			Category:    q.Category,
			Placeholder: q.Placeholder,
			Importance:  importance,
			Context:     q.Context,
		})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: response contained no usable questions", ErrGenerationUnavailable)
	}
	return questions, nil
}

// stripCodeFence tolerates models that wrap JSON in markdown fences.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
