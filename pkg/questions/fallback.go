package questions

import (
	"context"

	"ai-profiling-be/pkg/scoring"
)

// fallbackTemplate is one deterministic question per catalog category.
type fallbackTemplate struct {
	id          string
	question    string
	placeholder string
	context     string
}

// fallbackTable covers every catalog category, so the fallback can answer
// for any subset of missing topics with zero external calls.
var fallbackTable = map[string]fallbackTemplate{
	scoring.CategoryCoping: {
		id:          "fb-coping-mechanisms",
		question:    "When something knocks you off balance, what do you actually do in the first hour afterwards?",
		placeholder: "e.g. I go for a walk, call someone, or just scroll my phone...",
		context:     "Your earlier answers don't yet show how you handle hard moments in practice.",
	},
	scoring.CategoryTriggers: {
		id:          "fb-triggers-stressors",
		question:    "Which situations or people most reliably drain you or set you off?",
		placeholder: "e.g. last-minute changes at work, arguments about money...",
		context:     "Knowing your triggers helps the program anticipate rough patches.",
	},
	scoring.CategorySupport: {
		id:          "fb-support-system",
		question:    "Who do you turn to when things get heavy, and how often do you actually reach out?",
		placeholder: "e.g. my sister, about once a month, usually only when it's bad...",
		context:     "Your support network shapes which suggestions are realistic for you.",
	},
	scoring.CategoryCommunication: {
		id:          "fb-communication-patterns",
		question:    "In a disagreement with someone close, what does your side of it usually look like?",
		placeholder: "e.g. I go quiet and need a day before I can talk about it...",
		context:     "How you communicate under tension changes what advice will land.",
	},
	scoring.CategoryRoutines: {
		id:          "fb-daily-routines",
		question:    "Walk me through an ordinary weekday, from waking up to going to sleep.",
		placeholder: "e.g. up at 7, coffee, work until 6, TV, bed around midnight...",
		context:     "Daily structure is where most profile recommendations have to fit.",
	},
	scoring.CategoryPhysical: {
		id:          "fb-physical-health",
		question:    "How has your body been doing lately - energy, sleep quality, movement?",
		placeholder: "e.g. tired most afternoons, sleep okay, barely exercise...",
		context:     "Physical state and mood feed each other; the profile needs both.",
	},
	scoring.CategoryRelationships: {
		id:          "fb-relationships",
		question:    "Which relationship in your life takes up the most emotional space right now, and why?",
		placeholder: "e.g. my partner - we're fine but we keep having the same fight...",
		context:     "Key relationships are usually where stress shows up first.",
	},
	scoring.CategoryFutureVision: {
		id:          "fb-future-vision",
		question:    "If things were noticeably better six months from now, what would be different day to day?",
		placeholder: "e.g. I'd sleep through the night and stop dreading Mondays...",
		context:     "A concrete picture of 'better' lets the program aim at something.",
	},
}

// FallbackSource is the rule-based strategy: a static per-category lookup,
// fully deterministic, no I/O. It can serve any subset of the catalog.
type FallbackSource struct{}

func NewFallbackSource() *FallbackSource {
	return &FallbackSource{}
}

var _ Source = &FallbackSource{}

func (s *FallbackSource) Generate(_ context.Context, input GenerateInput) ([]FollowUpQuestion, error) {
	batch := make([]FollowUpQuestion, 0, len(input.Missing))
	for _, topic := range input.Missing {
		tpl, ok := fallbackTable[topic.Category]
		if !ok {
			// Unknown category: skip rather than invent a question
			continue
		}
		batch = append(batch, FollowUpQuestion{
			Id:          tpl.id,
			Question:    tpl.question,
			Category:    topic.Category,
			Placeholder: tpl.placeholder,
			Importance:  topic.Importance,
			Context:     tpl.context,
		})
	}
	return normalize(batch, len(input.Missing)), nil
}
