package scoring

import "strings"

// categoryKeywords maps free-text cues in base answers onto catalog
// categories. Intentionally coarse: base answers are unstructured, so we only
// claim a category when the answer clearly touches it.
var categoryKeywords = map[string][]string{
	CategoryCoping: {
		"cope", "coping", "deal with", "calm down", "breathe", "breathing",
		"distract", "journal", "meditat",
	},
	CategoryTriggers: {
		"trigger", "stress", "stressed", "overwhelm", "anxious", "panic",
		"pressure", "deadline",
	},
	CategorySupport: {
		"friend", "family", "partner", "therapist", "support", "talk to",
		"lean on",
	},
	CategoryCommunication: {
		"communicat", "argue", "argument", "conflict", "express", "listen",
		"shut down",
	},
	CategoryRoutines: {
		"routine", "morning", "evening", "sleep", "schedule", "habit",
		"every day", "wake up",
	},
	CategoryPhysical: {
		"exercise", "gym", "energy", "tired", "fatigue", "headache", "eat",
		"appetite", "workout",
	},
	CategoryRelationships: {
		"relationship", "marriage", "spouse", "girlfriend", "boyfriend",
		"colleague", "coworker", "lonely",
	},
	CategoryFutureVision: {
		"future", "goal", "hope", "wish", "want to be", "dream", "plan to",
	},
}

// InferCategories scans base-answer text for category cues and returns the
// set of categories considered covered. Question text counts too: if the
// intake asked about a topic, the answer covers it regardless of wording.
func InferCategories(texts []string) map[string]bool {
	answered := make(map[string]bool)
	for _, text := range texts {
		lower := strings.ToLower(text)
		for category, keywords := range categoryKeywords {
			if answered[category] {
				continue
			}
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					answered[category] = true
					break
				}
			}
		}
	}
	return answered
}
