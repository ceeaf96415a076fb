package scoring

import "sort"

const (
	// Base answers alone can never certify more than 70: they are
	// unstructured and un-probed.
	baseCeiling   = 70
	basePerAnswer = 10

	// Follow-ups weigh less per item but compound past the base ceiling,
	// since targeted probing is more informative per question.
	bonusCeiling    = 55
	bonusPerAnswer  = 7
	confidenceFloor = 20
	confidenceCap   = 95

	// MaxBatchSize bounds every follow-up round so each round feels the
	// same size to the user and the confidence gain stays predictable.
	MaxBatchSize = 4
)

// MissingTopic is a catalog category with no associated answer yet. It is
// recomputed every round and never persisted.
type MissingTopic struct {
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
}

// ComputeConfidence maps answer counts onto a 20..95 coverage score:
//
//	clamp(min(70, base*10) + min(55, followUp*7), 20, 95)
//
// Negative counts are treated as zero.
func ComputeConfidence(baseCount, followUpCount int) int {
	if baseCount < 0 {
		baseCount = 0
	}
	if followUpCount < 0 {
		followUpCount = 0
	}

	base := baseCount * basePerAnswer
	if base > baseCeiling {
		base = baseCeiling
	}

	bonus := followUpCount * bonusPerAnswer
	if bonus > bonusCeiling {
		bonus = bonusCeiling
	}

	raw := base + bonus
	if raw < confidenceFloor {
		return confidenceFloor
	}
	if raw > confidenceCap {
		return confidenceCap
	}
	return raw
}

// MissingTopics returns catalog entries not present in answered, sorted by
// importance (high first, catalog order within a tier) and truncated to
// MaxBatchSize. Pure: same input always yields the same list.
func MissingTopics(answered map[string]bool) []MissingTopic {
	missing := make([]MissingTopic, 0, len(catalog))
	for _, entry := range catalog {
		if answered[entry.Category] {
			continue
		}
		missing = append(missing, MissingTopic{
			Category:    entry.Category,
			Description: entry.Description,
			Importance:  entry.Importance,
		})
	}

	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Importance.Rank() < missing[j].Importance.Rank()
	})

	if len(missing) > MaxBatchSize {
		missing = missing[:MaxBatchSize]
	}
	return missing
}
