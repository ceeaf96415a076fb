package scoring

import (
	"testing"
)

func TestComputeConfidence(t *testing.T) {
	tests := []struct {
		name      string
		baseCount int
		followUps int
		want      int
	}{
		{"zero answers hits floor", 0, 0, 20},
		{"one base answer still floor", 1, 0, 20},
		{"three base answers", 3, 0, 30},
		{"base ceiling reached", 7, 0, 70},
		{"base ceiling not exceeded", 20, 0, 70},
		{"follow-ups only under cap", 0, 8, 56},
		{"follow-ups only near cap", 0, 9, 63},
		{"follow-up bonus capped at 55", 0, 20, 55},
		{"both ceilings clamp to 95", 7, 20, 95},
		{"heavy engagement clamps to 95", 50, 50, 95},
		{"scenario two base four follow-ups", 2, 4, 48},
		{"negative counts treated as zero", -3, -1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeConfidence(tt.baseCount, tt.followUps)
			if got != tt.want {
				t.Errorf("ComputeConfidence(%d, %d) = %d, want %d", tt.baseCount, tt.followUps, got, tt.want)
			}
		})
	}
}

func TestComputeConfidenceBounds(t *testing.T) {
	for b := 0; b <= 30; b++ {
		for f := 0; f <= 30; f++ {
			got := ComputeConfidence(b, f)
			if got < 20 || got > 95 {
				t.Fatalf("ComputeConfidence(%d, %d) = %d, out of [20, 95]", b, f, got)
			}
		}
	}
}

func TestMissingTopics(t *testing.T) {
	t.Run("empty answered set returns top four", func(t *testing.T) {
		missing := MissingTopics(nil)
		if len(missing) != MaxBatchSize {
			t.Fatalf("len = %d, want %d", len(missing), MaxBatchSize)
		}
		// All high-importance categories come before any medium ones.
		for i := 1; i < len(missing); i++ {
			if missing[i-1].Importance.Rank() > missing[i].Importance.Rank() {
				t.Errorf("importance order broken at %d: %v before %v",
					i, missing[i-1].Importance, missing[i].Importance)
			}
		}
	})

	t.Run("answered categories excluded", func(t *testing.T) {
		answered := map[string]bool{
			CategoryCoping:   true,
			CategoryTriggers: true,
		}
		for _, m := range MissingTopics(answered) {
			if answered[m.Category] {
				t.Errorf("category %q answered but still reported missing", m.Category)
			}
		}
	})

	t.Run("full coverage returns empty list", func(t *testing.T) {
		answered := make(map[string]bool)
		for _, entry := range Catalog() {
			answered[entry.Category] = true
		}
		if missing := MissingTopics(answered); len(missing) != 0 {
			t.Errorf("expected no missing topics, got %d", len(missing))
		}
	})

	t.Run("fewer than four missing returns that count", func(t *testing.T) {
		answered := make(map[string]bool)
		for i, entry := range Catalog() {
			if i >= 6 {
				break
			}
			answered[entry.Category] = true
		}
		if missing := MissingTopics(answered); len(missing) != 2 {
			t.Errorf("len = %d, want 2", len(missing))
		}
	})

	t.Run("deterministic for same input", func(t *testing.T) {
		answered := map[string]bool{CategorySupport: true}
		first := MissingTopics(answered)
		second := MissingTopics(answered)
		if len(first) != len(second) {
			t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].Category != second[i].Category {
				t.Errorf("order differs at %d: %q vs %q", i, first[i].Category, second[i].Category)
			}
		}
	})
}

func TestInferCategories(t *testing.T) {
	texts := []string{
		"When things get hard I usually journal and do breathing exercises.",
		"My biggest stress comes from deadlines at work.",
		"I wake up at 6 and follow the same morning routine.",
	}

	answered := InferCategories(texts)

	for _, want := range []string{CategoryCoping, CategoryTriggers, CategoryRoutines} {
		if !answered[want] {
			t.Errorf("expected %q to be inferred", want)
		}
	}
	if answered[CategoryFutureVision] {
		t.Error("Future Vision should not be inferred from these answers")
	}

	if got := InferCategories(nil); len(got) != 0 {
		t.Errorf("no texts should infer no categories, got %d", len(got))
	}
}
