package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/pkg/llm"
	"ai-profiling-be/pkg/scoring"

	"github.com/google/uuid"
)

type stubProvider struct {
	response string
	err      error
	prompts  []string
}

func (p *stubProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return p.response, p.err
}

func (p *stubProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.response, p.err
}

type testLogger struct{}

func (testLogger) Debug(string, string, map[string]interface{}) {}
func (testLogger) Info(string, string, map[string]interface{})  {}
func (testLogger) Warn(string, string, map[string]interface{})  {}
func (testLogger) Error(string, string, map[string]interface{}) {}
func (testLogger) Sync() error                                  { return nil }

func sampleIntakeAnswers(n int) []*entity.IntakeAnswer {
	out := make([]*entity.IntakeAnswer, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &entity.IntakeAnswer{
			Id:           uuid.New(),
			UserId:       uuid.New(),
			QuestionText: fmt.Sprintf("Intake question %d", i+1),
			AnswerText:   fmt.Sprintf("Intake answer %d", i+1),
			CreatedAt:    time.Now(),
		})
	}
	return out
}

func sampleProfileHints() *entity.IntakeProfile {
	return &entity.IntakeProfile{
		Id:     uuid.New(),
		UserId: uuid.New(),
		Tone:   "gentle",
		Goals:  []string{"sleep better", "worry less"},
	}
}

func missingTopics(categories ...string) []scoring.MissingTopic {
	byCategory := make(map[string]scoring.CatalogEntry)
	for _, entry := range scoring.Catalog() {
		byCategory[entry.Category] = entry
	}
	out := make([]scoring.MissingTopic, 0, len(categories))
	for _, c := range categories {
		entry := byCategory[c]
		out = append(out, scoring.MissingTopic{
			Category:    entry.Category,
			Description: entry.Description,
			Importance:  entry.Importance,
		})
	}
	return out
}

func TestFallbackCoversEveryCatalogCategory(t *testing.T) {
	for _, entry := range scoring.Catalog() {
		batch, err := NewFallbackSource().Generate(context.Background(), GenerateInput{
			Missing: missingTopics(entry.Category),
		})
		if err != nil {
			t.Fatalf("%s: %v", entry.Category, err)
		}
		if len(batch) != 1 {
			t.Fatalf("%s: got %d questions, want 1", entry.Category, len(batch))
		}
		q := batch[0]
		if q.Category != entry.Category {
			t.Errorf("category = %s, want %s", q.Category, entry.Category)
		}
		if q.Importance != entry.Importance {
			t.Errorf("%s importance = %s, want %s", entry.Category, q.Importance, entry.Importance)
		}
		if q.Id == "" || q.Question == "" || q.Placeholder == "" {
			t.Errorf("%s produced an incomplete question: %+v", entry.Category, q)
		}
	}
}

func TestFallbackBatchSize(t *testing.T) {
	all := make([]string, 0, len(scoring.Catalog()))
	for _, entry := range scoring.Catalog() {
		all = append(all, entry.Category)
	}

	tests := []struct {
		name    string
		missing []string
		want    int
	}{
		{"fewer than the cap", []string{scoring.CategoryCoping, scoring.CategoryRoutines}, 2},
		{"exactly the cap", all[:scoring.MaxBatchSize], scoring.MaxBatchSize},
		{"never padded past missing", []string{scoring.CategoryFutureVision}, 1},
		{"unknown category skipped", []string{"Astrology"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := GenerateInput{Missing: missingTopics(tt.missing...)}
			if tt.name == "unknown category skipped" {
				input.Missing = []scoring.MissingTopic{{Category: "Astrology", Importance: scoring.ImportanceLow}}
			}
			batch, err := NewFallbackSource().Generate(context.Background(), input)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(batch) != tt.want {
				t.Errorf("got %d questions, want %d", len(batch), tt.want)
			}
		})
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	input := GenerateInput{Missing: missingTopics(
		scoring.CategoryRoutines, scoring.CategoryCoping, scoring.CategoryFutureVision,
	)}
	first, err := NewFallbackSource().Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := NewFallbackSource().Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("batch sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("question %d differs between identical calls", i)
		}
	}
	// High importance sorts ahead of medium and low
	if first[0].Category != scoring.CategoryCoping {
		t.Errorf("first question category = %s, want %s", first[0].Category, scoring.CategoryCoping)
	}
}

func TestLLMSourceParsesWellFormedResponse(t *testing.T) {
	provider := &stubProvider{response: `{
		"questions": [
			{"question": "What helps you reset after a hard day?", "category": "Coping Mechanisms", "placeholder": "e.g. a walk", "context": "ctx"},
			{"question": "Who checks in on you?", "category": "Support System", "placeholder": "e.g. my sister", "context": "ctx"}
		]
	}`}
	source := NewLLMSource(provider)

	batch, err := source.Generate(context.Background(), GenerateInput{
		Missing: missingTopics(scoring.CategoryCoping, scoring.CategorySupport),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("got %d questions, want 2", len(batch))
	}
	for _, q := range batch {
		if !strings.HasPrefix(q.Id, "gen-") {
			t.Errorf("generated id %s lacks the gen- prefix", q.Id)
		}
	}
	// Importance comes from the catalog, not the model
	if batch[0].Importance != scoring.ImportanceHigh {
		t.Errorf("importance = %s, want high", batch[0].Importance)
	}
}

func TestLLMSourceToleratesCodeFences(t *testing.T) {
	provider := &stubProvider{response: "```json\n{\"questions\":[{\"question\":\"How do you wind down?\",\"category\":\"Daily Routines\"}]}\n```"}
	source := NewLLMSource(provider)

	batch, err := source.Generate(context.Background(), GenerateInput{
		Missing: missingTopics(scoring.CategoryRoutines),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("got %d questions, want 1", len(batch))
	}
}

func TestLLMSourceDropsUnrequestedAndDuplicateCategories(t *testing.T) {
	provider := &stubProvider{response: `{
		"questions": [
			{"question": "First coping question", "category": "Coping Mechanisms"},
			{"question": "Second coping question", "category": "Coping Mechanisms"},
			{"question": "Not asked for", "category": "Future Vision"},
			{"question": "", "category": "Coping Mechanisms"}
		]
	}`}
	source := NewLLMSource(provider)

	batch, err := source.Generate(context.Background(), GenerateInput{
		Missing: missingTopics(scoring.CategoryCoping),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("got %d questions, want 1", len(batch))
	}
	if batch[0].Question != "First coping question" {
		t.Errorf("kept %q, want the first coping question", batch[0].Question)
	}
}

func TestLLMSourceFailureModes(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
	}{
		{"transport error", &stubProvider{err: fmt.Errorf("connection refused")}},
		{"malformed json", &stubProvider{response: "I think the user should be asked about..."}},
		{"empty batch", &stubProvider{response: `{"questions": []}`}},
		{"only unusable questions", &stubProvider{response: `{"questions":[{"question":"x","category":"Astrology"}]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := NewLLMSource(tt.provider)
			_, err := source.Generate(context.Background(), GenerateInput{
				Missing: missingTopics(scoring.CategoryCoping),
			})
			if !errors.Is(err, ErrGenerationUnavailable) {
				t.Errorf("err = %v, want ErrGenerationUnavailable", err)
			}
		})
	}
}

func TestLLMSourcePromptCarriesProfileContext(t *testing.T) {
	provider := &stubProvider{response: `{"questions":[{"question":"q","category":"Coping Mechanisms"}]}`}
	source := NewLLMSource(provider)

	_, err := source.Generate(context.Background(), GenerateInput{
		Missing:      missingTopics(scoring.CategoryCoping),
		PriorAnswers: sampleIntakeAnswers(7),
		Hints:        sampleProfileHints(),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	prompt := provider.prompts[0]
	if !strings.Contains(prompt, "<missing_categories>") {
		t.Error("prompt lacks the missing categories section")
	}
	if !strings.Contains(prompt, "Preferred tone: gentle") {
		t.Error("prompt lacks the profile tone hint")
	}
	// Prior answers are sampled, not dumped wholesale
	if got := strings.Count(prompt, "Q: "); got != 5 {
		t.Errorf("prompt contains %d prior answers, want the 5 most recent", got)
	}
}

func TestChainPrefersPrimaryAndFallsBack(t *testing.T) {
	input := GenerateInput{Missing: missingTopics(scoring.CategoryCoping, scoring.CategorySupport)}

	primary := &stubProvider{response: `{"questions":[{"question":"From the model","category":"Coping Mechanisms"}]}`}
	chain := NewChain(NewLLMSource(primary), NewFallbackSource(), testLogger{})
	batch, err := chain.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(batch) != 1 || batch[0].Question != "From the model" {
		t.Errorf("chain did not use the primary batch: %+v", batch)
	}

	broken := &stubProvider{err: fmt.Errorf("model overloaded")}
	chain = NewChain(NewLLMSource(broken), NewFallbackSource(), testLogger{})
	batch, err = chain.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("Generate with broken primary: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("fallback batch size = %d, want 2", len(batch))
	}
	for _, q := range batch {
		if !strings.HasPrefix(q.Id, "fb-") {
			t.Errorf("question %s did not come from the fallback", q.Id)
		}
	}
}
