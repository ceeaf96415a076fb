package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"ai-profiling-be/internal/pkg/logger"
	"ai-profiling-be/internal/repository/memory"
	"ai-profiling-be/internal/repository/unitofwork"
	"ai-profiling-be/pkg/database"
	"ai-profiling-be/pkg/questions"
	"ai-profiling-be/pkg/refine"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Drives full refinement rounds against the deterministic fallback source
// until the loop terminates, to show convergence without an LLM running.
// Usage: go run ./cmd/simulate [user-uuid]

const demoUserId = "6f1b24a0-3c52-4d6e-9b0a-55f7f12a9c31"

type noopTrigger struct{}

func (noopTrigger) Fire(_ context.Context, userId uuid.UUID) error {
	color.Yellow("  [trigger] report regeneration requested for %s", userId)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	userIdStr := demoUserId
	if len(os.Args) > 1 {
		userIdStr = os.Args[1]
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		log.Fatalf("Error: invalid user id %q: %v", userIdStr, err)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	engine := refine.NewEngine(
		unitofwork.NewRepositoryFactory(db),
		memory.NewRoundRepository(),
		questions.NewFallbackSource(),
		noopTrigger{},
		logger.NewIsolatedLogger("logs/simulate.log"),
	)

	ctx := context.Background()
	color.Cyan("=== Refinement Simulation for %s ===", userId)

	for {
		round, err := engine.StartRound(ctx, userId)
		if err != nil {
			log.Fatalf("StartRound failed: %v", err)
		}

		if round.Terminated {
			color.Green("\nLoop terminated at confidence %d. Nothing left to ask.", round.Confidence)
			return
		}

		color.Cyan("\n--- Round %d (confidence %d, %d questions) ---", round.RoundNumber, round.Confidence, round.Remaining)

		question := round.Question
		for question != nil {
			fmt.Printf("Q [%s]: %s\n", question.Category, question.Question)

			answer := fmt.Sprintf("Simulated answer about %s.", question.Category)
			result, err := engine.SubmitAnswer(ctx, userId, refine.AnswerInput{
				QuestionId: question.Id,
				AnswerText: answer,
			})
			if err != nil {
				log.Fatalf("SubmitAnswer failed: %v", err)
			}

			color.White("  -> confidence %d", result.Confidence)

			if result.RoundComplete {
				color.Cyan("Round %d complete (%d answered).", result.RoundNumber, result.Answered)
				if result.Terminated {
					color.Green("\nLoop terminated at confidence %d.", result.Confidence)
					return
				}
				break
			}
			question = result.NextQuestion
		}
	}
}
