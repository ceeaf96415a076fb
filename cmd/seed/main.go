package main

import (
	"context"
	"log"
	"os"
	"time"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/repository/unitofwork"
	"ai-profiling-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// demoUserId is a fixed id so the simulate tool can target the same data.
const demoUserId = "6f1b24a0-3c52-4d6e-9b0a-55f7f12a9c31"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	userId := uuid.MustParse(demoUserId)
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	color.Cyan("Seeding demo intake data for user %s", userId)

	answers := []struct {
		question string
		answer   string
		insight  string
	}{
		{
			question: "What brings you here today?",
			answer:   "Work has been rough for a few months and I want to get a handle on it before it gets worse.",
			insight:  "proactive, work-centered strain",
		},
		{
			question: "How would you describe the last few weeks?",
			answer:   "Mostly fine on the surface, but I notice I snap at small things more than I used to.",
			insight:  "irritability above baseline",
		},
	}

	for _, a := range answers {
		err := uow.IntakeAnswerRepository().Create(ctx, &entity.IntakeAnswer{
			Id:             uuid.New(),
			UserId:         userId,
			QuestionText:   a.question,
			AnswerText:     a.answer,
			DerivedInsight: a.insight,
			CreatedAt:      time.Now(),
		})
		if err != nil {
			color.Red("Failed to seed intake answer: %v", err)
			os.Exit(1)
		}
		color.Green("  + intake answer: %q", a.question)
	}

	err = uow.IntakeProfileRepository().Upsert(ctx, &entity.IntakeProfile{
		Id:        uuid.New(),
		UserId:    userId,
		Tone:      "direct but warm",
		Goals:     []string{"handle work stress better", "stop snapping at people"},
		CreatedAt: time.Now(),
	})
	if err != nil {
		color.Red("Failed to seed profile hints: %v", err)
		os.Exit(1)
	}
	color.Green("  + profile hints (tone, goals)")

	color.Cyan("Done. Run cmd/simulate to drive refinement rounds for this user.")
}
