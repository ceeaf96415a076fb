package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-profiling-be/internal/constant"
	"ai-profiling-be/internal/dto"
	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/repository/specification"
	"ai-profiling-be/internal/repository/unitofwork"
	"ai-profiling-be/internal/websocket"
	"ai-profiling-be/pkg/events"
	"ai-profiling-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the report regeneration worker. It drains the
// in-process bus and rebuilds one narrative report per message. Failures log
// and drop or retry; they never reach the refinement loop.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	hub         *websocket.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	hub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		hub:         hub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RegenerateReportMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	userId, err := uuid.Parse(payload.UserId)
	if err != nil {
		log.Printf("[ERROR] Invalid user id in message: %v", err)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Regenerating report for user %s", userId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	intake, err := uow.IntakeAnswerRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to load intake answers for %s: %v", userId, err)
		msg.Nack()
		return
	}

	followUps, err := uow.FollowUpAnswerRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to load follow-up answers for %s: %v", userId, err)
		msg.Nack()
		return
	}

	if len(intake) == 0 && len(followUps) == 0 {
		log.Printf("[WARN] No answers for user %s, skipping report", userId)
		msg.Ack()
		return
	}

	content, err := cs.generateReport(ctx, intake, followUps)
	if err != nil {
		// Generation outage: drop, the next completed round fires again
		log.Printf("[ERROR] Report generation failed for %s: %v", userId, err)
		msg.Ack()
		return
	}

	report := &entity.ProfileReport{
		Id:          uuid.New(),
		UserId:      userId,
		Content:     content,
		Stale:       false,
		GeneratedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ProfileReportRepository().Upsert(ctx, report); err != nil {
		log.Printf("[ERROR] Failed to save report for %s: %v", userId, err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	if cs.hub != nil {
		cs.hub.Send(userId, events.NewReportRegenerated(userId.String(), report.GeneratedAt))
	}

	log.Printf("[SUCCESS] Report regenerated for user %s (%d chars)", userId, len(content))
	msg.Ack()
}

func (cs *consumerService) generateReport(ctx context.Context, intake []*entity.IntakeAnswer, followUps []*entity.FollowUpAnswer) (string, error) {
	var prompt strings.Builder

	prompt.WriteString(constant.ReportGenerationPromptV1)
	prompt.WriteString("\n\n<diagnostic_answers>\n")
	for _, a := range intake {
		fmt.Fprintf(&prompt, "Q: %s\nA: %s\n\n", a.QuestionText, a.AnswerText)
	}
	prompt.WriteString("</diagnostic_answers>\n")

	if len(followUps) > 0 {
		prompt.WriteString("\n<follow_up_answers>\n")
		for _, a := range followUps {
			fmt.Fprintf(&prompt, "[%s] Q: %s\nA: %s\n\n", a.Category, a.QuestionText, a.AnswerText)
		}
		prompt.WriteString("</follow_up_answers>\n")
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	content, err := cs.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.6))
	if err != nil {
		return "", err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("empty report from generation service")
	}
	return content, nil
}
