package bootstrap

import (
	"context"
	"log"

	"ai-profiling-be/internal/config"
	"ai-profiling-be/internal/controller"
	"ai-profiling-be/internal/handler"
	"ai-profiling-be/internal/pkg/logger"
	"ai-profiling-be/internal/repository/memory"
	"ai-profiling-be/internal/repository/unitofwork"
	"ai-profiling-be/internal/service"
	"ai-profiling-be/internal/websocket"
	"ai-profiling-be/pkg/llm/factory"
	pktNats "ai-profiling-be/pkg/nats"
	"ai-profiling-be/pkg/questions"
	"ai-profiling-be/pkg/refine"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// regenerateReportTopic is the in-process bus topic between the trigger and
// the report worker.
const regenerateReportTopic = "REGENERATE_REPORT"

type Container struct {
	// Controllers
	RefinementController controller.IRefinementController
	IntakeController     controller.IIntakeController
	ReportController     controller.IReportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	RefinementEventsHandler *handler.RefinementEventsHandler
	WebSocketHub            *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceToken,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-Memory Round Storage
	roundRepo := memory.NewRoundRepository()

	// 3.5 Infrastructure
	// NATS
	var lifecyclePub service.LifecycleEventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		lifecyclePub = natsPub
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/refinement_events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Lifecycle Audit Worker
	if natsSub != nil {
		auditLogger := logger.NewIsolatedLogger("logs/lifecycle_audit.log")
		go service.NewEventAuditService(natsSub, auditLogger).Start()
	}

	// 4. Services
	publisherService := service.NewPublisherService(regenerateReportTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		regenerateReportTopic,
		uowFactory,
		llmProvider,
		wsHub,
	)

	// Question generation chain: model first, deterministic fallback second
	questionSource := questions.NewChain(
		questions.NewLLMSource(llmProvider),
		questions.NewFallbackSource(),
		sysLogger,
	)

	trigger := service.NewReportTrigger(uowFactory, publisherService)
	engine := refine.NewEngine(uowFactory, roundRepo, questionSource, trigger, sysLogger)

	refinementService := service.NewRefinementService(engine, lifecyclePub, wsHub, sysLogger)
	intakeService := service.NewIntakeService(uowFactory)
	reportService := service.NewReportService(uowFactory)

	// Handler
	eventsHandler := handler.NewRefinementEventsHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		RefinementController:    controller.NewRefinementController(refinementService),
		IntakeController:        controller.NewIntakeController(intakeService),
		ReportController:        controller.NewReportController(reportService),
		ConsumerService:         consumerService,
		RefinementEventsHandler: eventsHandler,
		WebSocketHub:            wsHub,
	}
}
