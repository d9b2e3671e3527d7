package bootstrap

import (
	"context"
	"log"
	"strings"

	"vetvox-be/internal/config"
	"vetvox-be/internal/controller"
	"vetvox-be/internal/handler"
	"vetvox-be/internal/pkg/logger"
	"vetvox-be/internal/repository/memory"
	"vetvox-be/internal/repository/unitofwork"
	"vetvox-be/internal/service"
	"vetvox-be/internal/websocket"
	"vetvox-be/pkg/events"
	"vetvox-be/pkg/extract"
	"vetvox-be/pkg/llm/factory"

	pkgNats "vetvox-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	VisitController controller.IVisitController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	RecordingHandler *handler.RecordingHandler
	DashboardHandler *handler.DashboardHandler
	WebSocketHub     *websocket.Hub

	// System-wide logger, exposed for middleware.
	Logger logger.ILogger
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

	// 3. Extraction Strategy
	// "keyword" runs offline; anything else builds the configured LLM
	// provider and falls back to keyword matching when that fails.
	var extractor extract.Strategy
	if cfg.Ai.LLMProvider == "keyword" {
		extractor = extract.NewKeywordStrategy()
		log.Printf("[INFO] Using Extraction Strategy: KEYWORD")
	} else {
		llmProvider, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Ai.OllamaBaseURL,
			cfg.Keys.GoogleGemini,
		)
		if err != nil {
			log.Printf("[WARN] Failed to initialize LLM Provider: %v (falling back to keyword extraction)", err)
			extractor = extract.NewKeywordStrategy()
		} else {
			extractor = extract.NewLLMStrategy(llmProvider, cfg.Ai.ExtractionTimeout)
			log.Printf("[INFO] Using Extraction Strategy: LLM %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
		}
	}

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
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
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.RecorderLogPath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Durable audit trail: every visit event that crosses the stream lands in
	// the system log, surviving restarts via the durable consumer.
	if natsSub != nil {
		for _, topic := range []string{events.TopicVisitCreated, events.TopicVisitNotesUpdated} {
			topic := topic
			err := natsSub.Subscribe(context.Background(), topic, "vetvox-audit-"+strings.ReplaceAll(topic, ".", "-"), func(data []byte) error {
				sysLogger.Info("Audit", topic, map[string]interface{}{"payload": string(data)})
				return nil
			})
			if err != nil {
				log.Printf("[WARN] Failed to subscribe audit consumer for %s: %v", topic, err)
			}
		}
	}

	// 4. Services
	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(pubSub, wsHub)

	visitService := service.NewVisitService(
		uowFactory,
		extractor,
		publisherService,
		natsPub,
	)

	// 5. Handlers & Controllers
	recordingHandler := handler.NewRecordingHandler(sessionRepo, wsLogger)
	dashboardHandler := handler.NewDashboardHandler(wsHub, wsLogger)

	return &Container{
		VisitController:  controller.NewVisitController(visitService),
		ConsumerService:  consumerService,
		RecordingHandler: recordingHandler,
		DashboardHandler: dashboardHandler,
		WebSocketHub:     wsHub,
		Logger:           sysLogger,
	}
}
