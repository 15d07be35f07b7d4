package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"ai-legalaid-be/internal/config"
	"ai-legalaid-be/internal/controller"
	"ai-legalaid-be/internal/pkg/logger"
	"ai-legalaid-be/internal/repository/memory"
	"ai-legalaid-be/internal/repository/redisstore"
	"ai-legalaid-be/internal/service"
	"ai-legalaid-be/pkg/dialog"
	"ai-legalaid-be/pkg/emotion/huggingface"
	"ai-legalaid-be/pkg/llm/factory"
	"ai-legalaid-be/pkg/llm/resilient"
	"ai-legalaid-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Gateways
	baseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		baseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		baseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	generationGateway := resilient.Wrap(
		llmProvider,
		uint64(cfg.Ai.MaxRetries),
		time.Duration(cfg.Ai.TimeoutSeconds)*time.Second,
	)

	emotionGateway := huggingface.NewClassifier(
		cfg.Emotion.APIKey,
		cfg.Emotion.BaseURL,
		cfg.Emotion.Model,
	)

	// 4. Session Storage
	var sessionRepo store.SessionRepository
	if cfg.App.SessionStore == "redis" {
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
		sessionRepo = redisstore.NewSessionRepository(rdb)
		log.Println("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Println("[INFO] Using Session Store: MEMORY")
	}

	// 5. Dialog Machine
	machine := dialog.NewMachine(sessionRepo, generationGateway, initDialogLogger())

	// 6. Services
	publisherService := service.NewPublisherService(cfg.App.TurnEventsTopic, pubSub)

	auditLogger := logger.NewIsolatedLogger("logs/audit.log")
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.TurnEventsTopic,
		auditLogger,
	)

	chatService := service.NewChatService(
		machine,
		emotionGateway,
		publisherService,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService),
		ConsumerService: consumerService,
	}
}

// initDialogLogger writes stage transitions to their own file so the main log
// stays readable. Falls back to stderr if the file cannot be opened.
func initDialogLogger() *log.Logger {
	logPath := filepath.Join("logs", "dialog.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		log.Printf("[WARN] Failed to create log directory: %v", err)
		return log.Default()
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("[WARN] Failed to open dialog log file: %v", err)
		return log.Default()
	}
	return log.New(file, "", log.LstdFlags)
}
