package bootstrap

import (
	"context"
	"log"

	"resume-builder-be/internal/config"
	"resume-builder-be/internal/controller"
	"resume-builder-be/internal/handler"
	"resume-builder-be/internal/pkg/logger"
	"resume-builder-be/internal/pkg/mailer"
	"resume-builder-be/internal/repository/memory"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/internal/service"
	"resume-builder-be/internal/websocket"
	"resume-builder-be/pkg/embedding"
	"resume-builder-be/pkg/llm/factory"
	pktNats "resume-builder-be/pkg/nats"
	"resume-builder-be/pkg/ratelimit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	embedResumeTopic = "embed-resume"
	analyticsTopic   = "analytics-events"
)

type Container struct {
	// Controllers
	AuthController           controller.IAuthController
	OAuthController          controller.IOAuthController
	UserController           controller.IUserController
	UsageController          controller.IUsageController
	ResumeController         controller.IResumeController
	TemplateController       controller.ITemplateController
	JobApplicationController controller.IJobApplicationController
	AiController             controller.IAiController
	BillingController        controller.IBillingController
	NotificationController   controller.INotificationController
	AdminController          controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.GeminiAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Chat sessions are kept in process memory.
	sessionRepo := memory.NewSessionRepository()

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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

	loginLimiter := ratelimit.NewRedisLimiter(rdb, "ratelimit")

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	embedPublisher := service.NewPublisherService(embedResumeTopic, pubSub)
	analyticsPublisher := service.NewPublisherService(analyticsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		embedResumeTopic,
		analyticsTopic,
		uowFactory,
		embeddingProvider,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, loginLimiter, cfg.Auth)
	oauthService := service.NewOAuthService(uowFactory, natsPub, cfg.Auth)
	userService := service.NewUserService(uowFactory)
	usageService := service.NewUsageService(uowFactory)
	templateService := service.NewTemplateService(uowFactory)

	resumeService := service.NewResumeService(
		uowFactory,
		embedPublisher,
		analyticsPublisher,
		natsPub,
		cfg.App.ClientURL,
	)

	jobService := service.NewJobApplicationService(uowFactory, natsPub)

	aiService := service.NewAiService(
		uowFactory,
		llmProvider,
		embeddingProvider,
		sessionRepo,
		natsPub,
	)

	billingService := service.NewBillingService(
		uowFactory,
		natsPub,
		emailService,
		cfg.Billing,
		cfg.App.ClientURL,
	)

	adminService := service.NewAdminService(uowFactory, natsPub, sysLogger)

	// 6. Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 7. Controllers
	return &Container{
		AuthController:           controller.NewAuthController(authService),
		OAuthController:          controller.NewOAuthController(oauthService),
		UserController:           controller.NewUserController(userService),
		UsageController:          controller.NewUsageController(usageService),
		ResumeController:         controller.NewResumeController(resumeService),
		TemplateController:       controller.NewTemplateController(templateService),
		JobApplicationController: controller.NewJobApplicationController(jobService),
		AiController:             controller.NewAiController(aiService),
		BillingController:        controller.NewBillingController(billingService),
		NotificationController:   controller.NewNotificationController(notifService),
		AdminController:          controller.NewAdminController(adminService, templateService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
