package bootstrap

import (
	"log"
	"time"

	"ai-faq-generator-be/internal/config"
	"ai-faq-generator-be/internal/controller"
	"ai-faq-generator-be/internal/pkg/logger"
	"ai-faq-generator-be/internal/repository/unitofwork"
	"ai-faq-generator-be/internal/service"
	"ai-faq-generator-be/pkg/admin/usage"
	"ai-faq-generator-be/pkg/genai"
	pkgNats "ai-faq-generator-be/pkg/nats"
	"ai-faq-generator-be/pkg/quota"
	"ai-faq-generator-be/pkg/ratelimit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	FaqController     controller.IFaqController
	CreditController  controller.ICreditController
	PaymentController controller.IPaymentController
	AdminController   controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
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

	// 3. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	limiter, err := ratelimit.New(
		cfg.App.RedisURL,
		cfg.Ai.GenerateRateLimit,
		time.Duration(cfg.Ai.RateLimitWindowSec)*time.Second,
	)
	if err != nil {
		log.Printf("[WARN] Failed to initialize rate limiter: %v", err)
		limiter = nil
	}

	generator := genai.NewClient(cfg.Keys.GoogleGemini, cfg.Ai.Model)
	ledger := quota.NewLedger()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.CreditTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.CreditTopicName, uowFactory)

	faqService := service.NewFaqService(
		uowFactory,
		publisherService,
		generator,
		natsPub,
		ledger,
		sysLogger,
		cfg.Ai,
	)

	paymentService := service.NewPaymentService(uowFactory, sysLogger, natsPub, cfg.Payment, cfg.App.ClientURL)

	usageTracker := usage.NewTracker(sysLogger, ledger)
	adminService := service.NewAdminService(uowFactory, usageTracker)

	// 5. Controllers
	return &Container{
		FaqController:     controller.NewFaqController(faqService, limiter),
		CreditController:  controller.NewCreditController(faqService),
		PaymentController: controller.NewPaymentController(paymentService),
		AdminController:   controller.NewAdminController(adminService),

		ConsumerService: consumerService,
	}
}
