package main

import (
	"net/http"

	bookinghandler "consultpay/internal/bookings/handler"
	"consultpay/internal/bookings/repository"
	bookingservice "consultpay/internal/bookings/service"
	bookingvalidator "consultpay/internal/bookings/validator"
	"consultpay/internal/events"
	paymenthandler "consultpay/internal/payments/handler"
	"consultpay/internal/payments/reconciler"
	paymentservice "consultpay/internal/payments/service"
	paymentvalidator "consultpay/internal/payments/validator"
	"consultpay/pkg/app"
	"consultpay/pkg/cashfree"
	"consultpay/pkg/config"
	"consultpay/pkg/kafka"
	kafka_config "consultpay/pkg/kafka/config"
	kafka_middleware "consultpay/pkg/kafka/middleware"
	"consultpay/pkg/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetStore()

	cfg.Log.Info("Starting Bookings service")
	serverApp := app.NewApplication(cfg)

	publisher := initPublisher(cfg, serverApp)
	bookingRepo := repository.NewBookingRepository(cfg)
	gateway := cashfree.NewClient(cashfree.Config{
		AppID:       cfg.CashfreeAppID,
		SecretKey:   cfg.CashfreeSecretKey,
		Environment: cfg.CashfreeEnvironment,
		APIVersion:  cfg.CashfreeAPIVersion,
		Timeout:     cfg.ProviderTimeout,
	})
	if !gateway.Configured() {
		cfg.Log.Warn("Cashfree credentials are not set; booking and verification requests will fail")
	}

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		gateway,
		publisher,
		bookingvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)
	paymentService := paymentservice.NewPaymentService(
		bookingRepo,
		gateway,
		reconciler.NewReconciler(bookingRepo, publisher, cfg.Log),
		paymentvalidator.NewPaymentValidator(cfg.Log),
		cfg.Log,
	)
	cfg.Log.Info("Services initialized", "store_driver", cfg.StoreDriver, "cashfree_environment", cfg.CashfreeEnvironment)

	var webhookMiddleware []func(http.Handler) http.Handler
	if cfg.CashfreeWebhookVerify {
		webhookMiddleware = append(webhookMiddleware, middleware.WebhookSignatureVerification(cfg.CashfreeSecretKey, cfg.Log))
		cfg.Log.Info("Webhook signature verification enabled")
	}

	serverApp.SetApp(
		bookinghandler.NewHealthHandler(bookingService, cfg.AppEnv, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentService, cfg.Log, webhookMiddleware...),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaBookingEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	cfg.Log.Info("Kafka producer ready", "topic", producer.Topic(), "brokers", kafkaCfg.Brokers)
	serverApp.OnShutdown(producer.Close)

	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log)
}
