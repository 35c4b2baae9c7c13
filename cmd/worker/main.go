package main

import (
	"burpp/infra/postgres"
	"burpp/infra/rabbitmq"
	"burpp/internal/consumers"
	"burpp/pkg/config"
	"burpp/pkg/events"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Burpp Notification Worker starting...")

	appConfig := config.Read()
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("rabbitMQURL", appConfig.RabbitMQURL),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for worker service")
	}

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
	)

	notificationHandler := consumers.NewNotificationEventHandler(
		pgRepository,
		zap.L(),
	)

	// One queue per exchange; the handler decides per event what to do.
	consumerConfigs := []rabbitmq.ConsumerConfig{
		{
			Exchange:      events.VendorExchange,
			QueueName:     "burpp.notifications.vendor.v1",
			RoutingKeys:   []string{"vendor.#"},
			ServiceName:   appConfig.ServiceName,
			PrefetchCount: 10,
		},
		{
			Exchange:      events.MessagingExchange,
			QueueName:     "burpp.notifications.messaging.v1",
			RoutingKeys:   []string{"message.#"},
			ServiceName:   appConfig.ServiceName,
			PrefetchCount: 10,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	for _, consumerConfig := range consumerConfigs {
		consumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, consumerConfig)
		if err != nil {
			zap.L().Fatal("Failed to create consumer",
				zap.String("queue", consumerConfig.QueueName),
				zap.Error(err),
			)
		}
		defer consumer.Close()

		go func(queue string) {
			zap.L().Info("Starting event consumer...", zap.String("queue", queue))
			if err := consumer.Consume(ctx, notificationHandler.HandleEvent); err != nil {
				if err != context.Canceled {
					zap.L().Error("Consumer error", zap.String("queue", queue), zap.Error(err))
				}
			}
		}(consumerConfig.QueueName)
	}

	// Start connection pool monitoring
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := pgRepository.GetPoolStats()
				zap.L().Info("Connection pool stats",
					zap.Int("max_open", stats["max_open_connections"].(int)),
					zap.Int("open", stats["open_connections"].(int)),
					zap.Int("in_use", stats["in_use"].(int)),
					zap.Int("idle", stats["idle"].(int)),
					zap.Int64("wait_count", stats["wait_count"].(int64)),
					zap.Int64("wait_duration_ms", stats["wait_duration_ms"].(int64)),
				)
			}
		}
	}()

	zap.L().Info("Worker service started successfully. Waiting for events...")

	<-sigChan
	zap.L().Info("Shutdown signal received, stopping worker service...")
	cancel()

	zap.L().Info("Worker service stopped gracefully")
}
