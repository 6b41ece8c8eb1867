package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dzmarket/payment-engine/internal/api"
	"github.com/dzmarket/payment-engine/internal/config"
	"github.com/dzmarket/payment-engine/internal/events"
	"github.com/dzmarket/payment-engine/internal/gateway"
	"github.com/dzmarket/payment-engine/internal/idempotency"
	"github.com/dzmarket/payment-engine/internal/interfaces"
	"github.com/dzmarket/payment-engine/internal/ledger"
	"github.com/dzmarket/payment-engine/internal/models"
	"github.com/dzmarket/payment-engine/internal/notifier"
	"github.com/dzmarket/payment-engine/internal/repository"
	"github.com/dzmarket/payment-engine/internal/security"
	"github.com/dzmarket/payment-engine/internal/service"
	"github.com/dzmarket/payment-engine/internal/shipping"
	"github.com/dzmarket/payment-engine/internal/telemetry"
	"github.com/dzmarket/payment-engine/internal/verification"
)

func main() {
	cfg := config.Load()

	shutdownTelemetry, err := telemetry.Init("payment-engine", cfg.OTLPEndpoint)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer shutdownTelemetry(context.Background())

	logger := telemetry.Logger
	logger.Info("Starting Payment Engine")

	// Transaction archive: Postgres when configured, in-memory otherwise.
	var archive interfaces.TransactionArchive
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		pgArchive := repository.NewTransactionArchive(db)
		if err := pgArchive.InitDB(); err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		archive = pgArchive
	} else {
		logger.Warn("DATABASE_URL not set, transaction history will not survive restarts")
		archive = repository.NewMemoryArchive()
	}

	// Idempotency lock: Redis when configured, process-local otherwise.
	var locker interfaces.Locker
	if cfg.RedisURL != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		defer redisClient.Close()
		locker = idempotency.NewRedisLocker(redisClient)
	} else {
		locker = idempotency.NewMemoryLocker(nil)
	}

	// State-change events: Kafka when configured.
	var publisher interfaces.EventPublisher
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		publisher = events.NewMemoryPublisher()
	}

	// Verification-code delivery: NATS when configured, log otherwise.
	var codeNotifier notifier.Notifier
	if cfg.NatsURL != "" {
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer nc.Close()
		codeNotifier = notifier.NewNATSNotifier(nc)
	} else {
		codeNotifier = notifier.NewLogNotifier(logger)
	}

	settings := models.DefaultSecuritySettings()
	settings.MaxDailyLimit = cfg.MaxDailyLimit
	settings.MaxTransactionLimit = cfg.MaxTransactionLimit

	txLedger := ledger.NewLedger(nil)
	guard := security.NewGuard(settings, nil)
	gatewayClient := gateway.NewSimulatedClient(cfg.GatewaySuccessRate, cfg.GatewayLatency, 0)

	orchestrator := service.NewOrchestrator(txLedger, guard, gatewayClient, locker, publisher, archive, logger, nil)
	verifications := verification.NewManager(guard, txLedger, codeNotifier, logger, nil)
	rateEngine := shipping.NewEngine(models.DefaultShippingRates())

	r := api.NewRouter(orchestrator, rateEngine, verifications)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Payment Engine starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
