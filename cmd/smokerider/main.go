package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/cache"
	"github.com/papinesquik/SmokeRider/internal/config"
	"github.com/papinesquik/SmokeRider/internal/db"
	"github.com/papinesquik/SmokeRider/internal/kafka"
	"github.com/papinesquik/SmokeRider/internal/logger"
	"github.com/papinesquik/SmokeRider/internal/migrations"
	"github.com/papinesquik/SmokeRider/internal/repository/postgresql"
	"github.com/papinesquik/SmokeRider/internal/routing"
	"github.com/papinesquik/SmokeRider/internal/server"
	"github.com/papinesquik/SmokeRider/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New()
	defer func() {
		_ = log.Sync()
	}()

	cfg := config.Load()

	if err := runMigrations(cfg.DatabaseDSN()); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	database, err := db.NewDb(ctx, cfg.DatabaseDSN())
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.Close()

	orderRepo := postgresql.NewOrderRepo(database)
	positionRepo := postgresql.NewPositionRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	orderCache := cache.NewOrderCache(orderRepo, log)
	if err := orderCache.LoadInitialData(ctx); err != nil {
		log.Warn("order cache warmup failed", zap.Error(err))
	}

	router := routing.NewDirectionsClient(cfg.DirectionsBaseURL, cfg.DirectionsAPIKey, cfg.DirectionsTimeout)

	svc := service.New(
		database,
		orderRepo,
		positionRepo,
		historyRepo,
		outboxRepo,
		router,
		cfg.OrderEventTopic,
		log,
		service.WithCache(orderCache),
	)

	producer := kafka.NewWriterProducer(cfg.KafkaBrokers)
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	}, log)
	go publisher.Run(ctx)

	srv := server.New(svc, log)
	go func() {
		if err := srv.Run(cfg.HTTPPort); err != nil {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
	publisher.Shutdown()

	log.Info("stopped")
}

func runMigrations(dsn string) error {
	migDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer migDB.Close()
	return migrations.Run(migDB)
}
