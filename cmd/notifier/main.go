package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/config"
	"github.com/papinesquik/SmokeRider/internal/db"
	"github.com/papinesquik/SmokeRider/internal/logger"
	"github.com/papinesquik/SmokeRider/internal/notifier"
	"github.com/papinesquik/SmokeRider/internal/repository/postgresql"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New()
	defer func() {
		_ = log.Sync()
	}()

	cfg := config.Load()

	database, err := db.NewDb(ctx, cfg.DatabaseDSN())
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.Close()

	userRepo := postgresql.NewUserRepo(database)
	positionRepo := postgresql.NewPositionRepo(database)
	sender := notifier.NewFCMSender(cfg.FCMEndpoint, cfg.FCMServerKey, 10*time.Second)

	n := notifier.New(userRepo, positionRepo, sender, log)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		GroupID:        cfg.ConsumerGroupID,
		Topic:          cfg.OrderEventTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		if err := reader.Close(); err != nil {
			log.Error("closing kafka reader failed", zap.Error(err))
		}
	}()

	log.Info("notifier consuming",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.OrderEventTopic),
	)

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("shutdown signal received, stopping consumer")
				return
			}
			log.Error("reading message failed", zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		if err := n.HandleMessage(ctx, m.Value); err != nil {
			log.Error("handling order event failed", zap.Error(err))
		}
	}
}
