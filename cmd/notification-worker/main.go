package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"restaurant-ops/config"
	"restaurant-ops/internal/events"
	"restaurant-ops/internal/logger"
	"restaurant-ops/internal/service"
	"restaurant-ops/internal/storage"
)

func main() {
	settings := config.Load()

	zlog, err := logger.New(settings.LogLevel, settings.LogFormat, "notification-worker")
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(settings, zlog)
	defer db.Close()

	rdb := config.MustInitRedis(settings, zlog)
	defer rdb.Close()

	reader := config.NewKafkaReader(settings)
	defer reader.Close()

	repo := storage.NewPostgresRepository(db)
	consumer := events.NewConsumer(
		reader,
		service.NewNotificationService(repo, service.SystemClock{}),
		storage.NewRedisActivityStore(rdb, settings.ActivityTTL),
		settings.NotificationChannel,
		zlog,
	)
	consumer.Start(ctx)
}
