package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant-ops/config"
	httpapi "restaurant-ops/internal/api/http"
	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/logger"
	"restaurant-ops/internal/service"
	"restaurant-ops/internal/storage"

	"go.uber.org/zap"
)

func main() {
	settings := config.Load()

	zlog, err := logger.New(settings.LogLevel, settings.LogFormat, "restaurant-api")
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(settings, zlog)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		zlog.Fatal("failed to apply schema", zap.Error(err))
	}

	rdb := config.MustInitRedis(settings, zlog)
	defer rdb.Close()

	writer := config.NewKafkaWriter(settings, zlog)
	defer writer.Close()

	clock := service.SystemClock{}
	orderOpts := []service.OrderOption{
		service.WithQRGenerator(service.DefaultQRGenerator{BaseURL: settings.PublicBaseURL}),
	}
	var reservationTransitions domain.Transitions[domain.ReservationStatus]
	if settings.StrictStatusTransitions {
		orderOpts = append(orderOpts, service.WithOrderTransitions(domain.DefaultOrderTransitions))
		reservationTransitions = domain.DefaultReservationTransitions
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Catalog:       service.NewCatalogService(repo),
		Users:         service.NewUserService(repo),
		Orders:        service.NewOrderService(repo, clock, orderOpts...),
		Reservations:  service.NewReservationService(repo, clock, reservationTransitions),
		Payments:      service.NewPaymentService(repo, clock, zlog),
		Notifications: service.NewNotificationService(repo, clock),
		Activity:      service.NewActivityService(repo, storage.NewRedisActivityStore(rdb, settings.ActivityTTL)),
	}, storage.NewKafkaPublisher(writer), zlog)

	srv := httpapi.NewServer(settings.HTTPAddr, httpapi.NewRouter(handler))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("restaurant api starting", zap.String("addr", settings.HTTPAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("server failed", zap.Error(err))
	}
	zlog.Info("restaurant api stopped")
}
