package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Njoroge1994/garihire/config"
	"github.com/Njoroge1994/garihire/internal/kafka"
	"github.com/Njoroge1994/garihire/internal/notify"
	"github.com/Njoroge1994/garihire/internal/repository"
	"github.com/Njoroge1994/garihire/internal/service/booking"
	"github.com/Njoroge1994/garihire/internal/service/profiles"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	profileRepo := repository.NewProfileRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	profileService := profiles.NewProfileService(profileRepo, logger)
	bookingService := booking.NewBookingService(bookingRepo, vehicleRepo, profileService, producer, cfg.Kafka.BookingTopic, logger)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	smsSender := notify.NewSMSSender()

	go func() {
		if err := consumer.Consume(ctx, smsSender.Send); err != nil {
			logger.Warn("consumer stopped", zap.Error(err))
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.CompletionSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	for {
		select {
		case <-sweepTicker.C:
			completed, err := bookingService.CompleteFinishedBookings(ctx)
			if err != nil {
				logger.Error("completion sweep", zap.Error(err))
				continue
			}
			if len(completed) > 0 {
				logger.Info("completed finished bookings", zap.Int("count", len(completed)))
			}
		case <-ctx.Done():
			logger.Info("shutting down worker")
			return
		}
	}
}
