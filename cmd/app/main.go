package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Njoroge1994/garihire/config"
	"github.com/Njoroge1994/garihire/internal/bootstrap"
	"github.com/Njoroge1994/garihire/internal/cache"
	"github.com/Njoroge1994/garihire/internal/kafka"
	"github.com/Njoroge1994/garihire/internal/repository"
	"github.com/Njoroge1994/garihire/internal/service/booking"
	"github.com/Njoroge1994/garihire/internal/service/payments"
	"github.com/Njoroge1994/garihire/internal/service/profiles"
	"github.com/Njoroge1994/garihire/internal/service/vehicles"
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

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Rental.VehiclesCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	profileRepo := repository.NewProfileRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	profileService := profiles.NewProfileService(profileRepo, logger)
	vehicleService := vehicles.NewVehicleService(vehicleRepo, profileService, redisCache, logger)
	bookingService := booking.NewBookingService(bookingRepo, vehicleRepo, profileService, producer, cfg.Kafka.BookingTopic, logger)
	paymentService := payments.NewPaymentService(paymentRepo, bookingRepo, producer, cfg.Kafka.BookingTopic, logger,
		payments.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))

	svcs := bootstrap.Services{
		Profiles: profileService,
		Vehicles: vehicleService,
		Bookings: bookingService,
		Payments: paymentService,
	}
	if err := bootstrap.Run(ctx, cfg, svcs, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
