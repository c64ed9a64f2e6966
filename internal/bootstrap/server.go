package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Njoroge1994/garihire/api"
	"github.com/Njoroge1994/garihire/config"
	"github.com/Njoroge1994/garihire/internal/auth"
	"github.com/Njoroge1994/garihire/internal/service/booking"
	"github.com/Njoroge1994/garihire/internal/service/payments"
	"github.com/Njoroge1994/garihire/internal/service/profiles"
	"github.com/Njoroge1994/garihire/internal/service/vehicles"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Services struct {
	Profiles profiles.ProfileUseCase
	Vehicles vehicles.VehicleUseCase
	Bookings booking.BookingUseCase
	Payments payments.PaymentUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, svcs Services, logger *zap.Logger) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, svcs),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	logger.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter assembles the gin engine. Vehicle reads are public; everything
// else sits behind the identity provider's bearer token.
func NewRouter(cfg *config.Config, svcs Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	profileHandler := api.NewProfileHandler(svcs.Profiles)
	vehicleHandler := api.NewVehicleHandler(svcs.Vehicles)
	bookingHandler := api.NewBookingHandler(svcs.Bookings)
	paymentHandler := api.NewPaymentHandler(svcs.Payments)

	public := router.Group("/api")
	vehicleHandler.Register(public)

	protected := router.Group("/api", auth.Middleware(cfg.Auth.JWTSecret))
	profileHandler.Register(protected)
	vehicleHandler.RegisterProtected(protected)
	bookingHandler.Register(protected)
	paymentHandler.Register(protected)

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return router
}
