package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/config"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/handler"
	appointmentHandler "github.com/yazan-alawneh999/salona-main-sub001/internal/handler/appointment"
	availabilityHandler "github.com/yazan-alawneh999/salona-main-sub001/internal/handler/availability"
	salonHandler "github.com/yazan-alawneh999/salona-main-sub001/internal/handler/salon"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/lock"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository/postgres"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/router"
	appointmentService "github.com/yazan-alawneh999/salona-main-sub001/internal/service/appointment"
	availabilityService "github.com/yazan-alawneh999/salona-main-sub001/internal/service/availability"
	bookingService "github.com/yazan-alawneh999/salona-main-sub001/internal/service/booking"
	salonService "github.com/yazan-alawneh999/salona-main-sub001/internal/service/salon"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/clock"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/messaging/redis"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/metrics"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewBroker(redis.Config{URL: cfg.Redis.URL}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.New("salona")

	salonRepo := postgres.NewSalonRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	lockTTL := time.Duration(cfg.Redis.LockTTLSeconds) * time.Second
	if lockTTL <= 0 {
		lockTTL = 10 * time.Second
	}
	locker := lock.NewRedisLocker(broker.Client(), lockTTL)

	granularity := time.Duration(cfg.Booking.GranularityMinutes) * time.Minute
	cacheTTL := time.Duration(cfg.Booking.CacheTTLSeconds) * time.Second

	availabilitySvc := availabilityService.NewService(salonRepo, appointmentRepo, granularity, cacheTTL, m)
	bookingSvc := bookingService.NewService(salonRepo, appointmentRepo, availabilitySvc, locker, clock.System(), m)
	appointmentSvc := appointmentService.NewService(appointmentRepo, salonRepo, availabilitySvc)
	salonSvc := salonService.NewService(salonRepo)

	h := handler.NewHandler(db)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)
	salonH := salonHandler.NewHandler(salonSvc)
	appointmentH := appointmentHandler.NewHandler(bookingSvc, appointmentSvc, availabilitySvc)

	r := router.NewRouter(availabilityH, salonH, appointmentH, h, router.Config{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		MetricsPrefix:  "salona_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
