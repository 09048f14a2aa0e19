package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/email"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository/postgres"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/reminder"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/clock"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/logger"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/messaging/redis"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/metrics"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/worker"
)

// Config is read from the environment with the WORKER prefix,
// e.g. WORKER_DATABASE_URL.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RedisURL    string `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
	HealthPort  int    `envconfig:"HEALTH_PORT" default:"8081"`

	OutboxBatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`

	ReminderOffset time.Duration `envconfig:"REMINDER_OFFSET" default:"1h"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`
}

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	appLogger := logger.FromZerolog(log.Logger)

	var cfg Config
	if err := envconfig.Process("worker", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewBroker(redis.Config{URL: cfg.RedisURL}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.New("salona_worker")

	outboxRepo := postgres.NewOutboxRepository(db)
	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:    cfg.OutboxBatchSize,
			PollInterval: cfg.OutboxPollInterval,
		},
		appLogger,
		m,
	)

	notifiers := reminder.MultiNotifier{reminder.NewBrokerNotifier(broker)}
	if cfg.SMTPHost != "" {
		mailer := email.NewMailer(email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		notifiers = append(notifiers, reminder.NewEmailNotifier(mailer))
	}

	scheduler := reminder.NewScheduler(notifiers, cfg.ReminderOffset, clock.System(), appLogger, m)
	consumer := reminder.NewConsumer(broker, scheduler, appLogger)

	setupHealthCheck(appLogger, cfg.HealthPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Start(ctx)
	go func() {
		if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatal().Err(err).Msg("reminder consumer stopped")
		}
	}()

	log.Info().Msg("worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down...")
	cancel()
	scheduler.Stop()
}

func setupHealthCheck(appLogger *logger.Logger, port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			appLogger.Error(err, "health check server failed")
			os.Exit(1)
		}
	}()
}
