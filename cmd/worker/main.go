// Command worker consumes notification tasks from the Redpanda queue and
// sends assessment result emails.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/merchbase/site-api/internal/adapter/mail"
	"github.com/merchbase/site-api/internal/adapter/queue/redpanda"
	"github.com/merchbase/site-api/internal/adapter/repo/postgres"
	"github.com/merchbase/site-api/internal/config"
	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/observability"
	"github.com/merchbase/site-api/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	// Dedicated /metrics endpoint so queue metrics are scrapeable from the
	// worker process as well.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":9090", mux); err != nil {
			slog.Error("worker metrics server error", slog.Any("error", err))
		}
	}()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	slog.Info("starting worker", slog.String("env", cfg.AppEnv))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DBURL, cfg.DBConnectMaxElapsed)
	if err != nil {
		slog.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	assessRepo := postgres.NewAssessmentRepo(pool)
	mailer := mail.New(cfg.ResendAPIKey, cfg.EmailFrom)
	notifySvc := usecase.NewNotifyService(assessRepo, mailer, cfg.SiteBaseURL)

	handler := func(ctx domain.Context, payload domain.NotifyTaskPayload) error {
		return notifySvc.Notify(ctx, payload.AssessmentID)
	}
	consumer, err := redpanda.NewConsumer(cfg.KafkaBrokers, cfg.NotifyGroupID, handler)
	if err != nil {
		slog.Error("redpanda consumer init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer consumer.Close()

	slog.Info("worker started, waiting for notification tasks")
	if err := consumer.Run(ctx); err != nil {
		slog.Error("consumer stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("worker stopped")
}
