// Command server starts the MerchBase site API: assessment submission,
// website analysis, result polling, and the blog.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/merchbase/site-api/internal/adapter/ai/openai"
	"github.com/merchbase/site-api/internal/adapter/fetcher"
	"github.com/merchbase/site-api/internal/adapter/httpserver"
	"github.com/merchbase/site-api/internal/adapter/mail"
	"github.com/merchbase/site-api/internal/adapter/queue/redpanda"
	"github.com/merchbase/site-api/internal/adapter/repo/postgres"
	"github.com/merchbase/site-api/internal/adapter/views"
	"github.com/merchbase/site-api/internal/app"
	"github.com/merchbase/site-api/internal/config"
	"github.com/merchbase/site-api/internal/observability"
	"github.com/merchbase/site-api/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL, cfg.DBConnectMaxElapsed)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	assessRepo := postgres.NewAssessmentRepo(pool)
	blogRepo := postgres.NewBlogPostRepo(pool)

	if cfg.BlogSeedFile != "" {
		if err := seedBlog(ctx, blogRepo, cfg.BlogSeedFile); err != nil {
			slog.Error("blog seed failed", slog.String("file", cfg.BlogSeedFile), slog.Any("error", err))
		}
	}

	queue, err := redpanda.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		slog.Error("redpanda producer connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = queue.Close() }()

	viewCounter := views.New(cfg.RedisAddr)
	defer func() { _ = viewCounter.Close() }()

	siteFetcher := fetcher.New(cfg.FetchTimeout, cfg.FetchUserAgent)
	scorer := openai.New(cfg)
	mailer := mail.New(cfg.ResendAPIKey, cfg.EmailFrom)

	submitSvc := usecase.NewSubmitService(assessRepo)
	analyzeSvc := usecase.NewAnalyzeService(assessRepo, siteFetcher, scorer, queue)
	notifySvc := usecase.NewNotifyService(assessRepo, mailer, cfg.SiteBaseURL)
	resultSvc := usecase.NewResultService(assessRepo)
	blogSvc := usecase.NewBlogService(blogRepo, viewCounter)

	dbCheck, redisCheck, kafkaCheck := app.BuildReadinessChecks(pool, viewCounter, queue)
	srv := httpserver.NewServer(cfg, submitSvc, analyzeSvc, notifySvc, resultSvc, blogSvc, dbCheck, redisCheck, kafkaCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
