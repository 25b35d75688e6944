// Command server runs the Certificate of Origin ingestion gateway.
//
// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service
// packages. Backends degrade gracefully: without DATABASE_URL or GCS_BUCKET
// the gateway runs on in-memory stand-ins, which is what local development
// and the test suite use.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"originform/internal/ingest/blob"
	"originform/internal/ingest/events"
	"originform/internal/ingest/handler"
	"originform/internal/ingest/notify"
	"originform/internal/ingest/service"
	"originform/internal/ingest/store"
	"originform/internal/platform/config"
	"originform/internal/platform/httpserver"
	"originform/internal/platform/logger"
	"originform/internal/platform/metrics"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	submissions, cleanup, err := buildSubmissionStore(ctx, cfg.Postgres)
	if err != nil {
		log.Error("failed to open submission store", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	blobs, err := buildBlobStore(ctx, cfg.Blob)
	if err != nil {
		log.Error("failed to open blob store", "error", err.Error())
		os.Exit(1)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	}
	if cfg.Email.Enabled() {
		opts = append(opts, service.WithNotifier(notify.NewEmail(notify.EmailConfig{
			BaseURL:    cfg.Email.BaseURL,
			APIKey:     cfg.Email.APIKey,
			From:       cfg.Email.From,
			Recipients: cfg.Email.Recipients,
		}, notify.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))))
	}
	if cfg.Kafka.Enabled() {
		publisher, err := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("failed to create event publisher", "error", err.Error())
			os.Exit(1)
		}
		defer publisher.Close()
		opts = append(opts, service.WithEventPublisher(publisher))
	}

	svc, err := service.New(submissions, blobs, opts...)
	if err != nil {
		log.Error("failed to create ingestion service", "error", err.Error())
		os.Exit(1)
	}

	r := chi.NewRouter()
	handler.New(svc, log).Register(r)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Server.Addr, r)

	log.Info("starting originform gateway", "addr", cfg.Server.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}

func buildSubmissionStore(ctx context.Context, cfg config.Postgres) (store.SubmissionStore, func(), error) {
	if cfg.URL == "" {
		return store.NewInMemorySubmissionStore(), func() {}, nil
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	pg := store.NewPostgres(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return pg, func() { db.Close() }, nil
}

func buildBlobStore(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	if cfg.GCSBucket == "" {
		return blob.NewInMemoryStore(), nil
	}
	return blob.OpenGCS(ctx, cfg.GCSBucket)
}
