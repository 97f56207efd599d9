package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/karyakarta/karyakarta-api/internal/config"
	"github.com/karyakarta/karyakarta-api/internal/docstore"
	"github.com/karyakarta/karyakarta-api/internal/domain/dashboard"
	"github.com/karyakarta/karyakarta-api/internal/domain/job"
	"github.com/karyakarta/karyakarta-api/internal/domain/payout"
	"github.com/karyakarta/karyakarta-api/internal/domain/provider"
	"github.com/karyakarta/karyakarta-api/internal/middleware"
	"github.com/karyakarta/karyakarta-api/internal/pkg/logger"
	"github.com/karyakarta/karyakarta-api/internal/pkg/metrics"
	"github.com/karyakarta/karyakarta-api/internal/pkg/response"
	"github.com/karyakarta/karyakarta-api/internal/pkg/session"
	"github.com/karyakarta/karyakarta-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("store", cfg.StoreDriver).
		Msg("Starting KaryaKarta admin API")

	store, cleanup, err := newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer cleanup()

	archive, err := newArchive(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open export archive")
	}

	sessions := session.NewService(cfg.SessionSecret, cfg.SessionTTL)

	// ---------- Repositories ----------
	providerRepo := provider.NewRepository(store)
	jobRepo := job.NewRepository(store)
	payoutRepo := payout.NewRepository(store)

	// ---------- Services ----------
	providerSvc := provider.NewService(providerRepo)
	jobSvc := job.NewService(jobRepo)
	payoutSvc := payout.NewService(payoutRepo, archive)
	dashboardSvc := dashboard.NewService(providerRepo, jobRepo, payoutRepo)

	// ---------- Handlers ----------
	providerHandler := provider.NewHandler(providerSvc)
	jobHandler := job.NewHandler(jobSvc)
	payoutHandler := payout.NewHandler(payoutSvc)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get(cfg.LoginPath, func(w http.ResponseWriter, _ *http.Request) {
		// Placeholder until the dashboard frontend serves its own login page.
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body><h1>KaryaKarta Admin Login</h1></body></html>"))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Gate(sessions, cfg.SessionCookie, cfg.LoginPath))

		r.Mount("/providers", providerHandler.Routes())
		r.Mount("/jobs", jobHandler.Routes())
		r.Mount("/payouts", payoutHandler.Routes())
		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newStore(cfg *config.Config) (docstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		store, err := docstore.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "redis":
		store, err := docstore.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return docstore.NewMemoryStore(), func() {}, nil
	}
}

func newArchive(cfg *config.Config) (storage.Archive, error) {
	if cfg.ExportDriver == "s3" {
		return storage.NewS3Archive(storage.Config{
			S3Region:    cfg.S3Region,
			S3Bucket:    cfg.S3Bucket,
			S3AccessKey: cfg.S3AccessKey,
			S3SecretKey: cfg.S3SecretKey,
			S3Endpoint:  cfg.S3Endpoint,
		})
	}
	return storage.NewLocalArchive(cfg.ExportDir, cfg.ExportBaseURL)
}
