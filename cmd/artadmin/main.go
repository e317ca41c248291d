// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/config"
	"github.com/olegiv/artadmin/internal/handler"
	"github.com/olegiv/artadmin/internal/handler/api"
	"github.com/olegiv/artadmin/internal/logging"
	"github.com/olegiv/artadmin/internal/middleware"
	"github.com/olegiv/artadmin/internal/scheduler"
	"github.com/olegiv/artadmin/internal/seo"
	"github.com/olegiv/artadmin/internal/service"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/translator"
	"github.com/olegiv/artadmin/internal/version"
	"github.com/olegiv/artadmin/internal/webhook"
	"github.com/olegiv/artadmin/internal/worker"
)

// Build-time variables injected via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "artadmin - translation back-office for the art marketplace\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARTADMIN_API_TOKEN       Bearer token for /api/v1 (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARTADMIN_DB_PATH         SQLite database path (default: ./data/artadmin.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARTADMIN_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARTADMIN_OPENAI_API_KEY  Machine translation key (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARTADMIN_REDIS_URL       Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARTADMIN_WORKERS         Translation workers (default: 2)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(version.New(appVersion, appGitCommit, appBuildTime))
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.New(appVersion, appGitCommit, appBuildTime)

	logLevel := parseLogLevel(cfg.LogLevel)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	applied, err := store.Migrate(context.Background(), db)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied", "count", applied)

	// WARN and ERROR records also go to the event log
	logger := slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	backend, isRedis := cache.NewCacher(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
		MaxSize:    cfg.CacheMaxSize,
	})
	cacheManager := cache.NewManager(backend, store.New(db))
	defer func() { _ = cacheManager.Close() }()
	if isRedis {
		slog.Info("cache manager initialized", "backend", "redis")
	} else {
		slog.Info("cache manager initialized", "backend", "memory")
	}

	if cfg.UseRevalidation() {
		revalidator := webhook.New(webhook.Config{
			URL:    cfg.RevalidateURL,
			Secret: cfg.RevalidateSecret,
		}, logger)
		defer revalidator.Stop()
		cacheManager.SetNotifier(revalidator)
		slog.Info("storefront revalidation enabled", "url", cfg.RevalidateURL)
	}

	tr := translator.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.TranslateRPS)
	if !cfg.TranslationEnabled() {
		slog.Warn("machine translation disabled: ARTADMIN_OPENAI_API_KEY is not set", "category", "translation")
	}

	site := seo.SiteConfig{SiteName: cfg.SiteName, SiteURL: cfg.SiteURL}
	policy := service.DefaultRetryPolicy()
	policy.MaxAttempts = int64(cfg.JobMaxAttempt)

	// Jobs claimed by a previous process that died mid-run go back to pending
	propagator := service.NewPropagator(db, cacheManager, tr, site, policy, logger)
	if n, err := propagator.RecoverAbandoned(ctx); err != nil {
		return fmt.Errorf("recovering translation jobs: %w", err)
	} else if n > 0 {
		slog.Info("recovered abandoned translation jobs", "count", n)
	}

	dispatcherCfg := worker.DefaultConfig()
	dispatcherCfg.Workers = cfg.Workers
	dispatcher := worker.NewDispatcher(propagator, logger, dispatcherCfg)
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	fieldSync := service.NewFieldSync(db, cacheManager, tr, logger)
	jobService := service.NewJobService(db, cacheManager, dispatcher)
	eventService := service.NewEventService(db)

	sched := scheduler.New(propagator, dispatcher, eventService, cfg.EventRetention(), logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Pick up jobs that are already due instead of waiting for the first tick
	if _, err := sched.Sweep(ctx); err != nil {
		slog.Warn("initial translation job sweep failed", "error", err)
	}

	apiHandler := api.NewHandler(api.Services{
		Languages:       service.NewLanguageService(cacheManager),
		Artists:         service.NewArtistService(db, cacheManager, fieldSync),
		LandingArtists:  service.NewLandingArtistService(db, cacheManager, fieldSync),
		Glossary:        service.NewGlossaryService(db, cacheManager, fieldSync),
		PresaleArtworks: service.NewPresaleArtworkService(db, cacheManager, fieldSync),
		Translations:    service.NewTranslationService(db, cacheManager),
		Posts:           service.NewPostService(db, cacheManager, tr, dispatcher, site, logger),
		Jobs:            jobService,
		Events:          eventService,
		Cache:           cacheManager,
	}, logger)
	healthHandler := handler.NewHealthHandler(db, jobService, versionInfo, cfg.TranslationEnabled())

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.StripSlashes)

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(20, 40))
		r.Use(middleware.BearerAuth(cfg.APIToken))
		// Synchronous translation of a whole post can take a while
		r.Use(middleware.Timeout(90 * time.Second))
		apiHandler.Register(r)
	})
	slog.Info("admin API mounted at /api/v1")

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusNotFound, "Not found")
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
