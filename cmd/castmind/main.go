package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"castmind/backend/internal/config"
	"castmind/backend/internal/db"
	"castmind/backend/internal/extractor"
	"castmind/backend/internal/fetcher"
	"castmind/backend/internal/handler"
	gh "castmind/backend/internal/http"
	"castmind/backend/internal/repository"
	"castmind/backend/internal/resolver"
	"castmind/backend/internal/scheduler"
	"castmind/backend/internal/service"
	"castmind/backend/internal/service/ai"
	"castmind/backend/pkg/logger"
	"castmind/backend/pkg/network"
	"castmind/backend/pkg/snowflake"
)

const (
	snowflakeNode   = 1
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.Init(logger.ParseLevel(cfg.LogLevel))
	if err := run(cfg); err != nil {
		logger.Error("castmind exited", "module", "main", "action", "run", "resource", "process", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := snowflake.Init(snowflakeNode); err != nil {
		return fmt.Errorf("init id generator: %w", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()
	logger.Info("database ready", "module", "main", "action", "open", "resource", "database", "result", "ok", "path", cfg.DBPath)

	app, err := buildApp(cfg, database)
	if err != nil {
		return err
	}

	if cfg.SubscriptionFile != "" {
		seedSubscriptions(ctx, app.subscriptions, cfg.SubscriptionFile)
	}

	jobs, err := buildScheduler(cfg, app)
	if err != nil {
		return err
	}
	if cfg.SchedulerEnabled {
		jobs.Start()
	} else {
		logger.Info("scheduler disabled", "module", "main", "action", "start", "resource", "scheduler", "result", "skipped")
	}
	defer jobs.Stop()

	e := gh.NewRouter(
		handler.NewFeedHandler(app.feeds, app.ingest, jobs),
		handler.NewArticleHandler(app.articles, app.readability),
		handler.NewJobHandler(jobs),
		handler.NewSubscriptionHandler(app.subscriptions),
		handler.NewHostLimitHandler(app.hostLimits),
		handler.NewAuthHandler(app.auth),
		handler.NewHealthHandler(database),
		app.auth,
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "module", "main", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "auth", app.auth.Enabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested", "module", "main", "action", "stop", "resource", "process", "result", "ok")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", "module", "main", "action", "stop", "resource", "http", "result", "failed", "error", err)
	}
	return nil
}

type app struct {
	feedRepo    repository.FeedRepository
	articleRepo repository.ArticleRepository

	feeds         service.FeedService
	articles      service.ArticleService
	ingest        service.IngestService
	process       service.ProcessService
	maintenance   service.MaintenanceService
	subscriptions service.SubscriptionService
	hostLimits    service.HostLimitService
	readability   service.ReadabilityService
	auth          service.AuthService
}

func buildApp(cfg config.Config, database *sql.DB) (*app, error) {
	feedRepo := repository.NewFeedRepository(database)
	articleRepo := repository.NewArticleRepository(database)
	hostLimits := service.NewHostLimitService(repository.NewHostLimitRepository(database))

	clients := network.NewClientFactory(network.StaticProxy(cfg.Proxy))
	feedFetcher := fetcher.New(clients, hostLimits, fetcher.Options{
		UserAgent:       cfg.UserAgent,
		AttemptTimeout:  cfg.FetchTimeout,
		TotalTimeout:    cfg.FetchTotal,
		MaxEntries:      cfg.MaxEntries,
		HostRate:        cfg.HostRate,
		BrowserFallback: cfg.BrowserFallback,
	})

	status := service.NewFeedStatusMachine(feedRepo)
	reconciler := service.NewReconcileService(feedRepo, articleRepo, status)
	ingest := service.NewIngestService(feedRepo, resolver.New(cfg.Mirrors), feedFetcher, extractor.New(), reconciler, status, cfg.FetchWorkers)
	feeds := service.NewFeedService(feedRepo, status, ingest)

	analyzer, err := ai.NewAnalyzer(ai.Config{
		Provider:  cfg.AI.Provider,
		APIKey:    cfg.AI.APIKey,
		BaseURL:   cfg.AI.BaseURL,
		Model:     cfg.AI.Model,
		RateLimit: cfg.AI.RateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}
	logger.Info("analyzer ready", "module", "main", "action", "init", "resource", "analyzer", "result", "ok", "analyzer", analyzer.Name())

	var readability service.ReadabilityService
	if cfg.AI.Readability {
		readability = service.NewReadabilityService(articleRepo, service.NewBrowserPageFetcher(clients))
	}

	return &app{
		feedRepo:      feedRepo,
		articleRepo:   articleRepo,
		feeds:         feeds,
		articles:      service.NewArticleService(articleRepo, feedRepo),
		ingest:        ingest,
		process:       service.NewProcessService(articleRepo, analyzer, readability),
		maintenance:   service.NewMaintenanceService(feedRepo, articleRepo, ingest, status),
		subscriptions: service.NewSubscriptionService(feeds),
		hostLimits:    hostLimits,
		readability:   readability,
		auth:          service.NewAuthService(cfg.APISecret, cfg.APIPasswordHash),
	}, nil
}

func buildScheduler(cfg config.Config, a *app) (*scheduler.Scheduler, error) {
	jobs := scheduler.New(&scheduler.SchedulerContext{
		Feeds:       a.feedRepo,
		Articles:    a.articleRepo,
		Ingest:      a.ingest,
		Process:     a.process,
		Maintenance: a.maintenance,
		Config:      cfg,
	}, cfg.MisfireGrace)

	defaults, err := scheduler.DefaultJobs(cfg)
	if err != nil {
		return nil, fmt.Errorf("build jobs: %w", err)
	}
	for _, job := range defaults {
		if err := jobs.Add(job); err != nil {
			return nil, err
		}
	}
	return jobs, nil
}

// seedSubscriptions never stops startup: a broken seed file is logged and ignored.
func seedSubscriptions(ctx context.Context, subscriptions service.SubscriptionService, path string) {
	entries, err := subscriptions.LoadFile(path)
	if err != nil {
		logger.Warn("subscription file unreadable", "module", "main", "action", "import", "resource", "subscription", "result", "failed", "path", path, "error", err)
		return
	}
	result, err := subscriptions.Seed(ctx, entries)
	if err != nil {
		logger.Warn("subscription seed interrupted", "module", "main", "action", "import", "resource", "subscription", "result", "failed", "error", err)
		return
	}
	logger.Info("subscriptions seeded", "module", "main", "action", "import", "resource", "subscription", "result", "ok",
		"created", result.Created, "skipped", result.Skipped, "failed", result.Failed)
}
