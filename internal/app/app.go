package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/pierrel/linkpulse/internal/cache"
	"github.com/pierrel/linkpulse/internal/config"
	httpcontroller "github.com/pierrel/linkpulse/internal/controller/http"
	"github.com/pierrel/linkpulse/internal/database"
	"github.com/pierrel/linkpulse/internal/domain/assistant"
	branddao "github.com/pierrel/linkpulse/internal/domain/brand/dao"
	brandservice "github.com/pierrel/linkpulse/internal/domain/brand/service"
	calendardao "github.com/pierrel/linkpulse/internal/domain/calendar/dao"
	calendarpolicy "github.com/pierrel/linkpulse/internal/domain/calendar/policy"
	"github.com/pierrel/linkpulse/internal/domain/calendar/scheduler"
	calendarservice "github.com/pierrel/linkpulse/internal/domain/calendar/service"
	postdao "github.com/pierrel/linkpulse/internal/domain/post/dao"
	postpolicy "github.com/pierrel/linkpulse/internal/domain/post/policy"
	postservice "github.com/pierrel/linkpulse/internal/domain/post/service"
	"github.com/pierrel/linkpulse/internal/domain/prefill"
	watchdao "github.com/pierrel/linkpulse/internal/domain/watch/dao"
	watchservice "github.com/pierrel/linkpulse/internal/domain/watch/service"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/claude"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/linkedin"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/perplexity"
	"github.com/pierrel/linkpulse/internal/storage"
)

// App is the main application container
type App struct {
	cfg        config.Config
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger
	loc        *time.Location

	pool  *pgxpool.Pool
	cache *cache.Cache
	store *storage.S3Storage

	brandService     *brandservice.Service
	postService      *postservice.Service
	postPolicy       *postpolicy.Policy
	calendarService  *calendarservice.Service
	calendarPolicy   *calendarpolicy.Policy
	watchService     *watchservice.Service
	assistantService *assistant.Service
	prefillService   *prefill.Service
	linkedinClient   *linkedin.Client

	scheduler *scheduler.Scheduler
	cron      *cron.Cron
}

// NewApp creates and initializes the application
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(60 * time.Second))

	app := &App{
		cfg:    cfg,
		router: r,
		logger: logger,
		loc:    loc,
	}

	if err := app.initInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("initializing infrastructure: %w", err)
	}

	app.initDomains()
	app.registerRoutes()

	app.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if cfg.Scheduler.Enabled {
		app.scheduler = scheduler.New(app.calendarPolicy, cfg.Scheduler.Interval, logger)
	}

	app.initCron()

	return app, nil
}

// initInfrastructure initializes the database pool, the Redis cache and the
// S3 asset store
func (a *App) initInfrastructure(ctx context.Context) error {
	pool, err := database.NewPostgresPool(ctx, a.cfg.Database.PostgresDSN, database.PoolConfig{
		MaxConns:     int32(a.cfg.Database.MaxOpenConns),
		MinConns:     int32(a.cfg.Database.MaxIdleConns),
		ConnLifetime: a.cfg.Database.ConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	a.pool = pool

	c, err := cache.New(ctx, cache.Config{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	a.cache = c

	store, err := storage.NewS3Storage(storage.S3Config{
		Endpoint:        a.cfg.S3.Endpoint,
		AccessKeyID:     a.cfg.S3.AccessKeyID,
		SecretAccessKey: a.cfg.S3.SecretAccessKey,
		Bucket:          a.cfg.S3.Bucket,
		Region:          a.cfg.S3.Region,
		PublicURL:       a.cfg.S3.PublicURL,
	})
	if err != nil {
		return fmt.Errorf("initializing s3 storage: %w", err)
	}
	a.store = store

	return nil
}

// initDomains initializes domain layers (DAO, Service, Policy)
func (a *App) initDomains() {
	a.linkedinClient = linkedin.New(
		a.cfg.LinkedIn.ClientID,
		a.cfg.LinkedIn.ClientSecret,
		a.cfg.LinkedIn.RedirectURI,
		linkedin.WithAuthBaseURL(a.cfg.LinkedIn.AuthBaseURL),
		linkedin.WithAPIBaseURL(a.cfg.LinkedIn.APIBaseURL),
	)
	liPublisher := linkedin.NewPublisher(a.linkedinClient)

	claudeClient := claude.New(
		a.cfg.Anthropic.APIKey,
		claude.WithBaseURL(a.cfg.Anthropic.BaseURL),
		claude.WithModel(a.cfg.Anthropic.Model),
		claude.WithRateLimit(a.cfg.Anthropic.RPS),
	)
	perplexityClient := perplexity.New(
		a.cfg.Perplexity.APIKey,
		perplexity.WithBaseURL(a.cfg.Perplexity.BaseURL),
		perplexity.WithModel(a.cfg.Perplexity.Model),
		perplexity.WithRateLimit(a.cfg.Perplexity.RPS),
	)

	a.brandService = brandservice.New(branddao.NewProfilePostgres(a.pool))
	a.postService = postservice.New(postdao.NewPostPostgres(a.pool))
	a.postPolicy = postpolicy.New(a.postService, &postPublisherAdapter{liPublisher})

	a.calendarService = calendarservice.New(
		calendardao.NewItemPostgres(a.pool),
		calendardao.NewScheduledPostPostgres(a.pool),
		a.loc,
	)
	a.calendarPolicy = calendarpolicy.New(
		a.calendarService,
		&calendarPublisherAdapter{liPublisher},
		a.postService,
	)

	a.watchService = watchservice.NewService(
		watchdao.NewItemPostgres(a.pool),
		watchdao.NewTopicPostgres(a.pool),
		watchdao.NewHistoryPostgres(a.pool),
		watchdao.NewInspirationPostgres(a.pool),
		perplexityClient,
		claudeClient,
		a.cache,
	)

	a.assistantService = assistant.NewService(claudeClient, a.cache, a.loc)
	a.prefillService = prefill.NewService(a.cache)
}

// registerRoutes registers all HTTP routes
func (a *App) registerRoutes() {
	a.router.Get("/healthz", a.healthHandler)
	a.router.Get("/readyz", a.readyHandler)

	a.router.Route("/api/v1", func(r chi.Router) {
		httpcontroller.NewBrandHandler(a.brandService).RegisterRoutes(r)
		httpcontroller.NewPostHandler(a.postService, a.postPolicy, a.calendarPolicy).RegisterRoutes(r)
		httpcontroller.NewCalendarHandler(a.calendarService, a.calendarPolicy, a.loc).RegisterRoutes(r)
		httpcontroller.NewWatchHandler(a.watchService, a.brandService).RegisterRoutes(r)
		httpcontroller.NewAssistantHandler(a.assistantService, a.brandService).RegisterRoutes(r)
		httpcontroller.NewLinkedInHandler(a.linkedinClient, a.cache).RegisterRoutes(r)
		httpcontroller.NewMediaHandler(&imageUploaderAdapter{a.store}).RegisterRoutes(r)
		httpcontroller.NewPrefillHandler(a.prefillService).RegisterRoutes(r)
	})
}

// healthHandler handles health check requests
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// readyHandler handles readiness check requests
func (a *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.pool.Ping(ctx); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"database unavailable"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// Run starts the application and blocks until shutdown signal
func (a *App) Run(ctx context.Context) error {
	if a.scheduler != nil {
		go a.scheduler.Start(ctx)
	}
	if a.cron != nil {
		a.cron.Start()
	}

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", "addr", a.cfg.Server.Address())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		a.logger.Info("context cancelled")
	}

	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.cron != nil {
		cronCtx := a.cron.Stop()
		<-cronCtx.Done()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}

	a.logger.Info("shutdown complete")
	return nil
}

// calendarPublisherAdapter adapts linkedin.Publisher to
// calendarpolicy.LinkedInPublisher
type calendarPublisherAdapter struct {
	publisher *linkedin.Publisher
}

func (a *calendarPublisherAdapter) Publish(ctx context.Context, in calendarpolicy.PublishInput) (*calendarpolicy.PublishOutput, error) {
	out, err := a.publisher.Publish(ctx, linkedin.PublishInput{
		AccessToken: in.AccessToken,
		Text:        in.Text,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return &calendarpolicy.PublishOutput{LinkedInPostID: out.LinkedInPostID}, nil
}

// postPublisherAdapter adapts linkedin.Publisher to postpolicy.LinkedInPublisher
type postPublisherAdapter struct {
	publisher *linkedin.Publisher
}

func (a *postPublisherAdapter) Publish(ctx context.Context, in postpolicy.PublishInput) (*postpolicy.PublishOutput, error) {
	out, err := a.publisher.Publish(ctx, linkedin.PublishInput{
		AccessToken: in.AccessToken,
		Text:        in.Text,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return &postpolicy.PublishOutput{LinkedInPostID: out.LinkedInPostID}, nil
}

// imageUploaderAdapter adapts storage.S3Storage to httpcontroller.ImageUploader
type imageUploaderAdapter struct {
	store *storage.S3Storage
}

func (a *imageUploaderAdapter) UploadImage(ctx context.Context, userID string, in httpcontroller.ImageUploadInput) (*httpcontroller.ImageUploadOutput, error) {
	out, err := a.store.UploadImage(ctx, userID, storage.UploadInput{
		Reader:      in.Reader,
		ContentType: in.ContentType,
		Size:        in.Size,
		Filename:    in.Filename,
	})
	if err != nil {
		return nil, err
	}
	return &httpcontroller.ImageUploadOutput{
		URL:  out.URL,
		Key:  out.Key,
		Size: out.Size,
	}, nil
}
