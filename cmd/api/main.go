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

	"travelnest_backend/internal/adapters"
	"travelnest_backend/internal/admin"
	"travelnest_backend/internal/auth"
	"travelnest_backend/internal/auth/google"
	authservice "travelnest_backend/internal/auth/service"
	"travelnest_backend/internal/bookings"
	"travelnest_backend/internal/catalog"
	catalogservice "travelnest_backend/internal/catalog/service"
	"travelnest_backend/internal/customrequests"
	"travelnest_backend/internal/email"
	"travelnest_backend/internal/events"
	"travelnest_backend/internal/gate"
	apphttp "travelnest_backend/internal/http"
	"travelnest_backend/internal/http/router"
	"travelnest_backend/internal/notification"
	"travelnest_backend/internal/ratelimit"
	"travelnest_backend/internal/scheduler"
	"travelnest_backend/platform/config"
	"travelnest_backend/platform/db"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/phone"
	"travelnest_backend/platform/session"
	"travelnest_backend/platform/storage"
	"travelnest_backend/platform/validator"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env, logger.WithFile(logger.FileOptions{
		Path:       cfg.GetLogFile(),
		MaxSizeMB:  cfg.GetLogFileMaxMB(),
		MaxBackups: cfg.GetLogFileMaxBackups(),
		MaxAgeDays: cfg.GetLogFileMaxAgeDays(),
	}))
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var client *mongo.Client
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		c, err := db.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		client = c
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	database := db.Database(client, cfg)
	log.Info("database connection established", "database", cfg.GetMongoDatabase())

	if err := withRetry(ctx, log, "database indexes", 5, 2*time.Second, func() error {
		return db.EnsureIndexes(ctx, database)
	}); err != nil {
		log.Error("failed to create database indexes", "error", err)
		panic("failed to create database indexes: " + err.Error())
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()
	phones := phone.NewNormalizer(cfg.GetPhoneDefaultRegion())
	sessions := session.NewManager(cfg)

	policy, err := gate.NewPolicy(log)
	if err != nil {
		log.Error("failed to load API policy", "error", err)
		panic("failed to load API policy: " + err.Error())
	}

	limits, closeLimits := initRateLimits(cfg, database, log)
	if closeLimits != nil {
		defer closeLimits()
	}

	images := initImageStore(ctx, cfg, log)

	var verifier authservice.GoogleVerifier
	if cfg.IsGoogleEnabled() {
		verifier = google.NewVerifier(cfg.GetGoogleClientID(), log)
	} else {
		log.Warn("GOOGLE_CLIENT_ID not configured; Google sign-in disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(email.NewSender(cfg), cfg, log)
	if queue, closeQueue := initEmailQueue(cfg, log); queue != nil {
		defer closeQueue()
		notificationModule.SetEmailQueue(queue)
	}
	notificationModule.RegisterHandlers(eventBus)

	authModule := auth.NewModule(database, sessions, verifier, cfg, val, eventBus, log)
	catalogModule := catalog.NewModule(database, images, val, log)

	// Anti-Corruption Layer: adapters implement the consuming domains' ports
	userDirectory := adapters.NewUserDirectory(authModule.Repository())
	packageReader := adapters.NewCatalogPackageReader(catalogModule.Repository())

	bookingsModule := bookings.NewModule(database, packageReader, userDirectory, phones, val, eventBus, log)
	customRequestsModule := customrequests.NewModule(database, userDirectory, phones, val, eventBus, log)
	adminModule := admin.NewModule(
		adapters.NewBookingStatsReader(bookingsModule.Service()),
		userDirectory,
		catalogModule.Repository(),
		log,
	)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewHealth(client),
		EventBus: eventBus,
		Sessions: sessions,
		Policy:   policy,
		Limits:   limits,
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			bookingsModule,
			customRequestsModule,
			adminModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRateLimits builds the attempt limiter over Mongo, or Redis when
// RATE_LIMIT_STORE=redis.
func initRateLimits(cfg *config.Config, database *mongo.Database, log *logger.Logger) (*ratelimit.Guard, func()) {
	var store ratelimit.Store = ratelimit.NewMongoStore(database)
	var closeFn func()

	if cfg.GetRateLimitStore() == config.RateLimitStoreRedis {
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Error("invalid REDIS_URL for rate limiting", "error", err)
			panic("invalid REDIS_URL for rate limiting: " + err.Error())
		}
		rdb := redis.NewClient(opt)
		store = ratelimit.NewRedisStore(rdb)
		closeFn = func() { _ = rdb.Close() }
	}

	log.Info("rate limiter initialized", "store", cfg.GetRateLimitStore(), "max", cfg.GetRateLimitMax(), "window", cfg.GetRateLimitWindow())
	return ratelimit.NewGuard(ratelimit.New(store), cfg.GetRateLimitMax(), cfg.GetRateLimitWindow(), log), closeFn
}

// initImageStore returns nil when MinIO is not configured so the catalog
// reports uploads as unavailable.
func initImageStore(ctx context.Context, cfg *config.Config, log *logger.Logger) catalogservice.ImageStore {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; image uploads disabled")
		return nil
	}

	store, err := storage.NewMinIOStore(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	if err := withRetry(ctx, log, "ensure catalog images bucket", 5, 2*time.Second, func() error {
		return store.EnsureBucketExists(ctx)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinIOBucketCatalogImages())
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "bucket", cfg.GetMinIOBucketCatalogImages())
	return store
}

func initEmailQueue(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.EmailQueue, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; notification e-mails are sent inline")
		return nil, nil
	}

	queueClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize notification queue client", "error", err)
		return nil, nil
	}

	return queueClient, func() {
		_ = queueClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
