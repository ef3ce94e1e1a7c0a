// Command server runs the Apex Campus Hub API: Postgres-backed storage,
// Redis sessions and caching, the in-process event bus and the
// background scheduler, all behind one HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/apex-hub/apex-campus-hub/config"
	"github.com/apex-hub/apex-campus-hub/internal/application/command"
	"github.com/apex-hub/apex-campus-hub/internal/application/eventhandler"
	"github.com/apex-hub/apex-campus-hub/internal/application/query"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/infrastructure/messaging"
	"github.com/apex-hub/apex-campus-hub/internal/infrastructure/persistence/postgres"
	"github.com/apex-hub/apex-campus-hub/internal/infrastructure/persistence/redis"
	"github.com/apex-hub/apex-campus-hub/internal/infrastructure/scheduler"
	httpserver "github.com/apex-hub/apex-campus-hub/internal/interface/http"
	"github.com/apex-hub/apex-campus-hub/pkg/circuitbreaker"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
	"github.com/apex-hub/apex-campus-hub/pkg/retry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg)
	slogger := newSlogger(cfg)
	slog.SetDefault(slogger)

	log.Info("starting apex campus hub",
		logger.String("version", cfg.App.Version),
		logger.String("environment", string(cfg.App.Environment)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ─────────────────────────────────────────────────────────────────────────
	// Storage
	// ─────────────────────────────────────────────────────────────────────────

	var conn *postgres.Connection
	err = retry.StartupRetrier().Do(ctx, func(ctx context.Context) error {
		var connErr error
		conn, connErr = postgres.NewConnection(ctx, postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Database:        cfg.Database.Database,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			SSLMode:         cfg.Database.SSLMode,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		return connErr
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close()

	migrator := postgres.NewMigrator(conn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	var cache *redis.Cache
	err = retry.StartupRetrier().Do(ctx, func(ctx context.Context) error {
		var cacheErr error
		cache, cacheErr = redis.NewCache(redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		return cacheErr
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer cache.Close()

	storage := postgres.NewStorage(conn)
	sessions := redis.NewSessionStore(cache, cfg.Focus.SessionTTL)
	rateLimiter := redis.NewRateLimiter(cache, cfg.HTTP.RateLimitPerMinute)

	// ─────────────────────────────────────────────────────────────────────────
	// Event bus
	// ─────────────────────────────────────────────────────────────────────────

	bus := messaging.NewEventBus(messaging.Config{
		AsyncMode:      true,
		WorkerPoolSize: 10,
		Logger:         slogger,
	})
	defer bus.Close()

	// ─────────────────────────────────────────────────────────────────────────
	// Leaderboard cache
	// ─────────────────────────────────────────────────────────────────────────

	var boardCache *redis.LeaderboardCache
	var boardBreaker *circuitbreaker.CircuitBreaker
	if cfg.Features.IsEnabled(config.FeatureLeaderboardCache) {
		boardCache = redis.NewLeaderboardCache(cache)
		boardBreaker = circuitbreaker.CacheBreaker(func(name string, from, to circuitbreaker.State) {
			log.Warn("circuit breaker state change",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		})

		if err := bus.Subscribe(shared.EventTaskCompleted, eventhandler.NewOnTaskCompletedHandler(boardCache, slogger)); err != nil {
			return fmt.Errorf("subscribe task completed handler: %w", err)
		}
		if err := bus.Subscribe(shared.EventSessionRecorded, eventhandler.NewOnSessionRecordedHandler(boardCache, slogger)); err != nil {
			return fmt.Errorf("subscribe session recorded handler: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Application handlers
	// ─────────────────────────────────────────────────────────────────────────

	admins := command.AdminChecker(cfg.Focus.IsAdminEmail)
	idempotent := cfg.Features.IsEnabled(config.FeatureIdempotentCompletion)

	getLeaderboard := query.NewGetLeaderboardHandler(storage, leaderboardReader(boardCache), boardBreaker, log)

	deps := httpserver.Dependencies{
		RegisterUser:   command.NewRegisterUserHandler(storage, bus, log),
		LoginUser:      command.NewLoginUserHandler(storage, log),
		UpdateProfile:  command.NewUpdateProfileHandler(storage, log),
		AddTask:        command.NewAddTaskHandler(storage, log),
		StartTask:      command.NewStartTaskHandler(storage, log),
		CompleteTask:   command.NewCompleteTaskHandler(storage, bus, log, idempotent),
		RecordSession:  command.NewRecordSessionHandler(storage, bus, log),
		PublishEvent:   command.NewPublishEventHandler(storage, bus, log, admins),
		PublishArticle: command.NewPublishArticleHandler(storage, bus, log, admins),
		PostListing:    command.NewPostListingHandler(storage, bus, log),
		ResolveListing: command.NewResolveListingHandler(storage, bus, log, admins),

		GetHome:           query.NewGetHomeHandler(storage, log),
		GetProfile:        query.NewGetProfileHandler(storage, log),
		GetDashboardStats: query.NewGetDashboardStatsHandler(storage, log, cfg.App.Location),
		GetTaskBoard:      query.NewGetTaskBoardHandler(storage, log),
		GetAnalytics:      query.NewGetAnalyticsHandler(storage, log),
		GetLeaderboard:    getLeaderboard,
		ListEvents:        query.NewListEventsHandler(storage, log),
		GetEvent:          query.NewGetEventHandler(storage, log),
		ListArticles:      query.NewListArticlesHandler(storage, log),
		GetArticle:        query.NewGetArticleHandler(storage, log),
		ListListings:      query.NewListListingsHandler(storage, log),

		Sessions:    sessions,
		RateLimiter: rateLimiter,
		Database:    conn,
		Cache:       cache,
		Logger:      log,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Scheduler
	// ─────────────────────────────────────────────────────────────────────────

	sched := scheduler.NewScheduler(scheduler.Config{
		Logger:   slogger,
		Timezone: cfg.App.Location,
	})

	if boardCache != nil && cfg.Focus.LeaderboardWarmInterval > 0 {
		warmJob := scheduler.NewFuncJob("leaderboard_warm", func(ctx context.Context) error {
			_, err := getLeaderboard.Handle(ctx, query.GetLeaderboardQuery{})
			return err
		})
		if err := sched.Register(warmJob, scheduler.NewIntervalSchedule(cfg.Focus.LeaderboardWarmInterval)); err != nil {
			return fmt.Errorf("register warm job: %w", err)
		}
	}

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() { _ = sched.Stop() }()

	// ─────────────────────────────────────────────────────────────────────────
	// HTTP server
	// ─────────────────────────────────────────────────────────────────────────

	server := httpserver.NewServer(httpserver.Config{
		Host:               cfg.HTTP.Host,
		Port:               cfg.HTTP.Port,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:     1 << 20,
		EnableCORS:         cfg.HTTP.EnableCORS,
		AllowedOrigins:     cfg.HTTP.AllowedOrigins,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
		SecureCookies:      cfg.HTTP.SecureCookies,
	}, deps)

	errCh := server.StartAsync()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info("apex campus hub stopped")
	return nil
}

// leaderboardReader keeps the typed-nil pitfall out of the handler: a
// nil *LeaderboardCache must become a nil interface.
func leaderboardReader(cache *redis.LeaderboardCache) query.LeaderboardReader {
	if cache == nil {
		return nil
	}
	return cache
}

func newLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
	}
	return logger.New(opts)
}

func newSlogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.App.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
