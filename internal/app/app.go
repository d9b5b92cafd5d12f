package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/outlink-dev/outlink/internal/config"
	"github.com/outlink-dev/outlink/internal/httpserver"
	"github.com/outlink-dev/outlink/internal/httpserver/deps"
	"github.com/outlink-dev/outlink/internal/index"
	"github.com/outlink-dev/outlink/internal/launch"
	"github.com/outlink-dev/outlink/internal/logger"
	"github.com/outlink-dev/outlink/internal/redis"
	"github.com/outlink-dev/outlink/internal/scheduler"
	redisstore "github.com/outlink-dev/outlink/internal/store/redis"
	"github.com/outlink-dev/outlink/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.OverlayReloader
	gc          *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Memory index starts with the builtin catalog; the overlay
	// reloader swaps in the merged registry when configured.
	memIndex := index.NewMemoryIndex()

	store := redisstore.NewStore(redisClient)

	// Load persisted usage counters into memory on startup
	syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync usage counters from redis on startup",
			logger.Error(err))
	}

	// Initialize overlay reloader (if an overlay file is configured)
	var reloader *scheduler.OverlayReloader
	var reloadTrigger chan struct{}
	if cfg.CatalogOverlay != "" {
		loggerClient.Info("catalog overlay configured, initializing reloader",
			logger.String("file", cfg.CatalogOverlay))
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewOverlayReloader(
			cfg.CatalogOverlay,
			memIndex,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("no catalog overlay configured, using builtin catalog only")
	}

	// Initialize garbage collector
	gc := scheduler.NewGarbageCollector(
		store,
		memIndex,
		loggerClient,
		cfg.GCInterval,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RedisClient:  redisClient,
		MemoryIndex:  memIndex,
		LandingPath:  cfg.LandingPath,
		DeploymentCN: cfg.DeploymentRegion == "CN",
		CacheTTL:     cfg.CacheTTL,
		Timings: launch.Timings{
			PerAttempt:        cfg.AttemptTimeout,
			AfterStoreReturn:  cfg.StoreReturnTimeout,
			InterAttempt:      cfg.InterAttemptPause,
			ReturnSettle:      cfg.ReturnSettle,
			StoreReturnWindow: cfg.StoreReturnWindow,
		},
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		gc:          gc,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Outlink %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start overlay reloader (if enabled)
	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start overlay reloader: %w", err)
		}
		a.logger.Info("overlay reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	// Start garbage collector
	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}

	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Outlink stopped cleanly")
	return nil
}
