package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/sifan077/GifBoard/config"
	"github.com/sifan077/GifBoard/internal/app/cache"
	appmodel "github.com/sifan077/GifBoard/internal/app/model"
	apprepository "github.com/sifan077/GifBoard/internal/app/repository"
	appserver "github.com/sifan077/GifBoard/internal/app/server"
	appservice "github.com/sifan077/GifBoard/internal/app/service"
	"github.com/sifan077/GifBoard/internal/infra/logger"
	infraNATS "github.com/sifan077/GifBoard/internal/infra/nats"
	infraPostgres "github.com/sifan077/GifBoard/internal/infra/postgres"
	infraPrometheus "github.com/sifan077/GifBoard/internal/infra/prometheus"
	infraRedis "github.com/sifan077/GifBoard/internal/infra/redis"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal("Failed to load config", zap.Error(err))
	}

	log := logger.MustInit(logger.FromApp(cfg.App, "gifboard"))
	defer func() { _ = logger.Sync() }()

	log.Info("Configuration loaded successfully",
		zap.String("env", cfg.App.Env),
		zap.String("addr", cfg.Server.Addr),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("postgres_db", cfg.Postgres.Database),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("nats_enabled", cfg.NATS.Enabled),
		zap.Bool("prometheus_enabled", cfg.Prometheus.Enabled),
	)

	gormDB, err := infraPostgres.NewGorm(cfg.Postgres, log)
	if err != nil {
		log.Fatal("Failed to open GORM connection", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := infraPostgres.AutoMigrate(ctx, gormDB, &appmodel.Gif{}); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()
	log.Info("Connected to Postgres successfully")

	gifRepo := apprepository.NewGifRepository(gormDB)

	names := appservice.NewNameFilter(0, 0)
	if n, err := names.Warm(ctx, gifRepo); err != nil {
		log.Warn("Failed to warm gif name filter", zap.Error(err))
	} else {
		log.Info("Gif name filter warmed", zap.Int("names", n))
	}

	registry := infraPrometheus.NewRegistry()
	metrics := infraPrometheus.NewMetrics(registry)
	opts := []appservice.Option{
		appservice.WithLogger(log.Named("gifs")),
		appservice.WithNameFilter(names),
		appservice.WithRecorder(metrics),
	}

	var listCache *cache.GifListCache
	if cfg.Redis.Enabled {
		redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, serving gif list without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			log.Info("Connected to Redis successfully")

			listCache = cache.NewGifListCache(redisClient, cfg.Redis.ListTTL)
			opts = append(opts, appservice.WithListCache(listCache))
		}
	}

	if cfg.NATS.Enabled {
		natsConn, js, err := infraNATS.Connect(cfg.NATS)
		if err != nil {
			log.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsConn.Drain()

		if err := infraNATS.EnsureStream(js, appmodel.GifStreamName,
			[]string{appmodel.GifCreatedSubject}, appmodel.GifStreamMaxBytes); err != nil {
			log.Fatal("Failed to prepare gif stream", zap.Error(err))
		}
		log.Info("Connected to NATS successfully")

		opts = append(opts, appservice.WithPublisher(appservice.NewGifPublisher(js)))

		if listCache != nil {
			consumer := appservice.NewGifEventConsumer(js, log.Named("gif-events"), listCache)
			if err := consumer.Start(); err != nil {
				log.Fatal("Failed to start gif event consumer", zap.Error(err))
			}
			defer func() { _ = consumer.Stop() }()
		}
	}

	if cfg.Prometheus.Enabled {
		promServer := infraPrometheus.NewServer(cfg.Prometheus, registry)
		go func() {
			log.Info("Starting Prometheus metrics server",
				zap.Int("port", cfg.Prometheus.Port))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	} else {
		log.Info("Prometheus metrics server disabled")
	}

	server := appserver.New(appserver.Dependencies{
		Logger:      log,
		Postgres:    pool,
		Gifs:        appservice.NewGifService(gifRepo, opts...),
		Metrics:     metrics,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	go func() {
		<-ctx.Done()
		log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to shut down HTTP server", zap.Error(err))
		}
	}()

	log.Info("Starting HTTP server", zap.String("addr", cfg.Server.Addr))
	if err := server.Listen(cfg.Server.Addr); err != nil {
		log.Fatal("Fiber server exited", zap.Error(err))
	}
}
