package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/config"
	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
	"github.com/covid-dashboard/internal/pkg/logger"
	"github.com/covid-dashboard/internal/repository/cache"
	"github.com/covid-dashboard/internal/repository/dataset"
	"github.com/covid-dashboard/internal/repository/postgres"
	redisRepo "github.com/covid-dashboard/internal/repository/redis"
	"github.com/covid-dashboard/internal/usecase"
	"github.com/covid-dashboard/internal/usecase/figure"
	"github.com/covid-dashboard/internal/worker"
	"github.com/covid-dashboard/internal/worker/warmup"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Figure Warmup Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Strings("metrics", cfg.Worker.Metrics))

	metrics := make([]domain.Metric, 0, len(cfg.Worker.Metrics))
	for _, m := range cfg.Worker.Metrics {
		metric, err := domain.ParseMetric(m)
		if err != nil {
			log.Fatal("Invalid worker metric", zap.String("metric", m), zap.Error(err))
		}
		metrics = append(metrics, metric)
	}

	// 3. Load dataset
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer loadCancel()
	source, closeSource, err := openSource(loadCtx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open time series source", zap.Error(err))
	}

	store, err := dataset.Load(
		loadCtx,
		source,
		cfg.Data.WorldFile,
		cfg.Data.GeoJSONFile,
		cfg.Data.GeoJSONKeyProperty,
		dataset.Options{
			NationalLocation: cfg.Dashboard.NationalLocation,
			NationalName:     cfg.Dashboard.NationalName,
			WorldName:        cfg.Dashboard.WorldName,
			DateRangePolicy:  cfg.Dashboard.DateRangePolicy,
		},
		log,
	)
	closeSource()
	if err != nil {
		log.Fatal("Failed to load dataset", zap.Error(err))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Initialize use cases
	mapOptions := figure.MapOptions{
		Center:     domain.Point{Lat: cfg.Dashboard.MapCenterLat, Lon: cfg.Dashboard.MapCenterLon},
		Zoom:       cfg.Dashboard.MapZoom,
		Opacity:    cfg.Dashboard.MapOpacity,
		GeoJSONURL: "/api/v1/boundaries.geojson",
	}
	chartUC := usecase.NewChartUseCase(store, cacheRepo, log, cfg.Cache.FigureTTL)
	mapUC := usecase.NewMapUseCase(store, cacheRepo, log, cfg.Cache.FigureTTL, mapOptions)

	// 7. Initialize workers
	warmupWorker := warmup.NewFigureWarmupWorker(
		streamRepo,
		store,
		mapUC,
		chartUC,
		warmup.Options{
			ConsumerGroup:    cfg.Worker.ConsumerGroup,
			MaxRetries:       cfg.Worker.MaxRetries,
			NationalLocation: cfg.Dashboard.NationalLocation,
			Metrics:          metrics,
			PollInterval:     cfg.Worker.PollInterval,
		},
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(warmupWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}

func openSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.TimeSeriesSource, func(), error) {
	if cfg.Data.Source != "postgres" {
		return dataset.NewCSVSource(cfg.Data.CountriesFile), func() {}, nil
	}

	db, err := postgres.New(ctx, &cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}
	return postgres.NewTimeSeriesRepository(db, log), closeDB, nil
}
