package main

// @title COVID-19 Dashboard API
// @version 1.0.0
// @description Интерактивный дашборд COVID-19: карточки показателей, график по локации и хороплет-карта новых случаев.
// @description
// @description Основные возможности:
// @description - Карточки за дату для национального ряда, выбранной страны и мира
// @description - График показателя (столбцы для ежедневных, линия для накопительных)
// @description - Хороплет-карта новых случаев с выбором страны кликом
// @description - Сессии с реактивным пересчетом зависимых панелей

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8084
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/covid-dashboard/docs"
	"github.com/covid-dashboard/internal/config"
	httpDelivery "github.com/covid-dashboard/internal/delivery/http"
	"github.com/covid-dashboard/internal/delivery/http/handler"
	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
	"github.com/covid-dashboard/internal/pkg/i18n"
	"github.com/covid-dashboard/internal/pkg/logger"
	"github.com/covid-dashboard/internal/repository/cache"
	"github.com/covid-dashboard/internal/repository/dataset"
	"github.com/covid-dashboard/internal/repository/postgres"
	"github.com/covid-dashboard/internal/usecase"
	"github.com/covid-dashboard/internal/usecase/figure"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting COVID-19 Dashboard")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset_source", cfg.Data.Source),
		zap.String("date_range_policy", cfg.Dashboard.DateRangePolicy),
	)

	defaultMetric, err := domain.ParseMetric(cfg.Dashboard.DefaultMetric)
	if err != nil {
		log.Fatal("Invalid default metric", zap.String("metric", cfg.Dashboard.DefaultMetric), zap.Error(err))
	}

	// 3. Open the time series source and load the dataset (once, read-only afterwards)
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

	// 4. Figure cache
	cacheRepo := cache.NewNoopRepository()
	var redisClient *cache.Redis
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheRepo = cache.NewCacheRepository(redisClient)
		log.Info("Figure cache enabled", zap.Duration("ttl", cfg.Cache.FigureTTL))
	}

	// 5. Initialize Use Cases
	translator, err := i18n.NewTranslator(cfg.Dashboard.DefaultLanguage)
	if err != nil {
		log.Fatal("Failed to load translations", zap.Error(err))
	}

	mapOptions := figure.MapOptions{
		Center:     domain.Point{Lat: cfg.Dashboard.MapCenterLat, Lon: cfg.Dashboard.MapCenterLon},
		Zoom:       cfg.Dashboard.MapZoom,
		Opacity:    cfg.Dashboard.MapOpacity,
		GeoJSONURL: "/api/v1/boundaries.geojson",
	}

	summaryUC := usecase.NewSummaryUseCase(store, log)
	chartUC := usecase.NewChartUseCase(store, cacheRepo, log, cfg.Cache.FigureTTL)
	mapUC := usecase.NewMapUseCase(store, cacheRepo, log, cfg.Cache.FigureTTL, mapOptions)
	layoutUC := usecase.NewLayoutUseCase(store, translator, cfg.Dashboard.NationalLocation, defaultMetric, log)

	dashboardUC, err := usecase.NewDashboardUseCase(
		store,
		summaryUC,
		chartUC,
		mapUC,
		cfg.Dashboard.NationalLocation,
		defaultMetric,
		log,
	)
	if err != nil {
		log.Fatal("Failed to register dashboard callbacks", zap.Error(err))
	}

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	pageHandler, err := handler.NewPageHandler(layoutUC, log)
	if err != nil {
		log.Fatal("Failed to initialize page handler", zap.Error(err))
	}
	layoutHandler := handler.NewLayoutHandler(layoutUC, log)
	figureHandler := handler.NewFigureHandler(summaryUC, chartUC, mapUC, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		pageHandler,
		layoutHandler,
		figureHandler,
		dashboardHandler,
	)

	// 8. Session janitor
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go dashboardUC.RunSessionJanitor(janitorCtx, cfg.Dashboard.SessionSweep, cfg.Dashboard.SessionTTL)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")
	stopJanitor()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}

// openSource выбирает источник ряда по странам. Возвращаемая функция
// освобождает ресурсы источника после загрузки.
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
