package main

import (
	"context"
	"fmt"
	"log"
	"myBizHub/app/echo-server/router"
	"myBizHub/business/duplicate"
	"myBizHub/business/matching"
	"myBizHub/business/search"
	"myBizHub/business/usage"
	"myBizHub/internal/middleware"
	"myBizHub/internal/repository/memory"
	psqlRepo "myBizHub/internal/repository/postgres"
	redisRepo "myBizHub/internal/repository/redis"
	"myBizHub/internal/rest"
	"myBizHub/pkg/config"
	"myBizHub/pkg/database"
	redisdb "myBizHub/pkg/database/redis"
	"myBizHub/pkg/logger"
	"myBizHub/pkg/metrics"
	"myBizHub/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting myBizHub", "version", cfg.App.Version, "usage_store", cfg.Usage.Store)

	metrics.Init()
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database handle", "error", err)
	}
	defer sqlDB.Close()

	logger.Info("Database connected successfully")

	healthChecks := map[string]rest.Pinger{
		"postgres": sqlDB.PingContext,
	}

	// Init usage store
	var (
		usageStore  usage.UsageStore
		usageLocker usage.Locker
	)
	switch cfg.Usage.Store {
	case config.UsageStoreRedis:
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisdb.CloseRedisClient(redisClient)

		usageStore = redisRepo.NewUsageRepository(redisClient, cfg.Usage.TTL)
		usageLocker = redisRepo.NewLocker(redisClient, "lock:", cfg.Usage.LockTTL, cfg.Usage.LockWait)
		healthChecks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Info("Redis connected successfully")
	case config.UsageStorePostgres:
		usageStore = psqlRepo.NewUsageRepository(db)
	default:
		usageStore = memory.NewUsageRepository()
		logger.Warn("Usage history is kept in memory and lost on restart")
	}

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	supplierRepo := psqlRepo.NewSupplierRepository(db)
	customerRepo := psqlRepo.NewCustomerRepository(db)

	// Init service
	dupCfg := matching.DuplicateConfig{
		NameWeight:        cfg.Matching.NameWeight,
		EmailWeight:       cfg.Matching.EmailWeight,
		PhoneWeight:       cfg.Matching.PhoneWeight,
		WebsiteWeight:     cfg.Matching.WebsiteWeight,
		NameSimilarityMin: cfg.Matching.NameSimilarityMin,
		Threshold:         cfg.Matching.Threshold,
	}
	searchCfg := search.DefaultConfig()
	searchCfg.DefaultLimit = cfg.Matching.DefaultLimit
	searchCfg.MaxLimit = cfg.Matching.MaxLimit

	usageService := usage.NewUsageService(usageStore, usageLocker, time.Now, cfg.Usage.MaxRecords)
	duplicateService := duplicate.NewDuplicateService(supplierRepo, customerRepo, dupCfg)
	searchService := search.NewSearchService(productRepo, categoryRepo, customerRepo, usageService, searchCfg, time.Now)

	// Init handler
	duplicateHandler := rest.NewDuplicateHandler(duplicateService)
	searchHandler := rest.NewSearchHandler(searchService)
	usageHandler := rest.NewUsageHandler(usageService)
	healthHandler := rest.NewHealthHandler(healthChecks)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(middleware.TraceID())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.HeaderTraceID},
	}))

	// Setup routes
	authRequired := middleware.AuthMiddleware()
	api := e.Group("/api/v1")
	router.SetupDuplicateRoutes(api, duplicateHandler, authRequired)
	router.SetupSearchRoutes(api, searchHandler, authRequired)
	router.SetupUsageRoutes(api, usageHandler, authRequired)
	router.SetupOpsRoutes(e, healthHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
