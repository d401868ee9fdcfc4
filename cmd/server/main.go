package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/retail-inventory/backend/internal/application/catalog"
	identityapp "github.com/retail-inventory/backend/internal/application/identity"
	inventoryapp "github.com/retail-inventory/backend/internal/application/inventory"
	partnerapp "github.com/retail-inventory/backend/internal/application/partner"
	reportapp "github.com/retail-inventory/backend/internal/application/report"
	retailapp "github.com/retail-inventory/backend/internal/application/retail"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/infrastructure/auth"
	"github.com/retail-inventory/backend/internal/infrastructure/cache"
	"github.com/retail-inventory/backend/internal/infrastructure/config"
	"github.com/retail-inventory/backend/internal/infrastructure/event"
	"github.com/retail-inventory/backend/internal/infrastructure/logger"
	"github.com/retail-inventory/backend/internal/infrastructure/migration"
	"github.com/retail-inventory/backend/internal/infrastructure/persistence"
	"github.com/retail-inventory/backend/internal/infrastructure/telemetry"
	"github.com/retail-inventory/backend/internal/interfaces/http/handler"
	"github.com/retail-inventory/backend/internal/interfaces/http/middleware"
	"github.com/retail-inventory/backend/internal/interfaces/http/router"
	"github.com/retail-inventory/backend/migrations"
	"go.uber.org/zap"

	_ "github.com/retail-inventory/backend/docs"
)

const version = "1.0.0"

//	@title			Retail Inventory API
//	@version		1.0
//	@description	Multi-tenant inventory management for retail shops: catalog, locations, stock movements and dashboards.

//	@contact.name	API Support
//	@contact.url	https://github.com/retail-inventory/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry providers are no-ops unless telemetry is enabled
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Warn("Continuous profiling disabled", zap.Error(err))
	} else if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting Retail Inventory backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access sql.DB", zap.Error(err))
	}
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, cfg.Database.Driver, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	meter := meterProvider.Meter(cfg.App.Name)
	if reg, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB); err != nil {
		log.Warn("Database pool metrics disabled", zap.Error(err))
	} else {
		defer func() { _ = reg.Unregister() }()
	}

	if err := migrateSchema(db, sqlDB, cfg, log); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	cacheFactory := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	if err := cacheFactory.Connect(ctx); err != nil {
		log.Fatal("Failed to connect cache", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncWorkers(4, 256))

	// Repositories
	classificationRepo := persistence.NewGormClassificationRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	recordRepo := persistence.NewGormInventoryRecordRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	retailRepo := persistence.NewGormRetailRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	dashboardReader := persistence.NewGormDashboardReader(db.DB)

	// Application services
	classificationService := catalogapp.NewClassificationService(classificationRepo, productRepo)
	productService := catalogapp.NewProductService(persistence.NewGormCatalogTransactionScope(db.DB), productRepo, classificationRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo, recordRepo)
	inventoryTx := persistence.NewGormInventoryTransactionScope(db.DB)
	locationService := inventoryapp.NewLocationService(inventoryTx, locationRepo, recordRepo)
	inventoryService := inventoryapp.NewInventoryService(
		inventoryTx,
		recordRepo,
		locationRepo,
		movementRepo,
		productRepo,
		supplierRepo,
	)
	inventoryService.SetEventPublisher(eventBus)

	dashboardCache := cacheFactory.DashboardCache()
	dashboardService := reportapp.NewDashboardService(dashboardReader, dashboardCache, reportapp.DashboardOptions{
		Months:            cfg.Dashboard.Months,
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
		CacheTTL:          cfg.Dashboard.CacheTTL,
	}, log)

	retailService := retailapp.NewRetailService(
		persistence.NewGormRetailTransactionScope(db.DB),
		retailRepo,
		subscriptionRepo,
		log,
	)

	jwtService := auth.NewJWTService(cfg.JWT)
	revocationStore := cacheFactory.RevocationStore()
	authService := identityapp.NewAuthService(userRepo, retailRepo, jwtService, revocationStore, log)

	if cfg.Bootstrap.Enabled() {
		created, err := authService.BootstrapAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
		if err != nil {
			log.Fatal("Failed to bootstrap admin account", zap.Error(err))
		}
		if created {
			log.Info("Admin account created", zap.String("username", cfg.Bootstrap.AdminUsername))
		}
	}

	// Event handlers
	cacheInvalidator := reportapp.NewDashboardCacheInvalidator(dashboardCache, log)
	eventBus.Subscribe(cacheInvalidator, cacheInvalidator.EventTypes()...)
	if stockMetrics, err := telemetry.NewStockMetrics(meter); err != nil {
		log.Warn("Stock metrics disabled", zap.Error(err))
	} else {
		eventBus.Subscribe(stockMetrics, stockMetrics.EventTypes()...)
	}
	log.Info("Event handlers registered",
		zap.Strings("dashboard_cache_events", cacheInvalidator.EventTypes()),
	)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	go loginLimiter.Run(ctx)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	checks := map[string]handler.HealthChecker{
		"database": handler.HealthCheckFunc(sqlDB.PingContext),
	}
	if client := cacheFactory.Client(); client != nil {
		checks["redis"] = handler.HealthCheckFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine, err := router.NewEngine(router.Options{
		Logger:         log,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tracerProvider.IsEnabled(),
		Meter:          meter,
		CORS:           corsConfig,
		Security:       middleware.DefaultSecurityConfig(),
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		JWT: middleware.JWTConfig{
			Validator:  jwtService,
			Revocation: revocationStore,
			Logger:     log,
		},
		Tenant:         middleware.TenantConfig{AllowHeader: cfg.JWT.AllowTenantHeader},
		LoginLimiter:   loginLimiter,
		SwaggerEnabled: cfg.Swagger.Enabled,
	}, router.Handlers{
		System:    handler.NewSystemHandler(version, checks),
		Auth:      handler.NewAuthHandler(authService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Product:   handler.NewProductHandler(productService),
		Brand:     handler.NewClassificationHandler(classificationService, catalog.KindBrand),
		Category:  handler.NewClassificationHandler(classificationService, catalog.KindCategory),
		Type:      handler.NewClassificationHandler(classificationService, catalog.KindType),
		Location:  handler.NewLocationHandler(locationService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Retail:    handler.NewRetailHandler(retailService),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := cacheFactory.Close(); err != nil {
		log.Error("Error closing cache", zap.Error(err))
	}
	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited")
}

// migrateSchema uses gorm AutoMigrate for SQLite or when explicitly enabled,
// and the embedded SQL migrations otherwise
func migrateSchema(db *persistence.Database, sqlDB *sql.DB, cfg *config.Config, log *zap.Logger) error {
	if cfg.Database.Driver == "sqlite" || cfg.Database.AutoMigrate {
		log.Info("Running gorm auto-migration")
		return db.AutoMigrate()
	}

	// The migrator is not closed: closing it also closes sqlDB, which the
	// gorm pool keeps using.
	m, err := migration.NewFromFS(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	return m.Up()
}
