package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zelosify/server/internal/module/identity"
	"github.com/zelosify/server/internal/module/opening"
	"github.com/zelosify/server/internal/module/profile"
	"github.com/zelosify/server/internal/module/storage"
	sharedcache "github.com/zelosify/server/internal/shared/cache"
	"github.com/zelosify/server/internal/shared/config"
	"github.com/zelosify/server/internal/shared/database"
	"github.com/zelosify/server/internal/shared/logger"
	"github.com/zelosify/server/internal/utils/metrics"
	"github.com/zelosify/server/internal/utils/middleware"
)

// App wires configuration, infrastructure, and modules into a running
// service.
type App struct {
	config    *config.Config
	db        *gorm.DB
	redis     *redis.Client
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	metrics   *metrics.Metrics

	identityService *identity.Service
	openingHandler  *opening.Handler
	profileHandler  *profile.Handler
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init zap logger: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    log,
		zapLogger: zapLog,
		metrics:   metrics.New("zelosify"),
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	app.db = db

	// Redis is optional; without it identity lookups just skip the cache.
	if cfg.Redis.Address != "" {
		redisClient, err := sharedcache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("redis connection failed, identity caching disabled", logger.Err(err))
		} else {
			app.redis = redisClient
		}
	}

	if err := app.initModules(); err != nil {
		return nil, fmt.Errorf("init modules: %w", err)
	}

	app.router = app.setupRouter()

	return app, nil
}

// initModules builds the module graph.
func (a *App) initModules() error {
	// Identity module
	verifier := identity.NewJWTVerifier(a.config.Auth.JWTSecret, a.config.Auth.Issuer)
	identityRepo := identity.NewRepository(a.db)
	var identityCache identity.Cache
	if a.redis != nil {
		identityCache = identity.NewRedisCache(a.redis, a.config.Auth.IdentityCacheTTL)
	}
	a.identityService = identity.NewService(verifier, identityRepo, identityCache, a.metrics, a.zapLogger)

	// Object storage
	store, err := storage.NewClient(&storage.Config{
		Endpoint:        a.config.Storage.Endpoint,
		Region:          a.config.Storage.Region,
		AccessKeyID:     a.config.Storage.AccessKeyID,
		SecretAccessKey: a.config.Storage.SecretAccessKey,
		Bucket:          a.config.Storage.Bucket,
	}, a.metrics)
	if err != nil {
		return fmt.Errorf("init storage client: %w", err)
	}

	// Opening and profile modules. The gate sits on the opening repository
	// so the profile service can pre-check access without a service cycle.
	openingRepo := opening.NewRepository(a.db)
	gate := opening.NewGate(openingRepo)

	tokenService := profile.NewTokenService(profile.TokenConfig{
		Secret: a.config.Auth.JWTSecret,
		Issuer: a.config.Auth.Issuer,
		Expiry: a.config.Upload.TokenExpiry,
	})

	profileRepo := profile.NewRepository(a.db)
	profileService := profile.NewService(profileRepo, store, tokenService, gate, profile.ServiceConfig{
		DownloadExpiry: a.config.Upload.DownloadExpiry,
		MaxFileSize:    a.config.Upload.MaxFileSize,
		MaxConcurrency: a.config.Upload.MaxConcurrency,
	}, a.metrics, a.zapLogger)

	openingService := opening.NewService(openingRepo, a.identityService, profileService, a.zapLogger)

	a.openingHandler = opening.NewHandler(openingService, a.zapLogger)
	a.profileHandler = profile.NewHandler(profileService, a.zapLogger)

	return nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Every vendor route requires an authenticated caller with a tenant.
	vendor := r.Group("/api/v1/vendor")
	vendor.Use(middleware.Auth(a.identityService))
	vendor.Use(middleware.RequireTenant())
	{
		a.openingHandler.RegisterRoutes(vendor)
		a.profileHandler.RegisterRoutes(vendor)
	}

	return r
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop releases application resources.
func (a *App) Stop() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", logger.Err(err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.logger.Warn("close database", logger.Err(err))
			}
		}
	}
	_ = a.zapLogger.Sync()
}
