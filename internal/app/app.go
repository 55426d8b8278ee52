package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lightsmap/core/internal/config"
	"github.com/lightsmap/core/internal/database"
	"github.com/lightsmap/core/internal/middleware"
	"github.com/lightsmap/core/internal/pkg/jwt"
	"github.com/lightsmap/core/internal/pkg/metrics"
	pkgredis "github.com/lightsmap/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *gorm.DB
	redis   *pkgredis.Client
	signer  *jwt.Signer
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Deps are the constructed collaborators an App is assembled from.
// Redis and Metrics are optional.
type Deps struct {
	Config  *config.AppConfig
	Logger  *zap.Logger
	DB      *gorm.DB
	Redis   *pkgredis.Client
	Signer  *jwt.Signer
	Metrics *metrics.Metrics
}

// New validates cfg and connects storage: config → DB → Redis → routes.
// It refuses to start when a required secret is missing.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	signer, err := jwt.NewSigner(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", config.ErrMissingSetting, config.EnvJWTSecret)
	}

	db, err := database.Connect(cfg, false)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("redis: %w", err)
	}
	if rc == nil {
		logger.Info("redis not configured, response cache disabled")
	}

	return NewWithDeps(Deps{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Redis:   rc,
		Signer:  signer,
		Metrics: metrics.New(),
	})
}

// NewWithDeps assembles the router around already constructed collaborators.
func NewWithDeps(d Deps) (*App, error) {
	if d.Config == nil || d.DB == nil || d.Signer == nil {
		return nil, errors.New("app: config, db and signer are required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	if d.Config.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(d.Logger, d.Metrics))
	router.Use(cors.New(corsConfig(d.Config)))
	router.Use(middleware.HTTPCache(d.Redis.Raw(), middleware.HTTPCacheOptions{
		TTL:       d.Config.CacheTTL,
		SkipPaths: uncachedPaths,
		Logger:    d.Logger,
	}))

	a := &App{
		cfg:     d.Config,
		router:  router,
		db:      d.DB,
		redis:   d.Redis,
		signer:  d.Signer,
		metrics: d.Metrics,
		logger:  d.Logger,
	}
	a.registerRoutes()
	return a, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the database pool and the Redis client.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("redis: %w", err))
	}
	if err := database.Close(a.db); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	if ctx.Err() != nil {
		errs = append(errs, ctx.Err())
	}
	return errors.Join(errs...)
}
