package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lightsmap/core/internal/database"
	"github.com/lightsmap/core/internal/middleware"
	"github.com/lightsmap/core/internal/modules/auth"
	"github.com/lightsmap/core/internal/modules/captcha"
	"github.com/lightsmap/core/internal/modules/location"
	"github.com/lightsmap/core/internal/modules/review"
	"github.com/lightsmap/core/internal/modules/submission"
	"github.com/lightsmap/core/internal/pkg/response"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// routePrefixes mounts every route at the root and under /api, the path
// the browser client calls.
var routePrefixes = []string{"", "/api"}

// uncachedPaths never go through the response cache.
var uncachedPaths = []string{
	"/admin*", "/api/admin*",
	"/captcha", "/api/captcha",
	"/healthz", "/metrics",
}

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.AdminAuth(a.signer)
	purge := middleware.CachePurger(a.redis.Raw(), a.logger)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/healthz", a.health)
	if a.metrics != nil {
		r.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	}

	locationH := location.NewHandler(location.NewService(a.db), a.logger, purge)
	reviewH := review.NewHandler(review.NewService(a.db), a.logger, a.metrics, purge)
	captchaSvc := captcha.NewService(a.signer)
	captchaH := captcha.NewHandler(captchaSvc, a.logger, a.metrics)
	submissionH := submission.NewHandler(submission.NewService(a.db), captchaSvc, a.logger, a.metrics)
	authH := auth.NewHandler(auth.NewService(a.cfg.AdminPassword, a.signer), a.logger, a.metrics)

	for _, prefix := range routePrefixes {
		g := r.Group(prefix)
		locationH.RegisterRoutes(g, authMW)
		reviewH.RegisterRoutes(g, authMW)
		captchaH.RegisterRoutes(g)
		submissionH.RegisterRoutes(g, authMW)
		authH.RegisterRoutes(g)
	}
}

// GET /healthz
func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()
	if err := database.Ping(ctx, a.db); err != nil {
		a.logger.Warn("health check failed", zap.Error(err))
		response.ServiceUnavailable(c, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
