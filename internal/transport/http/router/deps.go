package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-blog-api/internal/core/auth"
	"go-gin-blog-api/internal/core/config"
	"go-gin-blog-api/internal/core/server"
	"go-gin-blog-api/internal/domain"
	mdw "go-gin-blog-api/internal/transport/http/middleware"
	resp "go-gin-blog-api/internal/transport/http/response"
)

// Deps is everything the engines need; all of it is shared read-only.
type Deps struct {
	Cfg   *config.Config
	Log   *zap.Logger
	JWT   *auth.JWTer
	Users domain.UserRepository
	Blogs domain.BlogRepository
	// Ready backs /health; nil reports healthy.
	Ready func(ctx context.Context) error
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

func newEngine(d Deps) *gin.Engine {
	l := d.logger()
	header := d.Cfg.JWT.Header
	r := server.NewRouter(server.Options{
		ExposeHeaders: []string{header, mdw.KeyRequestID},
		AllowHeaders:  []string{header, mdw.KeyRequestID},
	})

	lim := d.Cfg.Limits
	r.Use(
		resp.Use(resp.Options{ExposeErrors: d.Cfg.App.ExposeErrors, Log: l}),
		mdw.Recovery(l),
		mdw.RequestID(),
		mdw.AccessLog(l, "/health", "/metrics"),
		mdw.Metrics(),
		mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst),
		mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst),
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(time.Duration(lim.RequestTimeoutSec)*time.Second),
	)

	r.NoRoute(func(c *gin.Context) { resp.Abort(c, resp.NotFound(resp.MsgNotFound)) })
	r.GET("/health", health(d.Ready))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func health(ready func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			if err := ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0, "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
}
