package http

import (
	"context"
	"net/http"

	"github.com/dkeye/Multiview/internal/adapters/signal"
	"github.com/dkeye/Multiview/internal/app/orch"
	"github.com/dkeye/Multiview/internal/config"
	api "github.com/dkeye/Multiview/internal/transport/http"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// SetupRouter wires the REST API, the feed websocket, health and metrics.
// ctx bounds calls and feed connections started through the router.
func SetupRouter(ctx context.Context, cfg *config.Config, bot *orch.Bot, gatherer prometheus.Gatherer) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "calls": len(bot.List())})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("MultiviewSessions", store))
	r.Use(ClientTokenMiddleware())

	if cfg.StaticPath != "" {
		r.Static("/static", cfg.StaticPath)
	}

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	apiGroup := r.Group("/api")
	api.NewCallHandlers(ctx, bot).Register(apiGroup)

	feeds := signal.NewFeedController(bot, signal.NewRateLimiter(cfg.FeedRateLimit, cfg.FeedRateInterval), cfg.ReadLimit, cfg.PingPeriod)
	apiGroup.GET("/calls/:id/feed", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("call", c.Param("id")).Str("sid", c.GetString("client_token")).Msg("feed endpoint hit")
		feeds.HandleFeed(ctx, c)
	})

	return r
}
