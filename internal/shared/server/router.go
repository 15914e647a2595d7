package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"deckgen-backend/internal/auth"
	"deckgen-backend/internal/decks"
	"deckgen-backend/internal/services/health"
	"deckgen-backend/internal/shared/config"
	"deckgen-backend/internal/shared/metrics"
	"deckgen-backend/internal/shared/server/middleware"
	"deckgen-backend/internal/shared/server/respond"
)

// Static per-IP allowance for the deck endpoints.
var deckRateLimit = middleware.RateLimitRule{Limit: 30, Window: time.Minute}

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config      config.Config
	DeckHandler *decks.Handler
	GoogleAuth  *auth.GoogleService
	Health      *health.Service
	Limiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, deps.Health.Status())
	})
	deps.GoogleAuth.RegisterRoutes(api)

	limited := api.Group("", middleware.RateLimit(deckRateLimit, deps.Limiter))
	deps.DeckHandler.RegisterRoutes(limited)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
