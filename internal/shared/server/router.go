package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"listdist/internal/lists"
	"listdist/internal/shared/config"
	"listdist/internal/shared/metrics"
	"listdist/internal/shared/server/middleware"
	"listdist/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config      config.Config
	ListHandler *lists.Handler
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	upload := deps.Config.UploadRateLimit
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.UploadRateLimitGroup: {Rate: upload.Rate, Burst: upload.Burst},
			},
			GroupFor: middleware.UploadGroup,
			Limiter:  deps.RateLimiter,
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	if deps.ListHandler != nil {
		deps.ListHandler.RegisterRoutes(api)
	}

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
