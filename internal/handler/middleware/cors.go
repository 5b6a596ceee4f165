package middleware

import (
	"log/slog"

	"roadready/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware exposes the rate limit and request id headers so browser
// clients can read them.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	expose := append([]string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", headerRequestID}, cfg.ExposeHeaders...)
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}
