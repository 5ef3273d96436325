package routes

import (
	"time"

	"mewayz/internal/handlers"
	"mewayz/internal/middleware"
	"mewayz/internal/utils"
	"mewayz/pkg/cache"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes wires registration, login, OAuth and device endpoints.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, redis *cache.RedisCache, jwtSecret string) {
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(redis, "login", utils.LoginRateLimit, time.Minute))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/google/url", authHandler.GoogleAuthURL)
		auth.POST("/google/callback", authHandler.GoogleCallback)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	devices := r.Group("/devices")
	devices.Use(middleware.AuthRequired(jwtSecret))
	{
		devices.POST("/", authHandler.RegisterDevice)
	}
}
