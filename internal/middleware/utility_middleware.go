package middleware

import (
	"fmt"
	"net/http"
	"time"

	"mewayz/internal/utils"
	"mewayz/pkg/cache"
	"mewayz/pkg/logger"

	"github.com/gin-gonic/gin"
)

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	origins := make(map[string]bool)
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		origins[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origins[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

func LoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := log.WithFields(map[string]interface{}{
			"method":      c.Request.Method,
			"path":        path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		})
		if requestID := c.GetString("request_id"); requestID != "" {
			entry = entry.WithRequestID(requestID)
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Info("Request completed")
		}
	}
}

// RateLimitMiddleware enforces a fixed-window per-IP limit backed by Redis.
// Redis being unreachable fails open; limiting is best effort.
func RateLimitMiddleware(redis *cache.RedisCache, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s%s:%s", utils.CacheRateLimitPrefix, scope, c.ClientIP())

		count, err := redis.Increment(c.Request.Context(), key)
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			if err := redis.SetExpire(c.Request.Context(), key, window); err != nil {
				c.Next()
				return
			}
		}

		if count > int64(limit) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
