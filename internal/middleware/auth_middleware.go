package middleware

import (
	"strings"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and loads the caller's identity
// into the request context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_type", claims.UserType)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// AdminRequired gates admin-only routes. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, exists := c.Get("user_type")
		if !exists || userType != string(models.UserTypeAdmin) {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
