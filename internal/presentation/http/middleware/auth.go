package middleware

import (
	"strings"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/dto/response"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	CallerIDKey    = "caller_id"
	CallerEmailKey = "caller_email"
	CallerRoleKey  = "caller_role"
)

// AuthMiddleware verifies the bearer token issued by the hosted auth service
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CallerIDKey, claims.Subject)
		c.Set(CallerEmailKey, claims.Email)
		c.Set(CallerRoleKey, claims.Role)

		c.Next()
	}
}

// GetCallerID returns the authenticated subject, or "" on open routes
func GetCallerID(c *gin.Context) string {
	return c.GetString(CallerIDKey)
}
