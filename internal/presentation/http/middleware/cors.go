package middleware

import (
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// dashboard dev server
var defaultOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// CORSMiddleware lets the dashboard front end call the API. Empty settings
// fall back to the local dev server and the verbs the API serves.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:     orDefault(cfg.AllowedMethods, []string{"GET", "POST", "PUT", "OPTIONS"}),
		AllowHeaders:     orDefault(cfg.AllowedHeaders, []string{"Accept", "Authorization", "Content-Type", "Origin", RequestIDHeader}),
		ExposeHeaders:    []string{"Content-Disposition", RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func orDefault(values, def []string) []string {
	if len(values) == 0 {
		return def
	}
	return values
}
