package routes

import (
	"github.com/LeFrancilien/dash-kangourou-nova/internal/config"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/handler"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/middleware"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Quote    *handler.QuoteHandler
	Calendar *handler.CalendarHandler
	Insight  *handler.InsightHandler
	Agency   *handler.AgencyHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	Logger      zerolog.Logger
	RateLimiter *middleware.CallerRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	if deps.Cfg.Auth.Enabled {
		v1.Use(middleware.AuthMiddleware(deps.JWTManager))
	}
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}

	registerQuoteRoutes(v1, h)

	v1.GET("/agencies", h.Agency.List)
	v1.GET("/calendar", h.Calendar.Get)
	v1.GET("/kanban", h.Insight.Kanban)
	v1.GET("/clients", h.Insight.Clients)
	v1.GET("/dashboard", h.Insight.Dashboard)

	return router
}

func registerQuoteRoutes(v1 *gin.RouterGroup, h *Handlers) {
	quotes := v1.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", h.Quote.Create)
		quotes.GET("/export", h.Quote.Export)
		quotes.GET("/:id", h.Quote.Get)

		quotes.POST("/:id/call-j0", h.Quote.Transition(enum.TransitionCallJ0Done))
		quotes.POST("/:id/call-j2", h.Quote.Transition(enum.TransitionCallJ2Done))
		quotes.POST("/:id/contact", h.Quote.Transition(enum.TransitionContactEstablished))
		quotes.POST("/:id/reminder-j2", h.Quote.Transition(enum.TransitionReminderJ2Sent))
		quotes.POST("/:id/email-j4", h.Quote.SendEmailJ4)
		quotes.POST("/:id/convert", h.Quote.Transition(enum.TransitionConvert))
		quotes.POST("/:id/lost", h.Quote.Transition(enum.TransitionMarkLost))

		quotes.PUT("/:id/notes", h.Quote.SaveNotes)
		quotes.PUT("/:id/status", h.Quote.Move)
	}
}
