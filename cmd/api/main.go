package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/application/service"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/config"
	domainRepo "github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/infrastructure/database"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/infrastructure/memstore"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/infrastructure/repository"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/handler"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/middleware"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/routes"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/email"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", cfg.App.Name).Logger()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.App.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid timezone")
	}
	clock := service.NewClock(loc)

	quoteRepo, agencyRepo, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open quote store")
	}
	defer closeStore()

	// Seed the agency directory
	agencyService := service.NewAgencyService(agencyRepo)
	if len(cfg.Seed.Agencies) > 0 {
		created, err := agencyService.SeedAgencies(context.Background(), cfg.Seed.Agencies)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to seed agencies")
		} else {
			logger.Info().Int("created", created).Msg("agencies seeded")
		}
	}

	var mailer email.Sender = email.NullSender{}
	if cfg.Mail.MailEnabled() {
		mailer = email.NewEmailService(email.EmailConfig{
			SMTPHost:     cfg.Mail.SMTPHost,
			SMTPPort:     cfg.Mail.SMTPPort,
			SMTPUsername: cfg.Mail.SMTPUsername,
			SMTPPassword: cfg.Mail.SMTPPassword,
			FromName:     cfg.Mail.FromName,
			FromEmail:    cfg.Mail.FromEmail,
		})
	} else {
		logger.Warn().Msg("SMTP not configured, J+4 emails are recorded without being sent")
	}

	// Initialize services
	quoteService := service.NewQuoteService(quoteRepo, agencyRepo, mailer, clock)
	calendarService := service.NewCalendarService(quoteRepo, clock)
	insightService := service.NewInsightService(quoteRepo, agencyRepo, clock)

	handlers := &routes.Handlers{
		Quote:    handler.NewQuoteHandler(quoteService, clock),
		Calendar: handler.NewCalendarHandler(calendarService),
		Insight:  handler.NewInsightHandler(insightService),
		Agency:   handler.NewAgencyHandler(agencyService),
	}

	rateLimiter := middleware.NewCallerRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  utils.NewJWTManager(cfg.Auth.Secret, cfg.Auth.Issuer),
		Cfg:         cfg,
		Logger:      logger,
		RateLimiter: rateLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.App.Port).
			Str("env", cfg.App.Env).
			Str("store", cfg.Store.Driver).
			Bool("auth", cfg.Auth.Enabled).
			Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("server stopped")
}

// openStore connects the configured quote store and migrates it
func openStore(cfg *config.Config, logger zerolog.Logger) (domainRepo.QuoteRepository, domainRepo.AgencyRepository, func(), error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn().Msg("using the in-memory store, data is lost on restart")
		store := memstore.New()
		return store.Quotes(), store.Agencies(), func() {}, nil
	case config.StoreDriverSQLite:
		db, err = database.NewSQLiteDB(cfg.Store.SQLitePath, cfg.Database.LogSQL, logger)
	default:
		db, err = database.NewPostgresDB(&cfg.Database, logger)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	if err := database.AutoMigrate(db, logger); err != nil {
		return nil, nil, nil, err
	}

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return repository.NewQuoteRepository(db), repository.NewAgencyRepository(db), closeDB, nil
}
