package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Store drivers
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Mail      MailConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	LogLevel string
	// Timezone is the business timezone used for every calendar computation
	Timezone string
}

type StoreConfig struct {
	Driver     string
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	LogSQL   bool
}

// AuthConfig verifies bearer tokens issued by the hosted auth service
type AuthConfig struct {
	Enabled bool
	Secret  string
	Issuer  string
}

type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type SeedConfig struct {
	Agencies []string
}

// Load reads .env, then the environment
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	// a missing .env is fine, the environment alone is enough
	_ = v.ReadInConfig()

	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "dash-kangourou-nova")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "Europe/Paris")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("SQLITE_PATH", "kangourou.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "kangourou")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Europe/Paris")
	v.SetDefault("DB_LOG_SQL", false)
	v.SetDefault("AUTH_ENABLED", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM_NAME", "Kangourou Kids")
	v.SetDefault("MAIL_FROM_EMAIL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Accept,Authorization,X-Request-ID")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("SEED_AGENCIES", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
			Timezone: v.GetString("TIMEZONE"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(v.GetString("STORE_DRIVER")),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
			LogSQL:   v.GetBool("DB_LOG_SQL"),
		},
		Auth: AuthConfig{
			Enabled: v.GetBool("AUTH_ENABLED"),
			Secret:  v.GetString("JWT_SECRET"),
			Issuer:  v.GetString("JWT_ISSUER"),
		},
		Mail: MailConfig{
			SMTPHost:     v.GetString("SMTP_HOST"),
			SMTPPort:     v.GetInt("SMTP_PORT"),
			SMTPUsername: v.GetString("SMTP_USERNAME"),
			SMTPPassword: v.GetString("SMTP_PASSWORD"),
			FromName:     v.GetString("MAIL_FROM_NAME"),
			FromEmail:    v.GetString("MAIL_FROM_EMAIL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Seed: SeedConfig{
			Agencies: splitList(v.GetString("SEED_AGENCIES")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverPostgres, StoreDriverSQLite:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if _, err := c.App.Location(); err != nil {
		return err
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is true")
	}
	return nil
}

// Location resolves the business timezone
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// MailEnabled reports whether an SMTP relay is configured
func (c *MailConfig) MailEnabled() bool {
	return c.SMTPHost != "" && c.FromEmail != ""
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
