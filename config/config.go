package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string
	LogLevel    logrus.Level

	Database DatabaseConfig
	Auth     AuthConfig
	Email    EmailConfig
}

type DatabaseConfig struct {
	Driver        string
	URL           string
	MongoURI      string
	MongoDatabase string
}

type AuthConfig struct {
	JWTSecret           string
	JWTIssuer           string
	JWTTTL              time.Duration
	VerificationCodeTTL time.Duration
	TokenPurgeInterval  time.Duration
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":5000")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("DATABASE_URL", "classmanager.db")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "classmanager")
	v.SetDefault("JWT_ISSUER", "classmanager")
	v.SetDefault("JWT_TTL", time.Hour)
	v.SetDefault("VERIFICATION_CODE_TTL", 5*time.Minute)
	v.SetDefault("TOKEN_PURGE_INTERVAL", time.Minute)
	v.SetDefault("EMAIL_FROM", "Class Manager <no-reply@classmanager.dev>")
	return v
}

func FromViper(v *viper.Viper) (*Config, error) {
	level, err := logrus.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		LogLevel:    level,
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("DB_DRIVER")),
			URL:           v.GetString("DATABASE_URL"),
			MongoURI:      v.GetString("MONGO_URI"),
			MongoDatabase: v.GetString("MONGO_DATABASE"),
		},
		Auth: AuthConfig{
			JWTSecret:           v.GetString("JWT_SECRET"),
			JWTIssuer:           v.GetString("JWT_ISSUER"),
			JWTTTL:              v.GetDuration("JWT_TTL"),
			VerificationCodeTTL: v.GetDuration("VERIFICATION_CODE_TTL"),
			TokenPurgeInterval:  v.GetDuration("TOKEN_PURGE_INTERVAL"),
		},
		Email: EmailConfig{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			From:         v.GetString("EMAIL_FROM"),
		},
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.Database.Driver {
	case DriverMongo, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER %q is not one of mongo, postgres, sqlite", c.Database.Driver)
	}
	if c.Auth.VerificationCodeTTL <= 0 {
		return errors.New("VERIFICATION_CODE_TTL must be positive")
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
