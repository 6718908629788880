// Package config loads service settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	devJWTSecret = "dev-only-jwt-secret"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Env         string
	Port        string
	DBDriver    string
	DatabaseDSN string
	// DBReset drops and recreates the schema on startup. Only suitable for a fresh
	// or development database.
	DBReset bool

	JWTSecret string
	TokenTTL  time.Duration

	RabbitMQURL      string
	RabbitMQExchange string
	ConsumeEvents    bool

	LogLevel       string
	MetricsEnabled bool
}

// IsProduction reports whether internal error details must be hidden.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Load reads configuration with viper from the process environment. A .env file in
// the working directory is loaded first when present.
func Load() (*Config, error) {
	// a missing .env file is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "training.db")
	v.SetDefault("DB_RESET", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "athletrack.events")
	v.SetDefault("EVENTS_CONSUME", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_ENABLED", true)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:              strings.ToLower(v.GetString("APP_ENV")),
		Port:             v.GetString("APP_PORT"),
		DBDriver:         strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		DBReset:          v.GetBool("DB_RESET"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		ConsumeEvents:    v.GetBool("EVENTS_CONSUME"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		MetricsEnabled:   v.GetBool("METRICS_ENABLED"),
	}

	if !strings.HasPrefix(cfg.Port, ":") && !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}
