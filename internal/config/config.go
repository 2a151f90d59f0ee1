package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all runtime settings, populated from the environment
type Config struct {
	Port        string     `envconfig:"PORT" default:"8080"`
	Environment string     `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`

	Database DatabaseConfig
	RedisURL string `envconfig:"REDIS_URL"`

	Auth AuthConfig
	Web  WebConfig
}

type DatabaseConfig struct {
	Driver        string `envconfig:"DB_DRIVER" default:"mongo"`
	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"gym-management"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN"`
}

type AuthConfig struct {
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type WebConfig struct {
	AppBaseURL     string   `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
	CSRFKey        string   `envconfig:"CSRF_KEY" required:"true"`
	CookieSecure   bool     `envconfig:"COOKIE_SECURE" default:"false"`
	TrustedOrigins []string `envconfig:"TRUSTED_ORIGINS" default:"localhost:8080,127.0.0.1:8080"`
	CORSOrigins    []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig reads an optional .env file and then the process environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field settings envconfig cannot express
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return errors.New("MONGODB_URI is required when DB_DRIVER=mongo")
		}
	case DriverPostgres:
		if c.Database.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if len(c.Web.CSRFKey) != 32 {
		return errors.New("CSRF_KEY must be exactly 32 bytes")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
