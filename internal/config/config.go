package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DatabaseOptions configures the postgres record store. When Disabled is
// set the API runs on the in-memory store instead.
type DatabaseOptions struct {
	Disabled bool   `env:"DB_DISABLED" envDefault:"false"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func (d DatabaseOptions) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type Config struct {
	Database    DatabaseOptions
	Port        string   `env:"PORT" envDefault:"8080"`
	GinMode     string   `env:"GIN_MODE" envDefault:"debug"`
	JWTSecret   string   `env:"JWT_SECRET"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`
	MetricsPath string   `env:"METRICS_PATH" envDefault:"/metrics"`
	PageSize    int      `env:"PAGE_SIZE" envDefault:"10"`
	MaxPageSize int      `env:"MAX_PAGE_SIZE" envDefault:"100"`
}

const devJWTSecret = "dev_only_fieldrep_secret"

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required in release mode")

// Load reads the optional env files and parses the environment.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.JWTSecret == "" {
		if cfg.GinMode == "release" {
			return nil, ErrMissingJWTSecret
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.PageSize <= 0 || cfg.MaxPageSize < cfg.PageSize {
		return nil, fmt.Errorf("invalid page sizes: PAGE_SIZE=%d MAX_PAGE_SIZE=%d", cfg.PageSize, cfg.MaxPageSize)
	}
	return cfg, nil
}
