package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string   `env:"PORT,      default=3001"`
	Env         string   `env:"ENV,       default=development"`
	LogLevel    string   `env:"LOG_LEVEL, default=info"`
	CORSOrigins []string `env:"CORS_ALLOW_ORIGINS, default=*"`

	// JWTSecret signs session tokens. JWTSecretFile, when set, wins and lets
	// the secret come from a mounted secrets provider.
	JWTSecret     string `env:"JWT_SECRET"`
	JWTSecretFile string `env:"JWT_SECRET_FILE"`

	Database DatabaseConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER,         default=mysql"`
	DSN          string `env:"DB_DSN"`
	DSNFile      string `env:"DB_DSN_FILE"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
	AutoMigrate  bool   `env:"DB_AUTO_MIGRATE,   default=false"`
}

// RedisConfig enables report idempotency keys when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// MongoConfig enables the report audit trail when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=testbot"`
}

// IsDevelopment reports whether the process runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var err error
	if cfg.JWTSecret, err = resolveSecret(cfg.JWTSecret, cfg.JWTSecretFile); err != nil {
		return nil, fmt.Errorf("config: JWT secret: %w", err)
	}
	if cfg.Database.DSN, err = resolveSecret(cfg.Database.DSN, cfg.Database.DSNFile); err != nil {
		return nil, fmt.Errorf("config: database DSN: %w", err)
	}

	return &cfg, nil
}

var errMissingSecret = errors.New("neither value nor file is set")

// resolveSecret prefers the contents of file over the inline value.
func resolveSecret(value, file string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read secret file: %w", err)
		}
		value = strings.TrimSpace(string(b))
	}
	if value == "" {
		return "", errMissingSecret
	}
	return value, nil
}
