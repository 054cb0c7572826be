package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// DefaultAvatarURL is applied to new accounts and to profiles whose
	// stored avatar is blank or malformed.
	DefaultAvatarURL string `env:"DEFAULT_AVATAR_URL, default=https://static.mindhaven.app/avatars/default.png"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
	Mail  MailConfig
}

type JWTConfig struct {
	AccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mindhaven"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailConfig struct {
	SMTPHost string `env:"SMTP_HOST, default=smtp.gmail.com"`
	SMTPPort string `env:"SMTP_PORT, default=465"`
	Username string `env:"MAIL_USER"`
	Password string `env:"MAIL_PASS"`
	Workers  int    `env:"MAIL_WORKERS, default=4"`
}

// IsProduction gates the Secure attribute on the refresh cookie and JSON
// (vs pretty) log output.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
// Both JWT secrets are mandatory: refresh verification never falls back to
// the access secret.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.AccessSecret == "" {
		return nil, fmt.Errorf("config: JWT_ACCESS_SECRET is required")
	}
	if cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("config: JWT_REFRESH_SECRET is required")
	}
	return &cfg, nil
}
