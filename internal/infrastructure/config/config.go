// Package config loads all runtime settings from the environment.
package config

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/elevate-digital/bizdesk/internal/security"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string `env:"JWT_SECRET, required"`

	// EncryptionKey is the base64-encoded 32-byte AES key protecting
	// personal fields at rest.
	EncryptionKey string `env:"ENCRYPTION_KEY, required"`

	// OwnerID scopes every stored document to the business account.
	OwnerID string `env:"OWNER_ID, required"`

	// PublicBaseURL is the externally reachable origin used to build the
	// accept/decline and mark-paid links embedded in outgoing mail.
	PublicBaseURL string `env:"PUBLIC_BASE_URL, default=http://localhost:8080"`

	GotenbergURL string `env:"GOTENBERG_URL, default=http://localhost:3000"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bizdesk"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// CipherKey decodes the configured encryption key and checks its size.
func (c *Config) CipherKey() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	if len(key) != security.KeySize {
		return nil, security.ErrInvalidKeySize
	}
	return key, nil
}
