// Package config reads the settings of the binaries from the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"custom-updater/pkg/session"
)

// Config .
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	GraphURL    string    `env:"GRAPH_URL" envDefault:"https://graph.facebook.com/v22.0"`
	AccessToken string    `env:"ACCESS_TOKEN"`
	GraphDomain string    `env:"GRAPH_DOMAIN"` // set to "gaming" for tokens issued by a gaming login
	UserID      string    `env:"USER_ID"`
	TokenExpiry time.Time `env:"TOKEN_EXPIRY"` // RFC 3339, empty means no expiry

	Addr string `env:"ADDR" envDefault:":8081"`
}

// Load reads the optional .env files and then the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &cfg, nil
}

// Token is the session described by the config, nil without an access token.
func (c *Config) Token() *session.Token {
	if c.AccessToken == "" {
		return nil
	}

	return &session.Token{
		AccessToken: c.AccessToken,
		GraphDomain: c.GraphDomain,
		UserID:      c.UserID,
		Expiry:      c.TokenExpiry,
	}
}

// Level .
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}
