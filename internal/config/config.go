// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakTokens contains example tokens that must be rejected.
var knownWeakTokens = []string{
	"change-me-to-32-byte-api-token!!",
	"REPLACE_WITH_YOUR_OWN_API_TOKEN!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"ARTADMIN_DB_PATH" envDefault:"./data/artadmin.db"`
	APIToken   string `env:"ARTADMIN_API_TOKEN,required"`
	ServerHost string `env:"ARTADMIN_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"ARTADMIN_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"ARTADMIN_ENV" envDefault:"development"`
	LogLevel   string `env:"ARTADMIN_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"ARTADMIN_REDIS_URL"`                           // Optional Redis URL for distributed caching
	CachePrefix  string `env:"ARTADMIN_CACHE_PREFIX" envDefault:"artadmin:"` // Redis key prefix
	CacheTTL     int    `env:"ARTADMIN_CACHE_TTL" envDefault:"300"`          // Default cache TTL in seconds
	CacheMaxSize int    `env:"ARTADMIN_CACHE_MAX_SIZE" envDefault:"10000"`   // Max memory cache entries

	// Machine translation
	OpenAIAPIKey  string  `env:"ARTADMIN_OPENAI_API_KEY"`
	OpenAIModel   string  `env:"ARTADMIN_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	TranslateRPS  float64 `env:"ARTADMIN_TRANSLATE_RPS" envDefault:"2"`
	Workers       int     `env:"ARTADMIN_WORKERS" envDefault:"2"`
	JobMaxAttempt int     `env:"ARTADMIN_JOB_MAX_ATTEMPTS" envDefault:"5"`

	EventRetentionDays int `env:"ARTADMIN_EVENT_RETENTION_DAYS" envDefault:"90"` // 0 keeps events forever

	// Storefront revalidation webhook
	RevalidateURL    string `env:"ARTADMIN_REVALIDATE_URL"`    // Optional; empty disables notifications
	RevalidateSecret string `env:"ARTADMIN_REVALIDATE_SECRET"` // HMAC key for the X-Artadmin-Signature header

	// Used in generated JSON-LD
	SiteName string `env:"ARTADMIN_SITE_NAME" envDefault:"Art Marketplace"`
	SiteURL  string `env:"ARTADMIN_SITE_URL" envDefault:"http://localhost:3000"`

	// Seeding configuration
	DoSeed bool `env:"ARTADMIN_DO_SEED" envDefault:"true"` // Seed reference languages into an empty database
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// TranslationEnabled returns true if a machine translation key is configured.
func (c Config) TranslationEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// UseRevalidation returns true if a storefront revalidation URL is configured.
func (c Config) UseRevalidation() bool {
	return c.RevalidateURL != ""
}

// CacheTTLDuration returns CacheTTL as a time.Duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// EventRetention returns EventRetentionDays as a time.Duration.
func (c Config) EventRetention() time.Duration {
	return time.Duration(c.EventRetentionDays) * 24 * time.Hour
}

// MinAPITokenLength is the minimum required length for the API bearer token.
const MinAPITokenLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.APIToken) < MinAPITokenLength {
		return nil, fmt.Errorf("ARTADMIN_API_TOKEN must be at least %d bytes long, got %d bytes; "+
			"generate a secure token with: openssl rand -base64 32",
			MinAPITokenLength, len(cfg.APIToken))
	}

	for _, weak := range knownWeakTokens {
		if cfg.APIToken == weak {
			return nil, fmt.Errorf("ARTADMIN_API_TOKEN is a known default value and must not be used; " +
				"generate a secure token with: openssl rand -base64 32")
		}
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("ARTADMIN_WORKERS must be at least 1, got %d", cfg.Workers)
	}
	if cfg.JobMaxAttempt < 1 {
		return nil, fmt.Errorf("ARTADMIN_JOB_MAX_ATTEMPTS must be at least 1, got %d", cfg.JobMaxAttempt)
	}
	if cfg.EventRetentionDays < 0 {
		return nil, fmt.Errorf("ARTADMIN_EVENT_RETENTION_DAYS must not be negative, got %d", cfg.EventRetentionDays)
	}
	if cfg.TranslateRPS <= 0 {
		return nil, fmt.Errorf("ARTADMIN_TRANSLATE_RPS must be positive, got %v", cfg.TranslateRPS)
	}

	if !hasMinimumEntropy(cfg.APIToken) {
		slog.Warn("ARTADMIN_API_TOKEN has low character diversity; " +
			"consider generating a random token with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
