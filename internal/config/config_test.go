// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
	"time"
)

const testToken = "test-api-token-32-bytes-long!!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "ARTADMIN_API_TOKEN", testToken)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/artadmin.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/artadmin.db")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.JobMaxAttempt != 5 {
		t.Errorf("JobMaxAttempt = %d, want 5", cfg.JobMaxAttempt)
	}
	if cfg.TranslationEnabled() {
		t.Error("TranslationEnabled() = true without an API key")
	}
	if !cfg.DoSeed {
		t.Error("DoSeed should default to true")
	}
	if cfg.CacheTTLDuration() != 5*time.Minute {
		t.Errorf("CacheTTLDuration() = %v, want 5m", cfg.CacheTTLDuration())
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "ARTADMIN_API_TOKEN", testToken)
	setEnv(t, "ARTADMIN_DB_PATH", "/custom/path.db")
	setEnv(t, "ARTADMIN_SERVER_HOST", "0.0.0.0")
	setEnv(t, "ARTADMIN_SERVER_PORT", "3000")
	setEnv(t, "ARTADMIN_ENV", "production")
	setEnv(t, "ARTADMIN_OPENAI_API_KEY", "sk-test")
	setEnv(t, "ARTADMIN_WORKERS", "4")
	setEnv(t, "ARTADMIN_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "ARTADMIN_REVALIDATE_URL", "https://shop.example.com/api/revalidate")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true in production")
	}
	if !cfg.TranslationEnabled() {
		t.Error("TranslationEnabled() = false with an API key")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false with a Redis URL")
	}
	if !cfg.UseRevalidation() {
		t.Error("UseRevalidation() = false with a revalidation URL")
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestLoad_RequiredToken(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when ARTADMIN_API_TOKEN is not set")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"short token", "ARTADMIN_API_TOKEN", "short"},
		{"weak token", "ARTADMIN_API_TOKEN", "change-me-to-32-byte-api-token!!"},
		{"zero workers", "ARTADMIN_WORKERS", "0"},
		{"zero attempts", "ARTADMIN_JOB_MAX_ATTEMPTS", "0"},
		{"negative rate", "ARTADMIN_TRANSLATE_RPS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "ARTADMIN_API_TOKEN", testToken)
			setEnv(t, tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() should fail with %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	if hasMinimumEntropy("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Error("single character class accepted")
	}
	if !hasMinimumEntropy("abcDEF123abcDEF123abcDEF123abcDE") {
		t.Error("three character classes rejected")
	}
}
