// Package config loads application configuration from environment variables.
// All problems found while loading are collected and reported together so a
// misconfigured deployment fails once with the full list instead of dying on
// the first missing variable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    string
	BaseURL string
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret       string
	SessionDuration time.Duration
}

// SMTPConfig holds outbound mail settings. Host may be empty, in which case
// the application logs outgoing mail instead of delivering it.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// UploadConfig holds file upload settings.
type UploadConfig struct {
	Dir string
}

// Config is the top-level application configuration.
type Config struct {
	DatabaseURL string
	Server      ServerConfig
	Auth        AuthConfig
	SMTP        SMTPConfig
	Upload      UploadConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got %q", key, valueStr))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got %q", key, valueStr))
		return defaultValue
	}
	return valueDuration
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var errs []string

	cfg := &Config{
		DatabaseURL: getRequiredEnv("DATABASE_URL", &errs),
		Server: ServerConfig{
			Port:    getOptionalEnv("PORT", "8080"),
			BaseURL: getOptionalEnv("BASE_URL", "http://localhost:8080"),
		},
		Auth: AuthConfig{
			JWTSecret: getRequiredEnv("JWT_SECRET", &errs),
			// Session tokens live for a week.
			SessionDuration: getOptionalEnvDuration("JWT_SESSION_DURATION", 168*time.Hour, &errs),
		},
		SMTP: SMTPConfig{
			Host:     getOptionalEnv("SMTP_HOST", ""),
			Port:     getOptionalEnvInt("SMTP_PORT", 465, &errs),
			Username: getOptionalEnv("SMTP_USER", ""),
			Password: getOptionalEnv("SMTP_PASS", ""),
			From:     getOptionalEnv("SMTP_FROM", getOptionalEnv("SMTP_USER", "")),
		},
		Upload: UploadConfig{
			Dir: getOptionalEnv("UPLOAD_DIR", "uploads"),
		},
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}
	return cfg, nil
}
