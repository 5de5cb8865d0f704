// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port         int
	StoreBackend string
	AppVersion   string

	DatabaseURL string

	AWSRegion        string
	DynamoDBEndpoint string
	JobsTable        string
	HistoryTable     string
	UsersTable       string
	InvitesTable     string

	JWTSecret string
	InviteTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	LogLevel     string
	OTELEndpoint string

	// BootstrapAdminID is granted the admin role on startup so an empty
	// deployment can issue its first invites.
	BootstrapAdminID    string
	BootstrapAdminEmail string
}

// Load reads configuration from environment variables and validates required fields.
func Load() (Config, error) {
	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return Config{}, fmt.Errorf("parse PORT: %w", err)
	}

	inviteTTL, err := getEnvDuration("INVITE_TTL", 7*24*time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("parse INVITE_TTL: %w", err)
	}

	cfg := Config{
		Port:                port,
		StoreBackend:        strings.ToLower(getEnv("STORE_BACKEND", BackendDynamoDB)),
		AppVersion:          getEnv("APP_VERSION", "dev"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		DynamoDBEndpoint:    getEnv("DYNAMODB_ENDPOINT", ""),
		JobsTable:           getEnv("JOBS_TABLE", "jobs"),
		HistoryTable:        getEnv("HISTORY_TABLE", "job_status_history"),
		UsersTable:          getEnv("USERS_TABLE", "users"),
		InvitesTable:        getEnv("INVITES_TABLE", "invites"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		InviteTTL:           inviteTTL,
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisChannel:        getEnv("REDIS_CHANNEL", "repairdesk:jobs"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		OTELEndpoint:        getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		BootstrapAdminID:    getEnv("BOOTSTRAP_ADMIN_ID", ""),
		BootstrapAdminEmail: getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.StoreBackend {
	case BackendDynamoDB, BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.InviteTTL <= 0 {
		return fmt.Errorf("INVITE_TTL must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(v)
}
