package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration,
// populated from environment variables.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	SMTP    SMTPConfig
	MinIO   MinIOConfig
	Geocode GeocodeConfig
	Jobs    JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SMTPConfig configures the outbound OTP mailer.
type SMTPConfig struct {
	Host string
	Port string
	From string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// GeocodeConfig configures the upstream geocoding provider and
// the cache TTLs for positive, empty and error results.
type GeocodeConfig struct {
	ProviderURL string
	Timeout     time.Duration
	PositiveTTL time.Duration
	NegativeTTL time.Duration
	ErrorTTL    time.Duration
}

// JobConfig tunes the background worker jobs.
type JobConfig struct {
	OTPRetentionHours      int // purge OTPs older than this
	LocationStalenessHours int // clear driver coordinates older than this
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Drivo API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessExpiry:  time.Duration(getEnvInt("JWT_ACCESS_EXPIRY_MIN", 60)) * time.Minute,
			RefreshExpiry: time.Duration(getEnvInt("JWT_REFRESH_EXPIRY_HOURS", 72)) * time.Hour,
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnv("SMTP_PORT", "1025"),
			From: getEnv("SMTP_FROM", "noreply@drivo.pk"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "drivo"),
			UseSSL:    false,
		},
		Geocode: GeocodeConfig{
			ProviderURL: getEnv("GEOCODE_PROVIDER_URL", "https://nominatim.openstreetmap.org/search"),
			Timeout:     time.Duration(getEnvInt("GEOCODE_TIMEOUT_SEC", 5)) * time.Second,
			PositiveTTL: time.Duration(getEnvInt("GEOCODE_POSITIVE_TTL_HOURS", 24)) * time.Hour,
			NegativeTTL: time.Duration(getEnvInt("GEOCODE_NEGATIVE_TTL_MIN", 60)) * time.Minute,
			ErrorTTL:    time.Duration(getEnvInt("GEOCODE_ERROR_TTL_MIN", 5)) * time.Minute,
		},
		Jobs: JobConfig{
			OTPRetentionHours:      getEnvInt("JOB_OTP_RETENTION_HOURS", 24),
			LocationStalenessHours: getEnvInt("JOB_LOCATION_STALENESS_HOURS", 24),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configs that must not reach production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
