package main

import (
	"log"
	"os"
)

// Config holds the worker's own knobs; everything else comes from the
// shared container config.
type Config struct {
	RedisAddr  string
	HealthPort string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr:  getEnv("REDIS_HOST", "localhost:6379"),
		HealthPort: getEnv("WORKER_HEALTH_PORT", "9999"),
	}

	log.Printf("[Config] Redis: %s", cfg.RedisAddr)

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
