package config

import (
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL  string
	LogLevel     string
	LogFormat    string
	SecureRandom bool
	KindsFile    string
}

func Load() *Config {
	return &Config{
		DatabaseURL:  getEnv("DATABASE_URL", "postgres://localhost:5432/groupcode?sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		SecureRandom: getEnvBool("CODE_SECURE_RANDOM", false),
		KindsFile:    getEnv("KINDS_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
