package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	LogLevel        string
	RedisURL        string
	AIAPIKey        string
	AIModel         string
	AIBaseURL       string
	AITimeoutMS     int64
	CORSAllowOrigin string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		AIAPIKey:        getEnv("AI_API_KEY", ""),
		AIModel:         getEnv("AI_MODEL", "gpt-4"),
		AIBaseURL:       getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		AITimeoutMS:     getEnvInt64("AI_TIMEOUT_MS", 30000),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
	}
}

func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutMS) * time.Millisecond
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
